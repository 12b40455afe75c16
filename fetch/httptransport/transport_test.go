// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httptransport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-thaidict/fetch"
)

func TestTransport_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			body:   "บ้าน\nรถ\n",
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   "missing",
		},
		{
			name:   "server error",
			status: http.StatusServiceUnavailable,
			body:   "",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("User-Agent"); got != UserAgent {
					t.Errorf("User-Agent = %q, want %q", got, UserAgent)
				}
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(test.body))
			}))
			defer srv.Close()

			resp, err := New(nil, 0).Get(context.Background(), srv.URL+"/words.txt")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}

			want := &fetch.Response{
				StatusCode: test.status,
				Body:       []byte(test.body),
			}
			if diff := cmp.Diff(want, resp); diff != "" {
				t.Errorf("Get (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestTransport_Get_timeoutIsTransient(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(nil, 0).Get(ctx, srv.URL)
	if err == nil {
		t.Fatal("Get: expected error")
	}
	if !fetch.IsTransient(err) {
		t.Errorf("IsTransient(%v) = false, want true", err)
	}
}

func TestTransport_Get_badURL(t *testing.T) {
	t.Parallel()

	_, err := New(nil, 0).Get(context.Background(), "http://[::1")
	if err == nil {
		t.Fatal("Get: expected error")
	}
	if fetch.IsTransient(err) {
		t.Errorf("IsTransient(%v) = true, want false", err)
	}
}

func TestTransport_Get_tooLarge(t *testing.T) {
	t.Parallel()

	const limit = 1024
	const size = 8 << 20

	tests := []struct {
		name string
		// chunked hides the length from the client.
		chunked bool
	}{
		{name: "content length"},
		{name: "chunked", chunked: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if !test.chunked {
					w.Header().Set("Content-Length", strconv.Itoa(size))
				}
				w.WriteHeader(http.StatusOK)

				n := 0
				chunk := []byte(strings.Repeat("ก", 1024))
				for n < size {
					m, err := w.Write(chunk)
					n += m
					if err != nil {
						break
					}
					if f, ok := w.(http.Flusher); ok && test.chunked {
						f.Flush()
					}
				}
			}))
			defer srv.Close()

			_, err := New(nil, limit).Get(context.Background(), srv.URL)
			if !errors.Is(err, fetch.ErrTooLarge) {
				t.Fatalf("Get: err = %v, want ErrTooLarge", err)
			}
			if fetch.IsTransient(err) {
				t.Errorf("IsTransient(%v) = true, want false", err)
			}
		})
	}
}

func TestTransport_Get_atLimit(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("x", 1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	resp, err := New(nil, int64(len(body))).Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(body, string(resp.Body)); diff != "" {
		t.Errorf("Body (-want, +got):\n%s", diff)
	}
}
