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

package fetch_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/fetch"
	"github.com/ianlewis/go-thaidict/fetch/httptransport"
	"github.com/ianlewis/go-thaidict/internal/testutil"
	"github.com/ianlewis/go-thaidict/source"
)

func newFetcher(t *testing.T, transport fetch.Transport) *fetch.Fetcher {
	t.Helper()

	f, err := fetch.New(&fetch.Options{
		Transport: transport,
		Backoff:   time.Millisecond,
		Timeout:   time.Second,
	})
	if err != nil {
		t.Fatalf("fetch.New: %v", err)
	}
	return f
}

func TestFetcher_Fetch_local(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "บ้าน\nรถ\n"
	plain := testutil.WriteWords(t, dir, "plain.txt", content)
	gz := testutil.WriteFile(t, dir, "words.txt.gz", testutil.Gzip(t, []byte(content)))
	dz := testutil.WriteFile(t, dir, "words.dict.dz", testutil.DictZip(t, []byte(content)))
	subdir := filepath.Join(dir, "subdir")
	if err := os.Mkdir(subdir, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected string
		code     errcode.Code
	}{
		{
			name:     "plain",
			path:     plain,
			expected: content,
		},
		{
			name:     "gzip",
			path:     gz,
			expected: content,
		},
		{
			name:     "dictzip",
			path:     dz,
			expected: content,
		},
		{
			name: "missing",
			path: filepath.Join(dir, "missing.txt"),
			code: errcode.DictionaryFileNotFound,
		},
		{
			name: "directory",
			path: subdir,
			code: errcode.DictionaryInvalidSource,
		},
		{
			name: "corrupt gzip",
			path: testutil.WriteWords(t, dir, "corrupt.gz", "not gzip"),
			code: errcode.DictionaryInvalidSource,
		},
	}

	f := newFetcher(t, nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			src, err := source.New(source.Local, test.path, "")
			if err != nil {
				t.Fatal(err)
			}

			p, err := f.Fetch(context.Background(), src)
			if diff := cmp.Diff(test.code, errcode.CodeOf(err)); diff != "" {
				t.Fatalf("Fetch error code (-want, +got):\n%s\n%v", diff, err)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(test.expected, string(p.Data)); diff != "" {
				t.Errorf("Fetch data (-want, +got):\n%s", diff)
			}
			if p.Source != src {
				t.Errorf("Fetch payload source = %v, want %v", p.Source, src)
			}
		})
	}
}

func TestFetcher_Fetch_memoryLimit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := testutil.WriteWords(t, dir, "big.txt", "บ้าน\nรถ\nแมว\n")
	gz := testutil.WriteFile(t, dir, "big.txt.gz", testutil.Gzip(t, []byte("บ้าน\nรถ\nแมว\n")))

	f, err := fetch.New(&fetch.Options{MaxBytes: 8})
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{p, gz} {
		_, err = f.Fetch(context.Background(), source.MustParse(path, ""))
		if got, want := errcode.CodeOf(err), errcode.SystemMemoryLimit; got != want {
			t.Errorf("Fetch(%q) error code = %v, want %v", path, got, want)
		}
	}
}

func TestFetcher_Fetch_missingTransport(t *testing.T) {
	t.Parallel()

	f := newFetcher(t, nil)
	_, err := f.Fetch(context.Background(), source.MustParse("https://example.com/words.txt", ""))
	if got, want := errcode.CodeOf(err), errcode.ConfigMissingRequired; got != want {
		t.Fatalf("Fetch error code = %v, want %v", got, want)
	}
}

func TestFetcher_Fetch_remote(t *testing.T) {
	t.Parallel()

	const u = "https://example.com/words.txt"
	resetErr := &os.SyscallError{Syscall: "read", Err: syscall.ECONNRESET}

	tests := []struct {
		name    string
		replies []testutil.Reply

		expected string
		code     errcode.Code
		calls    int
	}{
		{
			name:     "success",
			replies:  []testutil.Reply{{Body: "รถ\n"}},
			expected: "รถ\n",
			calls:    1,
		},
		{
			name: "retry 5xx then success",
			replies: []testutil.Reply{
				{Status: http.StatusBadGateway},
				{Status: http.StatusServiceUnavailable},
				{Body: "รถ\n"},
			},
			expected: "รถ\n",
			calls:    3,
		},
		{
			name: "retry reset then success",
			replies: []testutil.Reply{
				{Err: resetErr},
				{Body: "รถ\n"},
			},
			expected: "รถ\n",
			calls:    2,
		},
		{
			name:    "retries exhausted",
			replies: []testutil.Reply{{Status: http.StatusInternalServerError}},
			code:    errcode.DictionaryDownloadFailed,
			calls:   3,
		},
		{
			name:    "4xx not retried",
			replies: []testutil.Reply{{Status: http.StatusNotFound}},
			code:    errcode.DictionaryDownloadFailed,
			calls:   1,
		},
		{
			name:    "permanent error not retried",
			replies: []testutil.Reply{{Err: errors.New("tls: bad certificate")}},
			code:    errcode.DictionaryDownloadFailed,
			calls:   1,
		},
		{
			name:    "marked transient retried",
			replies: []testutil.Reply{{Err: fetch.Transient(errors.New("flaky"))}},
			code:    errcode.DictionaryDownloadFailed,
			calls:   3,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tr := testutil.NewTransport().Add(u, test.replies...)
			f := newFetcher(t, tr)

			p, err := f.Fetch(context.Background(), source.MustParse(u, ""))
			if diff := cmp.Diff(test.code, errcode.CodeOf(err)); diff != "" {
				t.Fatalf("Fetch error code (-want, +got):\n%s\n%v", diff, err)
			}
			if diff := cmp.Diff(test.calls, tr.Calls(u)); diff != "" {
				t.Errorf("transport calls (-want, +got):\n%s", diff)
			}
			if err != nil {
				if errors.Unwrap(err) == nil {
					t.Errorf("DownloadFailed does not wrap a cause: %v", err)
				}
				return
			}
			if diff := cmp.Diff(test.expected, string(p.Data)); diff != "" {
				t.Errorf("Fetch data (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFetcher_Fetch_malformedURL(t *testing.T) {
	t.Parallel()

	tr := testutil.NewTransport()
	f := newFetcher(t, tr)

	for _, u := range []string{"http://", "https://exa mple.com/%zz"} {
		src, err := source.New(source.Remote, u, "")
		if err != nil {
			t.Fatal(err)
		}
		_, err = f.Fetch(context.Background(), src)
		if got, want := errcode.CodeOf(err), errcode.DictionaryInvalidSource; got != want {
			t.Errorf("Fetch(%q) error code = %v, want %v", u, got, want)
		}
	}
	if n := tr.TotalCalls(); n != 0 {
		t.Errorf("transport calls = %d, want 0", n)
	}
}

func TestFetcher_Fetch_remoteGzip(t *testing.T) {
	t.Parallel()

	content := []byte("บ้าน\nแมว\n")
	gz := testutil.Gzip(t, content)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(gz)
	}))
	defer srv.Close()

	f := newFetcher(t, httptransport.New(srv.Client(), 0))
	p, err := f.Fetch(context.Background(), source.MustParse(srv.URL+"/words.txt.gz", ""))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if diff := cmp.Diff(string(content), string(p.Data)); diff != "" {
		t.Errorf("Fetch data (-want, +got):\n%s", diff)
	}
}

func TestFetcher_Fetch_remoteTooLarge(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write(bytes.Repeat([]byte("แมว\n"), 1024))
	}))
	defer srv.Close()

	const limit = 1024
	f, err := fetch.New(&fetch.Options{
		Transport: httptransport.New(srv.Client(), limit),
		Attempts:  3,
		Backoff:   time.Millisecond,
		MaxBytes:  limit,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Fetch(context.Background(), source.MustParse(srv.URL+"/words.txt", ""))
	if got, want := errcode.CodeOf(err), errcode.SystemMemoryLimit; got != want {
		t.Fatalf("Fetch error code = %v, want %v: %v", got, want, err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestFetcher_Fetch_attemptTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f, err := fetch.New(&fetch.Options{
		Transport: httptransport.New(srv.Client(), 0),
		Timeout:   10 * time.Millisecond,
		Attempts:  2,
		Backoff:   time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.Fetch(context.Background(), source.MustParse(srv.URL+"/slow.txt", ""))
	if got, want := errcode.CodeOf(err), errcode.DictionaryDownloadFailed; got != want {
		t.Fatalf("Fetch error code = %v, want %v: %v", got, want, err)
	}
}

func TestFetcher_Fetch_cancelled(t *testing.T) {
	t.Parallel()

	tr := testutil.NewTransport()
	f := newFetcher(t, tr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, source.MustParse("https://example.com/words.txt", ""))
	if got, want := errcode.CodeOf(err), errcode.SystemTimeLimit; got != want {
		t.Fatalf("Fetch error code = %v, want %v", got, want)
	}
	if n := tr.TotalCalls(); n != 0 {
		t.Errorf("transport calls = %d, want 0", n)
	}
}

func TestNew_invalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *fetch.Options
	}{
		{name: "negative timeout", opts: &fetch.Options{Timeout: -time.Second}},
		{name: "negative attempts", opts: &fetch.Options{Attempts: -1}},
		{name: "negative backoff", opts: &fetch.Options{Backoff: -time.Second}},
		{name: "negative max bytes", opts: &fetch.Options{MaxBytes: -1}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := fetch.New(test.opts)
			if got, want := errcode.CodeOf(err), errcode.ConfigInvalid; got != want {
				t.Fatalf("New error code = %v, want %v", got, want)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "plain", err: errors.New("plain"), expected: false},
		{name: "deadline", err: context.DeadlineExceeded, expected: true},
		{name: "reset", err: &os.SyscallError{Syscall: "read", Err: syscall.ECONNRESET}, expected: true},
		{name: "marked", err: fetch.Transient(errors.New("x")), expected: true},
		{name: "500", err: &fetch.StatusError{StatusCode: 500}, expected: true},
		{name: "503", err: &fetch.StatusError{StatusCode: 503}, expected: true},
		{name: "404", err: &fetch.StatusError{StatusCode: 404}, expected: false},
		{name: "cancelled", err: context.Canceled, expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, fetch.IsTransient(test.err)); diff != "" {
				t.Errorf("IsTransient (-want, +got):\n%s", diff)
			}
		})
	}
}
