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

// Package httptransport implements a fetch.Transport using net/http.
package httptransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ianlewis/go-thaidict/fetch"
)

// UserAgent is sent with every request.
const UserAgent = "go-thaidict"

// Transport is a fetch.Transport backed by an *http.Client.
type Transport struct {
	client   *http.Client
	maxBytes int64
}

// New returns a new Transport. If client is nil a client without a global
// timeout is used; per-attempt timeouts are applied by the fetch.Fetcher
// through the request context.
//
// Response bodies larger than maxBytes are rejected with an error wrapping
// fetch.ErrTooLarge without being read in full. A maxBytes of zero or less
// uses fetch.DefaultMaxBytes.
func New(client *http.Client, maxBytes int64) *Transport {
	if client == nil {
		client = &http.Client{}
	}
	if maxBytes <= 0 {
		maxBytes = fetch.DefaultMaxBytes
	}
	return &Transport{
		client:   client,
		maxBytes: maxBytes,
	}
}

// Get implements [fetch.Transport.Get].
func (t *Transport) Get(ctx context.Context, url string) (*fetch.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, classify(fmt.Errorf("sending request: %w", err))
	}
	defer resp.Body.Close()

	if resp.ContentLength > t.maxBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds %d bytes", fetch.ErrTooLarge, resp.ContentLength, t.maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBytes+1))
	if err != nil {
		// A body cut short by the server is worth retrying.
		return nil, classify(fmt.Errorf("reading response body: %w", err))
	}
	if int64(len(body)) > t.maxBytes {
		return nil, fmt.Errorf("%w: response body exceeds %d bytes", fetch.ErrTooLarge, t.maxBytes)
	}

	return &fetch.Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// classify marks timeouts, resets and connections closed mid-response as
// transient. Other errors, such as a refused connection or a malformed
// request, are returned unchanged.
func classify(err error) error {
	if fetch.IsTransient(err) {
		return fetch.Transient(err)
	}
	if errors.Is(err, io.EOF) {
		return fetch.Transient(err)
	}
	return err
}
