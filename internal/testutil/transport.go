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

package testutil

import (
	"context"
	"sync"

	"github.com/ianlewis/go-thaidict/fetch"
)

// Reply is a canned transport result.
type Reply struct {
	Status int
	Body   string
	Err    error
}

// Transport is a fake fetch.Transport. Each URL is answered with its
// replies in order; the last reply repeats once the others are used up.
// Unknown URLs are answered with 404.
type Transport struct {
	mu      sync.Mutex
	replies map[string][]Reply
	calls   map[string]int
}

// NewTransport returns a new fake Transport.
func NewTransport() *Transport {
	return &Transport{
		replies: map[string][]Reply{},
		calls:   map[string]int{},
	}
}

// Add registers replies for url.
func (t *Transport) Add(url string, replies ...Reply) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[url] = append(t.replies[url], replies...)
	return t
}

// Calls returns the number of requests made for url.
func (t *Transport) Calls(url string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[url]
}

// TotalCalls returns the number of requests made for all URLs.
func (t *Transport) TotalCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		n += c
	}
	return n
}

// Get implements [fetch.Transport.Get].
func (t *Transport) Get(ctx context.Context, url string) (*fetch.Response, error) {
	t.mu.Lock()
	i := t.calls[url]
	t.calls[url]++
	replies := t.replies[url]
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(replies) == 0 {
		return &fetch.Response{StatusCode: 404}, nil
	}
	if i >= len(replies) {
		i = len(replies) - 1
	}
	r := replies[i]
	if r.Err != nil {
		return nil, r.Err
	}
	status := r.Status
	if status == 0 {
		status = 200
	}
	return &fetch.Response{
		StatusCode: status,
		Body:       []byte(r.Body),
	}, nil
}
