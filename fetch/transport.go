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

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
)

// Response is the result of a remote GET.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the full response body.
	Body []byte
}

// Transport issues remote GET requests. Implementations should classify
// retryable network failures by wrapping them with Transient. Well-known
// transient errors such as timeouts and connection resets are detected
// without marking.
type Transport interface {
	Get(ctx context.Context, url string) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, url string) (*Response, error)

// Get implements [Transport.Get].
func (f TransportFunc) Get(ctx context.Context, url string) (*Response, error) {
	return f(ctx, url)
}

// ErrTooLarge indicates a payload larger than the allowed size. Transports
// that bound the response body should return an error wrapping it.
var ErrTooLarge = errors.New("payload too large")

// StatusError is a non-success HTTP status.
type StatusError struct {
	StatusCode int
}

// Error implements [error.Error].
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

type transientError struct {
	err error
}

func (e *transientError) Error() string {
	return e.err.Error()
}

func (e *transientError) Unwrap() error {
	return e.err
}

// Transient marks err as a transient failure that may succeed on retry.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err is likely to succeed on retry. Timeouts,
// connection resets, truncated responses, 5xx statuses and errors marked
// with Transient are transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var te *transientError
	if errors.As(err, &te) {
		return true
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 && se.StatusCode <= 599
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
