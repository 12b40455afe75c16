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
	"log/slog"
	"net/url"
	"strings"

	"github.com/sethvargo/go-retry"

	"github.com/ianlewis/go-thaidict/errcode"
)

// fetchRemote retrieves u through the transport, retrying transient
// failures.
func (f *Fetcher) fetchRemote(ctx context.Context, u string) ([]byte, error) {
	if f.transport == nil {
		return nil, errcode.MissingTransport(u)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return nil, errcode.InvalidSource(u, "malformed URL", err)
	}
	if scheme := strings.ToLower(parsed.Scheme); scheme != "http" && scheme != "https" {
		return nil, errcode.InvalidSource(u, fmt.Sprintf("unsupported URL scheme %q", parsed.Scheme), nil)
	}
	if parsed.Host == "" {
		return nil, errcode.InvalidSource(u, "URL has no host", nil)
	}

	//nolint:gosec // attempts is validated as positive in New.
	backoff := retry.WithMaxRetries(uint64(f.attempts-1), retry.NewExponential(f.backoff))

	var body []byte
	var lastErr error
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		b, err := f.get(ctx, u)
		if err == nil {
			body = b
			return nil
		}
		lastErr = err

		if !IsTransient(err) || ctx.Err() != nil {
			f.log.WarnContext(ctx, "remote fetch failed",
				slog.String("source", u),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
			return err
		}

		f.log.WarnContext(ctx, "remote fetch retry",
			slog.String("source", u),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		return retry.RetryableError(err)
	})

	// The caller's deadline or cancellation takes precedence over the
	// underlying network error.
	if ctxErr := errcode.FromContext(ctx, "fetching "+u); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		if errors.Is(lastErr, ErrTooLarge) {
			return nil, errcode.MemoryLimit(u, f.maxBytes)
		}
		return nil, errcode.DownloadFailed(u, attempt, lastErr)
	}

	if isCompressed(parsed.Path) {
		body, err = gunzip(body, f.maxBytes)
		if err != nil {
			if errors.Is(err, ErrTooLarge) {
				return nil, errcode.MemoryLimit(u, f.maxBytes)
			}
			return nil, errcode.InvalidSource(u, "cannot decompress payload", err)
		}
	}

	return body, nil
}

// get performs a single bounded attempt.
func (f *Fetcher) get(ctx context.Context, u string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.transport.Get(attemptCtx, u)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("GET %s: transport returned no response", u)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %w", u, &StatusError{StatusCode: resp.StatusCode})
	}
	if int64(len(resp.Body)) > f.maxBytes {
		return nil, ErrTooLarge
	}
	return resp.Body, nil
}
