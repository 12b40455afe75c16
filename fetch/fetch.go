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

// Package fetch retrieves raw dictionary data for a source.
//
// Local sources are read from the filesystem. Remote sources are retrieved
// through a Transport. The Fetcher does not implement HTTP itself; a
// Fetcher without a Transport rejects remote sources with a
// Config.MissingRequired error before making any network attempt.
//
// Remote fetches are retried with exponential backoff, but only when the
// failure is transient (see IsTransient).
package fetch

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/source"
)

const (
	// DefaultTimeout is the default timeout for a single remote attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultAttempts is the default number of remote attempts.
	DefaultAttempts = 3

	// DefaultBackoff is the default delay before the first retry. The delay
	// doubles on each subsequent retry.
	DefaultBackoff = 500 * time.Millisecond

	// DefaultMaxBytes is the default maximum size of a payload.
	DefaultMaxBytes int64 = 64 << 20
)

// Options are options for a Fetcher. Zero values use the defaults.
type Options struct {
	// Transport performs remote GET requests. Remote sources fail when it is
	// nil.
	Transport Transport

	// Timeout bounds each remote attempt.
	Timeout time.Duration

	// Attempts is the maximum number of remote attempts.
	Attempts int

	// Backoff is the delay before the first retry.
	Backoff time.Duration

	// MaxBytes is the maximum payload size after decompression.
	MaxBytes int64

	// Logger receives fetch progress. Defaults to a discard logger.
	Logger *slog.Logger
}

// Fetcher fetches source payloads.
type Fetcher struct {
	transport Transport
	timeout   time.Duration
	attempts  int
	backoff   time.Duration
	maxBytes  int64
	log       *slog.Logger
}

// New returns a new Fetcher.
func New(opts *Options) (*Fetcher, error) {
	if opts == nil {
		opts = &Options{}
	}

	f := &Fetcher{
		transport: opts.Transport,
		timeout:   opts.Timeout,
		attempts:  opts.Attempts,
		backoff:   opts.Backoff,
		maxBytes:  opts.MaxBytes,
		log:       opts.Logger,
	}

	switch {
	case f.timeout < 0:
		return nil, errcode.New(errcode.ConfigInvalid, "fetch timeout must not be negative: %v", f.timeout)
	case f.attempts < 0:
		return nil, errcode.New(errcode.ConfigInvalid, "fetch attempts must not be negative: %d", f.attempts)
	case f.backoff < 0:
		return nil, errcode.New(errcode.ConfigInvalid, "fetch backoff must not be negative: %v", f.backoff)
	case f.maxBytes < 0:
		return nil, errcode.New(errcode.ConfigInvalid, "fetch max bytes must not be negative: %d", f.maxBytes)
	}

	if f.timeout == 0 {
		f.timeout = DefaultTimeout
	}
	if f.attempts == 0 {
		f.attempts = DefaultAttempts
	}
	if f.backoff == 0 {
		f.backoff = DefaultBackoff
	}
	if f.maxBytes == 0 {
		f.maxBytes = DefaultMaxBytes
	}
	if f.log == nil {
		f.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return f, nil
}

// Fetch retrieves the raw payload for src.
func (f *Fetcher) Fetch(ctx context.Context, src *source.Source) (*source.Payload, error) {
	if src == nil {
		return nil, errcode.New(errcode.InputEmpty, "source is nil")
	}
	if err := errcode.FromContext(ctx, "fetching "+src.Location()); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	switch src.Kind() {
	case source.Local:
		data, err = f.fetchLocal(src.Location())
	case source.Remote:
		data, err = f.fetchRemote(ctx, src.Location())
	default:
		return nil, errcode.New(errcode.ConfigInvalid, "unknown source kind %v for %q", src.Kind(), src.Location())
	}
	if err != nil {
		return nil, err
	}

	f.log.DebugContext(ctx, "fetched source",
		slog.String("source", src.Location()),
		slog.String("kind", src.Kind().String()),
		slog.Int("bytes", len(data)),
	)

	return &source.Payload{
		Data:   data,
		Source: src,
	}, nil
}
