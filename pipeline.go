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

package thaidict

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-thaidict/artifact"
	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/fetch"
	"github.com/ianlewis/go-thaidict/source"
	"github.com/ianlewis/go-thaidict/wordlist"
)

// DefaultConcurrency is the default number of sources processed at once.
const DefaultConcurrency = 4

// Mode is the policy for source failures.
type Mode int

const (
	// FailFast aborts the build on the first source failure. Outstanding
	// sources are cancelled and nothing is written.
	FailFast Mode = iota

	// BestEffort skips failing sources. The build fails only if no words
	// remain or the artifact cannot be written.
	BestEffort
)

// String implements [fmt.Stringer].
func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast", "failfast":
		return FailFast, nil
	case "best-effort", "besteffort":
		return BestEffort, nil
	default:
		return 0, errcode.New(errcode.ConfigInvalid, "unknown mode %q", s)
	}
}

// Options are options for a Pipeline. Zero values use the defaults.
type Options struct {
	// Mode is the failure policy. Defaults to FailFast.
	Mode Mode

	// Concurrency is the maximum number of sources processed at once.
	// Defaults to DefaultConcurrency.
	Concurrency int

	// Fetcher retrieves source payloads. Defaults to a Fetcher with no
	// transport, which rejects remote sources.
	Fetcher *fetch.Fetcher

	// Parser parses payloads. Defaults to a Parser with default options.
	Parser *wordlist.Parser

	// Writer persists the artifact. Defaults to a Writer with default
	// options.
	Writer *artifact.Writer

	// Logger receives build progress. Defaults to a discard logger.
	Logger *slog.Logger
}

// Pipeline builds dictionaries. A Pipeline is safe for concurrent use
// provided that concurrent runs use different destinations.
type Pipeline struct {
	mode        Mode
	concurrency int
	fetcher     *fetch.Fetcher
	parser      *wordlist.Parser
	writer      *artifact.Writer
	log         *slog.Logger
}

// New returns a new Pipeline.
func New(opts *Options) (*Pipeline, error) {
	if opts == nil {
		opts = &Options{}
	}

	p := &Pipeline{
		mode:        opts.Mode,
		concurrency: opts.Concurrency,
		fetcher:     opts.Fetcher,
		parser:      opts.Parser,
		writer:      opts.Writer,
		log:         opts.Logger,
	}

	if p.mode != FailFast && p.mode != BestEffort {
		return nil, errcode.New(errcode.ConfigInvalid, "unknown mode %v", p.mode)
	}
	if p.concurrency < 0 {
		return nil, errcode.New(errcode.ConfigInvalid, "concurrency must not be negative: %d", p.concurrency)
	}
	if p.concurrency == 0 {
		p.concurrency = DefaultConcurrency
	}
	if p.log == nil {
		p.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var err error
	if p.fetcher == nil {
		if p.fetcher, err = fetch.New(&fetch.Options{Logger: p.log}); err != nil {
			return nil, err
		}
	}
	if p.parser == nil {
		if p.parser, err = wordlist.NewParser(&wordlist.Options{Logger: p.log}); err != nil {
			return nil, err
		}
	}
	if p.writer == nil {
		p.writer = artifact.NewWriter(artifact.WriterOptions{Logger: p.log})
	}

	return p, nil
}

// Mode returns the pipeline's failure policy.
func (p *Pipeline) Mode() Mode {
	return p.mode
}

// SourceFailure records a source that failed in BestEffort mode.
type SourceFailure struct {
	// Source is the failed source.
	Source *source.Source

	// Err is the categorized error.
	Err error
}

// String implements [fmt.Stringer].
func (f SourceFailure) String() string {
	return fmt.Sprintf("%s: %v", f.Source, f.Err)
}

// Report summarizes a build. It is informational only.
type Report struct {
	// Destination is the path the artifact was written to.
	Destination string

	// Mode is the failure policy the build ran with.
	Mode Mode

	// Attempted is the number of sources processed.
	Attempted int

	// Succeeded is the number of sources that produced a dictionary.
	Succeeded int

	// Entries is the number of unique words in the artifact.
	Entries int

	// Collisions lists words found in more than one source.
	Collisions []artifact.Collision

	// Failures lists the sources skipped in BestEffort mode, or the source
	// that aborted a FailFast build.
	Failures []SourceFailure

	// Diagnostics lists words dropped while parsing.
	Diagnostics []wordlist.Diagnostic

	// Elapsed is the duration of the build.
	Elapsed time.Duration
}

// result is the outcome of one source task.
type result struct {
	dict *wordlist.Dictionary
	err  error
}

// Run builds the artifact for sources and writes it to dest.
//
// When two sources contain the same word the entry from the source that
// comes first in sources is kept, regardless of which source finished
// first.
//
// Run returns a Report for every build that was started, including failed
// ones. It fails with Config.MissingRequired if sources is empty and with
// Config.Invalid if dest is empty.
func (p *Pipeline) Run(ctx context.Context, sources []*source.Source, dest string) (*Report, error) {
	if len(sources) == 0 {
		return nil, errcode.New(errcode.ConfigMissingRequired, "no dictionary sources given")
	}
	if dest == "" {
		return nil, errcode.New(errcode.ConfigInvalid, "destination path is empty")
	}
	for i, src := range sources {
		if src == nil {
			return nil, errcode.New(errcode.InputEmpty, "source %d is nil", i)
		}
	}

	start := time.Now()
	report := &Report{
		Destination: dest,
		Mode:        p.mode,
		Attempted:   len(sources),
	}
	defer func() {
		report.Elapsed = time.Since(start)
	}()

	p.log.InfoContext(ctx, "build started",
		slog.String("destination", dest),
		slog.String("mode", p.mode.String()),
		slog.Int("sources", len(sources)),
	)

	results, err := p.process(ctx, sources)

	var dicts []*wordlist.Dictionary
	for i, r := range results {
		switch {
		case r.dict != nil:
			report.Succeeded++
			dicts = append(dicts, r.dict)
			report.Diagnostics = append(report.Diagnostics, r.dict.Diagnostics()...)
		case r.err != nil:
			report.Failures = append(report.Failures, SourceFailure{Source: sources[i], Err: r.err})
		}
	}
	if err != nil {
		return report, err
	}

	for _, f := range report.Failures {
		p.log.WarnContext(ctx, "source skipped",
			slog.String("source", f.Source.Location()),
			slog.String("error", f.Err.Error()),
		)
	}

	a, err := artifact.Combine(dicts...)
	if err != nil {
		return report, err
	}
	report.Entries = a.TotalEntries()
	report.Collisions = a.Collisions()

	if err := p.writer.Write(ctx, a, dest); err != nil {
		return report, err
	}

	p.log.InfoContext(ctx, "build finished",
		slog.String("destination", dest),
		slog.Int("succeeded", report.Succeeded),
		slog.Int("entries", report.Entries),
		slog.Int("collisions", len(report.Collisions)),
	)

	return report, nil
}

// process fetches and parses every source. Results are indexed by the
// position of the source in sources.
func (p *Pipeline) process(ctx context.Context, sources []*source.Source) ([]result, error) {
	results := make([]result, len(sources))

	if p.mode == BestEffort {
		var g errgroup.Group
		g.SetLimit(p.concurrency)
		for i, src := range sources {
			g.Go(func() error {
				d, err := p.load(ctx, src)
				results[i] = result{dict: d, err: err}
				return nil
			})
		}
		_ = g.Wait()

		// A cancelled build is not best effort.
		if err := errcode.FromContext(ctx, "build"); err != nil {
			return results, err
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, src := range sources {
		g.Go(func() error {
			d, err := p.load(gctx, src)
			results[i] = result{dict: d, err: err}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		// Only report the source that caused the abort.
		for i := range results {
			if results[i].err != nil && results[i].err != err {
				results[i].err = nil
			}
		}
		return results, err
	}
	return results, nil
}

// load fetches and parses a single source.
func (p *Pipeline) load(ctx context.Context, src *source.Source) (*wordlist.Dictionary, error) {
	payload, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	d, err := p.parser.Parse(payload)
	if err != nil {
		return nil, err
	}

	p.log.DebugContext(ctx, "source loaded",
		slog.String("source", src.Location()),
		slog.Int("entries", d.Len()),
		slog.Int("dropped", len(d.Diagnostics())),
	)
	return d, nil
}

// Run builds the artifact for sources with default options and writes it to
// dest. Remote sources fail with Config.MissingRequired since no transport
// is configured; use New with a fetch.Fetcher to build from URLs.
func Run(ctx context.Context, sources []*source.Source, dest string, mode Mode) (*Report, error) {
	p, err := New(&Options{Mode: mode})
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, sources, dest)
}
