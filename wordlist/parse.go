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

package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/internal/folding"
	"github.com/ianlewis/go-thaidict/source"
)

const (
	// DefaultMaxLength is the default maximum word length in runes.
	DefaultMaxLength = 128

	// DefaultMaxDropRate is the default share of dropped words above which
	// a source is rejected.
	DefaultMaxDropRate = 0.5
)

// DefaultCommentPrefixes are the default comment line prefixes.
var DefaultCommentPrefixes = []string{"#"}

// Options are options for a Parser. Zero values use the defaults.
type Options struct {
	// MaxLength is the maximum word length in runes.
	MaxLength int

	// MaxDropRate is the share of candidate words, in [0, 1], that may be
	// dropped before the source is rejected with Dictionary.InvalidFormat.
	// A rate of zero rejects a source if any word is dropped. Defaults to
	// DefaultMaxDropRate when nil.
	MaxDropRate *float64

	// CommentPrefixes are prefixes marking comment lines. Defaults to
	// DefaultCommentPrefixes.
	CommentPrefixes []string

	// Separator, when not empty, splits each line into fields and only the
	// first field is used as the word. This allows reading lists annotated
	// with extra columns such as frequencies, e.g. "บ้าน\t1204".
	Separator string

	// Logger receives parse progress. Defaults to a discard logger.
	Logger *slog.Logger
}

// Parser parses raw payloads into dictionaries. A Parser is safe for
// concurrent use.
type Parser struct {
	maxLength       int
	maxDropRate     float64
	commentPrefixes []string
	separator       string
	log             *slog.Logger
}

// NewParser returns a new Parser.
func NewParser(opts *Options) (*Parser, error) {
	if opts == nil {
		opts = &Options{}
	}

	p := &Parser{
		maxLength:       opts.MaxLength,
		maxDropRate:     DefaultMaxDropRate,
		commentPrefixes: opts.CommentPrefixes,
		separator:       opts.Separator,
		log:             opts.Logger,
	}

	if opts.MaxDropRate != nil {
		p.maxDropRate = *opts.MaxDropRate
	}

	if p.maxLength < 0 {
		return nil, errcode.New(errcode.ConfigInvalid, "max length must not be negative: %d", p.maxLength)
	}
	if !(p.maxDropRate >= 0 && p.maxDropRate <= 1) {
		return nil, errcode.New(errcode.ConfigInvalid, "max drop rate must be between 0 and 1: %v", p.maxDropRate)
	}
	for _, prefix := range p.commentPrefixes {
		if prefix == "" {
			return nil, errcode.New(errcode.ConfigInvalid, "comment prefix must not be empty")
		}
	}

	if p.maxLength == 0 {
		p.maxLength = DefaultMaxLength
	}
	if p.commentPrefixes == nil {
		p.commentPrefixes = DefaultCommentPrefixes
	}
	if p.log == nil {
		p.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return p, nil
}

// Parse decodes, normalizes and validates the payload.
func (p *Parser) Parse(payload *source.Payload) (*Dictionary, error) {
	if payload == nil || payload.Source == nil {
		return nil, errcode.New(errcode.InputEmpty, "payload has no source")
	}
	src := payload.Source
	location := src.Location()

	text, err := decode(payload.Data, src.Encoding(), location)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{src: src}
	seen := map[string]bool{}
	normalizer := newNormalizer()

	var candidates, dropped int
	s := bufio.NewScanner(bytes.NewReader(text))
	// Allow lines as long as the whole payload.
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(text)+1, bufio.MaxScanTokenSize))
	for line := 1; s.Scan(); line++ {
		token := s.Text()
		if p.separator != "" {
			token, _, _ = strings.Cut(token, p.separator)
		}
		token = strings.TrimSpace(token)
		if token == "" || p.isComment(token) {
			continue
		}
		candidates++

		if r, ok := findControl(token); ok {
			dropped++
			d.diagnostics = append(d.diagnostics, Diagnostic{
				Source:  location,
				Line:    line,
				Code:    errcode.DictionaryInvalidFormat,
				Message: fmt.Sprintf("word contains control character %U", r),
			})
			continue
		}

		word, _, err := transform.String(normalizer, token)
		if err != nil {
			return nil, errcode.Wrap(errcode.InputInvalidEncoding, err, "normalizing line %d of %q", line, location)
		}
		if word == "" {
			// The line held only invisible characters.
			candidates--
			continue
		}

		if n := utf8.RuneCountInString(word); n > p.maxLength {
			dropped++
			d.diagnostics = append(d.diagnostics, Diagnostic{
				Source:  location,
				Line:    line,
				Code:    errcode.InputTooLong,
				Message: fmt.Sprintf("word is %d characters long, maximum is %d", n, p.maxLength),
			})
			continue
		}

		if seen[word] {
			d.duplicates++
			continue
		}
		seen[word] = true
		d.entries = append(d.entries, Entry{
			Word:   word,
			Source: src,
		})
	}
	if err := s.Err(); err != nil {
		return nil, errcode.Wrap(errcode.DictionaryInvalidFormat, err, "scanning %q", location)
	}

	if candidates > 0 {
		if rate := float64(dropped) / float64(candidates); rate > p.maxDropRate {
			return nil, errcode.InvalidFormat(location,
				fmt.Sprintf("%d of %d words rejected, exceeding the maximum drop rate of %v", dropped, candidates, p.maxDropRate))
		}
	}

	if len(d.entries) == 0 {
		return nil, errcode.EmptyDictionary(fmt.Sprintf("%q", location))
	}

	p.log.Debug("parsed source",
		slog.String("source", location),
		slog.Int("entries", len(d.entries)),
		slog.Int("dropped", dropped),
		slog.Int("duplicates", d.duplicates),
	)

	return d, nil
}

func (p *Parser) isComment(token string) bool {
	for _, prefix := range p.commentPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// findControl returns the first control character in s.
func findControl(s string) (rune, bool) {
	for _, r := range s {
		if unicode.IsControl(r) {
			return r, true
		}
	}
	return 0, false
}

func newNormalizer() transform.Transformer {
	return transform.Chain(folding.New(), norm.NFC)
}

// Normalize returns s normalized the way words are normalized when parsing.
// It fails with Input.Empty if nothing remains.
func Normalize(s string) (string, error) {
	word, _, err := transform.String(newNormalizer(), strings.TrimSpace(s))
	if err != nil {
		return "", errcode.Wrap(errcode.InputInvalidEncoding, err, "normalizing %q", s)
	}
	if word == "" {
		return "", errcode.New(errcode.InputEmpty, "%q is empty after normalization", s)
	}
	return word, nil
}
