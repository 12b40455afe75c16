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

// Package folding implements text transformers used to normalize dictionary
// words.
package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// zeroWidth are invisible runes that are common in Thai text, where they
// mark word or line break opportunities, and which never belong in a
// dictionary word.
var zeroWidth = map[rune]bool{
	'\u00ad': true, // SOFT HYPHEN
	'\u200b': true, // ZERO WIDTH SPACE
	'\u200c': true, // ZERO WIDTH NON-JOINER
	'\u200d': true, // ZERO WIDTH JOINER
	'\u2060': true, // WORD JOINER
	'\ufeff': true, // ZERO WIDTH NO-BREAK SPACE (BOM)
}

// IsZeroWidth reports whether r is removed by Folder.
func IsZeroWidth(r rune) bool {
	return zeroWidth[r]
}

// Folder removes zero-width runes, trims whitespace from the beginning and
// end of the input and replaces internal whitespace spans with a single
// ASCII space.
type Folder struct {
	// notStart is true after encountering the first non-whitespace rune.
	notStart bool

	// wsSpan is true while inside an internal whitespace span.
	wsSpan bool
}

// New returns a new Folder.
func New() *Folder {
	return &Folder{}
}

// Transform implements [transform.Transformer.Transform].
func (f *Folder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if zeroWidth[c] {
			nSrc += size
			continue
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if f.notStart {
				f.wsSpan = true
			}
			continue
		}

		if f.wsSpan {
			// Trailing whitespace is never emitted because a span is only
			// written once a following non-space rune is seen.
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
			f.wsSpan = false
		}
		f.notStart = true

		// size cannot be used for the output length because c may be
		// utf8.RuneError, which is 3 bytes when encoded.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
		nSrc += size
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *Folder) Reset() {
	*f = Folder{}
}
