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
	"fmt"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/source"
)

// Entry is a normalized dictionary word.
type Entry struct {
	// Word is the normalized word.
	Word string

	// Source is the source the word was read from. It is used for
	// diagnostics only.
	Source *source.Source
}

// String returns the word.
func (e Entry) String() string {
	return e.Word
}

// Diagnostic records a non-fatal problem found while parsing.
type Diagnostic struct {
	// Source is the source location.
	Source string

	// Line is the 1-based line number.
	Line int

	// Code classifies the problem.
	Code errcode.Code

	// Message describes the problem.
	Message string
}

// String implements [fmt.Stringer].
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %s: %s", d.Source, d.Line, d.Code, d.Message)
}

// Dictionary is a set of normalized entries, unique by word, in the order
// they were first seen in the source.
type Dictionary struct {
	src         *source.Source
	entries     []Entry
	diagnostics []Diagnostic
	duplicates  int
}

// NewDictionary returns a dictionary holding words in the given order.
// Repeated words keep their first occurrence.
func NewDictionary(src *source.Source, words ...string) *Dictionary {
	d := &Dictionary{src: src}
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			d.duplicates++
			continue
		}
		seen[w] = true
		d.entries = append(d.entries, Entry{Word: w, Source: src})
	}
	return d
}

// Source returns the dictionary's source.
func (d *Dictionary) Source() *source.Source {
	return d.src
}

// Entries returns the dictionary entries in first-seen order.
func (d *Dictionary) Entries() []Entry {
	return d.entries
}

// Words returns the dictionary words in first-seen order.
func (d *Dictionary) Words() []string {
	words := make([]string, len(d.entries))
	for i, e := range d.entries {
		words[i] = e.Word
	}
	return words
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Diagnostics returns problems recorded while parsing.
func (d *Dictionary) Diagnostics() []Diagnostic {
	return d.diagnostics
}

// Duplicates returns how many repeated words were skipped.
func (d *Dictionary) Duplicates() int {
	return d.duplicates
}
