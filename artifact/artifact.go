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

// Package artifact implements merging word lists into a single combined
// dictionary and persisting it.
//
// The on-disk format is a UTF-8 plain-text word list with one word per
// line, sorted by codepoint, with every line terminated by a newline and no
// blank or repeated lines. Identical inputs always produce byte-identical
// files.
package artifact

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/ianlewis/go-thaidict/wordlist"
)

// Collision records a word found in more than one source.
type Collision struct {
	// Word is the colliding word.
	Word string

	// Kept is the location of the source whose entry was kept.
	Kept string

	// Dropped is the location of the source whose entry was discarded.
	Dropped string
}

// Artifact is a combined dictionary. An Artifact is never modified after
// it is created.
type Artifact struct {
	entries     []wordlist.Entry
	collisions  []Collision
	sourceCount int
	generatedAt time.Time
}

// Entries returns the entries in codepoint order.
func (a *Artifact) Entries() []wordlist.Entry {
	return a.entries
}

// Words returns the words in codepoint order.
func (a *Artifact) Words() []string {
	words := make([]string, len(a.entries))
	for i, e := range a.entries {
		words[i] = e.Word
	}
	return words
}

// Collisions returns the words that were found in more than one source.
func (a *Artifact) Collisions() []Collision {
	return a.collisions
}

// SourceCount returns the number of dictionaries combined.
func (a *Artifact) SourceCount() int {
	return a.sourceCount
}

// TotalEntries returns the number of unique words.
func (a *Artifact) TotalEntries() int {
	return len(a.entries)
}

// GeneratedAt returns the time the artifact was created.
func (a *Artifact) GeneratedAt() time.Time {
	return a.generatedAt
}

// Encode writes the artifact to w in the word-list format.
func Encode(w io.Writer, a *Artifact) error {
	bw := bufio.NewWriter(w)
	for _, e := range a.entries {
		if _, err := bw.WriteString(e.Word); err != nil {
			return fmt.Errorf("writing word: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing word: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing: %w", err)
	}
	return nil
}
