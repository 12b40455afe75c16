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

package artifact

import (
	"slices"
	"strings"
	"time"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/wordlist"
)

// Combine merges dictionaries into an artifact. When a word appears in more
// than one dictionary the entry from the earliest dictionary in dicts is
// kept and a Collision is recorded. Nil dictionaries are skipped.
//
// Combine fails with Dictionary.Empty if the union has no words.
func Combine(dicts ...*wordlist.Dictionary) (*Artifact, error) {
	return combineAt(time.Now(), dicts)
}

func combineAt(now time.Time, dicts []*wordlist.Dictionary) (*Artifact, error) {
	a := &Artifact{generatedAt: now}

	kept := map[string]wordlist.Entry{}
	for _, d := range dicts {
		if d == nil {
			continue
		}
		a.sourceCount++
		for _, e := range d.Entries() {
			if first, ok := kept[e.Word]; ok {
				a.collisions = append(a.collisions, Collision{
					Word:    e.Word,
					Kept:    location(first),
					Dropped: location(e),
				})
				continue
			}
			kept[e.Word] = e
			a.entries = append(a.entries, e)
		}
	}

	if len(a.entries) == 0 {
		return nil, errcode.EmptyDictionary("combined dictionary")
	}

	// Byte order of UTF-8 strings is codepoint order. Keys are unique so
	// the result does not depend on input order.
	slices.SortFunc(a.entries, func(x, y wordlist.Entry) int {
		return strings.Compare(x.Word, y.Word)
	})

	return a, nil
}

func location(e wordlist.Entry) string {
	if e.Source == nil {
		return ""
	}
	return e.Source.Location()
}
