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

// Package index implements a sorted in-memory index of dictionary words.
package index

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index is a sorted array of values keyed by their string form. Lookups are
// binary searches.
type Index[V fmt.Stringer] struct {
	// values is sorted by String().
	values []V
}

// New creates an index from a copy of values, sorted by codepoint order of
// their string form. The sort is stable so equal keys keep their order.
func New[V fmt.Stringer](values []V) *Index[V] {
	sorted := slices.Clone(values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return strings.Compare(a.String(), b.String())
	})
	return &Index[V]{values: sorted}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.values)
}

// All returns all values in sorted order.
func (idx *Index[V]) All() []V {
	return idx.values
}

// Search returns all values whose key equals query.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.values), func(i int) int {
		return strings.Compare(query, idx.values[i].String())
	})
	if !found {
		return nil
	}

	j := i + 1
	for j < len(idx.values) && idx.values[j].String() == query {
		j++
	}
	return idx.values[i:j]
}

// Contains reports whether a value with the given key exists.
func (idx *Index[V]) Contains(query string) bool {
	_, found := sort.Find(len(idx.values), func(i int) int {
		return strings.Compare(query, idx.values[i].String())
	})
	return found
}

// Prefix returns all values whose key begins with prefix.
func (idx *Index[V]) Prefix(prefix string) []V {
	i := sort.Search(len(idx.values), func(i int) bool {
		return idx.values[i].String() >= prefix
	})

	j := i
	for j < len(idx.values) && strings.HasPrefix(idx.values[j].String(), prefix) {
		j++
	}
	if i == j {
		return nil
	}
	return idx.values[i:j]
}
