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

package index

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type String string

func (s String) String() string {
	return string(s)
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    []String
		query    string
		expected []String
	}{
		{
			name:     "single result",
			index:    []String{"แมว", "บ้าน", "รถ"},
			query:    "รถ",
			expected: []String{"รถ"},
		},
		{
			name:     "multiple results",
			index:    []String{"รถ", "บ้าน", "รถ"},
			query:    "รถ",
			expected: []String{"รถ", "รถ"},
		},
		{
			name:     "no results",
			index:    []String{"แมว", "บ้าน", "รถ"},
			query:    "ไก่",
			expected: nil,
		},
		{
			name:     "empty index",
			index:    nil,
			query:    "รถ",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			idx := New(test.index)
			if diff := cmp.Diff(test.expected, idx.Search(test.query)); diff != "" {
				t.Errorf("Search (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(len(test.expected) > 0, idx.Contains(test.query)); diff != "" {
				t.Errorf("Contains (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	idx := New([]String{"รถไฟ", "บ้าน", "รถ", "รถเมล์", "แมว"})

	tests := []struct {
		prefix   string
		expected []String
	}{
		{prefix: "รถ", expected: []String{"รถ", "รถเมล์", "รถไฟ"}},
		{prefix: "บ", expected: []String{"บ้าน"}},
		{prefix: "ไก่", expected: nil},
		{prefix: "", expected: []String{"บ้าน", "รถ", "รถเมล์", "รถไฟ", "แมว"}},
	}

	for _, test := range tests {
		t.Run(test.prefix, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, idx.Prefix(test.prefix)); diff != "" {
				t.Errorf("Prefix (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_sorted(t *testing.T) {
	t.Parallel()

	input := []String{"แมว", "บ้าน", "รถ"}
	idx := New(input)

	if diff := cmp.Diff([]String{"บ้าน", "รถ", "แมว"}, idx.All()); diff != "" {
		t.Errorf("All (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]String{"แมว", "บ้าน", "รถ"}, input); diff != "" {
		t.Errorf("input modified (-want, +got):\n%s", diff)
	}
	if got, want := idx.Len(), 3; got != want {
		t.Errorf("Len = %d, want %d", got, want)
	}
}
