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
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/internal/index"
)

type word string

func (w word) String() string { return string(w) }

// Lexicon is a read-only word set loaded from a written artifact.
type Lexicon struct {
	path string
	idx  *index.Index[word]
}

// Load reads the artifact at path. A path ending in ".dz" is read as
// dictzip compressed.
//
// Load fails with Dictionary.InvalidFormat if the file is not a
// well-formed word list: every line must be non-empty valid UTF-8, lines
// must be strictly increasing in codepoint order, and the last line must
// be terminated by a newline.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errcode.FileNotFound(path, err)
		}
		return nil, errcode.InvalidSource(path, "cannot read file", err)
	}

	if isCompressed(path) {
		data, err = decompress(data)
		if err != nil {
			return nil, errcode.InvalidSource(path, "cannot decompress artifact", err)
		}
	}

	words, err := decodeWords(path, data)
	if err != nil {
		return nil, err
	}

	return &Lexicon{
		path: path,
		idx:  index.New(words),
	}, nil
}

func decompress(data []byte) ([]byte, error) {
	z, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer z.Close()

	b, err := io.ReadAll(z)
	if err != nil {
		return nil, fmt.Errorf("reading gzip stream: %w", err)
	}
	return b, nil
}

func decodeWords(path string, data []byte) ([]word, error) {
	if len(data) == 0 {
		return nil, errcode.EmptyDictionary(fmt.Sprintf("%q", path))
	}
	if data[len(data)-1] != '\n' {
		return nil, errcode.InvalidFormat(path, "last line is not newline terminated")
	}

	lines := strings.Split(string(data[:len(data)-1]), "\n")
	words := make([]word, 0, len(lines))
	for i, line := range lines {
		lineNum := i + 1
		switch {
		case line == "":
			return nil, errcode.InvalidFormat(path, fmt.Sprintf("line %d is empty", lineNum))
		case !utf8.ValidString(line):
			return nil, errcode.InvalidFormat(path, fmt.Sprintf("line %d is not valid UTF-8", lineNum))
		case i > 0 && line <= lines[i-1]:
			return nil, errcode.InvalidFormat(path, fmt.Sprintf("line %d is out of order or repeated", lineNum))
		}
		words = append(words, word(line))
	}
	return words, nil
}

func (l *Lexicon) loaded() error {
	if l == nil || l.idx == nil || l.idx.Len() == 0 {
		return errcode.New(errcode.DictionaryNotLoaded, "lexicon is not loaded")
	}
	return nil
}

// Path returns the file the lexicon was loaded from.
func (l *Lexicon) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Len returns the number of words in the lexicon.
func (l *Lexicon) Len() int {
	if l == nil || l.idx == nil {
		return 0
	}
	return l.idx.Len()
}

// Contains reports whether w is in the lexicon. It returns
// Dictionary.NotLoaded if the lexicon has no words.
func (l *Lexicon) Contains(w string) (bool, error) {
	if err := l.loaded(); err != nil {
		return false, err
	}
	return l.idx.Contains(w), nil
}

// Prefix returns the words that begin with prefix in codepoint order.
func (l *Lexicon) Prefix(prefix string) ([]string, error) {
	if err := l.loaded(); err != nil {
		return nil, err
	}
	return toStrings(l.idx.Prefix(prefix)), nil
}

// Words returns all words in codepoint order.
func (l *Lexicon) Words() []string {
	if l == nil || l.idx == nil {
		return nil
	}
	return toStrings(l.idx.All())
}

func toStrings(ws []word) []string {
	if ws == nil {
		return nil
	}
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = string(w)
	}
	return s
}
