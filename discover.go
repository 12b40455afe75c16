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
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/source"
)

// wordListExts are the file extensions recognized as word lists. Each may
// be followed by ".gz" or ".dz".
var wordListExts = []string{".txt", ".dic", ".lst"}

// Discover returns a Local source for every word-list file under root in
// lexical order. Files are recognized by extension: .txt, .dic and .lst,
// optionally compressed with gzip (.gz) or dictzip (.dz). Hidden files and
// directories are skipped.
//
// Discover fails with Dictionary.FileNotFound if root does not exist and
// with Dictionary.InvalidSource if it cannot be walked.
func Discover(root, encoding string) ([]*source.Source, error) {
	var sources []*source.Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isWordList(d.Name()) {
			return nil
		}

		src, err := source.New(source.Local, path, encoding)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		if _, ok := errcode.As(err); ok {
			return nil, err
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errcode.FileNotFound(root, err)
		}
		return nil, errcode.InvalidSource(root, "cannot walk directory", err)
	}
	return sources, nil
}

func isWordList(name string) bool {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".dz")
	for _, ext := range wordListExts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
