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

package fetch

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ianlewis/go-thaidict/errcode"
)

// fetchLocal reads the file at p.
func (f *Fetcher) fetchLocal(p string) ([]byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errcode.FileNotFound(p, err)
		}
		return nil, errcode.InvalidSource(p, "cannot stat file", err)
	}
	if info.IsDir() {
		return nil, errcode.InvalidSource(p, "is a directory", nil)
	}
	if !info.Mode().IsRegular() {
		return nil, errcode.InvalidSource(p, "is not a regular file", nil)
	}
	if !isCompressed(p) && info.Size() > f.maxBytes {
		return nil, errcode.MemoryLimit(p, f.maxBytes)
	}

	file, err := os.Open(p)
	if err != nil {
		return nil, errcode.InvalidSource(p, "cannot open file", err)
	}
	defer file.Close()

	var r io.Reader = file
	if isCompressed(p) {
		z, err := gzip.NewReader(file)
		if err != nil {
			return nil, errcode.InvalidSource(p, "cannot decompress file", err)
		}
		defer z.Close()
		r = z
	}

	data, err := readLimited(r, f.maxBytes)
	if err != nil {
		if errors.Is(err, ErrTooLarge) {
			return nil, errcode.MemoryLimit(p, f.maxBytes)
		}
		return nil, errcode.InvalidSource(p, "cannot read file", err)
	}
	return data, nil
}

// readLimited reads all of r, failing with ErrTooLarge if more than limit
// bytes are available.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// isCompressed reports whether name has a gzip or dictzip extension.
func isCompressed(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".gz") || strings.HasSuffix(lower, ".dz")
}

// gunzip decompresses gzip or dictzip data.
func gunzip(data []byte, limit int64) ([]byte, error) {
	z, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer z.Close()
	return readLimited(z, limit)
}
