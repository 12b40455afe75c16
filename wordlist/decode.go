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
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-thaidict/errcode"
)

// LookupEncoding returns the encoding for the given name. Names are those of
// the WHATWG Encoding Standard, e.g. "utf-8", "tis-620", "windows-874" or
// "utf-16le".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errcode.Wrap(errcode.ConfigInvalid, err, "unknown encoding %q", name)
	}
	return enc, nil
}

// decode decodes data from the named encoding into UTF-8. Decoding fails if
// any input byte sequence is invalid in the encoding.
func decode(data []byte, name, location string) ([]byte, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}

	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		if !utf8.Valid(data) {
			return nil, errcode.InvalidEncoding(location, name, errInvalidUTF8(data))
		}
		// Strip a leading byte order mark, if any.
		out, _, err := transform.Bytes(textunicode.UTF8BOM.NewDecoder(), data)
		if err != nil {
			return nil, errcode.InvalidEncoding(location, name, err)
		}
		return out, nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errcode.InvalidEncoding(location, name, err)
	}
	// Decoders replace undecodable input with U+FFFD rather than failing.
	if i := bytes.IndexRune(out, utf8.RuneError); i >= 0 {
		return nil, errcode.InvalidEncoding(location, name,
			fmt.Errorf("undecodable byte sequence before decoded offset %d", i))
	}
	return out, nil
}

// errInvalidUTF8 returns an error describing the first invalid UTF-8
// sequence in data.
func errInvalidUTF8(data []byte) error {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("invalid UTF-8 sequence at byte offset %d", i)
		}
		i += size
	}
	return nil
}
