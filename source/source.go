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

// Package source describes where dictionary data comes from.
package source

import (
	"strings"

	"github.com/ianlewis/go-thaidict/errcode"
)

// DefaultEncoding is the encoding assumed when none is declared.
const DefaultEncoding = "utf-8"

// Kind determines how a source is fetched.
type Kind int

const (
	// Local is a file on the local filesystem.
	Local Kind = iota

	// Remote is an http or https URL.
	Remote
)

// String implements [fmt.Stringer].
func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Remote:
		return "remote"
	default:
		return "unknown"
	}
}

// Source describes a single dictionary origin. A Source is immutable once
// created.
type Source struct {
	kind     Kind
	location string
	encoding string
}

// New returns a new Source. An empty encoding defaults to DefaultEncoding.
func New(kind Kind, location, encoding string) (*Source, error) {
	if location == "" {
		return nil, errcode.New(errcode.InputEmpty, "source location is empty")
	}
	if kind != Local && kind != Remote {
		return nil, errcode.New(errcode.ConfigInvalid, "unknown source kind %d for %q", int(kind), location)
	}
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if encoding == "" {
		encoding = DefaultEncoding
	}
	return &Source{
		kind:     kind,
		location: location,
		encoding: encoding,
	}, nil
}

// Parse returns a new Source inferring its kind from the location. Locations
// beginning with http:// or https:// are Remote, all others are Local.
func Parse(location, encoding string) (*Source, error) {
	kind := Local
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		kind = Remote
	}
	return New(kind, location, encoding)
}

// MustParse is like Parse but panics on error.
func MustParse(location, encoding string) *Source {
	s, err := Parse(location, encoding)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind returns the source kind.
func (s *Source) Kind() Kind {
	return s.kind
}

// Location returns the file path or URL.
func (s *Source) Location() string {
	return s.location
}

// Encoding returns the declared encoding name.
func (s *Source) Encoding() string {
	return s.encoding
}

// String returns the source location.
func (s *Source) String() string {
	return s.location
}

// Payload is the raw data fetched for a Source.
type Payload struct {
	Data   []byte
	Source *Source
}
