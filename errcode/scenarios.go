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

package errcode

import (
	"context"
	"errors"
)

// FileNotFound returns a Dictionary.FileNotFound error for path.
func FileNotFound(path string, err error) *Error {
	return Wrap(DictionaryFileNotFound, err, "dictionary file %q not found", path)
}

// InvalidSource returns a Dictionary.InvalidSource error for location.
func InvalidSource(location, reason string, err error) *Error {
	return Wrap(DictionaryInvalidSource, err, "invalid source %q: %s", location, reason)
}

// DownloadFailed returns a Dictionary.DownloadFailed error for url.
func DownloadFailed(url string, attempts int, err error) *Error {
	return Wrap(DictionaryDownloadFailed, err, "downloading %q failed after %d attempt(s)", url, attempts)
}

// MissingTransport returns a Config.MissingRequired error for a remote
// source when no HTTP transport has been configured.
func MissingTransport(url string) *Error {
	return New(ConfigMissingRequired,
		"remote source %q requires an HTTP transport; configure one with "+
			"fetch.Options{Transport: httptransport.New(nil, 0)} or use a local file",
		url)
}

// InvalidEncoding returns an Input.InvalidEncoding error.
func InvalidEncoding(location, encoding string, err error) *Error {
	return Wrap(InputInvalidEncoding, err, "%q is not valid %s", location, encoding)
}

// InvalidFormat returns a Dictionary.InvalidFormat error.
func InvalidFormat(location, reason string) *Error {
	return New(DictionaryInvalidFormat, "%q: %s", location, reason)
}

// EmptyDictionary returns a Dictionary.Empty error.
func EmptyDictionary(what string) *Error {
	return New(DictionaryEmpty, "%s contains no words", what)
}

// WriteFailed returns a Dictionary.WriteFailed error for path.
func WriteFailed(path string, err error) *Error {
	return Wrap(DictionaryWriteFailed, err, "writing %q", path)
}

// MemoryLimit returns a System.MemoryLimit error.
func MemoryLimit(location string, limit int64) *Error {
	return New(SystemMemoryLimit, "%q exceeds the %d byte limit", location, limit)
}

// TimeLimit returns a System.TimeLimit error wrapping a context error.
func TimeLimit(what string, err error) *Error {
	if errors.Is(err, context.Canceled) {
		return Wrap(SystemTimeLimit, err, "%s cancelled", what)
	}
	return Wrap(SystemTimeLimit, err, "%s exceeded its deadline", what)
}

// FromContext returns a System.TimeLimit error if ctx is done, and nil
// otherwise.
func FromContext(ctx context.Context, what string) error {
	if err := ctx.Err(); err != nil {
		return TimeLimit(what, err)
	}
	return nil
}
