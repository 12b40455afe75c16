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

// Package errcode implements the categorized error registry shared by all
// dictionary preparation packages.
//
// Every error returned by an exported function in this module is an *Error.
// An Error carries a stable numeric Code. The code's thousands digit
// determines its Category:
//
//	1xxx Input
//	2xxx Dictionary
//	3xxx Algorithm
//	4xxx Config
//	5xxx System
//
// Codes never change between versions so callers may branch on them.
package errcode

import (
	"errors"
	"fmt"
	"strconv"
)

// Category is a broad class of failure.
type Category int

const (
	// Input errors are problems with the content supplied to the pipeline.
	Input Category = iota + 1

	// Dictionary errors are problems with dictionary sources or artifacts.
	Dictionary

	// Algorithm errors are reserved for dictionary consumers.
	Algorithm

	// Config errors are problems with how the pipeline was configured.
	Config

	// System errors are resource limits of the running process.
	System
)

var categoryNames = map[Category]string{
	Input:      "Input",
	Dictionary: "Dictionary",
	Algorithm:  "Algorithm",
	Config:     "Config",
	System:     "System",
}

// String implements [fmt.Stringer].
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Category(" + strconv.Itoa(int(c)) + ")"
}

// Code is a stable numeric error identifier.
type Code int

const (
	// InputEmpty indicates a required input value was empty.
	InputEmpty Code = 1001

	// InputInvalidEncoding indicates bytes could not be decoded losslessly.
	InputInvalidEncoding Code = 1002

	// InputTooLong indicates a token exceeded the maximum length.
	InputTooLong Code = 1003

	// DictionaryNotLoaded indicates a dictionary was used before loading.
	DictionaryNotLoaded Code = 2001

	// DictionaryFileNotFound indicates a local dictionary file is absent.
	DictionaryFileNotFound Code = 2002

	// DictionaryInvalidFormat indicates malformed dictionary content.
	DictionaryInvalidFormat Code = 2003

	// DictionaryInvalidSource indicates a source that cannot be read, such as
	// a directory or a malformed URL.
	DictionaryInvalidSource Code = 2004

	// DictionaryDownloadFailed indicates a remote fetch failed.
	DictionaryDownloadFailed Code = 2005

	// DictionaryEmpty indicates a dictionary with no entries.
	DictionaryEmpty Code = 2006

	// DictionaryWriteFailed indicates the artifact could not be persisted.
	DictionaryWriteFailed Code = 2007

	// AlgorithmNotFound is reserved for dictionary consumers.
	AlgorithmNotFound Code = 3001

	// AlgorithmProcessingFailed is reserved for dictionary consumers.
	AlgorithmProcessingFailed Code = 3002

	// ConfigInvalid indicates an invalid configuration value.
	ConfigInvalid Code = 4001

	// ConfigMissingRequired indicates a required setting or capability is
	// absent.
	ConfigMissingRequired Code = 4002

	// SystemMemoryLimit indicates a size bound was exceeded.
	SystemMemoryLimit Code = 5001

	// SystemTimeLimit indicates a deadline was exceeded or the run was
	// cancelled.
	SystemTimeLimit Code = 5002
)

var codeNames = map[Code]string{
	InputEmpty:                "Empty",
	InputInvalidEncoding:      "InvalidEncoding",
	InputTooLong:              "TooLong",
	DictionaryNotLoaded:       "NotLoaded",
	DictionaryFileNotFound:    "FileNotFound",
	DictionaryInvalidFormat:   "InvalidFormat",
	DictionaryInvalidSource:   "InvalidSource",
	DictionaryDownloadFailed:  "DownloadFailed",
	DictionaryEmpty:           "Empty",
	DictionaryWriteFailed:     "WriteFailed",
	AlgorithmNotFound:         "NotFound",
	AlgorithmProcessingFailed: "ProcessingFailed",
	ConfigInvalid:             "Invalid",
	ConfigMissingRequired:     "MissingRequired",
	SystemMemoryLimit:         "MemoryLimit",
	SystemTimeLimit:           "TimeLimit",
}

// Codes returns all registered codes in ascending order.
func Codes() []Code {
	return []Code{
		InputEmpty,
		InputInvalidEncoding,
		InputTooLong,
		DictionaryNotLoaded,
		DictionaryFileNotFound,
		DictionaryInvalidFormat,
		DictionaryInvalidSource,
		DictionaryDownloadFailed,
		DictionaryEmpty,
		DictionaryWriteFailed,
		AlgorithmNotFound,
		AlgorithmProcessingFailed,
		ConfigInvalid,
		ConfigMissingRequired,
		SystemMemoryLimit,
		SystemTimeLimit,
	}
}

// Category returns the code's category.
func (c Code) Category() Category {
	return Category(int(c) / 1000)
}

// Registered reports whether c is part of the registry.
func (c Code) Registered() bool {
	_, ok := codeNames[c]
	return ok
}

// String returns the qualified name of the code, e.g.
// "Dictionary.FileNotFound".
func (c Code) String() string {
	name, ok := codeNames[c]
	if !ok {
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}
	return c.Category().String() + "." + name
}

// Error is a categorized error.
type Error struct {
	// Code is the stable error code.
	Code Code

	// Message is a human readable description of the failure.
	Message string

	// Err is the optional lower-level cause.
	Err error
}

// New returns a new Error with the given code and message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns a new Error with the given code and message that wraps err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Category returns the error's category.
func (e *Error) Category() Category {
	return e.Code.Category()
}

// Error implements [error.Error].
func (e *Error) Error() string {
	s := fmt.Sprintf("%s (%d)", e.Code, int(e.Code))
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code. This allows
// matching with [errors.Is] against a template such as
// errcode.New(errcode.DictionaryEmpty, "").
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain. It returns
// zero if err is nil or carries no code.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return 0
}

// Has reports whether err carries the given code anywhere in its chain.
func Has(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
