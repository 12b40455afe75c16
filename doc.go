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

// Package thaidict builds Thai word-list dictionaries from one or more
// sources.
//
// A build runs in four stages:
//  1. Each source is fetched from the filesystem or over HTTP
//     (package fetch).
//  2. Each payload is decoded, normalized and validated into a dictionary
//     (package wordlist).
//  3. The dictionaries are merged into a single sorted artifact
//     (package artifact).
//  4. The artifact is written atomically to its destination.
//
// Stages 1 and 2 run concurrently, one task per source. The Mode of a
// Pipeline decides whether a failing source aborts the build or is
// skipped.
//
// The written artifact is a UTF-8 plain-text word list with one word per
// line, sorted by codepoint, with no blank or repeated lines.
//
// All errors returned by this module are *errcode.Error values carrying a
// stable code.
package thaidict
