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

// Package wordlist implements parsing and validation of plain-text word-list
// dictionaries.
//
// A word list holds one word per line. Surrounding whitespace is trimmed,
// and blank lines and lines beginning with a comment prefix are skipped.
// Each word is normalized to Unicode NFC, zero-width characters are removed
// and internal whitespace runs are folded to a single space.
//
// Words containing control characters or longer than the maximum length are
// dropped and recorded as diagnostics. A source fails as a whole only when
// the share of dropped words exceeds a threshold, or when no words remain.
package wordlist
