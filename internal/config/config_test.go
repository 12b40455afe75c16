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

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-thaidict"
	"github.com/ianlewis/go-thaidict/errcode"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "thaidict.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Config{
		Build: BuildConfig{
			Encoding:    "utf-8",
			Mode:        "fail-fast",
			Concurrency: 4,
		},
		Fetch: FetchConfig{
			Timeout:  30 * time.Second,
			Attempts: 3,
			Backoff:  500 * time.Millisecond,
			MaxBytes: 64 << 20,
		},
		Parse: ParseConfig{
			MaxLength:       128,
			MaxDropRate:     "0.5",
			CommentPrefixes: []string{"#"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
	if got, want := cfg.Mode(), thaidict.FailFast; got != want {
		t.Errorf("Mode = %v, want %v", got, want)
	}
}

func TestLoad_yaml(t *testing.T) {
	path := writeYAML(t, `
build:
  sources:
    - words/a.txt
    - https://example.com/b.txt
  output: out.txt
  encoding: tis-620
  mode: best-effort
  concurrency: 2
fetch:
  timeout: 5s
  attempts: 5
parse:
  max_length: 64
  comment_prefixes: ["#", "//"]
  separator: "\t"
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff([]string{"words/a.txt", "https://example.com/b.txt"}, cfg.Build.Sources); diff != "" {
		t.Errorf("Sources (-want, +got):\n%s", diff)
	}
	if got, want := cfg.Mode(), thaidict.BestEffort; got != want {
		t.Errorf("Mode = %v, want %v", got, want)
	}
	if got, want := cfg.Fetch.Timeout, 5*time.Second; got != want {
		t.Errorf("Timeout = %v, want %v", got, want)
	}
	// Unset values keep their defaults.
	if got, want := cfg.Fetch.Backoff, 500*time.Millisecond; got != want {
		t.Errorf("Backoff = %v, want %v", got, want)
	}

	opts := cfg.ParseOptions(nil)
	if diff := cmp.Diff([]string{"#", "//"}, opts.CommentPrefixes); diff != "" {
		t.Errorf("CommentPrefixes (-want, +got):\n%s", diff)
	}
	if got, want := opts.Separator, "\t"; got != want {
		t.Errorf("Separator = %q, want %q", got, want)
	}
	if got, want := cfg.FetchOptions(nil, nil).Attempts, 5; got != want {
		t.Errorf("Attempts = %d, want %d", got, want)
	}
}

func TestLoad_envOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
build:
  mode: best-effort
  concurrency: 2
`)
	t.Setenv("THAIDICT_CONCURRENCY", "8")
	t.Setenv("THAIDICT_SOURCES", "a.txt,b.txt")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Build.Concurrency, 8; got != want {
		t.Errorf("Concurrency = %d, want %d", got, want)
	}
	if diff := cmp.Diff([]string{"a.txt", "b.txt"}, cfg.Build.Sources); diff != "" {
		t.Errorf("Sources (-want, +got):\n%s", diff)
	}
	if got, want := cfg.Build.Mode, "best-effort"; got != want {
		t.Errorf("Mode = %q, want %q", got, want)
	}
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "mode", env: map[string]string{"THAIDICT_MODE": "sometimes"}},
		{name: "concurrency", env: map[string]string{"THAIDICT_CONCURRENCY": "0"}},
		{name: "attempts", env: map[string]string{"THAIDICT_FETCH_ATTEMPTS": "0"}},
		{name: "drop rate", env: map[string]string{"THAIDICT_PARSE_MAX_DROP_RATE": "1.5"}},
		{name: "drop rate not a number", env: map[string]string{"THAIDICT_PARSE_MAX_DROP_RATE": "half"}},
		{name: "log level", env: map[string]string{"THAIDICT_LOG_LEVEL": "loud"}},
		{name: "log format", env: map[string]string{"THAIDICT_LOG_FORMAT": "xml"}},
		{name: "unparsable", env: map[string]string{"THAIDICT_FETCH_TIMEOUT": "soon"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			for k, v := range test.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			if got, want := errcode.CodeOf(err), errcode.ConfigInvalid; got != want {
				t.Errorf("CodeOf = %v, want %v (err: %v)", got, want, err)
			}
		})
	}
}

func TestLoad_dropRate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  string
		want float64
	}{
		{name: "default", want: 0.5},
		{name: "yaml", yaml: "parse:\n  max_drop_rate: 0.1\n", want: 0.1},
		{name: "yaml zero", yaml: "parse:\n  max_drop_rate: 0\n", want: 0},
		{name: "env zero", env: "0", want: 0},
		{name: "env one", env: "1", want: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.env != "" {
				t.Setenv("THAIDICT_PARSE_MAX_DROP_RATE", test.env)
			}
			path := ""
			if test.yaml != "" {
				path = writeYAML(t, test.yaml)
			}

			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			opts := cfg.ParseOptions(nil)
			if opts.MaxDropRate == nil {
				t.Fatal("MaxDropRate = nil")
			}
			if got := *opts.MaxDropRate; got != test.want {
				t.Errorf("MaxDropRate = %v, want %v", got, test.want)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if got, want := errcode.CodeOf(err), errcode.ConfigInvalid; got != want {
		t.Errorf("CodeOf = %v, want %v (err: %v)", got, want, err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
