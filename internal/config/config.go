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

// Package config loads build configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ianlewis/go-thaidict"
	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/fetch"
	"github.com/ianlewis/go-thaidict/wordlist"
)

// Config is the build configuration.
type Config struct {
	Build BuildConfig `yaml:"build"`
	Fetch FetchConfig `yaml:"fetch"`
	Parse ParseConfig `yaml:"parse"`
	Log   LogConfig   `yaml:"log"`
}

// BuildConfig holds pipeline settings.
type BuildConfig struct {
	Sources     []string `yaml:"sources"     env:"THAIDICT_SOURCES"     env-separator:","`
	Output      string   `yaml:"output"      env:"THAIDICT_OUTPUT"`
	Encoding    string   `yaml:"encoding"    env:"THAIDICT_ENCODING"    env-default:"utf-8"`
	Mode        string   `yaml:"mode"        env:"THAIDICT_MODE"        env-default:"fail-fast"`
	Concurrency int      `yaml:"concurrency" env:"THAIDICT_CONCURRENCY" env-default:"4"`
}

// FetchConfig holds source retrieval settings.
type FetchConfig struct {
	Timeout  time.Duration `yaml:"timeout"   env:"THAIDICT_FETCH_TIMEOUT"   env-default:"30s"`
	Attempts int           `yaml:"attempts"  env:"THAIDICT_FETCH_ATTEMPTS"  env-default:"3"`
	Backoff  time.Duration `yaml:"backoff"   env:"THAIDICT_FETCH_BACKOFF"   env-default:"500ms"`
	MaxBytes int64         `yaml:"max_bytes" env:"THAIDICT_FETCH_MAX_BYTES" env-default:"67108864"`
}

// ParseConfig holds word-list parsing settings. MaxDropRate is kept as text
// so that an explicit zero is not replaced by its default.
type ParseConfig struct {
	MaxLength       int      `yaml:"max_length"       env:"THAIDICT_PARSE_MAX_LENGTH"       env-default:"128"`
	MaxDropRate     string   `yaml:"max_drop_rate"    env:"THAIDICT_PARSE_MAX_DROP_RATE"    env-default:"0.5"`
	CommentPrefixes []string `yaml:"comment_prefixes" env:"THAIDICT_PARSE_COMMENT_PREFIXES" env-default:"#" env-separator:","`
	Separator       string   `yaml:"separator"        env:"THAIDICT_PARSE_SEPARATOR"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"THAIDICT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"THAIDICT_LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from the YAML file at path and environment
// variables. Priority: ENV > YAML > defaults. If path is empty only the
// environment and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errcode.Wrap(errcode.ConfigInvalid, err, "config file %q not found", path)
			}
			return nil, errcode.Wrap(errcode.ConfigInvalid, err, "config file %q", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errcode.Wrap(errcode.ConfigInvalid, err, "reading config %q", path)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, errcode.Wrap(errcode.ConfigInvalid, err, "reading config from environment")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed with struct tags.
func (c *Config) Validate() error {
	if _, err := thaidict.ParseMode(c.Build.Mode); err != nil {
		return err
	}
	if c.Build.Concurrency < 1 {
		return invalid("build.concurrency must be > 0 (got %d)", c.Build.Concurrency)
	}
	if c.Fetch.Timeout <= 0 {
		return invalid("fetch.timeout must be > 0 (got %v)", c.Fetch.Timeout)
	}
	if c.Fetch.Attempts < 1 {
		return invalid("fetch.attempts must be > 0 (got %d)", c.Fetch.Attempts)
	}
	if c.Fetch.Backoff < 0 {
		return invalid("fetch.backoff must be >= 0 (got %v)", c.Fetch.Backoff)
	}
	if c.Fetch.MaxBytes < 1 {
		return invalid("fetch.max_bytes must be > 0 (got %d)", c.Fetch.MaxBytes)
	}
	if c.Parse.MaxLength < 1 {
		return invalid("parse.max_length must be > 0 (got %d)", c.Parse.MaxLength)
	}
	if _, err := c.Parse.dropRate(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return invalid("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

func (c *ParseConfig) dropRate() (float64, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(c.MaxDropRate), 64)
	if err != nil {
		return 0, errcode.Wrap(errcode.ConfigInvalid, err, "parse.max_drop_rate must be a number (got %q)", c.MaxDropRate)
	}
	if !(r >= 0 && r <= 1) {
		return 0, invalid("parse.max_drop_rate must be in [0, 1] (got %v)", r)
	}
	return r, nil
}

func invalid(format string, args ...any) error {
	return errcode.New(errcode.ConfigInvalid, format, args...)
}

// Mode returns the failure policy.
func (c *Config) Mode() thaidict.Mode {
	m, _ := thaidict.ParseMode(c.Build.Mode)
	return m
}

// FetchOptions returns options for a fetch.Fetcher.
func (c *Config) FetchOptions(transport fetch.Transport, logger *slog.Logger) *fetch.Options {
	return &fetch.Options{
		Transport: transport,
		Timeout:   c.Fetch.Timeout,
		Attempts:  c.Fetch.Attempts,
		Backoff:   c.Fetch.Backoff,
		MaxBytes:  c.Fetch.MaxBytes,
		Logger:    logger,
	}
}

// ParseOptions returns options for a wordlist.Parser.
func (c *Config) ParseOptions(logger *slog.Logger) *wordlist.Options {
	var rate *float64
	if r, err := c.Parse.dropRate(); err == nil {
		rate = &r
	}
	return &wordlist.Options{
		MaxLength:       c.Parse.MaxLength,
		MaxDropRate:     rate,
		CommentPrefixes: c.Parse.CommentPrefixes,
		Separator:       c.Parse.Separator,
		Logger:          logger,
	}
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, errcode.Wrap(errcode.ConfigInvalid, err, "unknown log level %q", s)
	}
	return level, nil
}

// String returns a short summary, used in debug logs.
func (c *Config) String() string {
	return fmt.Sprintf("mode=%s concurrency=%d sources=%d output=%q",
		c.Build.Mode, c.Build.Concurrency, len(c.Build.Sources), c.Build.Output)
}
