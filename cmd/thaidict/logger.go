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

package main

import (
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-thaidict/internal/config"
)

// newLogger returns a logger writing to the app's error writer. Settings in
// cfg are used unless overridden by the global flags. cfg may be nil.
func newLogger(c *cli.Context, cfg *config.LogConfig) (*slog.Logger, error) {
	levelName := c.String("log-level")
	format := c.String("log-format")
	if cfg != nil {
		levelName, format = cfg.Level, cfg.Format
	}

	level, err := config.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(c.App.ErrWriter, opts)
	} else {
		handler = slog.NewTextHandler(c.App.ErrWriter, opts)
	}
	return slog.New(handler), nil
}
