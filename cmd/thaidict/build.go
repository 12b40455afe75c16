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
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-thaidict"
	"github.com/ianlewis/go-thaidict/artifact"
	"github.com/ianlewis/go-thaidict/errcode"
	"github.com/ianlewis/go-thaidict/fetch"
	"github.com/ianlewis/go-thaidict/fetch/httptransport"
	"github.com/ianlewis/go-thaidict/internal/config"
	"github.com/ianlewis/go-thaidict/source"
	"github.com/ianlewis/go-thaidict/wordlist"
)

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "build a word list from sources",
	ArgsUsage: "[SOURCE...]",
	Description: "Each SOURCE is a file path or an http(s) URL. " +
		"Files ending in .gz or .dz are decompressed.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "read settings from YAML `FILE`",
			Aliases: []string{"c"},
			EnvVars: []string{"THAIDICT_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Usage:   "write the word list to `FILE` (.dz is compressed)",
			Aliases: []string{"o"},
		},
		&cli.StringSliceFlag{
			Name:    "dir",
			Usage:   "include word lists found under `DIR`",
			Aliases: []string{"d"},
		},
		&cli.StringFlag{
			Name:    "encoding",
			Usage:   "source `ENCODING` (e.g. utf-8, tis-620)",
			Aliases: []string{"e"},
		},
		&cli.BoolFlag{
			Name:               "best-effort",
			Usage:              "skip sources that fail instead of aborting",
			DisableDefaultText: true,
		},
		&cli.IntFlag{
			Name:    "concurrency",
			Usage:   "process `N` sources at once",
			Aliases: []string{"j"},
		},
		&cli.BoolFlag{
			Name:               "offline",
			Usage:              "do not fetch remote sources",
			DisableDefaultText: true,
		},
	},
	OnUsageError: usageError,
	Action:       runBuild,
}

func runBuild(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyBuildFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(c, &cfg.Log)
	if err != nil {
		return err
	}
	log.DebugContext(c.Context, "configuration loaded", slog.String("config", cfg.String()))

	sources, err := buildSources(c, cfg)
	if err != nil {
		return err
	}

	var transport fetch.Transport
	if !c.Bool("offline") {
		transport = httptransport.New(nil, cfg.Fetch.MaxBytes)
	}
	fetcher, err := fetch.New(cfg.FetchOptions(transport, log))
	if err != nil {
		return err
	}
	parser, err := wordlist.NewParser(cfg.ParseOptions(log))
	if err != nil {
		return err
	}
	p, err := thaidict.New(&thaidict.Options{
		Mode:        cfg.Mode(),
		Concurrency: cfg.Build.Concurrency,
		Fetcher:     fetcher,
		Parser:      parser,
		Writer:      artifact.NewWriter(artifact.WriterOptions{Logger: log}),
		Logger:      log,
	})
	if err != nil {
		return err
	}

	dest := cfg.Build.Output
	if dest == "" {
		dest = defaultOutput()
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errcode.WriteFailed(dest, err)
	}

	report, err := p.Run(c.Context, sources, dest)
	if report != nil {
		printReport(c.App.Writer, report)
		printFailures(c.App.ErrWriter, report)
	}
	return err
}

func applyBuildFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("output") {
		cfg.Build.Output = c.String("output")
	}
	if c.IsSet("encoding") {
		cfg.Build.Encoding = c.String("encoding")
	}
	if c.IsSet("concurrency") {
		cfg.Build.Concurrency = c.Int("concurrency")
	}
	if c.Bool("best-effort") {
		cfg.Build.Mode = thaidict.BestEffort.String()
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
}

// buildSources returns the configured sources followed by the command
// line arguments and the word lists found in each --dir.
func buildSources(c *cli.Context, cfg *config.Config) ([]*source.Source, error) {
	locations := append([]string{}, cfg.Build.Sources...)
	locations = append(locations, c.Args().Slice()...)

	var sources []*source.Source
	for _, loc := range locations {
		src, err := source.Parse(loc, cfg.Build.Encoding)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	for _, dir := range c.StringSlice("dir") {
		found, err := thaidict.Discover(dir, cfg.Build.Encoding)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}

	return sources, nil
}

func printReport(w io.Writer, r *thaidict.Report) {
	tbl := table.New("", "").WithWriter(w)
	tbl.AddRow("Destination:", r.Destination)
	tbl.AddRow("Mode:", r.Mode)
	tbl.AddRow("Sources:", fmt.Sprintf("%d of %d succeeded", r.Succeeded, r.Attempted))
	tbl.AddRow("Entries:", r.Entries)
	tbl.AddRow("Collisions:", len(r.Collisions))
	tbl.AddRow("Dropped words:", len(r.Diagnostics))
	tbl.AddRow("Elapsed:", r.Elapsed.Round(time.Millisecond))
	tbl.Print()
}

func printFailures(w io.Writer, r *thaidict.Report) {
	if len(r.Failures) == 0 {
		return
	}

	tbl := table.New("Source", "Code", "Error").WithWriter(w)
	for _, f := range r.Failures {
		code := errcode.CodeOf(f.Err)
		tbl.AddRow(f.Source.Location(), strconv.Itoa(int(code)), f.Err)
	}
	tbl.Print()
}
