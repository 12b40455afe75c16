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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-thaidict/artifact"
	"github.com/ianlewis/go-thaidict/wordlist"
)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "look up words in a built word list",
	ArgsUsage: "WORD...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dict",
			Usage:   "read the word list from `FILE`",
			Aliases: []string{"f"},
		},
		&cli.BoolFlag{
			Name:               "prefix",
			Usage:              "list all words beginning with each WORD",
			Aliases:            []string{"p"},
			DisableDefaultText: true,
		},
	},
	OnUsageError: usageError,
	Action:       runLookup,
}

func runLookup(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("%w: no words given", ErrFlagParse)
	}

	path := c.String("dict")
	if path == "" {
		path = defaultOutput()
	}
	lex, err := artifact.Load(path)
	if err != nil {
		return err
	}

	if c.Bool("prefix") {
		tbl := table.New("Prefix", "Word").WithWriter(c.App.Writer)
		for _, arg := range c.Args().Slice() {
			prefix, err := wordlist.Normalize(arg)
			if err != nil {
				return err
			}
			words, err := lex.Prefix(prefix)
			if err != nil {
				return err
			}
			for _, w := range words {
				tbl.AddRow(prefix, w)
			}
		}
		tbl.Print()
		return nil
	}

	tbl := table.New("Word", "Found").WithWriter(c.App.Writer)
	for _, arg := range c.Args().Slice() {
		word, err := wordlist.Normalize(arg)
		if err != nil {
			return err
		}
		found, err := lex.Contains(word)
		if err != nil {
			return err
		}
		tbl.AddRow(word, found)
	}
	tbl.Print()
	return nil
}
