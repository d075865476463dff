//
// Copyright (c) 2026 Harmony Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package harmonycfg parses the command line (spec.md §6.2) into a
// Config, wired through github.com/urfave/cli/v2 the way go/ct/driver/cli
// registers its own flags: typed cli.Flag values bound directly to
// Destination fields rather than re-read from cli.Context.
package harmonycfg

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

// Config is the fully parsed command line.
type Config struct {
	Listing  bool // -a: print instruction listing, do not verify
	Blocking bool // -b: blocking mode
	Dump     bool // -d: dump the full state graph in the report

	Constants      map[string]string // -c NAME=EXPR, repeatable
	ModuleVersions map[string]string // -m NAME=VER, repeatable
	Seed           int64             // -seed: randomize candidate order reproducibly

	Files []string
}

// New returns an empty Config ready to be populated by App's Action.
func New() *Config {
	return &Config{
		Constants:      map[string]string{},
		ModuleVersions: map[string]string{},
	}
}

// App builds the single-command urfave/cli/v2 application that parses
// os.Args into cfg. Verification is this program's only job (unlike
// go/ct/driver's multi-subcommand conformance driver), so flags attach to
// the app's root command.
func App(cfg *Config) *cli.App {
	var rawConstants cli.StringSlice
	var rawVersions cli.StringSlice

	return &cli.App{
		Name:  "harmony",
		Usage: "exhaustively verify a concurrent Harmony program",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "a",
				Usage:       "print instruction listing, do not verify",
				Destination: &cfg.Listing,
			},
			&cli.BoolFlag{
				Name:        "b",
				Usage:       "blocking mode: treat all-self-loop states as terminating",
				Destination: &cfg.Blocking,
			},
			&cli.StringSliceFlag{
				Name:        "c",
				Usage:       "inject a compile-time constant, NAME=EXPR",
				Destination: &rawConstants,
			},
			&cli.BoolFlag{
				Name:        "d",
				Usage:       "dump the full state graph in the report",
				Destination: &cfg.Dump,
			},
			&cli.StringSliceFlag{
				Name:        "m",
				Usage:       "select a module version, NAME=VER",
				Destination: &rawVersions,
			},
			&cli.Int64Flag{
				Name:        "seed",
				Usage:       "randomize candidate scheduling order reproducibly",
				Destination: &cfg.Seed,
			},
		},
		Action: func(c *cli.Context) error {
			for _, kv := range rawConstants.Value() {
				name, expr, ok := splitKV(kv)
				if !ok {
					return fmt.Errorf("harmonycfg: -c expects NAME=EXPR, got %q", kv)
				}
				cfg.Constants[name] = expr
			}
			for _, kv := range rawVersions.Value() {
				name, version, ok := splitKV(kv)
				if !ok {
					return fmt.Errorf("harmonycfg: -m expects NAME=VER, got %q", kv)
				}
				cfg.ModuleVersions[name] = version
			}
			cfg.Files = c.Args().Slice()
			if len(cfg.Files) == 0 {
				return fmt.Errorf("harmonycfg: at least one program file is required")
			}
			return nil
		},
	}
}

func splitKV(s string) (name, value string, ok bool) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}
