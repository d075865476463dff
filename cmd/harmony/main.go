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

package main

import (
	"fmt"
	"os"

	"github.com/harmonylang/harmony-go/internal/diagnose"
	"github.com/harmonylang/harmony-go/internal/explore"
	"github.com/harmonylang/harmony-go/internal/harmonycfg"
	"github.com/harmonylang/harmony-go/internal/program"
	"github.com/harmonylang/harmony-go/internal/report"
	"github.com/harmonylang/harmony-go/internal/state"
)

func main() {
	cfg := harmonycfg.New()
	app := harmonycfg.App(cfg)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *harmonycfg.Config) error {
	if len(cfg.Files) != 1 {
		return fmt.Errorf("harmony: exactly one compiled program file is supported")
	}

	p, err := program.LoadFile(cfg.Files[0])
	if err != nil {
		return fmt.Errorf("compile error: %w", err)
	}
	for mod, ver := range cfg.ModuleVersions {
		p.ModuleVersions[mod] = ver
	}

	if cfg.Listing {
		return report.Listing(os.Stdout, p)
	}

	initial, _ := state.NewInitial()
	explorer := &explore.Explorer{Env: p, Seed: cfg.Seed}
	result, err := explorer.Run(initial)
	if err != nil {
		return err
	}

	findings := diagnose.Diagnose(result.Graph, cfg.Blocking)

	text := report.Text{Writer: os.Stdout}
	for _, f := range findings {
		if err := text.WriteTrace(report.Build(f)); err != nil {
			return err
		}
	}
	if err := text.WriteSummary(result.Graph.Len(), totalMicrosteps(result.Graph)); err != nil {
		return err
	}

	if cfg.Dump {
		data, err := report.Graph(result.Graph)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))

		counts, err := report.IssueCounts(result.Graph)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(counts))
	}

	if len(findings) > 0 {
		return fmt.Errorf("harmony: %d issue(s) found", len(findings))
	}
	return nil
}

func totalMicrosteps(g *explore.Graph) int {
	n := 0
	for _, node := range g.Nodes() {
		n += len(node.Steps)
	}
	return n
}
