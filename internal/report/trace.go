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

// Package report renders a diagnosed finding into the trace contract
// spec.md §6.3 describes: one row per macro-step group, carrying the
// process nametag, a compressed microstep range, and the shared-variable
// snapshot. This is outside the verification core — the core only has to
// satisfy the contract, per spec.md §1 — but is built in the same style
// run reports are elsewhere in this codebase (go/ct/driver/stats.go's
// terse tabular text, go/ct/st/serialization.go's JSON marshal/unmarshal).
package report

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/diagnose"
	"github.com/harmonylang/harmony-go/internal/exec"
	"github.com/harmonylang/harmony-go/internal/value"
)

// Row is one rendered line of a counter-example trace.
type Row struct {
	Process string
	Steps   string
	Vars    string
}

// Trace is a fully rendered counter-example: the category it diagnoses
// and the row-per-macro-step-group path to it.
type Trace struct {
	Category string
	Rows     []Row
}

// Build renders f into display strings. The microstep counter is
// cumulative across the whole path, since "k"/"k-m" ranges are positions
// in the overall counter-example, not per-row.
func Build(f diagnose.Finding) Trace {
	t := Trace{Category: string(f.Category)}
	counter := 1
	for _, row := range f.Path {
		label, next := formatMicrosteps(counter, row.Steps, row.Choice)
		counter = next
		t.Rows = append(t.Rows, Row{
			Process: nametagString(row.Nametag),
			Steps:   label,
			Vars:    row.Vars.String(),
		})
	}
	return t
}

// formatMicrosteps renders one row's microsteps as spec.md §6.3's compact
// forms (`k`, `k-m`, `k(choose v)`, `Interrupt`), continuing the running
// counter from start and returning the counter position after this row.
func formatMicrosteps(start int, steps []exec.Microstep, choice value.Value) (string, int) {
	if len(steps) == 0 {
		return "", start
	}
	if len(steps) == 1 && steps[0].PC == nil {
		return "Interrupt", start + 1
	}
	end := start + len(steps) - 1
	if choice != nil {
		return fmt.Sprintf("%d(choose %v)", end, choice), end + 1
	}
	if start == end {
		return fmt.Sprintf("%d", start), start + 1
	}
	return fmt.Sprintf("%d-%d", start, end), end + 1
}

// nametagString renders a {name, tag} identity dict the way the reference
// prints a process: bare name, or name(tag) when the context carries a
// non-default tag (e.g. a spawned thread's argument).
func nametagString(nt value.Dict) string {
	name, ok := nt.Get(value.NewAtom("name"))
	if !ok {
		return nt.String()
	}
	label := name.String()
	if atom, ok := name.(value.Atom); ok {
		label = string(atom) // process names print bare, without the atom-literal dot
	}
	tag, ok := nt.Get(value.NewAtom("tag"))
	if ok && !tag.Equal(value.NoValue) {
		return fmt.Sprintf("%s(%s)", label, tag.String())
	}
	return label
}
