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

// Package diagnose classifies an explored graph into the three issue
// categories of spec.md §4.G (process failure, non-terminating state,
// stopped process), each reduced to its minimum-length representative
// and a reconstructed, row-grouped counter-example path, grounded on
// go/ct/driver/stats.go's issue-classification/reporting shape.
package diagnose

import (
	"github.com/harmonylang/harmony-go/internal/exec"
	"github.com/harmonylang/harmony-go/internal/explore"
	"github.com/harmonylang/harmony-go/internal/value"
)

// Category names one of spec.md §7's diagnosis tags. A node may carry
// more than one: they are computed independently and only later grouped
// by whichever findings a caller asks to report.
type Category string

const (
	CategoryProcessFailure Category = "process failure"
	CategoryNonTerminating Category = "non-terminating state"
	CategoryStoppedProcess Category = "stopped process"
)

// Row is one line of a counter-example trace (spec.md §6.3): the process
// that ran, the microsteps it took (already merged across consecutive
// same-context macro-steps), and the shared-variable snapshot after the
// last of them.
type Row struct {
	Nametag value.Dict
	Steps   []exec.Microstep
	Choice  value.Value
	Vars    value.Dict
}

// Finding is one diagnosed issue: its category, the representative node
// (minimum len among every node carrying the issue), and the
// reconstructed path from the initial state.
type Finding struct {
	Category Category
	Node     *explore.Node
	Path     []Row
}

// Diagnose runs all three checks of spec.md §4.G over g and returns
// whichever findings apply. blocking selects the -b termination variant:
// the termination target set becomes states all of whose enabled edges
// are self-loops, instead of states with no runnable context.
func Diagnose(g *explore.Graph, blocking bool) []Finding {
	var findings []Finding
	if f, ok := safetyFinding(g); ok {
		findings = append(findings, f)
	}
	if f, ok := terminationFinding(g, blocking); ok {
		findings = append(findings, f)
	}
	if f, ok := stoppedOnlyFinding(g); ok {
		findings = append(findings, f)
	}
	return findings
}

func safetyFinding(g *explore.Graph) (Finding, bool) {
	for _, n := range g.SortedByLen() {
		if len(n.Issues) > 0 {
			return Finding{Category: CategoryProcessFailure, Node: n, Path: buildPath(g, n)}, true
		}
	}
	return Finding{}, false
}

func stoppedOnlyFinding(g *explore.Graph) (Finding, bool) {
	for _, n := range g.SortedByLen() {
		if n.State.Ctxbag.Len() == 0 && n.State.Stopbag.Len() > 0 {
			return Finding{Category: CategoryStoppedProcess, Node: n, Path: buildPath(g, n)}, true
		}
	}
	return Finding{}, false
}

// terminationFinding computes the set of states that can eventually reach
// a target state (spec.md §4.G.2) by walking Sources back from every
// target, then returns the minimum-len node outside that set, if any.
func terminationFinding(g *explore.Graph, blocking bool) (Finding, bool) {
	nodes := g.Nodes()
	canReach := make(map[*explore.Node]bool, len(nodes))

	var frontier []*explore.Node
	for _, n := range nodes {
		if isTerminationTarget(n, blocking) && !canReach[n] {
			canReach[n] = true
			frontier = append(frontier, n)
		}
	}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, pred := range cur.Sources {
			if !canReach[pred] {
				canReach[pred] = true
				frontier = append(frontier, pred)
			}
		}
	}

	for _, n := range g.SortedByLen() {
		if !canReach[n] {
			return Finding{Category: CategoryNonTerminating, Node: n, Path: buildPath(g, n)}, true
		}
	}
	return Finding{}, false
}

// isTerminationTarget reports whether n belongs to the target set a state
// must be able to reach to count as terminating (spec.md §4.G.2): with no
// -b, any state with no runnable context; with -b, any state all of whose
// enabled edges loop back to itself (a node with no enabled edges at all
// vacuously satisfies "all of them are self-loops").
func isTerminationTarget(n *explore.Node, blocking bool) bool {
	if !blocking {
		return !n.State.IsRunnable()
	}
	for _, e := range n.Edges {
		if e.Next != n {
			return false
		}
	}
	return true
}

// buildPath reconstructs the shortest path from the initial state to n
// via Parent pointers, then groups consecutive macro-steps made by the
// same context into a single Row (spec.md §4.G.4).
func buildPath(g *explore.Graph, n *explore.Node) []Row {
	var chain []*explore.Node
	for cur := n; cur != nil; {
		chain = append(chain, cur)
		if cur.Parent == nil {
			break
		}
		parent, ok := g.Lookup(*cur.Parent)
		if !ok {
			break
		}
		cur = parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var rows []Row
	for _, step := range chain {
		if step.Before == nil {
			continue // the initial node: no macro-step produced it
		}
		nametag := step.Before.Nametag()
		if len(rows) > 0 && rows[len(rows)-1].Nametag.Equal(nametag) {
			last := &rows[len(rows)-1]
			last.Steps = append(last.Steps, step.Steps...)
			last.Choice = step.Choice
			last.Vars = step.State.Vars
			continue
		}
		rows = append(rows, Row{
			Nametag: nametag,
			Steps:   append([]exec.Microstep(nil), step.Steps...),
			Choice:  step.Choice,
			Vars:    step.State.Vars,
		})
	}
	return rows
}
