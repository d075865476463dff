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

// Package explore implements Harmony's breadth-first state-space explorer
// (spec.md §4.F): starting from the initial global state, it enumerates
// every reachable state by generating macro-step successors, bounding the
// shortest macro-step distance to each with BFS relaxation, and stopping
// at the first state that carries an issue.
package explore

import (
	"sort"

	"github.com/harmonylang/harmony-go/internal/exec"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

// Node is one entry of the exploration graph (spec.md §3 "Exploration
// graph"): a global state plus the shortest-known path to it.
type Node struct {
	State    state.State
	Len      int
	Parent   *state.State
	Before   *vmcontext.Snapshot // the context that was run to produce this node
	After    *vmcontext.Snapshot // that context's resulting snapshot, nil if it terminated or stopped
	Steps    []exec.Microstep
	Choice   value.Value // set when this node resulted from resolving a Choose
	Expanded bool
	Issues   []string

	// Edges are this node's outgoing transitions (spec.md §3 "edges: map
	// from scheduling choice to (next-state, next-context, steps)"),
	// recorded for every successor generated during expansion, not just
	// the one that became a BFS-tree Parent edge. internal/diagnose's
	// termination/blocking-mode check walks these.
	Edges []Edge

	// Sources are the nodes with an edge into this one (spec.md §3
	// "sources: back-edges"), used to do backward reachability from the
	// terminal/stutter target set without rebuilding the graph.
	Sources []*Node
}

// Edge is one outgoing transition out of a Node.
type Edge struct {
	Before    vmcontext.Snapshot
	Interrupt bool
	Choice    value.Value
	Next      *Node
	After     *vmcontext.Snapshot
	Steps     []exec.Microstep
}

// Graph is the set of explored Nodes, indexed by state hash with linear
// probing within a bucket for the rare hash collision — the same pattern
// internal/value and internal/state use for their own hash-ordered
// collections, since state.State cannot be a Go map key (it embeds
// slice-backed Bags).
type Graph struct {
	buckets map[uint64][]*Node
	order   []*Node // insertion order, for deterministic iteration (e.g. -a dumps, report)
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{buckets: map[uint64][]*Node{}}
}

// Lookup returns the node for s, if any.
func (g *Graph) Lookup(s state.State) (*Node, bool) {
	h := s.Hash()
	for _, n := range g.buckets[h] {
		if n.State.Equal(s) {
			return n, true
		}
	}
	return nil, false
}

// Insert adds a new node. The caller must have already checked with
// Lookup that s is not yet present.
func (g *Graph) Insert(n *Node) {
	h := n.State.Hash()
	g.buckets[h] = append(g.buckets[h], n)
	g.order = append(g.order, n)
}

// Len returns the number of distinct states recorded.
func (g *Graph) Len() int { return len(g.order) }

// Nodes returns every node in the order they were first inserted.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	copy(out, g.order)
	return out
}

// SortedByLen returns nodes sorted by Len then insertion order, used by
// internal/diagnose to pick the minimum-length representative of a
// category deterministically.
func (g *Graph) SortedByLen() []*Node {
	out := g.Nodes()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Len < out[j].Len })
	return out
}
