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

package explore

import (
	stdcontext "context"

	"pgregory.net/rand"

	"golang.org/x/sync/errgroup"

	"github.com/harmonylang/harmony-go/internal/exec"
	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

// Explorer drives the BFS over global states (spec.md §4.F).
type Explorer struct {
	// Env is the compiled program the executor runs against.
	Env opcode.Environment

	// Workers bounds how many successor macro-steps run concurrently per
	// popped state, sized the same way go/ct/driver/run.go and
	// go/integration_test/interpreter/stress_test.go size their own
	// worker-pool run loops.
	// Each worker only calls exec.MacroStep, which touches no shared
	// mutable state beyond the State/Snapshot values passed in, so fanning
	// this out is safe. Workers <= 1 runs serially.
	Workers int

	// Seed, when non-zero, randomizes the order candidates are generated
	// in within a state (pgregory.net/rand, seeded the same way
	// go/ct/evm_fuzz_test.go seeds its fuzz inputs). The graph explored is
	// the same regardless: every candidate is still run and inserted,
	// only the order edges are recorded in changes, which is exactly what
	// exercising different interleavings under -seed is for.
	Seed int64
}

// candidate is one context transition to turn into a macro-step, computed
// serially (it's just bag iteration) before the (potentially expensive)
// macro-steps themselves run, possibly in parallel. sameCtx is decided up
// front by comparing against the parent node's After field — the
// reference's `ctx == node.after` (harmony.py) — since it depends only on
// which process is continuing, not on the step's outcome.
type candidate struct {
	ctx       vmcontext.Snapshot
	interrupt bool
	choice    value.Value
	sameCtx   bool
}

// successor is the result of running one candidate's macro-step.
type successor struct {
	state     state.State
	before    vmcontext.Snapshot
	interrupt bool
	after     *vmcontext.Snapshot
	sameCtx   bool
	steps     []exec.Microstep
	choice    value.Value
	err       error
}

// Result is the outcome of a full exploration run.
type Result struct {
	Graph     *Graph
	Violation *Node // first state found carrying an issue, nil if none
}

// Run explores the full reachable graph from initial, stopping at the
// first state whose node carries an issue (spec.md §4.F: "record it as a
// violation seed and stop expanding further states on that branch" — in
// the single-seed policy, exploration itself halts once one is found,
// matching the reference).
func (e *Explorer) Run(initial state.State) (*Result, error) {
	g := NewGraph()
	root := &Node{State: initial, Len: 0, Issues: detectIssues(initial)}
	g.Insert(root)

	queue := newDeque(initial)

	for !queue.empty() {
		s := queue.popFront()
		node, ok := g.Lookup(s)
		if !ok {
			continue // stale entry: a relaxation may have re-pushed this state already handled via an earlier pop
		}
		if len(node.Issues) > 0 {
			return &Result{Graph: g, Violation: node}, nil
		}
		if node.Expanded {
			continue
		}
		node.Expanded = true

		succs, err := e.generateSuccessors(node)
		if err != nil {
			return nil, err
		}

		for _, succ := range succs {
			if succ.err != nil {
				return nil, succ.err
			}
			length := node.Len
			if !succ.sameCtx {
				length++
			}

			var target *Node
			existing, seen := g.Lookup(succ.state)
			if !seen {
				n := &Node{
					State:  succ.state,
					Len:    length,
					Parent: &s,
					Before: snapshotPtr(succ.before),
					After:  succ.after,
					Steps:  succ.steps,
					Choice: succ.choice,
					Issues: detectIssues(succ.state),
				}
				g.Insert(n)
				target = n
				if succ.sameCtx {
					queue.pushFront(succ.state)
				} else {
					queue.pushBack(succ.state)
				}
			} else {
				target = existing
				if length < existing.Len && !existing.Expanded {
					existing.Len = length
					existing.Parent = &s
					existing.Before = snapshotPtr(succ.before)
					existing.After = succ.after
					existing.Steps = succ.steps
					existing.Choice = succ.choice
					queue.pushFront(succ.state)
				}
			}

			node.Edges = append(node.Edges, Edge{
				Before:    succ.before,
				Interrupt: succ.interrupt,
				Choice:    succ.choice,
				Next:      target,
				After:     succ.after,
				Steps:     succ.steps,
			})
			target.Sources = append(target.Sources, node)
		}
	}

	return &Result{Graph: g}, nil
}

// generateSuccessors enumerates every macro-step successor of node's state
// (spec.md §4.F): if a context is choosing, one edge per element of its
// pending set; otherwise one edge per distinct running context, plus a
// second interrupt edge for any interruptable context with a pending trap.
func (e *Explorer) generateSuccessors(node *Node) ([]successor, error) {
	s := node.State
	var candidates []candidate

	sameAsParent := func(ctx vmcontext.Snapshot) bool {
		return node.After != nil && ctx.Equal(*node.After)
	}

	if s.Choosing != nil {
		top, err := peekTop(*s.Choosing)
		if err != nil {
			return nil, err
		}
		set, ok := top.(value.Set)
		if !ok {
			return nil, errChoosingStackNotASet
		}
		same := sameAsParent(*s.Choosing)
		for _, choice := range set.Members() {
			candidates = append(candidates, candidate{ctx: *s.Choosing, choice: choice, sameCtx: same})
		}
	} else {
		for _, ctx := range s.Ctxbag.Distinct() {
			same := sameAsParent(ctx)
			candidates = append(candidates, candidate{ctx: ctx, sameCtx: same})
			if ctx.Interruptable && ctx.Trap != nil {
				candidates = append(candidates, candidate{ctx: ctx, interrupt: true, sameCtx: same})
			}
		}
	}

	if e.Seed != 0 {
		shuffle(candidates, e.Seed)
	}

	return e.runCandidates(s, candidates)
}

// shuffle reorders candidates in place with a seeded PRNG so a -seed run
// can be replayed exactly (spec.md §6.2 -seed) while still exploring the
// identical set of successors as an unseeded run.
func shuffle(candidates []candidate, seed int64) {
	r := rand.New(uint64(seed))
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
}

// runCandidates executes each candidate's macro-step, optionally fanned
// out over a worker pool (golang.org/x/sync/errgroup, grounded on
// stress_test.go's worker-pool shape), and reports successors in
// candidate order.
func (e *Explorer) runCandidates(s state.State, candidates []candidate) ([]successor, error) {
	results := make([]successor, len(candidates))

	workers := e.Workers
	if workers <= 1 || len(candidates) <= 1 {
		for i, c := range candidates {
			results[i] = e.runOne(s, c)
		}
		return results, nil
	}

	g, _ := errgroup.WithContext(stdcontext.Background())
	g.SetLimit(workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			results[i] = e.runOne(s, c)
			return nil
		})
	}
	_ = g.Wait() // runOne never returns a Go error through the group; failures travel in successor.err
	return results, nil
}

func (e *Explorer) runOne(s state.State, c candidate) successor {
	res, err := exec.MacroStep(s, c.ctx, e.Env, c.interrupt, c.choice)
	if err != nil {
		return successor{err: err}
	}
	return successor{
		state:     res.State,
		before:    c.ctx,
		interrupt: c.interrupt,
		after:     res.After,
		sameCtx:   c.sameCtx,
		steps:     res.Microstep,
		choice:    c.choice,
	}
}

func peekTop(ctx vmcontext.Snapshot) (value.Value, error) {
	if len(ctx.Stack) == 0 {
		return nil, errEmptyChoosingStack
	}
	return ctx.Stack[len(ctx.Stack)-1], nil
}

func snapshotPtr(s vmcontext.Snapshot) *vmcontext.Snapshot { return &s }
