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

package exec

import lru "github.com/hashicorp/golang-lru/v2"

// microstepThreshold is the number of microsteps a single macro-step may
// run before the loop guard starts checking for repeated (state, context)
// pairs (spec.md §4.E "after roughly 200 microsteps without reaching a
// scheduling point, treat a repeated (state, context) pair as an infinite
// loop"). Set low enough to catch runaway `while True: pass` programs
// quickly, high enough that a deeply nested atomic computation (a sort, a
// big loop body) doesn't trip a false positive.
const microstepThreshold = 200

// loopGuardCacheSize bounds the fingerprint history kept per macro-step.
// 256 comfortably holds any repeat that would occur within one program's
// realistic loop body; the guard only needs to detect a repeat, not
// remember the whole history.
const loopGuardCacheSize = 256

// loopGuard detects a context stuck re-visiting the same (state, context)
// pair within a single macro-step, which can otherwise only be described
// by the user's program itself looping forever between scheduling points.
// A fresh loopGuard is created per macro-step call; it is not shared
// across contexts or across macro-steps (spec.md §9 design note: "too low
// produces false positives on deeply atomic programs; too high makes
// genuine infinite loops hang the explorer").
type loopGuard struct {
	seen  *lru.Cache[uint64, struct{}]
	steps int
}

func newLoopGuard() *loopGuard {
	c, _ := lru.New[uint64, struct{}](loopGuardCacheSize)
	return &loopGuard{seen: c}
}

// tripped records one microstep's fingerprint and reports whether the
// guard should fail the owning context. It only starts reporting repeats
// once microstepThreshold steps have elapsed, so short, legitimately
// repetitive atomic sequences (e.g. a bounded retry loop) are never
// flagged.
func (g *loopGuard) tripped(fingerprint uint64) bool {
	g.steps++
	if g.steps <= microstepThreshold {
		g.seen.Add(fingerprint, struct{}{})
		return false
	}
	if _, ok := g.seen.Get(fingerprint); ok {
		return true
	}
	g.seen.Add(fingerprint, struct{}{})
	return false
}
