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

// Package exec implements Harmony's macro-step executor (spec.md §4.E):
// it runs a chosen context until a scheduling point, detecting local
// infinite loops, and returns the resulting global state.
package exec

import "github.com/harmonylang/harmony-go/internal/value"

// Microstep records the execution of a single opcode, or (PC == nil) the
// firing of an interrupt, matching spec.md §4.E's return value: "a list
// of microsteps (pairs (pc, choice?), with pc = null denoting an
// interrupt)".
type Microstep struct {
	PC     *value.PC
	Choice value.Value // set only when this microstep resolved a Choose
}

func stepAt(pc value.PC) Microstep {
	p := pc
	return Microstep{PC: &p}
}

func interruptStep() Microstep {
	return Microstep{}
}
