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

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

const initProcessName = value.Atom("__init__")

// Result is what one call to MacroStep produces: the new global state and
// the microsteps taken to get there (spec.md §4.E), for internal/report's
// trace rendering and internal/explore's edge bookkeeping. After is the
// resulting snapshot of the context that ran, or nil if it terminated or
// stopped (and so isn't sitting in State.Ctxbag any more); internal/explore
// uses it to recognize the same process continuing to run across BFS
// levels (the reference's `ctx == node.after` check).
type Result struct {
	State     state.State
	Microstep []Microstep
	After     *vmcontext.Snapshot
}

// MacroStep runs ctx, a context currently sitting in s.Ctxbag, until it
// reaches the next scheduling point (spec.md §4.E): a shared-memory
// operation outside an atomic block, a Stop, termination, a Choose over a
// set of more than one element, or a detected infinite loop.
//
// If interrupt is true, ctx's pending trap is fired first (spec.md §4.D.2)
// before any instruction executes. If choice is non-nil, ctx must already
// be the state's s.Choosing context: the value on top of its stack is
// assumed to be the Set that produced it, and choice (an element of that
// set) is substituted for it before execution resumes at the instruction
// after the Choose. Exactly one of interrupt and choice may apply to a
// single call; supplying both is a caller error.
func MacroStep(s state.State, ctx vmcontext.Snapshot, env opcode.Environment, interrupt bool, choice value.Value) (Result, error) {
	if interrupt && choice != nil {
		return Result{}, fmt.Errorf("exec: MacroStep: interrupt and choice are mutually exclusive")
	}

	w := ctx.Thaw()
	var steps []Microstep

	if interrupt {
		if err := opcode.FireInterrupt(w); err != nil {
			return Result{}, err
		}
		steps = append(steps, interruptStep())
	}

	if choice != nil {
		top, err := w.Pop()
		if err != nil {
			return Result{}, fmt.Errorf("exec: MacroStep: resuming a choice with an empty stack: %w", err)
		}
		set, ok := top.(value.Set)
		if !ok || !set.Contains(choice) {
			return Result{}, fmt.Errorf("exec: MacroStep: %v is not a member of the pending choice %v", choice, top)
		}
		w.Push(choice)
		s.Choosing = nil
		pc := w.PC
		advancePC(w)
		steps = append(steps, Microstep{PC: &pc, Choice: choice})
	}

	guard := newLoopGuard()
	s = runMicrosteps(s, w, env, guard, &steps)

	s = s.Remove(ctx)
	var after *vmcontext.Snapshot
	switch {
	case w.Terminated:
		if name, ok := w.Nametag.Get(value.NewAtom("name")); ok && name.Equal(initProcessName) {
			s.Initializing = false
		}
	case w.Stopped:
		// already recorded into s.Stopbag by execStop; do not re-add to ctxbag.
	default:
		frozen := w.Freeze()
		s = s.Add(frozen)
		after = &frozen
	}

	return Result{State: s, Microstep: steps, After: after}, nil
}

// runMicrosteps executes instructions against w until a scheduling point,
// appending one Microstep per executed instruction to *steps.
func runMicrosteps(s state.State, w *vmcontext.Working, env opcode.Environment, guard *loopGuard, steps *[]Microstep) state.State {
	for {
		if w.Terminated || w.Stopped || w.Failure != nil {
			return s
		}

		instr, ok := env.InstructionAt(w.PC)
		if !ok {
			w.Fail(fmt.Sprintf("exec: program counter %v is out of range", w.PC))
			return s
		}

		if instr.Op == opcode.Choose {
			top, err := w.Peek()
			if err == nil {
				if set, ok := top.(value.Set); ok && set.Len() > 1 {
					frozen := w.Freeze()
					s.Choosing = &frozen
					return s
				}
			}
		}

		if w.Atomic == 0 && (opcode.IsSharedMemoryOp(instr) || instr.Op == opcode.AtomicInc) {
			return s
		}

		pc := w.PC
		next, err := opcode.Execute(w, s, env, instr)
		if err != nil {
			w.Fail(err.Error())
			*steps = append(*steps, stepAt(pc))
			return s
		}
		s = next
		*steps = append(*steps, stepAt(pc))

		if instr.Op == opcode.Continue {
			return s
		}
		if w.Terminated || w.Stopped || w.Failure != nil {
			return s
		}

		fingerprint := s.Hash()*1099511628211 ^ w.Freeze().Hash()
		if guard.tripped(fingerprint) {
			w.Fail("infinite loop")
			return s
		}
	}
}

// advancePC mirrors the unexported advance() helper in internal/opcode
// (not reusable directly since it is package-private); Choose resumption
// is the one place outside that package that needs to move the program
// counter forward by hand.
func advancePC(w *vmcontext.Working) {
	w.PC = value.NewPC(uint32(w.PC) + 1)
}
