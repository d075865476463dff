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
	"testing"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
)

type fakeEnv struct {
	code []opcode.Instruction
}

func (f fakeEnv) InstructionAt(pc value.PC) (opcode.Instruction, bool) {
	i := int(pc)
	if i < 0 || i >= len(f.code) {
		return opcode.Instruction{}, false
	}
	return f.code[i], true
}

// TestRunsToSharedStore checks that a macro-step stops right before a Store
// outside an atomic block, leaving the context runnable for a future step
// (spec.md §4.E scheduling point 1).
func TestRunsToSharedStore(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.Push, Const: value.NewIntFromInt64(1)},
		{Op: opcode.Push, Const: value.NewIntFromInt64(2)},
		{Op: opcode.Nary, NaryOp: opcode.OpAdd, Arity: 2},
		{Op: opcode.Store, Name: "x"},
	}
	env := fakeEnv{code: code}
	s, initCtx := state.NewInitial()
	s.Vars = s.Vars.Set(value.NewAtom("x"), value.Zero)
	initCtx2 := initCtx.Thaw()
	initCtx2.Atomic = 0
	ctx := initCtx2.Freeze()
	s = s.Remove(initCtx)
	s = s.Add(ctx)

	res, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Microstep) != 3 {
		t.Fatalf("expected 3 microsteps executed before the Store, got %d", len(res.Microstep))
	}
	remaining := res.State.Ctxbag.Distinct()
	if len(remaining) != 1 {
		t.Fatalf("expected exactly one runnable context, got %d", len(remaining))
	}
	if remaining[0].PC != value.NewPC(3) {
		t.Fatalf("expected context parked at the Store instruction, got pc %v", remaining[0].PC)
	}
}

// TestAtomicRunsThroughSharedOps verifies that a Store inside an atomic
// block does not stop the macro-step.
func TestAtomicRunsThroughSharedOps(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.Push, Const: value.NewIntFromInt64(7)},
		{Op: opcode.Store, Name: "x"},
		{Op: opcode.Continue},
	}
	env := fakeEnv{code: code}
	s, ctx := state.NewInitial() // atomic=1 by construction
	s.Vars = s.Vars.Set(value.NewAtom("x"), value.Zero)

	res, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Microstep) != 3 {
		t.Fatalf("expected all 3 instructions to execute atomically, got %d microsteps", len(res.Microstep))
	}
	v, ok := res.State.Get("x", nil)
	if !ok || !v.Equal(value.NewIntFromInt64(7)) {
		t.Fatalf("expected x == 7, got %v", v)
	}
}

// TestChooseOverManySetsChoosing checks that landing on a Choose with a
// multi-element set stops the macro-step and records the choosing context,
// per spec.md §3's ctxbag/choosing invariant.
func TestChooseOverManySetsChoosing(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.Push, Const: value.NewSet(value.NewIntFromInt64(1), value.NewIntFromInt64(2))},
		{Op: opcode.Choose},
	}
	env := fakeEnv{code: code}
	s, ctx := state.NewInitial()

	res, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.State.Choosing == nil {
		t.Fatal("expected Choosing to be set")
	}
	if res.State.Choosing.PC != value.NewPC(1) {
		t.Fatalf("expected choosing context parked at the Choose instruction, got pc %v", res.State.Choosing.PC)
	}
}

// TestResumeChoiceContinuesPastChoose drives a second MacroStep call that
// resolves a pending choice, verifying execution resumes after the Choose.
func TestResumeChoiceContinuesPastChoose(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.Push, Const: value.NewSet(value.NewIntFromInt64(1), value.NewIntFromInt64(2))},
		{Op: opcode.Choose},
		{Op: opcode.StoreVar, Name: "picked"},
		{Op: opcode.Continue},
	}
	env := fakeEnv{code: code}
	s, ctx := state.NewInitial()

	first, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	choosing := *first.State.Choosing

	res, err := MacroStep(first.State, choosing, env, false, value.NewIntFromInt64(2))
	if err != nil {
		t.Fatal(err)
	}
	remaining := res.State.Ctxbag.Distinct()
	if len(remaining) != 1 {
		t.Fatalf("expected one runnable context, got %d", len(remaining))
	}
	picked, ok := remaining[0].Vars.Get(value.NewAtom("picked"))
	if !ok || !picked.Equal(value.NewIntFromInt64(2)) {
		t.Fatalf("expected picked == 2, got %v (ok=%v)", picked, ok)
	}
}

// TestStopParksContextAndSkipsCtxbag checks that a Stop records the context
// into the stop bag without re-adding it to the running ctxbag.
func TestStopParksContextAndSkipsCtxbag(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.StopOp, Name: "waiters"},
		{Op: opcode.Continue},
	}
	env := fakeEnv{code: code}
	s, ctx := state.NewInitial()
	s.Vars = s.Vars.Set(value.NewAtom("waiters"), value.NoValue)

	res, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.State.Ctxbag.Distinct()) != 0 {
		t.Fatalf("expected no runnable contexts after Stop, got %d", len(res.State.Ctxbag.Distinct()))
	}
	if res.State.Stopbag.Len() != 1 {
		t.Fatalf("expected one stopped context, got %d", res.State.Stopbag.Len())
	}
}

// TestInfiniteLoopIsDetected runs a one-instruction atomic loop (Jump back
// to itself) and expects the loop guard to fail the context rather than
// looping forever.
func TestInfiniteLoopIsDetected(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.Jump, Target: value.NewPC(0)},
	}
	env := fakeEnv{code: code}
	s, ctx := state.NewInitial() // atomic=1, so Jump never hits a scheduling point

	res, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	remaining := res.State.Ctxbag.Distinct()
	if len(remaining) != 1 {
		t.Fatalf("expected the failed context to still be recorded, got %d", len(remaining))
	}
	if remaining[0].Failure == nil || *remaining[0].Failure != "infinite loop" {
		t.Fatalf("expected an infinite loop failure, got %v", remaining[0].Failure)
	}
	if len(res.Microstep) <= microstepThreshold {
		t.Fatalf("expected the guard to run past the threshold before tripping, got %d microsteps", len(res.Microstep))
	}
}

// TestTerminationClearsInitializing checks that __init__ returning clears
// the state's Initializing flag (spec.md §4.F).
func TestTerminationClearsInitializing(t *testing.T) {
	code := []opcode.Instruction{
		{Op: opcode.Return},
	}
	env := fakeEnv{code: code}
	s, ctx := state.NewInitial()
	if !s.Initializing {
		t.Fatal("expected initial state to be Initializing")
	}

	res, err := MacroStep(s, ctx, env, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.State.Initializing {
		t.Fatal("expected Initializing to clear once __init__ terminates")
	}
	if len(res.State.Ctxbag.Distinct()) != 0 {
		t.Fatalf("expected no runnable contexts after __init__ terminates, got %d", len(res.State.Ctxbag.Distinct()))
	}
}
