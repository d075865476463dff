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

package opcode

import (
	"testing"

	hstate "github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

type fakeEnv struct {
	code []Instruction
}

func (f fakeEnv) InstructionAt(pc value.PC) (Instruction, bool) {
	i := int(pc)
	if i < 0 || i >= len(f.code) {
		return Instruction{}, false
	}
	return f.code[i], true
}

func freshWorking() *vmcontext.Working {
	nametag := value.NewDict().Set(value.NewAtom("name"), value.NewAtom("p")).Set(value.NewAtom("tag"), value.NoValue)
	return vmcontext.NewInitial(nametag)
}

func TestPushPopDup(t *testing.T) {
	w := freshWorking()
	s, _ := hstate.NewInitial()
	env := fakeEnv{}

	s, err := Execute(w, s, env, Instruction{Op: Push, Const: value.NewIntFromInt64(5)})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Execute(w, s, env, Instruction{Op: Dup})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Stack) != 2 {
		t.Fatalf("expected 2 stack entries after dup, got %d", len(w.Stack))
	}
	s, err = Execute(w, s, env, Instruction{Op: Pop})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Stack) != 1 {
		t.Fatalf("expected 1 stack entry after pop, got %d", len(w.Stack))
	}
}

func TestDictSplitRoundTrip(t *testing.T) {
	w := freshWorking()
	s, _ := hstate.NewInitial()
	env := fakeEnv{}

	w.Push(value.NewIntFromInt64(0))
	w.Push(value.NewIntFromInt64(10))
	w.Push(value.NewIntFromInt64(1))
	w.Push(value.NewIntFromInt64(20))
	w.Push(value.NewIntFromInt64(2)) // n

	var err error
	s, err = Execute(w, s, env, Instruction{Op: DictOp})
	if err != nil {
		t.Fatal(err)
	}
	s, err = Execute(w, s, env, Instruction{Op: Split})
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Stack) != 2 {
		t.Fatalf("expected 2 values after split, got %d: %v", len(w.Stack), w.Stack)
	}
	if !w.Stack[0].Equal(value.NewIntFromInt64(10)) || !w.Stack[1].Equal(value.NewIntFromInt64(20)) {
		t.Fatalf("split did not round trip the dict values: %v", w.Stack)
	}
}

func TestArithmeticNary(t *testing.T) {
	w := freshWorking()
	s, _ := hstate.NewInitial()
	env := fakeEnv{}

	w.Push(value.NewIntFromInt64(2))
	w.Push(value.NewIntFromInt64(3))
	s, err := Execute(w, s, env, Instruction{Op: Nary, NaryOp: OpAdd, Arity: 2})
	if err != nil {
		t.Fatal(err)
	}
	top, _ := w.Peek()
	if !top.Equal(value.NewIntFromInt64(5)) {
		t.Fatalf("2+3 should be 5, got %v", top)
	}
}

func TestAssertFailureSetsFailure(t *testing.T) {
	w := freshWorking()
	s, _ := hstate.NewInitial()
	env := fakeEnv{}

	w.Push(value.NewBool(false))
	if _, err := Execute(w, s, env, Instruction{Op: Assert}); err != nil {
		t.Fatal(err)
	}
	if w.Failure == nil || *w.Failure != "Harmony Assertion failed" {
		t.Fatalf("expected default assertion failure message, got %v", w.Failure)
	}
}

func TestCallConventionRoundTrip(t *testing.T) {
	// Program: 0: Frame "f" ["x"]; 1: LoadVar "x"; 2: StoreVar "result"; 3: Return
	code := []Instruction{
		{Op: Frame, FrameOp: FrameSpec{Name: "f", Args: []string{"x"}}},
		{Op: LoadVar, Name: "x"},
		{Op: StoreVar, Name: "result"},
		{Op: Return},
	}
	env := fakeEnv{code: code}
	w := freshWorking()
	s, _ := hstate.NewInitial()

	w.Push(value.NewIntFromInt64(99)) // argument
	w.Push(value.NewPC(0))            // function
	var err error
	s, err = Execute(w, s, env, Instruction{Op: Apply})
	if err != nil {
		t.Fatal(err)
	}
	if w.PC != value.NewPC(0) {
		t.Fatalf("expected pc to jump to 0, got %v", w.PC)
	}

	for w.PC != value.NewPC(3) {
		instr, ok := env.InstructionAt(w.PC)
		if !ok {
			t.Fatalf("ran off the end of the program at pc %v", w.PC)
		}
		s, err = Execute(w, s, env, instr)
		if err != nil {
			t.Fatalf("executing %v: %v", instr.Op, err)
		}
	}
	s, err = Execute(w, s, env, Instruction{Op: Return})
	if err != nil {
		t.Fatal(err)
	}
	top, err := w.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if !top.Equal(value.NewIntFromInt64(99)) {
		t.Fatalf("expected call to return its argument, got %v", top)
	}
}
