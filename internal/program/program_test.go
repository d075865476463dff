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

package program

import (
	"testing"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/value"
)

func TestBuilderRoundTripsJumpLabels(t *testing.T) {
	b := NewBuilder()
	b.JumpTo(opcode.Jump, "loop", nil)
	b.Label("loop")
	b.Emit(opcode.Instruction{Op: opcode.Continue})
	b.Emit(opcode.Instruction{Op: opcode.Return})

	p := b.MustBuild()
	if err := p.Validate(); err == nil {
		t.Fatal("expected Validate to reject a program with no __init__ label")
	}
	instr, ok := p.InstructionAt(value.NewPC(0))
	if !ok || instr.Op != opcode.Jump {
		t.Fatalf("expected instruction 0 to be a Jump, got %v ok=%v", instr.Op, ok)
	}
	if instr.Target != value.NewPC(1) {
		t.Fatalf("expected the pending label to resolve to pc 1, got %v", instr.Target)
	}
}

func TestValidateRequiresInitReturn(t *testing.T) {
	b := NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Push, Const: value.NewIntFromInt64(1)})
	p := b.MustBuild()
	if err := p.Validate(); err == nil {
		t.Fatal("expected Validate to reject a program not ending in Return")
	}

	b2 := NewBuilder()
	b2.Label("__init__")
	b2.Emit(opcode.Instruction{Op: opcode.Return})
	p2 := b2.MustBuild()
	if err := p2.Validate(); err != nil {
		t.Fatalf("expected a minimal valid program to validate, got %v", err)
	}
}

func TestFromJSONRoundTrip(t *testing.T) {
	doc := []byte(`{
		"code": [
			{"op": "Push", "const": 5},
			{"op": "Push", "const": 3},
			{"op": "Nary", "naryOp": "+", "arity": 2},
			{"op": "Return"}
		],
		"labels": {"__init__": 0},
		"constants": {"N": 5},
		"moduleVersions": {"sync": "1.0"}
	}`)
	p, err := FromJSON(doc)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 4 {
		t.Fatalf("expected 4 instructions, got %d", p.Len())
	}
	instr, ok := p.InstructionAt(value.NewPC(0))
	if !ok || instr.Op != opcode.Push {
		t.Fatalf("expected instruction 0 to be Push, got %v", instr.Op)
	}
	if !instr.Const.Equal(value.NewIntFromInt64(5)) {
		t.Fatalf("expected const 5, got %v", instr.Const)
	}
	naryInstr, _ := p.InstructionAt(value.NewPC(2))
	if naryInstr.NaryOp != opcode.OpAdd {
		t.Fatalf("expected naryOp +, got %v", naryInstr.NaryOp)
	}
	if v, ok := p.Constants["N"]; !ok || !v.Equal(value.NewIntFromInt64(5)) {
		t.Fatalf("expected constant N == 5, got %v (ok=%v)", v, ok)
	}
	if pc, ok := p.Label("__init__"); !ok || pc != value.NewPC(0) {
		t.Fatalf("expected __init__ label at pc 0, got %v (ok=%v)", pc, ok)
	}
}

func TestFromJSONRejectsUnknownOpcode(t *testing.T) {
	_, err := FromJSON([]byte(`{"code": [{"op": "Bogus"}], "labels": {"__init__": 0}}`))
	if err == nil {
		t.Fatal("expected an error for an unknown opcode name")
	}
}
