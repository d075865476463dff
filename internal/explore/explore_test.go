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
	"testing"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/program"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
)

func TestExploreLinearProgramHasNoViolation(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Push, Const: value.NewIntFromInt64(1)})
	b.Emit(opcode.Instruction{Op: opcode.Store, Name: "x"})
	b.Emit(opcode.Instruction{Op: opcode.Return})
	p := b.MustBuild()

	s, _ := state.NewInitial()
	e := &Explorer{Env: p}
	res, err := e.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if res.Violation != nil {
		t.Fatalf("expected no violation, got %v", res.Violation.Issues)
	}
	if res.Graph.Len() != 2 {
		t.Fatalf("expected 2 states (initial + terminated), got %d", res.Graph.Len())
	}
}

func TestExploreFindsAssertionFailure(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Push, Const: value.NewBool(false)})
	b.Emit(opcode.Instruction{Op: opcode.Assert})
	b.Emit(opcode.Instruction{Op: opcode.Return})
	p := b.MustBuild()

	s, _ := state.NewInitial()
	e := &Explorer{Env: p}
	res, err := e.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if res.Violation == nil {
		t.Fatal("expected a violation to be found")
	}
	if len(res.Violation.Issues) == 0 {
		t.Fatal("expected the violation node to carry an issue")
	}
}

func TestExploreChooseOnLocalOnlyCollapsesBranches(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Push, Const: value.NewSet(value.NewIntFromInt64(1), value.NewIntFromInt64(2))})
	b.Emit(opcode.Instruction{Op: opcode.Choose})
	b.Emit(opcode.Instruction{Op: opcode.StoreVar, Name: "picked"})
	b.Emit(opcode.Instruction{Op: opcode.Return})
	p := b.MustBuild()

	s, _ := state.NewInitial()
	e := &Explorer{Env: p}
	res, err := e.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if res.Violation != nil {
		t.Fatalf("expected no violation, got %v", res.Violation.Issues)
	}
	// initial -> choosing -> terminated: the chosen value is only ever
	// stored into a local (picked is a Context variable, not a shared
	// one), so both choices collapse onto the same terminated global
	// state — 3 distinct states total.
	if res.Graph.Len() != 3 {
		t.Fatalf("expected 3 states, got %d", res.Graph.Len())
	}
}

func TestExploreWithWorkerPoolMatchesSerial(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Push, Const: value.NewSet(
		value.NewIntFromInt64(1), value.NewIntFromInt64(2), value.NewIntFromInt64(3))})
	b.Emit(opcode.Instruction{Op: opcode.Choose})
	b.Emit(opcode.Instruction{Op: opcode.StoreVar, Name: "picked"})
	b.Emit(opcode.Instruction{Op: opcode.Return})
	p := b.MustBuild()

	s, _ := state.NewInitial()
	serial := &Explorer{Env: p}
	resSerial, err := serial.Run(s)
	if err != nil {
		t.Fatal(err)
	}

	parallel := &Explorer{Env: p, Workers: 4}
	resParallel, err := parallel.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	if resSerial.Graph.Len() != resParallel.Graph.Len() {
		t.Fatalf("serial found %d states, parallel found %d", resSerial.Graph.Len(), resParallel.Graph.Len())
	}
}
