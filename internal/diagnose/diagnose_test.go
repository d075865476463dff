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

package diagnose

import (
	"testing"

	"github.com/harmonylang/harmony-go/internal/explore"
	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/program"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
)

func runExplorer(t *testing.T, p *program.Program) *explore.Result {
	t.Helper()
	s, _ := state.NewInitial()
	e := &explore.Explorer{Env: p}
	res, err := e.Run(s)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestDiagnoseReportsProcessFailure(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Push, Const: value.NewBool(false)})
	b.Emit(opcode.Instruction{Op: opcode.Assert})
	b.Emit(opcode.Instruction{Op: opcode.Return})
	res := runExplorer(t, b.MustBuild())

	findings := Diagnose(res.Graph, false)
	var got *Finding
	for i := range findings {
		if findings[i].Category == CategoryProcessFailure {
			got = &findings[i]
		}
	}
	if got == nil {
		t.Fatal("expected a process failure finding")
	}
	if len(got.Node.Issues) == 0 {
		t.Fatal("expected the finding's node to carry an issue")
	}
}

func TestDiagnoseReportsNonTerminatingLoop(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Continue})
	b.JumpTo(opcode.Jump, "__init__", nil)
	res := runExplorer(t, b.MustBuild())

	findings := Diagnose(res.Graph, false)
	var got *Finding
	for i := range findings {
		if findings[i].Category == CategoryNonTerminating {
			got = &findings[i]
		}
	}
	if got == nil {
		t.Fatal("expected a non-terminating finding for a process that loops forever")
	}
}

func TestDiagnoseBlockingModeAcceptsSelfLoop(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.Continue})
	b.JumpTo(opcode.Jump, "__init__", nil)
	res := runExplorer(t, b.MustBuild())

	findings := Diagnose(res.Graph, true)
	for _, f := range findings {
		if f.Category == CategoryNonTerminating {
			t.Fatalf("blocking mode should treat the self-loop as terminating, got a finding on node len=%d", f.Node.Len)
		}
	}
}

func TestDiagnoseReportsStoppedProcess(t *testing.T) {
	b := program.NewBuilder()
	b.Label("__init__")
	b.Emit(opcode.Instruction{Op: opcode.StopOp, Name: "x"})
	b.Emit(opcode.Instruction{Op: opcode.Return})
	res := runExplorer(t, b.MustBuild())

	findings := Diagnose(res.Graph, false)
	var got *Finding
	for i := range findings {
		if findings[i].Category == CategoryStoppedProcess {
			got = &findings[i]
		}
	}
	if got == nil {
		t.Fatal("expected a stopped process finding")
	}
}
