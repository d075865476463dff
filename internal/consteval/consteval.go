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

// Package consteval evaluates a closed compile-time expression by running
// its compiled operand sequence through internal/opcode directly (spec.md
// §4.H), grounded exactly on original_source/harmony.py's ConstAST.compile:
// a private, one-context state executes the expression's code until its
// program counter runs off the end, then the value left on top of the
// stack is the result.
package consteval

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

const constProcessName = value.Atom("__const__")

// codeEnv adapts a bare instruction slice to opcode.Environment for code
// that never went through internal/program — a constant expression's
// operand sequence has no labels, no locations, and critically no
// trailing Return, so it isn't a program.Program.
type codeEnv struct {
	code []opcode.Instruction
}

func (e codeEnv) InstructionAt(pc value.PC) (opcode.Instruction, bool) {
	i := int(pc)
	if i < 0 || i >= len(e.code) {
		return opcode.Instruction{}, false
	}
	return e.code[i], true
}

// Evaluate runs code — a closed expression's compiled operand sequence,
// containing no Return, Stop, or Spawn — to completion in a fresh,
// private global state with atomic=1 and nametag
// {name: "__const__", tag: novalue} (spec.md §4.H), and returns the value
// left on top of its stack. A type-mismatch failure mid-evaluation is
// returned as an error: at this stage it is a fatal compile error, not a
// context failure to record and keep exploring past.
func Evaluate(code []opcode.Instruction) (value.Value, error) {
	env := codeEnv{code: code}

	nametag := value.NewDict().
		Set(value.NewAtom("name"), constProcessName).
		Set(value.NewAtom("tag"), value.NoValue)
	w := vmcontext.NewInitial(nametag)
	w.Atomic = 1

	s := state.State{Vars: value.NoValue}

	for int(w.PC) != len(code) {
		instr, ok := env.InstructionAt(w.PC)
		if !ok {
			return nil, fmt.Errorf("consteval: program counter %v out of range", w.PC)
		}
		next, err := opcode.Execute(w, s, env, instr)
		if err != nil {
			return nil, fmt.Errorf("consteval: %w", err)
		}
		s = next
		if w.Failure != nil {
			return nil, fmt.Errorf("consteval: %s", *w.Failure)
		}
		if w.Terminated || w.Stopped {
			return nil, fmt.Errorf("consteval: a constant expression must not Return, Stop, or Spawn")
		}
	}

	top, err := w.Peek()
	if err != nil {
		return nil, fmt.Errorf("consteval: expression left no value on the stack: %w", err)
	}
	return top, nil
}
