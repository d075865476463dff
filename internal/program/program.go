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

// Package program holds the compiled representation an explorer runs:
// an immutable, indexable instruction vector plus the side tables
// (labels, source locations, resolved constants) the rest of the
// checker consults by name. Grounded on go/ct/st/code.go (an immutable,
// indexable code object addressed by the rest of `ct` via a small
// read-only interface) and spec.md §6.1's external-interface contract.
package program

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/value"
)

// Location is the source position a compiler attaches to one instruction,
// used by internal/report to annotate traces and the -a instruction
// listing.
type Location struct {
	File string
	Line int
}

// Program is a compiled Harmony module: a flat instruction vector plus
// the metadata a compiler front end (out of scope, spec.md §1 Non-goals)
// would have produced. It satisfies opcode.Environment, so it is the
// concrete value internal/exec and internal/explore run against.
type Program struct {
	Code           []opcode.Instruction
	Labels         map[string]value.PC
	Locations      map[value.PC]Location
	Constants      map[string]value.Value
	ModuleVersions map[string]string
}

// InstructionAt implements opcode.Environment.
func (p *Program) InstructionAt(pc value.PC) (opcode.Instruction, bool) {
	i := int(pc)
	if i < 0 || i >= len(p.Code) {
		return opcode.Instruction{}, false
	}
	return p.Code[i], true
}

// Len reports the number of compiled instructions.
func (p *Program) Len() int { return len(p.Code) }

// Label resolves a named entry point (a method or a label emitted by the
// compiler, e.g. a spawn target) to its program counter.
func (p *Program) Label(name string) (value.PC, bool) {
	pc, ok := p.Labels[name]
	return pc, ok
}

// LocationAt returns the source position recorded for pc, if any.
func (p *Program) LocationAt(pc value.PC) (Location, bool) {
	loc, ok := p.Locations[pc]
	return loc, ok
}

// Validate performs the structural checks spec.md §6.1 requires before a
// Program may be explored: every Jump/JumpCond target is in range, and
// the __init__ entry point's code ends in a Return. Spawn's method
// target is resolved dynamically from the stack (internal/opcode) and so
// isn't checked statically here.
func (p *Program) Validate() error {
	for pc, instr := range p.Code {
		switch instr.Op {
		case opcode.Jump, opcode.JumpCond:
			if int(instr.Target) >= len(p.Code) {
				return fmt.Errorf("program: instruction %d: jump target %v out of range", pc, instr.Target)
			}
		}
	}
	initPC, ok := p.Labels["__init__"]
	if !ok {
		return fmt.Errorf("program: no __init__ entry point")
	}
	if int(initPC) >= len(p.Code) {
		return fmt.Errorf("program: __init__ entry point %v out of range", initPC)
	}
	last := p.Code[len(p.Code)-1]
	if last.Op != opcode.Return {
		return fmt.Errorf("program: final instruction must be Return, got %v", last.Op)
	}
	return nil
}
