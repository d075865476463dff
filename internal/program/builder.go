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
	"fmt"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/value"
)

// Builder assembles a Program by hand, one instruction at a time. It is
// the compiler's seam's test-side counterpart (spec.md §6.1: "the
// compiler is out of scope; a Program is the contract between it and the
// core"), built in the same fluent style as go/ct/state_builder.go's
// ct.StateBuilder, but emitting a fixed instruction vector rather than a
// randomized fuzz state.
type Builder struct {
	code      []opcode.Instruction
	labels    map[string]value.PC
	locations map[value.PC]Location
	constants map[string]value.Value
	versions  map[string]string
	pending   map[string][]value.PC // labels referenced by Jump/JumpCond before being defined
}

// NewBuilder starts an empty program.
func NewBuilder() *Builder {
	return &Builder{
		labels:    map[string]value.PC{},
		locations: map[value.PC]Location{},
		constants: map[string]value.Value{},
		versions:  map[string]string{},
		pending:   map[string][]value.PC{},
	}
}

// Emit appends instr and returns its program counter.
func (b *Builder) Emit(instr opcode.Instruction) value.PC {
	pc := value.NewPC(uint32(len(b.code)))
	b.code = append(b.code, instr)
	return pc
}

// Label binds name to the program counter of the next instruction Emit
// will produce, and resolves any Jump/JumpCond previously emitted with
// JumpTo(name).
func (b *Builder) Label(name string) *Builder {
	pc := value.NewPC(uint32(len(b.code)))
	b.labels[name] = pc
	for _, ref := range b.pending[name] {
		b.code[ref].Target = pc
	}
	delete(b.pending, name)
	return b
}

// JumpTo emits op (Jump or JumpCond) targeting name, which may be defined
// later with Label; the builder patches the target once it is.
func (b *Builder) JumpTo(op opcode.Op, name string, cond value.Value) *Builder {
	instr := opcode.Instruction{Op: op, Cond: cond}
	if pc, ok := b.labels[name]; ok {
		instr.Target = pc
	} else {
		b.pending[name] = append(b.pending[name], value.NewPC(uint32(len(b.code))))
	}
	b.Emit(instr)
	return b
}

// At records a source location for the most recently emitted instruction.
func (b *Builder) At(file string, line int) *Builder {
	if len(b.code) == 0 {
		return b
	}
	b.locations[value.NewPC(uint32(len(b.code)-1))] = Location{File: file, Line: line}
	return b
}

// Const registers a resolved constant (spec.md §6.2's `-c NAME=EXPR`, or a
// `const` declaration's compiled value).
func (b *Builder) Const(name string, v value.Value) *Builder {
	b.constants[name] = v
	return b
}

// ModuleVersion records a `-m MOD=VER` selection for report metadata.
func (b *Builder) ModuleVersion(module, version string) *Builder {
	b.versions[module] = version
	return b
}

// Build finalizes the Program. It returns an error (rather than the
// Validate performed separately) if any JumpTo target was never bound by
// a matching Label.
func (b *Builder) Build() (*Program, error) {
	if len(b.pending) > 0 {
		for name := range b.pending {
			return nil, fmt.Errorf("program: builder: label %q referenced but never defined", name)
		}
	}
	return &Program{
		Code:           b.code,
		Labels:         b.labels,
		Locations:      b.locations,
		Constants:      b.constants,
		ModuleVersions: b.versions,
	}, nil
}

// MustBuild is Build without the error return, for test code that
// constructs its program inline and treats a malformed builder call as a
// programming error.
func (b *Builder) MustBuild() *Program {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
