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

// Package opcode implements Harmony's ~35-opcode instruction set
// (spec.md §4.D): each opcode is a pure function `(state, context) ->
// (state', context')`, dispatched the same per-opcode function-table way
// as go/interpreter/lfvm/instructions.go, but operating on Harmony's
// value algebra and functional global state instead of EVM words and
// memory.
package opcode

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

// Op identifies one of Harmony's opcodes.
type Op uint8

const (
	Push Op = iota
	Pop
	Dup
	Move
	Split
	Cut
	LoadVar
	StoreVar
	DelVar
	PushAddress
	AddressOp
	Load
	Store
	Del
	StopOp
	Continue
	Jump
	JumpCond
	SetOp
	DictOp
	Nary
	Apply
	Frame
	Return
	Spawn
	Trap
	Go
	AtomicInc
	AtomicDec
	Choose
	Assert
	numOps
)

func (op Op) String() string {
	names := [...]string{
		"Push", "Pop", "Dup", "Move", "Split", "Cut", "LoadVar", "StoreVar",
		"DelVar", "PushAddress", "Address", "Load", "Store", "Del", "Stop",
		"Continue", "Jump", "JumpCond", "Set", "Dict", "Nary", "Apply",
		"Frame", "Return", "Spawn", "Trap", "Go", "AtomicInc", "AtomicDec",
		"Choose", "Assert",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// FrameSpec is the operand of a Frame instruction (spec.md §4.D): the
// method's display name and its formal argument names, used to destructure
// the call argument into locals.
type FrameSpec struct {
	Name string
	Args []string
}

// Instruction is one compiled opcode plus whichever operand fields it
// needs; unused fields are zero. This generalizes
// go/interpreter/lfvm/instruction.go's `Instruction{opcode OpCode; arg
// uint16}` shape, since Harmony's operands are richer than a 16-bit word.
type Instruction struct {
	Op Op

	Const   value.Value // Push
	Name    string      // LoadVar/StoreVar/DelVar/PushAddress/Load/Store/Del/Stop (base variable name)
	N       int         // Move/Address (arity); Set and Dict pop their count from the stack
	Target  value.PC    // Jump/JumpCond
	Cond    value.Value // JumpCond (value compared against)
	NaryOp  NaryOp      // Nary
	Arity   int         // Nary
	FrameOp FrameSpec   // Frame
	HasMsg  bool        // Assert: whether a message value is popped
}

//go:generate mockgen -source opcode.go -destination environment_mock.go -package opcode

// Environment is the read-only view of the compiled program an opcode may
// consult (spec.md §6.1). It is the seam internal/exec's tests mock with
// go.uber.org/mock (environment_mock.go), and the one the compiler's
// Program implementation (internal/program) satisfies for real runs.
type Environment interface {
	// InstructionAt returns the instruction at pc, or ok=false if pc is
	// out of range.
	InstructionAt(pc value.PC) (Instruction, bool)
}

// Func is the pure-transition shape of one opcode (spec.md §2 row D):
// "(state, context) → (state', context')". The context half is expressed
// as in-place mutation of the working copy (spec.md §9 design note); the
// state half is returned functionally, matching internal/state's API.
type Func func(w *vmcontext.Working, s state.State, env Environment, instr Instruction) (state.State, error)

var dispatch [numOps]Func

func init() {
	dispatch[Push] = execPush
	dispatch[Pop] = execPop
	dispatch[Dup] = execDup
	dispatch[Move] = execMove
	dispatch[Split] = execSplit
	dispatch[Cut] = execCut
	dispatch[LoadVar] = execLoadVar
	dispatch[StoreVar] = execStoreVar
	dispatch[DelVar] = execDelVar
	dispatch[PushAddress] = execPushAddress
	dispatch[AddressOp] = execAddress
	dispatch[Load] = execLoad
	dispatch[Store] = execStore
	dispatch[Del] = execDel
	dispatch[StopOp] = execStop
	dispatch[Continue] = execContinue
	dispatch[Jump] = execJump
	dispatch[JumpCond] = execJumpCond
	dispatch[SetOp] = execSet
	dispatch[DictOp] = execDict
	dispatch[Nary] = execNary
	dispatch[Apply] = execApply
	dispatch[Frame] = execFrame
	dispatch[Return] = execReturn
	dispatch[Spawn] = execSpawn
	dispatch[Trap] = execTrap
	dispatch[Go] = execGo
	dispatch[AtomicInc] = execAtomicInc
	dispatch[AtomicDec] = execAtomicDec
	dispatch[Choose] = execChoose
	dispatch[Assert] = execAssert
}

// Execute runs the single opcode instr, advancing w.PC unless instr itself
// set it (Jump/JumpCond/call/return). It is the only exported entry point
// internal/exec drives.
func Execute(w *vmcontext.Working, s state.State, env Environment, instr Instruction) (state.State, error) {
	if int(instr.Op) >= len(dispatch) || dispatch[instr.Op] == nil {
		return s, fmt.Errorf("opcode: no implementation for %v", instr.Op)
	}
	return dispatch[instr.Op](w, s, env, instr)
}

// IsSharedMemoryOp reports whether instr is one of the two opcodes that
// make the scheduler yield before executing them while not atomic
// (spec.md §4.E/§5: "Load, Store"). Del and Stop are shared-memory
// writes too but are not scheduling points in their own right: Del has
// no special-cased break (matching the reference VM), and Stop already
// forces a break by setting c.stopped once it executes.
func IsSharedMemoryOp(instr Instruction) bool {
	return instr.Op == Load || instr.Op == Store
}
