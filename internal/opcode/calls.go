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
	"fmt"

	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

const (
	callNormal    = value.Atom("normal")
	callInterrupt = value.Atom("interrupt")
	callProcess   = value.Atom("process")
)

// execApply implements spec.md §4.D "Apply: pop f and i: if f is a Dict,
// push f[i] or fail; if f is a PC, perform a call" and §4.D.2's call
// sequence.
func execApply(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	f, err := w.Pop()
	if err != nil {
		return s, err
	}
	i, err := w.Pop()
	if err != nil {
		return s, err
	}
	switch fn := f.(type) {
	case value.Dict:
		v, ok := fn.Get(i)
		if !ok {
			return s, fmt.Errorf("opcode: Apply: %v has no entry for %v", fn, i)
		}
		w.Push(v)
		advance(w)
		return s, nil
	case value.PC:
		w.Push(value.NewPC(uint32(w.PC) + 1)) // return address
		w.Push(callNormal)
		w.Push(i)
		w.PC = fn
		return s, nil
	default:
		return s, fmt.Errorf("opcode: Apply requires a Dict or PC, got %v", f)
	}
}

// execFrame implements spec.md §4.D "Frame name args: pop arg, push arg
// (debug), push saved locals, push saved fp, set fp, bind arguments into
// vars, set result = novalue."
func execFrame(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	arg, err := w.Pop()
	if err != nil {
		return s, err
	}
	w.Push(arg)            // debug copy, discarded (not read) by Return; see spec.md §9 open question.
	w.Push(w.Vars)          // saved locals.
	w.Push(value.NewIntFromInt64(int64(w.FP))) // saved fp.
	w.FP = len(w.Stack)

	vars := value.NoValue
	switch len(instr.FrameOp.Args) {
	case 0:
		// no arguments to bind.
	case 1:
		vars = vars.Set(value.NewAtom(instr.FrameOp.Args[0]), arg)
	default:
		d, ok := arg.(value.Dict)
		if !ok || !d.IsList() {
			return s, fmt.Errorf("opcode: Frame %s expects a tuple argument for %d parameters", instr.FrameOp.Name, len(instr.FrameOp.Args))
		}
		for idx, name := range instr.FrameOp.Args {
			v, ok := d.Get(value.NewIntFromInt64(int64(idx)))
			if !ok {
				return s, fmt.Errorf("opcode: Frame %s: missing argument %d", instr.FrameOp.Name, idx)
			}
			vars = vars.Set(value.NewAtom(name), v)
		}
	}
	vars = vars.Set(value.NewAtom("result"), value.NoValue)
	w.Vars = vars
	advance(w)
	return s, nil
}

// execReturn implements spec.md §4.D.2 "Return". The empty-stack check
// for __init__'s final Return is evaluated first, before attempting to
// pop the Frame-pushed bookkeeping values that a called method (but not
// the top-level __init__ context) would have on its stack.
func execReturn(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	result, _ := w.Get("result")

	if len(w.Stack) == 0 {
		w.Terminated = true
		return s, nil
	}

	fpVal, err := w.Pop()
	if err != nil {
		return s, err
	}
	savedFP, ok := fpVal.(value.Int)
	if !ok {
		return s, fmt.Errorf("opcode: Return: corrupt saved frame pointer %v", fpVal)
	}

	savedVars, err := w.Pop()
	if err != nil {
		return s, err
	}
	vars, ok := savedVars.(value.Dict)
	if !ok {
		return s, fmt.Errorf("opcode: Return: corrupt saved locals %v", savedVars)
	}

	if _, err := w.Pop(); err != nil { // discard the debug argument copy.
		return s, err
	}

	callType, err := w.Pop()
	if err != nil {
		return s, err
	}
	atom, ok := callType.(value.Atom)
	if !ok {
		return s, fmt.Errorf("opcode: Return: corrupt call-type marker %v", callType)
	}

	w.FP = int(savedFP.Int64Unchecked())
	w.Vars = vars

	switch atom {
	case callNormal:
		retPC, err := w.Pop()
		if err != nil {
			return s, err
		}
		pc, ok := retPC.(value.PC)
		if !ok {
			return s, fmt.Errorf("opcode: Return: corrupt return address %v", retPC)
		}
		w.PC = pc
		w.Push(result)
	case callInterrupt:
		retPC, err := w.Pop()
		if err != nil {
			return s, err
		}
		pc, ok := retPC.(value.PC)
		if !ok {
			return s, fmt.Errorf("opcode: Return: corrupt return address %v", retPC)
		}
		w.PC = pc
	case callProcess:
		w.Terminated = true
	default:
		return s, fmt.Errorf("opcode: Return: unknown call-type marker %v", atom)
	}
	return s, nil
}

// execSpawn implements spec.md §4.D "Spawn: pop method-PC, arg, tag;
// construct a fresh Context whose locals are bound by executing that
// method's Frame, stack = [\"process\", arg], add to ctxbag."
func execSpawn(w *vmcontext.Working, s state.State, env Environment, _ Instruction) (state.State, error) {
	methodVal, err := w.Pop()
	if err != nil {
		return s, err
	}
	method, ok := methodVal.(value.PC)
	if !ok {
		return s, fmt.Errorf("opcode: Spawn requires a PC method, got %v", methodVal)
	}
	arg, err := w.Pop()
	if err != nil {
		return s, err
	}
	tag, err := w.Pop()
	if err != nil {
		return s, err
	}

	frameInstr, ok := env.InstructionAt(method)
	if !ok || frameInstr.Op != Frame {
		return s, fmt.Errorf("opcode: Spawn target %v is not a Frame instruction", method)
	}

	nametag := value.NewDict().
		Set(value.NewAtom("name"), value.NewAtom(frameInstr.FrameOp.Name)).
		Set(value.NewAtom("tag"), tag)
	child := vmcontext.NewInitial(nametag)
	child.Atomic = 0
	child.PC = method
	child.Push(callProcess)
	child.Push(arg)

	if _, err := Execute(child, s, env, frameInstr); err != nil {
		return s, fmt.Errorf("opcode: Spawn: binding arguments: %w", err)
	}

	next := s.Add(child.Freeze())
	advance(w)
	return next, nil
}

// execTrap implements spec.md §4.D "Trap: pop method-PC and arg; set
// trap = (PC, arg); set interruptable = true."
func execTrap(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	methodVal, err := w.Pop()
	if err != nil {
		return s, err
	}
	method, ok := methodVal.(value.PC)
	if !ok {
		return s, fmt.Errorf("opcode: Trap requires a PC method, got %v", methodVal)
	}
	arg, err := w.Pop()
	if err != nil {
		return s, err
	}
	w.Trap = &vmcontext.Trap{Method: method, Arg: arg}
	w.Interruptable = true
	advance(w)
	return s, nil
}

// execGo implements spec.md §4.D "Go: pop a Context value and a result;
// add a copy of that context with result pushed and stopped=false to
// ctxbag; decrement stopbag."
func execGo(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	result, err := w.Pop()
	if err != nil {
		return s, err
	}
	ctxVal, err := w.Pop()
	if err != nil {
		return s, err
	}
	snap, ok := ctxVal.(vmcontext.Snapshot)
	if !ok {
		return s, fmt.Errorf("opcode: Go requires a Context value, got %v", ctxVal)
	}

	resumed := snap.Thaw()
	resumed.Push(result)
	resumed.Stopped = false
	resumedSnap := resumed.Freeze()

	next := s.Add(resumedSnap)
	next.Stopbag = next.Stopbag.Remove(snap)
	advance(w)
	return next, nil
}

// FireInterrupt implements spec.md §4.D.2 "Interrupt: when the executor
// decides to fire a trap, it pushes the saved PC, \"interrupt\", the trap
// argument, sets pc to the trap's method, and clears interruptable."
// It is called by internal/exec, not reachable through Execute's opcode
// dispatch, since it is not triggered by an instruction at w.PC.
func FireInterrupt(w *vmcontext.Working) error {
	if w.Trap == nil {
		return fmt.Errorf("opcode: FireInterrupt: context has no pending trap")
	}
	saved := w.PC
	trap := *w.Trap
	w.Push(value.NewPC(uint32(saved)))
	w.Push(callInterrupt)
	w.Push(trap.Arg)
	w.PC = trap.Method
	w.Interruptable = false
	return nil
}
