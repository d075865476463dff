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

func advance(w *vmcontext.Working) { w.PC = value.NewPC(uint32(w.PC) + 1) }

func execPush(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	w.Push(instr.Const)
	advance(w)
	return s, nil
}

func execPop(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	if _, err := w.Pop(); err != nil {
		return s, err
	}
	advance(w)
	return s, nil
}

func execDup(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	top, err := w.Peek()
	if err != nil {
		return s, err
	}
	w.Push(top)
	advance(w)
	return s, nil
}

// execMove implements "Move n: pop the value at depth n from the top and
// push it" (spec.md §4.D).
func execMove(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	v, err := w.RemoveAt(instr.N)
	if err != nil {
		return s, err
	}
	w.Push(v)
	advance(w)
	return s, nil
}

// execSplit implements "Split: pop a Dict and push its sequential values
// (key order 0..n-1)" (spec.md §4.D).
func execSplit(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	top, err := w.Pop()
	if err != nil {
		return s, err
	}
	d, ok := top.(value.Dict)
	if !ok || !d.IsList() {
		return s, fmt.Errorf("opcode: Split requires a list-shaped Dict, got %v", top)
	}
	for _, v := range d.Values() {
		w.Push(v)
	}
	advance(w)
	return s, nil
}

func execCut(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	top, err := w.Pop()
	if err != nil {
		return s, err
	}
	set, ok := top.(value.Set)
	if !ok {
		return s, fmt.Errorf("opcode: Cut requires a Set, got %v", top)
	}
	min, rest, err := value.Cut(set)
	if err != nil {
		return s, err
	}
	w.Push(min)
	w.Push(rest)
	advance(w)
	return s, nil
}

// resolveTarget implements the "(or via popped Address)" variant shared by
// LoadVar/StoreVar/DelVar/PushAddress/Load/Store/Del: when instr.Name is
// empty, the base and indexes come from a popped Address value instead.
func resolveTarget(w *vmcontext.Working, instr Instruction) (base string, indexes []value.Value, err error) {
	if instr.Name != "" {
		return instr.Name, nil, nil
	}
	top, err := w.Pop()
	if err != nil {
		return "", nil, err
	}
	addr, ok := top.(value.Address)
	if !ok {
		return "", nil, fmt.Errorf("opcode: expected an Address, got %v", top)
	}
	return addr.Base, addr.Indexes, nil
}

func execLoadVar(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	v, ok := w.IGet(base, indexes)
	if !ok {
		return s, fmt.Errorf("opcode: LoadVar: no such local %q", base)
	}
	w.Push(v)
	advance(w)
	return s, nil
}

func execStoreVar(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	v, err := w.Pop()
	if err != nil {
		return s, err
	}
	w.Set(base, indexes, v)
	advance(w)
	return s, nil
}

func execDelVar(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	if err := w.Delete(base, indexes); err != nil {
		return s, err
	}
	advance(w)
	return s, nil
}

func execPushAddress(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	w.Push(value.NewAddress(instr.Name))
	advance(w)
	return s, nil
}

// execAddress implements "Address n: pop n values; treat bottom as a base
// Address and extend with the rest in order" (spec.md §4.D).
func execAddress(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	if instr.N <= 0 {
		return s, fmt.Errorf("opcode: Address requires n >= 1, got %d", instr.N)
	}
	vals := make([]value.Value, instr.N)
	for i := instr.N - 1; i >= 0; i-- {
		v, err := w.Pop()
		if err != nil {
			return s, err
		}
		vals[i] = v
	}
	base, ok := vals[0].(value.Address)
	if !ok {
		return s, fmt.Errorf("opcode: Address requires bottom value to be an Address, got %v", vals[0])
	}
	w.Push(base.Extend(vals[1:]...))
	advance(w)
	return s, nil
}

func execLoad(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	v, ok := s.Get(base, indexes)
	if !ok {
		return s, fmt.Errorf("opcode: Load: variable %q is not declared", base)
	}
	w.Push(v)
	advance(w)
	return s, nil
}

func execStore(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	v, err := w.Pop()
	if err != nil {
		return s, err
	}
	next, err := s.Set(base, indexes, v)
	if err != nil {
		return s, err
	}
	advance(w)
	return next, nil
}

func execDel(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	next, err := s.Delete(base, indexes)
	if err != nil {
		return s, err
	}
	advance(w)
	return next, nil
}

// execStop implements "Stop [name]: record ctx at the given address, set
// stopped=true, increment pc. The NEXT instruction MUST be Continue"
// (spec.md §4.D).
func execStop(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	base, indexes, err := resolveTarget(w, instr)
	if err != nil {
		return s, err
	}
	advance(w)
	snap := w.Freeze()
	next, err := s.Stop(base, indexes, snap)
	if err != nil {
		return s, err
	}
	w.Stopped = true
	return next, nil
}

// execContinue is a no-op marking the resumption point of a Stop
// (spec.md §4.D); it is also the mandatory scheduling point of spec.md §5.
func execContinue(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	advance(w)
	return s, nil
}

func execJump(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	w.PC = instr.Target
	return s, nil
}

func execJumpCond(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	v, err := w.Pop()
	if err != nil {
		return s, err
	}
	if v.Equal(instr.Cond) {
		w.PC = instr.Target
	} else {
		advance(w)
	}
	return s, nil
}

// execSet implements "Set: pop n, pop n values, push a Set" (spec.md
// §4.D): the arity n is itself popped off the stack.
func execSet(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	n, err := popInt(w)
	if err != nil {
		return s, err
	}
	vals := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := w.Pop()
		if err != nil {
			return s, err
		}
		vals[i] = v
	}
	w.Push(value.NewSet(vals...))
	advance(w)
	return s, nil
}

// execDict implements "Dict: pop n, pop n (value, key) pairs, push a
// Dict" (spec.md §4.D).
func execDict(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	n, err := popInt(w)
	if err != nil {
		return s, err
	}
	d := value.NewDict()
	for i := 0; i < n; i++ {
		val, err := w.Pop()
		if err != nil {
			return s, err
		}
		key, err := w.Pop()
		if err != nil {
			return s, err
		}
		d = d.Set(key, val)
	}
	w.Push(d)
	advance(w)
	return s, nil
}

func popInt(w *vmcontext.Working) (int, error) {
	v, err := w.Pop()
	if err != nil {
		return 0, err
	}
	n, ok := v.(value.Int)
	if !ok {
		return 0, fmt.Errorf("opcode: expected an Int arity, got %v", v)
	}
	return int(n.Int64Unchecked()), nil
}

func execAtomicInc(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	w.Atomic++
	advance(w)
	return s, nil
}

func execAtomicDec(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	if w.Atomic == 0 {
		return s, fmt.Errorf("opcode: AtomicDec: atomic counter already zero")
	}
	w.Atomic--
	advance(w)
	return s, nil
}

// execChoose implements the deterministic half of Choose (spec.md §4.D):
// a singleton set is resolved immediately; a larger set is left for
// internal/exec to turn into a scheduling point (spec.md §4.E bullet 3).
func execChoose(w *vmcontext.Working, s state.State, _ Environment, _ Instruction) (state.State, error) {
	top, err := w.Pop()
	if err != nil {
		return s, err
	}
	set, ok := top.(value.Set)
	if !ok || set.Len() == 0 {
		w.Fail(fmt.Sprintf("pc = %v: Error: choose can only be applied to non-empty sets", w.PC))
		return s, nil
	}
	if set.Len() != 1 {
		// internal/exec is responsible for detecting this case before
		// calling Execute and routing it to the explorer instead; reaching
		// here with size != 1 is a caller error.
		return s, fmt.Errorf("opcode: Choose over non-singleton set must be handled by the executor")
	}
	w.Push(set.Min())
	advance(w)
	return s, nil
}

// execAssert implements "Assert [msg]: pop optional message, pop
// condition; failure iff condition is false" (spec.md §4.D).
func execAssert(w *vmcontext.Working, s state.State, _ Environment, instr Instruction) (state.State, error) {
	var msg string
	if instr.HasMsg {
		v, err := w.Pop()
		if err != nil {
			return s, err
		}
		msg = v.String()
	}
	cond, err := w.Pop()
	if err != nil {
		return s, err
	}
	b, ok := cond.(value.Bool)
	if !ok {
		return s, fmt.Errorf("opcode: Assert requires a Bool condition, got %v", cond)
	}
	if !bool(b) {
		if msg == "" {
			msg = "Harmony Assertion failed"
		}
		w.Fail(msg)
		return s, nil
	}
	advance(w)
	return s, nil
}
