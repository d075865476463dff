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

package vmcontext

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/value"
)

// Working is the mutable execution cursor for one context during a single
// macro-step. Its fields mirror go/interpreter/lfvm/interpreter.go's
// mutable lfvm.context struct: opcodes in internal/opcode mutate a
// *Working directly, exactly as lfvm's `func opAdd(c *context)` family
// mutates a *context. A Working is never stored in a map or compared; it
// is frozen into a Snapshot at every scheduling point.
type Working struct {
	Nametag       value.Dict
	PC            value.PC
	Stack         []value.Value
	FP            int
	Vars          value.Dict
	Atomic        int
	Interruptable bool
	Trap          *Trap
	Terminated    bool
	Stopped       bool
	Failure       *string
}

// Thaw produces a private, mutable Working copy of a Snapshot.
func (s Snapshot) Thaw() *Working {
	w := &Working{
		Nametag:       s.Nametag_,
		PC:            s.PC,
		Stack:         append([]value.Value(nil), s.Stack...),
		FP:            s.FP,
		Vars:          s.Vars,
		Atomic:        s.Atomic,
		Interruptable: s.Interruptable,
		Terminated:    s.Terminated,
		Stopped:       s.Stopped,
	}
	if s.Trap != nil {
		t := *s.Trap
		w.Trap = &t
	}
	if s.Failure != nil {
		f := *s.Failure
		w.Failure = &f
	}
	return w
}

// Freeze snapshots the current working state into an immutable, hashable
// Snapshot.
func (w *Working) Freeze() Snapshot {
	s := Snapshot{
		Nametag_:      w.Nametag,
		PC:            w.PC,
		Stack:         append([]value.Value(nil), w.Stack...),
		FP:            w.FP,
		Vars:          w.Vars,
		Atomic:        w.Atomic,
		Interruptable: w.Interruptable,
		Terminated:    w.Terminated,
		Stopped:       w.Stopped,
	}
	if w.Trap != nil {
		t := *w.Trap
		s.Trap = &t
	}
	if w.Failure != nil {
		f := *w.Failure
		s.Failure = &f
	}
	return s
}

// NewInitial builds the working context for the synthetic __init__ process
// (spec.md §4.F): pc 0, empty stack, atomic=1.
func NewInitial(nametag value.Dict) *Working {
	return &Working{
		Nametag: nametag,
		PC:      value.NewPC(0),
		Vars:    value.NoValue,
		Atomic:  1,
	}
}

// --- Stack operations (spec.md §4.C) ---

func (w *Working) Push(v value.Value) { w.Stack = append(w.Stack, v) }

func (w *Working) Pop() (value.Value, error) {
	if len(w.Stack) == 0 {
		return nil, fmt.Errorf("vmcontext: pop from empty stack")
	}
	v := w.Stack[len(w.Stack)-1]
	w.Stack = w.Stack[:len(w.Stack)-1]
	return v, nil
}

func (w *Working) Peek() (value.Value, error) {
	if len(w.Stack) == 0 {
		return nil, fmt.Errorf("vmcontext: peek of empty stack")
	}
	return w.Stack[len(w.Stack)-1], nil
}

// At returns the value at depth n from the top (0 = top), without
// removing it, as used by Move (spec.md §4.D).
func (w *Working) At(n int) (value.Value, error) {
	idx := len(w.Stack) - 1 - n
	if idx < 0 || idx >= len(w.Stack) {
		return nil, fmt.Errorf("vmcontext: stack index %d out of range (size %d)", n, len(w.Stack))
	}
	return w.Stack[idx], nil
}

// RemoveAt removes and returns the value at depth n from the top, used by
// Move (spec.md §4.D "pop the value at depth n from the top").
func (w *Working) RemoveAt(n int) (value.Value, error) {
	idx := len(w.Stack) - 1 - n
	if idx < 0 || idx >= len(w.Stack) {
		return nil, fmt.Errorf("vmcontext: stack index %d out of range (size %d)", n, len(w.Stack))
	}
	v := w.Stack[idx]
	w.Stack = append(w.Stack[:idx], w.Stack[idx+1:]...)
	return v, nil
}

// --- Local variable operations (spec.md §4.C) ---

// Get looks up a local variable by name.
func (w *Working) Get(name string) (value.Value, bool) {
	return w.Vars.Get(value.NewAtom(name))
}

// IGet traverses a local variable by an Address tail.
func (w *Working) IGet(base string, indexes []value.Value) (value.Value, bool) {
	root, ok := w.Get(base)
	if !ok {
		return nil, false
	}
	return value.IGet(root, indexes)
}

// Set functionally updates a local, creating the base if absent.
func (w *Working) Set(base string, indexes []value.Value, val value.Value) {
	root, ok := w.Get(base)
	if !ok {
		root = value.NoValue
	}
	w.Vars = w.Vars.Set(value.NewAtom(base), value.Update(root, indexes, val))
}

// Delete removes a local variable or subtree.
func (w *Working) Delete(base string, indexes []value.Value) error {
	if len(indexes) == 0 {
		if _, ok := w.Get(base); !ok {
			return fmt.Errorf("vmcontext: delete of undeclared local %q", base)
		}
		w.Vars = w.Vars.Delete(value.NewAtom(base))
		return nil
	}
	root, ok := w.Get(base)
	if !ok {
		return fmt.Errorf("vmcontext: delete of undeclared local %q", base)
	}
	updated, ok := value.DeleteIndexed(root, indexes)
	if !ok {
		return fmt.Errorf("vmcontext: delete of nonexistent path in %q", base)
	}
	w.Vars = w.Vars.Set(value.NewAtom(base), updated)
	return nil
}

// Fail marks the context as having failed with msg; the owning macro-step
// ends at the instruction that calls Fail (spec.md §7).
func (w *Working) Fail(msg string) {
	w.Failure = &msg
}
