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

// Package vmcontext implements Harmony's per-process execution state: the
// Context value (spec.md §3 "Context"). Two views exist, per spec.md §9's
// design note: Snapshot is the immutable, hashable view stored in a
// global state's ctxbag/stopbag; Working is the mutable cursor the macro-
// step executor (internal/exec) advances one opcode at a time.
package vmcontext

import (
	"strings"

	"github.com/harmonylang/harmony-go/internal/value"
)

// Trap records a pending interrupt handler installed by the Trap opcode
// (spec.md §4.D).
type Trap struct {
	Method value.PC
	Arg    value.Value
}

func (t *Trap) Equal(o *Trap) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.Method.Equal(o.Method) && t.Arg.Equal(o.Arg)
}

// Snapshot is the immutable view of a Context: two snapshots with
// identical fields are Equal and hash identically (spec.md §3 "Contexts
// are values"). Snapshot implements value.Context so it can be stored as
// a Value (e.g. pushed by the Go opcode, spec.md §4.D).
type Snapshot struct {
	Nametag_      value.Dict
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

func (s Snapshot) Nametag() value.Dict { return s.Nametag_ }

func (s Snapshot) Kind() value.Kind { return value.KindContext }

func (s Snapshot) Equal(other value.Value) bool {
	o, ok := other.(Snapshot)
	if !ok {
		return false
	}
	if !s.Nametag_.Equal(o.Nametag_) || !s.PC.Equal(o.PC) || s.FP != o.FP ||
		!s.Vars.Equal(o.Vars) || s.Atomic != o.Atomic || s.Interruptable != o.Interruptable ||
		s.Terminated != o.Terminated || s.Stopped != o.Stopped {
		return false
	}
	if !s.Trap.Equal(o.Trap) {
		return false
	}
	if (s.Failure == nil) != (o.Failure == nil) {
		return false
	}
	if s.Failure != nil && *s.Failure != *o.Failure {
		return false
	}
	if len(s.Stack) != len(o.Stack) {
		return false
	}
	for i := range s.Stack {
		if !s.Stack[i].Equal(o.Stack[i]) {
			return false
		}
	}
	return true
}

func (s Snapshot) Compare(other value.Value) int {
	o, ok := other.(Snapshot)
	if !ok {
		return compareKindFallback(other)
	}
	if c := s.Nametag_.Compare(o.Nametag_); c != 0 {
		return c
	}
	if c := s.PC.Compare(o.PC); c != 0 {
		return c
	}
	if c := s.Vars.Compare(o.Vars); c != 0 {
		return c
	}
	n := len(s.Stack)
	if len(o.Stack) < n {
		n = len(o.Stack)
	}
	for i := 0; i < n; i++ {
		if c := s.Stack[i].Compare(o.Stack[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s.Stack) < len(o.Stack):
		return -1
	case len(s.Stack) > len(o.Stack):
		return 1
	default:
		return 0
	}
}

func compareKindFallback(other value.Value) int {
	if value.KindContext < other.Kind() {
		return -1
	}
	if value.KindContext > other.Kind() {
		return 1
	}
	return 0
}

func (s Snapshot) Hash() uint64 {
	h := s.Nametag_.Hash()
	h = h*1099511628211 ^ s.PC.Hash()
	h = h*1099511628211 ^ s.Vars.Hash()
	h = h*1099511628211 ^ uint64(s.Atomic)
	for _, v := range s.Stack {
		h = h*1099511628211 ^ v.Hash()
	}
	if s.Terminated {
		h = h*1099511628211 ^ 1
	}
	if s.Stopped {
		h = h*1099511628211 ^ 2
	}
	return h
}

func (s Snapshot) String() string {
	var b strings.Builder
	b.WriteString("Context(")
	b.WriteString(s.Nametag_.String())
	b.WriteString(", pc=")
	b.WriteString(s.PC.String())
	b.WriteByte(')')
	return b.String()
}

// Clone returns an independent copy sharing no backing array with s,
// the same deep-copy shape as go/ct/st/stack.go's *Stack.Clone.
func (s Snapshot) Clone() Snapshot {
	clone := s
	clone.Stack = append([]value.Value(nil), s.Stack...)
	if s.Trap != nil {
		t := *s.Trap
		clone.Trap = &t
	}
	if s.Failure != nil {
		f := *s.Failure
		clone.Failure = &f
	}
	return clone
}
