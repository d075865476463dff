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

package state

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

// State is a global Harmony state (spec.md §3 "Global state"): the shared
// variable record, the running and stopped context multisets, and the
// choosing flag. States are values: Equal/Hash make them usable as map
// keys in the explorer's visited set (spec.md §4.F).
type State struct {
	Vars         value.Dict
	Ctxbag       Bag
	Stopbag      Bag
	Choosing     *vmcontext.Snapshot
	Initializing bool
}

// NewInitial builds the state the explorer starts from: a single running
// __init__ context with atomic=1 (spec.md §4.F).
func NewInitial() (State, vmcontext.Snapshot) {
	nametag := value.NewDict().
		Set(value.NewAtom("name"), value.NewAtom("__init__")).
		Set(value.NewAtom("tag"), value.NoValue)
	init := vmcontext.NewInitial(nametag)
	init.Atomic = 1
	snap := init.Freeze()
	s := State{
		Vars:         value.NoValue,
		Initializing: true,
	}
	s.Ctxbag = s.Ctxbag.Add(snap)
	return s, snap
}

// Copy returns a shallow copy: Values are immutable so only the bags
// (themselves immutable once built, but held by value here) need
// re-assigning, the same shallow-copy shape as go/ct/st/state.go's
// State.Clone.
func (s State) Copy() State {
	return s
}

// Get reads a shared variable (or a subtree of one) by address.
func (s State) Get(base string, indexes []value.Value) (value.Value, bool) {
	root, ok := s.Vars.Get(value.NewAtom(base))
	if !ok {
		return nil, false
	}
	return value.IGet(root, indexes)
}

// Set performs a functional update of a shared variable (spec.md §4.B
// "set(indexes, v)"). When the root variable is undeclared, the write is
// only allowed while Initializing (spec.md §3 Invariant); otherwise it is
// an error, surfaced the same way any opcode failure is (spec.md §7).
func (s State) Set(base string, indexes []value.Value, val value.Value) (State, error) {
	_, declared := s.Vars.Get(value.NewAtom(base))
	if !declared && !s.Initializing {
		return s, fmt.Errorf("state: variable %q is not declared", base)
	}
	root, ok := s.Vars.Get(value.NewAtom(base))
	if !ok {
		root = value.NoValue
	}
	next := s
	next.Vars = s.Vars.Set(value.NewAtom(base), value.Update(root, indexes, val))
	return next, nil
}

// Delete implements spec.md §4.B "delete(indexes): functional deletion;
// error when the root variable is undeclared and initializing is false."
func (s State) Delete(base string, indexes []value.Value) (State, error) {
	_, declared := s.Vars.Get(value.NewAtom(base))
	if !declared {
		if !s.Initializing {
			return s, fmt.Errorf("state: delete of undeclared variable %q", base)
		}
		return s, nil
	}
	if len(indexes) == 0 {
		next := s
		next.Vars = s.Vars.Delete(value.NewAtom(base))
		return next, nil
	}
	root, _ := s.Vars.Get(value.NewAtom(base))
	updated, ok := value.DeleteIndexed(root, indexes)
	if !ok {
		return s, fmt.Errorf("state: delete of nonexistent path in %q", base)
	}
	next := s
	next.Vars = s.Vars.Set(value.NewAtom(base), updated)
	return next, nil
}

// Stop implements spec.md §4.B "stop(indexes, ctx): append ctx to a
// list-valued shared variable at indexes and increment stopbag[ctx]."
func (s State) Stop(base string, indexes []value.Value, ctx vmcontext.Snapshot) (State, error) {
	root, ok := s.Vars.Get(value.NewAtom(base))
	if !ok {
		if !s.Initializing {
			return s, fmt.Errorf("state: stop into undeclared variable %q", base)
		}
		root = value.NoValue
	}
	target, ok := value.IGet(root, indexes)
	var list value.Dict
	if ok {
		list, _ = target.(value.Dict)
	}
	appended := list.Set(value.NewIntFromInt64(int64(list.Len())), ctx)
	next := s
	next.Vars = s.Vars.Set(value.NewAtom(base), value.Update(root, indexes, appended))
	next.Stopbag = s.Stopbag.Add(ctx)
	return next, nil
}

// Add inserts ctx into the running multiset.
func (s State) Add(ctx vmcontext.Snapshot) State {
	next := s
	next.Ctxbag = s.Ctxbag.Add(ctx)
	return next
}

// Remove removes one occurrence of ctx from the running multiset.
func (s State) Remove(ctx vmcontext.Snapshot) State {
	next := s
	next.Ctxbag = s.Ctxbag.Remove(ctx)
	return next
}

func (s State) Equal(o State) bool {
	if !s.Vars.Equal(o.Vars) || !s.Ctxbag.Equal(o.Ctxbag) || !s.Stopbag.Equal(o.Stopbag) ||
		s.Initializing != o.Initializing {
		return false
	}
	if (s.Choosing == nil) != (o.Choosing == nil) {
		return false
	}
	if s.Choosing != nil && !s.Choosing.Equal(*o.Choosing) {
		return false
	}
	return true
}

func (s State) Hash() uint64 {
	h := s.Vars.Hash()
	h = h*1099511628211 ^ s.Ctxbag.Hash()
	h = h*1099511628211 ^ s.Stopbag.Hash()
	if s.Initializing {
		h = h*1099511628211 ^ 1
	}
	if s.Choosing != nil {
		h = h*1099511628211 ^ s.Choosing.Hash()
	}
	return h
}

// IsRunnable reports whether any context is runnable, i.e. the state is
// not a terminal state for the termination check (spec.md §4.G).
func (s State) IsRunnable() bool {
	return s.Ctxbag.Len() > 0
}
