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
	"testing"

	"github.com/harmonylang/harmony-go/internal/value"
)

func TestNewInitialHasOneAtomicInitContext(t *testing.T) {
	s, init := NewInitial()
	if !s.Initializing {
		t.Fatal("new state must be initializing")
	}
	if s.Ctxbag.Len() != 1 || s.Ctxbag.Count(init) != 1 {
		t.Fatalf("expected exactly one init context, got %+v", s.Ctxbag)
	}
	if init.Atomic != 1 {
		t.Fatalf("init context must start atomic, got %d", init.Atomic)
	}
}

func TestSetRequiresDeclarationUnlessInitializing(t *testing.T) {
	s, _ := NewInitial()
	s2, err := s.Set("x", nil, value.NewIntFromInt64(1))
	if err != nil {
		t.Fatalf("first-time assignment during init should succeed: %v", err)
	}
	s2.Initializing = false
	if _, err := s2.Set("y", nil, value.NewIntFromInt64(2)); err == nil {
		t.Fatal("expected error assigning undeclared variable outside initialization")
	}
	if _, err := s2.Set("x", nil, value.NewIntFromInt64(3)); err != nil {
		t.Fatalf("re-assignment of a declared variable should succeed: %v", err)
	}
}

func TestStateHashConsistentWithEqual(t *testing.T) {
	a, _ := NewInitial()
	b, _ := NewInitial()
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatal("two freshly built initial states must be equal and hash equal")
	}
}

func TestBagAddRemove(t *testing.T) {
	s, init := NewInitial()
	s = s.Add(init)
	if s.Ctxbag.Count(init) != 2 {
		t.Fatalf("expected count 2 after Add, got %d", s.Ctxbag.Count(init))
	}
	s = s.Remove(init)
	if s.Ctxbag.Count(init) != 1 {
		t.Fatalf("expected count 1 after Remove, got %d", s.Ctxbag.Count(init))
	}
}
