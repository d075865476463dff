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
	"testing"

	"github.com/harmonylang/harmony-go/internal/value"
)

func nametag(name string) value.Dict {
	return value.NewDict().
		Set(value.NewAtom("name"), value.NewAtom(name)).
		Set(value.NewAtom("tag"), value.NoValue)
}

func TestFreezeThawRoundTrip(t *testing.T) {
	w := NewInitial(nametag("p1"))
	w.Push(value.NewIntFromInt64(42))
	w.Set("x", nil, value.NewBool(true))
	w.Atomic = 2

	snap := w.Freeze()
	w2 := snap.Thaw()
	snap2 := w2.Freeze()

	if !snap.Equal(snap2) {
		t.Fatalf("freeze/thaw/freeze should round trip: %v vs %v", snap, snap2)
	}
}

func TestWorkingMutationDoesNotAffectSnapshot(t *testing.T) {
	w := NewInitial(nametag("p1"))
	w.Push(value.NewIntFromInt64(1))
	snap := w.Freeze()

	w.Push(value.NewIntFromInt64(2))
	if len(snap.Stack) != 1 {
		t.Fatalf("snapshot must be immutable after later mutation of working copy, stack=%v", snap.Stack)
	}
}

func TestStackMoveAndRemoveAt(t *testing.T) {
	w := NewInitial(nametag("p1"))
	w.Push(value.NewIntFromInt64(1))
	w.Push(value.NewIntFromInt64(2))
	w.Push(value.NewIntFromInt64(3))

	v, err := w.RemoveAt(1) // should remove the "2"
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(value.NewIntFromInt64(2)) {
		t.Fatalf("expected to remove 2, got %v", v)
	}
	if len(w.Stack) != 2 {
		t.Fatalf("expected stack size 2, got %d", len(w.Stack))
	}
}

func TestSnapshotsHashEqualWhenFieldsEqual(t *testing.T) {
	a := NewInitial(nametag("p1")).Freeze()
	b := NewInitial(nametag("p1")).Freeze()
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatal("identical contexts must be Equal and hash equal")
	}
}
