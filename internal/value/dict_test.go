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

package value

import "testing"

func TestDictSetGetDelete(t *testing.T) {
	d := NewDict()
	d = d.Set(NewAtom("x"), NewIntFromInt64(1))
	d = d.Set(NewAtom("y"), NewIntFromInt64(2))

	if v, ok := d.Get(NewAtom("x")); !ok || !v.Equal(NewIntFromInt64(1)) {
		t.Fatalf("expected x=1, got %v, %v", v, ok)
	}
	d2 := d.Delete(NewAtom("x"))
	if _, ok := d2.Get(NewAtom("x")); ok {
		t.Fatal("x should be deleted from d2")
	}
	if _, ok := d.Get(NewAtom("x")); !ok {
		t.Fatal("original dict must remain unmodified (immutability)")
	}
}

func TestIsListAndSplitRoundTrip(t *testing.T) {
	vals := []Value{NewIntFromInt64(10), NewIntFromInt64(20), NewAtom("z")}
	list := FromList(vals)
	if !list.IsList() {
		t.Fatal("FromList result should be a list")
	}
	got := list.Values()
	if len(got) != len(vals) {
		t.Fatalf("round trip length mismatch: got %d want %d", len(got), len(vals))
	}
	for i := range vals {
		if !got[i].Equal(vals[i]) {
			t.Fatalf("round trip mismatch at %d: got %v want %v", i, got[i], vals[i])
		}
	}
}

func TestUpdateAndIGet(t *testing.T) {
	var root Value = NoValue
	root = Update(root, []Value{NewAtom("a"), NewIntFromInt64(0)}, NewAtom("hi"))
	got, ok := IGet(root, []Value{NewAtom("a"), NewIntFromInt64(0)})
	if !ok || !got.Equal(NewAtom("hi")) {
		t.Fatalf("IGet after Update mismatch: %v, %v", got, ok)
	}
}

func TestBagsize(t *testing.T) {
	d := NewDict()
	d = d.Set(NewAtom("a"), NewIntFromInt64(3))
	d = d.Set(NewAtom("b"), NewIntFromInt64(4))
	if sz := Bagsize(d); !sz.Equal(NewIntFromInt64(7)) {
		t.Fatalf("bagsize: got %v want 7", sz)
	}
}
