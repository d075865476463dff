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

import (
	"fmt"
	"hash/maphash"
)

var seed = maphash.MakeSeed()

func hashBytes(tag Kind, b []byte) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(tag))
	h.Write(b)
	return h.Sum64()
}

// Bool is the Value variant wrapping a boolean.
type Bool bool

func NewBool(b bool) Bool { return Bool(b) }

func (b Bool) Kind() Kind { return KindBool }

func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

func (b Bool) Compare(other Value) int {
	o, ok := other.(Bool)
	if !ok {
		return compareKind(KindBool, other.Kind())
	}
	if b == o {
		return 0
	}
	if !bool(b) {
		return -1
	}
	return 1
}

func (b Bool) Hash() uint64 {
	if b {
		return hashBytes(KindBool, []byte{1})
	}
	return hashBytes(KindBool, []byte{0})
}

func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

// Atom is an interned symbol, printed with a leading dot (spec.md §3).
type Atom string

func NewAtom(s string) Atom { return Atom(s) }

func (a Atom) Kind() Kind { return KindAtom }

func (a Atom) Equal(other Value) bool {
	o, ok := other.(Atom)
	return ok && a == o
}

func (a Atom) Compare(other Value) int {
	o, ok := other.(Atom)
	if !ok {
		return compareKind(KindAtom, other.Kind())
	}
	switch {
	case a < o:
		return -1
	case a > o:
		return 1
	default:
		return 0
	}
}

func (a Atom) Hash() uint64 { return hashBytes(KindAtom, []byte(a)) }

func (a Atom) String() string { return "." + string(a) }

// PC is an instruction index. It is a distinct Value variant from Int even
// though both are represented as integers (spec.md §3).
type PC uint32

func NewPC(n uint32) PC { return PC(n) }

func (p PC) Kind() Kind { return KindPC }

func (p PC) Equal(other Value) bool {
	o, ok := other.(PC)
	return ok && p == o
}

func (p PC) Compare(other Value) int {
	o, ok := other.(PC)
	if !ok {
		return compareKind(KindPC, other.Kind())
	}
	switch {
	case p < o:
		return -1
	case p > o:
		return 1
	default:
		return 0
	}
}

func (p PC) Hash() uint64 {
	return hashBytes(KindPC, []byte{byte(p), byte(p >> 8), byte(p >> 16), byte(p >> 24)})
}

func (p PC) String() string { return fmt.Sprintf("PC(%d)", uint32(p)) }
