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

import "strings"

// Address is a rooted path into a shared or local compound variable
// (spec.md §3): a base variable name followed by zero or more index
// values. The empty address (no base) is the distinguished value None.
type Address struct {
	Base    string
	Indexes []Value
}

// None is the empty Address.
var None = Address{}

func NewAddress(base string, indexes ...Value) Address {
	return Address{Base: base, Indexes: append([]Value(nil), indexes...)}
}

// Extend returns a new Address with additional indexes appended.
func (a Address) Extend(indexes ...Value) Address {
	next := make([]Value, 0, len(a.Indexes)+len(indexes))
	next = append(next, a.Indexes...)
	next = append(next, indexes...)
	return Address{Base: a.Base, Indexes: next}
}

func (a Address) IsNone() bool { return a.Base == "" && len(a.Indexes) == 0 }

func (a Address) Kind() Kind { return KindAddress }

func (a Address) Equal(other Value) bool {
	o, ok := other.(Address)
	if !ok || a.Base != o.Base || len(a.Indexes) != len(o.Indexes) {
		return false
	}
	for i := range a.Indexes {
		if !a.Indexes[i].Equal(o.Indexes[i]) {
			return false
		}
	}
	return true
}

func (a Address) Compare(other Value) int {
	o, ok := other.(Address)
	if !ok {
		return compareKind(KindAddress, other.Kind())
	}
	if a.Base != o.Base {
		if a.Base < o.Base {
			return -1
		}
		return 1
	}
	n := len(a.Indexes)
	if len(o.Indexes) < n {
		n = len(o.Indexes)
	}
	for i := 0; i < n; i++ {
		if c := a.Indexes[i].Compare(o.Indexes[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a.Indexes) < len(o.Indexes):
		return -1
	case len(a.Indexes) > len(o.Indexes):
		return 1
	default:
		return 0
	}
}

func (a Address) Hash() uint64 {
	h := hashBytes(KindAddress, []byte(a.Base))
	for _, idx := range a.Indexes {
		h = h*1099511628211 ^ idx.Hash()
	}
	return h
}

func (a Address) String() string {
	if a.IsNone() {
		return "None"
	}
	var b strings.Builder
	b.WriteString(a.Base)
	for _, idx := range a.Indexes {
		b.WriteByte('[')
		b.WriteString(idx.String())
		b.WriteByte(']')
	}
	return b.String()
}
