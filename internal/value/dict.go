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
	"sort"
	"strings"
)

// entry is a single (key, value) pair of a Dict, kept sorted by key under
// the total order so Equal/Hash/Compare and pretty-printing are
// deterministic (spec.md §3 "Dict ordering is lexicographic over sorted
// (key, value) pairs").
type entry struct {
	key Value
	val Value
}

// Dict is Harmony's single compound type: it doubles as record, list, and
// tuple depending on its keys (spec.md §9 "Dynamic Dict-as-everything").
// Dict is immutable; every mutator returns a new Dict sharing no backing
// array with its receiver.
type Dict struct {
	entries []entry
}

// NoValue is the singleton empty Dict, Harmony's "no value" sentinel
// (spec.md §3).
var NoValue = Dict{}

func NewDict() Dict { return Dict{} }

func dictFind(entries []entry, key Value) (int, bool) {
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].key.Compare(key) >= 0
	})
	if i < len(entries) && entries[i].key.Equal(key) {
		return i, true
	}
	return i, false
}

// Get returns the value stored at key, if any.
func (d Dict) Get(key Value) (Value, bool) {
	i, ok := dictFind(d.entries, key)
	if !ok {
		return nil, false
	}
	return d.entries[i].val, true
}

// Set returns a new Dict with key bound to val (functional update).
func (d Dict) Set(key, val Value) Dict {
	i, ok := dictFind(d.entries, key)
	next := make([]entry, len(d.entries), len(d.entries)+1)
	copy(next, d.entries)
	if ok {
		next[i] = entry{key, val}
		return Dict{entries: next}
	}
	next = append(next, entry{})
	copy(next[i+1:], next[i:])
	next[i] = entry{key, val}
	return Dict{entries: next}
}

// Delete returns a new Dict with key removed, if present.
func (d Dict) Delete(key Value) Dict {
	i, ok := dictFind(d.entries, key)
	if !ok {
		return d
	}
	next := make([]entry, 0, len(d.entries)-1)
	next = append(next, d.entries[:i]...)
	next = append(next, d.entries[i+1:]...)
	return Dict{entries: next}
}

// IGet traverses the Dict (or a value reachable through it) by a sequence
// of index Values (an Address tail), as used by LoadVar/Load with a popped
// Address (spec.md §4.D).
func IGet(v Value, indexes []Value) (Value, bool) {
	cur := v
	for _, idx := range indexes {
		d, ok := cur.(Dict)
		if !ok {
			return nil, false
		}
		next, ok := d.Get(idx)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Update returns a copy of v with the value reachable via indexes replaced
// by val, creating intermediate Dicts as needed (spec.md §4.B/§4.C
// "functional update").
func Update(v Value, indexes []Value, val Value) Value {
	if len(indexes) == 0 {
		return val
	}
	d, ok := v.(Dict)
	if !ok {
		d = NewDict()
	}
	child, _ := d.Get(indexes[0])
	if child == nil {
		child = NoValue
	}
	return d.Set(indexes[0], Update(child, indexes[1:], val))
}

// DeleteIndexed returns a copy of v with the subtree at indexes removed.
func DeleteIndexed(v Value, indexes []Value) (Value, bool) {
	if len(indexes) == 0 {
		return NoValue, true
	}
	d, ok := v.(Dict)
	if !ok {
		return v, false
	}
	if len(indexes) == 1 {
		if _, present := d.Get(indexes[0]); !present {
			return v, false
		}
		return d.Delete(indexes[0]), true
	}
	child, present := d.Get(indexes[0])
	if !present {
		return v, false
	}
	updated, ok := DeleteIndexed(child, indexes[1:])
	if !ok {
		return v, false
	}
	return d.Set(indexes[0], updated), true
}

// Len returns the number of entries.
func (d Dict) Len() int { return len(d.entries) }

// Keys returns the Dict's keys in sorted order.
func (d Dict) Keys() []Value {
	keys := make([]Value, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

// IsList reports whether the Dict's keys are exactly 0..n-1 (spec.md §9),
// the predicate used by Split and list concatenation/pretty-printing.
func (d Dict) IsList() bool {
	for i, e := range d.entries {
		n, ok := e.key.(Int)
		if !ok || !n.Equal(NewIntFromInt64(int64(i))) {
			return false
		}
	}
	return true
}

// Values returns the Dict's values in key order; meaningful as a sequence
// only when IsList is true.
func (d Dict) Values() []Value {
	vals := make([]Value, len(d.entries))
	for i, e := range d.entries {
		vals[i] = e.val
	}
	return vals
}

// FromList builds a list-shaped Dict (keys 0..n-1) from a slice, as Dict
// and Split use (spec.md §4.D).
func FromList(vals []Value) Dict {
	d := NewDict()
	for i, v := range vals {
		d = d.Set(NewIntFromInt64(int64(i)), v)
	}
	return d
}

// Concat implements Dict "+" (list concatenation by renumbering keys,
// spec.md §4.D.1 variadic "+").
func Concat(dicts ...Dict) Dict {
	var all []Value
	for _, d := range dicts {
		all = append(all, d.Values()...)
	}
	return FromList(all)
}

// Bagsize sums the (presumed integer) values of a Dict used as a bag
// (spec.md §4.A "bagsize"), e.g. a multiset recorded as value -> count.
func Bagsize(d Dict) Int {
	total := Zero
	for _, e := range d.entries {
		if n, ok := e.val.(Int); ok {
			total = Add(total, n)
		}
	}
	return total
}

func (d Dict) Kind() Kind { return KindDict }

func (d Dict) Equal(other Value) bool {
	o, ok := other.(Dict)
	if !ok || len(d.entries) != len(o.entries) {
		return false
	}
	for i := range d.entries {
		if !d.entries[i].key.Equal(o.entries[i].key) || !d.entries[i].val.Equal(o.entries[i].val) {
			return false
		}
	}
	return true
}

func (d Dict) Compare(other Value) int {
	o, ok := other.(Dict)
	if !ok {
		return compareKind(KindDict, other.Kind())
	}
	n := len(d.entries)
	if len(o.entries) < n {
		n = len(o.entries)
	}
	for i := 0; i < n; i++ {
		if c := d.entries[i].key.Compare(o.entries[i].key); c != 0 {
			return c
		}
		if c := d.entries[i].val.Compare(o.entries[i].val); c != 0 {
			return c
		}
	}
	switch {
	case len(d.entries) < len(o.entries):
		return -1
	case len(d.entries) > len(o.entries):
		return 1
	default:
		return 0
	}
}

func (d Dict) Hash() uint64 {
	h := hashBytes(KindDict, []byte{byte(len(d.entries))})
	for _, e := range d.entries {
		h = h*1099511628211 ^ e.key.Hash()
		h = h*1099511628211 ^ e.val.Hash()
	}
	return h
}

func (d Dict) String() string {
	if d.Len() == 0 {
		return "()"
	}
	var b strings.Builder
	if d.IsList() {
		b.WriteByte('(')
		for i, v := range d.Values() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.String())
		}
		if d.Len() == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
		return b.String()
	}
	b.WriteString("{ ")
	for i, e := range d.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key.String())
		b.WriteString(": ")
		b.WriteString(e.val.String())
	}
	b.WriteString(" }")
	return b.String()
}
