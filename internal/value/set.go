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
	"sort"
	"strings"
)

// Set is an immutable, sorted collection of distinct Values (spec.md §3).
// Sorting by the total order makes Set ordering, Cut, and pretty-printing
// deterministic, which state-space exploration depends on (spec.md §4.A
// "Determinism of exploration depends on this total order").
type Set struct {
	members []Value
}

func NewSet(vals ...Value) Set {
	s := Set{}
	for _, v := range vals {
		s = s.Add(v)
	}
	return s
}

func setFind(members []Value, v Value) (int, bool) {
	i := sort.Search(len(members), func(i int) bool {
		return members[i].Compare(v) >= 0
	})
	if i < len(members) && members[i].Equal(v) {
		return i, true
	}
	return i, false
}

func (s Set) Add(v Value) Set {
	i, ok := setFind(s.members, v)
	if ok {
		return s
	}
	next := make([]Value, len(s.members)+1)
	copy(next, s.members[:i])
	next[i] = v
	copy(next[i+1:], s.members[i:])
	return Set{members: next}
}

func (s Set) Remove(v Value) Set {
	i, ok := setFind(s.members, v)
	if !ok {
		return s
	}
	next := make([]Value, 0, len(s.members)-1)
	next = append(next, s.members[:i]...)
	next = append(next, s.members[i+1:]...)
	return Set{members: next}
}

func (s Set) Contains(v Value) bool {
	_, ok := setFind(s.members, v)
	return ok
}

func (s Set) Len() int { return len(s.members) }

// Members returns the set's elements in ascending `key` order.
func (s Set) Members() []Value {
	out := make([]Value, len(s.members))
	copy(out, s.members)
	return out
}

// Min returns the smallest element under `key`. The set must be non-empty.
func (s Set) Min() Value { return s.members[0] }

// Max returns the largest element under `key`. The set must be non-empty.
func (s Set) Max() Value { return s.members[len(s.members)-1] }

// Cut pops the minimum element under `key` and returns it together with
// the remaining set (spec.md §4.A "The Cut primitive"). The set must be
// non-empty.
func Cut(s Set) (min Value, rest Set, err error) {
	if s.Len() == 0 {
		return nil, Set{}, fmt.Errorf("value: Cut of empty set")
	}
	min = s.members[0]
	rest = Set{members: append([]Value(nil), s.members[1:]...)}
	return min, rest, nil
}

// Union implements Set "+" (spec.md §4.D.1 variadic "+").
func Union(a, b Set) Set {
	out := a
	for _, v := range b.members {
		out = out.Add(v)
	}
	return out
}

// Intersect implements Set "*" (spec.md §4.D.1 variadic "*").
func Intersect(a, b Set) Set {
	var members []Value
	for _, v := range a.members {
		if b.Contains(v) {
			members = append(members, v)
		}
	}
	return Set{members: members}
}

// Diff implements Set "-" (spec.md §4.A "difference").
func Diff(a, b Set) Set {
	var members []Value
	for _, v := range a.members {
		if !b.Contains(v) {
			members = append(members, v)
		}
	}
	return Set{members: members}
}

// Range implements the inclusive integer range operator ".." (spec.md
// §4.D.1), producing a Set of Int values from lo to hi inclusive.
func Range(lo, hi Int) Set {
	var members []Value
	for cur := lo; cur.Compare(hi) <= 0; cur = Add(cur, NewIntFromInt64(1)) {
		members = append(members, cur)
	}
	return Set{members: members}
}

func (s Set) Kind() Kind { return KindSet }

func (s Set) Equal(other Value) bool {
	o, ok := other.(Set)
	if !ok || len(s.members) != len(o.members) {
		return false
	}
	for i := range s.members {
		if !s.members[i].Equal(o.members[i]) {
			return false
		}
	}
	return true
}

func (s Set) Compare(other Value) int {
	o, ok := other.(Set)
	if !ok {
		return compareKind(KindSet, other.Kind())
	}
	n := len(s.members)
	if len(o.members) < n {
		n = len(o.members)
	}
	for i := 0; i < n; i++ {
		if c := s.members[i].Compare(o.members[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(s.members) < len(o.members):
		return -1
	case len(s.members) > len(o.members):
		return 1
	default:
		return 0
	}
}

func (s Set) Hash() uint64 {
	h := hashBytes(KindSet, []byte{byte(len(s.members))})
	for _, v := range s.members {
		h = h*1099511628211 ^ v.Hash()
	}
	return h
}

func (s Set) String() string {
	var b strings.Builder
	b.WriteString("{ ")
	for i, v := range s.members {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteString(" }")
	return b.String()
}
