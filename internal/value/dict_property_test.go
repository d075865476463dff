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
	"testing"

	"pgregory.net/rand"
)

// TestDictSetIsOrderIndependent runs the same random set of key/value
// pairs through Dict.Set in several random orders and checks they all
// converge on the same Dict, seeded with pgregory.net/rand for a
// reproducible property check rather than a fixed example table.
func TestDictSetIsOrderIndependent(t *testing.T) {
	r := rand.New(1234)
	const n = 64

	type pair struct {
		key Value
		val Value
	}
	pairs := make([]pair, n)
	for i := range pairs {
		pairs[i] = pair{key: NewIntFromInt64(r.Int63n(1000)), val: NewIntFromInt64(r.Int63n(1000))}
	}

	want := NewDict()
	for _, p := range pairs {
		want = want.Set(p.key, p.val)
	}

	for trial := 0; trial < 8; trial++ {
		shuffled := append([]pair(nil), pairs...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := NewDict()
		for _, p := range shuffled {
			got = got.Set(p.key, p.val)
		}
		if !got.Equal(want) {
			t.Fatalf("trial %d: Dict built in shuffled order diverged from insertion order", trial)
		}
	}
}

// TestSetMembersAreSortedRegardlessOfInsertionOrder checks Set's total
// order is respected for a randomly generated, randomly ordered sequence
// of members (spec.md §3 "Set ordering is the total order over Values").
func TestSetMembersAreSortedRegardlessOfInsertionOrder(t *testing.T) {
	r := rand.New(5678)
	const n = 50

	vals := make([]Value, n)
	for i := range vals {
		vals[i] = NewIntFromInt64(r.Int63n(500))
	}

	s := NewSet()
	for _, v := range vals {
		s = s.Add(v)
	}

	members := s.Members()
	for i := 1; i < len(members); i++ {
		if members[i-1].Compare(members[i]) >= 0 {
			t.Fatalf("Set members not strictly increasing at index %d: %v then %v", i, members[i-1], members[i])
		}
	}
}
