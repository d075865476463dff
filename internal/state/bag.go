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

// Package state implements Harmony's global state: the shared-variable
// record, the running/stopped context multisets, and the choosing flag
// (spec.md §3 "Global state").
package state

import (
	"sort"

	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

// Bag is an immutable multiset of context snapshots, kept sorted by the
// total order so two bags with the same contents compare and hash equal
// regardless of insertion order (spec.md GLOSSARY "Bag: multiset,
// represented as a map value -> positive count").
type Bag struct {
	entries []bagEntry
}

type bagEntry struct {
	ctx   vmcontext.Snapshot
	count int
}

func bagFind(entries []bagEntry, ctx vmcontext.Snapshot) (int, bool) {
	i := sort.Search(len(entries), func(i int) bool {
		return entries[i].ctx.Compare(ctx) >= 0
	})
	if i < len(entries) && entries[i].ctx.Equal(ctx) {
		return i, true
	}
	return i, false
}

// Add returns a new Bag with one more occurrence of ctx.
func (b Bag) Add(ctx vmcontext.Snapshot) Bag {
	i, ok := bagFind(b.entries, ctx)
	next := make([]bagEntry, len(b.entries))
	copy(next, b.entries)
	if ok {
		next[i].count++
		return Bag{entries: next}
	}
	next = append(next, bagEntry{})
	copy(next[i+1:], next[i:])
	next[i] = bagEntry{ctx: ctx, count: 1}
	return Bag{entries: next}
}

// Remove returns a new Bag with one fewer occurrence of ctx. It is a
// caller error to remove a context not present.
func (b Bag) Remove(ctx vmcontext.Snapshot) Bag {
	i, ok := bagFind(b.entries, ctx)
	if !ok {
		return b
	}
	next := make([]bagEntry, len(b.entries))
	copy(next, b.entries)
	if next[i].count > 1 {
		next[i].count--
		return Bag{entries: next}
	}
	out := make([]bagEntry, 0, len(next)-1)
	out = append(out, next[:i]...)
	out = append(out, next[i+1:]...)
	return Bag{entries: out}
}

// Count returns the number of occurrences of ctx.
func (b Bag) Count(ctx vmcontext.Snapshot) int {
	i, ok := bagFind(b.entries, ctx)
	if !ok {
		return 0
	}
	return b.entries[i].count
}

// Contains reports whether ctx occurs at least once.
func (b Bag) Contains(ctx vmcontext.Snapshot) bool {
	_, ok := bagFind(b.entries, ctx)
	return ok
}

// Distinct returns the distinct contexts in the bag, in `key` order. The
// explorer (spec.md §4.F) schedules "for every distinct context in
// ctxbag", so duplicates (identical contexts run by different processes)
// produce a single successor, matching the reference semantics.
func (b Bag) Distinct() []vmcontext.Snapshot {
	out := make([]vmcontext.Snapshot, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.ctx
	}
	return out
}

// Len returns the number of distinct contexts (not the multiset size).
func (b Bag) Len() int { return len(b.entries) }

// Size returns the total multiset size (sum of counts).
func (b Bag) Size() int {
	total := 0
	for _, e := range b.entries {
		total += e.count
	}
	return total
}

func (b Bag) Equal(o Bag) bool {
	if len(b.entries) != len(o.entries) {
		return false
	}
	for i := range b.entries {
		if b.entries[i].count != o.entries[i].count || !b.entries[i].ctx.Equal(o.entries[i].ctx) {
			return false
		}
	}
	return true
}

func (b Bag) Hash() uint64 {
	var h uint64 = 1469598103934665603
	for _, e := range b.entries {
		h = h*1099511628211 ^ e.ctx.Hash()
		h = h*1099511628211 ^ uint64(e.count)
	}
	return h
}

// AsValue renders the bag as a Dict mapping each distinct Context to its
// count, the representation spec.md uses for bags in general.
func (b Bag) AsValue() value.Dict {
	d := value.NewDict()
	for _, e := range b.entries {
		d = d.Set(e.ctx, value.NewIntFromInt64(int64(e.count)))
	}
	return d
}
