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

package explore

import "github.com/harmonylang/harmony-go/internal/state"

// deque is the BFS frontier (spec.md §4.F): same-context successors are
// pushed to the front to bound diameter growth within a long atomic
// block, everything else to the back.
type deque struct {
	items []state.State
}

func newDeque(initial state.State) *deque {
	return &deque{items: []state.State{initial}}
}

func (d *deque) empty() bool { return len(d.items) == 0 }

func (d *deque) pushBack(s state.State) { d.items = append(d.items, s) }

func (d *deque) pushFront(s state.State) {
	d.items = append([]state.State{s}, d.items...)
}

func (d *deque) popFront() state.State {
	s := d.items[0]
	d.items = d.items[1:]
	return s
}
