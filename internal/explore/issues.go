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

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
)

var nametagNameKey = value.NewAtom("name")

// detectIssues scans s for contexts carrying a runtime failure (spec.md
// §4.G "Safety: ... e.g. 'process failure' from an assertion or type
// error"). A state can in principle carry more than one failed context
// (several processes can each independently fail within the same
// macro-step boundary only if they were already failed before this
// state, which the executor prevents by construction) but the scan
// handles the general case regardless.
func detectIssues(s state.State) []string {
	var issues []string
	for _, ctx := range s.Ctxbag.Distinct() {
		if ctx.Failure == nil {
			continue
		}
		name, _ := ctx.Nametag_.Get(nametagNameKey)
		issues = append(issues, fmt.Sprintf("process failure: %s (pc=%v): %s", name, ctx.PC, *ctx.Failure))
	}
	return issues
}
