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

package report

import (
	"encoding/json"
	"sort"

	"golang.org/x/exp/maps"

	"github.com/harmonylang/harmony-go/internal/explore"
)

// rowSerializable mirrors Row in a shape encoding/json can marshal
// directly, the same shadow-struct pattern go/ct/st/serialization.go
// uses around its own State type.
type rowSerializable struct {
	Process string `json:"process"`
	Steps   string `json:"steps"`
	Vars    string `json:"vars"`
}

type traceSerializable struct {
	Category string            `json:"category"`
	Rows     []rowSerializable `json:"rows"`
}

// MarshalJSON renders tr as the -d full-report's per-finding payload.
func (tr Trace) MarshalJSON() ([]byte, error) {
	out := traceSerializable{Category: tr.Category}
	for _, r := range tr.Rows {
		out.Rows = append(out.Rows, rowSerializable{Process: r.Process, Steps: r.Steps, Vars: r.Vars})
	}
	return json.Marshal(out)
}

// nodeSerializable is one entry of a -d full-graph dump: just enough to
// reconstruct which states were visited and how, without re-exposing the
// internal Bag/Dict representations.
type nodeSerializable struct {
	State  string   `json:"state"`
	Len    int      `json:"len"`
	Issues []string `json:"issues,omitempty"`
}

// Graph renders every node of g for the -d flag (spec.md §6.2 "-d — dump
// the full state graph in the report").
func Graph(g *explore.Graph) ([]byte, error) {
	nodes := g.Nodes()
	out := make([]nodeSerializable, len(nodes))
	for i, n := range nodes {
		out[i] = nodeSerializable{
			State:  n.State.Vars.String(),
			Len:    n.Len,
			Issues: n.Issues,
		}
	}
	return json.Marshal(out)
}

// IssueCounts tallies how many nodes of g carry each distinct issue
// string, rendered with keys in sorted order for deterministic JSON output
// (golang.org/x/exp/maps, grounded on go/ct/driver/stats.go's
// ruleStatistics, which keeps a map[string]ruleInfo and calls maps.Keys
// to iterate it for printing).
func IssueCounts(g *explore.Graph) ([]byte, error) {
	counts := map[string]int{}
	for _, n := range g.Nodes() {
		for _, issue := range n.Issues {
			counts[issue]++
		}
	}
	keys := maps.Keys(counts)
	sort.Strings(keys)

	type entry struct {
		Issue string `json:"issue"`
		Count int    `json:"count"`
	}
	out := make([]entry, len(keys))
	for i, k := range keys {
		out[i] = entry{Issue: k, Count: counts[k]}
	}
	return json.Marshal(out)
}
