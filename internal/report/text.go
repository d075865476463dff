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
	"fmt"
	"io"
	"strings"

	"github.com/dsnet/golib/unitconv"
)

// Text renders a terse tabular report the way go/ct/driver/stats.go
// prints run statistics: one aligned line per row, a header naming the
// violation category, and a one-line summary of how many states and
// microsteps the run explored.
type Text struct {
	Writer io.Writer
}

// WriteTrace prints one diagnosed finding.
func (t Text) WriteTrace(tr Trace) error {
	if _, err := fmt.Fprintf(t.Writer, "%s\n", tr.Category); err != nil {
		return err
	}
	widest := 0
	for _, r := range tr.Rows {
		if len(r.Process) > widest {
			widest = len(r.Process)
		}
	}
	for _, r := range tr.Rows {
		pad := strings.Repeat(" ", widest-len(r.Process))
		if _, err := fmt.Fprintf(t.Writer, "  %s%s  %-10s  %s\n", r.Process, pad, r.Steps, r.Vars); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints the explored-graph size the way stats.go reports
// throughput, using dsnet/golib/unitconv for a human-scaled state count.
func (t Text) WriteSummary(states, microsteps int) error {
	_, err := fmt.Fprintf(t.Writer, "explored %s states, %s microsteps\n",
		unitconv.FormatPrefix(float64(states), unitconv.SI, 0),
		unitconv.FormatPrefix(float64(microsteps), unitconv.SI, 0))
	return err
}
