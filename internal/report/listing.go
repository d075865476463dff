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

	"github.com/harmonylang/harmony-go/internal/program"
)

// Listing pretty-prints a compiled program's instructions, one per line,
// with the source location attached when the compiler recorded one
// (spec.md §6.2 "-a — print instruction listing, do not verify"),
// grounded on go/ct/st/code.go's instruction-rendering conventions.
func Listing(w io.Writer, p *program.Program) error {
	labelAt := make(map[int]string)
	for name, pc := range p.Labels {
		labelAt[int(pc)] = name
	}

	for i := 0; i < p.Len(); i++ {
		instr, _ := p.InstructionAt(pcFromInt(i))
		if label, ok := labelAt[i]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
				return err
			}
		}
		line := fmt.Sprintf("%4d: %s", i, instructionString(instr))
		if loc, ok := p.LocationAt(pcFromInt(i)); ok {
			line += fmt.Sprintf("  # %s:%d", loc.File, loc.Line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
