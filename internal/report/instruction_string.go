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
	"strings"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/value"
)

func pcFromInt(i int) value.PC { return value.NewPC(uint32(i)) }

// instructionString renders one instruction's operand the way its opcode
// uses it (spec.md §4.D), for the -a listing.
func instructionString(instr opcode.Instruction) string {
	switch instr.Op {
	case opcode.Push:
		return fmt.Sprintf("Push %s", instr.Const.String())
	case opcode.LoadVar, opcode.StoreVar, opcode.DelVar, opcode.PushAddress,
		opcode.Load, opcode.Store, opcode.Del, opcode.StopOp:
		if instr.Name != "" {
			return fmt.Sprintf("%s %s", instr.Op, instr.Name)
		}
		return instr.Op.String()
	case opcode.Jump, opcode.JumpCond:
		if instr.Cond != nil {
			return fmt.Sprintf("%s %v %s", instr.Op, instr.Target, instr.Cond.String())
		}
		return fmt.Sprintf("%s %v", instr.Op, instr.Target)
	case opcode.Nary:
		return fmt.Sprintf("Nary %s/%d", instr.NaryOp, instr.Arity)
	case opcode.AddressOp, opcode.Move:
		return fmt.Sprintf("%s %d", instr.Op, instr.N)
	case opcode.Frame:
		return fmt.Sprintf("Frame %s %s", instr.FrameOp.Name, strings.Join(instr.FrameOp.Args, ","))
	case opcode.Assert:
		if instr.HasMsg {
			return "Assert (msg)"
		}
		return "Assert"
	default:
		return instr.Op.String()
	}
}
