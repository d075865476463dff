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

package opcode

import (
	"fmt"

	"github.com/harmonylang/harmony-go/internal/state"
	"github.com/harmonylang/harmony-go/internal/value"
	"github.com/harmonylang/harmony-go/internal/vmcontext"
)

// NaryOp identifies one of the unary/binary/variadic operators of
// spec.md §4.D.1, applied by the Nary instruction.
type NaryOp uint8

const (
	OpNeg NaryOp = iota
	OpNot
	OpCardinality
	OpMin
	OpMax
	OpLen
	OpKeys
	OpBagsize
	OpHash
	OpNametag
	OpProcesses
	OpAtLabel

	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpSub
	OpDivOp
	OpMod
	OpRange
	OpIn

	OpAdd
	OpMul
)

// execNary dispatches Nary instructions by popping instr.Arity operands
// (spec.md §4.D "Nary op k: apply k-ary operator").
func execNary(w *vmcontext.Working, s state.State, env Environment, instr Instruction) (state.State, error) {
	args := make([]value.Value, instr.Arity)
	for i := instr.Arity - 1; i >= 0; i-- {
		v, err := w.Pop()
		if err != nil {
			return s, err
		}
		args[i] = v
	}
	result, err := applyNary(w, s, env, instr.NaryOp, args)
	if err != nil {
		return s, err
	}
	w.Push(result)
	advance(w)
	return s, nil
}

func typeMismatch(op NaryOp, args ...value.Value) error {
	return fmt.Errorf("opcode: type mismatch applying %v to %v", op, args)
}

func (op NaryOp) String() string {
	names := map[NaryOp]string{
		OpNeg: "-", OpNot: "not", OpCardinality: "cardinality", OpMin: "min",
		OpMax: "max", OpLen: "len", OpKeys: "keys", OpBagsize: "bagsize",
		OpHash: "hash", OpNametag: "nametag", OpProcesses: "processes",
		OpAtLabel: "atLabel", OpEq: "==", OpNeq: "!=", OpLt: "<", OpLe: "<=",
		OpGt: ">", OpGe: ">=", OpSub: "-", OpDivOp: "/", OpMod: "%",
		OpRange: "..", OpIn: "in", OpAdd: "+", OpMul: "*",
	}
	if n, ok := names[op]; ok {
		return n
	}
	return fmt.Sprintf("NaryOp(%d)", op)
}

func applyNary(w *vmcontext.Working, s state.State, env Environment, op NaryOp, args []value.Value) (value.Value, error) {
	switch op {
	case OpNeg:
		n, ok := args[0].(value.Int)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return value.Neg(n), nil
	case OpNot:
		b, ok := args[0].(value.Bool)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return value.NewBool(!bool(b)), nil
	case OpCardinality:
		set, ok := args[0].(value.Set)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return value.NewIntFromInt64(int64(set.Len())), nil
	case OpMin:
		set, ok := args[0].(value.Set)
		if !ok || set.Len() == 0 {
			return nil, typeMismatch(op, args...)
		}
		return set.Min(), nil
	case OpMax:
		set, ok := args[0].(value.Set)
		if !ok || set.Len() == 0 {
			return nil, typeMismatch(op, args...)
		}
		return set.Max(), nil
	case OpLen:
		switch v := args[0].(type) {
		case value.Dict:
			return value.NewIntFromInt64(int64(v.Len())), nil
		case value.Set:
			return value.NewIntFromInt64(int64(v.Len())), nil
		default:
			return nil, typeMismatch(op, args...)
		}
	case OpKeys:
		d, ok := args[0].(value.Dict)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return value.NewSet(d.Keys()...), nil
	case OpBagsize:
		d, ok := args[0].(value.Dict)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return value.Bagsize(d), nil
	case OpHash:
		return value.NewIntFromUint64(args[0].Hash()), nil
	case OpNametag:
		ctx, ok := args[0].(value.Context)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return ctx.Nametag(), nil
	case OpProcesses:
		return processes(w, s)
	case OpAtLabel:
		target, ok := args[0].(value.PC)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return atLabel(w, s, target)
	case OpEq:
		return value.NewBool(args[0].Equal(args[1])), nil
	case OpNeq:
		return value.NewBool(!args[0].Equal(args[1])), nil
	case OpLt:
		return value.NewBool(args[0].Compare(args[1]) < 0), nil
	case OpLe:
		return value.NewBool(args[0].Compare(args[1]) <= 0), nil
	case OpGt:
		return value.NewBool(args[0].Compare(args[1]) > 0), nil
	case OpGe:
		return value.NewBool(args[0].Compare(args[1]) >= 0), nil
	case OpSub:
		a, ok1 := args[0].(value.Int)
		b, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, typeMismatch(op, args...)
		}
		return value.Sub(a, b), nil
	case OpDivOp:
		a, ok1 := args[0].(value.Int)
		b, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, typeMismatch(op, args...)
		}
		return value.Div(a, b)
	case OpMod:
		a, ok1 := args[0].(value.Int)
		b, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, typeMismatch(op, args...)
		}
		return value.Mod(a, b)
	case OpRange:
		a, ok1 := args[0].(value.Int)
		b, ok2 := args[1].(value.Int)
		if !ok1 || !ok2 {
			return nil, typeMismatch(op, args...)
		}
		return value.Range(a, b), nil
	case OpIn:
		set, ok := args[1].(value.Set)
		if !ok {
			return nil, typeMismatch(op, args...)
		}
		return value.NewBool(set.Contains(args[0])), nil
	case OpAdd:
		return variadicAdd(args)
	case OpMul:
		return variadicMul(args)
	default:
		return nil, fmt.Errorf("opcode: unknown nary operator %v", op)
	}
}

// variadicAdd implements spec.md §4.D.1 "Variadic + and *: integers
// (arithmetic), Sets (union/intersection), Dicts (+ concatenates as lists
// by renumbering keys)".
func variadicAdd(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Zero, nil
	}
	switch args[0].(type) {
	case value.Int:
		total := value.Zero
		for _, a := range args {
			n, ok := a.(value.Int)
			if !ok {
				return nil, typeMismatch(OpAdd, args...)
			}
			total = value.Add(total, n)
		}
		return total, nil
	case value.Set:
		total := value.NewSet()
		for _, a := range args {
			set, ok := a.(value.Set)
			if !ok {
				return nil, typeMismatch(OpAdd, args...)
			}
			total = value.Union(total, set)
		}
		return total, nil
	case value.Dict:
		dicts := make([]value.Dict, len(args))
		for i, a := range args {
			d, ok := a.(value.Dict)
			if !ok {
				return nil, typeMismatch(OpAdd, args...)
			}
			dicts[i] = d
		}
		return value.Concat(dicts...), nil
	default:
		return nil, typeMismatch(OpAdd, args...)
	}
}

func variadicMul(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.NewIntFromInt64(1), nil
	}
	switch args[0].(type) {
	case value.Int:
		total := value.NewIntFromInt64(1)
		for _, a := range args {
			n, ok := a.(value.Int)
			if !ok {
				return nil, typeMismatch(OpMul, args...)
			}
			total = value.Mul(total, n)
		}
		return total, nil
	case value.Set:
		total, ok := args[0].(value.Set)
		if !ok {
			return nil, typeMismatch(OpMul, args...)
		}
		for _, a := range args[1:] {
			set, ok := a.(value.Set)
			if !ok {
				return nil, typeMismatch(OpMul, args...)
			}
			total = value.Intersect(total, set)
		}
		return total, nil
	default:
		return nil, typeMismatch(OpMul, args...)
	}
}

// processes and atLabel are legal only inside an atomic block (spec.md
// §4.D.1, §9 design note): they inspect the scheduler-visible ctxbag,
// which would otherwise leak interleaving-dependent state into a value.
func processes(w *vmcontext.Working, s state.State) (value.Value, error) {
	if w.Atomic == 0 {
		return nil, fmt.Errorf("opcode: processes() is only legal inside an atomic block")
	}
	return s.Ctxbag.AsValue(), nil
}

func atLabel(w *vmcontext.Working, s state.State, pc value.PC) (value.Value, error) {
	if w.Atomic == 0 {
		return nil, fmt.Errorf("opcode: atLabel() is only legal inside an atomic block")
	}
	agg := value.NewDict()
	for _, ctx := range s.Ctxbag.Distinct() {
		if !ctx.PC.Equal(pc) {
			continue
		}
		count := value.NewIntFromInt64(int64(s.Ctxbag.Count(ctx)))
		existing, ok := agg.Get(ctx.Nametag())
		if ok {
			if n, ok := existing.(value.Int); ok {
				count = value.Add(n, count)
			}
		}
		agg = agg.Set(ctx.Nametag(), count)
	}
	return agg, nil
}
