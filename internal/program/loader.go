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

package program

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harmonylang/harmony-go/internal/opcode"
	"github.com/harmonylang/harmony-go/internal/value"
)

// jsonInstruction mirrors opcode.Instruction field-for-field so the
// compiled-code JSON format (the wire contract with the out-of-scope
// compiler, spec.md §6.1) doesn't need custom MarshalJSON/UnmarshalJSON
// methods on the hot-path opcode.Instruction type itself.
type jsonInstruction struct {
	Op      string          `json:"op"`
	Const   json.RawMessage `json:"const,omitempty"`
	Name    string          `json:"name,omitempty"`
	N       int             `json:"n,omitempty"`
	Target  uint32          `json:"target,omitempty"`
	Cond    json.RawMessage `json:"cond,omitempty"`
	NaryOp  string          `json:"naryOp,omitempty"`
	Arity   int             `json:"arity,omitempty"`
	Frame   *jsonFrame      `json:"frame,omitempty"`
	HasMsg  bool            `json:"hasMsg,omitempty"`
}

type jsonFrame struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

type jsonLocation struct {
	PC   uint32 `json:"pc"`
	File string `json:"file"`
	Line int    `json:"line"`
}

// jsonProgram is the on-disk shape FromJSON reads: a flat instruction
// list plus the same side tables Program carries in memory.
type jsonProgram struct {
	Code           []jsonInstruction    `json:"code"`
	Labels         map[string]uint32    `json:"labels"`
	Locations      []jsonLocation       `json:"locations,omitempty"`
	Constants      map[string]any       `json:"constants,omitempty"`
	ModuleVersions map[string]string    `json:"moduleVersions,omitempty"`
}

var opNames map[string]opcode.Op

func init() {
	opNames = make(map[string]opcode.Op)
	for i := opcode.Op(0); i < opcode.Op(31); i++ {
		opNames[i.String()] = i
	}
}

// FromJSON reads a compiled Program from the compiler's JSON output
// format (spec.md §6.1). Constants and comparison values embedded as
// JSON are decoded through decodeJSONValue, which maps plain JSON onto
// values: numbers become Int (truncated to an integer), strings become
// atoms verbatim (no leading dot), booleans Bool, arrays list-shaped Dicts,
// objects atom-keyed Dicts, and null NoValue.
func FromJSON(data []byte) (*Program, error) {
	var jp jsonProgram
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, fmt.Errorf("program: FromJSON: %w", err)
	}

	code := make([]opcode.Instruction, len(jp.Code))
	for i, ji := range jp.Code {
		instr, err := decodeInstruction(ji)
		if err != nil {
			return nil, fmt.Errorf("program: FromJSON: instruction %d: %w", i, err)
		}
		code[i] = instr
	}

	labels := make(map[string]value.PC, len(jp.Labels))
	for name, pc := range jp.Labels {
		labels[name] = value.NewPC(pc)
	}

	locations := make(map[value.PC]Location, len(jp.Locations))
	for _, loc := range jp.Locations {
		locations[value.NewPC(loc.PC)] = Location{File: loc.File, Line: loc.Line}
	}

	constants := make(map[string]value.Value, len(jp.Constants))
	for name, raw := range jp.Constants {
		constants[name] = decodeJSONValue(raw)
	}

	p := &Program{
		Code:           code,
		Labels:         labels,
		Locations:      locations,
		Constants:      constants,
		ModuleVersions: jp.ModuleVersions,
	}
	return p, p.Validate()
}

// LoadFile reads and decodes a compiled program file.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: LoadFile: %w", err)
	}
	return FromJSON(data)
}

func decodeInstruction(ji jsonInstruction) (opcode.Instruction, error) {
	op, ok := opNames[ji.Op]
	if !ok {
		return opcode.Instruction{}, fmt.Errorf("unknown opcode %q", ji.Op)
	}
	instr := opcode.Instruction{
		Op:     op,
		Name:   ji.Name,
		N:      ji.N,
		Target: value.NewPC(ji.Target),
		Arity:  ji.Arity,
		HasMsg: ji.HasMsg,
	}
	if len(ji.Const) > 0 {
		instr.Const = decodeJSONValue(ji.Const)
	}
	if len(ji.Cond) > 0 {
		instr.Cond = decodeJSONValue(ji.Cond)
	}
	if ji.NaryOp != "" {
		nop, err := decodeNaryOp(ji.NaryOp)
		if err != nil {
			return opcode.Instruction{}, err
		}
		instr.NaryOp = nop
	}
	if ji.Frame != nil {
		instr.FrameOp = opcode.FrameSpec{Name: ji.Frame.Name, Args: ji.Frame.Args}
	}
	return instr, nil
}

func decodeNaryOp(name string) (opcode.NaryOp, error) {
	for op := opcode.OpNeg; op <= opcode.OpMul; op++ {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown nary operator %q", name)
}

// decodeJSONValue maps a JSON scalar/array/object onto Harmony's value
// algebra: numbers become value.Int, strings atoms, booleans Bool, arrays
// list-shaped Dicts, and objects general Dicts keyed by atom.
func decodeJSONValue(raw json.RawMessage) value.Value {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return value.NoValue
	}
	return convertAny(v)
}

func convertAny(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.NoValue
	case bool:
		return value.NewBool(x)
	case float64:
		return value.NewIntFromInt64(int64(x))
	case string:
		return value.NewAtom(x)
	case []any:
		d := value.NewDict()
		for i, e := range x {
			d = d.Set(value.NewIntFromInt64(int64(i)), convertAny(e))
		}
		return d
	case map[string]any:
		d := value.NewDict()
		for k, e := range x {
			d = d.Set(value.NewAtom(k), convertAny(e))
		}
		return d
	default:
		return value.NoValue
	}
}
