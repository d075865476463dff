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

// Package value implements Harmony's value algebra: the immutable, totally
// ordered, structurally hashable values that flow through shared state,
// process locals, and the operand stack.
package value

// Kind tags the variant a Value holds. The order of these constants is the
// tag component of the total order `key` (spec.md §3): Bool < Int < String/
// Atom < PC < Address < Dict < Set < Context.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindAtom
	KindPC
	KindAddress
	KindDict
	KindSet
	KindContext
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindAtom:
		return "atom"
	case KindPC:
		return "pc"
	case KindAddress:
		return "address"
	case KindDict:
		return "dict"
	case KindSet:
		return "set"
	case KindContext:
		return "context"
	default:
		return "unknown"
	}
}

// Value is the common interface implemented by every Harmony value variant.
// Values are immutable: no method mutates the receiver in place, and every
// transformation returns a new Value.
type Value interface {
	// Kind reports which variant this Value is.
	Kind() Kind

	// Equal reports structural equality. Equal values must Compare equal
	// (0) and Hash equal.
	Equal(other Value) bool

	// Compare returns -1, 0 or +1 under the total order over Values
	// (spec.md §3, §8 "Ordering"). Less(a, b) is Compare(a, b) < 0.
	Compare(other Value) int

	// Hash returns a content hash consistent with Equal.
	Hash() uint64

	// String renders the value using Harmony's pretty-printing
	// conventions (atoms print with a leading dot, strings are quoted).
	String() string
}

// Context is the interface the Value variant KindContext must satisfy. It is
// intentionally minimal: package value never imports package vmcontext (that
// would create an import cycle, since vmcontext needs Value for its stack
// and locals) so vmcontext.Snapshot implements this interface structurally.
// See DESIGN.md "Open Questions", item 1, for the rationale.
type Context interface {
	Value
	// Nametag returns the {name, tag} identity dict of the process this
	// context snapshot belongs to.
	Nametag() Dict
}

// Less reports whether a sorts before b under the total order `key`.
func Less(a, b Value) bool { return a.Compare(b) < 0 }

// compareKind orders two different Kinds by their tag order.
func compareKind(a, b Kind) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
