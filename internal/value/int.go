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

package value

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Int is Harmony's integer value, with a 256-bit magnitude whose arithmetic
// wraps on overflow (it is not arbitrary precision). Magnitude is stored in a
// holiman/uint256.Int (256 bits is comfortably wider than any constant a
// Harmony program is expected to need, per spec.md §3's "wide enough to
// contain user constants"); sign and the two infinities used by division
// (spec.md §3) are layered on top, since uint256.Int itself is unsigned and
// has no infinity sentinel.
type Int struct {
	inf int8 // -1, 0, or +1; when nonzero, neg/mag are ignored.
	neg bool
	mag uint256.Int
}

var (
	PosInf = Int{inf: 1}
	NegInf = Int{inf: -1}
	Zero   = Int{}
)

func NewIntFromInt64(n int64) Int {
	if n < 0 {
		var m uint256.Int
		m.SetUint64(uint64(-n))
		return Int{neg: true, mag: m}
	}
	var m uint256.Int
	m.SetUint64(uint64(n))
	return Int{mag: m}
}

func NewIntFromUint64(n uint64) Int {
	var m uint256.Int
	m.SetUint64(n)
	return Int{mag: m}
}

func (i Int) Kind() Kind { return KindInt }

func (i Int) IsInf() bool    { return i.inf != 0 }
func (i Int) IsPosInf() bool { return i.inf > 0 }
func (i Int) IsNegInf() bool { return i.inf < 0 }

func (i Int) IsZero() bool { return i.inf == 0 && i.mag.IsZero() }

func (i Int) sign() int {
	switch {
	case i.inf > 0:
		return 1
	case i.inf < 0:
		return -1
	case i.mag.IsZero():
		return 0
	case i.neg:
		return -1
	default:
		return 1
	}
}

func (i Int) Equal(other Value) bool {
	o, ok := other.(Int)
	if !ok {
		return false
	}
	if i.inf != 0 || o.inf != 0 {
		return i.inf == o.inf
	}
	if i.mag.IsZero() && o.mag.IsZero() {
		return true
	}
	return i.neg == o.neg && i.mag.Eq(&o.mag)
}

func (i Int) Compare(other Value) int {
	o, ok := other.(Int)
	if !ok {
		return compareKind(KindInt, other.Kind())
	}
	is, os := i.sign(), o.sign()
	switch {
	case is < os:
		return -1
	case is > os:
		return 1
	}
	// Equal signs: for finite values compare magnitude (flipped if negative);
	// for matching infinities they are equal.
	if i.inf != 0 || o.inf != 0 {
		return int(i.inf) - int(o.inf)
	}
	cmp := i.mag.Cmp(&o.mag)
	if is < 0 {
		return -cmp
	}
	return cmp
}

func (i Int) Hash() uint64 {
	if i.inf != 0 {
		return hashBytes(KindInt, []byte{2, byte(i.inf)})
	}
	b := i.mag.Bytes32()
	tag := byte(0)
	if i.neg && !i.mag.IsZero() {
		tag = 1
	}
	return hashBytes(KindInt, append([]byte{tag}, b[:]...))
}

// Int64Unchecked returns the value as an int64, truncating silently if it
// does not fit. Used for small, compiler-controlled quantities (opcode
// arities, stack depths) where the caller already knows the value is
// small; general arithmetic uses Add/Sub/Mul/Div/Mod instead.
func (i Int) Int64Unchecked() int64 {
	if i.inf > 0 {
		return int64(^uint64(0) >> 1)
	}
	if i.inf < 0 {
		return -int64(^uint64(0)>>1) - 1
	}
	n := int64(i.mag.Uint64())
	if i.neg {
		return -n
	}
	return n
}

func (i Int) String() string {
	switch {
	case i.inf > 0:
		return "IntInf"
	case i.inf < 0:
		return "-IntInf"
	case i.neg && !i.mag.IsZero():
		return "-" + i.mag.Dec()
	default:
		return i.mag.Dec()
	}
}

// Add, Sub, Mul, Div, Mod implement the arithmetic n-ary operators of
// spec.md §4.D.1. Operations on Booleans/other kinds are validated by the
// caller (internal/opcode); these assume well-typed Int operands. A zero
// divisor is handled here: Div returns an infinity, Mod returns an error.

func Add(a, b Int) Int { return addSigned(a, b) }
func Sub(a, b Int) Int { return addSigned(a, Neg(b)) }

func Neg(a Int) Int {
	if a.inf != 0 {
		return Int{inf: -a.inf}
	}
	if a.mag.IsZero() {
		return a
	}
	return Int{neg: !a.neg, mag: a.mag}
}

func addSigned(a, b Int) Int {
	if a.inf != 0 || b.inf != 0 {
		as, bs := a.sign(), b.sign()
		if a.inf != 0 && b.inf != 0 && as != bs {
			return Zero // ∞ + (−∞) is defined as 0 by convention; callers rarely hit this.
		}
		if a.inf != 0 {
			return Int{inf: int8(as)}
		}
		return Int{inf: int8(bs)}
	}
	if a.neg == b.neg {
		var m uint256.Int
		m.Add(&a.mag, &b.mag)
		return Int{neg: a.neg && !m.IsZero(), mag: m}
	}
	// Opposite signs: subtract smaller magnitude from larger.
	if a.mag.Cmp(&b.mag) >= 0 {
		var m uint256.Int
		m.Sub(&a.mag, &b.mag)
		return Int{neg: a.neg && !m.IsZero(), mag: m}
	}
	var m uint256.Int
	m.Sub(&b.mag, &a.mag)
	return Int{neg: b.neg && !m.IsZero(), mag: m}
}

func Mul(a, b Int) Int {
	if a.inf != 0 || b.inf != 0 {
		s := a.sign() * b.sign()
		if s == 0 {
			return Zero
		}
		return Int{inf: int8(s)}
	}
	var m uint256.Int
	m.Mul(&a.mag, &b.mag)
	return Int{neg: (a.neg != b.neg) && !m.IsZero(), mag: m}
}

// Div implements Harmony's integer division, returning PosInf/NegInf for
// division by zero (spec.md §3 "+∞/−∞ supported for division") instead of a
// host-language panic or error.
func Div(a, b Int) (Int, error) {
	if b.IsZero() {
		s := a.sign()
		if s == 0 {
			return Zero, nil
		}
		if s > 0 {
			return PosInf, nil
		}
		return NegInf, nil
	}
	if a.inf != 0 {
		s := a.sign() * b.sign()
		if s >= 0 {
			return PosInf, nil
		}
		return NegInf, nil
	}
	var m uint256.Int
	m.Div(&a.mag, &b.mag)
	return Int{neg: (a.neg != b.neg) && !m.IsZero(), mag: m}, nil
}

func Mod(a, b Int) (Int, error) {
	if b.IsZero() {
		return Zero, fmt.Errorf("value: modulo by zero")
	}
	if a.inf != 0 || b.inf != 0 {
		return Zero, fmt.Errorf("value: modulo on infinite operand")
	}
	var m uint256.Int
	m.Mod(&a.mag, &b.mag)
	return Int{neg: a.neg && !m.IsZero(), mag: m}, nil
}
