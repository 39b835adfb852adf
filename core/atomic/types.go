// Package atomic models the immediate literal values embedded in neutral text
// and the radix codec used to read and write them.
package atomic

import (
	"math"
	"strings"
)

// Type is the atomic data type of a Value.
type Type int

const (
	Bool Type = iota + 1
	Sint
	Int
	Dint
	Lint
	Usint
	Uint
	Udint
	Ulint
	Real
	Lreal
)

var typeNames = map[Type]string{
	Bool:  "BOOL",
	Sint:  "SINT",
	Int:   "INT",
	Dint:  "DINT",
	Lint:  "LINT",
	Usint: "USINT",
	Uint:  "UINT",
	Udint: "UDINT",
	Ulint: "ULINT",
	Real:  "REAL",
	Lreal: "LREAL",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseType resolves a type name case-insensitively.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, true
		}
	}
	return 0, false
}

// Width is the storage size in bits (1 for BOOL).
func (t Type) Width() int {
	switch t {
	case Bool:
		return 1
	case Sint, Usint:
		return 8
	case Int, Uint:
		return 16
	case Dint, Udint, Real:
		return 32
	case Lint, Ulint, Lreal:
		return 64
	}
	return 0
}

func (t Type) IsSigned() bool {
	return t == Sint || t == Int || t == Dint || t == Lint
}

func (t Type) IsUnsigned() bool {
	return t == Usint || t == Uint || t == Udint || t == Ulint
}

func (t Type) IsFloat() bool {
	return t == Real || t == Lreal
}

// DefaultRadix is the radix used by Value.String.
func (t Type) DefaultRadix() Radix {
	if t.IsFloat() {
		return Float
	}
	return Decimal
}

// Value is an immutable atomic value. The zero Value is invalid.
type Value struct {
	typ Type
	i   int64  // BOOL and signed integers
	u   uint64 // unsigned integers
	f   float64
}

func NewBool(v bool) Value {
	if v {
		return Value{typ: Bool, i: 1}
	}
	return Value{typ: Bool}
}

func NewSint(v int8) Value     { return Value{typ: Sint, i: int64(v)} }
func NewInt(v int16) Value     { return Value{typ: Int, i: int64(v)} }
func NewDint(v int32) Value    { return Value{typ: Dint, i: int64(v)} }
func NewLint(v int64) Value    { return Value{typ: Lint, i: v} }
func NewUsint(v uint8) Value   { return Value{typ: Usint, u: uint64(v)} }
func NewUint(v uint16) Value   { return Value{typ: Uint, u: uint64(v)} }
func NewUdint(v uint32) Value  { return Value{typ: Udint, u: uint64(v)} }
func NewUlint(v uint64) Value  { return Value{typ: Ulint, u: v} }
func NewReal(v float32) Value  { return Value{typ: Real, f: float64(v)} }
func NewLreal(v float64) Value { return Value{typ: Lreal, f: v} }

// Type returns the atomic type, or 0 for the zero Value.
func (v Value) Type() Type { return v.typ }

// IsValid reports whether v was produced by a constructor or Parse.
func (v Value) IsValid() bool { return v.typ != 0 }

// Bool reports whether the value is non-zero.
func (v Value) Bool() bool {
	switch {
	case v.typ.IsFloat():
		return v.f != 0
	case v.typ.IsUnsigned():
		return v.u != 0
	default:
		return v.i != 0
	}
}

// Int64 returns integer values sign-extended; floats are truncated.
func (v Value) Int64() int64 {
	switch {
	case v.typ.IsFloat():
		return int64(v.f)
	case v.typ.IsUnsigned():
		return int64(v.u)
	default:
		return v.i
	}
}

// Float64 returns the value as a float64.
func (v Value) Float64() float64 {
	switch {
	case v.typ.IsFloat():
		return v.f
	case v.typ.IsUnsigned():
		return float64(v.u)
	default:
		return float64(v.i)
	}
}

// bits returns the raw two's-complement pattern truncated to the type width.
func (v Value) bits() uint64 {
	w := v.typ.Width()
	var raw uint64
	switch {
	case v.typ == Real:
		raw = uint64(math.Float32bits(float32(v.f)))
	case v.typ == Lreal:
		raw = math.Float64bits(v.f)
	case v.typ.IsUnsigned():
		raw = v.u
	default:
		raw = uint64(v.i)
	}
	if w < 64 {
		raw &= (1 << w) - 1
	}
	return raw
}

// Equal reports whether both values have the same type and bit pattern.
func (v Value) Equal(other Value) bool {
	return v.typ == other.typ && v.bits() == other.bits()
}

// String formats v in its type's default radix.
func (v Value) String() string {
	s, err := Format(v, v.typ.DefaultRadix())
	if err != nil {
		return "?"
	}
	return s
}
