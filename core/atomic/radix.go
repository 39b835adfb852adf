package atomic

import (
	"math"
	"math/bits"
	"regexp"
	"strconv"
	"strings"

	logixerrors "github.com/opal-lang/logix/core/errors"
)

// Radix is the textual base used to read and write a Value.
type Radix int

const (
	Decimal Radix = iota + 1
	Binary
	Octal
	Hex
	Float
	Exponential
	ASCII
)

var radixNames = map[Radix]string{
	Decimal:     "Decimal",
	Binary:      "Binary",
	Octal:       "Octal",
	Hex:         "Hex",
	Float:       "Float",
	Exponential: "Exponential",
	ASCII:       "ASCII",
}

func (r Radix) String() string {
	if name, ok := radixNames[r]; ok {
		return name
	}
	return "Null"
}

// ParseRadix resolves a radix name case-insensitively.
func ParseRadix(name string) (Radix, bool) {
	for r, n := range radixNames {
		if strings.EqualFold(n, name) {
			return r, true
		}
	}
	return 0, false
}

// based literal prefixes and digit layout
type basedSpec struct {
	prefix       string
	base         int
	bitsPerDigit int
	group        int
}

var basedSpecs = map[Radix]basedSpec{
	Binary: {prefix: "2#", base: 2, bitsPerDigit: 1, group: 4},
	Octal:  {prefix: "8#", base: 8, bitsPerDigit: 3, group: 3},
	Hex:    {prefix: "16#", base: 16, bitsPerDigit: 4, group: 4},
}

var (
	decimalPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatPattern   = regexp.MustCompile(`^[+-]?([0-9]+\.[0-9]*|\.[0-9]+|[0-9]+)([eE][+-]?[0-9]+)?$`)
)

const (
	nanText    = "1.#QNAN"
	posInfText = "1.#INF"
	negInfText = "-1.#INF"
)

// InferRadix reports the radix a literal is written in, judged by its prefix
// and shape. It does not validate the digits.
func InferRadix(text string) (Radix, bool) {
	s := strings.TrimSpace(text)
	switch {
	case s == "":
		return 0, false
	case strings.HasPrefix(s, "2#"):
		return Binary, true
	case strings.HasPrefix(s, "8#"):
		return Octal, true
	case strings.HasPrefix(s, "16#"):
		return Hex, true
	case strings.HasPrefix(s, "'"):
		return ASCII, true
	case s == nanText || s == posInfText || s == negInfText:
		return Float, true
	case decimalPattern.MatchString(s):
		return Decimal, true
	case floatPattern.MatchString(s):
		if strings.ContainsAny(s, "eE") {
			return Exponential, true
		}
		return Float, true
	}
	return 0, false
}

// Parse reads an immediate literal, inferring the radix from its prefix.
//
// Integer widths are inferred: decimal literals take the smallest signed type
// holding the value (ULINT past LINT range), based literals take the smallest
// type whose digit count covers the written digits, ASCII literals take the
// smallest type holding the characters. Float literals are REAL unless they
// overflow it.
func Parse(text string) (Value, error) {
	s := strings.TrimSpace(text)
	if strings.EqualFold(s, "true") {
		return NewBool(true), nil
	}
	if strings.EqualFold(s, "false") {
		return NewBool(false), nil
	}

	radix, ok := InferRadix(s)
	if !ok {
		return Value{}, logixerrors.NewFormatError("unrecognized literal", text)
	}

	switch radix {
	case Binary, Octal, Hex:
		return parseBased(s, basedSpecs[radix])
	case ASCII:
		return parseASCII(s)
	case Decimal:
		return parseDecimal(s)
	default:
		return parseFloat(s)
	}
}

// MustParse is like Parse but panics on error. Use it for literal constants.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

func parseDecimal(s string) (Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if u, uerr := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64); uerr == nil {
			return NewUlint(u), nil
		}
		return Value{}, logixerrors.Wrap(logixerrors.FormatError, "decimal literal out of range", err).WithInput(s)
	}
	switch {
	case n >= math.MinInt8 && n <= math.MaxInt8:
		return NewSint(int8(n)), nil
	case n >= math.MinInt16 && n <= math.MaxInt16:
		return NewInt(int16(n)), nil
	case n >= math.MinInt32 && n <= math.MaxInt32:
		return NewDint(int32(n)), nil
	}
	return NewLint(n), nil
}

func parseFloat(s string) (Value, error) {
	switch s {
	case nanText:
		return NewReal(float32(math.NaN())), nil
	case posInfText:
		return NewReal(float32(math.Inf(1))), nil
	case negInfText:
		return NewReal(float32(math.Inf(-1))), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, logixerrors.Wrap(logixerrors.FormatError, "float literal out of range", err).WithInput(s)
	}
	if f == 0 && hasNonZeroDigit(s) {
		return Value{}, logixerrors.NewFormatError("float literal underflows LREAL", s)
	}
	// REAL only when the value survives the narrowing exactly.
	if f32 := float32(f); float64(f32) == f {
		return NewReal(f32), nil
	}
	return NewLreal(f), nil
}

// hasNonZeroDigit reports whether the mantissa of a float literal has a
// digit other than zero.
func hasNonZeroDigit(s string) bool {
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	return strings.ContainsAny(s, "123456789")
}

var integerTypes = []Type{Sint, Int, Dint, Lint}

func parseBased(s string, spec basedSpec) (Value, error) {
	digits := strings.ReplaceAll(strings.TrimPrefix(s, spec.prefix), "_", "")
	if digits == "" {
		return Value{}, logixerrors.NewFormatError("based literal has no digits", s)
	}
	u, err := strconv.ParseUint(digits, spec.base, 64)
	if err != nil {
		return Value{}, logixerrors.Wrap(logixerrors.FormatError, "invalid based literal", err).WithInput(s)
	}

	typ := Lint
	for _, t := range integerTypes {
		maxDigits := (t.Width() + spec.bitsPerDigit - 1) / spec.bitsPerDigit
		if len(digits) <= maxDigits && bits.Len64(u) <= t.Width() {
			typ = t
			break
		}
	}
	return fromBits(typ, u), nil
}

func parseASCII(s string) (Value, error) {
	if len(s) < 2 || !strings.HasSuffix(s, "'") {
		return Value{}, logixerrors.NewFormatError("unterminated ASCII literal", s)
	}
	body := s[1 : len(s)-1]

	var out []byte
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\'' {
			return Value{}, logixerrors.NewFormatError("unescaped quote in ASCII literal", s)
		}
		if c != '$' {
			if c >= 0x80 {
				return Value{}, logixerrors.NewFormatError("non-ASCII character in literal", s)
			}
			out = append(out, c)
			continue
		}
		if i+1 >= len(body) {
			return Value{}, logixerrors.NewFormatError("dangling $ escape", s)
		}
		next := body[i+1]
		if b, ok := asciiEscapes[next]; ok {
			out = append(out, b)
			i++
			continue
		}
		if i+2 >= len(body) {
			return Value{}, logixerrors.NewFormatError("short $ escape", s)
		}
		b, err := strconv.ParseUint(body[i+1:i+3], 16, 8)
		if err != nil {
			return Value{}, logixerrors.Wrap(logixerrors.FormatError, "invalid $ escape", err).WithInput(s)
		}
		out = append(out, byte(b))
		i += 2
	}

	var typ Type
	switch n := len(out); {
	case n == 1:
		typ = Sint
	case n == 2:
		typ = Int
	case n >= 3 && n <= 4:
		typ = Dint
	case n >= 5 && n <= 8:
		typ = Lint
	default:
		return Value{}, logixerrors.NewFormatError("ASCII literal must hold 1 to 8 characters", s)
	}

	var u uint64
	for _, b := range out {
		u = u<<8 | uint64(b)
	}
	return fromBits(typ, u), nil
}

var asciiEscapes = map[byte]byte{
	'$':  '$',
	'\'': '\'',
	'L':  '\n',
	'l':  '\n',
	'N':  '\n',
	'n':  '\n',
	'P':  '\f',
	'p':  '\f',
	'R':  '\r',
	'r':  '\r',
	'T':  '\t',
	't':  '\t',
}

// fromBits reinterprets a raw pattern as a signed integer type.
func fromBits(typ Type, u uint64) Value {
	w := typ.Width()
	if w < 64 && u&(1<<(w-1)) != 0 {
		u |= ^uint64(0) << w
	}
	return Value{typ: typ, i: int64(u)}
}

// Format writes v in the given radix. Integer types (and BOOL) accept
// Decimal, Binary, Octal, Hex and ASCII; REAL and LREAL accept Float and
// Exponential.
func Format(v Value, radix Radix) (string, error) {
	if !v.IsValid() {
		return "", logixerrors.New(logixerrors.InvalidInput, "cannot format the zero Value")
	}
	if v.typ.IsFloat() {
		bitSize := v.typ.Width()
		switch radix {
		case Float:
			return formatFloat(v.f, bitSize), nil
		case Exponential:
			return strconv.FormatFloat(v.f, 'e', 8, bitSize), nil
		}
		return "", radixMismatch(v.typ, radix)
	}

	switch radix {
	case Decimal:
		if v.typ.IsUnsigned() {
			return strconv.FormatUint(v.u, 10), nil
		}
		return strconv.FormatInt(v.i, 10), nil
	case Binary, Octal, Hex:
		return formatBased(v, basedSpecs[radix]), nil
	case ASCII:
		if v.typ == Bool {
			return "", radixMismatch(v.typ, radix)
		}
		return formatASCII(v), nil
	}
	return "", radixMismatch(v.typ, radix)
}

func radixMismatch(t Type, r Radix) error {
	return logixerrors.NewTypeMismatch("a type supporting "+r.String(), t.String())
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return nanText
	case math.IsInf(f, 1):
		return posInfText
	case math.IsInf(f, -1):
		return negInfText
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatBased(v Value, spec basedSpec) string {
	width := v.typ.Width()
	count := (width + spec.bitsPerDigit - 1) / spec.bitsPerDigit

	digits := strings.ToUpper(strconv.FormatUint(v.bits(), spec.base))
	if pad := count - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	var b strings.Builder
	b.WriteString(spec.prefix)
	lead := len(digits) % spec.group
	if lead == 0 {
		lead = spec.group
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += spec.group {
		b.WriteByte('_')
		b.WriteString(digits[i : i+spec.group])
	}
	return b.String()
}

func formatASCII(v Value) string {
	n := v.typ.Width() / 8
	raw := v.bits()

	var b strings.Builder
	b.WriteByte('\'')
	for i := n - 1; i >= 0; i-- {
		c := byte(raw >> (8 * i))
		switch {
		case c == '$':
			b.WriteString("$$")
		case c == '\'':
			b.WriteString("$'")
		case c >= 0x20 && c <= 0x7E:
			b.WriteByte(c)
		default:
			b.WriteString("$")
			b.WriteString(strings.ToUpper(strconv.FormatUint(uint64(c)|0x100, 16)[1:]))
		}
	}
	b.WriteByte('\'')
	return b.String()
}
