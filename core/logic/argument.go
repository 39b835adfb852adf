package logic

import (
	"strings"

	"github.com/opal-lang/logix/core/atomic"
	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/invariant"
	"github.com/opal-lang/logix/core/tagname"
)

// ArgumentKind identifies which value an Argument holds.
type ArgumentKind int

const (
	// KindTag is a reference to a tag member path.
	KindTag ArgumentKind = iota + 1
	// KindImmediate is a typed literal.
	KindImmediate
	// KindExpression is verbatim operator or call text, e.g. "ATN(_Test) > 1.0".
	KindExpression
	// KindUnknown is the "?" placeholder for an unset operand.
	KindUnknown
)

func (k ArgumentKind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindImmediate:
		return "immediate"
	case KindExpression:
		return "expression"
	case KindUnknown:
		return "unknown"
	}
	return "invalid"
}

// UnknownText is the neutral-text placeholder for an unset operand.
const UnknownText = "?"

// Argument is a single value passed to an instruction call. It is immutable.
// The zero Argument is invalid.
type Argument struct {
	kind  ArgumentKind
	tag   tagname.TagName
	value atomic.Value
	text  string // expression text
}

// Primitive lists the native types accepted by FromImmediate.
type Primitive interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// FromTag builds a tag argument. It fails with InvalidInput when name is not
// a valid tag name.
func FromTag(name string) (Argument, error) {
	tag, err := tagname.Parse(name)
	if err != nil {
		return Argument{}, err
	}
	return Argument{kind: KindTag, tag: tag}, nil
}

// FromTagName builds a tag argument from an already validated name.
func FromTagName(tag tagname.TagName) Argument {
	invariant.Precondition(!tag.IsEmpty(), "tag name must not be empty")
	return Argument{kind: KindTag, tag: tag}
}

// MustTag is like FromTag but panics on error. Use it for literal constants.
func MustTag(name string) Argument {
	arg, err := FromTag(name)
	invariant.Precondition(err == nil, "tag literal %q: %v", name, err)
	return arg
}

// FromImmediate builds an immediate argument keeping the native width:
// bool→BOOL, int8→SINT, uint8→USINT, int16→INT, uint16→UINT, int32→DINT,
// uint32→UDINT, int64→LINT, uint64→ULINT, float32→REAL, float64→LREAL.
func FromImmediate[T Primitive](v T) Argument {
	var value atomic.Value
	switch x := any(v).(type) {
	case bool:
		value = atomic.NewBool(x)
	case int8:
		value = atomic.NewSint(x)
	case uint8:
		value = atomic.NewUsint(x)
	case int16:
		value = atomic.NewInt(x)
	case uint16:
		value = atomic.NewUint(x)
	case int32:
		value = atomic.NewDint(x)
	case uint32:
		value = atomic.NewUdint(x)
	case int64:
		value = atomic.NewLint(x)
	case uint64:
		value = atomic.NewUlint(x)
	case float32:
		value = atomic.NewReal(x)
	case float64:
		value = atomic.NewLreal(x)
	}
	return FromValue(value)
}

// FromValue builds an immediate argument from an atomic value.
func FromValue(value atomic.Value) Argument {
	invariant.Precondition(value.IsValid(), "atomic value must be valid")
	return Argument{kind: KindImmediate, value: value}
}

// Unknown returns the "?" placeholder argument.
func Unknown() Argument {
	return Argument{kind: KindUnknown}
}

// FromExpression builds an expression argument. The text must be a well-formed
// operator expression or a call whose arguments parse.
func FromExpression(text string) (Argument, error) {
	s := strings.TrimSpace(text)
	if !isExpression(s) {
		return Argument{}, logixerrors.NewFormatError("not an expression", text)
	}
	return Argument{kind: KindExpression, text: s}, nil
}

// ParseArgument reads one argument from neutral text. Tag names are tried
// first, then immediate literals, then expressions; anything else fails with
// FormatError.
func ParseArgument(text string) (Argument, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Argument{}, logixerrors.NewFormatError("empty argument", text)
	}
	if s == UnknownText {
		return Unknown(), nil
	}
	if tagname.IsIdentStart(s[0]) && tagname.Span(s, 0) == len(s) {
		return FromTag(s)
	}
	if value, err := atomic.Parse(s); err == nil {
		return FromValue(value), nil
	}
	if isExpression(s) {
		return Argument{kind: KindExpression, text: s}, nil
	}
	return Argument{}, logixerrors.NewFormatError("unrecognized argument", text)
}

// isExpression reports whether s is a well-formed operator expression or a
// lone call or parenthesized group. Operands must be tags, literals, calls
// with valid arguments or parenthesized expressions.
func isExpression(s string) bool {
	if s == "" || !IsBalanced(s) {
		return false
	}
	compound, ok := scanExpression(s)
	return ok && compound
}

var (
	binaryWords = map[string]struct{}{"AND": {}, "OR": {}, "XOR": {}, "MOD": {}}
	twoCharOps  = []string{"<=", ">=", "<>", "**"}
)

// scanExpression checks s as operand (operator operand)*, with prefix '-',
// '+' and NOT allowed before any operand. compound reports whether s is more
// than one plain tag or literal.
func scanExpression(s string) (compound, ok bool) {
	expectOperand := true
	i := 0
	for i < len(s) {
		prev := i
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
			continue

		case expectOperand && (c == '-' || c == '+'):
			compound = true
			i++

		case expectOperand && c == '(':
			closing := matchGroup(s, i, '(', ')')
			if closing < 0 {
				return false, false
			}
			if _, ok := scanExpression(s[i+1 : closing]); !ok {
				return false, false
			}
			compound = true
			expectOperand = false
			i = closing + 1

		case expectOperand && (c == '\'' || c == '"'):
			end := skipQuoted(s, i)
			if _, err := atomic.Parse(s[i:end]); err != nil {
				return false, false
			}
			expectOperand = false
			i = end

		case expectOperand && c < 128 && c >= '0' && c <= '9':
			end := literalEnd(s, i)
			if _, err := atomic.Parse(s[i:end]); err != nil {
				return false, false
			}
			expectOperand = false
			i = end

		case tagname.IsIdentStart(c):
			word := s[i:identEnd(s, i)]
			upper := strings.ToUpper(word)
			if upper == "NOT" {
				if !expectOperand {
					return false, false
				}
				compound = true
				i += len(word)
				break
			}
			if _, ok := binaryWords[upper]; ok {
				if expectOperand {
					return false, false
				}
				compound = true
				expectOperand = true
				i += len(word)
				break
			}
			if !expectOperand {
				return false, false
			}
			end, isCall, ok := scanOperand(s, i)
			if !ok {
				return false, false
			}
			compound = compound || isCall
			expectOperand = false
			i = end

		case !expectOperand:
			n := operatorLen(s, i)
			if n == 0 {
				return false, false
			}
			compound = true
			expectOperand = true
			i += n

		default:
			return false, false
		}
		invariant.Advanced(prev, i, "expression scan")
	}
	return compound, !expectOperand
}

// scanOperand reads a tag or a call starting at s[i].
func scanOperand(s string, i int) (end int, isCall, ok bool) {
	key := identEnd(s, i)
	if key < len(s) && s[key] == '(' {
		closing := matchGroup(s, key, '(', ')')
		if closing < 0 {
			return 0, false, false
		}
		if body := s[key+1 : closing]; strings.TrimSpace(body) != "" {
			for _, part := range splitTopLevel(body) {
				if _, err := ParseArgument(part); err != nil {
					return 0, false, false
				}
			}
		}
		return closing + 1, true, true
	}

	end = tagname.Span(s, i)
	if IsKeyword(s[i:end]) || !tagname.IsTag(s[i:end]) {
		return 0, false, false
	}
	return end, false, true
}

// literalEnd returns the end of the numeric literal starting at s[i]. An
// exponent sign belongs to the literal unless it is a based literal.
func literalEnd(s string, i int) int {
	start := i
	based := false
	for i < len(s) {
		c := s[i]
		switch {
		case tagname.IsIdentPart(c) || c == '.':
			i++
		case c == '#':
			based = true
			i++
		case (c == '-' || c == '+') && !based && i > start && (s[i-1] == 'e' || s[i-1] == 'E'):
			i++
		default:
			return i
		}
	}
	return i
}

// operatorLen returns the length of the symbolic binary operator at s[i].
func operatorLen(s string, i int) int {
	for _, op := range twoCharOps {
		if strings.HasPrefix(s[i:], op) {
			return len(op)
		}
	}
	if strings.IndexByte("+-*/<>=&|", s[i]) >= 0 {
		return 1
	}
	return 0
}

// Kind returns which value the argument holds.
func (a Argument) Kind() ArgumentKind { return a.kind }

func (a Argument) IsTag() bool        { return a.kind == KindTag }
func (a Argument) IsImmediate() bool  { return a.kind == KindImmediate }
func (a Argument) IsExpression() bool { return a.kind == KindExpression }
func (a Argument) IsUnknown() bool    { return a.kind == KindUnknown }

// AsTag returns the tag name, or TypeMismatch for any other kind.
func (a Argument) AsTag() (tagname.TagName, error) {
	if a.kind != KindTag {
		return tagname.TagName{}, logixerrors.NewTypeMismatch(KindTag.String(), a.kind.String())
	}
	return a.tag, nil
}

// AsImmediate returns the atomic value, or TypeMismatch for any other kind.
func (a Argument) AsImmediate() (atomic.Value, error) {
	if a.kind != KindImmediate {
		return atomic.Value{}, logixerrors.NewTypeMismatch(KindImmediate.String(), a.kind.String())
	}
	return a.value, nil
}

// String formats the held value as it appears in neutral text.
func (a Argument) String() string {
	switch a.kind {
	case KindTag:
		return a.tag.String()
	case KindImmediate:
		return a.value.String()
	case KindExpression:
		return a.text
	case KindUnknown:
		return UnknownText
	}
	return ""
}

// Equal compares held values: tags case-insensitively, immediates by type
// and value, expressions case-insensitively by text.
func (a Argument) Equal(other Argument) bool {
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case KindTag:
		return a.tag.Equal(other.tag)
	case KindImmediate:
		return a.value.Equal(other.value)
	case KindExpression:
		return strings.EqualFold(a.text, other.text)
	}
	return true
}

// Key returns a map key consistent with Equal.
func (a Argument) Key() string {
	switch a.kind {
	case KindImmediate:
		return a.kind.String() + ":" + a.value.Type().String() + ":" + a.value.String()
	default:
		return a.kind.String() + ":" + strings.ToUpper(a.String())
	}
}
