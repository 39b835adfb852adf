package logic

import (
	"strings"

	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/invariant"
	"github.com/opal-lang/logix/core/tagname"
)

// MaxKeyLength is the longest instruction key.
const MaxKeyLength = 40

// Instruction is an instruction key with an ordered argument list. It is
// immutable; Of returns a copy with new arguments.
type Instruction struct {
	key  string
	args []Argument
}

// NewInstruction creates a zero-argument instruction. It fails with
// InvalidInput when key is empty or not an identifier of at most 40 characters.
func NewInstruction(key string) (Instruction, error) {
	if !IsValidKey(key) {
		return Instruction{}, logixerrors.NewInvalidInput("instruction key", key)
	}
	return Instruction{key: key}, nil
}

// MustInstruction is like NewInstruction but panics on error.
func MustInstruction(key string) Instruction {
	inst, err := NewInstruction(key)
	invariant.Precondition(err == nil, "instruction key %q: %v", key, err)
	return inst
}

// IsValidKey reports whether key matches [A-Za-z_][A-Za-z0-9_]{0,39}.
func IsValidKey(key string) bool {
	if key == "" || len(key) > MaxKeyLength || !tagname.IsIdentStart(key[0]) {
		return false
	}
	return identEnd(key, 0) == len(key)
}

// Key returns the instruction key as written.
func (i Instruction) Key() string { return i.key }

// Arguments returns a copy of the argument list.
func (i Instruction) Arguments() []Argument {
	out := make([]Argument, len(i.args))
	copy(out, i.args)
	return out
}

// Of returns a new instruction with this key and the given arguments.
func (i Instruction) Of(args ...Argument) Instruction {
	out := Instruction{key: i.key, args: make([]Argument, len(args))}
	copy(out.args, args)
	return out
}

// OfTags is Of with tag arguments parsed from names.
func (i Instruction) OfTags(names ...string) (Instruction, error) {
	args := make([]Argument, 0, len(names))
	for _, name := range names {
		arg, err := FromTag(name)
		if err != nil {
			return Instruction{}, err
		}
		args = append(args, arg)
	}
	return i.Of(args...), nil
}

// Signature is the parenthesized argument list, e.g. "(Timer,5000,0)".
func (i Instruction) Signature() string {
	var b strings.Builder
	b.WriteByte('(')
	for n, arg := range i.args {
		if n > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Text is the key followed by the signature, without a trailing ';'.
func (i Instruction) Text() string {
	return i.key + i.Signature()
}

func (i Instruction) String() string { return i.Text() }

// Neutral returns the instruction as a single-call neutral text.
func (i Instruction) Neutral() NeutralText {
	return NewNeutralText(i.Text() + ";")
}

// IsConditional reports whether the key is a comparison or bit-test instruction.
func (i Instruction) IsConditional() bool { return hasKey(conditionalKeys, i.key) }

// CallsRoutine reports whether the instruction transfers control to a routine.
func (i Instruction) CallsRoutine() bool { return hasKey(routineKeys, i.key) }

// CallsTask reports whether the instruction triggers a task.
func (i Instruction) CallsTask() bool { return hasKey(taskKeys, i.key) }

// IsKnown reports whether the key is in the built-in registry.
func (i Instruction) IsKnown() bool {
	_, ok := Lookup(i.key)
	return ok
}

// Equal compares keys case-insensitively. Arguments are ignored.
func (i Instruction) Equal(other Instruction) bool {
	return strings.EqualFold(i.key, other.key)
}

// EqualKey compares the key against a bare string case-insensitively.
func (i Instruction) EqualKey(key string) bool {
	return strings.EqualFold(i.key, key)
}

// IsEquivalent compares the full text case-insensitively, so both key and
// arguments must match.
func (i Instruction) IsEquivalent(other Instruction) bool {
	return strings.EqualFold(i.Text(), other.Text())
}

// ParseInstruction reads a single call such as "TON(Timer,5000,0)". The text
// must be an identifier immediately followed by one parenthesis group running
// to the end of the input. Arguments are split on commas outside nested
// parenthesis and bracket groups.
func ParseInstruction(text string) (Instruction, error) {
	if text == "" {
		return Instruction{}, logixerrors.NewFormatError("empty instruction text", text)
	}
	if !tagname.IsIdentStart(text[0]) {
		return Instruction{}, logixerrors.NewFormatError("instruction must start with a key", text)
	}

	open := identEnd(text, 0)
	if open >= len(text) || text[open] != '(' {
		return Instruction{}, logixerrors.NewFormatError("instruction key must be followed by '('", text)
	}
	key := text[:open]
	if len(key) > MaxKeyLength {
		return Instruction{}, logixerrors.NewFormatError("instruction key is longer than 40 characters", text)
	}

	closing := matchGroup(text, open, '(', ')')
	if closing < 0 {
		return Instruction{}, logixerrors.NewFormatError("unbalanced parentheses", text)
	}
	if closing != len(text)-1 {
		return Instruction{}, logixerrors.NewFormatError("unexpected text after signature", text)
	}

	body := text[open+1 : closing]
	if !IsBalanced(body) {
		return Instruction{}, logixerrors.NewFormatError("unbalanced signature", text)
	}

	inst := Instruction{key: key}
	if strings.TrimSpace(body) == "" {
		return inst, nil
	}

	for n, part := range splitTopLevel(body) {
		arg, err := ParseArgument(part)
		if err != nil {
			return Instruction{}, logixerrors.Wrap(logixerrors.FormatError, "invalid argument", err).
				WithInput(text).
				WithContext("argument", n)
		}
		inst.args = append(inst.args, arg)
	}
	return inst, nil
}

// MustParseInstruction is like ParseInstruction but panics on error.
func MustParseInstruction(text string) Instruction {
	inst, err := ParseInstruction(text)
	invariant.Precondition(err == nil, "instruction literal %q: %v", text, err)
	return inst
}
