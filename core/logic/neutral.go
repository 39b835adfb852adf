package logic

import (
	"iter"
	"strings"

	"github.com/opal-lang/logix/core/tagname"
)

// NeutralText is the flat, semicolon-terminated text form of a rung or a
// structured-text statement, e.g. "[XIC(a),XIO(b)]OTE(c);". The zero value
// is the empty text ";".
type NeutralText struct {
	text string
}

// Empty is the normalized empty neutral text.
const Empty = ";"

// NewNeutralText wraps text verbatim; an empty string becomes ";".
func NewNeutralText(text string) NeutralText {
	return NeutralText{text: text}
}

// String returns the text.
func (n NeutralText) String() string {
	if n.text == "" {
		return Empty
	}
	return n.text
}

// body is the text without its trailing ';'.
func (n NeutralText) body() string {
	return strings.TrimSuffix(n.String(), ";")
}

// IsEmpty reports whether the text holds nothing besides ';' and whitespace.
func (n NeutralText) IsEmpty() bool {
	return strings.TrimSpace(n.body()) == ""
}

// IsBalanced reports whether every '(' and '[' is correctly closed.
func (n NeutralText) IsBalanced() bool {
	return IsBalanced(n.String())
}

// Equal compares the texts exactly.
func (n NeutralText) Equal(other NeutralText) bool {
	return n.String() == other.String()
}

// Contains reports whether needle occurs in the text, case-sensitively.
func (n NeutralText) Contains(needle string) bool {
	return strings.Contains(n.String(), needle)
}

// ContainsInstruction reports whether the instruction's text occurs in the text.
func (n NeutralText) ContainsInstruction(inst Instruction) bool {
	return n.Contains(inst.Text())
}

// ContainsArgument reports whether the argument's text occurs in the text.
func (n NeutralText) ContainsArgument(arg Argument) bool {
	return n.Contains(arg.String())
}

// Key returns the leading identifier when the text starts with a call, e.g.
// "TON" for "TON(T,1000,0)".
func (n NeutralText) Key() string {
	s := n.String()
	if s == "" || !tagname.IsIdentStart(s[0]) {
		return ""
	}
	end := identEnd(s, 0)
	if end >= len(s) || s[end] != '(' {
		return ""
	}
	return s[:end]
}

// Instructions yields every call unit in discovery order. Calls nested in
// another call's arguments are yielded after the enclosing call; branch legs
// are walked left to right.
func (n NeutralText) Instructions() iter.Seq[NeutralText] {
	return func(yield func(NeutralText) bool) {
		walkCalls(n.body(), func(unit string) bool {
			return yield(NeutralText{text: unit})
		})
	}
}

// InstructionsOf yields the call units whose key matches key case-insensitively.
func (n NeutralText) InstructionsOf(key string) iter.Seq[NeutralText] {
	return func(yield func(NeutralText) bool) {
		for unit := range n.Instructions() {
			if strings.EqualFold(unit.Key(), key) && !yield(unit) {
				return
			}
		}
	}
}

// InstructionsLike yields the call units whose parsed instruction is
// equivalent to inst. Units that fail to parse are skipped.
func (n NeutralText) InstructionsLike(inst Instruction) iter.Seq[NeutralText] {
	return func(yield func(NeutralText) bool) {
		for unit := range n.InstructionsOf(inst.Key()) {
			parsed, err := ParseInstruction(unit.String())
			if err != nil || !parsed.IsEquivalent(inst) {
				continue
			}
			if !yield(unit) {
				return
			}
		}
	}
}

// ParseInstructions parses every call unit. It fails on the first unit that
// does not parse.
func (n NeutralText) ParseInstructions() ([]Instruction, error) {
	var out []Instruction
	for unit := range n.Instructions() {
		inst, err := ParseInstruction(unit.String())
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Tags yields every tag reference in discovery order, including tags inside
// call arguments. Instruction keys and reserved words are not tags.
// Duplicates are kept.
func (n NeutralText) Tags() iter.Seq[tagname.TagName] {
	return func(yield func(tagname.TagName) bool) {
		walkTags(n.body(), yield)
	}
}

// TagsIn yields the tags in the argument lists of call units with the given
// key. A matching call nested inside another matching call is covered by the
// outer one, so each tag is reported once.
func (n NeutralText) TagsIn(key string) iter.Seq[tagname.TagName] {
	matches := func(k string) bool { return strings.EqualFold(k, key) }
	return func(yield func(tagname.TagName) bool) {
		walkUnits(n.body(), matches, func(unit string) bool {
			k := unit[:identEnd(unit, 0)]
			if !matches(k) {
				return true
			}
			return walkTags(unit[len(k):], yield)
		})
	}
}

// IsRung reports whether the text is made only of call units and branches.
func (n NeutralText) IsRung() bool {
	return isRungShaped(n.body())
}

// Keywords yields the reserved structured-text words of a statement, as
// written. Rung text yields nothing.
func (n NeutralText) Keywords() iter.Seq[string] {
	return func(yield func(string) bool) {
		if n.IsRung() {
			return
		}
		walkKeywords(n.body(), yield)
	}
}
