// Package tagname parses and compares tag member paths such as
// "Program:Main.Timer.PRE", "Array[1,3].3" or "Local:1:I.Data.0".
package tagname

import (
	"strings"

	logixerrors "github.com/opal-lang/logix/core/errors"
)

// MaxSegmentLength is the longest identifier allowed in one path segment.
const MaxSegmentLength = 40

// ASCII character lookup tables
var (
	isIdentStart [128]bool
	isIdentPart  [128]bool
	isDigit      [128]bool
	isIndexChar  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
		isIndexChar[i] = isIdentPart[i] || strings.IndexByte(",.: +-*/[]", ch) >= 0
	}
}

// IsIdentStart reports whether c may begin an identifier.
func IsIdentStart(c byte) bool { return c < 128 && isIdentStart[c] }

// IsIdentPart reports whether c may continue an identifier.
func IsIdentPart(c byte) bool { return c < 128 && isIdentPart[c] }

// TagName is a validated tag reference. The zero TagName is empty and invalid.
type TagName struct {
	raw     string
	members []string
}

// Parse validates text as a tag name.
func Parse(text string) (TagName, error) {
	if text == "" {
		return TagName{}, logixerrors.NewInvalidInput("tag name", "")
	}
	if Span(text, 0) != len(text) {
		return TagName{}, logixerrors.NewInvalidInput("tag name", text)
	}
	members, ok := split(text)
	if !ok {
		return TagName{}, logixerrors.NewInvalidInput("tag name", text)
	}
	return TagName{raw: text, members: members}, nil
}

// MustParse is like Parse but panics on error. Use it for literal constants.
func MustParse(text string) TagName {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return t
}

// IsTag reports whether text is a valid tag name.
func IsTag(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// Span returns the end of the longest tag-shaped token starting at start,
// or start when no token begins there. It checks shape only; Parse applies
// the length and index-content rules.
func Span(s string, start int) int {
	i := start
	if i >= len(s) || !IsIdentStart(s[i]) {
		return start
	}
	i++
	for i < len(s) && (IsIdentPart(s[i]) || scopeColon(s, i)) {
		i++
	}

	for i < len(s) {
		switch s[i] {
		case '[':
			end := closeBracket(s, i)
			if end < 0 {
				return i
			}
			i = end + 1
		case '.':
			if i+1 >= len(s) {
				return i
			}
			next := s[i+1]
			switch {
			case IsIdentStart(next):
				i += 2
				for i < len(s) && IsIdentPart(s[i]) {
					i++
				}
			case next < 128 && isDigit[next]:
				// bit member ends the path
				i += 2
				for i < len(s) && s[i] < 128 && isDigit[s[i]] {
					i++
				}
				return i
			default:
				return i
			}
		default:
			return i
		}
	}
	return i
}

// scopeColon reports whether s[i] is a ':' joining two root parts, as in
// "Local:1:I". A ':' before '=' is an assignment, not part of the tag.
func scopeColon(s string, i int) bool {
	return s[i] == ':' && i+1 < len(s) && IsIdentPart(s[i+1])
}

// closeBracket returns the index of the ']' matching the '[' at open, or -1.
func closeBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return i
			}
		case c >= 128 || !isIndexChar[c]:
			return -1
		}
	}
	return -1
}

// split breaks a tag-shaped string into root, index and member segments.
func split(s string) ([]string, bool) {
	i := 0
	for i < len(s) && (IsIdentPart(s[i]) || scopeColon(s, i)) {
		i++
	}
	if !validSegment(s[:i], true) {
		return nil, false
	}
	members := []string{s[:i]}

	for i < len(s) {
		switch s[i] {
		case '[':
			end := closeBracket(s, i)
			if end < 0 || strings.TrimSpace(s[i+1:end]) == "" {
				return nil, false
			}
			members = append(members, s[i:end+1])
			i = end + 1
		case '.':
			j := i + 1
			for j < len(s) && IsIdentPart(s[j]) {
				j++
			}
			if !validSegment(s[i+1:j], false) {
				return nil, false
			}
			members = append(members, s[i+1:j])
			i = j
		default:
			return nil, false
		}
	}
	return members, true
}

func validSegment(seg string, root bool) bool {
	if seg == "" {
		return false
	}
	// Scoped roots like "Program:Main" or "Local:1:I" limit each part.
	parts := []string{seg}
	if root {
		parts = strings.Split(seg, ":")
	}
	for _, p := range parts {
		if p == "" || len(p) > MaxSegmentLength {
			return false
		}
	}
	return true
}

// String returns the tag name as written.
func (t TagName) String() string { return t.raw }

// IsEmpty reports whether t is the zero TagName.
func (t TagName) IsEmpty() bool { return t.raw == "" }

// Root is the base tag, e.g. "Array" for "Array[1,3].3".
func (t TagName) Root() string {
	if len(t.members) == 0 {
		return ""
	}
	return t.members[0]
}

// Operand is everything after the root, e.g. "[1,3].3".
func (t TagName) Operand() string {
	return t.raw[len(t.Root()):]
}

// Path is the operand without a leading member separator, e.g. "Timer.PRE"
// for "Main.Timer.PRE".
func (t TagName) Path() string {
	return strings.TrimPrefix(t.Operand(), ".")
}

// Member is the last segment, or the root when the tag has no members.
func (t TagName) Member() string {
	if len(t.members) == 0 {
		return ""
	}
	return t.members[len(t.members)-1]
}

// Members returns the root followed by each index and member segment.
func (t TagName) Members() []string {
	out := make([]string, len(t.members))
	copy(out, t.members)
	return out
}

// Depth is the number of segments below the root.
func (t TagName) Depth() int {
	if len(t.members) == 0 {
		return 0
	}
	return len(t.members) - 1
}

// Append returns a new tag with member added. Index segments ("[2]") attach
// directly; names and bit numbers attach with a dot.
func (t TagName) Append(member string) (TagName, error) {
	if strings.HasPrefix(member, "[") {
		return Parse(t.raw + member)
	}
	return Parse(t.raw + "." + member)
}

// Equal compares two tag names case-insensitively.
func (t TagName) Equal(other TagName) bool {
	return strings.EqualFold(t.raw, other.raw)
}
