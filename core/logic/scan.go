package logic

import (
	"github.com/opal-lang/logix/core/invariant"
	"github.com/opal-lang/logix/core/tagname"
)

// IsBalanced reports whether every '(' and '[' in s is closed by its matching
// delimiter in the right order. It is a single pass with an explicit stack.
func IsBalanced(s string) bool {
	var stack []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			stack = append(stack, s[i])
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return false
			}
			stack = stack[:len(stack)-1]
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// matchGroup returns the index of the delimiter closing the group opened at
// s[open], counting only that delimiter pair, or -1 if the group never closes.
func matchGroup(s string, open int, opener, closer byte) int {
	invariant.Precondition(open < len(s) && s[open] == opener, "group must start at %q", opener)
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on commas outside any parenthesis or bracket group.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// identEnd returns the end of the identifier starting at i.
func identEnd(s string, i int) int {
	j := i
	for j < len(s) && tagname.IsIdentPart(s[j]) {
		j++
	}
	return j
}

// atTokenStart reports whether an identifier may begin at s[i]: it must be an
// identifier start not glued to a preceding word, number or radix prefix.
func atTokenStart(s string, i int) bool {
	if !tagname.IsIdentStart(s[i]) {
		return false
	}
	if i == 0 {
		return true
	}
	prev := s[i-1]
	return !tagname.IsIdentPart(prev) && prev != '#' && prev != '.' && prev != '$'
}

// skipQuoted returns the index just past the literal opened by the quote at
// s[i]. A '$' escapes the following character.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '$':
			j++
		case quote:
			return j + 1
		}
	}
	return len(s)
}

// walkCalls yields every call unit in s in discovery order: each
// "identifier(...)" group, followed by the calls nested in its arguments.
// Bracketed groups are split into branch legs that are walked in order.
// It returns false when yield asked to stop.
func walkCalls(s string, yield func(string) bool) bool {
	return walkUnits(s, nil, yield)
}

// walkUnits is walkCalls, except that the arguments of a call whose key
// satisfies outer are not walked.
func walkUnits(s string, outer func(key string) bool, yield func(string) bool) bool {
	i := 0
	for i < len(s) {
		prev := i
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			i = skipQuoted(s, i)
		case atTokenStart(s, i):
			j := identEnd(s, i)
			if j < len(s) && s[j] == '(' {
				closing := matchGroup(s, j, '(', ')')
				if closing < 0 {
					i = j + 1
					break
				}
				if !yield(s[i : closing+1]) {
					return false
				}
				if outer != nil && outer(s[i:j]) {
					i = closing + 1
					break
				}
				if !walkUnits(s[j+1:closing], outer, yield) {
					return false
				}
				i = closing + 1
				break
			}
			i = j
		case c == '[':
			closing := matchGroup(s, i, '[', ']')
			if closing < 0 {
				i++
				break
			}
			for _, leg := range splitTopLevel(s[i+1 : closing]) {
				if !walkUnits(leg, outer, yield) {
					return false
				}
			}
			i = closing + 1
		default:
			i++
		}
		invariant.Advanced(prev, i, "call scan")
	}
	return true
}

// walkTags yields every tag reference in s in discovery order. A tag is
// followed by the tags in its indexes. Identifiers followed by '(' are
// instruction keys and reserved words are skipped.
func walkTags(s string, yield func(tagname.TagName) bool) bool {
	i := 0
	for i < len(s) {
		prev := i
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			i = skipQuoted(s, i)
		case atTokenStart(s, i):
			end := tagname.Span(s, i)
			if end < len(s) && s[end] == '(' {
				i = end
				break
			}
			token := s[i:end]
			if !IsKeyword(token) {
				if tag, err := tagname.Parse(token); err == nil {
					if !yield(tag) {
						return false
					}
				}
				if !walkIndexes(token, yield) {
					return false
				}
			}
			i = end
		default:
			i++
		}
		invariant.Advanced(prev, i, "tag scan")
	}
	return true
}

// walkIndexes yields the tags used inside the bracket indexes of token, as
// in "Bits[Ptr + 1].0".
func walkIndexes(token string, yield func(tagname.TagName) bool) bool {
	j := 0
	for j < len(token) {
		if token[j] != '[' {
			j++
			continue
		}
		closing := matchGroup(token, j, '[', ']')
		if closing < 0 {
			return true
		}
		if !walkTags(token[j+1:closing], yield) {
			return false
		}
		j = closing + 1
	}
	return true
}

// walkKeywords yields reserved words appearing as whole tokens, as written.
func walkKeywords(s string, yield func(string) bool) bool {
	i := 0
	for i < len(s) {
		prev := i
		c := s[i]
		switch {
		case c == '\'' || c == '"':
			i = skipQuoted(s, i)
		case atTokenStart(s, i):
			j := identEnd(s, i)
			if IsKeyword(s[i:j]) && !(j < len(s) && s[j] == '(') {
				if !yield(s[i:j]) {
					return false
				}
			}
			i = j
		default:
			i++
		}
		invariant.Advanced(prev, i, "keyword scan")
	}
	return true
}

// isRungShaped reports whether s consists only of call units and branch
// groups, which is the shape of a ladder rung.
func isRungShaped(s string) bool {
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '[':
			closing := matchGroup(s, i, '[', ']')
			if closing < 0 {
				return false
			}
			for _, leg := range splitTopLevel(s[i+1 : closing]) {
				if !isRungShaped(leg) {
					return false
				}
			}
			i = closing + 1
		case tagname.IsIdentStart(c):
			j := identEnd(s, i)
			if j >= len(s) || s[j] != '(' {
				return false
			}
			closing := matchGroup(s, j, '(', ')')
			if closing < 0 {
				return false
			}
			i = closing + 1
		default:
			return false
		}
	}
	return true
}
