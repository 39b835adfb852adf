package logic

import (
	"slices"
	"strings"
)

// Reserved structured-text words. They are never reported as tags.
var keywords = map[string]struct{}{
	"IF": {}, "THEN": {}, "ELSIF": {}, "ELSE": {}, "END_IF": {},
	"CASE": {}, "OF": {}, "END_CASE": {},
	"FOR": {}, "TO": {}, "BY": {}, "DO": {}, "END_FOR": {},
	"WHILE": {}, "END_WHILE": {},
	"REPEAT": {}, "UNTIL": {}, "END_REPEAT": {},
	"EXIT": {}, "RETURN": {},
	"AND": {}, "OR": {}, "XOR": {}, "NOT": {}, "MOD": {},
}

// IsKeyword reports whether word is a reserved structured-text word.
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// Keywords lists the reserved words in upper case, sorted.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
