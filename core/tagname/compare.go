package tagname

import (
	"sort"
	"strings"
)

// Comparer decides whether two tag names refer to the same thing.
type Comparer func(a, b TagName) bool

// EqualExact compares full tag names.
func EqualExact(a, b TagName) bool { return a.Equal(b) }

// EqualRoot compares only the base tags.
func EqualRoot(a, b TagName) bool { return strings.EqualFold(a.Root(), b.Root()) }

// EqualPath compares only the member paths below the root.
func EqualPath(a, b TagName) bool { return strings.EqualFold(a.Path(), b.Path()) }

// EqualMember compares only the last segments.
func EqualMember(a, b TagName) bool { return strings.EqualFold(a.Member(), b.Member()) }

var comparers = map[string]Comparer{
	"exact":  EqualExact,
	"root":   EqualRoot,
	"path":   EqualPath,
	"member": EqualMember,
}

// ComparerByName returns a comparer for "exact", "root", "path" or "member".
func ComparerByName(name string) (Comparer, bool) {
	c, ok := comparers[strings.ToLower(name)]
	return c, ok
}

// ComparerNames lists the names accepted by ComparerByName.
func ComparerNames() []string {
	names := make([]string, 0, len(comparers))
	for n := range comparers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
