package logic

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/invariant"
)

// Definition describes one known instruction key and its classification.
type Definition struct {
	Key          string `json:"key" yaml:"key"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Conditional  bool   `json:"conditional,omitempty" yaml:"conditional,omitempty"`
	CallsRoutine bool   `json:"callsRoutine,omitempty" yaml:"callsRoutine,omitempty"`
	CallsTask    bool   `json:"callsTask,omitempty" yaml:"callsTask,omitempty"`
}

// Registry maps instruction keys (case-insensitively) to canonical
// zero-argument instructions. A Registry never changes after construction and
// is safe for concurrent reads.
type Registry struct {
	defs  map[string]Definition // upper-cased key
	order []string              // keys as written, table order
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := NewRegistry()
	invariant.ExpectNoError(err, "built-in instruction table")
	return r
})

// Default returns the process-wide built-in registry.
func Default() *Registry {
	return defaultRegistry()
}

// NewRegistry builds a registry from the built-in table plus extra
// definitions, for example Add-On Instructions declared in a project. Extra
// keys must be valid and must not repeat a built-in or another extra key.
func NewRegistry(extra ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(builtinTable)+len(extra))}

	for _, row := range builtinTable {
		upper := strings.ToUpper(row.key)
		r.defs[upper] = Definition{
			Key:          row.key,
			Description:  row.description,
			Conditional:  hasKey(conditionalKeys, upper),
			CallsRoutine: hasKey(routineKeys, upper),
			CallsTask:    hasKey(taskKeys, upper),
		}
		r.order = append(r.order, row.key)
	}
	invariant.Postcondition(len(r.defs) == len(builtinTable), "built-in table must not repeat keys")

	for _, def := range extra {
		if !IsValidKey(def.Key) {
			return nil, logixerrors.NewInvalidInput("instruction key", def.Key)
		}
		upper := strings.ToUpper(def.Key)
		if _, exists := r.defs[upper]; exists {
			return nil, logixerrors.Newf(logixerrors.InvalidInput, "instruction %s is already defined", def.Key).
				WithInput(def.Key)
		}
		r.defs[upper] = def
		r.order = append(r.order, def.Key)
	}
	return r, nil
}

// Len returns the number of known keys.
func (r *Registry) Len() int { return len(r.order) }

// Keys returns all known keys in table order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.order)
}

// Known returns the canonical zero-argument instruction for every key.
func (r *Registry) Known() []Instruction {
	out := make([]Instruction, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, Instruction{key: key})
	}
	return out
}

// Lookup finds the canonical instruction for key. Absence is not an error.
func (r *Registry) Lookup(key string) (Instruction, bool) {
	def, ok := r.defs[strings.ToUpper(key)]
	if !ok {
		return Instruction{}, false
	}
	return Instruction{key: def.Key}, true
}

// Get finds the canonical instruction for key, failing with NotFound and the
// closest known key as a suggestion.
func (r *Registry) Get(key string) (Instruction, error) {
	if inst, ok := r.Lookup(key); ok {
		return inst, nil
	}
	return Instruction{}, logixerrors.NewNotFound("instruction", key, r.Suggest(key))
}

// Definition returns the classification for key.
func (r *Registry) Definition(key string) (Definition, bool) {
	def, ok := r.defs[strings.ToUpper(key)]
	return def, ok
}

// Suggest returns the known key closest to key, or "" when nothing is close.
func (r *Registry) Suggest(key string) string {
	if key == "" {
		return ""
	}

	ranks := fuzzy.RankFindFold(key, r.order)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	// Fall back to edit distance for typos that are not subsequences.
	best, bestDist := "", 3
	upper := strings.ToUpper(key)
	for _, candidate := range r.order {
		d := fuzzy.LevenshteinDistance(upper, strings.ToUpper(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Filter returns definitions accepted by keep, in table order.
func (r *Registry) Filter(keep func(Definition) bool) []Definition {
	var out []Definition
	for _, key := range r.order {
		def := r.defs[strings.ToUpper(key)]
		if keep(def) {
			out = append(out, def)
		}
	}
	return out
}

// Known returns every built-in canonical instruction.
func Known() []Instruction { return Default().Known() }

// Keys returns every built-in key.
func Keys() []string { return Default().Keys() }

// Lookup finds a built-in instruction by key, case-insensitively.
func Lookup(key string) (Instruction, bool) { return Default().Lookup(key) }

// Get finds a built-in instruction by key or fails with NotFound.
func Get(key string) (Instruction, error) { return Default().Get(key) }

func hasKey(set map[string]struct{}, key string) bool {
	_, ok := set[strings.ToUpper(key)]
	return ok
}
