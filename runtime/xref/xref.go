// Package xref builds a cross-reference index over many rungs: where each
// tag is used and where each instruction key is called.
package xref

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/core/tagname"
)

// Location identifies one rung in a project.
type Location struct {
	Container string // controller, program or Add-On Instruction
	Routine   string
	Number    int // rung number within the routine
}

func (l Location) String() string {
	if l.Container == "" {
		return fmt.Sprintf("%s/%d", l.Routine, l.Number)
	}
	return fmt.Sprintf("%s/%s/%d", l.Container, l.Routine, l.Number)
}

// Compare orders locations by container, routine and rung number.
func (l Location) Compare(other Location) int {
	if c := strings.Compare(l.Container, other.Container); c != 0 {
		return c
	}
	if c := strings.Compare(l.Routine, other.Routine); c != 0 {
		return c
	}
	return cmp.Compare(l.Number, other.Number)
}

// TagReference is one occurrence of a tag in a rung.
type TagReference struct {
	Location Location
	Tag      tagname.TagName
}

// InstructionReference is one call unit in a rung.
type InstructionReference struct {
	Location Location
	Unit     logic.NeutralText
}

// Count is a distinct name with its number of occurrences.
type Count struct {
	Name  string
	Count int
}

// Index is safe for concurrent use. Adding a rung at an existing location
// replaces it.
type Index struct {
	mu     sync.RWMutex
	rungs  map[Location]logic.NeutralText
	logger *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Index) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// New creates an empty index.
func New(opts ...Option) *Index {
	x := &Index{
		rungs:  make(map[Location]logic.NeutralText),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

func (l Location) validate() error {
	if l.Routine == "" {
		return logixerrors.NewInvalidInput("routine name", l.Routine)
	}
	if l.Number < 0 {
		return logixerrors.Newf(logixerrors.InvalidInput, "rung number %d is negative", l.Number).
			WithInput(l.String())
	}
	return nil
}

// Add records the rung at loc. The routine must be named and the rung number
// must not be negative.
func (x *Index) Add(loc Location, text logic.NeutralText) error {
	if err := loc.validate(); err != nil {
		return err
	}

	x.mu.Lock()
	_, replaced := x.rungs[loc]
	x.rungs[loc] = text
	x.mu.Unlock()

	x.logger.Debug("indexed rung", "location", loc.String(), "replaced", replaced)
	return nil
}

// Len returns the number of indexed rungs.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.rungs)
}

// Rung returns the text stored at loc.
func (x *Index) Rung(loc Location) (logic.NeutralText, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	text, ok := x.rungs[loc]
	return text, ok
}

// Locations returns every indexed location in order.
func (x *Index) Locations() []Location {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.sortedLocations()
}

func (x *Index) sortedLocations() []Location {
	locs := make([]Location, 0, len(x.rungs))
	for loc := range x.rungs {
		locs = append(locs, loc)
	}
	slices.SortFunc(locs, Location.Compare)
	return locs
}

// TagReferences returns every occurrence of a tag matching name under match,
// ordered by location and then by position within the rung. A nil match
// compares full names.
func (x *Index) TagReferences(name tagname.TagName, match tagname.Comparer) []TagReference {
	if match == nil {
		match = tagname.EqualExact
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	var refs []TagReference
	for _, loc := range x.sortedLocations() {
		for tag := range x.rungs[loc].Tags() {
			if match(tag, name) {
				refs = append(refs, TagReference{Location: loc, Tag: tag})
			}
		}
	}
	return refs
}

// InstructionReferences returns every call unit whose key matches key
// case-insensitively, including calls nested in arguments.
func (x *Index) InstructionReferences(key string) []InstructionReference {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var refs []InstructionReference
	for _, loc := range x.sortedLocations() {
		for unit := range x.rungs[loc].InstructionsOf(key) {
			refs = append(refs, InstructionReference{Location: loc, Unit: unit})
		}
	}
	return refs
}

// Tags counts distinct tag names, compared case-insensitively. The first
// spelling seen in location order is reported.
func (x *Index) Tags() []Count {
	return x.count(func(text logic.NeutralText, add func(string)) {
		for tag := range text.Tags() {
			add(tag.String())
		}
	})
}

// Keys counts distinct instruction keys, compared case-insensitively.
func (x *Index) Keys() []Count {
	return x.count(func(text logic.NeutralText, add func(string)) {
		for unit := range text.Instructions() {
			add(unit.Key())
		}
	})
}

func (x *Index) count(each func(logic.NeutralText, func(string))) []Count {
	x.mu.RLock()
	defer x.mu.RUnlock()

	byName := make(map[string]*Count)
	var out []*Count
	for _, loc := range x.sortedLocations() {
		each(x.rungs[loc], func(name string) {
			folded := strings.ToUpper(name)
			c, ok := byName[folded]
			if !ok {
				c = &Count{Name: name}
				byName[folded] = c
				out = append(out, c)
			}
			c.Count++
		})
	}

	counts := make([]Count, len(out))
	for i, c := range out {
		counts[i] = *c
	}
	slices.SortFunc(counts, func(a, b Count) int {
		return strings.Compare(strings.ToUpper(a.Name), strings.ToUpper(b.Name))
	})
	return counts
}
