// Package lint reports problems in rungs: unbalanced delimiters, call units
// that do not parse and instruction keys missing from the registry.
package lint

import (
	"fmt"
	"log/slog"
	"strings"

	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/runtime/xref"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota + 1
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Policy decides how unknown instruction keys are reported.
type Policy string

const (
	PolicyError  Policy = "error"
	PolicyWarn   Policy = "warn"
	PolicyIgnore Policy = "ignore"
)

// ParsePolicy accepts "error", "warn" or "ignore". An empty name is "warn".
func ParsePolicy(name string) (Policy, error) {
	switch p := Policy(strings.ToLower(name)); p {
	case "":
		return PolicyWarn, nil
	case PolicyError, PolicyWarn, PolicyIgnore:
		return p, nil
	}
	return "", logixerrors.NewInvalidInput("unknown-key policy", name).
		WithContext("allowed", []string{string(PolicyError), string(PolicyWarn), string(PolicyIgnore)})
}

// Code identifies the check that produced a diagnostic.
type Code string

const (
	CodeUnbalanced Code = "unbalanced"
	CodeBadCall    Code = "bad-call"
	CodeUnknownKey Code = "unknown-key"
)

// Diagnostic is one problem found in a rung.
type Diagnostic struct {
	Location   xref.Location
	Severity   Severity
	Code       Code
	Message    string
	Unit       string // offending call unit, if any
	Suggestion string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s [%s] %s", d.Location, d.Severity, d.Code, d.Message)
	if d.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", d.Suggestion)
	}
	return b.String()
}

// Linter checks rungs against a registry.
type Linter struct {
	registry    *logic.Registry
	unknownKeys Policy
	logger      *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithUnknownKeys sets the policy for keys missing from the registry.
func WithUnknownKeys(p Policy) Option {
	return func(l *Linter) { l.unknownKeys = p }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a linter. A nil registry uses the built-in one.
func New(registry *logic.Registry, opts ...Option) *Linter {
	if registry == nil {
		registry = logic.Default()
	}
	l := &Linter{
		registry:    registry,
		unknownKeys: PolicyWarn,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Rung checks one rung. Unbalanced text stops further checks since its call
// units cannot be located reliably.
func (l *Linter) Rung(loc xref.Location, text logic.NeutralText) []Diagnostic {
	var diags []Diagnostic

	if !text.IsBalanced() {
		return append(diags, Diagnostic{
			Location: loc,
			Severity: SeverityError,
			Code:     CodeUnbalanced,
			Message:  "unbalanced parentheses or brackets",
		})
	}

	if text.IsEmpty() {
		l.logger.Debug("empty rung", "location", loc.String())
		return nil
	}

	for unit := range text.Instructions() {
		if _, err := logic.ParseInstruction(unit.String()); err != nil {
			diags = append(diags, Diagnostic{
				Location: loc,
				Severity: SeverityError,
				Code:     CodeBadCall,
				Message:  describe(err),
				Unit:     unit.String(),
			})
			continue
		}
		if d, ok := l.checkKey(loc, unit); ok {
			diags = append(diags, d)
		}
	}

	l.logger.Debug("linted rung", "location", loc.String(), "diagnostics", len(diags))
	return diags
}

func (l *Linter) checkKey(loc xref.Location, unit logic.NeutralText) (Diagnostic, bool) {
	if l.unknownKeys == PolicyIgnore {
		return Diagnostic{}, false
	}
	key := unit.Key()
	if _, ok := l.registry.Lookup(key); ok {
		return Diagnostic{}, false
	}

	severity := SeverityWarning
	if l.unknownKeys == PolicyError {
		severity = SeverityError
	}
	return Diagnostic{
		Location:   loc,
		Severity:   severity,
		Code:       CodeUnknownKey,
		Message:    fmt.Sprintf("unknown instruction %s", key),
		Unit:       unit.String(),
		Suggestion: l.registry.Suggest(key),
	}, true
}

// Index checks every rung of an index in location order.
func (l *Linter) Index(x *xref.Index) []Diagnostic {
	var diags []Diagnostic
	for _, loc := range x.Locations() {
		text, _ := x.Rung(loc)
		diags = append(diags, l.Rung(loc, text)...)
	}
	return diags
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// describe returns the innermost message of a structured error with the
// input it rejected.
func describe(err error) string {
	var lerr *logixerrors.LogixError
	for {
		e, ok := err.(*logixerrors.LogixError)
		if !ok {
			break
		}
		lerr = e
		if e.Cause == nil {
			break
		}
		err = e.Cause
	}
	if lerr == nil {
		return err.Error()
	}
	if lerr.Input != "" {
		return fmt.Sprintf("%s %q", lerr.Message, strings.TrimSpace(lerr.Input))
	}
	return lerr.Message
}
