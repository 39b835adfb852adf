// Package errors defines the error kinds raised while parsing and building
// neutral text, instructions, arguments and tag names.
//
// Every failure is a *LogixError carrying one Kind. Callers match kinds with
// the standard library:
//
//	if errors.Is(err, logixerrors.ErrFormat) { ... }
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	// InvalidInput is an empty required string or a key/tag failing its grammar.
	InvalidInput Kind = "INVALID_INPUT"
	// FormatError is text that does not match the call, argument or literal grammar.
	FormatError Kind = "FORMAT_ERROR"
	// TypeMismatch is a request for the wrong variant of a value.
	TypeMismatch Kind = "TYPE_MISMATCH"
	// NotFound is an exact lookup of something that does not exist.
	NotFound Kind = "NOT_FOUND"
)

// Sentinels for errors.Is. They match any *LogixError of the same kind.
var (
	ErrInvalidInput = &LogixError{Kind: InvalidInput}
	ErrFormat       = &LogixError{Kind: FormatError}
	ErrTypeMismatch = &LogixError{Kind: TypeMismatch}
	ErrNotFound     = &LogixError{Kind: NotFound}
)

// LogixError is a structured error with kind and context
type LogixError struct {
	Kind       Kind
	Message    string
	Input      string // Offending text, if any
	Suggestion string // Closest known alternative, if any
	Cause      error
	Context    map[string]any
}

// Error implements the error interface
func (e *LogixError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Input != "" {
		fmt.Fprintf(&b, " in %q", e.Input)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap allows error unwrapping
func (e *LogixError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a kind sentinel (or any LogixError) of the same kind.
func (e *LogixError) Is(target error) bool {
	t, ok := target.(*LogixError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a new LogixError
func New(kind Kind, message string) *LogixError {
	return &LogixError{
		Kind:    kind,
		Message: message,
		Context: make(map[string]any),
	}
}

// Newf creates a new LogixError with a formatted message
func Newf(kind Kind, format string, args ...any) *LogixError {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap creates a new LogixError wrapping an existing error
func Wrap(kind Kind, message string, cause error) *LogixError {
	e := New(kind, message)
	e.Cause = cause
	return e
}

// WithInput records the offending text.
func (e *LogixError) WithInput(input string) *LogixError {
	e.Input = input
	return e
}

// WithSuggestion records the closest known alternative.
func (e *LogixError) WithSuggestion(suggestion string) *LogixError {
	e.Suggestion = suggestion
	return e
}

// WithContext adds context information to the error
func (e *LogixError) WithContext(key string, value any) *LogixError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *LogixError) GetContext(key string) (any, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// KindOf returns the kind of the first LogixError in err's chain.
func KindOf(err error) (Kind, bool) {
	var le *LogixError
	if stderrors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Helper functions for common error scenarios

// NewInvalidInput creates an error for a value failing its grammar.
func NewInvalidInput(what, input string) *LogixError {
	if input == "" {
		return Newf(InvalidInput, "%s must not be empty", what)
	}
	return Newf(InvalidInput, "invalid %s", what).WithInput(input)
}

// NewFormatError creates an error for text not matching an expected grammar.
func NewFormatError(message, input string) *LogixError {
	return New(FormatError, message).WithInput(input)
}

// NewTypeMismatch creates an error for a request of the wrong variant.
func NewTypeMismatch(want, got string) *LogixError {
	return Newf(TypeMismatch, "value is %s, not %s", got, want).
		WithContext("want", want).
		WithContext("got", got)
}

// NewNotFound creates an error for a failed exact lookup.
func NewNotFound(what, name, suggestion string) *LogixError {
	return Newf(NotFound, "%s not found", what).
		WithInput(name).
		WithSuggestion(suggestion).
		WithContext(what, name)
}
