// Package invariant provides contract assertions for logix.
//
// Assertions guard programmer errors: a scanner that stops making progress, a
// static table entry that fails its own grammar, a Must helper fed a bad
// literal. User input never reaches these checks; it is reported through
// core/errors instead.
//
// All functions panic on violation.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
// Panics with PRECONDITION VIOLATION if condition is false.
//
// Example:
//
//	func MustTag(name string) Argument {
//	    arg, err := FromTag(name)
//	    invariant.Precondition(err == nil, "tag literal %q: %v", name, err)
//	    return arg
//	}
func Precondition(condition bool, format string, args ...any) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
// Panics with POSTCONDITION VIOLATION if condition is false.
func Postcondition(condition bool, format string, args ...any) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution.
// Panics with INVARIANT VIOLATION if condition is false.
//
// Example:
//
//	prev := pos
//	for pos < len(text) {
//	    pos = step(text, pos)
//	    invariant.Invariant(pos > prev, "scan must advance")
//	    prev = pos
//	}
func Invariant(condition bool, format string, args ...any) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// Advanced panics unless a scan position moved forward.
func Advanced(prev, next int, where string) {
	if next <= prev {
		fail("INVARIANT", "%s: scan position did not advance (%d -> %d)", where, prev, next)
	}
}

// ExpectNoError panics if err is not nil.
// Use it where the input is a compile-time constant that cannot fail.
func ExpectNoError(err error, msg string) {
	if err != nil {
		fail("POSTCONDITION", "%s must not fail: %v", msg, err)
	}
}

// fail panics with a formatted message naming the violating call site.
func fail(kind, format string, args ...any) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]any{kind}, args...)...)

	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}
