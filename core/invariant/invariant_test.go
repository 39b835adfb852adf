package invariant_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/opal-lang/logix/core/invariant"
	"github.com/stretchr/testify/assert"
)

func panicMessage(t *testing.T, fn func()) string {
	t.Helper()
	var msg string
	func() {
		defer func() {
			if r := recover(); r != nil {
				msg = fmt.Sprintf("%v", r)
			}
		}()
		fn()
	}()
	return msg
}

func TestPassingChecksDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		invariant.Precondition(true, "ok")
		invariant.Postcondition(len("XIC") == 3, "ok")
		invariant.Invariant(true, "ok")
		invariant.Advanced(3, 4, "scan")
		invariant.ExpectNoError(nil, "static table")
	})
}

func TestViolations(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want []string
	}{
		{
			name: "precondition",
			fn:   func() { invariant.Precondition(false, "key %q must be valid", "1X") },
			want: []string{"PRECONDITION VIOLATION", `key "1X" must be valid`, "at "},
		},
		{
			name: "postcondition",
			fn:   func() { invariant.Postcondition(false, "result must end in ;") },
			want: []string{"POSTCONDITION VIOLATION", "result must end in ;"},
		},
		{
			name: "invariant",
			fn:   func() { invariant.Invariant(false, "depth must not go negative") },
			want: []string{"INVARIANT VIOLATION", "depth must not go negative"},
		},
		{
			name: "advanced",
			fn:   func() { invariant.Advanced(5, 5, "branch scan") },
			want: []string{"INVARIANT VIOLATION", "branch scan", "(5 -> 5)"},
		},
		{
			name: "expect no error",
			fn:   func() { invariant.ExpectNoError(errors.New("bad"), "registry build") },
			want: []string{"POSTCONDITION VIOLATION", "registry build must not fail: bad"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := panicMessage(t, tt.fn)
			for _, w := range tt.want {
				assert.Contains(t, msg, w)
			}
		})
	}
}
