package lint

import (
	"testing"

	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/runtime/xref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loc = xref.Location{Container: "MainProgram", Routine: "MainRoutine", Number: 4}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  Policy
	}{
		{"", PolicyWarn},
		{"warn", PolicyWarn},
		{"ERROR", PolicyError},
		{"ignore", PolicyIgnore},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePolicy("fatal")
	assert.ErrorIs(t, err, logixerrors.ErrInvalidInput)
}

func TestCleanRung(t *testing.T) {
	l := New(nil)
	assert.Empty(t, l.Rung(loc, logic.NewNeutralText("[XIC(Start),XIO(Stop)]OTE(Motor);")))
	assert.Empty(t, l.Rung(loc, logic.NewNeutralText(";")))
	assert.Empty(t, l.Rung(loc, logic.NewNeutralText("CMP(ATN(_Test) > 1.0)OTE(x);")))
}

func TestUnbalanced(t *testing.T) {
	diags := New(nil).Rung(loc, logic.NewNeutralText("XIC(SomeTag;"))
	require.Len(t, diags, 1)
	assert.Equal(t, CodeUnbalanced, diags[0].Code)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, loc, diags[0].Location)
	assert.True(t, HasErrors(diags))
}

func TestBadCall(t *testing.T) {
	diags := New(nil).Rung(loc, logic.NewNeutralText("XIC(a b)OTE(c);"))
	require.Len(t, diags, 1)
	assert.Equal(t, CodeBadCall, diags[0].Code)
	assert.Equal(t, "XIC(a b)", diags[0].Unit)
	assert.Contains(t, diags[0].Message, `"a b"`)
}

func TestMalformedExpression(t *testing.T) {
	for _, rung := range []string{"XIC(-);", "CPT(Dest,a b +);", "XIC(16#ZZ + );"} {
		diags := New(nil).Rung(loc, logic.NewNeutralText(rung))
		require.Len(t, diags, 1, rung)
		assert.Equal(t, CodeBadCall, diags[0].Code, rung)
	}
}

func TestUnknownKeyPolicy(t *testing.T) {
	text := logic.NewNeutralText("XIX(a)OTE(b);")

	warn := New(nil).Rung(loc, text)
	require.Len(t, warn, 1)
	assert.Equal(t, CodeUnknownKey, warn[0].Code)
	assert.Equal(t, SeverityWarning, warn[0].Severity)
	assert.Equal(t, "XIC", warn[0].Suggestion)
	assert.False(t, HasErrors(warn))
	assert.Contains(t, warn[0].String(), `did you mean "XIC"?`)

	errs := New(nil, WithUnknownKeys(PolicyError)).Rung(loc, text)
	require.Len(t, errs, 1)
	assert.Equal(t, SeverityError, errs[0].Severity)

	assert.Empty(t, New(nil, WithUnknownKeys(PolicyIgnore)).Rung(loc, text))
}

func TestCustomRegistry(t *testing.T) {
	r, err := logic.NewRegistry(logic.Definition{Key: "Valve_Ctl"})
	require.NoError(t, err)

	text := logic.NewNeutralText("Valve_Ctl(V101,Cmd)OTE(Done);")
	assert.Len(t, New(nil).Rung(loc, text), 1)
	assert.Empty(t, New(r).Rung(loc, text))
}

func TestIndex(t *testing.T) {
	x := xref.New()
	require.NoError(t, x.Add(xref.Location{Routine: "B"}, logic.NewNeutralText("XIC(a;")))
	require.NoError(t, x.Add(xref.Location{Routine: "A"}, logic.NewNeutralText("FOO(a);")))
	require.NoError(t, x.Add(xref.Location{Routine: "C"}, logic.NewNeutralText("OTE(a);")))

	diags := New(nil).Index(x)
	require.Len(t, diags, 2)
	assert.Equal(t, "A", diags[0].Location.Routine)
	assert.Equal(t, CodeUnknownKey, diags[0].Code)
	assert.Equal(t, "B", diags[1].Location.Routine)
	assert.Equal(t, CodeUnbalanced, diags[1].Code)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(0).String())
}
