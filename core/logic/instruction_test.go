package logic

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	logixerrors "github.com/opal-lang/logix/core/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argTexts(inst Instruction) []string {
	var out []string
	for _, arg := range inst.Arguments() {
		out = append(out, arg.String())
	}
	return out
}

func TestNewInstruction(t *testing.T) {
	for _, key := range []string{"XIC", "X", "_Aoi", "My_AOI_2", strings.Repeat("K", MaxKeyLength)} {
		inst, err := NewInstruction(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, inst.Key())
		assert.Empty(t, inst.Arguments())
		assert.Equal(t, key+"()", inst.Text())
	}

	for _, key := range []string{"", "1XIC", "XI C", "XIC(", "X-Y", strings.Repeat("K", MaxKeyLength+1)} {
		_, err := NewInstruction(key)
		assert.ErrorIs(t, err, logixerrors.ErrInvalidInput, key)
	}
}

func TestOfDoesNotMutate(t *testing.T) {
	base := MustInstruction("XIC")
	withArg := base.Of(MustTag("MyTag"))

	assert.Equal(t, "XIC()", base.Text())
	assert.Equal(t, "XIC(MyTag)", withArg.Text())
	assert.Equal(t, "(MyTag)", withArg.Signature())

	args := withArg.Arguments()
	args[0] = MustTag("Changed")
	assert.Equal(t, "XIC(MyTag)", withArg.Text(), "Arguments returns a copy")

	ton, err := MustInstruction("TON").OfTags("Timer", "Preset")
	require.NoError(t, err)
	assert.Equal(t, "TON(Timer,Preset)", ton.Text())

	_, err = MustInstruction("TON").OfTags("Timer", "bad tag")
	assert.ErrorIs(t, err, logixerrors.ErrInvalidInput)
}

func TestParseInstruction(t *testing.T) {
	tests := []struct {
		input string
		key   string
		args  []string
	}{
		{"XIC(SomeBit)", "XIC", []string{"SomeBit"}},
		{"TON(SomeTimer,5000,0)", "TON", []string{"SomeTimer", "5000", "0"}},
		{"XIO(MultiDimensionalArray[1,3].3)", "XIO", []string{"MultiDimensionalArray[1,3].3"}},
		{"CMP(ATN(_Test) > 1.0)", "CMP", []string{"ATN(_Test) > 1.0"}},
		{"MOV(ABS(a,b),Dest)", "MOV", []string{"ABS(a,b)", "Dest"}},
		{"TON(T1,?,?)", "TON", []string{"T1", "?", "?"}},
		{"NOP()", "NOP", nil},
		{"MyAoi(Inst, In1, 16#0F)", "MyAoi", []string{"Inst", "In1", "15"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			inst, err := ParseInstruction(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.key, inst.Key())
			if diff := cmp.Diff(tt.args, argTexts(inst)); diff != "" {
				t.Errorf("arguments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInstructionRejects(t *testing.T) {
	inputs := []string{
		"",
		"XIC",
		"XIC SomeBit",
		"(SomeBit)",
		"XIC(SomeTag",
		"XIC(a))",
		"XIC(a)OTE(b)",
		"XIC(a);",
		"[XIC(a)]",
		"XIC(a[1)]",
		"TON(T,,0)",
		"XIC(bad tag)",
		"XIC(-)",
		"XIC(a b +)",
		"XIC(16#ZZ + )",
		"CPT(Dest,Src * )",
		strings.Repeat("K", MaxKeyLength+1) + "(a)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseInstruction(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, logixerrors.ErrFormat)
		})
	}
}

func TestEqualityIgnoresArguments(t *testing.T) {
	xic := MustInstruction("XIC")
	mine := xic.Of(MustTag("MyTag"))
	other := xic.Of(MustTag("MyOtherTag"))

	assert.True(t, xic.Equal(mine))
	assert.True(t, mine.Equal(MustInstruction("xic")))
	assert.True(t, mine.EqualKey("Xic"))
	assert.False(t, mine.EqualKey("XIO"))

	assert.True(t, mine.IsEquivalent(xic.Of(MustTag("MyTag"))))
	assert.True(t, mine.IsEquivalent(MustInstruction("xic").Of(MustTag("mytag"))))
	assert.False(t, mine.IsEquivalent(other))
	assert.False(t, xic.IsEquivalent(mine))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		key         string
		conditional bool
		routine     bool
		task        bool
	}{
		{"XIC", true, false, false},
		{"les", true, false, false},
		{"OTE", false, false, false},
		{"JSR", false, true, false},
		{"FOR", false, true, false},
		{"EVENT", false, false, true},
	}
	for _, tt := range tests {
		inst := MustInstruction(tt.key)
		assert.Equal(t, tt.conditional, inst.IsConditional(), tt.key)
		assert.Equal(t, tt.routine, inst.CallsRoutine(), tt.key)
		assert.Equal(t, tt.task, inst.CallsTask(), tt.key)
	}

	assert.True(t, MustInstruction("ton").IsKnown())
	assert.False(t, MustInstruction("MyAoi").IsKnown())
}

func TestParseRoundTrip(t *testing.T) {
	argSets := [][]Argument{
		nil,
		{MustTag("Tag_1")},
		{MustTag("Timer"), FromImmediate(int32(5000)), FromImmediate(int32(0))},
		{MustTag("Arr[1,3].3"), Unknown(), FromImmediate(float32(1.25))},
		{FromImmediate(uint8(7)), MustTag("Program:Main.Value")},
	}

	for _, inst := range Known() {
		for _, args := range argSets {
			built := inst.Of(args...)
			parsed, err := ParseInstruction(built.Text())
			require.NoError(t, err, built.Text())
			assert.True(t, parsed.Equal(built))
			assert.Len(t, parsed.Arguments(), len(args))
			assert.True(t, parsed.IsEquivalent(built), "%s reparsed as %s", built, parsed)

			again, err := ParseInstruction(parsed.Text())
			require.NoError(t, err)
			assert.True(t, again.IsEquivalent(parsed))
		}
	}
}

func TestInstructionNeutral(t *testing.T) {
	inst := MustParseInstruction("OTE(Out)")
	assert.Equal(t, "OTE(Out);", inst.Neutral().String())
	assert.Panics(t, func() { MustParseInstruction("OTE(") })
}
