package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBalanced(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"XIC(a)", true},
		{"[XIC(a),[XIO(b),XIC(c)]]OTE(d)", true},
		{"MOV(Arr[Idx[1]],Dest)", true},
		{"(", false},
		{"]", false},
		{"([)]", false},
		{"XIC(a", false},
		{"XIC(a))", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsBalanced(tt.input), tt.input)
	}
}

func TestMatchGroup(t *testing.T) {
	assert.Equal(t, 5, matchGroup("XIC(a)OTE(b)", 3, '(', ')'))
	assert.Equal(t, 9, matchGroup("F(a(b)(c))", 1, '(', ')'))
	assert.Equal(t, -1, matchGroup("F(a(b)", 1, '(', ')'))
	assert.Equal(t, 6, matchGroup("[a,[b]]", 0, '[', ']'))
	assert.Panics(t, func() { matchGroup("abc", 0, '(', ')') })
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{"Arr[1,2],F(x,y),z", []string{"Arr[1,2]", "F(x,y)", "z"}},
		{",", []string{"", ""}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitTopLevel(tt.input), tt.input)
	}
}

func TestAtTokenStart(t *testing.T) {
	s := "16#FF a.b _x $N c"
	assert.False(t, atTokenStart(s, 3), "radix digits")
	assert.True(t, atTokenStart(s, 6))
	assert.False(t, atTokenStart(s, 8), "member after dot")
	assert.True(t, atTokenStart(s, 10))
	assert.False(t, atTokenStart(s, 14), "string escape")
	assert.True(t, atTokenStart(s, 16))
}

func TestSkipQuoted(t *testing.T) {
	s := "'ab$'c'd"
	assert.Equal(t, 7, skipQuoted(s, 0))
	assert.Equal(t, 4, skipQuoted(`"abc`, 0))
}

func TestWalkCallsSkipsUnclosed(t *testing.T) {
	var got []string
	walkCalls("XIC(a OTE(b)", func(unit string) bool {
		got = append(got, unit)
		return true
	})
	assert.Equal(t, []string{"OTE(b)"}, got)
}

func TestWalkCallsIgnoresQuotedText(t *testing.T) {
	var got []string
	walkCalls("MSG(x) 'XIC(a)' OTE(b)", func(unit string) bool {
		got = append(got, unit)
		return true
	})
	assert.Equal(t, []string{"MSG(x)", "OTE(b)"}, got)
}

func TestIsRungShaped(t *testing.T) {
	assert.True(t, isRungShaped(""))
	assert.True(t, isRungShaped("XIC(a)OTE(b)"))
	assert.True(t, isRungShaped("[XIC(a) ,XIO(b)]OTE(c)"))
	assert.True(t, isRungShaped("[,XIC(a)]OTE(c)"))
	assert.False(t, isRungShaped("a := b"))
	assert.False(t, isRungShaped("XIC(a"))
	assert.False(t, isRungShaped("[XIC(a),b]"))
}

func TestKeywordsList(t *testing.T) {
	words := Keywords()
	assert.IsIncreasing(t, words)
	assert.Contains(t, words, "END_IF")
	assert.True(t, IsKeyword("elsif"))
	assert.False(t, IsKeyword("Motor"))
}
