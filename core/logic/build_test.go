package logic

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilders(t *testing.T) {
	xic := MustInstruction("XIC").Of(MustTag("a"))
	xio := MustInstruction("XIO").Of(MustTag("b"))
	ote := MustInstruction("OTE").Of(MustTag("c"))

	assert.Equal(t, "XIC(a)OTE(c);", Series(xic, ote).String())
	assert.Equal(t, ";", Series().String())

	branch := Branch(Series(xic), Series(xio))
	assert.Equal(t, "[XIC(a),XIO(b)];", branch.String())

	rung := Concat(branch, Series(ote))
	assert.Equal(t, "[XIC(a),XIO(b)]OTE(c);", rung.String())
	assert.True(t, rung.IsRung())
	assert.Len(t, slices.Collect(rung.Instructions()), 3)

	assert.Equal(t, "XIC(a);OTE(c);", Join(xic, ote).String())
	assert.True(t, Join().IsEmpty())
}
