package atomic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsKeepNativeType(t *testing.T) {
	tests := []struct {
		value Value
		typ   Type
		str   string
	}{
		{NewBool(true), Bool, "1"},
		{NewSint(-8), Sint, "-8"},
		{NewInt(300), Int, "300"},
		{NewDint(-70000), Dint, "-70000"},
		{NewLint(math.MaxInt64), Lint, "9223372036854775807"},
		{NewUsint(200), Usint, "200"},
		{NewUint(60000), Uint, "60000"},
		{NewUdint(4000000000), Udint, "4000000000"},
		{NewUlint(math.MaxUint64), Ulint, "18446744073709551615"},
		{NewReal(1.5), Real, "1.5"},
		{NewLreal(-2), Lreal, "-2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.value.Type())
			assert.Equal(t, tt.str, tt.value.String())
			assert.True(t, tt.value.IsValid())
		})
	}
}

func TestEqualComparesTypeAndBits(t *testing.T) {
	assert.True(t, NewDint(5).Equal(NewDint(5)))
	assert.False(t, NewDint(5).Equal(NewInt(5)), "same number, different type")
	assert.False(t, NewUsint(5).Equal(NewSint(5)))
	assert.True(t, NewReal(float32(math.NaN())).Equal(NewReal(float32(math.NaN()))))
}

func TestAccessors(t *testing.T) {
	assert.Equal(t, int64(-3), NewSint(-3).Int64())
	assert.Equal(t, int64(250), NewUsint(250).Int64())
	assert.Equal(t, 2.5, NewLreal(2.5).Float64())
	assert.True(t, NewUdint(1).Bool())
	assert.False(t, NewReal(0).Bool())
	assert.False(t, Value{}.IsValid())
	assert.Equal(t, "?", Value{}.String())
}
