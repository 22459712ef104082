package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultOf_Arithmetic(t *testing.T) {
	cases := []struct {
		name        string
		op          Op
		left, right Type
		want        Type
	}{
		{"int+int", Add, Int, Int, Int},
		{"int+float promotes", Add, Int, Float, Float},
		{"float+int promotes", Add, Float, Int, Float},
		{"float*float", Mul, Float, Float, Float},
		{"int-int", Sub, Int, Int, Int},
		{"int/int", Div, Int, Int, Int},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResultOf(tc.op, tc.left, tc.right)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResultOf_BoolArithmeticIsInvalid(t *testing.T) {
	_, err := ResultOf(Add, Bool, Int)
	require.Error(t, err)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestResultOf_Comparisons(t *testing.T) {
	got, err := ResultOf(Gt, Int, Float)
	require.NoError(t, err)
	assert.Equal(t, Bool, got)

	got, err = ResultOf(Eq, Bool, Bool)
	require.NoError(t, err)
	assert.Equal(t, Bool, got)

	_, err = ResultOf(Gt, Bool, Bool)
	require.Error(t, err, "> is not defined over (Bool, Bool)")
}

func TestIsAssignable(t *testing.T) {
	assert.True(t, IsAssignable(Int, Int))
	assert.True(t, IsAssignable(Float, Int), "int widens to float")
	assert.True(t, IsAssignable(Bool, Bool))
	assert.False(t, IsAssignable(Int, Float), "float must not narrow to int")
	assert.False(t, IsAssignable(Bool, Int))
	assert.False(t, IsAssignable(Int, Bool))
}
