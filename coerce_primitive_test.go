package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSess() *Session { return NewSession(DefaultParseOptions()) }

func TestCoerceString_ArrayUnwrapIsIdempotent(t *testing.T) {
	sess := newSess()
	single := NewString("hello")
	wrapped := NewArray(single)

	direct, err := Coerce(sess, String(), single)
	require.NoError(t, err)

	fromArray, err := Coerce(newSess(), String(), wrapped)
	require.NoError(t, err)

	assert.Equal(t, direct.(*TypedString).Value, fromArray.(*TypedString).Value)
	assert.True(t, fromArray.Flags().Has(FlagSingleToArray))
}

func TestCoerceEnum_PreservesDeclaredCasing(t *testing.T) {
	schema := NamedEnum("Color", "Red", "Green", "Blue")
	tv, err := Coerce(newSess(), schema, NewString("red"))
	require.NoError(t, err)
	assert.Equal(t, "Red", tv.(*TypedEnum).Variant)
}

func TestCoerceFloat_TolerantGrammar(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"currency prefix", "$1,234.50", 1234.50},
		{"fraction", "3/4", 0.75},
		{"scientific notation", "1.5e2", 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv, err := Coerce(newSess(), Float(), NewString(tt.raw))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, tv.(*TypedFloat).Value, 0.0001)
		})
	}
}

func TestCoerceInt_RoundsAndFlags(t *testing.T) {
	tv, err := Coerce(newSess(), Int(), NewNumber("3.7"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), tv.(*TypedInt).Value)
	assert.True(t, tv.Flags().Has(FlagFloatToInt))
}

func TestCoerceBool_WholeWordDetection(t *testing.T) {
	tv, err := Coerce(newSess(), Bool(), NewString("the answer is true"))
	require.NoError(t, err)
	assert.True(t, tv.(*TypedBool).Value)
}

func TestCoerceBool_AmbiguousBothWordsPresent(t *testing.T) {
	_, err := Coerce(newSess(), Bool(), NewString("true or false"))
	assert.Error(t, err)
}

func TestCheckBounds_RejectsOutOfRange(t *testing.T) {
	schema := Int(Min(0), Max(10))
	_, err := Coerce(newSess(), schema, NewNumber("42"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintFailed)
}

func TestCheckLen_RejectsTooShort(t *testing.T) {
	schema := String(MinLen(3))
	_, err := Coerce(newSess(), schema, NewString("hi"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraintFailed)
}
