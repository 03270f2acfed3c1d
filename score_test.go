package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_StrictInputScoresZero(t *testing.T) {
	schema := Object("Point", F("x", Int()), F("y", Int()))
	tv, err := Coerce(newSess(), schema, NewObject(
		ObjectEntry{Key: "x", Value: NewNumber("1")},
		ObjectEntry{Key: "y", Value: NewNumber("2")},
	))
	require.NoError(t, err)
	assert.Equal(t, 0, Score(tv))
}

func TestScore_NestedErrorDominatesViaMultiplier(t *testing.T) {
	schema := Array(Int())
	withOneBadItem := NewArray(NewNumber("1"), NewString("nope"), NewNumber("3"))
	tv, err := Coerce(newSess(), schema, withOneBadItem)
	require.NoError(t, err)
	assert.Greater(t, Score(tv), 100, "a single ArrayItemParseError should dominate the score")
}

func TestRefined_AssertAborts(t *testing.T) {
	schema := Refined(Int(), "must be even", func(tv TypedValue) bool {
		return tv.(*TypedInt).Value%2 == 0
	})
	_, err := Coerce(newSess(), schema, NewNumber("3"))
	assert.ErrorIs(t, err, ErrConstraintFailed)
}

func TestRefinedCheck_WarnsButSucceeds(t *testing.T) {
	schema := RefinedCheck(Int(), "should be even", func(tv TypedValue) bool {
		return tv.(*TypedInt).Value%2 == 0
	})
	tv, err := Coerce(newSess(), schema, NewNumber("3"))
	require.NoError(t, err)
	assert.True(t, tv.Flags().Has(FlagConstraintWarning))
}
