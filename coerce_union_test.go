package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnion_StrictWinnerPreferredOverCoercedOption(t *testing.T) {
	schema := Union(Int(), String())
	tv, err := Coerce(newSess(), schema, NewNumber("42"))
	require.NoError(t, err)
	_, isInt := tv.(*TypedInt)
	assert.True(t, isInt, "an exact integer input should resolve to the Int option, not String")
}

func TestUnion_FallsBackToBestCoercedOption(t *testing.T) {
	schema := Union(Bool(), String())
	tv, err := Coerce(newSess(), schema, NewString("42"))
	require.NoError(t, err)
	_, isStr := tv.(*TypedString)
	assert.True(t, isStr)
}

func TestUnion_DeterministicOnRepeatedCalls(t *testing.T) {
	schema := Union(Int(), Float())
	v := NewNumber("3.0")

	first, err1 := Coerce(newSess(), schema, v)
	second, err2 := Coerce(newSess(), schema, v)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, ToPlainTyped(first), ToPlainTyped(second))
}

func TestUnion_AnyOfVariantsPickBestScoringPair(t *testing.T) {
	schema := Union(Int(), String())
	anyOf := &AnyOfValue{Variants: []Value{NewString("not a number"), NewNumber("7")}}

	tv, err := Coerce(newSess(), schema, anyOf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), tv.(*TypedInt).Value)
}

func TestUnion_CacheIsolatedPerSession(t *testing.T) {
	schema := Union(Int(), String())
	v := NewNumber("5")

	sessA := newSess()
	a, err := Coerce(sessA, schema, v)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.(*TypedInt).Value)

	// A fresh session must not see sessA's cache entries: its own
	// unionCache map starts empty, so resolution runs independently.
	sessB := newSess()
	assert.Empty(t, sessB.unionCache)
	b, err := Coerce(sessB, schema, v)
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.(*TypedInt).Value)
}

func TestAnyOf_NonUnionSchemaPicksBestVariant(t *testing.T) {
	schema := Object("Item", F("id", Int()))
	anyOf := &AnyOfValue{Variants: []Value{
		NewObject(ObjectEntry{Key: "id", Value: NewString("not an int")}),
		NewObject(ObjectEntry{Key: "id", Value: NewNumber("9")}),
	}}

	tv, err := Coerce(newSess(), schema, anyOf)
	require.NoError(t, err)
	class := tv.(*TypedClass)
	id, _ := class.FieldByName("id")
	assert.Equal(t, int64(9), id.(*TypedInt).Value)
}
