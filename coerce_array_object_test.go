package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceArray_WrapsScalarAsSingleElement(t *testing.T) {
	tv, err := Coerce(newSess(), Array(Int()), NewNumber("7"))
	require.NoError(t, err)
	list := tv.(*TypedList)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(7), list.Items[0].(*TypedInt).Value)
	assert.True(t, list.Flags().Has(FlagSingleToArray))
}

func TestCoerceArray_PerItemFailuresAreFlaggedNotFatal(t *testing.T) {
	schema := Array(Int())
	input := NewArray(NewNumber("1"), NewString("not a number"), NewNumber("3"))

	tv, err := Coerce(newSess(), schema, input)
	require.NoError(t, err)
	list := tv.(*TypedList)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 1, list.Flags().Count(FlagArrayItemParseError))
}

func TestCoerceArray_AllItemsFailingIsFatal(t *testing.T) {
	schema := Array(Int())
	input := NewArray(NewString("a"), NewString("b"))

	_, err := Coerce(newSess(), schema, input)
	assert.Error(t, err)
}

func TestCoerceObject_MissingRequiredFieldFails(t *testing.T) {
	schema := Object("User", F("name", String()))
	_, err := Coerce(newSess(), schema, NewObject())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}

func TestCoerceObject_OptionalAndDefaultFieldsFillIn(t *testing.T) {
	schema := Object("User",
		F("name", String()),
		F("nickname", Optional(String())),
		F("role", Default(String(), "member")),
	)
	tv, err := Coerce(newSess(), schema, NewObject(ObjectEntry{Key: "name", Value: NewString("Ada")}))
	require.NoError(t, err)
	class := tv.(*TypedClass)

	_, hasNickname := class.FieldByName("nickname")
	assert.False(t, hasNickname)

	role, ok := class.FieldByName("role")
	require.True(t, ok)
	assert.Equal(t, "member", role.(*TypedString).Value)
	assert.True(t, role.Flags().Has(FlagDefaultFromNoValue))
}

func TestCoerceObject_ExtraKeysAreFlaggedNotRejected(t *testing.T) {
	schema := Object("User", F("name", String()))
	input := NewObject(
		ObjectEntry{Key: "name", Value: NewString("Ada")},
		ObjectEntry{Key: "extra", Value: NewString("ignored")},
	)
	tv, err := Coerce(newSess(), schema, input)
	require.NoError(t, err)
	assert.True(t, tv.Flags().Has(FlagExtraKey))
}

func TestCoerceObject_CaseInsensitiveFieldFallback(t *testing.T) {
	schema := Object("User", F("Name", String()))
	input := NewObject(ObjectEntry{Key: "name", Value: NewString("Ada")})
	tv, err := Coerce(newSess(), schema, input)
	require.NoError(t, err)
	name, ok := tv.(*TypedClass).FieldByName("Name")
	require.True(t, ok)
	assert.Equal(t, "Ada", name.(*TypedString).Value)
}

func TestCoerceObject_StringReparsesAsJSON(t *testing.T) {
	schema := Object("User", F("name", String()))
	tv, err := Coerce(newSess(), schema, NewString(`{"name": "Ada"}`))
	require.NoError(t, err)
	name, _ := tv.(*TypedClass).FieldByName("name")
	assert.Equal(t, "Ada", name.(*TypedString).Value)
}

func TestCoerceMap_FromObject(t *testing.T) {
	schema := Map(String(), Int())
	input := NewObject(
		ObjectEntry{Key: "a", Value: NewNumber("1")},
		ObjectEntry{Key: "b", Value: NewNumber("2")},
	)
	tv, err := Coerce(newSess(), schema, input)
	require.NoError(t, err)
	m := tv.(*TypedMap)
	assert.Len(t, m.Entries, 2)
}
