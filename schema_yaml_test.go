package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchemaYAML_BuildsObjectSchema(t *testing.T) {
	doc := []byte(`
kind: object
name: User
fields:
  - name: name
    schema:
      kind: string
  - name: age
    schema:
      kind: int
      min: 0
      max: 150
`)
	schema, err := LoadSchemaYAML(doc)
	require.NoError(t, err)
	assert.Equal(t, KindObject, schema.Kind())
	assert.Equal(t, "User", schema.Name())

	ageSchema, ok := schema.FieldByName("age")
	require.True(t, ok)
	assert.Equal(t, KindInt, ageSchema.Kind())

	tv, err := Coerce(newSess(), schema, NewObject(
		ObjectEntry{Key: "name", Value: NewString("Ada")},
		ObjectEntry{Key: "age", Value: NewNumber("30")},
	))
	require.NoError(t, err)
	class := tv.(*TypedClass)
	age, _ := class.FieldByName("age")
	assert.Equal(t, int64(30), age.(*TypedInt).Value)
}

func TestLoadSchemaYAML_UnknownKindFails(t *testing.T) {
	_, err := LoadSchemaYAML([]byte("kind: nonsense\n"))
	assert.Error(t, err)
}
