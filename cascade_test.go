package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_StrictJSONIdentity(t *testing.T) {
	schema := Object("User", F("name", String()), F("age", Int()))

	tv, err := Parse(`{"name": "Ada", "age": 30}`, schema)
	require.NoError(t, err)

	class, ok := tv.(*TypedClass)
	require.True(t, ok)
	assert.Equal(t, 0, Score(tv), "strict JSON input should score zero")

	name, ok := class.FieldByName("name")
	require.True(t, ok)
	assert.Equal(t, "Ada", name.(*TypedString).Value)
}

func TestParse_MarkdownFence(t *testing.T) {
	schema := Object("Point", F("x", Int()), F("y", Int()))
	input := "Here you go:\n```json\n{\"x\": 1, \"y\": 2}\n```\n"

	tv, err := Parse(input, schema)
	require.NoError(t, err)
	class := tv.(*TypedClass)
	x, _ := class.FieldByName("x")
	assert.Equal(t, int64(1), x.(*TypedInt).Value)
}

func TestParse_MultiJSONPicksBestFit(t *testing.T) {
	schema := Object("Item", F("id", Int()))
	input := `some preamble {"id": 1} and also {"id": "two"}`

	tv, err := Parse(input, schema)
	require.NoError(t, err)
	class := tv.(*TypedClass)
	id, _ := class.FieldByName("id")
	assert.Equal(t, int64(1), id.(*TypedInt).Value)
}

func TestParse_FixingParserRecoversTrailingCommaAndSingleQuotes(t *testing.T) {
	schema := Object("Config", F("name", String()), F("tags", Array(String())))
	input := `{'name': 'demo', 'tags': ['a', 'b',],}`

	tv, err := Parse(input, schema)
	require.NoError(t, err)
	class := tv.(*TypedClass)
	name, _ := class.FieldByName("name")
	assert.Equal(t, "demo", name.(*TypedString).Value)
}

func TestParse_StringSchemaShortCircuitsCascade(t *testing.T) {
	input := `{"not": "really parsed"}`
	tv, err := Parse(input, String())
	require.NoError(t, err)
	assert.Equal(t, input, tv.(*TypedString).Value)
}

func TestParse_IncompleteArrayRejectedByDefault(t *testing.T) {
	schema := Array(Int())
	_, err := Parse(`[1, 2, 3`, schema)
	require.Error(t, err)
}

func TestParse_IncompleteArrayAcceptedWithAllowPartial(t *testing.T) {
	schema := Array(Int())
	opts := DefaultParseOptions()
	opts.AllowPartial = true

	tv, err := Parse(`[1, 2, 3`, schema, opts)
	require.NoError(t, err)
	list := tv.(*TypedList)
	assert.True(t, list.Flags().Has(FlagIncomplete))
}

func TestParse_TruncatedTrailingScalarDropped(t *testing.T) {
	schema := Object("Bag", F("nums", Array(Int())))
	opts := DefaultParseOptions()
	opts.AllowPartial = true

	tv, err := Parse(`{"nums": [1,2`, schema, opts)
	require.NoError(t, err)
	class := tv.(*TypedClass)
	nums, ok := class.FieldByName("nums")
	require.True(t, ok)
	list := nums.(*TypedList)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(1), list.Items[0].(*TypedInt).Value)
}

func TestParse_StrictObjectPreservesKeyOrder(t *testing.T) {
	schema := Map(String(), Int())
	tv, err := Parse(`{"z": 1, "a": 2, "m": 3, "extra1": 4, "extra2": 5}`, schema)
	require.NoError(t, err)
	m := tv.(*TypedMap)
	var keys []string
	for _, e := range m.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"z", "a", "m", "extra1", "extra2"}, keys)
}

func TestDeepComplete_PromotesIncompleteLeaf(t *testing.T) {
	complete := &ArrayValue{Items: []Value{&NumberValue{Raw: "1", Completion: Incomplete}}, Completion: Complete}
	out := deepComplete(complete).(*ArrayValue)
	assert.Equal(t, Complete, completionOf(out.Items[0]))
}
