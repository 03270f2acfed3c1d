package jsonish

// TypedValue is the schema-projected output of coercion (§3.3): a closed
// tagged union paralleling Value but carrying schema identity and flags.
// Every node owns a *DeserializerConditions (possibly empty, never nil).
type TypedValue interface {
	isTypedValue()
	Flags() *DeserializerConditions
}

type typedBase struct {
	conditions *DeserializerConditions
}

func (b typedBase) Flags() *DeserializerConditions {
	if b.conditions == nil {
		return NewConditions()
	}
	return b.conditions
}

// TypedNull is the coerced null value.
type TypedNull struct{ typedBase }

// TypedBool is a coerced boolean.
type TypedBool struct {
	typedBase
	Value bool
}

// TypedInt is a coerced integer.
type TypedInt struct {
	typedBase
	Value int64
}

// TypedFloat is a coerced floating point number.
type TypedFloat struct {
	typedBase
	Value float64
}

// TypedString is a coerced string.
type TypedString struct {
	typedBase
	Value string
}

// TypedEnum is a coerced enum value; Variant is always rendered exactly
// as declared by the schema, regardless of the casing matched in input.
type TypedEnum struct {
	typedBase
	Name    string
	Variant string
}

// TypedLiteral is a coerced literal match.
type TypedLiteral struct {
	typedBase
	Value any
}

// TypedList is a coerced array.
type TypedList struct {
	typedBase
	Items []TypedValue
}

// TypedMapEntry is one key/value pair of a TypedMap.
type TypedMapEntry struct {
	Key   string
	Value TypedValue
}

// TypedMap is a coerced map/record.
type TypedMap struct {
	typedBase
	Entries []TypedMapEntry
}

// TypedField is one resolved field of a TypedClass.
type TypedField struct {
	Name  string
	Value TypedValue
}

// TypedClass is a coerced object.
type TypedClass struct {
	typedBase
	Name   string
	Fields []TypedField
}

func (*TypedNull) isTypedValue()    {}
func (*TypedBool) isTypedValue()    {}
func (*TypedInt) isTypedValue()     {}
func (*TypedFloat) isTypedValue()   {}
func (*TypedString) isTypedValue()  {}
func (*TypedEnum) isTypedValue()    {}
func (*TypedLiteral) isTypedValue() {}
func (*TypedList) isTypedValue()    {}
func (*TypedMap) isTypedValue()     {}
func (*TypedClass) isTypedValue()   {}

func withConditions(v TypedValue, c *DeserializerConditions) TypedValue {
	switch n := v.(type) {
	case *TypedNull:
		n.conditions = c
	case *TypedBool:
		n.conditions = c
	case *TypedInt:
		n.conditions = c
	case *TypedFloat:
		n.conditions = c
	case *TypedString:
		n.conditions = c
	case *TypedEnum:
		n.conditions = c
	case *TypedLiteral:
		n.conditions = c
	case *TypedList:
		n.conditions = c
	case *TypedMap:
		n.conditions = c
	case *TypedClass:
		n.conditions = c
	}
	return v
}

// FieldByName looks up a resolved field on a class value.
func (c *TypedClass) FieldByName(name string) (TypedValue, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// ToPlainTyped produces a lossy, language-native dynamic value from a
// TypedValue tree, for diagnostics and tests.
func ToPlainTyped(v TypedValue) any {
	switch n := v.(type) {
	case nil, *TypedNull:
		return nil
	case *TypedBool:
		return n.Value
	case *TypedInt:
		return n.Value
	case *TypedFloat:
		return n.Value
	case *TypedString:
		return n.Value
	case *TypedEnum:
		return n.Variant
	case *TypedLiteral:
		return n.Value
	case *TypedList:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = ToPlainTyped(it)
		}
		return out
	case *TypedMap:
		out := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			out[e.Key] = ToPlainTyped(e.Value)
		}
		return out
	case *TypedClass:
		out := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			out[f.Name] = ToPlainTyped(f.Value)
		}
		return out
	default:
		return nil
	}
}
