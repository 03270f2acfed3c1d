package jsonish

// SchemaKind enumerates the closed set of schema node kinds the coercer
// dispatches on. The coercer never inspects a Schema by any other means.
type SchemaKind string

const (
	KindString   SchemaKind = "string"
	KindInt      SchemaKind = "int"
	KindFloat    SchemaKind = "float"
	KindBool     SchemaKind = "bool"
	KindNull     SchemaKind = "null"
	KindLiteral  SchemaKind = "literal"
	KindEnum     SchemaKind = "enum"
	KindArray    SchemaKind = "array"
	KindMap      SchemaKind = "map"
	KindObject   SchemaKind = "object"
	KindUnion    SchemaKind = "union"
	KindOptional SchemaKind = "optional"
	KindNullable SchemaKind = "nullable"
	KindDefault  SchemaKind = "default"
	KindLazy     SchemaKind = "lazy"
	KindRefined  SchemaKind = "refined"
)

// RefineSeverity controls whether a failing Refined predicate aborts
// coercion (Assert) or only annotates the result (Check). See §4.10.
type RefineSeverity int

const (
	Assert RefineSeverity = iota
	Check
)

// Field is a named member of an Object schema. A field is treated as
// required unless its own Schema is Optional, Nullable or Default -
// those kinds already supply a fallback when the field is absent.
type Field struct {
	Name   string
	Schema *Schema
}

// F declares an object field.
func F(name string, schema *Schema) Field {
	return Field{Name: name, Schema: schema}
}

// Keyword configures a scalar Schema at construction time, mirroring the
// functional-option style the property/validation keywords use elsewhere
// in this package's ancestry.
type Keyword func(*Schema)

// Schema is the abstract, closed tagged union of schema nodes the coercer
// consumes. Exactly one group of fields is meaningful for a given Kind.
type Schema struct {
	kind SchemaKind
	name string // Object class name / Enum name, used in TypedValue and diagnostics

	// scalar refinements (string/int/float)
	min    *float64
	max    *float64
	minLen *int
	maxLen *int

	// KindLiteral
	literal any

	// KindEnum
	variants []string

	// KindArray
	element *Schema

	// KindMap
	mapKey   *Schema
	mapValue *Schema

	// KindObject
	fields     []Field
	fieldIndex map[string]*Schema

	// KindUnion
	options []*Schema

	// KindOptional / KindNullable / KindDefault / KindRefined
	inner *Schema

	// KindDefault
	defaultValue any
	defaultThunk func() (any, error)

	// KindLazy
	lazyThunk func() *Schema

	// KindRefined
	refineMessage   string
	refineSeverity  RefineSeverity
	refinePredicate func(TypedValue) bool
}

// Kind returns the schema node's discriminant.
func (s *Schema) Kind() SchemaKind { return s.kind }

// Name returns the declared name of an Object or Enum schema.
func (s *Schema) Name() string { return s.name }

// String creates a string schema.
func String(keywords ...Keyword) *Schema {
	s := &Schema{kind: KindString}
	applyKeywords(s, keywords)
	return s
}

// Int creates an integer schema.
func Int(keywords ...Keyword) *Schema {
	s := &Schema{kind: KindInt}
	applyKeywords(s, keywords)
	return s
}

// Float creates a floating point number schema.
func Float(keywords ...Keyword) *Schema {
	s := &Schema{kind: KindFloat}
	applyKeywords(s, keywords)
	return s
}

// Bool creates a boolean schema.
func Bool() *Schema { return &Schema{kind: KindBool} }

// Null creates a null schema.
func Null() *Schema { return &Schema{kind: KindNull} }

// Literal creates a schema that matches exactly one value.
func Literal(value any) *Schema {
	return &Schema{kind: KindLiteral, literal: value}
}

// NamedEnum creates an enum schema with a diagnostic name (used in error
// paths and TypedValue.Enum rendering).
func NamedEnum(name string, variants ...string) *Schema {
	return &Schema{kind: KindEnum, name: name, variants: variants}
}

// Enum creates an anonymous enum schema.
func Enum(variants ...string) *Schema {
	return NamedEnum("", variants...)
}

// Array creates an array schema over the given element schema.
func Array(element *Schema) *Schema {
	return &Schema{kind: KindArray, element: element}
}

// Map creates a map/record schema.
func Map(key, value *Schema) *Schema {
	return &Schema{kind: KindMap, mapKey: key, mapValue: value}
}

// Object creates an object/class schema with the given named fields, in
// declaration order.
func Object(name string, fields ...Field) *Schema {
	index := make(map[string]*Schema, len(fields))
	for _, f := range fields {
		index[f.Name] = f.Schema
	}
	return &Schema{kind: KindObject, name: name, fields: fields, fieldIndex: index}
}

// Fields returns an object schema's declared fields, in declaration order.
func (s *Schema) Fields() []Field { return s.fields }

// FieldByName looks up a declared field's schema, case-sensitively.
func (s *Schema) FieldByName(name string) (*Schema, bool) {
	sch, ok := s.fieldIndex[name]
	return sch, ok
}

// Union creates a schema that accepts any one of the given options, tried
// in declaration order during resolution (§4.9).
func Union(options ...*Schema) *Schema {
	return &Schema{kind: KindUnion, options: options}
}

// Optional marks an object field (or any schema) as absent-tolerant: a
// missing value resolves with no error and no DefaultFromNoValue flag.
func Optional(inner *Schema) *Schema {
	return &Schema{kind: KindOptional, inner: inner}
}

// Nullable marks a schema as accepting an explicit null in addition to
// its inner shape.
func Nullable(inner *Schema) *Schema {
	return &Schema{kind: KindNullable, inner: inner}
}

// Default supplies a fallback value used when the field is absent; the
// coercer flags DefaultFromNoValue when it is applied.
func Default(inner *Schema, value any) *Schema {
	return &Schema{kind: KindDefault, inner: inner, defaultValue: value}
}

// DefaultFunc supplies a fallback computed lazily (e.g. a timestamp or a
// generated identifier) when the field is absent.
func DefaultFunc(inner *Schema, thunk func() (any, error)) *Schema {
	return &Schema{kind: KindDefault, inner: inner, defaultThunk: thunk}
}

// Lazy wraps a schema thunk so recursive schemas can reference themselves.
// The returned *Schema's address is itself the stable identity used for
// per-session memoisation and cycle detection (§4.9, §9) - callers build
// recursive schemas by capturing the returned value in the thunk's closure.
func Lazy(thunk func() *Schema) *Schema {
	return &Schema{kind: KindLazy, lazyThunk: thunk}
}

// Refined attaches a hard (asserting) post-coercion predicate.
func Refined(inner *Schema, message string, predicate func(TypedValue) bool) *Schema {
	return &Schema{kind: KindRefined, inner: inner, refineMessage: message, refinePredicate: predicate, refineSeverity: Assert}
}

// RefinedCheck attaches a soft (warning-only) post-coercion predicate.
func RefinedCheck(inner *Schema, message string, predicate func(TypedValue) bool) *Schema {
	return &Schema{kind: KindRefined, inner: inner, refineMessage: message, refinePredicate: predicate, refineSeverity: Check}
}

// Min sets an inclusive lower bound on a numeric schema.
func Min(n float64) Keyword { return func(s *Schema) { s.min = &n } }

// Max sets an inclusive upper bound on a numeric schema.
func Max(n float64) Keyword { return func(s *Schema) { s.max = &n } }

// MinLen sets a minimum rune length on a string schema.
func MinLen(n int) Keyword { return func(s *Schema) { s.minLen = &n } }

// MaxLen sets a maximum rune length on a string schema.
func MaxLen(n int) Keyword { return func(s *Schema) { s.maxLen = &n } }

func applyKeywords(s *Schema, keywords []Keyword) {
	for _, k := range keywords {
		k(s)
	}
}
