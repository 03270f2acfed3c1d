package jsonish

import (
	"fmt"
	"sort"
	"strings"
)

// Value is the intermediate, schema-agnostic parse tree produced by the
// extraction cascade (§3.1). It is a closed tagged union simulated as a
// Go interface with a fixed set of implementations, each private to this
// package's construction helpers.
type Value interface {
	isValue()
}

// NullValue is the JSON null literal.
type NullValue struct{}

// BoolValue is a boolean literal.
type BoolValue struct{ B bool }

// NumberValue is a numeric literal. Raw preserves the original digit
// sequence so the coercer can apply its own tolerant numeric grammar
// (fractions, currency, digit-group commas) without re-rendering.
type NumberValue struct {
	Raw        string
	Completion CompletionState
}

// StringValue is a string literal.
type StringValue struct {
	S          string
	Completion CompletionState
}

// ArrayValue is an ordered sequence of items.
type ArrayValue struct {
	Items      []Value
	Completion CompletionState
}

// ObjectEntry is one key/value pair of an ObjectValue. Duplicate keys are
// permitted; all are preserved for diagnostics (§3.5 invariant 1).
type ObjectEntry struct {
	Key   string
	Value Value
}

// ObjectValue is an ordered sequence of entries. Insertion order is
// significant: it is used for ambiguity resolution and reporting.
type ObjectValue struct {
	Entries    []ObjectEntry
	Completion CompletionState
}

// AnyOfValue holds multiple structurally valid interpretations of the same
// input; the coercer picks one via the schema (§4.9). Variants is always
// non-empty.
type AnyOfValue struct {
	Variants       []Value
	OriginalString string
}

// MarkdownValue is JSON extracted from a fenced code block.
type MarkdownValue struct {
	Lang  string // empty when no language hint was present
	Inner Value
}

// FixKind enumerates the structural corrections the fixing state machine
// (§4.4) may apply to a top-level value it produced.
type FixKind string

const (
	FixMissingComma        FixKind = "missing_comma"
	FixMissingCloseBrace   FixKind = "missing_close_brace"
	FixMissingCloseBracket FixKind = "missing_close_bracket"
	FixMissingCloseQuote   FixKind = "missing_close_quote"
	FixTrailingComma       FixKind = "trailing_comma"
	FixMixedQuotes         FixKind = "mixed_quotes"
	FixUnquotedKey         FixKind = "unquoted_key"
	FixDedent              FixKind = "dedent"
	FixGarbagePrefix       FixKind = "garbage_prefix"
)

// FixSet is the set of corrections applied while building a FixedValue.
type FixSet map[FixKind]struct{}

// NewFixSet builds a FixSet from individual kinds.
func NewFixSet(kinds ...FixKind) FixSet {
	s := make(FixSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Add records a correction.
func (s FixSet) Add(k FixKind) { s[k] = struct{}{} }

// Has reports whether a correction was applied.
func (s FixSet) Has(k FixKind) bool { _, ok := s[k]; return ok }

// Union returns a new set containing the kinds of both sets.
func (s FixSet) Union(other FixSet) FixSet {
	out := make(FixSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

func (s FixSet) sortedKinds() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// FixedValue is a value produced with structural corrections; Fixes
// records which corrections were applied.
type FixedValue struct {
	Inner Value
	Fixes FixSet
}

func (*NullValue) isValue()     {}
func (*BoolValue) isValue()     {}
func (*NumberValue) isValue()   {}
func (*StringValue) isValue()   {}
func (*ArrayValue) isValue()    {}
func (*ObjectValue) isValue()   {}
func (*AnyOfValue) isValue()    {}
func (*MarkdownValue) isValue() {}
func (*FixedValue) isValue()    {}

// Null is the canonical null Value.
var Null = &NullValue{}

// NewBool builds a complete boolean Value.
func NewBool(b bool) *BoolValue { return &BoolValue{B: b} }

// NewString builds a complete string Value.
func NewString(s string) *StringValue { return &StringValue{S: s, Completion: Complete} }

// NewNumber builds a complete numeric Value from its raw text.
func NewNumber(raw string) *NumberValue { return &NumberValue{Raw: raw, Completion: Complete} }

// NewArray builds a complete array Value.
func NewArray(items ...Value) *ArrayValue { return &ArrayValue{Items: items, Completion: Complete} }

// NewObject builds a complete object Value.
func NewObject(entries ...ObjectEntry) *ObjectValue {
	return &ObjectValue{Entries: entries, Completion: Complete}
}

// completionOf returns the completion state of any Value, treating scalar
// kinds without one (Null, Bool) as always Complete and unwrapping the
// wrapper kinds (Fixed, Markdown) to their inner node.
func completionOf(v Value) CompletionState {
	switch n := v.(type) {
	case *NullValue, *BoolValue:
		return Complete
	case *NumberValue:
		return n.Completion
	case *StringValue:
		return n.Completion
	case *ArrayValue:
		return n.Completion
	case *ObjectValue:
		return n.Completion
	case *FixedValue:
		return completionOf(n.Inner)
	case *MarkdownValue:
		return completionOf(n.Inner)
	case *AnyOfValue:
		return Complete
	default:
		return Complete
	}
}

// Unwrap strips Fixed/Markdown wrapper layers, returning the underlying
// structural value and the accumulated fix set.
func Unwrap(v Value) (Value, FixSet) {
	fixes := FixSet{}
	for {
		switch n := v.(type) {
		case *FixedValue:
			fixes = fixes.Union(n.Fixes)
			v = n.Inner
		case *MarkdownValue:
			v = n.Inner
		default:
			return v, fixes
		}
	}
}

// ToPlain produces a lossy, language-native dynamic value from a Value
// tree, for diagnostics and tests (§4.1). The String coercer also uses it,
// through canonicalText, to render a non-string Value as JSON text.
func ToPlain(v Value) any {
	switch n := v.(type) {
	case *NullValue, nil:
		return nil
	case *BoolValue:
		return n.B
	case *NumberValue:
		return n.Raw
	case *StringValue:
		return n.S
	case *ArrayValue:
		out := make([]any, len(n.Items))
		for i, it := range n.Items {
			out[i] = ToPlain(it)
		}
		return out
	case *ObjectValue:
		out := make(map[string]any, len(n.Entries))
		for _, e := range n.Entries {
			out[e.Key] = ToPlain(e.Value)
		}
		return out
	case *AnyOfValue:
		variants := make([]any, len(n.Variants))
		for i, variant := range n.Variants {
			variants[i] = ToPlain(variant)
		}
		return variants
	case *MarkdownValue:
		return ToPlain(n.Inner)
	case *FixedValue:
		return ToPlain(n.Inner)
	default:
		return nil
	}
}

// Equal reports structural equality between two Value trees, ignoring
// completion state (used by tests, not by the coercer).
func Equal(a, b Value) bool {
	a, _ = Unwrap(a)
	b, _ = Unwrap(b)
	switch x := a.(type) {
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	case *BoolValue:
		y, ok := b.(*BoolValue)
		return ok && x.B == y.B
	case *NumberValue:
		y, ok := b.(*NumberValue)
		return ok && x.Raw == y.Raw
	case *StringValue:
		y, ok := b.(*StringValue)
		return ok && x.S == y.S
	case *ArrayValue:
		y, ok := b.(*ArrayValue)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *ObjectValue:
		y, ok := b.(*ObjectValue)
		if !ok || len(x.Entries) != len(y.Entries) {
			return false
		}
		for i := range x.Entries {
			if x.Entries[i].Key != y.Entries[i].Key || !Equal(x.Entries[i].Value, y.Entries[i].Value) {
				return false
			}
		}
		return true
	case *AnyOfValue:
		y, ok := b.(*AnyOfValue)
		if !ok || len(x.Variants) != len(y.Variants) {
			return false
		}
		for i := range x.Variants {
			if !Equal(x.Variants[i], y.Variants[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// DebugString renders a Value tree for error messages and test failures.
func DebugString(v Value) string {
	var b strings.Builder
	writeDebug(&b, v)
	return b.String()
}

func writeDebug(b *strings.Builder, v Value) {
	switch n := v.(type) {
	case *NullValue:
		b.WriteString("null")
	case *BoolValue:
		fmt.Fprintf(b, "%v", n.B)
	case *NumberValue:
		b.WriteString(n.Raw)
	case *StringValue:
		fmt.Fprintf(b, "%q", n.S)
	case *ArrayValue:
		b.WriteByte('[')
		for i, it := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, it)
		}
		b.WriteByte(']')
	case *ObjectValue:
		b.WriteByte('{')
		for i, e := range n.Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q: ", e.Key)
			writeDebug(b, e.Value)
		}
		b.WriteByte('}')
	case *AnyOfValue:
		b.WriteString("anyOf(")
		for i, variant := range n.Variants {
			if i > 0 {
				b.WriteString(" | ")
			}
			writeDebug(b, variant)
		}
		b.WriteByte(')')
	case *MarkdownValue:
		fmt.Fprintf(b, "markdown(%s: ", n.Lang)
		writeDebug(b, n.Inner)
		b.WriteByte(')')
	case *FixedValue:
		b.WriteString("fixed(")
		writeDebug(b, n.Inner)
		if len(n.Fixes) > 0 {
			fmt.Fprintf(b, ", fixes=%v", n.Fixes.sortedKinds())
		}
		b.WriteByte(')')
	default:
		b.WriteString("<nil>")
	}
}
