package jsonish

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Coerce is the recursive entry point every coercer (scalar, composite,
// union) calls back into. It dispatches purely on schema.kind, enters the
// session's cycle/depth guard for every node, and lets Refined schemas
// wrap the result of their inner schema (§4.10).
func Coerce(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	if schema == nil {
		return nil, newParseError(sess.scope, ErrInternal, "nil schema")
	}

	if schema.kind != KindUnion {
		if anyOf, ok := v.(*AnyOfValue); ok {
			return coerceAnyOfForSchema(sess, schema, anyOf)
		}
	}

	leave, err := sess.enter(schema, v)
	if err != nil {
		return nil, err
	}
	defer leave()

	switch schema.kind {
	case KindString:
		return coerceString(sess, schema, v)
	case KindInt:
		return coerceInt(sess, schema, v)
	case KindFloat:
		return coerceFloat(sess, schema, v)
	case KindBool:
		return coerceBool(sess, schema, v)
	case KindNull:
		return coerceNull(sess, schema, v)
	case KindLiteral:
		return coerceLiteral(sess, schema, v)
	case KindEnum:
		return coerceEnum(sess, schema, v)
	case KindArray:
		return coerceArray(sess, schema, v)
	case KindMap:
		return coerceMap(sess, schema, v)
	case KindObject:
		return coerceObject(sess, schema, v)
	case KindUnion:
		return coerceUnion(sess, schema, v)
	case KindOptional:
		return coerceOptional(sess, schema, v)
	case KindNullable:
		return coerceNullable(sess, schema, v)
	case KindDefault:
		return coerceDefault(sess, schema, v)
	case KindLazy:
		resolved := sess.resolveLazy(schema)
		return Coerce(sess, resolved, v)
	case KindRefined:
		return coerceRefined(sess, schema, v)
	default:
		return nil, newParseError(sess.scope, ErrInternal, "unknown schema kind "+string(schema.kind))
	}
}

// arrayToSingle implements the array-to-single direction of §4.8: when a
// scalar coercer is handed an Array, it takes element 0 and flags
// FirstOfMultiple when more than one element was present. Returns ok=false
// for an empty array (nothing to take).
func arrayToSingle(arr *ArrayValue) (Value, bool, *DeserializerConditions) {
	c := NewConditions()
	if len(arr.Items) == 0 {
		return nil, false, c
	}
	if len(arr.Items) > 1 {
		c.AddKind(FlagFirstOfMultiple)
	}
	return arr.Items[0], true, c
}

func coerceString(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	switch n := inner.(type) {
	case *StringValue:
		if err := checkLen(schema, n.S); err != nil {
			return nil, newParseError(sess.scope, ErrConstraintFailed, err.Error())
		}
		return withConditions(&TypedString{Value: n.S}, base), nil
	case *ArrayValue:
		if single, ok, c := arrayToSingle(n); ok {
			c.AddKind(FlagSingleToArray)
			out, err := coerceString(sess, schema, single)
			if err != nil {
				return nil, err
			}
			return mergeFlags(out, c.Merge(base)), nil
		}
	}

	canonical, err := canonicalText(inner)
	if err != nil {
		return nil, newParseError(sess.scope, ErrUnexpectedType, err.Error())
	}
	base.AddKind(FlagJsonToString)
	return withConditions(&TypedString{Value: canonical}, base), nil
}

// checkLen enforces a string schema's MinLen/MaxLen keywords (§4.7), in
// runes rather than bytes.
func checkLen(schema *Schema, s string) error {
	n := len([]rune(s))
	if schema.minLen != nil && n < *schema.minLen {
		return fmt.Errorf("string of length %d is shorter than the minimum of %d", n, *schema.minLen)
	}
	if schema.maxLen != nil && n > *schema.maxLen {
		return fmt.Errorf("string of length %d exceeds the maximum of %d", n, *schema.maxLen)
	}
	return nil
}

func canonicalText(v Value) (string, error) {
	plain := ToPlain(v)
	b, err := json.Marshal(plain)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// completionFlag adds Incomplete when v's completion state says its
// closing delimiter was never observed (§3.1, §4.2).
func completionFlag(v Value) *DeserializerConditions {
	c := NewConditions()
	if completionOf(v) == Incomplete {
		c.AddKind(FlagIncomplete)
	}
	return c
}

func mergeFlags(tv TypedValue, extra *DeserializerConditions) TypedValue {
	merged := NewConditions().Merge(tv.Flags()).Merge(extra)
	return withConditions(tv, merged)
}

var numberGrammar = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?$`)

// tolerantNumber parses the §4.7 Int/Float grammar: currency prefix and
// digit-group commas stripped first, then fraction form "a/b", then plain
// scientific notation. Fails unless the whole (trimmed) string is consumed.
func tolerantNumber(raw string) (float64, *DeserializerConditions, bool) {
	c := NewConditions()
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	stripped := strings.ReplaceAll(s, ",", "")
	if stripped != s {
		s = stripped
	}

	if idx := strings.IndexByte(s, '/'); idx > 0 {
		numStr, denStr := s[:idx], s[idx+1:]
		if numberGrammar.MatchString(numStr) && numberGrammar.MatchString(denStr) {
			num := NewRat(numStr)
			den := NewRat(denStr)
			if num != nil && den != nil && den.Sign() != 0 {
				ratio := new(big.Rat).Quo(num.Rat, den.Rat)
				f, _ := ratio.Float64()
				c.AddKind(FlagStringToFloat)
				return f, c, true
			}
		}
		return 0, nil, false
	}

	if !numberGrammar.MatchString(s) {
		return 0, nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, nil, false
	}
	c.AddKind(FlagStringToFloat)
	return f, c, true
}

func coerceFloat(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	switch n := inner.(type) {
	case *NumberValue:
		f, err := strconv.ParseFloat(n.Raw, 64)
		if err != nil {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "malformed number literal "+n.Raw)
		}
		if err := checkBounds(schema, f); err != nil {
			return nil, newParseError(sess.scope, ErrConstraintFailed, err.Error())
		}
		return withConditions(&TypedFloat{Value: f}, base), nil
	case *StringValue:
		f, c, ok := tolerantNumber(n.S)
		if !ok {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "cannot parse as a number: "+n.S)
		}
		if err := checkBounds(schema, f); err != nil {
			return nil, newParseError(sess.scope, ErrConstraintFailed, err.Error())
		}
		return withConditions(&TypedFloat{Value: f}, base.Merge(c)), nil
	case *ArrayValue:
		if single, ok, c := arrayToSingle(n); ok {
			c.AddKind(FlagSingleToArray)
			out, err := coerceFloat(sess, schema, single)
			if err != nil {
				return nil, err
			}
			return mergeFlags(out, c), nil
		}
	}
	return nil, newParseError(sess.scope, ErrUnexpectedType, "expected a number")
}

// checkBounds enforces a numeric schema's Min/Max keywords (§4.7).
func checkBounds(schema *Schema, f float64) error {
	if schema.min != nil && f < *schema.min {
		return fmt.Errorf("%v is below the minimum of %v", f, *schema.min)
	}
	if schema.max != nil && f > *schema.max {
		return fmt.Errorf("%v is above the maximum of %v", f, *schema.max)
	}
	return nil
}

func coerceInt(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	floatVal, err := coerceFloat(sess, schema, v)
	if err != nil {
		return nil, err
	}
	tf := floatVal.(*TypedFloat)
	rounded := math.Round(tf.Value)
	c := NewConditions().Merge(tf.Flags())
	if rounded != tf.Value {
		c.AddKind(FlagFloatToInt)
	}
	return withConditions(&TypedInt{Value: int64(rounded)}, c), nil
}

var (
	trueWordRe  = regexp.MustCompile(`(?i)\btrue\b`)
	falseWordRe = regexp.MustCompile(`(?i)\bfalse\b`)
)

var truthySynonyms = map[string]bool{"yes": true, "y": true, "1": true, "on": true, "enabled": true}
var falsySynonyms = map[string]bool{"no": true, "n": true, "0": true, "off": true, "disabled": true}

func coerceBool(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	switch n := inner.(type) {
	case *BoolValue:
		return withConditions(&TypedBool{Value: n.B}, base), nil
	case *StringValue:
		trimmed := strings.TrimSpace(n.S)
		switch strings.ToLower(trimmed) {
		case "true":
			base.AddKind(FlagStringToBool)
			return withConditions(&TypedBool{Value: true}, base), nil
		case "false":
			base.AddKind(FlagStringToBool)
			return withConditions(&TypedBool{Value: false}, base), nil
		}

		hasTrue := trueWordRe.MatchString(n.S)
		hasFalse := falseWordRe.MatchString(n.S)
		if hasTrue && hasFalse {
			return nil, newParseError(sess.scope, ErrTooManyMatches, "both true and false appear in: "+n.S)
		}
		if hasTrue {
			base.AddKind(FlagStringToBool)
			return withConditions(&TypedBool{Value: true}, base), nil
		}
		if hasFalse {
			base.AddKind(FlagStringToBool)
			return withConditions(&TypedBool{Value: false}, base), nil
		}

		lower := strings.ToLower(trimmed)
		if truthySynonyms[lower] {
			base.AddKind(FlagStringToBool)
			return withConditions(&TypedBool{Value: true}, base), nil
		}
		if falsySynonyms[lower] {
			base.AddKind(FlagStringToBool)
			return withConditions(&TypedBool{Value: false}, base), nil
		}
		return nil, newParseError(sess.scope, ErrUnexpectedType, "cannot parse as bool: "+n.S)
	case *ArrayValue:
		if single, ok, c := arrayToSingle(n); ok {
			c.AddKind(FlagSingleToArray)
			out, err := coerceBool(sess, schema, single)
			if err != nil {
				return nil, err
			}
			return mergeFlags(out, c), nil
		}
	}
	return nil, newParseError(sess.scope, ErrUnexpectedType, "expected a bool")
}

func coerceNull(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)
	if _, ok := inner.(*NullValue); ok {
		return withConditions(&TypedNull{}, base), nil
	}
	return nil, newParseError(sess.scope, ErrUnexpectedType, "expected null")
}

func coerceLiteral(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	switch lit := schema.literal.(type) {
	case string:
		str, ok := inner.(*StringValue)
		if !ok {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "expected literal string "+lit)
		}
		if str.S == lit {
			return withConditions(&TypedLiteral{Value: lit}, base), nil
		}
		m, err := Match(str.S, []string{lit})
		if err != nil {
			return nil, newParseError(sess.scope, errorForMatchFailure(err), "literal "+lit+" not found in "+str.S)
		}
		base.Merge(flagsForMatch(m))
		return withConditions(&TypedLiteral{Value: lit}, base), nil
	case bool:
		b, ok := inner.(*BoolValue)
		if !ok || b.B != lit {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "expected literal bool")
		}
		return withConditions(&TypedLiteral{Value: lit}, base), nil
	case nil:
		if _, ok := inner.(*NullValue); ok {
			return withConditions(&TypedLiteral{Value: nil}, base), nil
		}
		return nil, newParseError(sess.scope, ErrUnexpectedType, "expected literal null")
	default:
		num, ok := inner.(*NumberValue)
		if !ok {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "expected literal number")
		}
		f, err := strconv.ParseFloat(num.Raw, 64)
		if err != nil {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "malformed number literal")
		}
		if !literalNumberEquals(lit, f) {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "literal number mismatch")
		}
		return withConditions(&TypedLiteral{Value: lit}, base), nil
	}
}

func literalNumberEquals(lit any, f float64) bool {
	switch n := lit.(type) {
	case int:
		return float64(n) == f
	case int64:
		return float64(n) == f
	case float64:
		return n == f
	case float32:
		return float64(n) == f
	default:
		return false
	}
}

func coerceEnum(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	str, ok := inner.(*StringValue)
	if !ok {
		return nil, newParseError(sess.scope, ErrUnexpectedType, "expected enum string")
	}

	m, err := Match(str.S, schema.variants)
	if err != nil {
		return nil, newParseError(sess.scope, errorForMatchFailure(err), "no enum variant matched "+str.S)
	}
	base.Merge(flagsForMatch(m))
	return withConditions(&TypedEnum{Name: schema.name, Variant: m.Variant}, base), nil
}

func errorForMatchFailure(err error) error {
	if err == ErrTooManyMatches {
		return ErrTooManyMatches
	}
	return ErrNoMatch
}

func flagsForMatch(m *MatchResult) *DeserializerConditions {
	c := NewConditions()
	switch m.Phase {
	case PhaseSubstring:
		if len(m.Candidates) > 1 {
			c.AddKind(FlagStrMatchOneFromMany, map[string]any{"ambiguityBonus": len(m.Candidates) - 1})
		} else {
			c.AddKind(FlagSubstringMatch)
		}
	case PhasePunctuation, PhaseCaseInsensitive:
		c.AddKind(FlagSubstringMatch)
	}
	return c
}
