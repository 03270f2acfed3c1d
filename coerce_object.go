package jsonish

import "strings"

// coerceObject implements the Object/Class composite coercer (§4.8):
// declared fields resolved case-sensitively then case-insensitively,
// required fields missing without a default fail the whole object, extra
// input keys are flagged rather than rejected, and a String input is
// accepted via a strict-JSON re-parse.
func coerceObject(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	switch n := inner.(type) {
	case *ObjectValue:
		return coerceObjectFromValue(sess, schema, n, base)
	case *StringValue:
		reparsed, err := strictJSONReparse(n.S)
		if err != nil {
			return nil, newParseError(sess.scope, ErrUnexpectedType, "string is not valid JSON for object coercion")
		}
		return coerceObject(sess, schema, reparsed)
	}

	return nil, newParseError(sess.scope, ErrUnexpectedType, "expected an object")
}

func coerceObjectFromValue(sess *Session, schema *Schema, obj *ObjectValue, base *DeserializerConditions) (TypedValue, error) {
	if obj.Completion == Complete {
		obj = deepComplete(obj).(*ObjectValue)
	}
	used := make([]bool, len(obj.Entries))
	incompleteRequired := false

	var fields []TypedField
	for _, f := range schema.fields {
		idx, ok := resolveFieldEntry(obj, f.Name, used)
		if !ok {
			switch f.Schema.kind {
			case KindOptional:
				continue
			case KindNullable:
				continue
			case KindDefault:
				tv, err := Coerce(sess, f.Schema, nil)
				if err != nil {
					return nil, err
				}
				fields = append(fields, TypedField{Name: f.Name, Value: tv})
				continue
			}
			return nil, newParseError(sess.scope.withField(f.Name), ErrMissingRequiredField, "field \""+f.Name+"\" is required")
		}

		used[idx] = true
		entry := obj.Entries[idx]
		leave := sess.pushField(f.Name)
		tv, err := Coerce(sess, f.Schema, entry.Value)
		leave()
		if err != nil {
			if f.Schema.kind == KindOptional || f.Schema.kind == KindNullable {
				continue
			}
			return nil, newParseError(sess.scope.withField(f.Name), ErrUnparseableField, err.Error())
		}
		if completionOf(entry.Value) == Incomplete {
			if f.Schema.kind != KindOptional && f.Schema.kind != KindNullable && f.Schema.kind != KindDefault && !sess.options.AllowPartial {
				return nil, newParseError(sess.scope.withField(f.Name), ErrMissingRequiredField, "field \""+f.Name+"\" was truncated before completion")
			}
			incompleteRequired = true
		}
		fields = append(fields, TypedField{Name: f.Name, Value: tv})
	}

	for i, e := range obj.Entries {
		if !used[i] {
			base.AddKind(FlagExtraKey, map[string]any{"key": e.Key})
		}
	}
	if incompleteRequired {
		base.AddKind(FlagIncomplete)
	}

	return withConditions(&TypedClass{Name: schema.name, Fields: fields}, base), nil
}

// resolveFieldEntry looks up a declared field by name: case-sensitive
// first, falling back to a case-insensitive match only when the
// case-sensitive lookup misses entirely.
func resolveFieldEntry(obj *ObjectValue, name string, used []bool) (int, bool) {
	for i, e := range obj.Entries {
		if used[i] {
			continue
		}
		if e.Key == name {
			return i, true
		}
	}
	for i, e := range obj.Entries {
		if used[i] {
			continue
		}
		if strings.EqualFold(e.Key, name) {
			return i, true
		}
	}
	return 0, false
}

// strictJSONReparse re-enters the strict-JSON step of the cascade (§4.5)
// on a string that arrived already unwrapped from the input Value tree.
func strictJSONReparse(s string) (Value, error) {
	return parseStrictJSON(s)
}
