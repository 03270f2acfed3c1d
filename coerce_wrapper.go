package jsonish

// coerceOptional implements the Optional wrapper: a nil Value (the field
// was absent from its containing Object) resolves with no error and no
// flag; otherwise coercion delegates to the inner schema.
func coerceOptional(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	if v == nil {
		return withConditions(&TypedNull{}, NewConditions()), nil
	}
	return Coerce(sess, schema.inner, v)
}

// coerceNullable implements the Nullable wrapper: an explicit null Value
// is accepted alongside the inner shape.
func coerceNullable(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	if v == nil {
		return withConditions(&TypedNull{}, NewConditions()), nil
	}
	inner, _ := Unwrap(v)
	if _, ok := inner.(*NullValue); ok {
		return withConditions(&TypedNull{}, completionFlag(v)), nil
	}
	return Coerce(sess, schema.inner, v)
}

// coerceDefault implements the Default wrapper (§4.7 Null, §4.8 Object):
// a nil Value (field absent) fills in the declared default and flags
// DefaultFromNoValue; a present value is coerced normally, flagging
// DefaultButHadValue only when that present value is itself null.
func coerceDefault(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	if v == nil {
		value, err := defaultValue(schema)
		if err != nil {
			return nil, newParseError(sess.scope, ErrInternal, err.Error())
		}
		c := NewConditions()
		c.AddKind(FlagDefaultFromNoValue)
		return withConditions(literalTypedValue(value), c), nil
	}

	inner, _ := Unwrap(v)
	if _, ok := inner.(*NullValue); ok {
		value, err := defaultValue(schema)
		if err != nil {
			return nil, newParseError(sess.scope, ErrInternal, err.Error())
		}
		c := NewConditions()
		c.AddKind(FlagDefaultButHadValue)
		return withConditions(literalTypedValue(value), c), nil
	}

	return Coerce(sess, schema.inner, v)
}

func defaultValue(schema *Schema) (any, error) {
	if schema.defaultThunk != nil {
		return schema.defaultThunk()
	}
	return schema.defaultValue, nil
}

// literalTypedValue wraps a plain Go default value as the matching
// TypedValue leaf, without running it back through the coercer.
func literalTypedValue(value any) TypedValue {
	switch val := value.(type) {
	case nil:
		return &TypedNull{}
	case bool:
		return &TypedBool{Value: val}
	case int:
		return &TypedInt{Value: int64(val)}
	case int64:
		return &TypedInt{Value: val}
	case float64:
		return &TypedFloat{Value: val}
	case string:
		return &TypedString{Value: val}
	default:
		return &TypedNull{}
	}
}
