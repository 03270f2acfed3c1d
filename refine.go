package jsonish

// coerceRefined implements §4.10: coerce through the inner schema, then
// evaluate the attached predicate. Assert-severity failures abort with
// ErrConstraintFailed; Check-severity failures flag ConstraintWarning and
// let the value through.
func coerceRefined(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	inner, err := Coerce(sess, schema.inner, v)
	if err != nil {
		return nil, err
	}

	if schema.refinePredicate == nil || schema.refinePredicate(inner) {
		return inner, nil
	}

	if schema.refineSeverity == Assert {
		return nil, newParseError(sess.scope, ErrConstraintFailed, schema.refineMessage)
	}

	c := NewConditions().Merge(inner.Flags())
	c.AddKind(FlagConstraintWarning, map[string]any{"message": schema.refineMessage})
	return withConditions(inner, c), nil
}
