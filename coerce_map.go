package jsonish

// coerceMap implements the Map/Record composite coercer (§4.8): each
// object entry's key and value are coerced under K/V respectively, and an
// array of 2-entry {"key","value"} objects is accepted as an alternate
// encoding (ObjectToMap).
func coerceMap(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	base := completionFlag(v)
	inner, _ := Unwrap(v)

	switch n := inner.(type) {
	case *ObjectValue:
		return coerceMapFromObject(sess, schema, n, base)
	case *ArrayValue:
		if entries, ok := keyValueEntries(n); ok {
			base.AddKind(FlagObjectToMap)
			return coerceMapFromObject(sess, schema, &ObjectValue{Entries: entries, Completion: n.Completion}, base)
		}
	}

	return nil, newParseError(sess.scope, ErrUnexpectedType, "expected a map/object")
}

func coerceMapFromObject(sess *Session, schema *Schema, obj *ObjectValue, base *DeserializerConditions) (TypedValue, error) {
	resolved := make(map[string]TypedValue, len(obj.Entries))
	order := make([]string, 0, len(obj.Entries))

	for _, e := range obj.Entries {
		leave := sess.pushField(e.Key)
		key, err := Coerce(sess, schema.mapKey, NewString(e.Key))
		if err != nil {
			leave()
			base.AddKind(FlagMapValueParseError, map[string]any{"key": e.Key})
			continue
		}
		keyStr := mapKeyText(key)

		val, err := Coerce(sess, schema.mapValue, e.Value)
		leave()
		if err != nil {
			base.AddKind(FlagMapValueParseError, map[string]any{"key": e.Key})
			continue
		}

		if _, exists := resolved[keyStr]; !exists {
			order = append(order, keyStr)
		}
		resolved[keyStr] = val
	}

	entries := make([]TypedMapEntry, 0, len(order))
	for _, k := range order {
		entries = append(entries, TypedMapEntry{Key: k, Value: resolved[k]})
	}

	return withConditions(&TypedMap{Entries: entries}, base), nil
}

func mapKeyText(tv TypedValue) string {
	switch t := tv.(type) {
	case *TypedString:
		return t.Value
	case *TypedEnum:
		return t.Variant
	case *TypedLiteral:
		if s, ok := t.Value.(string); ok {
			return s
		}
	}
	plain := ToPlainTyped(tv)
	if s, ok := plain.(string); ok {
		return s
	}
	return ""
}

// keyValueEntries recognises an array of 2-entry objects with keys "key"
// and "value" as an alternate record encoding.
func keyValueEntries(arr *ArrayValue) ([]ObjectEntry, bool) {
	entries := make([]ObjectEntry, 0, len(arr.Items))
	for _, item := range arr.Items {
		inner, _ := Unwrap(item)
		obj, ok := inner.(*ObjectValue)
		if !ok || len(obj.Entries) != 2 {
			return nil, false
		}
		var keyVal, valVal Value
		var haveKey, haveValue bool
		for _, e := range obj.Entries {
			switch e.Key {
			case "key":
				keyVal = e.Value
				haveKey = true
			case "value":
				valVal = e.Value
				haveValue = true
			}
		}
		if !haveKey || !haveValue {
			return nil, false
		}
		keyInner, _ := Unwrap(keyVal)
		keyStr, ok := keyInner.(*StringValue)
		if !ok {
			return nil, false
		}
		entries = append(entries, ObjectEntry{Key: keyStr.S, Value: valVal})
	}
	return entries, true
}
