package jsonish

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// runCascade implements §4.5 steps 1-5 without schema context (schema
// only matters for the String short-circuit, handled by Parse itself).
// It always returns a non-nil Value: worst case, the raw string
// fallback.
func runCascade(input string, opts ParseOptions) Value {
	if v, ok := tryStrictJSON(input); ok {
		return &FixedValue{Inner: v, Fixes: FixSet{}}
	}

	var variants []Value

	if opts.AllowMarkdownJSON {
		variants = append(variants, extractMarkdown(input, opts)...)
	}
	if opts.AllowMultiJSON {
		variants = append(variants, extractMultiJSON(input, opts)...)
	}
	if opts.AllowFixingParser {
		for _, fv := range FixParse(input) {
			variants = append(variants, fv)
		}
	}
	if opts.AllowStringFallback {
		variants = append(variants, NewString(input))
	}

	switch len(variants) {
	case 0:
		return NewString(input)
	case 1:
		return variants[0]
	default:
		return &AnyOfValue{Variants: variants, OriginalString: input}
	}
}

// tryStrictJSON is cascade step 1: parse the whole input as JSON exactly,
// using goccy/go-json's decoder so trailing garbage after a valid
// top-level value is rejected rather than silently ignored. It walks the
// decoder's token stream rather than decoding into map[string]any: Go map
// iteration order is randomized per run, and object insertion order is
// significant for ambiguity resolution and reporting (§3.1/§3.5 invariant
// 1) as well as union-resolution determinism (§8 property 6).
func tryStrictJSON(input string) (Value, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	v, err := decodeOrdered(dec)
	if err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	return v, true
}

// decodeOrdered reads one JSON value from dec's token stream, preserving
// object key order as written instead of routing through an unordered Go
// map.
func decodeOrdered(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeOrderedToken(dec, tok)
}

func decodeOrderedToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeOrderedObject(dec)
		case '[':
			return decodeOrderedArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Null, nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return NewNumber(t.String()), nil
	case string:
		return NewString(t), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeOrderedObject(dec *json.Decoder) (Value, error) {
	var entries []ObjectEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("non-string object key %v", keyTok)
		}
		val, err := decodeOrdered(dec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ObjectEntry{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, err
	}
	return &ObjectValue{Entries: entries, Completion: Complete}, nil
}

func decodeOrderedArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		v, err := decodeOrdered(dec)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil { // consume closing ']'
		return nil, err
	}
	return &ArrayValue{Items: items, Completion: Complete}, nil
}

// parseStrictJSON exposes the strict-parse step for coerceObject's
// String-to-Object re-parse path (§4.8).
func parseStrictJSON(s string) (Value, error) {
	v, ok := tryStrictJSON(s)
	if !ok {
		return nil, ErrUnexpectedType
	}
	return v, nil
}
