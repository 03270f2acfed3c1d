package jsonish

// ParseOptions configures the cascade and coercer for one Parse call
// (§6.1). The zero value is not valid; start from DefaultParseOptions.
type ParseOptions struct {
	AllowMarkdownJSON   bool
	AllowMultiJSON      bool
	AllowFixingParser   bool
	AllowPartial        bool
	AllowStringFallback bool
	MaxDepth            int
}

// DefaultParseOptions matches §6.1's documented defaults.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		AllowMarkdownJSON:   true,
		AllowMultiJSON:      true,
		AllowFixingParser:   true,
		AllowPartial:        false,
		AllowStringFallback: true,
		MaxDepth:            25,
	}
}

// Parse is the package's primary entry point (§6.1): it runs the
// extraction cascade over input, then coerces the resulting Value tree
// onto schema within a fresh, call-scoped Session.
func Parse(input string, schema *Schema, options ...ParseOptions) (TypedValue, error) {
	opts := DefaultParseOptions()
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 25
	}

	sess := NewSession(opts)

	if schema.kind == KindString {
		return Coerce(sess, schema, NewString(input))
	}

	v := runCascade(input, opts)
	return Coerce(sess, schema, v)
}
