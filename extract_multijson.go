package jsonish

// extractMultiJSON scans raw text for disjoint top-level balanced {...}
// or [...] regions, skipping content inside string literals (double,
// single, backtick, and their triple variants). If two or more regions
// are found, it returns each region's parsed Value plus a synthetic
// array Value containing all of them in order (§4.3).
func extractMultiJSON(raw string, opts ParseOptions) []Value {
	regions := findBalancedRegions(raw)
	if len(regions) < 2 {
		return nil
	}

	var out []Value
	var all []Value
	for _, region := range regions {
		v := runCascade(region, opts)
		out = append(out, v)
		all = append(all, v)
	}
	out = append(out, &ArrayValue{Items: all, Completion: Complete})
	return out
}

func findBalancedRegions(raw string) []string {
	src := []rune(raw)
	var regions []string

	i := 0
	for i < len(src) {
		c := src[i]
		if c != '{' && c != '[' {
			i++
			continue
		}
		end, ok := scanBalanced(src, i)
		if !ok {
			i++
			continue
		}
		regions = append(regions, string(src[i:end]))
		i = end
	}
	return regions
}

// scanBalanced finds the end index (exclusive) of the balanced bracket
// structure starting at start, skipping over string-literal content.
func scanBalanced(src []rune, start int) (int, bool) {
	depth := 0
	i := start
	for i < len(src) {
		c := src[i]
		switch c {
		case '"', '\'', '`':
			i = skipStringLiteral(src, i)
			continue
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// skipStringLiteral returns the index just past a string literal (any of
// the four quote kinds, including triple variants) starting at pos.
func skipStringLiteral(src []rune, pos int) int {
	q := src[pos]
	triple := pos+2 < len(src) && src[pos+1] == q && src[pos+2] == q
	width := 1
	if triple {
		width = 3
	}
	i := pos + width

	for i < len(src) {
		if src[i] == '\\' && !triple && i+1 < len(src) {
			i += 2
			continue
		}
		if triple {
			if i+2 < len(src) && src[i] == q && src[i+1] == q && src[i+2] == q {
				return i + 3
			}
		} else if src[i] == q {
			return i + 1
		}
		i++
	}
	return i
}
