package jsonish

// coerceUnion implements §4.9: two-phase resolution over a Union's
// options, with per-session result caching and AnyOf interaction.
func coerceUnion(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	if anyOf, ok := v.(*AnyOfValue); ok {
		return coerceUnionAnyOf(sess, schema, anyOf)
	}

	key := cacheKey(schemaFingerprint(sess, schema), valueFingerprint(v))
	if entry, ok := sess.getUnionCache(key); ok {
		return entry.value, entry.err
	}

	tv, err := resolveUnion(sess, schema, v)
	sess.putUnionCache(key, unionCacheEntry{value: tv, err: err})
	return tv, err
}

// candidate is one option's outcome, carried through both phases.
type candidate struct {
	optionIndex int
	value       TypedValue
}

func resolveUnion(sess *Session, schema *Schema, v Value) (TypedValue, error) {
	var strictWinners []candidate
	for i, opt := range schema.options {
		tv, err := Coerce(sess, opt, v)
		if err != nil {
			continue
		}
		if Score(tv) == 0 {
			strictWinners = append(strictWinners, candidate{optionIndex: i, value: tv})
		}
	}
	if len(strictWinners) == 1 {
		return strictWinners[0].value, nil
	}

	var pool []candidate
	var subErrors []*UnionAttemptError
	if len(strictWinners) > 1 {
		pool = strictWinners
	} else {
		for i, opt := range schema.options {
			tv, err := Coerce(sess, opt, v)
			if err != nil {
				subErrors = append(subErrors, &UnionAttemptError{OptionIndex: i, Penalty: -1, Err: err})
				continue
			}
			pool = append(pool, candidate{optionIndex: i, value: tv})
		}
	}

	if len(pool) == 0 {
		return nil, bestUnionError(sess, subErrors)
	}

	best := selectBest(pool)
	return best.value, nil
}

// selectBest applies the §4.9 selection rule: lowest penalty sum, then
// fewer composite item errors, then fewer extra/defaulted fields, then
// fewer constraint warnings, then declaration order.
func selectBest(pool []candidate) candidate {
	best := pool[0]
	bestScore := Score(best.value)
	for _, c := range pool[1:] {
		score := Score(c.value)
		if unionLess(c, score, best, bestScore) {
			best = c
			bestScore = score
		}
	}
	return best
}

func unionLess(a candidate, aScore int, b candidate, bScore int) bool {
	if aScore != bScore {
		return aScore < bScore
	}
	if ae, be := arrayOrMapErrorCount(a.value), arrayOrMapErrorCount(b.value); ae != be {
		return ae < be
	}
	aPreserved := extraKeyCount(a.value) + defaultedCount(a.value)
	bPreserved := extraKeyCount(b.value) + defaultedCount(b.value)
	if aPreserved != bPreserved {
		return aPreserved < bPreserved
	}
	if aw, bw := constraintWarningCount(a.value), constraintWarningCount(b.value); aw != bw {
		return aw < bw
	}
	return a.optionIndex < b.optionIndex
}

func bestUnionError(sess *Session, subErrors []*UnionAttemptError) error {
	if len(subErrors) == 0 {
		return newParseError(sess.scope, ErrUnexpectedType, "no union option matched")
	}
	return &ParseError{Path: sess.scope, Err: ErrUnexpectedType, Reason: "no union option matched", SubErrors: subErrors}
}

// coerceAnyOfForSchema implements the general §4.9 "AnyOf interaction"
// rule for any schema kind, not just Union: when the cascade hands the
// coercer an AnyOf Value, every variant is tried against the same schema
// and the best scoring success wins declaration-order ties by variant
// position. Union schemas instead go through coerceUnionAnyOf, which also
// varies the option alongside the variant.
func coerceAnyOfForSchema(sess *Session, schema *Schema, anyOf *AnyOfValue) (TypedValue, error) {
	var pool []candidate
	var subErrors []*UnionAttemptError

	for i, variant := range anyOf.Variants {
		tv, err := Coerce(sess, schema, variant)
		if err != nil {
			subErrors = append(subErrors, &UnionAttemptError{OptionIndex: i, Penalty: -1, Err: err})
			continue
		}
		pool = append(pool, candidate{optionIndex: i, value: tv})
	}

	if len(pool) == 0 {
		return nil, bestUnionError(sess, subErrors)
	}
	return selectBest(pool).value, nil
}

// coerceUnionAnyOf runs union resolution against each AnyOf variant in
// turn and returns the best scoring (variant, option) pair.
func coerceUnionAnyOf(sess *Session, schema *Schema, anyOf *AnyOfValue) (TypedValue, error) {
	var pool []candidate
	var subErrors []*UnionAttemptError

	for _, variant := range anyOf.Variants {
		for i, opt := range schema.options {
			tv, err := Coerce(sess, opt, variant)
			if err != nil {
				subErrors = append(subErrors, &UnionAttemptError{OptionIndex: i, Penalty: -1, Err: err})
				continue
			}
			pool = append(pool, candidate{optionIndex: i, value: tv})
		}
	}

	if len(pool) == 0 {
		return nil, bestUnionError(sess, subErrors)
	}
	return selectBest(pool).value, nil
}
