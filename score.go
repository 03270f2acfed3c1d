package jsonish

// Score computes the §4.2/§4.9 penalty total for a TypedValue: its own
// flag bag's score, plus ten times the sum of every child's score. The
// ×10 multiplier at each nesting level is what makes a single deeply
// buried ArrayItemParseError dominate an otherwise-clean union option.
func Score(tv TypedValue) int {
	if tv == nil {
		return 0
	}
	own := tv.Flags().Score()
	return own + 10*childScoreSum(tv)
}

func childScoreSum(tv TypedValue) int {
	switch n := tv.(type) {
	case *TypedList:
		sum := 0
		for _, item := range n.Items {
			sum += Score(item)
		}
		return sum
	case *TypedMap:
		sum := 0
		for _, e := range n.Entries {
			sum += Score(e.Value)
		}
		return sum
	case *TypedClass:
		sum := 0
		for _, f := range n.Fields {
			sum += Score(f.Value)
		}
		return sum
	default:
		return 0
	}
}

// extraKeyCount and defaultedCount support the §4.9 tie-break rules that
// look past the raw penalty sum.
func extraKeyCount(tv TypedValue) int {
	return tv.Flags().Count(FlagExtraKey) + childCountSum(tv, FlagExtraKey)
}

func defaultedCount(tv TypedValue) int {
	return tv.Flags().Count(FlagDefaultFromNoValue) + childCountSum(tv, FlagDefaultFromNoValue)
}

func arrayOrMapErrorCount(tv TypedValue) int {
	n := tv.Flags().Count(FlagArrayItemParseError) + tv.Flags().Count(FlagMapValueParseError)
	return n + childCountSum(tv, FlagArrayItemParseError) + childCountSum(tv, FlagMapValueParseError)
}

func childCountSum(tv TypedValue, kind FlagKind) int {
	switch n := tv.(type) {
	case *TypedList:
		sum := 0
		for _, item := range n.Items {
			sum += item.Flags().Count(kind) + childCountSum(item, kind)
		}
		return sum
	case *TypedMap:
		sum := 0
		for _, e := range n.Entries {
			sum += e.Value.Flags().Count(kind) + childCountSum(e.Value, kind)
		}
		return sum
	case *TypedClass:
		sum := 0
		for _, f := range n.Fields {
			sum += f.Value.Flags().Count(kind) + childCountSum(f.Value, kind)
		}
		return sum
	default:
		return 0
	}
}

// constraintWarningCount counts the ConstraintWarning flags (failed
// Check-severity Refined predicates) on a value and its children, for the
// §4.10 union tie-break: fewer ConstraintWarning flags wins.
func constraintWarningCount(tv TypedValue) int {
	return tv.Flags().Count(FlagConstraintWarning) + childCountSum(tv, FlagConstraintWarning)
}
