package jsonish

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// MatchPhase records which of the matcher's sequential phases produced a
// result (§4.6).
type MatchPhase int

const (
	PhaseExact MatchPhase = iota
	PhasePunctuation
	PhaseCaseInsensitive
	PhaseSubstring
)

// MatchResult is a successful match: Variant is the candidate exactly as
// supplied by the caller (the schema decides final casing), Phase records
// which tier produced it.
type MatchResult struct {
	Variant string
	Phase   MatchPhase
	// Candidates is populated only for PhaseSubstring, mapping candidate
	// to its non-overlapping occurrence count, for StrMatchOneFromMany
	// diagnostics.
	Candidates map[string]int
}

var caseFolder = cases.Fold()

// Match runs the four-phase matcher against query and stops at the first
// phase that yields any candidate. Ambiguity (two-or-more candidates in
// that phase, or tied substring candidates) surfaces as ErrTooManyMatches;
// exhausting all phases with no hit surfaces as ErrNoMatch.
func Match(query string, candidates []string) (*MatchResult, error) {
	if len(candidates) == 0 {
		return nil, ErrNoMatch
	}

	if winners := exactPhase(query, candidates); len(winners) > 0 {
		if len(winners) > 1 {
			return nil, ErrTooManyMatches
		}
		return &MatchResult{Variant: winners[0], Phase: PhaseExact}, nil
	}

	if winners := punctuationPhase(query, candidates); len(winners) > 0 {
		if len(winners) > 1 {
			return nil, ErrTooManyMatches
		}
		return &MatchResult{Variant: winners[0], Phase: PhasePunctuation}, nil
	}

	if winners := caseInsensitivePhase(query, candidates); len(winners) > 0 {
		if len(winners) > 1 {
			return nil, ErrTooManyMatches
		}
		return &MatchResult{Variant: winners[0], Phase: PhaseCaseInsensitive}, nil
	}

	winner, counts, ok := substringPhase(query, candidates)
	if !ok {
		return nil, ErrNoMatch
	}
	if winner == "" {
		return nil, ErrTooManyMatches
	}

	// Downgrade to ambiguous if some other candidate also appears as a
	// whole word in the raw text, even though it didn't win the ranking.
	for _, c := range candidates {
		if c == winner {
			continue
		}
		if wholeWordPresent(query, c) {
			return nil, ErrTooManyMatches
		}
	}

	return &MatchResult{Variant: winner, Phase: PhaseSubstring, Candidates: counts}, nil
}

func exactPhase(query string, candidates []string) []string {
	var winners []string
	for _, c := range candidates {
		if c == query {
			winners = append(winners, c)
		}
	}
	return dedupe(winners)
}

// stripPunctuation removes whitespace and '.' entirely, and trims leading
// and trailing '-'/'_' while keeping interior occurrences of them.
func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_")
}

func punctuationPhase(query string, candidates []string) []string {
	q := stripPunctuation(query)
	var winners []string
	for _, c := range candidates {
		if stripPunctuation(c) == q {
			winners = append(winners, c)
		}
	}
	return dedupe(winners)
}

func caseInsensitivePhase(query string, candidates []string) []string {
	q := caseFolder.String(query)
	var winners []string
	for _, c := range candidates {
		if caseFolder.String(c) == q {
			winners = append(winners, c)
		}
	}
	return dedupe(winners)
}

type occurrence struct {
	candidate string
	start     int
	length    int
}

// substringPhase finds all occurrences of every candidate in query,
// keeps only non-overlapping maximal matches (longest first, then
// earliest position), and tallies counts per candidate. Returns ok=false
// when nothing matched at all, winner=="" when the top rank is tied
// across distinct candidates (ambiguous).
func substringPhase(query string, candidates []string) (winner string, counts map[string]int, ok bool) {
	lowerQuery := strings.ToLower(query)

	var occs []occurrence
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == "" {
			continue
		}
		start := 0
		for {
			idx := strings.Index(lowerQuery[start:], lc)
			if idx < 0 {
				break
			}
			pos := start + idx
			occs = append(occs, occurrence{candidate: c, start: pos, length: len(lc)})
			start = pos + 1
		}
	}
	if len(occs) == 0 {
		return "", nil, false
	}

	sort.Slice(occs, func(i, j int) bool {
		if occs[i].length != occs[j].length {
			return occs[i].length > occs[j].length
		}
		return occs[i].start < occs[j].start
	})

	taken := make([]bool, len(lowerQuery))
	counts = make(map[string]int)
	type ranked struct {
		candidate string
		length    int
		pos       int
	}
	best := map[string]ranked{}
	for i := range occs {
		o := occs[i]
		overlap := false
		for k := o.start; k < o.start+o.length; k++ {
			if taken[k] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		for k := o.start; k < o.start+o.length; k++ {
			taken[k] = true
		}
		counts[o.candidate]++
		if cur, ok2 := best[o.candidate]; !ok2 || o.length > cur.length || (o.length == cur.length && o.start < cur.pos) {
			best[o.candidate] = ranked{candidate: o.candidate, length: o.length, pos: o.start}
		}
	}
	if len(counts) == 0 {
		return "", nil, false
	}

	var rankedList []ranked
	for _, r := range best {
		rankedList = append(rankedList, r)
	}
	sort.Slice(rankedList, func(i, j int) bool {
		if rankedList[i].length != rankedList[j].length {
			return rankedList[i].length > rankedList[j].length
		}
		return rankedList[i].pos < rankedList[j].pos
	})

	// Ambiguous when the top two distinct candidates tie on both occurrence
	// count and match length (§4.6) — non-overlapping matches can never
	// share a start position, so comparing positions here could never fire.
	if len(rankedList) > 1 &&
		rankedList[0].length == rankedList[1].length &&
		counts[rankedList[0].candidate] == counts[rankedList[1].candidate] {
		return "", counts, true
	}
	return rankedList[0].candidate, counts, true
}

func wholeWordPresent(text, word string) bool {
	if word == "" {
		return false
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
