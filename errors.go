package jsonish

import (
	"errors"
	"fmt"
	"strings"
)

// Static sentinel errors, grouped by concern. Callers use errors.Is against
// these; ParseError.Unwrap exposes them.
var (
	// ErrUnexpectedType is returned when a Value's kind cannot satisfy the
	// schema's kind through any coercion rule.
	ErrUnexpectedType = errors.New("unexpected type")

	// ErrUnexpectedNull is returned when null is supplied for a non-nullable,
	// non-optional schema.
	ErrUnexpectedNull = errors.New("unexpected null")

	// ErrMissingRequiredField is returned when a required object field has
	// no corresponding entry in the input and no default.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnparseableField is returned when a named field's value could not
	// be coerced under its schema.
	ErrUnparseableField = errors.New("unparseable field")

	// ErrTooManyMatches is returned by the string matcher (§4.6) when two or
	// more enum/literal candidates are ambiguous in the input text.
	ErrTooManyMatches = errors.New("too many matches")

	// ErrNoMatch is returned by the string matcher when no candidate text
	// matches at all.
	ErrNoMatch = errors.New("no match")

	// ErrCircularReference is returned when the coercer re-enters a
	// (schema identity, value identity) pair already on the visited stack.
	ErrCircularReference = errors.New("circular reference")

	// ErrRecursionLimit is returned when coercion depth exceeds the
	// session's configured maximum (default 25).
	ErrRecursionLimit = errors.New("recursion limit exceeded")

	// ErrConstraintFailed is returned when an Assert-severity Refined
	// predicate rejects a coerced value.
	ErrConstraintFailed = errors.New("constraint failed")

	// ErrInternal marks a contract violation in the parser itself, never a
	// user input problem.
	ErrInternal = errors.New("internal error")
)

// ScopeSegment is one hop of a scope path: either a field name or an array
// index. Exactly one of Field/Index is meaningful, discriminated by IsIndex.
type ScopeSegment struct {
	Field   string
	Index   int
	IsIndex bool
}

// ScopePath locates a point in the Value/schema tree for diagnostics.
type ScopePath []ScopeSegment

// String renders a scope path in dot/bracket notation, e.g. "items[2].name".
func (p ScopePath) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			fmt.Fprintf(&b, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Field)
	}
	return b.String()
}

func (p ScopePath) withField(name string) ScopePath {
	out := make(ScopePath, len(p), len(p)+1)
	copy(out, p)
	return append(out, ScopeSegment{Field: name})
}

func (p ScopePath) withIndex(i int) ScopePath {
	out := make(ScopePath, len(p), len(p)+1)
	copy(out, p)
	return append(out, ScopeSegment{Index: i, IsIndex: true})
}

// ParseError is the structured failure returned from Parse. It always
// wraps a sentinel from this file and carries a scope path; SubErrors
// holds the error of each union option (or AnyOf variant) that was tried
// and failed when the failure came out of union resolution (§7). A failed
// option has no score, so each entry's Penalty is -1.
type ParseError struct {
	Path      ScopePath
	Reason    string
	Err       error
	SubErrors []*UnionAttemptError
}

func (e *ParseError) Error() string {
	loc := e.Path.String()
	switch {
	case loc == "" && e.Reason == "":
		return e.Err.Error()
	case loc == "":
		return fmt.Sprintf("%s: %s", e.Err, e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("%s at %s", e.Err, loc)
	default:
		return fmt.Sprintf("%s at %s: %s", e.Err, loc, e.Reason)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(path ScopePath, sentinel error, reason string) *ParseError {
	return &ParseError{Path: path, Err: sentinel, Reason: reason}
}

// UnionAttemptError records one failed union option, for presenting "here
// is why every option was rejected" to the caller.
type UnionAttemptError struct {
	OptionIndex int
	Penalty     int
	Err         error
}

func (e *UnionAttemptError) Error() string {
	return fmt.Sprintf("option %d (penalty %d): %v", e.OptionIndex, e.Penalty, e.Err)
}
