package jsonish

import "fmt"

// FlagKind enumerates the fixed vocabulary of coercion decisions a Flag
// may record (§3.2).
type FlagKind string

const (
	FlagIncomplete           FlagKind = "Incomplete"
	FlagSingleToArray        FlagKind = "SingleToArray"
	FlagJsonToString         FlagKind = "JsonToString"
	FlagStringToBool         FlagKind = "StringToBool"
	FlagStringToFloat        FlagKind = "StringToFloat"
	FlagFloatToInt           FlagKind = "FloatToInt"
	FlagSubstringMatch       FlagKind = "SubstringMatch"
	FlagStrMatchOneFromMany  FlagKind = "StrMatchOneFromMany"
	FlagDefaultFromNoValue   FlagKind = "DefaultFromNoValue"
	FlagDefaultButHadValue   FlagKind = "DefaultButHadValue"
	FlagExtraKey             FlagKind = "ExtraKey"
	FlagArrayItemParseError  FlagKind = "ArrayItemParseError"
	FlagMapValueParseError   FlagKind = "MapValueParseError"
	FlagObjectToMap          FlagKind = "ObjectToMap"
	FlagObjectToString       FlagKind = "ObjectToString"
	FlagFirstOfMultiple      FlagKind = "FirstOfMultiple"
	FlagConstraintWarning    FlagKind = "ConstraintWarning"
)

// Flag is one entry of a DeserializerConditions bag: a decision the
// coercer made, with an optional payload for diagnostics.
type Flag struct {
	Kind    FlagKind
	Payload map[string]any
}

// NewFlag builds a Flag, optionally attaching a single payload map.
func NewFlag(kind FlagKind, payload ...map[string]any) Flag {
	f := Flag{Kind: kind}
	if len(payload) > 0 {
		f.Payload = payload[0]
	}
	return f
}

func (f Flag) String() string {
	if len(f.Payload) == 0 {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s%v", f.Kind, f.Payload)
}

// basePenalty is the per-flag-kind penalty from the scoring table (§4.2).
// ArrayItemParseError/MapValueParseError and ExtraKey are per-occurrence;
// callers add one entry per occurrence so summing the bag is sufficient.
func basePenalty(f Flag) int {
	switch f.Kind {
	case FlagStringToBool, FlagStringToFloat, FlagFloatToInt, FlagJsonToString:
		return 1
	case FlagSingleToArray, FlagObjectToMap:
		return 1
	case FlagSubstringMatch:
		return 2
	case FlagStrMatchOneFromMany:
		penalty := 1
		if n, ok := f.Payload["ambiguityBonus"].(int); ok {
			penalty += n
		}
		return penalty
	case FlagDefaultFromNoValue:
		return 1
	case FlagDefaultButHadValue:
		return 100
	case FlagExtraKey:
		return 1
	case FlagArrayItemParseError, FlagMapValueParseError:
		return 110
	case FlagIncomplete:
		return 1
	case FlagConstraintWarning:
		return 3
	default:
		return 0
	}
}

// DeserializerConditions is an ordered multiset of Flag entries. Ordering
// is preserved for diagnostics but never consulted for scoring.
type DeserializerConditions struct {
	flags []Flag
}

// NewConditions builds an empty flag bag.
func NewConditions() *DeserializerConditions {
	return &DeserializerConditions{}
}

// Add appends a flag.
func (c *DeserializerConditions) Add(f Flag) *DeserializerConditions {
	c.flags = append(c.flags, f)
	return c
}

// AddKind appends a flag built from a bare kind with no payload.
func (c *DeserializerConditions) AddKind(kind FlagKind, payload ...map[string]any) *DeserializerConditions {
	return c.Add(NewFlag(kind, payload...))
}

// Has reports whether any flag of the given kind is present.
func (c *DeserializerConditions) Has(kind FlagKind) bool {
	for _, f := range c.flags {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns the number of flags of the given kind (relevant for
// per-occurrence kinds like ExtraKey/ArrayItemParseError).
func (c *DeserializerConditions) Count(kind FlagKind) int {
	n := 0
	for _, f := range c.flags {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Iter returns the flags in insertion order.
func (c *DeserializerConditions) Iter() []Flag {
	return c.flags
}

// Merge appends another bag's flags, preserving order: self first, then
// other.
func (c *DeserializerConditions) Merge(other *DeserializerConditions) *DeserializerConditions {
	if other == nil {
		return c
	}
	c.flags = append(c.flags, other.flags...)
	return c
}

// Len reports the number of flags in the bag.
func (c *DeserializerConditions) Len() int {
	if c == nil {
		return 0
	}
	return len(c.flags)
}

// Score sums the base penalty of every flag in the bag. Composite nodes
// multiply child-score sums by 10 before adding their own flags' scores -
// that combination step lives in score.go, which calls this per node.
func (c *DeserializerConditions) Score() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, f := range c.flags {
		total += basePenalty(f)
	}
	return total
}
