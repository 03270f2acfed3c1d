package jsonish

// CompletionState marks whether a Value node's delimiters were fully
// consumed during extraction (§3.1). It is the load-bearing signal for
// streaming/partial semantics.
type CompletionState int

const (
	// Pending marks a node not yet visited while building progressive
	// output; it never appears in a finished Value tree.
	Pending CompletionState = iota
	// Incomplete marks a node whose closing delimiter was never observed;
	// partial content is preserved.
	Incomplete
	// Complete marks a node whose closing delimiter was consumed.
	Complete
)

func (c CompletionState) String() string {
	switch c {
	case Pending:
		return "pending"
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// deepComplete promotes Incomplete leaves to Complete when the surrounding
// fixing-parser context proved they terminated (e.g. the outer collection
// auto-closed at a point where this node's own content had already ended).
// It never demotes Complete to Incomplete.
func deepComplete(v Value) Value {
	switch n := v.(type) {
	case *StringValue:
		if n.Completion == Incomplete {
			return &StringValue{S: n.S, Completion: Complete}
		}
		return n
	case *NumberValue:
		if n.Completion == Incomplete {
			return &NumberValue{Raw: n.Raw, Completion: Complete}
		}
		return n
	case *ArrayValue:
		items := make([]Value, len(n.Items))
		for i, it := range n.Items {
			items[i] = deepComplete(it)
		}
		return &ArrayValue{Items: items, Completion: Complete}
	case *ObjectValue:
		entries := make([]ObjectEntry, len(n.Entries))
		for i, e := range n.Entries {
			entries[i] = ObjectEntry{Key: e.Key, Value: deepComplete(e.Value)}
		}
		return &ObjectValue{Entries: entries, Completion: Complete}
	case *AnyOfValue:
		variants := make([]Value, len(n.Variants))
		for i, variant := range n.Variants {
			variants[i] = deepComplete(variant)
		}
		return &AnyOfValue{Variants: variants, OriginalString: n.OriginalString}
	case *MarkdownValue:
		return &MarkdownValue{Lang: n.Lang, Inner: deepComplete(n.Inner)}
	case *FixedValue:
		return &FixedValue{Inner: deepComplete(n.Inner), Fixes: n.Fixes}
	default:
		return v
	}
}
