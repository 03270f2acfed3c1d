package jsonish

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Session (the "ParsingContext" of §3.6/§5) carries everything scoped to
// one top-level Parse call: the lazy-schema resolution cache, the cycle
// detector's visited set, per-call union/coercion caches, recursion depth
// bookkeeping, and the current scope path. A Session is created at the
// start of Parse and discarded at the end; no cache entry may outlive it,
// and nothing here is package-level or shared across calls (§5, §9).
type Session struct {
	id      string
	options ParseOptions

	mu          sync.Mutex
	visited     map[visitedKey]bool
	lazyCache   map[*Schema]*Schema
	unionCache  map[string]unionCacheEntry
	scoreCache  map[string]int
	depth       int
	scope       ScopePath
}

type visitedKey struct {
	schema string
	value  string
}

type unionCacheEntry struct {
	value TypedValue
	err   error
}

// NewSession allocates a fresh, call-scoped parsing context.
func NewSession(opts ParseOptions) *Session {
	return &Session{
		id:         uuid.NewString(),
		options:    opts,
		visited:    make(map[visitedKey]bool),
		lazyCache:  make(map[*Schema]*Schema),
		unionCache: make(map[string]unionCacheEntry),
		scoreCache: make(map[string]int),
	}
}

// ID returns the session's identifier. ParseError does not carry it.
func (s *Session) ID() string { return s.id }

// resolveLazy memoises a Lazy schema's thunk resolution by the Lazy node's
// own pointer identity, so a recursive schema graph has a stable identity
// for the lifetime of this session (§4.9, §9).
func (s *Session) resolveLazy(lazy *Schema) *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resolved, ok := s.lazyCache[lazy]; ok {
		return resolved
	}
	// Reserve the slot with the node itself before recursing, so a cycle
	// that re-enters the same Lazy node during resolution terminates
	// instead of looping forever.
	s.lazyCache[lazy] = lazy
	resolved := lazy.lazyThunk()
	s.lazyCache[lazy] = resolved
	return resolved
}

// enter pushes a (schema, value) pair onto the visited stack and checks
// recursion depth, returning a leave func to pop it. It fails with
// ErrCircularReference on re-entry and ErrRecursionLimit past maxDepth.
func (s *Session) enter(schema *Schema, v Value) (leave func(), err error) {
	max := s.options.MaxDepth
	if max <= 0 {
		max = 25
	}
	s.mu.Lock()
	if s.depth >= max {
		s.mu.Unlock()
		return nil, newParseError(s.scope, ErrRecursionLimit, fmt.Sprintf("exceeded max depth %d", max))
	}
	key := visitedKey{schema: schemaIdentity(schema), value: valueIdentity(v)}
	if s.visited[key] {
		s.mu.Unlock()
		return nil, newParseError(s.scope, ErrCircularReference, "schema/value pair already being resolved")
	}
	s.visited[key] = true
	s.depth++
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.visited, key)
		s.depth--
		s.mu.Unlock()
	}, nil
}

func (s *Session) pushField(name string) func() {
	s.scope = s.scope.withField(name)
	idx := len(s.scope) - 1
	return func() { s.scope = s.scope[:idx] }
}

func (s *Session) pushIndex(i int) func() {
	s.scope = s.scope.withIndex(i)
	idx := len(s.scope) - 1
	return func() { s.scope = s.scope[:idx] }
}

// schemaIdentity returns a stable per-process identity string for a
// schema node: its pointer. It does not resolve Lazy nodes;
// schemaFingerprint does that.
func schemaIdentity(schema *Schema) string {
	if schema == nil {
		return "nil"
	}
	return fmt.Sprintf("%p", schema)
}

// valueIdentity returns a stable per-process identity string for a Value
// node (all Value implementations are pointers, so the interface's
// pointer component is a valid identity).
func valueIdentity(v Value) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%p", v)
}

// schemaFingerprint builds the cache key component for a schema, per
// §4.9: it includes the identity of every union option and, for Lazy, the
// resolved schema's identity rather than the thunk's.
func schemaFingerprint(s *Session, schema *Schema) string {
	if schema == nil {
		return "nil"
	}
	switch schema.kind {
	case KindLazy:
		resolved := s.resolveLazy(schema)
		return "lazy(" + schemaIdentity(resolved) + ")"
	case KindUnion:
		fp := "union("
		for i, opt := range schema.options {
			if i > 0 {
				fp += ","
			}
			fp += schemaFingerprint(s, opt)
		}
		return fp + ")"
	default:
		return schemaIdentity(schema)
	}
}

// valueFingerprint builds the cache key component for a Value, structural
// rather than pointer-based so two distinct Value trees with identical
// shape share a cache entry within the session.
func valueFingerprint(v Value) string {
	return DebugString(v)
}

func cacheKey(schemaFP, valueFP string) string {
	return schemaFP + "|" + valueFP
}

func (s *Session) getUnionCache(key string) (unionCacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.unionCache[key]
	return e, ok
}

func (s *Session) putUnionCache(key string, e unionCacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unionCache[key] = e
}
