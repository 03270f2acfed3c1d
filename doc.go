// Package jsonish implements a schema-directed, error-tolerant parser for
// JSON-like text produced by large language models and other unreliable
// sources. Given a possibly malformed, truncated, or prose-embedded input
// and a target Schema, Parse returns a typed value conforming to that
// schema, or a structured error.
package jsonish
