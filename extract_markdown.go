package jsonish

import "regexp"

// fenceRe matches a fenced code block, tolerating an unterminated
// trailing fence (streaming input that hasn't closed yet): the closing
// ``` is optional when it reaches end of input.
var fenceRe = regexp.MustCompile("(?s)```([a-zA-Z0-9_+-]*)[ \t]*\r?\n?(.*?)(```|\\z)")

// extractMarkdown finds every fenced code block in raw text and applies
// the full cascade recursively to each fence's contents (§4.3).
func extractMarkdown(raw string, opts ParseOptions) []Value {
	matches := fenceRe.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) == 0 {
		return nil
	}

	var out []Value
	for _, m := range matches {
		lang := raw[m[2]:m[3]]
		body := raw[m[4]:m[5]]
		inner := runCascade(body, opts)
		out = append(out, &MarkdownValue{Lang: lang, Inner: inner})
	}
	return out
}
