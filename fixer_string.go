package jsonish

import (
	"fmt"
	"strings"
)

type quoteKind int

const (
	quoteDouble quoteKind = iota
	quoteSingle
	quoteBacktick
	quoteTripleDouble
	quoteTripleBacktick
)

func quoteChar(k quoteKind) rune {
	switch k {
	case quoteSingle:
		return '\''
	case quoteBacktick, quoteTripleBacktick:
		return '`'
	default:
		return '"'
	}
}

func isTriple(k quoteKind) bool {
	return k == quoteTripleDouble || k == quoteTripleBacktick
}

// closingFollowSet returns the non-whitespace runes that, seen immediately
// after a would-be closing quote, confirm the quote really closes the
// string in the given container context (§4.4 rule 3).
func closingFollowSet(ctx string) []rune {
	switch ctx {
	case "key":
		return []rune{':'}
	case "objectValue":
		return []rune{',', '}'}
	case "arrayElement":
		return []rune{',', ']'}
	default:
		return nil
	}
}

// parseQuotedString consumes an opening quote (already known to be at
// p.pos), its body with escape processing, and a context-aware closing
// quote lookahead.
func (p *fixParser) parseQuotedString(ctx string, fixes FixSet) (*StringValue, error) {
	opener := p.peek()
	kind := quoteKindFor(opener)
	width := 1
	if p.matchesTriple(opener) {
		width = 3
		if kind == quoteBacktick {
			kind = quoteTripleBacktick
		} else {
			kind = quoteTripleDouble
		}
	}
	p.pos += width

	if kind == quoteTripleBacktick {
		p.stripLangHint()
	}

	var b strings.Builder
	closeChar := quoteChar(kind)
	triple := isTriple(kind)

	for {
		if p.eof() {
			fixes.Add(FixMissingCloseQuote)
			return finishQuotedIncomplete(b.String(), kind, triple), nil
		}
		c := p.peek()

		if c == '\\' && !triple {
			p.advance()
			if p.eof() {
				break
			}
			b.WriteString(p.readEscape())
			continue
		}

		if c == closeChar {
			if triple {
				if p.matchesExactly(closeChar, 3) {
					p.pos += 3
					return finishQuoted(b.String(), kind, triple), nil
				}
				b.WriteRune(p.advance())
				continue
			}

			save := p.pos
			p.advance()
			if p.closesHere(ctx) {
				return &StringValue{S: b.String(), Completion: Complete}, nil
			}
			p.pos = save
			b.WriteRune(p.advance())
			continue
		}

		b.WriteRune(p.advance())
	}

	fixes.Add(FixMissingCloseQuote)
	return finishQuotedIncomplete(b.String(), kind, triple), nil
}

func finishQuoted(content string, kind quoteKind, triple bool) *StringValue {
	if triple {
		content = dedent(content)
	}
	return &StringValue{S: content, Completion: Complete}
}

// finishQuotedIncomplete builds the string a closing quote was never found
// for: its closing delimiter was never observed, so it is marked Incomplete
// the same way a truncated array/object is (§4.4 rule re: FixMissingCloseQuote).
func finishQuotedIncomplete(content string, kind quoteKind, triple bool) *StringValue {
	if triple {
		content = dedent(content)
	}
	return &StringValue{S: content, Completion: Incomplete}
}

func quoteKindFor(c rune) quoteKind {
	switch c {
	case '\'':
		return quoteSingle
	case '`':
		return quoteBacktick
	default:
		return quoteDouble
	}
}

func (p *fixParser) matchesTriple(c rune) bool {
	return p.pos+2 < len(p.src) && p.src[p.pos+1] == c && p.src[p.pos+2] == c
}

func (p *fixParser) matchesExactly(c rune, n int) bool {
	if p.pos+n > len(p.src) {
		return false
	}
	for i := 0; i < n; i++ {
		if p.src[p.pos+i] != c {
			return false
		}
	}
	return true
}

// closesHere looks ahead (without consuming) past whitespace for a
// follow character appropriate to ctx, or end of input.
func (p *fixParser) closesHere(ctx string) bool {
	i := p.pos
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	if i >= len(p.src) {
		return true
	}
	follow := p.src[i]
	for _, r := range closingFollowSet(ctx) {
		if r == follow {
			return true
		}
	}
	return false
}

func (p *fixParser) readEscape() string {
	c := p.advance()
	switch c {
	case '"', '\'', '\\', '/':
		return string(c)
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'u':
		if p.pos+4 <= len(p.src) {
			hex := string(p.src[p.pos : p.pos+4])
			var r rune
			if _, err := fmt.Sscanf(hex, "%04x", &r); err == nil {
				p.pos += 4
				return string(r)
			}
		}
		return "\\u"
	default:
		return "\\" + string(c)
	}
}

// stripLangHint discards an optional first-line language tag right after
// a ``` opener, e.g. the "json" in "```json\n{...}".
func (p *fixParser) stripLangHint() {
	start := p.pos
	i := start
	for i < len(p.src) && isIdentCont(p.src[i]) {
		i++
	}
	if i == start {
		return
	}
	if i < len(p.src) && p.src[i] == '\n' {
		p.pos = i + 1
	}
}

// dedent implements the triple-quote dedent rule: strip a leading empty
// line after the opener, then remove the minimum common leading
// whitespace prefix shared by all non-empty lines.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}
	if minIndent <= 0 {
		return strings.Join(lines, "\n")
	}
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// parseUnquoted consumes a bare token per §4.4 rule 2, terminating
// according to the container context's rule, and classifies the result
// as null/bool/number/NaN-Infinity-string/plain string.
func (p *fixParser) parseUnquoted(ctx string) Value {
	var b strings.Builder
	ranToEOF := true
	for !p.eof() {
		c := p.peek()
		switch ctx {
		case "top":
			if c == '{' || c == '[' {
				ranToEOF = false
				goto done
			}
		case "key":
			if c == ':' {
				ranToEOF = false
				goto done
			}
		case "objectValue":
			if c == '}' {
				ranToEOF = false
				goto done
			}
			if c == ',' {
				ranToEOF = false
				goto done
			}
		case "arrayElement":
			if c == ',' || c == ']' {
				ranToEOF = false
				goto done
			}
		}
		b.WriteRune(p.advance())
	}
done:
	text := strings.TrimSpace(b.String())
	return classifyBareword(text, ranToEOF)
}

// classifyBareword interprets a scanned token as null/bool/number/string.
// ranToEOF marks a token that ran straight into the end of input with no
// delimiter observed after it: its number/string reading is ambiguous
// (more digits/characters could have followed in a streaming source), so
// it is marked Incomplete rather than Complete.
func classifyBareword(text string, ranToEOF bool) Value {
	switch text {
	case "null":
		return Null
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	case "NaN", "Infinity", "-Infinity":
		return &StringValue{S: text, Completion: completionFor(ranToEOF)}
	}
	if raw, end, ok := scanNumber([]rune(text), 0); ok && end == len([]rune(text)) {
		return &NumberValue{Raw: raw, Completion: completionFor(ranToEOF)}
	}
	return &StringValue{S: text, Completion: completionFor(ranToEOF)}
}

func completionFor(ranToEOF bool) CompletionState {
	if ranToEOF {
		return Incomplete
	}
	return Complete
}
