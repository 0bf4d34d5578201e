// Package trivia computes the whitespace and comment spans occupying the
// gaps between tokens, on demand, from the source buffer and the token
// vector the lexer produced (spec §4.2). It is a pure, stateless utility:
// it never mutates its inputs and the lexer/parser never consult it.
package trivia

import (
	"fmt"
	"strings"

	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// Kind classifies one trivia span.
type Kind int

const (
	Whitespace Kind = iota
	Newline
	LineComment
	BlockComment
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Newline:
		return "newline"
	case LineComment:
		return "line-comment"
	case BlockComment:
		return "block-comment"
	default:
		return "unknown"
	}
}

// Span is one classified, contiguous run of trivia within a gap.
type Span struct {
	Kind        Kind
	Text        string
	StartOffset int
	EndOffset   int
}

// Result is the trivia occupying one inter-token gap, plus any advisory
// warnings raised while classifying it (spec §4.2, §7: trivia problems are
// always warnings, never diagnostics, and never block round-tripping).
type Result struct {
	Spans    []Span
	Warnings []string
}

// Text concatenates the gap's spans. For gaps of a token vector produced by
// lexer.Lex it equals the raw gap substring of source; a character the
// classifier does not recognize gets a warning but no span, so Text leaves
// it out.
func (r Result) Text() string {
	var b strings.Builder
	for _, s := range r.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Between returns the trivia occupying the gap immediately before
// tokens[i]. For i == 0 the gap is [0, tokens[0].StartOffset). For valid i
// it is [tokens[i-1].EndOffset, tokens[i].StartOffset). An out-of-range i
// returns an empty Result.
func Between(source []byte, tokens []token.Token, i int) Result {
	start, end, ok := gapBounds(tokens, i)
	if !ok {
		return Result{}
	}
	return classify(source, start, end)
}

// Trailing returns the trivia occupying the gap before the EOF token, i.e.
// the source tail after the last meaningful token. It is empty if there is
// no such gap, no EOF token exists, or EOF is the first token.
func Trailing(source []byte, tokens []token.Token) Result {
	if len(tokens) == 0 {
		return Result{}
	}
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		return Result{}
	}
	return Between(source, tokens, len(tokens)-1)
}

// Text returns the raw gap substring before tokens[i], using the same
// bounds rules as Between. It returns "" for an out-of-range i.
func Text(source []byte, tokens []token.Token, i int) string {
	start, end, ok := gapBounds(tokens, i)
	if !ok {
		return ""
	}
	return string(source[start:end])
}

func gapBounds(tokens []token.Token, i int) (start, end int, ok bool) {
	if i < 0 || i >= len(tokens) {
		return 0, 0, false
	}
	end = tokens[i].StartOffset
	if i == 0 {
		return 0, end, true
	}
	start = tokens[i-1].EndOffset
	return start, end, true
}

// classify scans a gap left to right, applying the rules of spec §4.2.
func classify(source []byte, start, end int) Result {
	var res Result
	pos := start
	for pos < end {
		gap := source[pos:end]
		switch {
		case hasPrefix(gap, "//"):
			pos = appendLineComment(source, &res, pos, end)
		case hasPrefix(gap, "/*"):
			pos = appendBlockCommentLike(source, &res, pos, end, "/*", "*/")
		case gap[0] == '{':
			pos = appendBraceComment(source, &res, pos, end)
		case hasPrefix(gap, "\r\n"):
			res.Spans = append(res.Spans, Span{Kind: Newline, Text: "\r\n", StartOffset: pos, EndOffset: pos + 2})
			pos += 2
		case gap[0] == '\r' || gap[0] == '\n':
			res.Spans = append(res.Spans, Span{Kind: Newline, Text: string(gap[0]), StartOffset: pos, EndOffset: pos + 1})
			pos++
		case gap[0] == ' ' || gap[0] == '\t':
			pos = appendWhitespace(source, &res, pos, end)
		default:
			res.Warnings = append(res.Warnings, fmt.Sprintf("unexpected character in trivia: %s", sanitizeChar(gap[0])))
			pos++
		}
	}
	return res
}

func hasPrefix(gap []byte, prefix string) bool {
	return len(gap) >= len(prefix) && string(gap[:len(prefix)]) == prefix
}

func appendWhitespace(source []byte, res *Result, pos, end int) int {
	start := pos
	for pos < end && (source[pos] == ' ' || source[pos] == '\t') {
		pos++
	}
	res.Spans = append(res.Spans, Span{Kind: Whitespace, Text: string(source[start:pos]), StartOffset: start, EndOffset: pos})
	return pos
}

func appendLineComment(source []byte, res *Result, pos, end int) int {
	start := pos
	for pos < end && source[pos] != '\n' && source[pos] != '\r' {
		pos++
	}
	res.Spans = append(res.Spans, Span{Kind: LineComment, Text: string(source[start:pos]), StartOffset: start, EndOffset: pos})
	return pos
}

func appendBlockCommentLike(source []byte, res *Result, pos, end int, open, close string) int {
	start := pos
	pos += len(open)
	for pos < end {
		if pos+len(close) <= end && string(source[pos:pos+len(close)]) == close {
			pos += len(close)
			res.Spans = append(res.Spans, Span{Kind: BlockComment, Text: string(source[start:pos]), StartOffset: start, EndOffset: pos})
			return pos
		}
		pos++
	}
	res.Spans = append(res.Spans, Span{Kind: BlockComment, Text: string(source[start:pos]), StartOffset: start, EndOffset: pos})
	return pos
}

func appendBraceComment(source []byte, res *Result, pos, end int) int {
	start := pos
	pos++
	for pos < end {
		if source[pos] == '}' {
			pos++
			text := string(source[start:pos])
			res.Spans = append(res.Spans, Span{Kind: BlockComment, Text: text, StartOffset: start, EndOffset: pos})
			if looksLikeCode(text) {
				res.Warnings = append(res.Warnings, fmt.Sprintf("brace comment looks like code: %s", previewFor(text)))
			}
			return pos
		}
		pos++
	}
	text := string(source[start:pos])
	res.Spans = append(res.Spans, Span{Kind: BlockComment, Text: text, StartOffset: start, EndOffset: pos})
	if looksLikeCode(text) {
		res.Warnings = append(res.Warnings, fmt.Sprintf("brace comment looks like code: %s", previewFor(text)))
	}
	return pos
}

// looksLikeCode scores the inner text of a brace comment against the
// heuristic patterns of spec §4.2.
func looksLikeCode(braceText string) bool {
	inner := braceText
	if len(inner) >= 2 && inner[0] == '{' {
		inner = inner[1:]
	}
	if len(inner) >= 1 && inner[len(inner)-1] == '}' {
		inner = inner[:len(inner)-1]
	}
	trimmed := strings.TrimSpace(inner)
	if len(strings.ReplaceAll(trimmed, " ", "")) < 3 {
		return false
	}

	upper := strings.ToUpper(inner)
	score := 0

	if containsAssignToIdent(inner) {
		score += 2
	}
	if containsStatementSemicolon(inner) {
		score += 2
	}
	pairScored := []struct {
		pattern string
		pts     int
	}{
		{"BEGIN", 2},
		{"END;", 2},
	}
	for _, p := range pairScored {
		if strings.Contains(upper, p.pattern) {
			score += p.pts
		}
	}
	if strings.Contains(upper, "IF") && strings.Contains(upper, "THEN") {
		score += 2
	}
	if strings.Contains(upper, "FOR") && strings.Contains(upper, "TO") {
		score += 2
	}
	if strings.Contains(upper, "WHILE") && strings.Contains(upper, "DO") {
		score += 2
	}
	if strings.Contains(upper, "CASE") && strings.Contains(upper, "OF") {
		score += 2
	}
	for _, kw := range []string{"REPEAT", "UNTIL", "WITH", "EXIT"} {
		if strings.Contains(upper, kw) {
			score++
		}
	}

	return score >= 2
}

func containsAssignToIdent(s string) bool {
	idx := strings.Index(s, ":=")
	if idx < 0 {
		return false
	}
	rest := strings.TrimLeft(s[idx+2:], " \t\r\n")
	if rest == "" {
		return false
	}
	r := rune(rest[0])
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func containsStatementSemicolon(s string) bool {
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		trimmed := strings.TrimRight(strings.TrimSuffix(strings.TrimRight(line, "\r"), "\r"), " \t")
		if strings.HasSuffix(trimmed, ";") {
			return true
		}
	}
	return false
}

const previewCap = 30

// previewFor produces a sanitized, length-capped preview of brace-comment
// content for a warning message: truncated, with any control character
// stripped so a warning can never leak raw non-printable source bytes.
func previewFor(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r < 0x20 {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= previewCap {
			break
		}
	}
	out := b.String()
	if len(out) > previewCap {
		out = out[:previewCap]
	}
	if len(text) > len(out) {
		out += "…"
	}
	return out
}

func sanitizeChar(b byte) string {
	return fmt.Sprintf("[char sanitized: code %d]", b)
}
