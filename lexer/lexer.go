// Package lexer implements a context-aware scanner for C/AL source text,
// adapted from the scanning approach in
// cuelang.org/go/cue/scanner, but driven by an explicit context stack
// (spec §4.1) instead of a single flat scanning mode, since C/AL's
// brace and apostrophe semantics change with where in the grammar the
// scanner currently is.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// Lexer holds scanning state for one pass over a source buffer. Use Lex for
// the common case of tokenizing a whole buffer; Lexer itself is exported so
// callers needing finer control (e.g. incremental re-lexing experiments)
// can drive it token by token with Scan.
type Lexer struct {
	src []byte

	offset int // byte offset of the next unread byte
	line   int // 1-based line of the next unread byte
	col    int // 1-based column of the next unread byte

	contexts   []context
	braceDepth int

	underflowDetected bool
	strayRightBraces  int

	prevKind token.Kind
	hasPrev  bool
}

// New returns a Lexer positioned at the start of src.
func New(src []byte) *Lexer {
	return &Lexer{
		src:      src,
		offset:   0,
		line:     1,
		col:      1,
		contexts: []context{Normal},
	}
}

// Lex tokenizes src in a single pass and returns the complete token vector,
// terminated by a sentinel EOF token (spec §4.1). Lex never panics: every
// unrecognizable construct becomes an Unknown token instead.
func Lex(src []byte) []token.Token {
	l := New(src)
	var tokens []token.Token
	for {
		tok := l.Scan()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) eof() bool { return l.offset >= len(l.src) }

func (l *Lexer) byteAt(off int) byte {
	if off < 0 || off >= len(l.src) {
		return 0
	}
	return l.src[off]
}

func (l *Lexer) current() byte { return l.byteAt(l.offset) }

// advance consumes n bytes starting at the current offset, keeping line/col
// in step. It must not be called across a boundary that would split a
// multi-byte rune when the caller cares about rune-accurate columns; callers
// scanning raw text (strings, comments, unknown runs) only need byte-accurate
// offsets, which advance always preserves.
func (l *Lexer) advance(n int) {
	end := l.offset + n
	if end > len(l.src) {
		end = len(l.src)
	}
	for l.offset < end {
		if l.src[l.offset] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.offset++
	}
}

// runeAt decodes the rune starting at byte offset off along with its width.
func (l *Lexer) runeAt(off int) (rune, int) {
	if off >= len(l.src) {
		return -1, 0
	}
	r, w := utf8.DecodeRune(l.src[off:])
	return r, w
}

func isIdentStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || ('0' <= r && r <= '9')
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// hasFoldPrefix reports whether src[off:] begins with prefix, compared
// case-insensitively byte by byte (prefix is always plain ASCII here).
func hasFoldPrefix(src []byte, off int, prefix string) bool {
	if off+len(prefix) > len(src) {
		return false
	}
	return strings.EqualFold(string(src[off:off+len(prefix)]), prefix)
}

// skipTrivia advances past whitespace and comments that the lexer itself
// must consume silently to find the next real token (spec: comments are
// never tokenized; package trivia reconstructs them later from the source
// buffer and the token vector, not from the lexer). It returns a non-nil
// token only when it runs into an unclosed comment, in which case that
// Unknown token IS the next token and scanning resumes after it.
func (l *Lexer) skipTrivia() *token.Token {
	for !l.eof() {
		ch := l.current()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			l.advance(1)
		case ch == '/' && l.byteAt(l.offset+1) == '/':
			for !l.eof() && l.current() != '\n' {
				l.advance(1)
			}
		case ch == '/' && l.byteAt(l.offset+1) == '*':
			startLine, startCol, startOff := l.line, l.col, l.offset
			l.advance(2)
			closed := false
			for !l.eof() {
				if l.current() == '*' && l.byteAt(l.offset+1) == '/' {
					l.advance(2)
					closed = true
					break
				}
				l.advance(1)
			}
			if !closed {
				return l.unknownSpan(startOff, startLine, startCol)
			}
		case ch == '{' && l.top() == CodeBlock:
			startLine, startCol, startOff := l.line, l.col, l.offset
			l.advance(1)
			closed := false
			for !l.eof() {
				if l.current() == '}' {
					l.advance(1)
					closed = true
					break
				}
				l.advance(1)
			}
			if !closed {
				return l.unknownSpan(startOff, startLine, startCol)
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) unknownSpan(startOff, startLine, startCol int) *token.Token {
	t := token.Token{
		Kind:        token.Unknown,
		Text:        string(l.src[startOff:l.offset]),
		Line:        startLine,
		Column:      startCol,
		StartOffset: startOff,
		EndOffset:   l.offset,
	}
	return &t
}

func (l *Lexer) emit(kind token.Kind, text string, startOff, startLine, startCol int) token.Token {
	t := token.Token{
		Kind:        kind,
		Text:        text,
		Line:        startLine,
		Column:      startCol,
		StartOffset: startOff,
		EndOffset:   l.offset,
	}
	l.prevKind = kind
	l.hasPrev = true
	return t
}

// Scan returns the next token, advancing the lexer past it. Once an EOF
// token has been returned, further calls keep returning EOF.
func (l *Lexer) Scan() token.Token {
	if unk := l.skipTrivia(); unk != nil {
		l.prevKind = token.Unknown
		l.hasPrev = true
		return *unk
	}

	startOff, startLine, startCol := l.offset, l.line, l.col

	if l.eof() {
		return token.Token{
			Kind:        token.EOF,
			Text:        "",
			Line:        startLine,
			Column:      startCol,
			StartOffset: len(l.src),
			EndOffset:   len(l.src),
		}
	}

	r, w := l.runeAt(l.offset)

	switch {
	case isIdentStart(r):
		return l.scanIdentifier(startOff, startLine, startCol)
	case isDigit(r):
		return l.scanNumber(startOff, startLine, startCol)
	}

	switch r {
	case '"':
		return l.scanQuotedIdentifier(startOff, startLine, startCol)
	case '\'':
		return l.scanStringLiteral(startOff, startLine, startCol)
	case '{':
		return l.scanLeftBrace(startOff, startLine, startCol)
	case '}':
		return l.scanRightBrace(startOff, startLine, startCol)
	case '(':
		l.advance(1)
		return l.emit(token.LeftParen, "(", startOff, startLine, startCol)
	case ')':
		l.advance(1)
		return l.emit(token.RightParen, ")", startOff, startLine, startCol)
	case '[':
		l.advance(1)
		return l.emit(token.LeftBracket, "[", startOff, startLine, startCol)
	case ']':
		l.advance(1)
		return l.emit(token.RightBracket, "]", startOff, startLine, startCol)
	case ';':
		l.advance(1)
		return l.emit(token.Semicolon, ";", startOff, startLine, startCol)
	case ',':
		l.advance(1)
		return l.emit(token.Comma, ",", startOff, startLine, startCol)
	case ':':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.Assign, ":=", startOff, startLine, startCol)
		}
		if l.byteAt(l.offset+1) == ':' {
			l.advance(2)
			return l.emit(token.DoubleColon, "::", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Colon, ":", startOff, startLine, startCol)
	case '.':
		if l.byteAt(l.offset+1) == '.' {
			l.advance(2)
			return l.emit(token.DotDot, "..", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Dot, ".", startOff, startLine, startCol)
	case '+':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.PlusAssign, "+=", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Plus, "+", startOff, startLine, startCol)
	case '-':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.MinusAssign, "-=", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Minus, "-", startOff, startLine, startCol)
	case '*':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.MultiplyAssign, "*=", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Multiply, "*", startOff, startLine, startCol)
	case '/':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.DivideAssign, "/=", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Divide, "/", startOff, startLine, startCol)
	case '=':
		l.advance(1)
		return l.emit(token.Equal, "=", startOff, startLine, startCol)
	case '<':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.LessEqual, "<=", startOff, startLine, startCol)
		}
		if l.byteAt(l.offset+1) == '>' {
			l.advance(2)
			return l.emit(token.NotEqual, "<>", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Less, "<", startOff, startLine, startCol)
	case '>':
		if l.byteAt(l.offset+1) == '=' {
			l.advance(2)
			return l.emit(token.GreaterEqual, ">=", startOff, startLine, startCol)
		}
		l.advance(1)
		return l.emit(token.Greater, ">", startOff, startLine, startCol)
	case '?':
		l.advance(1)
		return l.emit(token.TernaryOperator, "?", startOff, startLine, startCol)
	case '#':
		return l.scanPreprocessor(startOff, startLine, startCol)
	}

	// Nothing in the closed grammar recognizes this character: absorb
	// exactly one rune as Unknown rather than failing.
	l.advance(w)
	return l.emit(token.Unknown, string(r), startOff, startLine, startCol)
}

func (l *Lexer) scanIdentifier(startOff, startLine, startCol int) token.Token {
	allowApostrophe := l.top() == SectionLevel
	for !l.eof() {
		r, w := l.runeAt(l.offset)
		if isIdentContinue(r) || (allowApostrophe && r == '\'') {
			l.advance(w)
			continue
		}
		break
	}
	text := string(l.src[startOff:l.offset])

	if strings.EqualFold(text, "OBJECT") {
		if tok, ok := l.tryScanObjectProperties(text, startOff, startLine, startCol); ok {
			return tok
		}
	}

	kind := token.Lookup(text)

	if kind.IsDataType() {
		kind = l.reclassifyDataType(kind)
	} else if kind == token.Code && (l.current() == '@' || l.current() == '[') {
		// "Code" is also the CODE section keyword, which Lookup prefers; a
		// trailing "@" or "[" marks it as the Code data type or a variable
		// name instead, so a bare "Code" stays the section keyword.
		kind = l.reclassifyDataType(token.CodeType)
	}

	switch kind {
	case token.Object:
		l.push(ObjectLevel)
	case token.Begin:
		l.push(CodeBlock)
	case token.End:
		l.popIfTop(CodeBlock)
	}

	return l.emit(kind, text, startOff, startLine, startCol)
}

// tryScanObjectProperties recognizes the compound OBJECT-PROPERTIES token
// (spec §4.1): an OBJECT identifier immediately (no intervening trivia)
// followed by "-PROPERTIES".
func (l *Lexer) tryScanObjectProperties(objectText string, startOff, startLine, startCol int) (token.Token, bool) {
	if l.current() != '-' {
		return token.Token{}, false
	}
	const suffix = "-PROPERTIES"
	if !hasFoldPrefix(l.src, l.offset, suffix) {
		return token.Token{}, false
	}
	after := l.offset + len(suffix)
	if after < len(l.src) {
		if r, _ := l.runeAt(after); isIdentContinue(r) {
			return token.Token{}, false
		}
	}
	l.advance(len(suffix))
	text := objectText + string(l.src[startOff+len(objectText):l.offset])
	return l.emit(token.ObjectProperties, text, startOff, startLine, startCol), true
}

// reclassifyDataType applies the §4.1 rules that decide whether a data-type
// keyword is really being used as an identifier: a trailing "@" (variable id
// suffix) or a trailing "[" not preceded by ":" both mean "identifier", not
// "data type".
func (l *Lexer) reclassifyDataType(kind token.Kind) token.Kind {
	next := l.current()
	switch next {
	case '@':
		return token.Identifier
	case '[':
		if l.hasPrev && l.prevKind == token.Colon {
			return kind
		}
		return token.Identifier
	default:
		return kind
	}
}

func (l *Lexer) scanPreprocessor(startOff, startLine, startCol int) token.Token {
	l.advance(1) // consume '#'
	r, _ := l.runeAt(l.offset)
	if !isIdentStart(r) {
		return l.emit(token.Unknown, "#", startOff, startLine, startCol)
	}
	for !l.eof() {
		r, w := l.runeAt(l.offset)
		if isIdentContinue(r) {
			l.advance(w)
			continue
		}
		break
	}
	text := string(l.src[startOff:l.offset])
	return l.emit(token.PreprocessorDirective, text, startOff, startLine, startCol)
}

func (l *Lexer) scanNumber(startOff, startLine, startCol int) token.Token {
	digitsStart := l.offset
	for !l.eof() && isDigit(rune(l.current())) {
		l.advance(1)
	}
	ndigits := l.offset - digitsStart
	kind := token.Integer

	// Decimal fraction takes priority: "123.45".
	if l.current() == '.' && isDigit(rune(l.byteAt(l.offset+1))) {
		l.advance(1)
		for !l.eof() && isDigit(rune(l.current())) {
			l.advance(1)
		}
		text := string(l.src[startOff:l.offset])
		return l.emit(token.Decimal, text, startOff, startLine, startCol)
	}

	switch l.current() {
	case 'D', 'd':
		if ndigits == 1 || ndigits == 6 || ndigits == 8 {
			l.advance(1) // consume D
			kind = token.Date
			kind = l.tryExtendToDateTime(kind, ndigits)
		}
	case 'T', 't':
		if ndigits >= 6 || ndigits == 1 {
			l.advance(1)
			kind = token.Time
		}
	}

	text := string(l.src[startOff:l.offset])
	return l.emit(kind, text, startOff, startLine, startCol)
}

// tryExtendToDateTime implements the DateTime continuation rule: a Date
// literal immediately followed by a digit run and "T" (the time-of-day
// part), or the bare "0DT" undefined-datetime spelling.
func (l *Lexer) tryExtendToDateTime(kind token.Kind, dateDigits int) token.Kind {
	if isDigit(rune(l.current())) {
		mark := l.offset
		markLine, markCol := l.line, l.col
		for !l.eof() && isDigit(rune(l.current())) {
			l.advance(1)
		}
		if l.current() == 'T' || l.current() == 't' {
			l.advance(1)
			return token.DateTime
		}
		// Not actually a time-of-day suffix; put the digits back so they
		// form their own token next.
		l.offset = mark
		l.line, l.col = markLine, markCol
		return kind
	}
	if (l.current() == 'T' || l.current() == 't') && dateDigits == 1 {
		l.advance(1)
		return token.DateTime
	}
	return kind
}

func (l *Lexer) scanQuotedIdentifier(startOff, startLine, startCol int) token.Token {
	l.advance(1) // opening quote
	for {
		if l.eof() || l.current() == '\n' {
			return l.emit(token.Unknown, string(l.src[startOff:l.offset]), startOff, startLine, startCol)
		}
		if l.current() == '"' {
			l.advance(1)
			break
		}
		l.advance(1)
	}
	text := string(l.src[startOff:l.offset])
	return l.emit(token.QuotedIdentifier, text, startOff, startLine, startCol)
}

func (l *Lexer) scanStringLiteral(startOff, startLine, startCol int) token.Token {
	l.advance(1) // opening quote
	for {
		if l.eof() || l.current() == '\n' {
			return l.emit(token.Unknown, string(l.src[startOff:l.offset]), startOff, startLine, startCol)
		}
		if l.current() == '\'' {
			if l.byteAt(l.offset+1) == '\'' {
				l.advance(2) // escaped quote
				continue
			}
			l.advance(1)
			break
		}
		l.advance(1)
	}
	text := string(l.src[startOff:l.offset])
	return l.emit(token.String, text, startOff, startLine, startCol)
}

func (l *Lexer) scanLeftBrace(startOff, startLine, startCol int) token.Token {
	l.advance(1)
	l.braceDepth++
	if l.top() == ObjectLevel && l.braceDepth == 1 {
		l.push(SectionLevel)
	}
	return l.emit(token.LeftBrace, "{", startOff, startLine, startCol)
}

func (l *Lexer) scanRightBrace(startOff, startLine, startCol int) token.Token {
	if l.braceDepth == 0 {
		l.advance(1)
		l.strayRightBraces++
		return l.emit(token.Unknown, "}", startOff, startLine, startCol)
	}
	l.advance(1)
	l.braceDepth--
	if l.braceDepth == 0 && l.top() == SectionLevel {
		l.popIfTop(SectionLevel)
	}
	return l.emit(token.RightBrace, "}", startOff, startLine, startCol)
}
