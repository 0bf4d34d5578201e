// Package diag is the parser's diagnostic emitter (spec §4.4, §7):
// the sole facility allowed to construct ParseError values, so that every
// diagnostic's code is one of the closed set below and every interpolated
// fragment of source text it carries has passed through the sanitizer.
//
// Adapted from the position-bearing Error/List shape of
// cuelang.org/go/cue/errors, but closed over a fixed string-code taxonomy
// (spec §7) instead of CUE's open-ended path-based errors, and with
// construction locked down per spec §9: ParseError's constructor is
// unexported, so every diagnostic in this module is necessarily produced by
// one of the New* factories below.
package diag

import (
	"fmt"
	"strings"

	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// Code is a stable, string-valued diagnostic code (spec §7's closed set).
type Code string

const (
	CodeGenericError     Code = "parse-error"
	CodeExpectedToken    Code = "parse-expected-token"
	CodeUnclosedBlock    Code = "parse-unclosed-block"
	CodeALOnlySyntax     Code = "parse-al-only-syntax"
	CodeErrorRecovery    Code = "parse-error-recovery"
	CodePropertyValue    Code = "parse-property-value"
)

// Severity classifies a ParseError. All core diagnostics default to Error;
// the type exists so a future warning-level diagnostic has somewhere to
// live without changing the ParseError shape.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// ParseError is one diagnostic: a sanitized message, a stable code, the
// token used for positioning, and a severity. Its constructor is
// unexported; every ParseError in existence was built by a New* factory in
// this package, each of which sanitizes its interpolated arguments first.
type ParseError struct {
	message  string
	code     Code
	tok      token.Token
	severity Severity
}

func newParseError(code Code, tok token.Token, severity Severity, message string) ParseError {
	return ParseError{message: message, code: code, tok: tok, severity: severity}
}

// Message returns the sanitized human-readable text.
func (e ParseError) Message() string { return e.message }

// Code returns the stable diagnostic code.
func (e ParseError) Code() Code { return e.code }

// Token returns the token used for positioning; its Line/Column/offsets are
// the canonical source of the diagnostic's reported range.
func (e ParseError) Token() token.Token { return e.tok }

// Severity returns the diagnostic's severity (defaults to Error).
func (e ParseError) Severity() Severity { return e.severity }

// Error implements the error interface by rendering "line:col: message".
func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.tok.Line, e.tok.Column, e.message)
}

// Range returns the diagnostic's display range per the §6 contract:
// [line, col) .. [line, col + (endOffset - startOffset)).
func (e ParseError) Range() (startLine, startCol, endLine, endCol int) {
	width := e.tok.EndOffset - e.tok.StartOffset
	return e.tok.Line, e.tok.Column, e.tok.Line, e.tok.Column + width
}

// List is an ordered collection of diagnostics, in the order the parser
// detected them (spec §5: "Diagnostics are appended in the order the parser
// detects them").
type List []ParseError

// Error renders every diagnostic, one per line.
func (l List) Error() string {
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

const sanitizeMaxLen = 30

// Sanitize truncates s to at most sanitizeMaxLen runes (appending "…" when
// truncated), folds newline, carriage return and tab into a space, and
// replaces every other control character and every rune above U+FFFF with
// "[char sanitized: code N]". Every
// factory below routes interpolated source text through this before it
// reaches a ParseError's message (spec §4.4).
func Sanitize(s string) string {
	var b strings.Builder
	count := 0
	truncated := false
	for _, r := range s {
		if count >= sanitizeMaxLen {
			truncated = true
			break
		}
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "[char sanitized: code %d]", r)
		case r > 0xFFFF:
			fmt.Fprintf(&b, "[char sanitized: code %d]", r)
		default:
			b.WriteRune(r)
		}
		count++
	}
	out := b.String()
	if truncated {
		out += "…"
	}
	return out
}

// New creates a generic parse-error diagnostic (spec §7: "generic unmapped
// parse failure").
func New(tok token.Token, format string, args ...interface{}) ParseError {
	return newParseError(CodeGenericError, tok, Error, sanitizef(format, args...))
}

// NewExpectedToken reports that a specific required token was absent
// (missing ";", missing ":", missing "END", etc).
func NewExpectedToken(tok token.Token, expected string) ParseError {
	return newParseError(CodeExpectedToken, tok, Error, fmt.Sprintf("Expected %s", Sanitize(expected)))
}

// NewUnclosedBlock reports that an opening delimiter had no matching closer
// at the expected depth.
func NewUnclosedBlock(openTok token.Token, what string) ParseError {
	return newParseError(CodeUnclosedBlock, openTok, Error, fmt.Sprintf("Expected } to close %s", Sanitize(what)))
}

// NewALOnlySyntax reports an AL-only construct (keyword, access modifier,
// "??", "#directive", or a "var" parameter modifier) encountered in C/AL.
func NewALOnlySyntax(tok token.Token, construct string) ParseError {
	return newParseError(CodeALOnlySyntax, tok, Error, fmt.Sprintf("%s is AL-only syntax and is not valid C/AL", Sanitize(construct)))
}

// NewErrorRecovery reports that the parser discarded one or more tokens to
// resynchronize, anchored at the first skipped token.
func NewErrorRecovery(firstSkipped token.Token, reason string) ParseError {
	return newParseError(CodeErrorRecovery, firstSkipped, Error, fmt.Sprintf("skipped tokens while recovering from an error: %s", Sanitize(reason)))
}

// NewPropertyValue reports a syntactically empty/malformed property value
// (the "=}" with no intervening whitespace case, spec §4.3).
func NewPropertyValue(tok token.Token, property string) ParseError {
	return newParseError(CodePropertyValue, tok, Error, fmt.Sprintf("property %s has a malformed value", Sanitize(property)))
}

func sanitizef(format string, args ...interface{}) string {
	sanitizedArgs := make([]interface{}, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			sanitizedArgs[i] = Sanitize(s)
		} else {
			sanitizedArgs[i] = a
		}
	}
	return fmt.Sprintf(format, sanitizedArgs...)
}
