package diag

import (
	"strings"
	"testing"

	"github.com/klauskaan/C-AL-Language-sub006/token"
)

func tok(text string, line, col int) token.Token {
	return token.Token{Kind: token.Identifier, Text: text, Line: line, Column: col, StartOffset: 0, EndOffset: len(text)}
}

func TestSanitizeTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", sanitizeMaxLen+10)
	got := Sanitize(long)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Sanitize(long) = %q, want a truncation ellipsis suffix", got)
	}
	if len([]rune(got)) != sanitizeMaxLen+1 {
		t.Errorf("Sanitize(long) length = %d, want %d", len([]rune(got)), sanitizeMaxLen+1)
	}
}

func TestSanitizeControlCharacters(t *testing.T) {
	got := Sanitize("a\x01b")
	if strings.Contains(got, "\x01") {
		t.Errorf("Sanitize(control char) = %q, still contains a raw control byte", got)
	}
	if !strings.Contains(got, "char sanitized") {
		t.Errorf("Sanitize(control char) = %q, want a sanitized-char marker", got)
	}
}

func TestSanitizeWhitespaceFolded(t *testing.T) {
	got := Sanitize("a\nb\tc\rd")
	if got != "a b c d" {
		t.Errorf("Sanitize(whitespace) = %q, want %q", got, "a b c d")
	}
}

func TestNewFactoriesProduceExpectedCodes(t *testing.T) {
	at := tok("CustNo", 1, 1)
	tests := []struct {
		name string
		err  ParseError
		code Code
	}{
		{"New", New(at, "bad token %s", "X"), CodeGenericError},
		{"NewExpectedToken", NewExpectedToken(at, ";"), CodeExpectedToken},
		{"NewUnclosedBlock", NewUnclosedBlock(at, "FIELDS section"), CodeUnclosedBlock},
		{"NewALOnlySyntax", NewALOnlySyntax(at, "??"), CodeALOnlySyntax},
		{"NewErrorRecovery", NewErrorRecovery(at, "statement"), CodeErrorRecovery},
		{"NewPropertyValue", NewPropertyValue(at, "CaptionML"), CodePropertyValue},
	}
	for _, tt := range tests {
		if tt.err.Code() != tt.code {
			t.Errorf("%s code = %s, want %s", tt.name, tt.err.Code(), tt.code)
		}
		if tt.err.Severity() != Error {
			t.Errorf("%s severity = %s, want error", tt.name, tt.err.Severity())
		}
		if tt.err.Token() != at {
			t.Errorf("%s token = %+v, want %+v", tt.name, tt.err.Token(), at)
		}
	}
}

func TestFactoriesSanitizeInterpolatedText(t *testing.T) {
	at := tok("x", 1, 1)
	err := New(at, "unexpected %s", "a\x01b")
	if strings.Contains(err.Message(), "\x01") {
		t.Errorf("New() message = %q, leaked a raw control byte", err.Message())
	}
}

func TestParseErrorErrorFormat(t *testing.T) {
	at := tok("x", 4, 7)
	err := NewExpectedToken(at, ";")
	want := "4:7: Expected ;"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseErrorRange(t *testing.T) {
	at := token.Token{Line: 2, Column: 5, StartOffset: 10, EndOffset: 13}
	err := New(at, "x")
	sl, sc, el, ec := err.Range()
	if sl != 2 || sc != 5 || el != 2 || ec != 8 {
		t.Errorf("Range() = (%d,%d,%d,%d), want (2,5,2,8)", sl, sc, el, ec)
	}
}

func TestListErrorJoinsOnePerLine(t *testing.T) {
	list := List{
		NewExpectedToken(tok("a", 1, 1), ";"),
		NewExpectedToken(tok("b", 2, 1), ":"),
	}
	want := "1:1: Expected ;\n2:1: Expected :"
	if got := list.Error(); got != want {
		t.Errorf("List.Error() = %q, want %q", got, want)
	}
}

func TestEmptyListError(t *testing.T) {
	var list List
	if got := list.Error(); got != "" {
		t.Errorf("empty List.Error() = %q, want \"\"", got)
	}
}

func TestSeverityString(t *testing.T) {
	if Error.String() != "error" {
		t.Errorf("Error.String() = %q, want %q", Error.String(), "error")
	}
	if Warning.String() != "warning" {
		t.Errorf("Warning.String() = %q, want %q", Warning.String(), "warning")
	}
}
