package trivia

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/klauskaan/C-AL-Language-sub006/lexer"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

func kinds(spans []Span) []Kind {
	out := make([]Kind, len(spans))
	for i, s := range spans {
		out[i] = s.Kind
	}
	return out
}

func TestBetweenClassifiesLeadingGap(t *testing.T) {
	src := []byte("  OBJECT")
	toks := lexer.Lex(src)
	res := Between(src, toks, 0)
	if diff := cmp.Diff([]Kind{Whitespace}, kinds(res.Spans)); diff != "" {
		t.Errorf("Between() kinds mismatch (-want +got):\n%s", diff)
	}
	if res.Text() != "  " {
		t.Errorf("Between().Text() = %q, want %q", res.Text(), "  ")
	}
}

func TestBetweenLineComment(t *testing.T) {
	src := []byte("OBJECT // trailing note\nTable")
	toks := lexer.Lex(src)
	// toks: OBJECT, Table, EOF -> gap before Table (index 1) holds the comment.
	res := Between(src, toks, 1)
	if diff := cmp.Diff([]Kind{Whitespace, LineComment, Newline}, kinds(res.Spans)); diff != "" {
		t.Errorf("Between() kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestBetweenBlockComment(t *testing.T) {
	src := []byte("OBJECT /* note */ Table")
	toks := lexer.Lex(src)
	res := Between(src, toks, 1)
	if diff := cmp.Diff([]Kind{Whitespace, BlockComment, Whitespace}, kinds(res.Spans)); diff != "" {
		t.Errorf("Between() kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestBetweenBraceCommentNotCode(t *testing.T) {
	// The lexer only treats "{" as a comment inside BEGIN..END; elsewhere it
	// is a LeftBrace token and never reaches a gap.
	src := []byte("BEGIN { just a note } END")
	toks := lexer.Lex(src)
	res := Between(src, toks, 1)
	if diff := cmp.Diff([]Kind{Whitespace, BlockComment, Whitespace}, kinds(res.Spans)); diff != "" {
		t.Errorf("Between() kinds mismatch (-want +got):\n%s", diff)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Between() warnings = %v, want none", res.Warnings)
	}
}

func TestBetweenBraceCommentLooksLikeCode(t *testing.T) {
	src := []byte("BEGIN { x := 1; } END")
	toks := lexer.Lex(src)
	res := Between(src, toks, 1)
	if len(res.Warnings) == 0 {
		t.Errorf("Between() expected a brace-comment-looks-like-code warning, got none")
	}
}

func TestBetweenUnexpectedCharWarns(t *testing.T) {
	src := []byte("OBJECT ! Table")
	// lexer.Lex turns "!" into an Unknown token, so build a token vector
	// whose gap before "Table" still holds it.
	toks := []token.Token{
		{Kind: token.Object, Text: "OBJECT", StartOffset: 0, EndOffset: 6},
		{Kind: token.Identifier, Text: "Table", StartOffset: 9, EndOffset: 14},
		{Kind: token.EOF, StartOffset: 14, EndOffset: 14},
	}
	res := Between(src, toks, 1)
	if len(res.Warnings) == 0 {
		t.Errorf("Between() expected a warning for the stray '!', got none")
	}
}

func TestBetweenOutOfRangeIsEmpty(t *testing.T) {
	src := []byte("OBJECT")
	toks := lexer.Lex(src)
	res := Between(src, toks, len(toks)+5)
	if len(res.Spans) != 0 || len(res.Warnings) != 0 {
		t.Errorf("Between() out of range = %+v, want empty Result", res)
	}
}

func TestTrailing(t *testing.T) {
	src := []byte("OBJECT   ")
	toks := lexer.Lex(src)
	res := Trailing(src, toks)
	if diff := cmp.Diff([]Kind{Whitespace}, kinds(res.Spans)); diff != "" {
		t.Errorf("Trailing() kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTrailingEmptyWithoutEOF(t *testing.T) {
	res := Trailing([]byte("x"), []token.Token{{Kind: token.Identifier, Text: "x"}})
	if len(res.Spans) != 0 {
		t.Errorf("Trailing() without an EOF token = %+v, want empty", res)
	}
}

// TestRoundTrip verifies the spec invariant that joining every token's text
// with the trivia gap before it reconstructs the original source exactly.
func TestRoundTrip(t *testing.T) {
	srcs := []string{
		"OBJECT Table 18 Customer { PROPERTIES { CaptionML = ENU=Customer; } }",
		"  // leading comment\nOBJECT\tTable 1 X {}",
		"OBJECT { /* unterminated",
		"",
	}
	for _, s := range srcs {
		src := []byte(s)
		toks := lexer.Lex(src)
		full := ""
		for i, tok := range toks {
			full += Text(src, toks, i)
			if tok.Kind != token.EOF {
				full += tok.Text
			}
		}
		full += Trailing(src, toks).Text()
		if full != s {
			t.Errorf("round-trip mismatch for %q: got %q", s, full)
		}
	}
}

func TestSpanResultTextMatchesRawGap(t *testing.T) {
	src := []byte("OBJECT /* c */ Table")
	toks := lexer.Lex(src)
	res := Between(src, toks, 1)
	want := Text(src, toks, 1)
	if res.Text() != want {
		t.Errorf("Result.Text() = %q, want %q (raw gap)", res.Text(), want)
	}
}
