package parser

import (
	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/lexer"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// ParseFile lexes and parses a C/AL object source buffer in one call, the
// way cuelang.org/go/cue/parser.ParseFile wraps its scanner+parser pair
// behind a single entry point. filename is not used: the diagnostics are
// positioned by line and column only, and carry no file name.
func ParseFile(filename string, src []byte) (*ast.CALDocument, diag.List) {
	_ = filename
	tokens := lexer.Lex(src)
	return Parse(tokens)
}

// ParseTokens parses an already-lexed token vector, for callers (such as
// tests) that want to inspect or construct the token stream directly.
func ParseTokens(tokens []token.Token) (*ast.CALDocument, diag.List) {
	return Parse(tokens)
}
