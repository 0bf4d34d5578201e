// Package parser implements the error-recovering recursive-descent parser
// for the C/AL object definition language (spec §4.3). It never panics:
// every syntactic anomaly becomes a diag.ParseError and the parser
// resynchronizes using one of the five strategies described in spec §4.3.
//
// The overall shape — a parser struct holding the token vector, a current
// position, and an accumulated error list, with small single-purpose
// recursive-descent methods per production — follows
// cuelang.org/go/cue/parser (parser.go), adapted from CUE's structural
// grammar to C/AL's object/section/statement grammar and from CUE's
// scanner-driven one-token lookahead to this module's pre-lexed token
// vector.
package parser

import (
	"strconv"
	"strings"

	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

type parser struct {
	tokens []token.Token
	pos    int
	errs   diag.List
}

// Parse runs the parser over a token vector produced by lexer.Lex and
// returns the resulting document together with every diagnostic collected
// along the way. Parse never panics (spec §4.3, §8 invariant 1).
func Parse(tokens []token.Token) (*ast.CALDocument, diag.List) {
	if len(tokens) == 0 {
		tokens = []token.Token{{Kind: token.EOF}}
	}
	p := &parser{tokens: tokens}
	doc := p.parseDocument()
	return doc, p.errs
}

// --- token stream primitives -------------------------------------------------

func (p *parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

// advance consumes and returns the current token; EOF is never consumed.
func (p *parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF && p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// prevToken returns the most recently consumed token, used as a node's end
// anchor; it is the current token itself at the very start of parsing.
func (p *parser) prevToken() token.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.errs = append(p.errs, diag.New(tok, format, args...))
}

// expect consumes the current token if it has kind k; otherwise it emits a
// parse-expected-token diagnostic and leaves the position unchanged.
func (p *parser) expect(k token.Kind, desc string) (token.Token, bool) {
	if p.cur().Kind == k {
		return p.advance(), true
	}
	p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), desc))
	return p.cur(), false
}

func (p *parser) expectLeftBrace(what string) (token.Token, bool) {
	if p.cur().Kind == token.LeftBrace {
		return p.advance(), true
	}
	p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), "{"))
	return p.cur(), false
}

// isClosingBrace reports whether tok can terminate a brace-delimited
// section: either a proper RightBrace, or (per spec §4.3's brace-closure
// tolerance) an Unknown token whose literal text is "}", produced when the
// lexer's context stack got confused about depth.
func isClosingBrace(tok token.Token) bool {
	return tok.Kind == token.RightBrace || (tok.Kind == token.Unknown && tok.Text == "}")
}

// closeSection consumes the brace that closes a section opened at openTok.
// The caller is expected to have already stopped exactly at the boundary
// (via skipToSectionBoundary, below) so this just consumes one token; if
// the boundary was reached without ever finding a closer, it emits
// parse-unclosed-block and synthesizes an end token from the last token seen.
func (p *parser) closeSection(openTok token.Token, what string, missingClose bool) token.Token {
	if missingClose {
		p.errs = append(p.errs, diag.NewUnclosedBlock(openTok, what))
		return p.prevToken()
	}
	if isClosingBrace(p.cur()) {
		return p.advance()
	}
	p.errs = append(p.errs, diag.NewUnclosedBlock(openTok, what))
	return p.prevToken()
}

// isSectionKeyword reports whether k starts one of the object-body
// sections dispatched in spec §4.3's "Section dispatch" paragraph.
func isSectionKeyword(k token.Kind) bool {
	switch k {
	case token.Properties, token.ObjectProperties, token.Fields, token.Keys,
		token.FieldGroups, token.Code, token.Controls, token.Actions,
		token.DataItems, token.Elements, token.RequestForm:
		return true
	}
	return false
}

// skipToSectionBoundary implements the shared half of recovery strategies
// 2 and 3: advance token by token until hitting a closing brace at the
// current nesting depth, a recognized section keyword, or EOF. It consumes
// nothing when the current token is already one of those; its callers only
// invoke it on a token that is not, so each call makes forward progress.
// It reports how many tokens it consumed and whether it stopped on a
// closing brace (as opposed to a section keyword or EOF).
func (p *parser) skipToSectionBoundary() (skipped int, foundClose bool) {
	depth := 0
	for {
		cur := p.cur()
		if cur.Kind == token.EOF {
			return skipped, false
		}
		if depth == 0 && isClosingBrace(cur) {
			return skipped, true
		}
		if depth == 0 && isSectionKeyword(cur.Kind) {
			return skipped, false
		}
		switch cur.Kind {
		case token.LeftBrace:
			depth++
		case token.RightBrace:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
		skipped++
	}
}

// recoverAtSectionLevel applies strategy 2 ("skip to the next } at the
// current brace-depth, or to the next known section keyword, whichever is
// first") and, if it actually discarded anything, records one
// parse-error-recovery diagnostic anchored at the first skipped token.
func (p *parser) recoverAtSectionLevel(context string) {
	first := p.cur()
	skipped, _ := p.skipToSectionBoundary()
	if skipped > 0 {
		p.errs = append(p.errs, diag.NewErrorRecovery(first, context))
	}
}

// skipUnknownSection implements the object-body dispatch's handling of an
// unrecognized section name: consume until the next "}" at balanced depth
// (consuming that closer too) and report parse-error, not recovery — this
// is a malformed section name, not mid-section garbage.
func (p *parser) skipUnknownSection() {
	bad := p.cur()
	depth := 0
	for {
		cur := p.cur()
		if cur.Kind == token.EOF {
			break
		}
		if cur.Kind == token.LeftBrace {
			depth++
			p.advance()
			continue
		}
		if isClosingBrace(cur) {
			if depth == 0 {
				p.advance()
				break
			}
			depth--
			p.advance()
			continue
		}
		p.advance()
	}
	p.errorf(bad, "unknown section %s", bad.Text)
}

// --- document / object header -----------------------------------------------

func (p *parser) parseDocument() *ast.CALDocument {
	start := p.cur()
	p.skipToTopLevelAnchor()

	var object *ast.ObjectDeclaration
	switch p.cur().Kind {
	case token.Object:
		object = p.parseObjectDeclaration()
	case token.ObjectProperties:
		// Severely truncated input: the OBJECT header itself is missing but
		// a body section keyword is already present. Recover with a null
		// header and parse whatever section content follows directly.
		p.errorf(p.cur(), "missing OBJECT header")
		object = ast.NewObjectDeclaration(p.cur(), p.cur())
		p.dispatchSections(object)
		object.End = p.prevToken()
	}

	if p.cur().Kind != token.EOF {
		first := p.cur()
		skipped := 0
		for p.cur().Kind != token.EOF {
			p.advance()
			skipped++
		}
		if skipped > 0 {
			p.errs = append(p.errs, diag.NewErrorRecovery(first, "trailing content after object declaration"))
		}
	}

	end := p.cur()
	return ast.NewCALDocument(start, end, object)
}

// skipToTopLevelAnchor implements recovery strategy 5 for the top level:
// skip stray leading tokens until OBJECT, OBJECT-PROPERTIES, or EOF.
func (p *parser) skipToTopLevelAnchor() {
	first := p.cur()
	skipped := 0
	for {
		k := p.cur().Kind
		if k == token.Object || k == token.ObjectProperties || k == token.EOF {
			break
		}
		p.advance()
		skipped++
	}
	if skipped > 0 {
		p.errs = append(p.errs, diag.NewErrorRecovery(first, "stray content before object declaration"))
	}
}

func (p *parser) parseObjectDeclaration() *ast.ObjectDeclaration {
	start := p.advance() // OBJECT
	obj := ast.NewObjectDeclaration(start, start)

	kindTok := p.cur()
	obj.ObjectKindToken = kindTok
	if kind, ok := ast.LookupObjectKind(kindTok.Text); ok {
		obj.ObjectKind = kind
		p.advance()
	} else {
		p.errorf(kindTok, "invalid object type %s", kindTok.Text)
		obj.ObjectKind = ast.UnknownObjectKind
		if kindTok.Kind != token.EOF {
			p.advance()
		}
	}

	idTok := p.cur()
	obj.ObjectIDToken = idTok
	if idTok.Kind == token.Integer {
		if n, err := strconv.Atoi(idTok.Text); err == nil {
			obj.ObjectID = &n
		}
		p.advance()
	} else {
		p.errorf(idTok, "expected an integer object id, got %s", idTok.Text)
		if idTok.Kind != token.EOF && idTok.Kind != token.LeftBrace {
			p.advance()
		}
	}

	obj.ObjectName, obj.NameToken = p.parseObjectName()

	p.parseObjectBody(obj)

	obj.End = p.prevToken()
	return obj
}

// parseObjectName resolves the Open Question 1 ambiguity (spec §9): an
// unquoted, possibly multi-token name stops at the first newline or at the
// token immediately preceding the section-opening "{".
func (p *parser) parseObjectName() (string, token.Token) {
	startTok := p.cur()
	if startTok.Kind == token.QuotedIdentifier {
		p.advance()
		return stripQuotes(startTok.Text), startTok
	}
	if startTok.Kind == token.LeftBrace || startTok.Kind == token.EOF {
		return "", startTok
	}

	var parts []string
	firstLine := startTok.Line
	for {
		cur := p.cur()
		if cur.Kind == token.LeftBrace || cur.Kind == token.EOF {
			break
		}
		if cur.Line != firstLine {
			break
		}
		parts = append(parts, cur.Text)
		p.advance()
	}
	return strings.Join(parts, " "), startTok
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// --- object body / section dispatch -----------------------------------------

func (p *parser) parseObjectBody(obj *ast.ObjectDeclaration) {
	openBrace, _ := p.expectLeftBrace("object body")
	p.dispatchSections(obj)
	p.closeSection(openBrace, "object body", !isClosingBrace(p.cur()))
}

// dispatchSections parses the section keywords of an object body in place,
// without assuming an enclosing brace: parseObjectBody uses it for the
// normal "OBJECT ... { sections }" shape, and parseDocument's truncated-input
// fallback uses it directly when there was no "{" to begin with.
func (p *parser) dispatchSections(obj *ast.ObjectDeclaration) {
	for {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if p.cur().Kind == token.PreprocessorDirective {
			p.errs = append(p.errs, diag.NewALOnlySyntax(p.cur(), p.cur().Text))
			p.advance()
			continue
		}
		k := p.cur().Kind
		if k == token.RightBrace || (k == token.Unknown && p.cur().Text == "}") || k == token.EOF {
			break
		}
		switch k {
		case token.Properties:
			kw := p.advance()
			obj.Properties = p.parsePropertySection(kw, "PROPERTIES section")
		case token.ObjectProperties:
			kw := p.advance()
			obj.ObjectProperties = p.parsePropertySection(kw, "OBJECT-PROPERTIES section")
		case token.Fields:
			kw := p.advance()
			obj.Fields = p.parseFieldSection(kw)
		case token.Keys:
			kw := p.advance()
			obj.Keys = p.parseKeySection(kw)
		case token.FieldGroups:
			kw := p.advance()
			obj.FieldGroups = p.parsePropertySection(kw, "FIELDGROUPS section")
		case token.Code:
			kw := p.advance()
			obj.Code = p.parseCodeSection(kw)
		case token.Controls:
			kw := p.advance()
			obj.Controls = p.parseElementSection(kw, "CONTROLS section")
		case token.Elements:
			kw := p.advance()
			obj.Elements = p.parseElementSection(kw, "ELEMENTS section")
		case token.Actions:
			kw := p.advance()
			obj.Actions = p.parseElementSection(kw, "ACTIONS section")
		case token.DataItems:
			kw := p.advance()
			obj.DataItems = p.parseElementSection(kw, "DATAITEMS section")
		case token.RequestForm:
			kw := p.advance()
			obj.RequestForm = p.parsePropertySection(kw, "REQUESTFORM section")
		default:
			p.skipUnknownSection()
		}
	}
}
