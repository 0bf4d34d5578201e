package parser

import (
	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// parsePropertySection parses a brace-delimited property-and-trigger tail
// headed by a section keyword already consumed by the caller: PROPERTIES,
// OBJECT-PROPERTIES, FIELDGROUPS, or REQUESTFORM (spec §3, §4.3).
func (p *parser) parsePropertySection(keywordTok token.Token, what string) *ast.PropertyList {
	openBrace, hasBrace := p.expectLeftBrace(what)
	list := p.parsePropertyListUntilRightBrace()
	list.Start = keywordTok
	list.End = p.closeBraceOrSynthesize(openBrace, what, hasBrace)
	return list
}

// closeBraceOrSynthesize consumes the closing brace that list-parsing
// already positioned the parser at; if the opening brace was never found
// in the first place, there is nothing to close.
func (p *parser) closeBraceOrSynthesize(openBrace token.Token, what string, hadOpenBrace bool) token.Token {
	if !hadOpenBrace {
		return p.prevToken()
	}
	return p.closeSection(openBrace, what, !isClosingBrace(p.cur()))
}

// parsePropertyListUntilRightBrace parses zero or more Property entries up
// to (but not including) the enclosing right brace; it never consumes that
// brace itself, leaving that to the caller's closeSection.
func (p *parser) parsePropertyListUntilRightBrace() *ast.PropertyList {
	start := p.cur()
	list := ast.NewPropertyList(start, start)
	for {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if isClosingBrace(p.cur()) || p.cur().Kind == token.EOF || isSectionKeyword(p.cur().Kind) {
			break
		}
		prop := p.parseProperty()
		if prop != nil {
			list.Properties = append(list.Properties, prop)
		}
		if p.cur().Kind == token.Semicolon {
			p.advance()
		}
	}
	list.End = p.prevToken()
	return list
}

// isPropertyNameStart reports whether tok can open a property entry: any
// token that is not structural punctuation delimiting the list itself.
func isPropertyNameStart(tok token.Token) bool {
	switch tok.Kind {
	case token.RightBrace, token.Semicolon, token.EOF, token.LeftBrace:
		return false
	}
	return true
}

// parseProperty parses one `Name`, `Name = value`, or `Name = trigger-body`
// entry. It returns nil (and has advanced at least one token) when the
// current token cannot start a property at all.
func (p *parser) parseProperty() *ast.Property {
	if !isPropertyNameStart(p.cur()) {
		bad := p.cur()
		p.errorf(bad, "unexpected token %s in property list", bad.Text)
		p.advance()
		return nil
	}

	nameTok := p.advance()
	prop := ast.NewProperty(nameTok, nameTok, nameTok.Text, nameTok)

	switch {
	case p.cur().Kind == token.Semicolon || isClosingBrace(p.cur()) || p.cur().Kind == token.EOF:
		// bare flag property, nothing more to do

	case p.cur().Kind == token.Equal:
		eqTok := p.advance()
		switch {
		case isClosingBrace(p.cur()):
			if eqTok.EndOffset == p.cur().StartOffset {
				p.errs = append(p.errs, diag.NewPropertyValue(eqTok, prop.Name))
			}
			prop.HasValue = true
			prop.EmptyValue = true
		case p.looksLikeTriggerStart():
			prop.Trigger = p.parseTriggerBody(prop.Name, nameTok)
			prop.HasValue = true
		default:
			toks, text := p.consumePropertyValue()
			prop.HasValue = true
			prop.ValueTokens = toks
			prop.ValueText = text
		}

	default:
		bad := p.cur()
		p.errorf(bad, "unexpected token %s after property name %s", bad.Text, prop.Name)
		p.advance()
	}

	prop.End = p.prevToken()
	return prop
}

func (p *parser) looksLikeTriggerStart() bool {
	return p.cur().Kind == token.Var || p.cur().Kind == token.Begin
}

// parseTriggerBody parses `[VAR varList] BEGIN statements END` assigned as
// a property's value.
func (p *parser) parseTriggerBody(name string, nameTok token.Token) *ast.TriggerBody {
	start := p.cur()
	trig := ast.NewTriggerBody(start, start, name, nameTok)

	if p.cur().Kind == token.Var {
		p.advance()
		trig.Variables = p.parseVarBlock()
	}

	if p.cur().Kind == token.Begin {
		trig.Body = p.parseBlockStmt()
	} else {
		p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), "BEGIN"))
	}

	trig.End = p.prevToken()
	return trig
}

// consumePropertyValue consumes raw tokens that make up a property's value,
// respecting paren/bracket nesting so a value like "Amount > 0" or a
// parenthesized expression isn't cut short by an embedded structural
// character, stopping at the next ";" or the enclosing "}" at depth 0.
func (p *parser) consumePropertyValue() ([]token.Token, string) {
	var toks []token.Token
	depth := 0
	for {
		cur := p.cur()
		if cur.Kind == token.EOF {
			break
		}
		if depth == 0 && (cur.Kind == token.Semicolon || isClosingBrace(cur)) {
			break
		}
		switch cur.Kind {
		case token.LeftParen, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBracket:
			if depth > 0 {
				depth--
			}
		}
		toks = append(toks, cur)
		p.advance()
	}
	return toks, joinTokenText(toks)
}

func joinTokenText(toks []token.Token) string {
	s := ""
	for i, t := range toks {
		if i > 0 {
			s += " "
		}
		s += t.Text
	}
	return s
}
