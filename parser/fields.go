package parser

import (
	"strconv"
	"strings"

	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// parseFieldSection parses FIELDS { { ... } { ... } ... } (spec §3, §4.3).
func (p *parser) parseFieldSection(keywordTok token.Token) *ast.FieldSection {
	openBrace, hasBrace := p.expectLeftBrace("FIELDS section")
	section := ast.NewFieldSection(keywordTok, keywordTok)
	if !hasBrace {
		section.End = p.prevToken()
		return section
	}

	for {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if isClosingBrace(p.cur()) || p.cur().Kind == token.EOF || isSectionKeyword(p.cur().Kind) {
			break
		}
		if p.cur().Kind != token.LeftBrace {
			p.recoverAtSectionLevel("FIELDS section")
			continue
		}
		section.Fields = append(section.Fields, p.parseFieldDeclaration())
	}

	section.End = p.closeSection(openBrace, "FIELDS section", !isClosingBrace(p.cur()))
	return section
}

// parseFieldDeclaration parses one `{ id ; class ; name ; datatype [; properties] }`.
func (p *parser) parseFieldDeclaration() *ast.FieldDeclaration {
	openTok, _ := p.expectLeftBrace("field declaration")
	fd := ast.NewFieldDeclaration(openTok, openTok)

	fd.IDToken = p.cur()
	if p.cur().Kind == token.Integer {
		if n, err := strconv.Atoi(p.cur().Text); err == nil {
			fd.ID = &n
		}
		p.advance()
	} else {
		p.errorf(p.cur(), "expected field id, got %s", p.cur().Text)
	}
	p.skipFieldDeclarationSeparator()

	fd.Class = p.consumeRawTail()
	p.skipFieldDeclarationSeparator()

	fd.Name, fd.NameToken = p.parseMultiTokenName()

	if !isClosingBrace(p.cur()) && p.cur().Kind != token.EOF {
		p.skipFieldDeclarationSeparator()
		if !isClosingBrace(p.cur()) && p.cur().Kind != token.EOF {
			fd.DataType = p.parseDataType()
			if p.cur().Kind == token.Semicolon {
				p.advance()
				fd.Properties = p.parsePropertyListUntilRightBrace()
			}
		}
	}

	fd.End = p.closeSection(openTok, "field declaration", !isClosingBrace(p.cur()))
	return fd
}

// skipFieldDeclarationSeparator consumes a single expected ";" between the
// fixed id/class/name/datatype slots of a field declaration, emitting
// parse-expected-token if it is missing.
func (p *parser) skipFieldDeclarationSeparator() {
	if p.cur().Kind == token.Semicolon {
		p.advance()
		return
	}
	if isClosingBrace(p.cur()) || p.cur().Kind == token.EOF {
		return
	}
	p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), ";"))
}

// consumeRawTail reads tokens verbatim (space-joined) up to the next ";" or
// the enclosing "}", used for the field class slot which is free-form text.
func (p *parser) consumeRawTail() string {
	var parts []string
	for p.cur().Kind != token.Semicolon && !isClosingBrace(p.cur()) && p.cur().Kind != token.EOF {
		parts = append(parts, p.cur().Text)
		p.advance()
	}
	return strings.Join(parts, " ")
}

// parseMultiTokenName accepts a quoted identifier, or a run of bare tokens
// up to the next ";" or "}", preserved verbatim with single-space joins
// (spec §3's field-name rule). The object header's name is read by
// parseObjectName instead.
func (p *parser) parseMultiTokenName() (string, token.Token) {
	if p.cur().Kind == token.QuotedIdentifier {
		tok := p.advance()
		return stripQuotes(tok.Text), tok
	}
	start := p.cur()
	var parts []string
	for p.cur().Kind != token.Semicolon && !isClosingBrace(p.cur()) && p.cur().Kind != token.EOF {
		parts = append(parts, p.cur().Text)
		p.advance()
	}
	return strings.Join(parts, " "), start
}

// parseKeySection parses KEYS { { field[,field...] ; properties } ... }.
func (p *parser) parseKeySection(keywordTok token.Token) *ast.KeySection {
	openBrace, hasBrace := p.expectLeftBrace("KEYS section")
	section := ast.NewKeySection(keywordTok, keywordTok)
	if !hasBrace {
		section.End = p.prevToken()
		return section
	}

	for {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if isClosingBrace(p.cur()) || p.cur().Kind == token.EOF || isSectionKeyword(p.cur().Kind) {
			break
		}
		if p.cur().Kind != token.LeftBrace {
			p.recoverAtSectionLevel("KEYS section")
			continue
		}
		section.Keys = append(section.Keys, p.parseKeyDeclaration())
	}

	section.End = p.closeSection(openBrace, "KEYS section", !isClosingBrace(p.cur()))
	return section
}

func (p *parser) parseKeyDeclaration() *ast.KeyDeclaration {
	openTok, _ := p.expectLeftBrace("key declaration")
	kd := ast.NewKeyDeclaration(openTok, openTok)

	for p.cur().Kind != token.Semicolon && !isClosingBrace(p.cur()) && p.cur().Kind != token.EOF {
		nameTok := p.cur()
		name, _ := p.parseMultiTokenKeyFieldName()
		kd.FieldNames = append(kd.FieldNames, name)
		kd.FieldTokens = append(kd.FieldTokens, nameTok)
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Kind == token.Semicolon {
		p.advance()
		kd.Properties = p.parsePropertyListUntilRightBrace()
	}

	kd.End = p.closeSection(openTok, "key declaration", !isClosingBrace(p.cur()))
	return kd
}

// parseMultiTokenKeyFieldName reads one key's field name, stopping at the
// next "," or ";" rather than consuming through the whole field list.
func (p *parser) parseMultiTokenKeyFieldName() (string, token.Token) {
	if p.cur().Kind == token.QuotedIdentifier {
		tok := p.advance()
		return stripQuotes(tok.Text), tok
	}
	start := p.cur()
	var parts []string
	for p.cur().Kind != token.Comma && p.cur().Kind != token.Semicolon && !isClosingBrace(p.cur()) && p.cur().Kind != token.EOF {
		parts = append(parts, p.cur().Text)
		p.advance()
	}
	return strings.Join(parts, " "), start
}

// parseElementSection parses the shared CONTROLS/ELEMENTS/ACTIONS/DATAITEMS
// shape: `{ { id ; properties } ... }` (see ast.ElementSection doc comment
// for why these four are generalized together).
func (p *parser) parseElementSection(keywordTok token.Token, what string) *ast.ElementSection {
	openBrace, hasBrace := p.expectLeftBrace(what)
	section := ast.NewElementSection(keywordTok, keywordTok)
	if !hasBrace {
		section.End = p.prevToken()
		return section
	}

	for {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if isClosingBrace(p.cur()) || p.cur().Kind == token.EOF || isSectionKeyword(p.cur().Kind) {
			break
		}
		if p.cur().Kind != token.LeftBrace {
			p.recoverAtSectionLevel(what)
			continue
		}
		section.Elements = append(section.Elements, p.parseElementDeclaration())
	}

	section.End = p.closeSection(openBrace, what, !isClosingBrace(p.cur()))
	return section
}

func (p *parser) parseElementDeclaration() *ast.ElementDeclaration {
	openTok, _ := p.expectLeftBrace("element declaration")
	ed := ast.NewElementDeclaration(openTok, openTok)

	ed.IDToken = p.cur()
	if p.cur().Kind == token.Integer {
		if n, err := strconv.Atoi(p.cur().Text); err == nil {
			ed.ID = &n
		}
		p.advance()
	} else {
		p.errorf(p.cur(), "expected element id, got %s", p.cur().Text)
	}
	if p.cur().Kind == token.Semicolon {
		p.advance()
		ed.Properties = p.parsePropertyListUntilRightBrace()
	}

	ed.End = p.closeSection(openTok, "element declaration", !isClosingBrace(p.cur()))
	return ed
}
