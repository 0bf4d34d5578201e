package parser

import (
	"strconv"
	"strings"

	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// parseCodeSection parses CODE { [VAR ...] [procedures...] [BEGIN...END.] }
// (spec §3, §4.3, GLOSSARY "Documentation trigger").
func (p *parser) parseCodeSection(keywordTok token.Token) *ast.CodeSection {
	openBrace, hasBrace := p.expectLeftBrace("CODE section")
	section := ast.NewCodeSection(keywordTok, keywordTok)
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
		switch p.cur().Kind {
		case token.Var:
			p.advance()
			section.Variables = append(section.Variables, p.parseVarBlock()...)
		case token.Local, token.Procedure, token.Function, token.Trigger, token.ALOnlyAccessModifier:
			section.Procedures = append(section.Procedures, p.parseProcedure())
		case token.Begin:
			section.DocBody = p.parseDocumentationBody()
		default:
			p.recoverAtSectionLevel("CODE section")
		}
	}

	section.End = p.closeSection(openBrace, "CODE section", !isClosingBrace(p.cur()))
	return section
}

// parseDocumentationBody parses the trailing `BEGIN statements END.` body,
// whose terminating "." (rather than the usual ";") marks it as the
// object's documentation trigger.
func (p *parser) parseDocumentationBody() *ast.BlockStmt {
	beginTok := p.advance()
	stmts := p.parseStatementList(func(k token.Kind) bool { return k == token.End })
	endTok, ok := p.expect(token.End, "END")
	if ok {
		if p.cur().Kind == token.Dot {
			p.advance()
		} else {
			p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), "."))
		}
	}
	block := ast.NewBlockStmt(beginTok, endTok)
	block.Statements = stmts
	return block
}

// isVarBlockTerminator reports whether k can follow a VAR block: another
// declaration area, a section boundary, or EOF.
func isVarBlockTerminator(k token.Kind) bool {
	switch k {
	case token.Begin, token.Local, token.Procedure, token.Function, token.Trigger,
		token.RightBrace, token.EOF:
		return true
	}
	return isSectionKeyword(k)
}

// parseVarBlock parses the semicolon-separated declarations following a VAR
// keyword (spec §4.3's VAR-block grammar).
func (p *parser) parseVarBlock() []*ast.VariableDeclaration {
	var decls []*ast.VariableDeclaration
	for {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if isClosingBrace(p.cur()) || isVarBlockTerminator(p.cur().Kind) {
			break
		}
		decl, ok := p.parseVariableDeclaration()
		if ok {
			decls = append(decls, decl)
		} else {
			p.syncToNextStatementSeparator()
		}
		if p.cur().Kind == token.Semicolon {
			p.advance()
		} else if ok && (isClosingBrace(p.cur()) || isVarBlockTerminator(p.cur().Kind)) {
			p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), ";"))
		}
	}
	return decls
}

// syncToNextStatementSeparator skips tokens until the next ";" (not
// consumed) or a recognized terminator, guaranteeing forward progress.
func (p *parser) syncToNextStatementSeparator() {
	for p.cur().Kind != token.Semicolon && !isClosingBrace(p.cur()) &&
		!isVarBlockTerminator(p.cur().Kind) && p.cur().Kind != token.EOF {
		p.advance()
	}
}

// parseVariableDeclaration parses one `name [@ id] : [TEMPORARY] dataType
// [INDATASET]` entry. A missing ":" is reported with parse-expected-token
// and the declaration is abandoned (ok=false) so the caller can
// resynchronize at the next ";".
func (p *parser) parseVariableDeclaration() (*ast.VariableDeclaration, bool) {
	start := p.cur()
	if !isPropertyNameStart(start) {
		return nil, false
	}
	nameTok := p.cur()
	name := nameTok.Text
	if nameTok.Kind == token.QuotedIdentifier {
		name = stripQuotes(nameTok.Text)
	}
	p.advance()

	// optional legacy "@intLiteral" field-number suffix: the lexer cannot
	// classify "@" so it surfaces as an Unknown token; silently absorb it
	// here rather than treating it as an error.
	if p.cur().Kind == token.Unknown && p.cur().Text == "@" && p.peek(1).Kind == token.Integer {
		p.advance()
		p.advance()
	}

	if _, ok := p.expect(token.Colon, ":"); !ok {
		return nil, false
	}

	isTemporary := false
	if p.cur().Kind == token.Identifier && textEqualFold(p.cur(), "TEMPORARY") {
		isTemporary = true
		p.advance()
	}

	dtype := p.parseDataType()

	isInDataset := false
	if p.cur().Kind == token.Identifier && textEqualFold(p.cur(), "INDATASET") {
		isInDataset = true
		p.advance()
	}

	decl := ast.NewVariableDeclaration(start, p.prevToken())
	decl.Name = name
	decl.NameToken = nameTok
	decl.IsTemporary = isTemporary
	decl.IsInDataset = isInDataset
	decl.Type = dtype
	return decl, true
}

func textEqualFold(tok token.Token, s string) bool {
	return strings.EqualFold(tok.Text, s)
}

// parseDataType parses a data type, recursing through ARRAY[dims] OF
// element-type and handling the Code[20]-style bracketed length and the
// Record/Option-style free-form subtype tail.
func (p *parser) parseDataType() *ast.DataTypeSpec {
	start := p.cur()

	if p.cur().Kind == token.Identifier && textEqualFold(p.cur(), "ARRAY") {
		p.advance()
		var dims []int
		if p.cur().Kind == token.LeftBracket {
			p.advance()
			for {
				if p.cur().Kind == token.Integer {
					if n, err := strconv.Atoi(p.cur().Text); err == nil {
						dims = append(dims, n)
					}
					p.advance()
				} else {
					p.errorf(p.cur(), "expected array dimension, got %s", p.cur().Text)
					break
				}
				if p.cur().Kind == token.Comma {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RightBracket, "]")
		}
		p.expect(token.Of, "OF")
		elem := p.parseDataType()
		spec := ast.NewDataTypeSpec(start, p.prevToken(), "ARRAY", start)
		spec.ArrayDims = dims
		spec.ElementType = elem
		return spec
	}

	nameTok := p.cur()
	name := nameTok.Text
	if nameTok.Kind != token.EOF {
		p.advance()
	}
	spec := ast.NewDataTypeSpec(start, nameTok, name, nameTok)

	switch {
	case p.cur().Kind == token.LeftBracket:
		p.advance()
		if p.cur().Kind == token.Integer {
			if n, err := strconv.Atoi(p.cur().Text); err == nil {
				spec.Length = &n
			}
			p.advance()
		} else {
			p.errorf(p.cur(), "expected integer length, got %s", p.cur().Text)
		}
		p.expect(token.RightBracket, "]")

	case nameTok.Kind == token.Record || textEqualFold(nameTok, "OPTION") ||
		textEqualFold(nameTok, "RECORD"):
		var parts []string
		for !isDataTypeSubtypeTerminator(p.cur()) {
			parts = append(parts, p.cur().Text)
			p.advance()
		}
		spec.Subtype = strings.Join(parts, " ")
	}

	spec.End = p.prevToken()
	return spec
}

func isDataTypeSubtypeTerminator(tok token.Token) bool {
	switch tok.Kind {
	case token.Semicolon, token.RightBrace, token.RightParen, token.Comma, token.EOF:
		return true
	}
	if tok.Kind == token.Identifier && textEqualFold(tok, "INDATASET") {
		return true
	}
	return false
}

// parseParameterList parses a comma-separated `[VAR] name [: type]` list
// up to (not including) the closing ")". A VAR modifier here is flagged
// parse-al-only-syntax: C/AL procedures never pass parameters by reference
// (spec §4.3's parameter-list note).
func (p *parser) parseParameterList() []*ast.Parameter {
	var params []*ast.Parameter
	for {
		if p.cur().Kind == token.RightParen || p.cur().Kind == token.EOF {
			break
		}
		start := p.cur()
		byRef := false
		if p.cur().Kind == token.Var {
			byRef = true
			p.errs = append(p.errs, diag.NewALOnlySyntax(p.cur(), "VAR parameter modifier"))
			p.advance()
		}
		nameTok := p.cur()
		name := nameTok.Text
		if nameTok.Kind != token.EOF {
			p.advance()
		}
		var ptype *ast.DataTypeSpec
		if p.cur().Kind == token.Colon {
			p.advance()
			ptype = p.parseDataType()
		}
		param := ast.NewParameter(start, p.prevToken())
		param.ByRef = byRef
		param.Name = name
		param.NameToken = nameTok
		param.Type = ptype
		params = append(params, param)

		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	return params
}

// parseProcedure parses `[LOCAL] PROCEDURE|FUNCTION|TRIGGER name(params)
// [: returnType]; [VAR vars] BEGIN statements END;` (spec §3, §4.3).
func (p *parser) parseProcedure() *ast.ProcedureDeclaration {
	start := p.cur()
	for p.cur().Kind == token.ALOnlyAccessModifier {
		p.errs = append(p.errs, diag.NewALOnlySyntax(p.cur(), p.cur().Text))
		p.advance()
	}
	local := false
	if p.cur().Kind == token.Local {
		local = true
		p.advance()
	}
	kind := p.cur().Kind
	p.advance() // PROCEDURE / FUNCTION / TRIGGER

	nameTok := p.cur()
	name := nameTok.Text
	if nameTok.Kind != token.EOF {
		p.advance()
	}

	if p.cur().Kind == token.Unknown && p.cur().Text == "@" && p.peek(1).Kind == token.Integer {
		p.advance()
		p.advance()
	}

	var params []*ast.Parameter
	if _, ok := p.expect(token.LeftParen, "("); ok {
		params = p.parseParameterList()
		p.expect(token.RightParen, ")")
	}

	var ret *ast.DataTypeSpec
	if p.cur().Kind == token.Colon {
		p.advance()
		ret = p.parseDataType()
	}

	if p.cur().Kind == token.Semicolon {
		p.advance()
	} else {
		p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), ";"))
	}

	var vars []*ast.VariableDeclaration
	if p.cur().Kind == token.Var {
		p.advance()
		vars = p.parseVarBlock()
	}

	var body *ast.BlockStmt
	if p.cur().Kind == token.Begin {
		body = p.parseBlockStmt()
	} else {
		p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), "BEGIN"))
	}

	if p.cur().Kind == token.Semicolon {
		p.advance()
	} else {
		p.errs = append(p.errs, diag.NewExpectedToken(p.cur(), ";"))
	}

	proc := ast.NewProcedureDeclaration(start, p.prevToken())
	proc.Local = local
	proc.Kind = kind
	proc.Name = name
	proc.NameToken = nameTok
	proc.Parameters = params
	proc.ReturnType = ret
	proc.Variables = vars
	proc.Body = body
	return proc
}
