package parser

import (
	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// parseStatementList parses statements separated by ";" until isEnd reports
// true for the current token kind or EOF is reached. Each statement that
// leaves stray tokens before its separator triggers the statement-level
// recovery strategy (spec §4.3 strategy 1): skip to the next ";" at the
// current brace/paren depth.
func (p *parser) parseStatementList(isEnd func(token.Kind) bool) []ast.Stmt {
	var stmts []ast.Stmt
	for !isEnd(p.cur().Kind) && p.cur().Kind != token.EOF {
		stmt := p.parseStatement()
		stmts = append(stmts, stmt)

		if p.cur().Kind != token.Semicolon && !isEnd(p.cur().Kind) && p.cur().Kind != token.EOF {
			p.recoverAtStatementLevel()
		}
		if p.cur().Kind == token.Semicolon {
			p.advance()
		}
	}
	return stmts
}

// recoverAtStatementLevel skips to the next ";" at the current brace/paren
// nesting depth, emitting one parse-error-recovery diagnostic if it
// actually discarded anything (spec §4.3 strategy 1).
func (p *parser) recoverAtStatementLevel() {
	first := p.cur()
	depth := 0
	skipped := 0
	for {
		cur := p.cur()
		if cur.Kind == token.EOF {
			break
		}
		if depth == 0 && cur.Kind == token.Semicolon {
			break
		}
		if depth == 0 && (cur.Kind == token.End || cur.Kind == token.Until || isClosingBrace(cur)) {
			break
		}
		switch cur.Kind {
		case token.LeftParen, token.LeftBrace, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBracket, token.RightBrace:
			if depth > 0 {
				depth--
			}
		}
		p.advance()
		skipped++
	}
	if skipped > 0 {
		p.errs = append(p.errs, diag.NewErrorRecovery(first, "statement"))
	}
}

func (p *parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.Semicolon:
		tok := p.cur()
		return ast.NewEmptyStmt(tok)
	case token.PreprocessorDirective:
		tok := p.advance()
		p.errs = append(p.errs, diag.NewALOnlySyntax(tok, tok.Text))
		return ast.NewEmptyStmt(tok)
	case token.Begin:
		return p.parseBlockStmt()
	case token.If:
		return p.parseIfStmt()
	case token.Case:
		return p.parseCaseStmt()
	case token.For:
		return p.parseForStmt()
	case token.While:
		return p.parseWhileStmt()
	case token.Repeat:
		return p.parseRepeatStmt()
	case token.With:
		return p.parseWithStmt()
	case token.Exit:
		return p.parseExitStmt()
	case token.Break:
		tok := p.advance()
		return ast.NewBreakStmt(tok)
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseSimpleStmt() ast.Stmt {
	start := p.cur()
	x := p.parseExpr()
	if p.cur().Kind == token.Assign {
		p.advance()
		value := p.parseExpr()
		return ast.NewAssignmentStmt(start, p.prevToken(), x, value)
	}
	return ast.NewExprStmt(start, p.prevToken(), x)
}

// parseBlockStmt parses `BEGIN statements END` (the current token must be
// Begin). A missing END produces parse-unclosed-block and synthesizes the
// end token from the last one seen (spec §4.3, "Brace closure" analog for
// BEGIN/END pairs).
func (p *parser) parseBlockStmt() *ast.BlockStmt {
	beginTok := p.advance()
	stmts := p.parseStatementList(func(k token.Kind) bool { return k == token.End })
	endTok, ok := p.expect(token.End, "END")
	if !ok {
		p.errs = append(p.errs, diag.NewUnclosedBlock(beginTok, "BEGIN block"))
		endTok = p.prevToken()
	}
	block := ast.NewBlockStmt(beginTok, endTok)
	block.Statements = stmts
	return block
}

func (p *parser) parseIfStmt() ast.Stmt {
	start := p.advance() // IF
	cond := p.parseExpr()
	p.expect(token.Then, "THEN")
	then := p.parseStatement()
	var els ast.Stmt
	if p.cur().Kind == token.Else {
		p.advance()
		els = p.parseStatement()
	}
	return ast.NewIfStmt(start, p.prevToken(), cond, then, els)
}

func (p *parser) parseCaseStmt() ast.Stmt {
	start := p.advance() // CASE
	selector := p.parseExpr()
	p.expect(token.Of, "OF")

	stmt := ast.NewCaseStmt(start, start, selector)
	for p.cur().Kind != token.End && p.cur().Kind != token.EOF {
		for p.cur().Kind == token.Semicolon {
			p.advance()
		}
		if p.cur().Kind == token.End || p.cur().Kind == token.EOF {
			break
		}
		if p.cur().Kind == token.Else {
			p.advance()
			stmt.ElseBranch = p.wrapStatementList(p.parseStatementList(func(k token.Kind) bool { return k == token.End }))
			break
		}

		branchStart := p.cur()
		values := p.parseExprList()
		p.expect(token.Colon, ":")
		body := p.parseStatement()
		branch := ast.NewCaseBranch(branchStart, p.prevToken(), values, body)
		stmt.Branches = append(stmt.Branches, branch)
		if p.cur().Kind == token.Semicolon {
			p.advance()
		}
	}
	endTok, ok := p.expect(token.End, "END")
	if !ok {
		p.errs = append(p.errs, diag.NewUnclosedBlock(start, "CASE statement"))
		endTok = p.prevToken()
	}
	stmt.End = endTok
	return stmt
}

// wrapStatementList folds a statement sequence into a single Stmt so it can
// sit in a slot (like CaseStmt.ElseBranch) that holds exactly one Stmt.
func (p *parser) wrapStatementList(stmts []ast.Stmt) ast.Stmt {
	if len(stmts) == 0 {
		return nil
	}
	block := ast.NewBlockStmt(stmts[0].StartTok(), stmts[len(stmts)-1].EndTok())
	block.Statements = stmts
	return block
}

func (p *parser) parseForStmt() ast.Stmt {
	start := p.advance() // FOR
	varExpr := p.parseExpr()
	p.expect(token.Assign, ":=")
	from := p.parseExpr()
	down := false
	if p.cur().Kind == token.Downto {
		down = true
		p.advance()
	} else {
		p.expect(token.To, "TO")
	}
	to := p.parseExpr()
	p.expect(token.Do, "DO")
	body := p.parseStatement()

	f := ast.NewForStmt(start, p.prevToken())
	f.Var = varExpr
	f.Start = from
	f.Stop = to
	f.Down = down
	f.Body = body
	return f
}

func (p *parser) parseWhileStmt() ast.Stmt {
	start := p.advance() // WHILE
	cond := p.parseExpr()
	p.expect(token.Do, "DO")
	body := p.parseStatement()
	return ast.NewWhileStmt(start, p.prevToken(), cond, body)
}

func (p *parser) parseRepeatStmt() ast.Stmt {
	start := p.advance() // REPEAT
	r := ast.NewRepeatStmt(start, start)
	r.Statements = p.parseStatementList(func(k token.Kind) bool { return k == token.Until })
	untilTok, ok := p.expect(token.Until, "UNTIL")
	if !ok {
		p.errs = append(p.errs, diag.NewUnclosedBlock(start, "REPEAT statement"))
		r.End = p.prevToken()
		return r
	}
	_ = untilTok
	r.Until = p.parseExpr()
	r.End = p.prevToken()
	return r
}

func (p *parser) parseWithStmt() ast.Stmt {
	start := p.advance() // WITH
	target := p.parseExpr()
	p.expect(token.Do, "DO")
	body := p.parseStatement()
	return ast.NewWithStmt(start, p.prevToken(), target, body)
}

func (p *parser) parseExitStmt() ast.Stmt {
	start := p.advance() // EXIT
	var value ast.Expr
	if p.cur().Kind == token.LeftParen {
		p.advance()
		if p.cur().Kind != token.RightParen {
			value = p.parseExpr()
		}
		p.expect(token.RightParen, ")")
	}
	return ast.NewExitStmt(start, p.prevToken(), value)
}
