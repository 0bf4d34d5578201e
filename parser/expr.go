package parser

import (
	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
	"github.com/klauskaan/C-AL-Language-sub006/token"
)

// parseExpr parses a full expression at the lowest precedence level
// (spec §4.3's precedence ladder: OR/XOR, AND, NOT, comparison, additive,
// multiplicative, unary, postfix, primary, each binding tighter than the
// last). Parenthesized subexpressions recurse through parsePrimary; Go's
// growable goroutine stack accommodates the 100-plus nesting depth spec §8
// requires without any special iterative machinery.
func (p *parser) parseExpr() ast.Expr {
	return p.parseCoalesce()
}

// parseCoalesce handles the AL-only "??" null-coalescing operator: two
// adjacent TernaryOperator tokens, since the lexer has no dedicated kind
// for the doubled form (spec §6's closed token set has only a single "?"
// kind). Valid C/AL never contains this, so every match is flagged
// parse-al-only-syntax, but the operator still combines its operands the
// way AL's ?? would, instead of aborting the expression.
func (p *parser) parseCoalesce() ast.Expr {
	x := p.parseOr()
	for p.cur().Kind == token.TernaryOperator && p.peek(1).Kind == token.TernaryOperator {
		first := p.advance()
		p.advance()
		p.errs = append(p.errs, diag.NewALOnlySyntax(first, "?? null-coalescing operator"))
		y := p.parseOr()
		x = ast.NewBinaryExpr(x.StartTok(), y.EndTok(), token.TernaryOperator, x, y)
	}
	return x
}

func (p *parser) parseOr() ast.Expr {
	x := p.parseAnd()
	for p.cur().Kind == token.Or || p.cur().Kind == token.Xor {
		op := p.advance()
		y := p.parseAnd()
		x = ast.NewBinaryExpr(x.StartTok(), y.EndTok(), op.Kind, x, y)
	}
	return x
}

func (p *parser) parseAnd() ast.Expr {
	x := p.parseNot()
	for p.cur().Kind == token.And {
		op := p.advance()
		y := p.parseNot()
		x = ast.NewBinaryExpr(x.StartTok(), y.EndTok(), op.Kind, x, y)
	}
	return x
}

func (p *parser) parseNot() ast.Expr {
	if p.cur().Kind == token.Not {
		op := p.advance()
		x := p.parseNot()
		return ast.NewUnaryExpr(op, x.EndTok(), op.Kind, x)
	}
	return p.parseComparison()
}

func isComparisonOp(k token.Kind) bool {
	switch k {
	case token.Equal, token.NotEqual, token.Less, token.LessEqual,
		token.Greater, token.GreaterEqual, token.In:
		return true
	}
	return false
}

func (p *parser) parseComparison() ast.Expr {
	x := p.parseAdditive()
	for isComparisonOp(p.cur().Kind) {
		op := p.advance()
		y := p.parseAdditive()
		x = ast.NewBinaryExpr(x.StartTok(), y.EndTok(), op.Kind, x, y)
	}
	return x
}

func (p *parser) parseAdditive() ast.Expr {
	x := p.parseMultiplicative()
	for p.cur().Kind == token.Plus || p.cur().Kind == token.Minus {
		op := p.advance()
		y := p.parseMultiplicative()
		x = ast.NewBinaryExpr(x.StartTok(), y.EndTok(), op.Kind, x, y)
	}
	return x
}

func isMultiplicativeOp(k token.Kind) bool {
	switch k {
	case token.Multiply, token.Divide, token.Div, token.Mod:
		return true
	}
	return false
}

func (p *parser) parseMultiplicative() ast.Expr {
	x := p.parseUnary()
	for isMultiplicativeOp(p.cur().Kind) {
		op := p.advance()
		y := p.parseUnary()
		x = ast.NewBinaryExpr(x.StartTok(), y.EndTok(), op.Kind, x, y)
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	if p.cur().Kind == token.Plus || p.cur().Kind == token.Minus {
		op := p.advance()
		x := p.parseUnary()
		return ast.NewUnaryExpr(op, x.EndTok(), op.Kind, x)
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.Dot:
			p.advance()
			selTok := p.cur()
			var sel *ast.Identifier
			if selTok.Kind == token.Identifier || selTok.Kind == token.QuotedIdentifier || selTok.Kind.IsDataType() {
				p.advance()
				sel = ast.NewIdentifier(selTok, identifierText(selTok), selTok.Kind == token.QuotedIdentifier)
			} else {
				p.errorf(selTok, "expected field or member name, got %s", selTok.Text)
				sel = ast.NewIdentifier(selTok, "", false)
			}
			x = ast.NewMemberAccess(x.StartTok(), sel.EndTok(), x, sel)

		case token.LeftParen:
			p.advance()
			var args []ast.Expr
			if p.cur().Kind != token.RightParen {
				args = p.parseExprList()
			}
			closeTok, _ := p.expect(token.RightParen, ")")
			x = ast.NewCallExpr(x.StartTok(), closeTok, x, args)

		case token.LeftBracket:
			p.advance()
			var idx []ast.Expr
			if p.cur().Kind != token.RightBracket {
				idx = p.parseExprList()
			}
			closeTok, _ := p.expect(token.RightBracket, "]")
			x = ast.NewIndexExpr(x.StartTok(), closeTok, x, idx)

		default:
			return x
		}
	}
}

// parseExprList parses one or more comma-separated expressions, used for
// call arguments, index lists, and CASE branch value lists.
func (p *parser) parseExprList() []ast.Expr {
	var exprs []ast.Expr
	for {
		exprs = append(exprs, p.parseExpr())
		if p.cur().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	return exprs
}

func identifierText(tok token.Token) string {
	if tok.Kind == token.QuotedIdentifier {
		return stripQuotes(tok.Text)
	}
	return tok.Text
}

// parsePrimary parses a literal, identifier, or parenthesized
// subexpression. A token that cannot start any expression produces a
// BadExpr and a parse-error-recovery diagnostic, consuming exactly that one
// token so the caller is guaranteed forward progress (spec §4.3 strategy 4).
func (p *parser) parsePrimary() ast.Expr {
	tok := p.cur()

	switch {
	case tok.Kind.IsLiteral() && tok.Kind != token.QuotedIdentifier:
		p.advance()
		return ast.NewLiteral(tok)

	case tok.Kind == token.QuotedIdentifier:
		p.advance()
		return ast.NewIdentifier(tok, stripQuotes(tok.Text), true)

	case tok.Kind == token.Identifier || tok.Kind.IsDataType():
		p.advance()
		return ast.NewIdentifier(tok, tok.Text, false)

	case tok.Kind == token.ALOnlyKeyword || tok.Kind == token.ALOnlyAccessModifier:
		p.advance()
		p.errs = append(p.errs, diag.NewALOnlySyntax(tok, tok.Text))
		return ast.NewIdentifier(tok, tok.Text, false)

	case tok.Kind == token.LeftParen:
		p.advance()
		x := p.parseExpr()
		closeTok, _ := p.expect(token.RightParen, ")")
		return ast.NewParenExpr(tok, closeTok, x)

	default:
		p.errs = append(p.errs, diag.NewErrorRecovery(tok, "expected an expression"))
		if tok.Kind != token.EOF {
			p.advance()
		}
		return ast.NewBadExpr(tok, tok)
	}
}
