package ast

import "github.com/klauskaan/C-AL-Language-sub006/token"

func (*Literal) exprNode()      {}
func (*Identifier) exprNode()   {}
func (*MemberAccess) exprNode() {}
func (*CallExpr) exprNode()     {}
func (*IndexExpr) exprNode()    {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*ParenExpr) exprNode()    {}
func (*BadExpr) exprNode()      {}

// Literal is an Integer, Decimal, String, Date, Time, or DateTime literal.
type Literal struct {
	span
	Kind  token.Kind
	Value string
}

func NewLiteral(tok token.Token) *Literal {
	return &Literal{span: newSpan(tok, tok), Kind: tok.Kind, Value: tok.Text}
}

// Identifier is a name reference, quoted ("No.") or bare (CustNo).
type Identifier struct {
	span
	Name   string // quotes stripped
	Quoted bool
}

func NewIdentifier(tok token.Token, name string, quoted bool) *Identifier {
	return &Identifier{span: newSpan(tok, tok), Name: name, Quoted: quoted}
}

// MemberAccess is `X.Sel`.
type MemberAccess struct {
	span
	X   Expr
	Sel *Identifier
}

func NewMemberAccess(start, end token.Token, x Expr, sel *Identifier) *MemberAccess {
	return &MemberAccess{span: newSpan(start, end), X: x, Sel: sel}
}

// CallExpr is `Fun(Args...)`.
type CallExpr struct {
	span
	Fun  Expr
	Args []Expr
}

func NewCallExpr(start, end token.Token, fun Expr, args []Expr) *CallExpr {
	return &CallExpr{span: newSpan(start, end), Fun: fun, Args: args}
}

// IndexExpr is `X[Indices...]`.
type IndexExpr struct {
	span
	X       Expr
	Indices []Expr
}

func NewIndexExpr(start, end token.Token, x Expr, indices []Expr) *IndexExpr {
	return &IndexExpr{span: newSpan(start, end), X: x, Indices: indices}
}

// UnaryExpr is a prefix operator applied to X: -X, +X, NOT X.
type UnaryExpr struct {
	span
	Op token.Kind
	X  Expr
}

func NewUnaryExpr(start, end token.Token, op token.Kind, x Expr) *UnaryExpr {
	return &UnaryExpr{span: newSpan(start, end), Op: op, X: x}
}

// BinaryExpr is `X Op Y`.
type BinaryExpr struct {
	span
	Op token.Kind
	X  Expr
	Y  Expr
}

func NewBinaryExpr(start, end token.Token, op token.Kind, x, y Expr) *BinaryExpr {
	return &BinaryExpr{span: newSpan(start, end), Op: op, X: x, Y: y}
}

// ParenExpr is `(X)`.
type ParenExpr struct {
	span
	X Expr
}

func NewParenExpr(start, end token.Token, x Expr) *ParenExpr {
	return &ParenExpr{span: newSpan(start, end), X: x}
}

// BadExpr is the synthetic error-expression the parser's expression-level
// recovery strategy substitutes for an expression it could not parse (spec
// §4.3, strategy 4).
type BadExpr struct {
	span
}

func NewBadExpr(start, end token.Token) *BadExpr {
	return &BadExpr{span: newSpan(start, end)}
}
