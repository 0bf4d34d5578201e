package ast

import "github.com/klauskaan/C-AL-Language-sub006/token"

func (*AssignmentStmt) stmtNode() {}
func (*IfStmt) stmtNode()         {}
func (*CaseStmt) stmtNode()       {}
func (*ForStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()      {}
func (*RepeatStmt) stmtNode()     {}
func (*WithStmt) stmtNode()       {}
func (*ExitStmt) stmtNode()       {}
func (*BreakStmt) stmtNode()      {}
func (*BlockStmt) stmtNode()      {}
func (*ExprStmt) stmtNode()       {}
func (*EmptyStmt) stmtNode()      {}
func (*BadStmt) stmtNode()        {}

// AssignmentStmt is `Target := Value`.
type AssignmentStmt struct {
	span
	Target Expr
	Value  Expr
}

func NewAssignmentStmt(start, end token.Token, target, value Expr) *AssignmentStmt {
	return &AssignmentStmt{span: newSpan(start, end), Target: target, Value: value}
}

// IfStmt is `IF Cond THEN Then [ELSE Else]`.
type IfStmt struct {
	span
	Cond Expr
	Then Stmt
	Else Stmt // nil if no ELSE branch
}

func NewIfStmt(start, end token.Token, cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{span: newSpan(start, end), Cond: cond, Then: then, Else: els}
}

// CaseBranch is one `values : statement` arm of a CASE.
type CaseBranch struct {
	span
	Values []Expr
	Body   Stmt
}

func NewCaseBranch(start, end token.Token, values []Expr, body Stmt) *CaseBranch {
	return &CaseBranch{span: newSpan(start, end), Values: values, Body: body}
}

// CaseStmt is `CASE Selector OF branches... [ELSE elseBranch] END`.
type CaseStmt struct {
	span
	Selector   Expr
	Branches   []*CaseBranch
	ElseBranch Stmt // nil if no ELSE
}

func NewCaseStmt(start, end token.Token, selector Expr) *CaseStmt {
	return &CaseStmt{span: newSpan(start, end), Selector: selector}
}

// ForStmt is `FOR Var := Start TO|DOWNTO End DO Body`.
type ForStmt struct {
	span
	Var   Expr
	Start Expr
	Stop  Expr
	Down  bool
	Body  Stmt
}

func NewForStmt(start, end token.Token) *ForStmt {
	return &ForStmt{span: newSpan(start, end)}
}

// WhileStmt is `WHILE Cond DO Body`.
type WhileStmt struct {
	span
	Cond Expr
	Body Stmt
}

func NewWhileStmt(start, end token.Token, cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{span: newSpan(start, end), Cond: cond, Body: body}
}

// RepeatStmt is `REPEAT Statements... UNTIL Cond`.
type RepeatStmt struct {
	span
	Statements []Stmt
	Until      Expr
}

func NewRepeatStmt(start, end token.Token) *RepeatStmt {
	return &RepeatStmt{span: newSpan(start, end)}
}

// WithStmt is `WITH Target DO Body`.
type WithStmt struct {
	span
	Target Expr
	Body   Stmt
}

func NewWithStmt(start, end token.Token, target Expr, body Stmt) *WithStmt {
	return &WithStmt{span: newSpan(start, end), Target: target, Body: body}
}

// ExitStmt is `EXIT[(Value)]`.
type ExitStmt struct {
	span
	Value Expr // nil if no value
}

func NewExitStmt(start, end token.Token, value Expr) *ExitStmt {
	return &ExitStmt{span: newSpan(start, end), Value: value}
}

// BreakStmt is `BREAK`.
type BreakStmt struct {
	span
}

func NewBreakStmt(tok token.Token) *BreakStmt {
	return &BreakStmt{span: newSpan(tok, tok)}
}

// BlockStmt is `BEGIN Statements... END`.
type BlockStmt struct {
	span
	Statements []Stmt
}

func NewBlockStmt(start, end token.Token) *BlockStmt {
	return &BlockStmt{span: newSpan(start, end)}
}

// ExprStmt wraps a bare expression used as a statement (a procedure call
// with no assignment, for instance).
type ExprStmt struct {
	span
	X Expr
}

func NewExprStmt(start, end token.Token, x Expr) *ExprStmt {
	return &ExprStmt{span: newSpan(start, end), X: x}
}

// EmptyStmt is a stray statement-separating ";" with nothing between it and
// its neighbors.
type EmptyStmt struct {
	span
}

func NewEmptyStmt(tok token.Token) *EmptyStmt {
	return &EmptyStmt{span: newSpan(tok, tok)}
}

// BadStmt is a synthetic placeholder for a statement the parser could not
// make sense of. The parser's statement-level recovery skips tokens without
// building one.
type BadStmt struct {
	span
}

func NewBadStmt(start, end token.Token) *BadStmt {
	return &BadStmt{span: newSpan(start, end)}
}
