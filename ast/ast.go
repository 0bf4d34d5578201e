// Package ast declares the types used to represent the syntax tree for a
// parsed C/AL object definition (spec §3).
//
// Every node carries a start/end token pair (spec's "every AST node
// carries a startToken/endToken pair so consumers can derive spans
// without re-tokenizing"); tokens reference no AST node, so the tree has
// no back-edges and no ownership cycle to break (spec §5, §9).
//
// Shaped after the two-tier Node/Expr/Decl interface split in
// cuelang.org/go/cue/ast, adapted to C/AL's object/section/statement
// grammar instead of CUE's structural-value grammar.
package ast

import "github.com/klauskaan/C-AL-Language-sub006/token"

// Node is implemented by every AST type. StartTok/EndTok are the node's
// span anchors; consumers compute ranges from them without re-tokenizing.
type Node interface {
	StartTok() token.Token
	EndTok() token.Token
}

// span is embedded by every concrete node to satisfy Node.
type span struct {
	Start token.Token
	End   token.Token
}

func (s span) StartTok() token.Token { return s.Start }
func (s span) EndTok() token.Token   { return s.End }

func newSpan(start, end token.Token) span { return span{Start: start, End: end} }

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// ObjectKind enumerates the object kinds the OBJECT header may declare.
type ObjectKind int

const (
	UnknownObjectKind ObjectKind = iota
	Table
	Codeunit
	Page
	Report
	XMLport
	Query
	MenuSuite
	Dataport
)

var objectKindNames = map[string]ObjectKind{
	"TABLE":     Table,
	"CODEUNIT":  Codeunit,
	"PAGE":      Page,
	"REPORT":    Report,
	"XMLPORT":   XMLport,
	"QUERY":     Query,
	"MENUSUITE": MenuSuite,
	"DATAPORT":  Dataport,
}

// LookupObjectKind returns the ObjectKind matching lit (case-insensitive)
// and whether it was recognized.
func LookupObjectKind(lit string) (ObjectKind, bool) {
	k, ok := objectKindNames[upper(lit)]
	return k, ok
}

func (k ObjectKind) String() string {
	for name, v := range objectKindNames {
		if v == k {
			return name
		}
	}
	return "Unknown"
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// CALDocument is the tree root: a C/AL source buffer contains at most one
// object declaration (spec §3, §4.3).
type CALDocument struct {
	span
	Object *ObjectDeclaration
}

// ObjectDeclaration is the single object a CALDocument may contain.
type ObjectDeclaration struct {
	span

	ObjectKind      ObjectKind
	ObjectKindToken token.Token // token naming the kind, valid even if ObjectKind is UnknownObjectKind

	ObjectID      *int
	ObjectIDToken token.Token

	ObjectName  string
	NameToken   token.Token

	ObjectProperties *PropertyList // the OBJECT-PROPERTIES section, if present
	Properties       *PropertyList
	Fields           *FieldSection
	Keys             *KeySection
	FieldGroups      *PropertyList
	Controls         *ElementSection
	Elements         *ElementSection
	Actions          *ElementSection
	DataItems        *ElementSection
	RequestForm      *PropertyList
	Code             *CodeSection
}

func NewCALDocument(start, end token.Token, object *ObjectDeclaration) *CALDocument {
	return &CALDocument{span: newSpan(start, end), Object: object}
}

func NewObjectDeclaration(start, end token.Token) *ObjectDeclaration {
	return &ObjectDeclaration{span: newSpan(start, end)}
}
