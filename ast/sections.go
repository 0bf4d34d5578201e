package ast

import "github.com/klauskaan/C-AL-Language-sub006/token"

// PropertyList is an ordered list of Property (spec §3).
type PropertyList struct {
	span
	Properties []*Property
}

func NewPropertyList(start, end token.Token) *PropertyList {
	return &PropertyList{span: newSpan(start, end)}
}

// Property is one `Name` or `Name = value` or `Name = trigger-body` entry
// inside a property-and-trigger tail (spec §4.3).
type Property struct {
	span

	Name      string
	NameToken token.Token

	HasValue   bool // false for a bare flag property
	EmptyValue bool // true for the "= }" legitimate-empty-value form
	ValueText  string
	ValueTokens []token.Token

	Trigger *TriggerBody // non-nil when this property is `Name = ... BEGIN ... END`
}

func NewProperty(start, end token.Token, name string, nameTok token.Token) *Property {
	return &Property{span: newSpan(start, end), Name: name, NameToken: nameTok}
}

// TriggerBody is a trigger assigned as a property value:
// `TriggerName = [VAR varList] BEGIN statements END`.
type TriggerBody struct {
	span
	Name      string
	NameToken token.Token
	Variables []*VariableDeclaration
	Body      *BlockStmt
}

func NewTriggerBody(start, end token.Token, name string, nameTok token.Token) *TriggerBody {
	return &TriggerBody{span: newSpan(start, end), Name: name, NameToken: nameTok}
}

// FieldSection is the FIELDS section: a list of field declarations.
type FieldSection struct {
	span
	Fields []*FieldDeclaration
}

func NewFieldSection(start, end token.Token) *FieldSection {
	return &FieldSection{span: newSpan(start, end)}
}

// FieldDeclaration is one `{ id ; class ; name ; datatype [; properties] }`
// entry inside FIELDS (spec §4.3).
type FieldDeclaration struct {
	span

	ID      *int
	IDToken token.Token

	Class string

	Name      string
	NameToken token.Token

	DataType *DataTypeSpec

	Properties *PropertyList
}

func NewFieldDeclaration(start, end token.Token) *FieldDeclaration {
	return &FieldDeclaration{span: newSpan(start, end)}
}

// DataTypeSpec describes a field or variable's data type, including the
// length/subtype/array-recursion shapes spec §4.3's variable-declaration
// grammar describes.
type DataTypeSpec struct {
	span

	Name      string
	NameToken token.Token

	Length *int // Code[20], Text[30]
	Subtype string // Record Customer, Option values, etc: raw tail text

	ArrayDims   []int // ARRAY[dim, dim, ...]
	ElementType *DataTypeSpec // element type of an ARRAY OF
}

func NewDataTypeSpec(start, end token.Token, name string, nameTok token.Token) *DataTypeSpec {
	return &DataTypeSpec{span: newSpan(start, end), Name: name, NameToken: nameTok}
}

// KeySection is the KEYS section.
type KeySection struct {
	span
	Keys []*KeyDeclaration
}

func NewKeySection(start, end token.Token) *KeySection {
	return &KeySection{span: newSpan(start, end)}
}

// KeyDeclaration is one `{ field[,field...] ; properties }` entry in KEYS.
type KeyDeclaration struct {
	span
	FieldNames  []string
	FieldTokens []token.Token
	Properties  *PropertyList
}

func NewKeyDeclaration(start, end token.Token) *KeyDeclaration {
	return &KeyDeclaration{span: newSpan(start, end)}
}

// ElementSection generalizes CONTROLS, ELEMENTS, ACTIONS, and DATAITEMS:
// spec §4.3 dispatches all four the same way ("Section dispatch") without
// detailing a grammar beyond "brace-delimited entries with an id and a
// property-and-trigger tail" (the same shape FIELDS uses); see DESIGN.md.
type ElementSection struct {
	span
	Elements []*ElementDeclaration
}

func NewElementSection(start, end token.Token) *ElementSection {
	return &ElementSection{span: newSpan(start, end)}
}

// ElementDeclaration is one `{ id ; properties-and-triggers }` entry inside
// an ElementSection.
type ElementDeclaration struct {
	span

	ID      *int
	IDToken token.Token

	Properties *PropertyList
}

func NewElementDeclaration(start, end token.Token) *ElementDeclaration {
	return &ElementDeclaration{span: newSpan(start, end)}
}

// CodeSection is the CODE section: variables, procedures, and an optional
// trailing documentation trigger `BEGIN ... END.` (spec §3, §4.3).
type CodeSection struct {
	span
	Variables  []*VariableDeclaration
	Procedures []*ProcedureDeclaration
	// DocBody is the trailing BEGIN..END. body, distinguished from a normal
	// BEGIN..END; by its trailing dot (see GLOSSARY: "Documentation trigger").
	DocBody *BlockStmt
}

func NewCodeSection(start, end token.Token) *CodeSection {
	return &CodeSection{span: newSpan(start, end)}
}

// ProcedureDeclaration is a PROCEDURE/FUNCTION/TRIGGER declaration (spec §4.3).
type ProcedureDeclaration struct {
	span

	Local bool
	Kind  token.Kind // Procedure, Function, or Trigger

	Name      string
	NameToken token.Token

	Parameters []*Parameter
	ReturnType *DataTypeSpec

	Variables []*VariableDeclaration
	Body      *BlockStmt
}

func NewProcedureDeclaration(start, end token.Token) *ProcedureDeclaration {
	return &ProcedureDeclaration{span: newSpan(start, end)}
}

// Parameter is one entry of a procedure's parameter list:
// `[VAR] name [: type]`.
type Parameter struct {
	span

	ByRef bool // true for VAR parameters (and the AL-only `var` modifier)

	Name      string
	NameToken token.Token

	Type *DataTypeSpec
}

func NewParameter(start, end token.Token) *Parameter {
	return &Parameter{span: newSpan(start, end)}
}

// VariableDeclaration is one VAR-block entry (spec §4.3):
// `name [@ id] : [TEMPORARY] dataType [array-suffix] [INDATASET]`.
type VariableDeclaration struct {
	span

	Name      string
	NameToken token.Token

	IsTemporary bool
	IsInDataset bool

	Type *DataTypeSpec
}

func NewVariableDeclaration(start, end token.Token) *VariableDeclaration {
	return &VariableDeclaration{span: newSpan(start, end)}
}
