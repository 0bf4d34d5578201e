// Package token defines the token kinds and the Token value type shared by
// the lexer, parser, trivia computer, and diagnostic emitter.
package token

import "fmt"

// Kind classifies a Token. The set is closed: every value the lexer can
// produce is listed here.
type Kind int

const (
	// Sentinels
	ILLEGAL Kind = iota // reserved zero value; never produced by the lexer
	Unknown
	EOF

	// Punctuation
	LeftBrace
	RightBrace
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	Semicolon
	Comma
	Colon
	DoubleColon
	Dot
	DotDot
	Assign
	PlusAssign
	MinusAssign
	MultiplyAssign
	DivideAssign
	Plus
	Minus
	Multiply
	Divide
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	TernaryOperator

	// Literals
	Integer
	Decimal
	String
	Date
	Time
	DateTime
	QuotedIdentifier

	// Identifier-like
	Identifier
	PreprocessorDirective

	// Structural keywords
	Object
	Properties
	Fields
	Keys
	FieldGroups
	Code
	Controls
	Actions
	DataItems
	Elements
	RequestForm
	Begin
	End
	Procedure
	Function
	Trigger
	Var
	Local
	If
	Then
	Else
	Case
	Of
	For
	To
	Downto
	While
	Do
	Repeat
	Until
	With
	Exit
	Break
	And
	Or
	Xor
	Not
	Mod
	Div
	In

	// Data-type keywords
	CodeType
	TextType
	DateType
	TimeType
	DateTimeType
	IntegerType
	DecimalType
	Boolean
	BigInteger
	BigText
	BLOB
	GUID
	Duration
	Option
	Char
	Byte
	Record
	RecordID
	RecordRef
	FieldRef
	TextConst

	// AL-only keywords (recognized so the parser can flag them, never accepted)
	ALVar // `var` as a parameter modifier keyword, distinct from Var
	ALOnlyKeyword
	ALOnlyAccessModifier

	// Sentinel structural token
	ObjectProperties
)

var kindNames = map[Kind]string{
	ILLEGAL:               "ILLEGAL",
	Unknown:                "Unknown",
	EOF:                    "EOF",
	LeftBrace:              "LeftBrace",
	RightBrace:             "RightBrace",
	LeftParen:              "LeftParen",
	RightParen:             "RightParen",
	LeftBracket:            "LeftBracket",
	RightBracket:           "RightBracket",
	Semicolon:              "Semicolon",
	Comma:                  "Comma",
	Colon:                  "Colon",
	DoubleColon:            "DoubleColon",
	Dot:                    "Dot",
	DotDot:                 "DotDot",
	Assign:                 "Assign",
	PlusAssign:             "PlusAssign",
	MinusAssign:            "MinusAssign",
	MultiplyAssign:         "MultiplyAssign",
	DivideAssign:           "DivideAssign",
	Plus:                   "Plus",
	Minus:                  "Minus",
	Multiply:               "Multiply",
	Divide:                 "Divide",
	Equal:                  "Equal",
	NotEqual:               "NotEqual",
	Less:                   "Less",
	LessEqual:              "LessEqual",
	Greater:                "Greater",
	GreaterEqual:           "GreaterEqual",
	TernaryOperator:        "TernaryOperator",
	Integer:                "Integer",
	Decimal:                "Decimal",
	String:                 "String",
	Date:                   "Date",
	Time:                   "Time",
	DateTime:               "DateTime",
	QuotedIdentifier:       "QuotedIdentifier",
	Identifier:             "Identifier",
	PreprocessorDirective:  "PreprocessorDirective",
	Object:                 "Object",
	Properties:             "Properties",
	Fields:                 "Fields",
	Keys:                   "Keys",
	FieldGroups:            "FieldGroups",
	Code:                   "Code",
	Controls:               "Controls",
	Actions:                "Actions",
	DataItems:              "DataItems",
	Elements:               "Elements",
	RequestForm:            "RequestForm",
	Begin:                  "Begin",
	End:                    "End",
	Procedure:              "Procedure",
	Function:               "Function",
	Trigger:                "Trigger",
	Var:                    "Var",
	Local:                  "Local",
	If:                     "If",
	Then:                   "Then",
	Else:                   "Else",
	Case:                   "Case",
	Of:                     "Of",
	For:                    "For",
	To:                     "To",
	Downto:                 "Downto",
	While:                  "While",
	Do:                     "Do",
	Repeat:                 "Repeat",
	Until:                  "Until",
	With:                   "With",
	Exit:                   "Exit",
	Break:                  "Break",
	And:                    "And",
	Or:                     "Or",
	Xor:                    "Xor",
	Not:                    "Not",
	Mod:                    "Mod",
	Div:                    "Div",
	In:                     "In",
	CodeType:               "Code",
	TextType:               "Text",
	DateType:               "Date",
	TimeType:               "Time",
	DateTimeType:           "DateTime",
	IntegerType:            "Integer",
	DecimalType:            "Decimal",
	Boolean:                "Boolean",
	BigInteger:             "BigInteger",
	BigText:                "BigText",
	BLOB:                   "BLOB",
	GUID:                   "GUID",
	Duration:               "Duration",
	Option:                 "Option",
	Char:                   "Char",
	Byte:                   "Byte",
	Record:                 "Record",
	RecordID:               "RecordID",
	RecordRef:              "RecordRef",
	FieldRef:               "FieldRef",
	TextConst:              "TextConst",
	ALVar:                  "ALVar",
	ALOnlyKeyword:          "ALOnlyKeyword",
	ALOnlyAccessModifier:   "ALOnlyAccessModifier",
	ObjectProperties:       "ObjectProperties",
}

// String returns the token kind's name, for diagnostics and test output.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether k denotes a literal value token.
func (k Kind) IsLiteral() bool {
	switch k {
	case Integer, Decimal, String, Date, Time, DateTime, QuotedIdentifier:
		return true
	}
	return false
}

// IsDataType reports whether k is one of the data-type keyword kinds.
func (k Kind) IsDataType() bool {
	switch k {
	case CodeType, TextType, DateType, TimeType, DateTimeType, IntegerType,
		DecimalType, Boolean, BigInteger, BigText, BLOB, GUID, Duration,
		Option, Char, Byte, Record, RecordID, RecordRef, FieldRef, TextConst:
		return true
	}
	return false
}

// IsALOnly reports whether k is a kind recognized only to be flagged as
// AL-only syntax; the parser never accepts it as valid C/AL.
func (k Kind) IsALOnly() bool {
	switch k {
	case ALVar, ALOnlyKeyword, ALOnlyAccessModifier, TernaryOperator, PreprocessorDirective:
		return true
	}
	return false
}

// Token is an immutable record of one lexical unit: its kind, its verbatim
// source text, and its 1-based line/column together with its half-open
// byte-offset span [StartOffset, EndOffset) into the source buffer.
//
// The EOF token is the distinguished sentinel for which
// StartOffset == EndOffset == len(source).
type Token struct {
	Kind        Kind
	Text        string
	Line        int
	Column      int
	StartOffset int
	EndOffset   int
}

// Len returns the byte length of the token's span.
func (t Token) Len() int { return t.EndOffset - t.StartOffset }

// String renders a compact, human-readable form used in diagnostics and
// test failures: kind, literal text, and position.
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text, t.Line, t.Column)
}
