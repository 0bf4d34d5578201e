package token

import "strings"

// calKeywords holds every keyword the C/AL grammar itself accepts, keyed by
// upper-cased literal text since keyword lookup is case-insensitive (spec
// §4.1). Section keywords live here too. Object-kind names (Table,
// Codeunit, ...) do not: they lex as Identifier and are recognized by
// position (see IsObjectKind).
var calKeywords = map[string]Kind{
	"OBJECT":      Object,
	"PROPERTIES":  Properties,
	"FIELDS":      Fields,
	"KEYS":        Keys,
	"FIELDGROUPS": FieldGroups,
	"CODE":        Code,
	"CONTROLS":    Controls,
	"ACTIONS":     Actions,
	"DATAITEMS":   DataItems,
	"ELEMENTS":    Elements,
	"REQUESTFORM": RequestForm,
	"BEGIN":       Begin,
	"END":         End,
	"PROCEDURE":   Procedure,
	"FUNCTION":    Function,
	"TRIGGER":     Trigger,
	"VAR":         Var,
	"LOCAL":       Local,
	"IF":          If,
	"THEN":        Then,
	"ELSE":        Else,
	"CASE":        Case,
	"OF":          Of,
	"FOR":         For,
	"TO":          To,
	"DOWNTO":      Downto,
	"WHILE":       While,
	"DO":          Do,
	"REPEAT":      Repeat,
	"UNTIL":       Until,
	"WITH":        With,
	"EXIT":        Exit,
	"BREAK":       Break,
	"AND":         And,
	"OR":          Or,
	"XOR":         Xor,
	"NOT":         Not,
	"MOD":         Mod,
	"DIV":         Div,
	"IN":          In,
}

// dataTypeKeywords holds the reclassifiable data-type keyword set (spec §4.1).
var dataTypeKeywords = map[string]Kind{
	"CODE":      CodeType,
	"TEXT":      TextType,
	"DATE":      DateType,
	"TIME":      TimeType,
	"DATETIME":  DateTimeType,
	"INTEGER":   IntegerType,
	"DECIMAL":   DecimalType,
	"BOOLEAN":   Boolean,
	"BIGINTEGER": BigInteger,
	"BIGTEXT":   BigText,
	"BLOB":      BLOB,
	"GUID":      GUID,
	"DURATION":  Duration,
	"OPTION":    Option,
	"CHAR":      Char,
	"BYTE":      Byte,
	"RECORD":    Record,
	"RECORDID":  RecordID,
	"RECORDREF": RecordRef,
	"FIELDREF":  FieldRef,
	"TEXTCONST": TextConst,
}

// alOnlyKeywords and alOnlyAccessModifiers are recognized purely so the
// parser can surface a parse-al-only-syntax diagnostic: they are never part
// of accepted C/AL.
var alOnlyKeywords = map[string]bool{
	"FOREACH":    true,
	"IMPLEMENTS": true,
	"INTERFACE":  true,
	"THIS":       true,
	"NAMESPACE":  true,
}

var alOnlyAccessModifiers = map[string]bool{
	"INTERNAL":  true,
	"PROTECTED": true,
	"PUBLIC":    true,
}

// Lookup classifies an identifier-shaped literal, applying case-insensitive
// keyword matching in priority order: C/AL keyword, data-type keyword,
// AL-only keyword, AL-only access modifier, else plain Identifier. Object
// is returned for the bare "OBJECT" token; reclassification of data-type
// keywords into Identifier is done by the lexer, which has the surrounding
// context Lookup does not.
func Lookup(lit string) Kind {
	upper := strings.ToUpper(lit)
	if k, ok := calKeywords[upper]; ok {
		return k
	}
	if k, ok := dataTypeKeywords[upper]; ok {
		return k
	}
	if alOnlyKeywords[upper] {
		return ALOnlyKeyword
	}
	if alOnlyAccessModifiers[upper] {
		return ALOnlyAccessModifier
	}
	return Identifier
}

// IsObjectKind reports whether k is a valid ObjectDeclaration.ObjectKind
// keyword (Table, Codeunit, Page, Report, XMLport, Query, MenuSuite,
// Dataport). These are not reserved words — they are ordinary identifiers
// recognized positionally right after OBJECT — so this checks literal text,
// not a Kind.
func IsObjectKind(lit string) bool {
	switch strings.ToUpper(lit) {
	case "TABLE", "CODEUNIT", "PAGE", "REPORT", "XMLPORT", "QUERY", "MENUSUITE", "DATAPORT":
		return true
	}
	return false
}
