package parser

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/klauskaan/C-AL-Language-sub006/ast"
	"github.com/klauskaan/C-AL-Language-sub006/diag"
)

func codes(list diag.List) []diag.Code {
	out := make([]diag.Code, len(list))
	for i, e := range list {
		out[i] = e.Code()
	}
	return out
}

func parse(t *testing.T, src string) (*ast.CALDocument, diag.List) {
	t.Helper()
	doc, errs := ParseFile("test.cal", []byte(src))
	return doc, errs
}

func TestParseMinimalObject(t *testing.T) {
	doc, errs := parse(t, "OBJECT Table 18 Customer { }")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
	if doc.Object == nil {
		t.Fatal("doc.Object is nil")
	}
	if doc.Object.ObjectKind != ast.Table {
		t.Errorf("ObjectKind = %s, want Table", doc.Object.ObjectKind)
	}
	if doc.Object.ObjectID == nil || *doc.Object.ObjectID != 18 {
		t.Errorf("ObjectID = %v, want 18", doc.Object.ObjectID)
	}
	if doc.Object.ObjectName != "Customer" {
		t.Errorf("ObjectName = %q, want %q", doc.Object.ObjectName, "Customer")
	}
}

func TestParseInvalidObjectKind(t *testing.T) {
	doc, errs := parse(t, "OBJECT Form 18 Customer { }")
	if doc.Object.ObjectKind != ast.UnknownObjectKind {
		t.Errorf("ObjectKind = %s, want UnknownObjectKind", doc.Object.ObjectKind)
	}
	if diff := cmp.Diff([]diag.Code{diag.CodeGenericError}, codes(errs)); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMultiTokenObjectName(t *testing.T) {
	doc, _ := parse(t, "OBJECT Table 18 Sales Invoice Header {\n}")
	if doc.Object.ObjectName != "Sales Invoice Header" {
		t.Errorf("ObjectName = %q, want %q", doc.Object.ObjectName, "Sales Invoice Header")
	}
}

func TestParseMultiTokenObjectNameStopsAtNewline(t *testing.T) {
	// A stray token on the next line must not be folded into the name.
	doc, _ := parse(t, "OBJECT Table 18 Sales Header\nGarbage {\n}")
	if doc.Object.ObjectName != "Sales Header" {
		t.Errorf("ObjectName = %q, want %q", doc.Object.ObjectName, "Sales Header")
	}
}

func TestParseMissingColonInVarDeclarationRecovers(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { VAR a Integer; b : Integer; BEGIN END. } }"
	doc, errs := parse(t, src)
	if len(doc.Object.Code.Variables) != 1 || doc.Object.Code.Variables[0].Name != "b" {
		t.Fatalf("Variables = %+v, want only \"b\" to survive", doc.Object.Code.Variables)
	}
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeExpectedToken {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-expected-token diagnostic for the missing \":\"", codes(errs))
	}
}

func TestParseVarBlockToleratesEmptySemicolons(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { VAR ;; a : Integer; BEGIN END. } }"
	doc, errs := parse(t, src)
	if len(errs) != 0 {
		t.Errorf("unexpected diagnostics for stray VAR-block semicolons: %v", errs)
	}
	if len(doc.Object.Code.Variables) != 1 || doc.Object.Code.Variables[0].Name != "a" {
		t.Fatalf("Variables = %+v, want [a]", doc.Object.Code.Variables)
	}
}

func TestParseVarDeclarationMissingTerminatingSemicolonIsFlagged(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { VAR a : Integer\nBEGIN END. } }"
	doc, errs := parse(t, src)
	if len(doc.Object.Code.Variables) != 1 || doc.Object.Code.Variables[0].Name != "a" {
		t.Fatalf("Variables = %+v, want [a]", doc.Object.Code.Variables)
	}
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeExpectedToken {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-expected-token diagnostic for the missing terminating \";\"", codes(errs))
	}
}

func TestParseUnclosedFieldsSectionReportsUnclosedBlock(t *testing.T) {
	src := "OBJECT Table 18 X { FIELDS { { 1 ; ; No. ; Integer } "
	_, errs := parse(t, src)
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeUnclosedBlock {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want at least one parse-unclosed-block", codes(errs))
	}
}

func TestParseALNullCoalescingOperator(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { PROCEDURE P();\nBEGIN\nx := a ?? b;\nEND;\n\nBEGIN\nEND. } }"
	doc, errs := parse(t, src)
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeALOnlySyntax {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-al-only-syntax diagnostic for \"??\"", codes(errs))
	}

	proc := doc.Object.Code.Procedures[0]
	assign, ok := proc.Body.Statements[0].(*ast.AssignmentStmt)
	if !ok {
		t.Fatalf("first statement = %T, want *ast.AssignmentStmt", proc.Body.Statements[0])
	}
	if _, ok := assign.Value.(*ast.BinaryExpr); !ok {
		t.Errorf("assignment value = %T, want *ast.BinaryExpr (the folded ?? operands)", assign.Value)
	}
}

func TestParsePropertyValueNoIntraveningSpaceIsFlagged(t *testing.T) {
	src := "OBJECT Table 18 X { PROPERTIES { CaptionML =} }"
	_, errs := parse(t, src)
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodePropertyValue {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-property-value diagnostic for \"=}\"", codes(errs))
	}
}

func TestParsePropertyValueWithSpaceIsNotFlagged(t *testing.T) {
	src := "OBJECT Table 18 X { PROPERTIES { CaptionML = } }"
	doc, errs := parse(t, src)
	for _, c := range codes(errs) {
		if c == diag.CodePropertyValue {
			t.Errorf("unexpected parse-property-value diagnostic for \"= }\" (intervening space): %v", errs)
		}
	}
	props := doc.Object.Properties.Properties
	if len(props) != 1 || !props[0].EmptyValue {
		t.Fatalf("Properties = %+v, want one EmptyValue property", props)
	}
}

func TestParseStrayContentBeforeObjectRecovers(t *testing.T) {
	src := "}}} OBJECT Table 18 X { }"
	doc, errs := parse(t, src)
	if doc.Object == nil || doc.Object.ObjectKind != ast.Table {
		t.Fatalf("doc.Object = %+v, want a parsed Table object despite leading garbage", doc.Object)
	}
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeErrorRecovery {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-error-recovery diagnostic for the leading garbage", codes(errs))
	}
}

func TestParseTruncatedInputMissingObjectHeader(t *testing.T) {
	src := "OBJECT-PROPERTIES { Date=010203D; }"
	doc, errs := parse(t, src)
	if doc.Object == nil {
		t.Fatal("doc.Object is nil, want a null-headed ObjectDeclaration")
	}
	if doc.Object.ObjectProperties == nil {
		t.Fatal("doc.Object.ObjectProperties is nil, want the section to still be parsed")
	}
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeGenericError {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-error for the missing OBJECT header", codes(errs))
	}
}

func TestParseVarParameterModifierFlaggedButStillBound(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { PROCEDURE P(VAR a : Integer);\nBEGIN\nEND;\n } }"
	doc, errs := parse(t, src)
	proc := doc.Object.Code.Procedures[0]
	if len(proc.Parameters) != 1 || !proc.Parameters[0].ByRef {
		t.Fatalf("Parameters = %+v, want one ByRef parameter", proc.Parameters)
	}
	found := false
	for _, c := range codes(errs) {
		if c == diag.CodeALOnlySyntax {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %v, want a parse-al-only-syntax diagnostic for the VAR parameter modifier", codes(errs))
	}
}

func TestParseLegacyFieldIDSuffixAbsorbedSilently(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { VAR a@1000000 : Integer; BEGIN END. } }"
	doc, errs := parse(t, src)
	if len(errs) != 0 {
		t.Errorf("unexpected diagnostics for legacy @id suffix: %v", errs)
	}
	if len(doc.Object.Code.Variables) != 1 || doc.Object.Code.Variables[0].Name != "a" {
		t.Fatalf("Variables = %+v, want [a]", doc.Object.Code.Variables)
	}
}

func TestParseArrayDataType(t *testing.T) {
	src := "OBJECT Codeunit 1 X { CODE { VAR a : ARRAY[5] OF Integer; BEGIN END. } }"
	doc, _ := parse(t, src)
	dt := doc.Object.Code.Variables[0].Type
	if dt.Name != "ARRAY" || len(dt.ArrayDims) != 1 || dt.ArrayDims[0] != 5 {
		t.Fatalf("DataTypeSpec = %+v, want ARRAY[5]", dt)
	}
	if dt.ElementType == nil || dt.ElementType.Name != "Integer" {
		t.Fatalf("ElementType = %+v, want Integer", dt.ElementType)
	}
}

func TestParseDeeplyNestedParensDoesNotPanic(t *testing.T) {
	const depth = 120
	src := "OBJECT Codeunit 1 X { CODE { PROCEDURE P();\nBEGIN\nx := " +
		strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) +
		";\nEND;\n } }"
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("deeply nested parens panicked: %v", r)
		}
	}()
	doc, _ := parse(t, src)
	if doc.Object.Code.Procedures[0].Body == nil {
		t.Fatal("procedure body is nil")
	}
}

func TestParseNeverPanicsOnAdversarialInput(t *testing.T) {
	adversarial := []string{
		"",
		"}",
		"{{{{{{",
		"OBJECT",
		"OBJECT Table",
		"OBJECT Table 18",
		"OBJECT Table abc X {",
		"OBJECT Table 18 X { FIELDS {",
		"OBJECT Table 18 X { CODE { VAR",
		"OBJECT Table 18 X { CODE { PROCEDURE",
		strings.Repeat("OBJECT ", 50),
	}
	for _, src := range adversarial {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("ParseFile(%q) panicked: %v", src, r)
				}
			}()
			ParseFile("test.cal", []byte(src))
		}()
	}
}

func TestParseAlwaysTerminates(t *testing.T) {
	// A coarse termination guard: pathological brace/keyword soup must still
	// return, not hang, because every recovery loop guarantees forward
	// progress (see DESIGN.md's per-strategy notes).
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "} { FIELDS KEYS CODE ")
	}
	done := make(chan struct{})
	go func() {
		ParseFile("test.cal", []byte(b.String()))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ParseFile did not terminate on pathological input")
	}
}
