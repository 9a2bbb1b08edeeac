package semantic

import (
	"strings"
	"testing"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// The tests in this file encode the worked scenarios spec.md §8 uses to
// pin down exact collector/resolver behavior.

func wideLoc(startLine, endLine int) source.Location {
	return source.NewLocation(source.NewRange(startLine, 0, endLine, 0))
}

func findSymbols(t *SymbolTable, kind symbol.Kind) []*symbol.Symbol {
	return t.FindSymbolWith(func(s *symbol.Symbol) bool { return s.Kind == kind })
}

func findRefs(refs []*reference.SymbolReference, pred func(*reference.SymbolReference) bool) []*reference.SymbolReference {
	var out []*reference.SymbolReference
	for _, r := range refs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Scenario 1: a minimal class with two getValue() overloads that, once
// folded through ParameterSignature, collide (neither declares a
// parameter) — exactly one duplicate-declaration diagnostic, and the
// second declaration does not replace the first in the table.
func TestOverloadedMethodsWithSameSignatureProduceOneDuplicateDiagnostic(t *testing.T) {
	b := parsetree.NewBuilder()

	m1 := b.Method("getValue", wideLoc(2, 4), b.TypeRef("String", parsetree.Pos(2, 18, 6)), nil,
		b.StringLit(parsetree.RoleStatement, "test", parsetree.Pos(3, 4, 6)))
	m1.Modifiers = []string{"public", "static"}

	m2 := b.Method("getValue", wideLoc(5, 7), b.TypeRef("Integer", parsetree.Pos(5, 19, 7)), nil,
		b.IntLit(parsetree.RoleStatement, "42", parsetree.Pos(6, 4, 2)))
	m2.Modifiers = []string{"public"}

	class := b.Class("TestClass", wideLoc(1, 8), m1, m2)
	class.Modifiers = []string{"global"}
	unit := b.Unit(wideLoc(1, 8), class)

	table := Collect(unit, WithFileURI("file:///TestClass.cls"))

	classes := findSymbols(table, symbol.KindClass)
	if len(classes) != 1 || classes[0].Modifiers.Visibility != symbol.VisibilityGlobal {
		t.Fatalf("classes = %+v, want exactly one global TestClass", classes)
	}

	methods := findSymbols(table, symbol.KindMethod)
	if len(methods) != 1 {
		t.Fatalf("methods = %d, want exactly 1 (the duplicate must not be added)", len(methods))
	}
	if methods[0].Name != "getValue" || !methods[0].Modifiers.IsStatic {
		t.Errorf("surviving method = %+v, want the first (static, String-returning) declaration", methods[0])
	}

	diags := table.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want exactly 1, got %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, "already declared") {
		t.Errorf("diagnostic = %q, want a duplicate-declaration message", diags[0].Message)
	}
}

// Scenario 2: "Integer a; a = 1;" — a write reference on a resolved to the
// declared variable, plus a literal reference for 1.
func TestAssignmentToDeclaredVariableResolvesWriteReference(t *testing.T) {
	b := parsetree.NewBuilder()

	decl := b.LocalVar("Integer", parsetree.Pos(2, 2, 11), "a")
	assign := b.Assign(
		b.Ident("", "a", parsetree.Pos(3, 2, 1)),
		b.IntLit("", "1", parsetree.Pos(3, 6, 1)),
		parsetree.Pos(3, 2, 5), false)

	method := b.Method("run", wideLoc(1, 4), nil, nil, decl, assign)
	class := b.Class("TestClass", wideLoc(1, 5), method)
	unit := b.Unit(wideLoc(1, 5), class)

	table := Analyze(unit, WithFileURI("file:///TestClass.cls"))

	vars := findSymbols(table, symbol.KindVariable)
	if len(vars) != 1 || vars[0].Name != "a" || vars[0].Type.Name != "Integer" {
		t.Fatalf("variables = %+v, want exactly one Integer 'a'", vars)
	}

	refs := table.GetAllReferences()
	writes := findRefs(refs, func(r *reference.SymbolReference) bool {
		return r.Context == reference.VariableUsage && r.Access == reference.Write && r.Location.IdentifierRange.Start.Line == 3
	})
	if len(writes) != 1 {
		t.Fatalf("write references on line 3 = %d, want 1, got %+v", len(writes), writes)
	}
	if !writes[0].Resolved() || writes[0].ResolvedSymbolID != vars[0].ID {
		t.Errorf("write reference = %+v, want resolved to %s", writes[0], vars[0].ID)
	}

	literals := findRefs(refs, func(r *reference.SymbolReference) bool { return r.Context == reference.Literal })
	if len(literals) != 1 || literals[0].LiteralType != reference.LiteralInteger || literals[0].LiteralValue != "1" {
		t.Fatalf("literal references = %+v, want one Integer literal \"1\"", literals)
	}
}

// Scenario 3: "System.debug(x);" inside a method taking a String parameter
// x — a chained reference whose base narrows to CLASS_REFERENCE because
// System is a configured standard-library class name, a separate
// variable-usage hover reference on System, and a resolved parameter
// reference for x.
func TestChainedStdlibCallNarrowsBaseAndResolvesArgument(t *testing.T) {
	b := parsetree.NewBuilder()

	call := b.Dot(
		b.Ident("", "System", parsetree.Pos(3, 2, 6)),
		b.Call(nil, "debug", parsetree.Pos(3, 9, 5), b.Ident(parsetree.RoleArgument, "x", parsetree.Pos(3, 15, 1))),
		parsetree.Pos(3, 2, 15))

	params := []*parsetree.Node{b.Param("x", "String", parsetree.Pos(1, 20, 1))}
	method := b.Method("run", wideLoc(1, 4), nil, params, call)
	class := b.Class("TestClass", wideLoc(1, 5), method)
	unit := b.Unit(wideLoc(1, 5), class)

	table := Analyze(unit, WithFileURI("file:///TestClass.cls"), WithStdlibClassNames("System"))

	refs := table.GetAllReferences()

	chained := findRefs(refs, func(r *reference.SymbolReference) bool { return r.Context == reference.Chained })
	if len(chained) != 1 {
		t.Fatalf("chained references = %d, want 1, got %+v", len(chained), chained)
	}
	outer := chained[0]
	if outer.Name != "debug" || outer.BaseExpression != "System" || len(outer.ChainNodes) != 2 {
		t.Fatalf("outer chain = %+v, want name=debug base=System 2 nodes", outer)
	}
	if outer.ChainNodes[0].Context != reference.ClassReference {
		t.Errorf("chain base context = %s, want CLASS_REFERENCE (System is a configured stdlib class)", outer.ChainNodes[0].Context)
	}
	if outer.ChainNodes[1].Context != reference.ChainStep || outer.ChainNodes[1].ParentContext != reference.MethodCall {
		t.Errorf("chain tail = %+v, want CHAIN_STEP/METHOD_CALL", outer.ChainNodes[1])
	}

	hoverRefs := findRefs(refs, func(r *reference.SymbolReference) bool {
		return r.Name == "System" && r.Context == reference.VariableUsage
	})
	if len(hoverRefs) != 1 {
		t.Fatalf("hover references on System = %d, want 1, got %+v", len(hoverRefs), hoverRefs)
	}

	params2 := findSymbols(table, symbol.KindParameter)
	if len(params2) != 1 || params2[0].Name != "x" {
		t.Fatalf("parameters = %+v, want exactly one 'x'", params2)
	}
	argRefs := findRefs(refs, func(r *reference.SymbolReference) bool {
		return r.Name == "x" && r.Context == reference.VariableUsage
	})
	if len(argRefs) != 1 || !argRefs[0].Resolved() || argRefs[0].ResolvedSymbolID != params2[0].ID {
		t.Fatalf("argument reference = %+v, want resolved to parameter %s", argRefs, params2[0].ID)
	}

	if len(outer.ParameterRefs) != 1 || outer.ParameterRefs[0] != argRefs[0] {
		t.Errorf("System.debug(x) parameterRefs = %+v, want exactly the x argument reference", outer.ParameterRefs)
	}
}

// Scenario 4: "a.b(c.d(e));" — a nested chained call used as another
// chained call's argument. The call stack must still be empty at the end
// of the unit (no leak warning), and both chains are captured distinctly.
func TestNestedChainedCallsLeaveCallStackEmpty(t *testing.T) {
	b := parsetree.NewBuilder()

	inner := b.Dot(
		b.Ident("", "c", parsetree.Pos(2, 2, 1)),
		b.Call(nil, "d", parsetree.Pos(2, 4, 1), b.Ident(parsetree.RoleArgument, "e", parsetree.Pos(2, 6, 1))),
		parsetree.Pos(2, 2, 6))

	outer := b.Dot(
		b.Ident("", "a", parsetree.Pos(2, 9, 1)),
		b.Call(nil, "b", parsetree.Pos(2, 11, 1), inner),
		parsetree.Pos(2, 9, 9))

	method := b.Method("run", wideLoc(1, 3), nil, nil, outer)
	class := b.Class("TestClass", wideLoc(1, 4), method)
	unit := b.Unit(wideLoc(1, 4), class)

	table := Analyze(unit, WithFileURI("file:///TestClass.cls"))

	for _, d := range table.Diagnostics() {
		if strings.Contains(d.Message, "call stack not empty") {
			t.Fatalf("unexpected call-stack leak diagnostic: %s", d.Message)
		}
	}

	chained := findRefs(table.GetAllReferences(), func(r *reference.SymbolReference) bool { return r.Context == reference.Chained })
	if len(chained) != 2 {
		t.Fatalf("chained references = %d, want 2 (outer a.b and inner c.d)", len(chained))
	}
	for _, c := range chained {
		if len(c.ChainNodes) != 2 {
			t.Errorf("chain %+v has %d nodes, want 2", c, len(c.ChainNodes))
		}
	}

	// spec.md §4.2's method-call parameter stack: the outer a.b(...) call's
	// parameter list must contain the inner c.d(e) chained reference, and
	// that inner reference's own parameter list must contain the "e"
	// argument.
	var outerChain, innerChain *reference.SymbolReference
	for _, c := range chained {
		if c.BaseExpression == "a" {
			outerChain = c
		} else if c.BaseExpression == "c" {
			innerChain = c
		}
	}
	if outerChain == nil || innerChain == nil {
		t.Fatalf("expected one a.* and one c.* chain, got %+v", chained)
	}
	foundInner := false
	for _, p := range outerChain.ParameterRefs {
		if p == innerChain {
			foundInner = true
		}
	}
	if !foundInner {
		t.Errorf("outer a.b(...) parameterRefs = %+v, want to contain the inner c.d(e) chained reference", outerChain.ParameterRefs)
	}
	if len(innerChain.ParameterRefs) != 1 || innerChain.ParameterRefs[0].Name != "e" {
		t.Errorf("inner c.d(e) parameterRefs = %+v, want exactly one reference named e", innerChain.ParameterRefs)
	}
}

// Scenario 5: "String x, x;" — one Variable symbol, one duplicate-variable
// diagnostic.
func TestDuplicateDeclaratorsInSameStatementProduceOneSymbolAndOneDiagnostic(t *testing.T) {
	b := parsetree.NewBuilder()

	decl := b.LocalVar("String", parsetree.Pos(2, 2, 12), "x", "x")
	method := b.Method("run", wideLoc(1, 3), nil, nil, decl)
	class := b.Class("TestClass", wideLoc(1, 4), method)
	unit := b.Unit(wideLoc(1, 4), class)

	table := Collect(unit, WithFileURI("file:///TestClass.cls"))

	vars := findSymbols(table, symbol.KindVariable)
	if len(vars) != 1 || vars[0].Name != "x" {
		t.Fatalf("variables = %+v, want exactly one 'x'", vars)
	}

	diags := table.Diagnostics()
	if len(diags) != 1 || !strings.Contains(diags[0].Message, "already declared") {
		t.Fatalf("diagnostics = %v, want exactly one duplicate-declaration diagnostic", diags)
	}
}

// Scenario 6: a switch over an enum where one when-value is fully
// qualified ("E.A") and another is bare ("B") — exactly one
// INVALID_FULLY_QUALIFIED_ENUM diagnostic, no error on the unqualified
// value.
func TestQualifiedEnumSwitchValueProducesExactlyOneDiagnostic(t *testing.T) {
	b := parsetree.NewBuilder()

	qualified := b.Dot(
		b.Ident("", "E", parsetree.Pos(3, 9, 1)),
		b.Ident("", "A", parsetree.Pos(3, 11, 1)),
		parsetree.Pos(3, 9, 3))
	when1 := b.When(parsetree.Pos(3, 4, 10), qualified)
	when2 := b.When(parsetree.Pos(4, 4, 10), b.Ident("", "B", parsetree.Pos(4, 9, 1)))

	sw := b.Switch(b.Ident("", "e", parsetree.Pos(2, 11, 1)), wideLoc(2, 5), when1, when2)
	method := b.Method("run", wideLoc(1, 6), nil, nil, sw)
	class := b.Class("TestClass", wideLoc(1, 7), method)
	unit := b.Unit(wideLoc(1, 7), class)

	table := Collect(unit, WithFileURI("file:///TestClass.cls"))

	diags := table.Diagnostics()
	qualifiedDiags := findDiags(diags, "INVALID_FULLY_QUALIFIED_ENUM")
	if len(qualifiedDiags) != 1 {
		t.Fatalf("INVALID_FULLY_QUALIFIED_ENUM diagnostics = %d, want 1, got %v", len(qualifiedDiags), diags)
	}
	if len(diags) != 1 {
		t.Errorf("diagnostics = %v, want only the qualified-enum one (the unqualified B must not error)", diags)
	}
}

func findDiags(diags []diagnostics.Diagnostic, substr string) []diagnostics.Diagnostic {
	var out []diagnostics.Diagnostic
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			out = append(out, d)
		}
	}
	return out
}
