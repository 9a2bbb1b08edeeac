package semantic

import (
	"testing"

	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// TestResolveVariableUsageUpgradesToClassReference covers
// resolveVariableUsage's context-upgrade rule: a bare
// name that doesn't bind to anything variable-like in scope but does name a
// declared type is upgraded from VARIABLE_USAGE to CLASS_REFERENCE rather
// than left permanently unresolved.
func TestResolveVariableUsageUpgradesToClassReference(t *testing.T) {
	b := parsetree.NewBuilder()

	field := b.Field("FIELD", "Integer", parsetree.Pos(3, 18, 5))
	field.Modifiers = []string{"public", "static"}
	other := b.Class("MyClass", wideLoc(2, 4), field)

	use := b.Ident("", "MyClass", parsetree.Pos(6, 2, 7))
	method := b.Method("run", wideLoc(5, 7), nil, nil, use)
	class := b.Class("TestClass", wideLoc(5, 8), method)
	unit := b.Unit(wideLoc(1, 8), other, class)

	table := Analyze(unit, WithFileURI("file:///Test.cls"))

	classes := findSymbols(table, symbol.KindClass)
	if len(classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(classes))
	}

	refs := findRefs(table.GetAllReferences(), func(r *reference.SymbolReference) bool {
		return r.Name == "MyClass" && r.Location.IdentifierRange.Start.Line == 6
	})
	if len(refs) != 1 {
		t.Fatalf("MyClass usage refs = %d, want 1, got %+v", len(refs), refs)
	}
	if refs[0].Context != reference.ClassReference {
		t.Errorf("context = %s, want CLASS_REFERENCE after upgrade", refs[0].Context)
	}
	if !refs[0].Resolved() {
		t.Errorf("ref = %+v, want resolved to the MyClass symbol", refs[0])
	}
}

// TestResolveConstructorCallFallsBackToClassWithNoExplicitConstructor
// exercises resolveConstructorCall's implicit-default-constructor fallback.
func TestResolveConstructorCallFallsBackToClassWithNoExplicitConstructor(t *testing.T) {
	b := parsetree.NewBuilder()

	other := b.Class("Widget", wideLoc(2, 3))

	ctor := b.New("Widget", parsetree.Pos(6, 2, 11))
	method := b.Method("run", wideLoc(5, 7), nil, nil, ctor)
	class := b.Class("TestClass", wideLoc(5, 8), method)
	unit := b.Unit(wideLoc(1, 8), other, class)

	table := Analyze(unit, WithFileURI("file:///Test.cls"))

	widget := findSymbols(table, symbol.KindClass)
	var widgetSym *symbol.Symbol
	for _, s := range widget {
		if s.Name == "Widget" {
			widgetSym = s
		}
	}
	if widgetSym == nil {
		t.Fatalf("no Widget class symbol found")
	}

	ctors := findRefs(table.GetAllReferences(), func(r *reference.SymbolReference) bool {
		return r.Context == reference.ConstructorCall
	})
	if len(ctors) != 1 {
		t.Fatalf("constructor refs = %d, want 1, got %+v", len(ctors), ctors)
	}
	if !ctors[0].Resolved() || ctors[0].ResolvedSymbolID != widgetSym.ID {
		t.Errorf("constructor ref = %+v, want resolved to class %s", ctors[0], widgetSym.ID)
	}
}

// TestResolveConstructorCallPrefersExplicitConstructor checks that an
// explicit Constructor symbol wins over the class fallback when both exist.
func TestResolveConstructorCallPrefersExplicitConstructor(t *testing.T) {
	b := parsetree.NewBuilder()

	explicitCtor := b.Constructor("Widget", parsetree.Pos(3, 4, 13), nil)
	other := b.Class("Widget", wideLoc(2, 4), explicitCtor)

	ctor := b.New("Widget", parsetree.Pos(6, 2, 11))
	method := b.Method("run", wideLoc(5, 7), nil, nil, ctor)
	class := b.Class("TestClass", wideLoc(5, 8), method)
	unit := b.Unit(wideLoc(1, 8), other, class)

	table := Analyze(unit, WithFileURI("file:///Test.cls"))

	ctorSyms := findSymbols(table, symbol.KindConstructor)
	if len(ctorSyms) != 1 {
		t.Fatalf("constructor symbols = %d, want 1", len(ctorSyms))
	}

	refs := findRefs(table.GetAllReferences(), func(r *reference.SymbolReference) bool {
		return r.Context == reference.ConstructorCall
	})
	if len(refs) != 1 || !refs[0].Resolved() || refs[0].ResolvedSymbolID != ctorSyms[0].ID {
		t.Fatalf("constructor ref = %+v, want resolved to explicit constructor %s", refs, ctorSyms[0].ID)
	}
}

// TestResolveIsIdempotent runs the resolver twice over the same table and
// requires every ResolvedSymbolID to come out identical both times
// (spec.md §4.5's resolution must be a pure function of the table's
// contents, not of how many times it runs).
func TestResolveIsIdempotent(t *testing.T) {
	b := parsetree.NewBuilder()

	decl := b.LocalVar("Integer", parsetree.Pos(2, 2, 11), "a")
	use := b.Ident("", "a", parsetree.Pos(3, 2, 1))
	method := b.Method("run", wideLoc(1, 4), nil, nil, decl, use)
	class := b.Class("TestClass", wideLoc(1, 5), method)
	unit := b.Unit(wideLoc(1, 5), class)

	table := Collect(unit, WithFileURI("file:///TestClass.cls"))

	resolver := NewResolver(table)
	resolver.Resolve()
	first := snapshotResolvedIDs(table)

	resolver.Resolve()
	second := snapshotResolvedIDs(table)

	if len(first) != len(second) {
		t.Fatalf("reference count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("reference %d resolved id changed: %q -> %q", i, first[i], second[i])
		}
	}
}

func snapshotResolvedIDs(table *SymbolTable) []string {
	refs := table.GetAllReferences()
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ResolvedSymbolID
	}
	return out
}

// TestResolveFieldAccessFindsFieldOrProperty covers resolveFieldAccess
// matching either a Field or a Property by name.
func TestResolveFieldAccessFindsFieldOrProperty(t *testing.T) {
	b := parsetree.NewBuilder()

	field := b.Field("count", "Integer", parsetree.Pos(2, 18, 5))
	access := b.Dot(
		b.Node(parsetree.KindThisExpr, "", "this", parsetree.Pos(4, 2, 4)),
		b.Ident("", "count", parsetree.Pos(4, 7, 5)),
		parsetree.Pos(4, 2, 10))

	method := b.Method("run", wideLoc(3, 5), nil, nil, access)
	class := b.Class("TestClass", wideLoc(2, 6), field, method)
	unit := b.Unit(wideLoc(1, 6), class)

	table := Analyze(unit, WithFileURI("file:///TestClass.cls"))

	fields := findSymbols(table, symbol.KindField)
	if len(fields) != 1 {
		t.Fatalf("fields = %d, want 1", len(fields))
	}

	fieldRefs := findRefs(table.GetAllReferences(), func(r *reference.SymbolReference) bool {
		return r.Name == "count" && r.Context == reference.FieldAccess
	})
	if len(fieldRefs) != 1 || !fieldRefs[0].Resolved() || fieldRefs[0].ResolvedSymbolID != fields[0].ID {
		t.Fatalf("field access ref = %+v, want resolved to %s", fieldRefs, fields[0].ID)
	}
}
