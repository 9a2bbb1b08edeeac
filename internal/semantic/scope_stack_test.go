package semantic

import (
	"strings"
	"testing"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

func TestScopeStackFileScopeHasNoParent(t *testing.T) {
	table := NewSymbolTable("file:///Foo.cls", DetailFull)
	stack := NewScopeStack(table)
	file := stack.EnterFileScope(source.NewLocation(source.NewRange(1, 0, 10, 0)))

	if file.ParentID != "" {
		t.Errorf("file scope ParentID = %q, want empty", file.ParentID)
	}
	if stack.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", stack.Depth())
	}
}

func TestScopeStackCountersAreMonotonicPerParentAndKind(t *testing.T) {
	table := NewSymbolTable("file:///Foo.cls", DetailFull)
	stack := NewScopeStack(table)
	file := stack.EnterFileScope(source.NewLocation(source.NewRange(1, 0, 10, 0)))

	loc := source.NewLocation(source.NewRange(2, 0, 2, 5))
	first := stack.EnterScope(symbol.ScopeIf, loc, nil)
	stack.ExitScope(symbol.ScopeIf)
	second := stack.EnterScope(symbol.ScopeIf, loc, nil)
	stack.ExitScope(symbol.ScopeIf)

	if first.Name != "if_1" || second.Name != "if_2" {
		t.Errorf("block names = %q, %q, want if_1, if_2", first.Name, second.Name)
	}
	if first.ParentID != file.ID || second.ParentID != file.ID {
		t.Error("both blocks should parent to the file scope they were opened under")
	}
}

func TestScopeStackOwnerParentsOverLexicalParent(t *testing.T) {
	table := NewSymbolTable("file:///Foo.cls", DetailFull)
	stack := NewScopeStack(table)
	stack.EnterFileScope(source.NewLocation(source.NewRange(1, 0, 10, 0)))

	method := &symbol.Symbol{ID: "file:///Foo.cls:class:Foo:method:bar()", Kind: symbol.KindMethod}
	loc := source.NewLocation(source.NewRange(3, 0, 3, 1))
	block := stack.EnterScope(symbol.ScopeMethod, loc, method)

	if block.ParentID != method.ID {
		t.Errorf("method-block ParentID = %q, want the method symbol's id %q", block.ParentID, method.ID)
	}
}

func TestScopeStackExitMismatchEmitsWarning(t *testing.T) {
	table := NewSymbolTable("file:///Foo.cls", DetailFull)
	stack := NewScopeStack(table)
	stack.EnterFileScope(source.NewLocation(source.NewRange(1, 0, 10, 0)))

	loc := source.NewLocation(source.NewRange(2, 0, 2, 5))
	stack.EnterScope(symbol.ScopeIf, loc, nil)
	stack.ExitScope(symbol.ScopeWhile)

	found := false
	for _, d := range table.Diagnostics() {
		if d.Severity == diagnostics.SeverityWarning && strings.Contains(d.Message, "scope stack mismatch") {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v, want a scope-stack-mismatch warning", table.Diagnostics())
	}
}

func TestScopeStackExitOnEmptyStackIsNoOp(t *testing.T) {
	table := NewSymbolTable("file:///Foo.cls", DetailFull)
	stack := NewScopeStack(table)
	stack.ExitScope(symbol.ScopeBlock) // must not panic
	if stack.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", stack.Depth())
	}
	if stack.Current() != nil {
		t.Error("Current() on an empty stack should be nil")
	}
}
