package semantic

import (
	"fmt"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// ScopeStack is the block factory spec.md §4.1 describes: it creates the
// synthetic Block symbol for every brace-delimited region the collector
// enters and tracks which one is currently open, so collected symbols and
// the chain analyzer both know the right ParentID to use.
//
// It is adapted from the teacher's own scope-stack helper inside
// semantic/analyzer.go, generalized from DWScript's fixed set of scope
// kinds to the ScopeType enum spec.md §3.1 defines.
type ScopeStack struct {
	table    *SymbolTable
	stack    []*symbol.Symbol
	counters map[string]int
}

// NewScopeStack creates a stack bound to table. It starts empty; call
// EnterFileScope first.
func NewScopeStack(table *SymbolTable) *ScopeStack {
	return &ScopeStack{table: table, counters: make(map[string]int)}
}

// EnterFileScope opens the outermost Block symbol for the compilation unit,
// with no parent. Every other scope nests under it, directly or through
// intervening semantic symbols.
func (s *ScopeStack) EnterFileScope(loc source.Location) *symbol.Symbol {
	return s.push(symbol.ScopeFile, loc, nil, nil)
}

// EnterScope opens a new Block scoped under the current top of stack. When
// owner is non-nil (a class, method, constructor, property accessor, ...
// symbol just collected) the block's ParentID is owner's id rather than the
// enclosing block's — matching spec.md §4.1's "parent the block to the
// semantic symbol, not to the lexically enclosing block" rule, so a
// method's local-variable block has the method symbol as its direct
// parent.
func (s *ScopeStack) EnterScope(scopeType symbol.ScopeType, loc source.Location, owner *symbol.Symbol) *symbol.Symbol {
	return s.push(scopeType, loc, owner, s.Current())
}

func (s *ScopeStack) push(scopeType symbol.ScopeType, loc source.Location, owner, lexicalParent *symbol.Symbol) *symbol.Symbol {
	var parent *symbol.Symbol
	if owner != nil {
		parent = owner
	} else {
		parent = lexicalParent
	}

	var parentID string
	if parent != nil {
		parentID = parent.ID
	}

	counterKey := parentID + "/" + string(scopeType)
	s.counters[counterKey]++
	name := fmt.Sprintf("%s_%d", scopeType, s.counters[counterKey])

	scopePath := buildScopePath(parent)
	sym := &symbol.Symbol{
		ID:        buildID(s.table.GetFileURI(), scopePath, symbol.KindBlock, name),
		Kind:      symbol.KindBlock,
		Name:      name,
		FileURI:   s.table.GetFileURI(),
		ParentID:  parentID,
		ScopePath: scopePath,
		ScopeType: scopeType,
		Location:  loc,
	}

	_ = s.table.AddSymbol(sym)
	s.stack = append(s.stack, sym)
	return sym
}

// ExitScope pops the current block, and checks that it is the kind the
// caller thinks it is closing (spec.md §4.1: "if the popped scope's kind
// does not match, emit a warning and keep going"). It is a no-op on an
// empty stack, which should never happen in a well-formed traversal but is
// tolerated rather than panicking mid-collection.
func (s *ScopeStack) ExitScope(expectedKind symbol.ScopeType) {
	if len(s.stack) == 0 {
		return
	}
	popped := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if popped.ScopeType != expectedKind {
		s.table.AddDiagnostic(diagnostics.New(
			diagnostics.SeverityWarning, s.table.GetFileURI(),
			popped.Location.SymbolRange.Start.Line, popped.Location.SymbolRange.Start.Column,
			"scope stack mismatch: popped %q scope while expecting to close a %q scope",
			popped.ScopeType, expectedKind,
		))
	}
}

// Current returns the innermost open block, or nil before EnterFileScope.
func (s *ScopeStack) Current() *symbol.Symbol {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// CurrentID returns the id of the innermost open block, or "" before
// EnterFileScope.
func (s *ScopeStack) CurrentID() string {
	if c := s.Current(); c != nil {
		return c.ID
	}
	return ""
}

// Depth returns how many scopes are currently open.
func (s *ScopeStack) Depth() int {
	return len(s.stack)
}
