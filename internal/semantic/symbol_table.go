// Package semantic is the core pipeline over one compilation unit: the
// scope stack and block factory, the symbol collector, the chained-
// expression analyzer, and the two-pass (collect, then resolve) driver.
//
// It is the direct descendant of the teacher's internal/semantic package —
// same one-package-many-analyze_*.go-files shape, same Pass/PassManager
// multi-pass architecture (pass.go) — retargeted from DWScript's runtime
// type-checking to Apex's symbol collection and same-file reference
// resolution (spec.md §2).
package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// DetailLevel is a label a table is built with and reports via
// GetDetailLevel, mirroring the teacher's semantic.HintsLevel knob
// (SPEC_FULL.md §9). The collector does not read it: DetailSymbolsOnly
// records the same symbols and references as DetailFull.
type DetailLevel int

const (
	DetailFull DetailLevel = iota
	DetailSymbolsOnly
)

// SymbolTable is the owning store for one compilation unit: every symbol
// keyed by id, a scope-tree index over parent/child links, and the ordered
// reference list (spec.md §2.3, §6.2).
type SymbolTable struct {
	fileURI     string
	detailLevel DetailLevel

	symbols    map[string]*symbol.Symbol
	order      []string // insertion order of ids
	childrenOf map[string][]string
	rootIDs    []string

	references  []*reference.SymbolReference
	nextRefID   int64
	diagnostics []diagnostics.Diagnostic
}

// NewSymbolTable creates an empty table for the given file.
func NewSymbolTable(fileURI string, detailLevel DetailLevel) *SymbolTable {
	return &SymbolTable{
		fileURI:     fileURI,
		detailLevel: detailLevel,
		symbols:     make(map[string]*symbol.Symbol),
		childrenOf:  make(map[string][]string),
	}
}

// AddSymbol inserts sym into the table, rejecting a duplicate id
// (spec.md §6.2).
func (t *SymbolTable) AddSymbol(sym *symbol.Symbol) error {
	if sym == nil {
		return fmt.Errorf("cannot add nil symbol")
	}
	if _, exists := t.symbols[sym.ID]; exists {
		return fmt.Errorf("duplicate symbol id %q", sym.ID)
	}
	t.symbols[sym.ID] = sym
	t.order = append(t.order, sym.ID)
	if sym.ParentID == "" {
		t.rootIDs = append(t.rootIDs, sym.ID)
	} else {
		t.childrenOf[sym.ParentID] = append(t.childrenOf[sym.ParentID], sym.ID)
	}
	return nil
}

// AddTypeReference appends ref to the ordered reference list, assigning it
// a stable per-table RefID (spec.md §6.2 names this addTypeReference even
// though it accepts references of every context — a naming holdover this
// module keeps for contract fidelity).
func (t *SymbolTable) AddTypeReference(ref *reference.SymbolReference) int64 {
	t.nextRefID++
	ref.ID = t.nextRefID
	t.references = append(t.references, ref)
	return ref.ID
}

// ResolveSymbol returns the symbol with the given id, if any.
func (t *SymbolTable) ResolveSymbol(id string) (*symbol.Symbol, bool) {
	s, ok := t.symbols[id]
	return s, ok
}

// FindReferenceByID returns the reference with the given RefID, used by the
// type linker to dereference a TypeInfo's TypeReferenceID (spec.md §4.4).
func (t *SymbolTable) FindReferenceByID(id int64) *reference.SymbolReference {
	for _, r := range t.references {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Lookup performs a case-insensitive search for name starting at scopeID and
// ascending the parent chain, returning the nearest match of any kind
// (spec.md §6.2). Resolver contexts needing a kind-filtered candidate set
// (METHOD_CALL, FIELD_ACCESS, type references, ...) use FindSymbolWith with
// their own predicate instead.
func (t *SymbolTable) Lookup(name string, scopeID string) (*symbol.Symbol, bool) {
	current := scopeID
	for current != "" {
		if s := t.FindSymbolInScope(current, name); s != nil {
			return s, true
		}
		parent, ok := t.symbols[current]
		if !ok {
			break
		}
		current = parent.ParentID
	}
	return nil, false
}

// FindSymbolInScope returns the symbol directly parented at scopeID whose
// name matches case-insensitively, or nil.
func (t *SymbolTable) FindSymbolInScope(scopeID, name string) *symbol.Symbol {
	for _, id := range t.childrenOf[scopeID] {
		s := t.symbols[id]
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

// GetSymbolsInScope returns every symbol directly parented at scopeID, in
// insertion order.
func (t *SymbolTable) GetSymbolsInScope(scopeID string) []*symbol.Symbol {
	ids := t.childrenOf[scopeID]
	out := make([]*symbol.Symbol, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.symbols[id])
	}
	return out
}

// FindSymbolWith returns every symbol matching predicate, in table
// (insertion) order.
func (t *SymbolTable) FindSymbolWith(predicate func(*symbol.Symbol) bool) []*symbol.Symbol {
	var out []*symbol.Symbol
	for _, id := range t.order {
		s := t.symbols[id]
		if predicate(s) {
			out = append(out, s)
		}
	}
	return out
}

// GetCurrentScopePath returns the full ordered list of path segments
// ("<kind-prefix>:<name>", signature-folded for a Method/Constructor) used
// to compose the given symbol's id (spec.md §6.2, §6.3).
func (t *SymbolTable) GetCurrentScopePath(scopeID string) []string {
	s, ok := t.symbols[scopeID]
	if !ok {
		return nil
	}
	out := append([]string{}, s.ScopePath...)
	out = append(out, finalSegment(s))
	return out
}

// GetScopeHierarchy returns the ordered chain of Block symbols — file scope
// first, innermost last — whose range contains pos, descending through
// intermediate semantic symbols (classes, methods) without adding them to
// the chain (spec.md §4.5 step 1).
func (t *SymbolTable) GetScopeHierarchy(pos source.Position) []*symbol.Symbol {
	var chain []*symbol.Symbol
	for _, id := range t.rootIDs {
		root := t.symbols[id]
		if root.Kind == symbol.KindBlock && root.Location.SymbolRange.Contains(pos) {
			chain = append(chain, root)
			t.descendScope(root, pos, &chain)
			break
		}
	}
	return chain
}

func (t *SymbolTable) descendScope(parent *symbol.Symbol, pos source.Position, chain *[]*symbol.Symbol) {
	for _, childID := range t.childrenOf[parent.ID] {
		child := t.symbols[childID]
		if !child.Location.SymbolRange.Contains(pos) {
			continue
		}
		if child.Kind == symbol.KindBlock {
			*chain = append(*chain, child)
		}
		t.descendScope(child, pos, chain)
		return
	}
}

// GetAllSymbols returns every symbol in table (insertion) order.
func (t *SymbolTable) GetAllSymbols() []*symbol.Symbol {
	out := make([]*symbol.Symbol, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.symbols[id])
	}
	return out
}

// GetAllReferences returns every reference in emission order.
func (t *SymbolTable) GetAllReferences() []*reference.SymbolReference {
	return t.references
}

// GetFileURI returns the file this table was built for.
func (t *SymbolTable) GetFileURI() string { return t.fileURI }

// GetDetailLevel returns the detail level this table was built with.
func (t *SymbolTable) GetDetailLevel() DetailLevel { return t.detailLevel }

// HasReferences reports whether any reference was collected.
func (t *SymbolTable) HasReferences() bool { return len(t.references) > 0 }

// AddDiagnostic records a semantic error or warning.
func (t *SymbolTable) AddDiagnostic(d diagnostics.Diagnostic) {
	t.diagnostics = append(t.diagnostics, d)
}

// Diagnostics returns every diagnostic recorded during collection and
// resolution, in emission order.
func (t *SymbolTable) Diagnostics() []diagnostics.Diagnostic {
	return t.diagnostics
}

// SortedSymbolIDs returns every symbol id in a deterministic, sorted order.
// Used by snapshot tests that want stable output independent of traversal
// order quirks, without affecting the table's own insertion-order
// semantics.
func (t *SymbolTable) SortedSymbolIDs() []string {
	out := append([]string{}, t.order...)
	sort.Strings(out)
	return out
}
