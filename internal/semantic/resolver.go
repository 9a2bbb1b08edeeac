package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// Resolver is the second pass: it walks every reference the Collector
// emitted and, where the name binds to something declared in the same
// file, fills in ResolvedSymbolID. Cross-file resolution is out of scope
// (spec.md §1) — a reference naming an external or standard-library symbol
// is left unresolved rather than guessed at.
//
// Adapted from the teacher's own two-pass Pass/PassManager split
// (semantic/pass.go): the teacher's second pass type-checks, this one only
// binds names, since the Apex core never executes anything.
type Resolver struct {
	table *SymbolTable
}

// NewResolver returns a Resolver bound to table.
func NewResolver(table *SymbolTable) *Resolver {
	return &Resolver{table: table}
}

// Resolve walks every reference in the table exactly once. A reference that
// is already resolved (the collector self-resolves declaration-site
// references) is left untouched. It then copies each declared TypeInfo's
// resolution (including its generic arguments) from the reference its
// TypeReferenceID names onto the TypeInfo's own ResolvedSymbolID.
func (r *Resolver) Resolve() {
	for _, ref := range r.table.GetAllReferences() {
		r.resolveOne(ref)
	}
	for _, s := range r.table.GetAllSymbols() {
		pending := []*symbol.TypeInfo{s.Type, s.ReturnType}
		for len(pending) > 0 {
			t := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			if t == nil {
				continue
			}
			if ref := r.table.FindReferenceByID(t.TypeReferenceID); ref != nil {
				t.ResolvedSymbolID = ref.ResolvedSymbolID
			}
			pending = append(pending, t.TypeParameters...)
		}
	}
}

func (r *Resolver) resolveOne(ref *reference.SymbolReference) {
	defer func() {
		if rec := recover(); rec != nil {
			r.table.AddDiagnostic(diagnostics.New(
				diagnostics.SeverityWarning, r.table.GetFileURI(),
				ref.Location.IdentifierRange.Start.Line, ref.Location.IdentifierRange.Start.Column,
				"internal error resolving %q: %v", ref.Name, rec,
			))
		}
	}()

	if ref.Resolved() {
		return
	}

	scopeID := r.enclosingScopeID(ref)

	switch ref.Context {
	case reference.VariableUsage:
		r.resolveVariableUsage(ref, scopeID)
	case reference.MethodCall:
		r.resolveMethodCall(ref)
	case reference.FieldAccess:
		r.resolveFieldAccess(ref)
	case reference.ConstructorCall:
		r.resolveConstructorCall(ref)
	case reference.TypeDeclaration, reference.ClassReference, reference.ParameterType,
		reference.ReturnType, reference.GenericParameterType, reference.CastTypeReference,
		reference.InstanceofTypeRef:
		r.resolveTypeReference(ref)
	case reference.ChainStep:
		r.resolveChainStep(ref)
	}
}

// enclosingScopeID finds the innermost Block symbol containing ref's
// position, for use as the starting point of a lexical-scope lookup
// (spec.md §4.5 step 1).
func (r *Resolver) enclosingScopeID(ref *reference.SymbolReference) string {
	chain := r.table.GetScopeHierarchy(ref.Location.IdentifierRange.Start)
	if len(chain) == 0 {
		return ""
	}
	return chain[len(chain)-1].ID
}

func (r *Resolver) resolveVariableUsage(ref *reference.SymbolReference, scopeID string) {
	if s, ok := r.table.Lookup(ref.Name, scopeID); ok && s.Kind.IsVariableLike() {
		ref.ResolvedSymbolID = s.ID
		return
	}
	// Not a variable in scope: it may actually name a class (a static
	// member access base, e.g. "MyClass.FIELD") — upgrade the context
	// rather than leave it permanently unresolved (SPEC_FULL.md §6).
	if s := r.findType(ref.Name); s != nil {
		ref.Context = reference.ClassReference
		ref.ResolvedSymbolID = s.ID
	}
}

func (r *Resolver) resolveFieldAccess(ref *reference.SymbolReference) {
	matches := r.table.FindSymbolWith(func(s *symbol.Symbol) bool {
		return (s.Kind == symbol.KindField || s.Kind == symbol.KindProperty) && sameName(s.Name, ref.Name)
	})
	if len(matches) > 0 {
		ref.ResolvedSymbolID = matches[0].ID
	}
}

// resolveMethodCall picks the first same-named Method declared directly in
// the nearest enclosing class body, and otherwise the first same-named
// Method in declaration order across the file; never a Constructor
// (SPEC_FULL.md §12's resolved open question on overload-candidate
// selection: true overload resolution needs argument types, which a
// symbol-only core does not have, so the first declared candidate stands in
// deterministically).
func (r *Resolver) resolveMethodCall(ref *reference.SymbolReference) {
	for s, ok := r.table.ResolveSymbol(r.enclosingScopeID(ref)); ok; s, ok = r.table.ResolveSymbol(s.ParentID) {
		if s.Kind != symbol.KindBlock || s.ScopeType != symbol.ScopeClass {
			continue
		}
		for _, m := range r.table.GetSymbolsInScope(s.ID) {
			if m.Kind == symbol.KindMethod && sameName(m.Name, ref.Name) {
				ref.ResolvedSymbolID = m.ID
				return
			}
		}
		break
	}
	matches := r.table.FindSymbolWith(func(s *symbol.Symbol) bool {
		return s.Kind == symbol.KindMethod && sameName(s.Name, ref.Name)
	})
	if len(matches) > 0 {
		ref.ResolvedSymbolID = matches[0].ID
	}
}

func (r *Resolver) resolveConstructorCall(ref *reference.SymbolReference) {
	matches := r.table.FindSymbolWith(func(s *symbol.Symbol) bool {
		if s.Kind != symbol.KindConstructor {
			return false
		}
		owner, ok := r.table.ResolveSymbol(s.ParentID)
		if ok && owner.Kind == symbol.KindBlock {
			// A constructor is parented at its class's body block.
			owner, ok = r.table.ResolveSymbol(owner.ParentID)
		}
		return ok && sameName(owner.Name, ref.Name)
	})
	if len(matches) > 0 {
		ref.ResolvedSymbolID = matches[0].ID
		return
	}
	// No explicit constructor: fall back to the class itself (implicit
	// default constructor).
	if s := r.findType(ref.Name); s != nil {
		ref.ResolvedSymbolID = s.ID
	}
}

func (r *Resolver) resolveTypeReference(ref *reference.SymbolReference) {
	if s := r.findType(ref.Name); s != nil {
		ref.ResolvedSymbolID = s.ID
	}
}

// resolveChainStep dispatches on the underlying category the chain analyzer
// recorded in ParentContext. Apex's chain narrowing needs
// the base expression's declared type to disambiguate a field from an
// unrelated same-named method in the general case; without cross-symbol
// type inference this core resolves each step the same way it would as a
// standalone reference and accepts the resulting ambiguity when more than
// one same-named candidate exists (SPEC_FULL.md §12).
func (r *Resolver) resolveChainStep(ref *reference.SymbolReference) {
	if !ref.HasParentContext {
		return
	}
	switch ref.ParentContext {
	case reference.MethodCall:
		r.resolveMethodCall(ref)
	case reference.FieldAccess:
		r.resolveFieldAccess(ref)
	}
}

func (r *Resolver) findType(name string) *symbol.Symbol {
	matches := r.table.FindSymbolWith(func(s *symbol.Symbol) bool {
		return s.Kind.IsType() && sameName(s.Name, name)
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func sameName(a, b string) bool {
	return normalizeClassName(a) == normalizeClassName(b)
}
