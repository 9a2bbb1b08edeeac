package semantic

import (
	"strings"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

func (c *Collector) collectClass(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:        symbol.KindClass,
		Name:        nameNode.Text,
		Location:    n.Location,
		Modifiers:   extractModifiers(n),
		Annotations: n.Annotations,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange

	if super := n.Child(parsetree.RoleSuperClass); super != nil {
		info := c.types.extract(super, reference.ClassReference)
		sym.SuperClass = info.Name
	}
	for _, iface := range n.ChildrenWithRole(parsetree.RoleInterface) {
		info := c.types.extract(iface, reference.ClassReference)
		sym.Interfaces = append(sym.Interfaces, info.Name)
	}

	sym = c.addSymbol(sym)
	c.checkTypeNesting(sym)
	c.pushOwner(sym)
	c.scopes.EnterScope(symbol.ScopeClass, n.Location, sym)
	c.walkMembers(n)
	c.scopes.ExitScope(symbol.ScopeClass)
	c.popOwner()
}

func (c *Collector) collectInterface(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:        symbol.KindInterface,
		Name:        nameNode.Text,
		Location:    n.Location,
		Modifiers:   extractModifiers(n),
		Annotations: n.Annotations,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	for _, iface := range n.ChildrenWithRole(parsetree.RoleInterface) {
		info := c.types.extract(iface, reference.ClassReference)
		sym.Interfaces = append(sym.Interfaces, info.Name)
	}

	sym = c.addSymbol(sym)
	c.checkTypeNesting(sym)
	c.pushOwner(sym)
	c.scopes.EnterScope(symbol.ScopeClass, n.Location, sym)
	c.walkMembers(n)
	c.scopes.ExitScope(symbol.ScopeClass)
	c.popOwner()
}

func (c *Collector) collectTrigger(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:     symbol.KindTrigger,
		Name:     nameNode.Text,
		Location: n.Location,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	if obj := n.Child(parsetree.RoleType); obj != nil {
		info := c.types.extract(obj, reference.ClassReference)
		sym.SuperClass = info.Name // the object the trigger fires on, reusing the class-reference slot
	}

	sym = c.addSymbol(sym)
	c.checkTypeNesting(sym)
	c.pushOwner(sym)
	c.scopes.EnterScope(symbol.ScopeClass, n.Location, sym)
	c.walkMembers(n)
	c.scopes.ExitScope(symbol.ScopeClass)
	c.popOwner()
}

// checkTypeNesting validates spec.md §4.2's inner-type rules for a just-
// added class/interface/enum/trigger symbol: its name must differ from its
// enclosing type's, and an already-nested inner type must not itself
// contain another inner type. The enclosing type is found by walking s's
// parent chain (through the synthetic Block symbols scopes introduce)
// rather than the collector's owner stack, matching spec.md §4.2's
// documented approach; a visited set guards the walk against a cyclic
// ParentID chain an upstream parser error could otherwise produce
// (spec.md §9).
func (c *Collector) checkTypeNesting(s *symbol.Symbol) {
	outer := c.enclosingType(s)
	if outer == nil {
		return
	}
	if strings.EqualFold(outer.Name, s.Name) {
		c.reportTypeNestingError(s, "inner type %q must not share its name with enclosing type %q", s.Name, outer.Name)
	}
	if c.enclosingType(outer) != nil {
		c.reportTypeNestingError(s, "nested inner types are not allowed: %q is already nested inside inner type %q", s.Name, outer.Name)
	}
}

// enclosingType walks s's ParentID chain and returns the nearest ancestor
// that is itself a class/interface/enum/trigger symbol, or nil if s is
// top-level.
func (c *Collector) enclosingType(s *symbol.Symbol) *symbol.Symbol {
	visited := map[string]bool{s.ID: true}
	id := s.ParentID
	for id != "" && !visited[id] {
		visited[id] = true
		parent, ok := c.table.ResolveSymbol(id)
		if !ok {
			return nil
		}
		if isTypeKind(parent.Kind) {
			return parent
		}
		id = parent.ParentID
	}
	return nil
}

func isTypeKind(k symbol.Kind) bool {
	switch k {
	case symbol.KindClass, symbol.KindInterface, symbol.KindEnum, symbol.KindTrigger:
		return true
	default:
		return false
	}
}

func (c *Collector) reportTypeNestingError(s *symbol.Symbol, format string, args ...any) {
	pos := s.Location.IdentifierRange.Start
	c.table.AddDiagnostic(diagnostics.New(diagnostics.SeverityError, c.table.GetFileURI(), pos.Line, pos.Column, format, args...))
}

// walkMembers recurses into every child of a class/interface/trigger
// declaration that isn't one of the name/superclass/interface/type metadata
// identifiers already consumed above.
func (c *Collector) walkMembers(n *parsetree.Node) {
	for _, child := range n.Children {
		switch child.Role {
		case parsetree.RoleName, parsetree.RoleSuperClass, parsetree.RoleInterface, parsetree.RoleType:
			continue
		}
		parsetree.Walk(child, c)
	}
}
