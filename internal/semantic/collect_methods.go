package semantic

import (
	"strings"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

func (c *Collector) collectMethod(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:        symbol.KindMethod,
		Name:        nameNode.Text,
		Location:    n.Location,
		Modifiers:   extractModifiers(n),
		Annotations: n.Annotations,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	if n.Kind == parsetree.KindInterfaceMethodDecl {
		c.checkInterfaceMethodModifiers(&sym.Modifiers, nameNode.Location.SymbolRange.Start)
	}

	if rt := n.Child(parsetree.RoleReturnType); rt != nil {
		sym.ReturnType = c.types.extract(rt, reference.ReturnType)
	} else {
		sym.ReturnType = symbol.Void()
	}
	for _, p := range n.ChildrenWithRole(parsetree.RoleParameter) {
		sym.Parameters = append(sym.Parameters, c.paramSymbolFrom(p))
	}

	sym = c.addMethodSymbol(sym)
	c.pushOwner(sym)
	c.scopes.EnterScope(symbol.ScopeMethod, n.Location, sym)
	for _, p := range sym.Parameters {
		_ = c.addSymbol(p)
	}
	if body := n.Child(parsetree.RoleBody); body != nil {
		parsetree.Walk(body, c)
	}
	c.scopes.ExitScope(symbol.ScopeMethod)
	c.popOwner()
}

func (c *Collector) collectConstructor(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:          symbol.KindConstructor,
		Name:          nameNode.Text,
		Location:      n.Location,
		Modifiers:     extractModifiers(n),
		Annotations:   n.Annotations,
		IsConstructor: true,
		ReturnType:    symbol.Void(),
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	if owner := c.currentOwner(); owner != nil && !strings.EqualFold(owner.Name, sym.Name) {
		c.reportInvalidConstructorName(sym, owner.Name)
	}
	for _, p := range n.ChildrenWithRole(parsetree.RoleParameter) {
		sym.Parameters = append(sym.Parameters, c.paramSymbolFrom(p))
	}

	sym = c.addMethodSymbol(sym)
	c.pushOwner(sym)
	c.scopes.EnterScope(symbol.ScopeMethod, n.Location, sym)
	for _, p := range sym.Parameters {
		_ = c.addSymbol(p)
	}
	if body := n.Child(parsetree.RoleBody); body != nil {
		parsetree.Walk(body, c)
	}
	c.scopes.ExitScope(symbol.ScopeMethod)
	c.popOwner()
}

// reportInvalidConstructorName reports spec.md §4.2's constructor-name
// rule: a constructor's name must match its enclosing type exactly
// (case-insensitively, matching Apex's own identifier comparison).
func (c *Collector) reportInvalidConstructorName(sym *symbol.Symbol, enclosingName string) {
	pos := sym.Location.IdentifierRange.Start
	c.table.AddDiagnostic(diagnostics.New(
		diagnostics.SeverityError, c.table.GetFileURI(), pos.Line, pos.Column,
		"invalid constructor name %q: must match enclosing type %q", sym.Name, enclosingName,
	))
}

// checkInterfaceMethodModifiers enforces spec.md §4.2's interface-method
// rule: a method declared inside an interface is implicitly public
// abstract, and no other modifier may be written explicitly. Violating
// modifiers are reported once, then the symbol's modifiers are forced back
// to the implicit public-abstract pair so downstream consumers never see
// the invalid combination.
func (c *Collector) checkInterfaceMethodModifiers(m *symbol.Modifiers, pos source.Position) {
	if m.Visibility != symbol.VisibilityDefault || m.IsStatic || m.IsFinal || m.IsAbstract ||
		m.IsVirtual || m.IsOverride || m.IsTransient || m.IsWebService {
		c.table.AddDiagnostic(diagnostics.New(
			diagnostics.SeverityError, c.table.GetFileURI(), pos.Line, pos.Column,
			"interface methods are implicitly public abstract; no other modifier may be specified",
		))
	}
	*m = symbol.Modifiers{Visibility: symbol.VisibilityPublic, IsAbstract: true}
}

// paramSymbolFrom builds the Parameter symbol for p without adding it to
// the table yet — the caller adds it only after the method's own scope is
// open, so the parameter's ParentID is the method's block, not the
// enclosing class.
func (c *Collector) paramSymbolFrom(p *parsetree.Node) *symbol.Symbol {
	nameNode := p.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:     symbol.KindParameter,
		Name:     nameNode.Text,
		Location: p.Location,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	if t := p.Child(parsetree.RoleType); t != nil {
		sym.Type = c.types.extract(t, reference.ParameterType)
	}
	c.reportIfVoidType(sym.Type, nameNode.Location.SymbolRange.Start, "parameter")
	return sym
}

// collectParameter handles a FormalParameter encountered directly by the
// generic dispatcher (outside a method's own parameter list).
func (c *Collector) collectParameter(n *parsetree.Node) {
	_ = c.addSymbol(c.paramSymbolFrom(n))
}
