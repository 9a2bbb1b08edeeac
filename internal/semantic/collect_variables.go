package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

func (c *Collector) collectField(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:        symbol.KindField,
		Name:        nameNode.Text,
		Location:    n.Location,
		Modifiers:   extractModifiers(n),
		Annotations: n.Annotations,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	if t := n.Child(parsetree.RoleType); t != nil {
		sym.Type = c.types.extract(t, reference.TypeDeclaration)
	}
	c.reportIfVoidType(sym.Type, nameNode.Location.SymbolRange.Start, "field")
	sym = c.addSymbol(sym)
	c.emitDeclarationReference(nameNode, reference.VariableDeclaration, sym)
}

func (c *Collector) collectProperty(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:        symbol.KindProperty,
		Name:        nameNode.Text,
		Location:    n.Location,
		Modifiers:   extractModifiers(n),
		Annotations: n.Annotations,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	if t := n.Child(parsetree.RoleType); t != nil {
		sym.Type = c.types.extract(t, reference.TypeDeclaration)
	}
	c.reportIfVoidType(sym.Type, nameNode.Location.SymbolRange.Start, "property")
	sym = c.addSymbol(sym)
	c.emitDeclarationReference(nameNode, reference.PropertyReference, sym)
}

// collectLocalVar handles one LocalVariableDeclaration: a shared TypeRef
// followed by one or more VariableDeclarator children (spec.md §4.2's
// "duplicate within the same statement" case needs more than one
// declarator sharing a type).
func (c *Collector) collectLocalVar(n *parsetree.Node) {
	typeNode := n.Child(parsetree.RoleType)

	for _, decl := range n.ChildrenWithRole(parsetree.RoleDeclarator) {
		nameNode := decl.Child(parsetree.RoleName)
		sym := &symbol.Symbol{
			Kind:     symbol.KindVariable,
			Name:     nameNode.Text,
			Location: decl.Location,
		}
		sym.Location.IdentifierRange = nameNode.Location.SymbolRange
		if typeNode != nil {
			sym.Type = c.types.extract(typeNode, reference.TypeDeclaration)
		}
		c.reportIfVoidType(sym.Type, nameNode.Location.SymbolRange.Start, "variable")
		if init := decl.Child(parsetree.RoleValue); init != nil {
			sym.HasInitial = true
			sym.InitialValue = init.Text
		}
		sym = c.addSymbol(sym)
		c.emitDeclarationReference(nameNode, reference.VariableDeclaration, sym)
		if init := decl.Child(parsetree.RoleValue); init != nil {
			parsetree.Walk(init, c)
		}
	}
}

// reportIfVoidType reports spec.md §4.6's void-typed-declaration error: a
// variable, parameter, or property may never be declared with type 'void'.
func (c *Collector) reportIfVoidType(t *symbol.TypeInfo, pos source.Position, kind string) {
	if t == nil || normalizeClassName(t.Name) != "void" {
		return
	}
	c.table.AddDiagnostic(diagnostics.New(
		diagnostics.SeverityError, c.table.GetFileURI(), pos.Line, pos.Column,
		"%s cannot be declared with type 'void'", kind,
	))
}

// emitDeclarationReference records the self-resolving reference at a
// declaration's own name token: a later lookup of "where was X declared"
// never needs the resolver, since the collector already knows.
func (c *Collector) emitDeclarationReference(nameNode *parsetree.Node, ctx reference.Context, sym *symbol.Symbol) {
	c.emitReference(&reference.SymbolReference{
		Name:             sym.Name,
		Location:         nameNode.Location,
		Context:          ctx,
		ResolvedSymbolID: sym.ID,
		Access:           reference.Write,
	})
}
