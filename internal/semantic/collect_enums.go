package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

func (c *Collector) collectEnum(n *parsetree.Node) {
	nameNode := n.Child(parsetree.RoleName)
	sym := &symbol.Symbol{
		Kind:        symbol.KindEnum,
		Name:        nameNode.Text,
		Location:    n.Location,
		Modifiers:   extractModifiers(n),
		Annotations: n.Annotations,
	}
	sym.Location.IdentifierRange = nameNode.Location.SymbolRange
	for _, v := range n.ChildrenWithRole(parsetree.RoleEnumValue) {
		sym.EnumValues = append(sym.EnumValues, v.Text)
	}

	sym = c.addSymbol(sym)
	c.checkTypeNesting(sym)
	c.pushOwner(sym)
	c.scopes.EnterScope(symbol.ScopeClass, n.Location, sym)
	for _, v := range n.ChildrenWithRole(parsetree.RoleEnumValue) {
		valNameNode := v.Child(parsetree.RoleName)
		valSym := &symbol.Symbol{
			Kind:     symbol.KindEnumValue,
			Name:     v.Text,
			Location: v.Location,
			Type:     &symbol.TypeInfo{Name: sym.Name, OriginalTypeString: sym.Name, IsBuiltIn: false},
		}
		if valNameNode != nil {
			valSym.Location.IdentifierRange = valNameNode.Location.SymbolRange
		}
		_ = c.addSymbol(valSym)
	}
	c.scopes.ExitScope(symbol.ScopeClass)
	c.popOwner()
}
