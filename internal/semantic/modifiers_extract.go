package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// extractModifiers reads a declaration node's raw modifier keywords
// (spec.md §6.1's Modifiers child accessor) into the structured Modifiers
// value the Symbol Model uses.
func extractModifiers(n *parsetree.Node) symbol.Modifiers {
	m := symbol.Modifiers{}
	switch {
	case n.HasModifier("private"):
		m.Visibility = symbol.VisibilityPrivate
	case n.HasModifier("protected"):
		m.Visibility = symbol.VisibilityProtected
	case n.HasModifier("public"):
		m.Visibility = symbol.VisibilityPublic
	case n.HasModifier("global"):
		m.Visibility = symbol.VisibilityGlobal
	}
	m.IsStatic = n.HasModifier("static")
	m.IsFinal = n.HasModifier("final")
	m.IsAbstract = n.HasModifier("abstract")
	m.IsVirtual = n.HasModifier("virtual")
	m.IsOverride = n.HasModifier("override")
	m.IsTransient = n.HasModifier("transient")
	m.IsTestMethod = n.HasAnnotation("IsTest") || n.HasModifier("testmethod")
	m.IsWebService = n.HasModifier("webservice")
	return m
}
