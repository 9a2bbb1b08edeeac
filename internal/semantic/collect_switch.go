package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/source"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// collectSwitch walks a SwitchStatement's switchOn expression and every
// WhenClause, checking the switch-specific well-formedness rules spec.md
// §4.6 names: a when-else clause (one with no values) must be last, a
// when-value must not repeat across the switch, and an enum-switch
// constant must be unqualified ("B", not "E.B" — §8 scenario 6's
// INVALID_FULLY_QUALIFIED_ENUM diagnostic). It takes over the whole
// SwitchStatement subtree so these cross-when checks run with full
// visibility, the same way collectClass takes over a class body instead of
// letting the generic dispatcher descend into it member by member.
func (c *Collector) collectSwitch(n *parsetree.Node) {
	c.scopes.EnterScope(symbol.ScopeSwitch, n.Location, nil)
	defer c.scopes.ExitScope(symbol.ScopeSwitch)

	if switchOn := n.Child(parsetree.RoleSwitchOn); switchOn != nil {
		parsetree.Walk(switchOn, c)
	}

	whens := n.ChildrenWithRole(parsetree.RoleWhen)
	if len(whens) == 0 {
		c.reportSwitchError(n.Location.SymbolRange.Start, "switch statement must have at least one 'when' clause")
	}
	sawElse := false
	seen := make(map[string]bool)

	for _, when := range whens {
		values := when.ChildrenWithRole(parsetree.RoleWhenValue)

		if sawElse {
			c.reportSwitchError(when.Location.SymbolRange.Start, "'when else' must be the last when clause")
		}
		if len(values) == 0 {
			sawElse = true
		}

		for _, val := range values {
			key := whenValueKey(val)
			if seen[key] {
				c.reportSwitchError(val.Location.IdentifierRange.Start, "duplicate when value %q", key)
			}
			seen[key] = true

			if val.Kind == parsetree.KindDotExpr {
				c.reportSwitchError(val.Location.IdentifierRange.Start,
					"INVALID_FULLY_QUALIFIED_ENUM: enum switch values must be unqualified")
				c.chain.collect(val)
				continue
			}
			if val.Kind == parsetree.KindIdentifier {
				c.collectIdentifierUsage(val, reference.Read)
			}
		}

		c.scopes.EnterScope(symbol.ScopeWhen, when.Location, nil)
		for _, child := range when.Children {
			if child.Role == parsetree.RoleWhenValue {
				continue
			}
			parsetree.Walk(child, c)
		}
		c.scopes.ExitScope(symbol.ScopeWhen)
	}
}

func (c *Collector) reportSwitchError(pos source.Position, format string, args ...any) {
	c.table.AddDiagnostic(diagnostics.New(diagnostics.SeverityError, c.table.GetFileURI(), pos.Line, pos.Column, format, args...))
}

// whenValueKey renders the comparison key used to detect duplicate when
// values: a qualified name's dotted text for a DotExpr, or the bare
// identifier/literal text otherwise.
func whenValueKey(n *parsetree.Node) string {
	if n.Kind == parsetree.KindDotExpr {
		obj := n.Child(parsetree.RoleObject)
		member := n.Child(parsetree.RoleMethodName)
		objText := ""
		if obj != nil {
			objText = obj.Text
		}
		memberText := ""
		if member != nil {
			memberText = member.Text
		}
		return objText + "." + memberText
	}
	return n.Text
}
