package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// collectTryStmt takes over a TryStatement's subtree the same way
// collectSwitch takes over a SwitchStatement's: the well-formedness check
// spec.md §4.6 names ("try without catch or finally") needs to see every
// child before deciding, so it can't be left to the generic Enter/Exit
// dispatch of the try's own scope.
func (c *Collector) collectTryStmt(n *parsetree.Node) {
	c.scopes.EnterScope(symbol.ScopeTry, n.Location, nil)
	defer c.scopes.ExitScope(symbol.ScopeTry)

	hasHandler := false
	for _, child := range n.Children {
		if child.Kind == parsetree.KindCatchClause || child.Kind == parsetree.KindFinallyClause {
			hasHandler = true
		}
		parsetree.Walk(child, c)
	}
	if !hasHandler {
		pos := n.Location.SymbolRange.Start
		c.table.AddDiagnostic(diagnostics.New(
			diagnostics.SeverityError, c.table.GetFileURI(), pos.Line, pos.Column,
			"'try' must have a 'catch' or 'finally' block",
		))
	}
}
