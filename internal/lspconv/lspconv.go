// Package lspconv converts this core's own Location and Diagnostic types
// into sourcegraph/go-lsp's wire types. It stops at type conversion: it
// never touches the jsonrpc2 transport or LSP method dispatch, which stays
// out of scope for a symbol-collection core (spec.md §1) — a caller already
// speaking the Language Server Protocol can still use these Symbols and
// Diagnostics without this core taking on the protocol itself.
package lspconv

import (
	"github.com/sourcegraph/go-lsp"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/source"
)

// Position converts a 1-based-line/0-based-column Position into go-lsp's
// 0-based-line/0-based-character Position.
func Position(p source.Position) lsp.Position {
	line := p.Line - 1
	if line < 0 {
		line = 0
	}
	return lsp.Position{Line: line, Character: p.Column}
}

// Range converts a Range to its go-lsp equivalent.
func Range(r source.Range) lsp.Range {
	return lsp.Range{Start: Position(r.Start), End: Position(r.End)}
}

// Location converts a Location's SymbolRange (the full declaration/
// reference extent) to its go-lsp Range — the identifier-only sub-range
// has no direct go-lsp equivalent and callers wanting "go to definition"
// precision should use the SymbolRange as-is, matching how editors expect
// a definition's full extent.
func Location(l source.Location) lsp.Range {
	return Range(l.SymbolRange)
}

var severityMap = map[diagnostics.Severity]lsp.DiagnosticSeverity{
	diagnostics.SeverityError:   lsp.Error,
	diagnostics.SeverityWarning: lsp.Warning,
}

// Diagnostic converts a Diagnostic into a go-lsp Diagnostic, collapsing it
// to a single-point range at its reported line/column since this core does
// not track a diagnostic's full span.
func Diagnostic(d diagnostics.Diagnostic) lsp.Diagnostic {
	pos := lsp.Position{Line: d.Line - 1, Character: d.Column}
	if pos.Line < 0 {
		pos.Line = 0
	}
	severity := severityMap[d.Severity]
	return lsp.Diagnostic{
		Range:    lsp.Range{Start: pos, End: pos},
		Severity: severity,
		Source:   "apex-symbol-core",
		Message:  d.Message,
	}
}

// Diagnostics converts a whole diagnostic list.
func Diagnostics(diags []diagnostics.Diagnostic) []lsp.Diagnostic {
	out := make([]lsp.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic(d)
	}
	return out
}
