package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	diag "github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/lspconv"
)

var diagnosticsLSP bool

func newDiagnosticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnostics [fileURI...]",
		Short: "Print collection/resolution diagnostics only, exiting non-zero on error",
		Long: "diagnostics runs the same two-pass pipeline as collect but prints " +
			"only the diagnostics list (spec.md §6.4), exiting with a non-zero " +
			"status if any fileURI produced an error-severity diagnostic.",
		RunE: runDiagnostics,
	}
	cmd.Flags().BoolVar(&diagnosticsLSP, "lsp", false, "render diagnostics as LSP wire-format JSON-ish records via internal/lspconv")
	return cmd
}

func runDiagnostics(cmd *cobra.Command, args []string) error {
	uris := args
	if len(uris) == 0 {
		uris = []string{"file:///demo/Greeter.cls"}
	}

	results := collectAll(uris, collectWorkers)
	out := cmd.OutOrStdout()

	hasErrors := false
	for _, uri := range uris {
		table := results[uri]
		diags := table.Diagnostics()
		if diag.HasErrors(diags) {
			hasErrors = true
		}
		fmt.Fprintf(out, "=== %s (%d diagnostic(s)) ===\n", uri, len(diags))
		if diagnosticsLSP {
			for _, d := range lspconv.Diagnostics(diags) {
				fmt.Fprintf(out, "  [%d] %s (line %d, char %d)\n", d.Severity, d.Message, d.Range.Start.Line, d.Range.Start.Character)
			}
			continue
		}
		for _, d := range diags {
			fmt.Fprintln(out, "  "+d.Error())
		}
	}

	if hasErrors {
		return fmt.Errorf("one or more compilation units produced error-severity diagnostics")
	}
	return nil
}
