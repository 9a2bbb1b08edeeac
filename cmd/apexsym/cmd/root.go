package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version, commit, and date are set via -ldflags at build time, matching
// the teacher's own cmd/dwscript/cmd/root.go pattern for link-time version
// metadata.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

// Root builds the apexsym root command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "apexsym",
		Short: "Collect and resolve symbols from an Apex compilation unit",
		Long: "apexsym runs the symbol collector and same-file reference resolver " +
			"over a parse tree and prints the resulting symbol table, reference " +
			"list, or diagnostics.",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print extra diagnostic detail")
	root.SetVersionTemplate("apexsym {{.Version}}\n")

	root.AddCommand(newCollectCmd())
	root.AddCommand(newDiagnosticsCmd())
	root.AddCommand(newVersionCmd())
	return root
}
