package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/apex-lang-tools/symbol-core/internal/demo"
	"github.com/apex-lang-tools/symbol-core/internal/semantic"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

var collectWorkers int

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect [fileURI...]",
		Short: "Run the symbol collector and resolver, printing the resulting table",
		Long: "collect runs the two-pass pipeline (collection, then same-file " +
			"resolution) over one compilation unit per fileURI argument and prints " +
			"each resulting symbol table and reference list. Every fileURI is an " +
			"independent compilation unit with its own SymbolTable (spec.md §5's " +
			"\"disjoint symbol tables processed in parallel\" remark), so multiple " +
			"arguments are collected concurrently over a bounded worker pool.\n\n" +
			"Because the concrete Apex grammar/lexer is out of this core's scope, " +
			"every fileURI is analyzed against the same built-in demo fixture " +
			"(internal/demo.Unit) rather than a file read from disk — this command " +
			"exists to exercise and display the pipeline's output shape, not to " +
			"parse real source.",
		Args: cobra.MinimumNArgs(0),
		RunE: runCollect,
	}
	cmd.Flags().IntVar(&collectWorkers, "workers", 4, "maximum number of compilation units collected concurrently")
	return cmd
}

func runCollect(cmd *cobra.Command, args []string) error {
	uris := args
	if len(uris) == 0 {
		uris = []string{"file:///demo/Greeter.cls"}
	}

	results := collectAll(uris, collectWorkers)
	for _, uri := range uris {
		printTable(cmd, uri, results[uri])
	}
	return nil
}

// collectAll fans uris out across a bounded pool of goroutines, each
// running the full Analyze pipeline over its own disjoint SymbolTable, and
// gathers the results keyed by fileURI. Grounded in the hand-rolled
// sync.WaitGroup + buffered-channel fan-out the teacher uses for its own
// multi-unit work (rather than reaching for an errgroup dependency neither
// the teacher nor the rest of the retrieved pack ever imports for this —
// see DESIGN.md).
func collectAll(uris []string, workers int) map[string]*semantic.SymbolTable {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(map[string]*semantic.SymbolTable, len(uris))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for uri := range jobs {
				table := semantic.Analyze(demo.Unit(), semantic.WithFileURI(uri),
					semantic.WithStdlibClassNames("System", "String", "Integer", "List", "Set", "Map"))
				mu.Lock()
				results[uri] = table
				mu.Unlock()
			}
		}()
	}

	for _, uri := range uris {
		jobs <- uri
	}
	close(jobs)
	wg.Wait()

	return results
}

func printTable(cmd *cobra.Command, uri string, table *semantic.SymbolTable) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== %s ===\n", uri)

	symbols := table.GetAllSymbols()
	fmt.Fprintf(out, "symbols (%d):\n", len(symbols))
	for _, s := range symbols {
		fmt.Fprintf(out, "  %-9s %-24s parent=%s\n", s.Kind, s.ID, s.ParentID)
	}

	refs := table.GetAllReferences()
	fmt.Fprintf(out, "references (%d):\n", len(refs))
	for _, r := range refs {
		resolved := r.ResolvedSymbolID
		if resolved == "" {
			resolved = "<unresolved>"
		}
		fmt.Fprintf(out, "  %-12s %-20s %s -> %s\n", r.Context, r.Name, r.Location.IdentifierRange, resolved)
		for _, node := range r.ChainNodes {
			fmt.Fprintf(out, "      step %-20s %s\n", node.Name, node.Context)
		}
	}

	if len(table.Diagnostics()) > 0 {
		fmt.Fprintf(out, "diagnostics (%d):\n", len(table.Diagnostics()))
		for _, d := range table.Diagnostics() {
			fmt.Fprintf(out, "  %s\n", d.Error())
		}
	}

	if verbose {
		fmt.Fprintf(out, "root class count: %d\n", len(table.FindSymbolWith(func(s *symbol.Symbol) bool {
			return s.Kind == symbol.KindClass
		})))
	}
}
