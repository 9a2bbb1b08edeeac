package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// Pass is one stage of the pipeline over a parse tree. Adapted from the
// teacher's own Pass interface (semantic/pass.go), which drives DWScript's
// multi-pass type checker; here there are exactly two passes (spec.md §2.2):
// collect every declaration and provisional reference, then resolve
// same-file names.
type Pass interface {
	Name() string
	Run(root *parsetree.Node, table *SymbolTable)
}

// CollectionPass runs the Collector over root, populating table with every
// symbol and reference.
type CollectionPass struct {
	opts Options
}

// NewCollectionPass returns a CollectionPass configured with opts.
func NewCollectionPass(opts Options) *CollectionPass {
	return &CollectionPass{opts: opts}
}

func (p *CollectionPass) Name() string { return "collect" }

func (p *CollectionPass) Run(root *parsetree.Node, table *SymbolTable) {
	col := newCollector(table, p.opts)
	col.scopes.EnterFileScope(root.Location)
	parsetree.Walk(root, col)
	col.scopes.ExitScope(symbol.ScopeFile)
	col.calls.CheckEmpty(table)
}

// ResolutionPass runs the Resolver over the table a prior CollectionPass
// populated. It ignores root; it is kept on the Pass signature so
// PassManager can run every pass uniformly.
type ResolutionPass struct{}

// NewResolutionPass returns a ResolutionPass.
func NewResolutionPass() *ResolutionPass { return &ResolutionPass{} }

func (p *ResolutionPass) Name() string { return "resolve" }

func (p *ResolutionPass) Run(_ *parsetree.Node, table *SymbolTable) {
	NewResolver(table).Resolve()
}

// PassManager runs a fixed sequence of passes over one parse tree,
// threading the same SymbolTable through all of them.
type PassManager struct {
	passes []Pass
}

// NewPassManager builds the standard two-pass pipeline.
func NewPassManager(opts Options) *PassManager {
	return &PassManager{passes: []Pass{NewCollectionPass(opts), NewResolutionPass()}}
}

// Run executes every pass in order over root and returns the resulting
// table.
func (pm *PassManager) Run(root *parsetree.Node, opts Options) *SymbolTable {
	table := NewSymbolTable(opts.fileURI, opts.detailLevel)
	for _, p := range pm.passes {
		p.Run(root, table)
	}
	return table
}

// Analyze is the package's top-level entry point: collect then resolve,
// returning the finished table (spec.md §2's two operations run back to
// back for the normal single-shot use case).
func Analyze(root *parsetree.Node, opts ...Option) *SymbolTable {
	o := NewOptions(opts...)
	return NewPassManager(o).Run(root, o)
}
