package semantic

import (
	"strings"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// Collector is the tree listener that walks one parsetree.Node root and
// populates a SymbolTable: every declaration becomes a Symbol, every use of
// a name becomes a SymbolReference with a provisional (same-file-unaware)
// Context. It implements parsetree.Visitor.
//
// Declaration nodes (class, method, field, ...) are self-contained: their
// handler extracts name/type/modifiers directly via Child(role) and takes
// over traversal of their substantive children (bodies, initializers,
// member lists) with an explicit nested Walk call, rather than letting the
// generic dispatch descend into their metadata children. This mirrors the
// teacher's AST listener in semantic/analyzer.go, which works the same way
// because its node types expose typed fields instead of generic children.
type Collector struct {
	table   *SymbolTable
	scopes  *ScopeStack
	calls   *CallStack
	chain   *ChainAnalyzer
	types   *typeExtractor
	opts    Options
	current []*symbol.Symbol // enclosing semantic-symbol stack, for ParentID
}

// NewCollector builds a Collector writing into a fresh SymbolTable for the
// given options.
func NewCollector(opts Options) *Collector {
	return newCollector(NewSymbolTable(opts.fileURI, opts.detailLevel), opts)
}

func newCollector(table *SymbolTable, opts Options) *Collector {
	c := &Collector{
		table:  table,
		scopes: NewScopeStack(table),
		calls:  NewCallStack(),
		opts:   opts,
	}
	c.chain = newChainAnalyzer(c)
	c.types = newTypeExtractor(c)
	return c
}

// Table returns the table being populated.
func (c *Collector) Table() *SymbolTable { return c.table }

// Collect runs the collector over root and returns the populated table.
// root may be a CompilationUnit, TriggerUnit, or AnonymousBlock
// (spec.md §2.1). For the combined collect-then-resolve pipeline, use
// Analyze instead.
func Collect(root *parsetree.Node, opts ...Option) *SymbolTable {
	o := NewOptions(opts...)
	col := NewCollector(o)
	col.scopes.EnterFileScope(root.Location)
	parsetree.Walk(root, col)
	col.scopes.ExitScope(symbol.ScopeFile)
	col.calls.CheckEmpty(col.table)
	return col.table
}

// Enter implements parsetree.Visitor.
func (c *Collector) Enter(n *parsetree.Node) bool {
	switch n.Kind {
	case parsetree.KindClassDecl:
		c.collectClass(n)
		return false
	case parsetree.KindInterfaceDecl:
		c.collectInterface(n)
		return false
	case parsetree.KindEnumDecl:
		c.collectEnum(n)
		return false
	case parsetree.KindTriggerDecl:
		c.collectTrigger(n)
		return false
	case parsetree.KindMethodDecl, parsetree.KindInterfaceMethodDecl:
		c.collectMethod(n)
		return false
	case parsetree.KindConstructorDecl:
		c.collectConstructor(n)
		return false
	case parsetree.KindFieldDecl:
		c.collectField(n)
		return false
	case parsetree.KindPropertyDecl:
		c.collectProperty(n)
		return false
	case parsetree.KindLocalVarDecl:
		c.collectLocalVar(n)
		return false
	case parsetree.KindParameter:
		// Reached only if a parser hands a parameter outside a method's
		// own parameter list; methods consume their own parameters
		// directly. Collected defensively so no case goes unhandled.
		c.collectParameter(n)
		return false
	case parsetree.KindBlock:
		if n.Role == parsetree.RoleBody {
			return true // owner already pushed this block's scope
		}
		c.enterBareBlock(n)
	case parsetree.KindIfStmt:
		c.scopes.EnterScope(symbol.ScopeIf, n.Location, nil)
	case parsetree.KindWhileStmt:
		c.scopes.EnterScope(symbol.ScopeWhile, n.Location, nil)
	case parsetree.KindDoWhileStmt:
		c.scopes.EnterScope(symbol.ScopeDoWhile, n.Location, nil)
	case parsetree.KindForStmt:
		c.calls.PushExcluded("for")
		c.scopes.EnterScope(symbol.ScopeFor, n.Location, nil)
	case parsetree.KindTryStmt:
		c.collectTryStmt(n)
		return false
	case parsetree.KindCatchClause:
		c.scopes.EnterScope(symbol.ScopeCatch, n.Location, nil)
	case parsetree.KindFinallyClause:
		c.scopes.EnterScope(symbol.ScopeFinally, n.Location, nil)
	case parsetree.KindSwitchStmt:
		c.collectSwitch(n)
		return false
	case parsetree.KindWhenClause:
		// Reached only if a WhenClause is encountered outside a
		// SwitchStatement's own dispatch; collectSwitch normally consumes
		// every WhenClause itself so it can check duplicate/qualified
		// when-values across the whole switch.
		c.scopes.EnterScope(symbol.ScopeWhen, n.Location, nil)
	case parsetree.KindRunAsStmt:
		c.collectRunAs(n)
		return false
	case parsetree.KindAssignExpr:
		c.collectAssign(n)
		return false
	case parsetree.KindDotExpr:
		c.chain.collect(n)
		return false
	case parsetree.KindMethodCallExpr:
		c.collectBareCall(n)
		return false
	case parsetree.KindNewExpr:
		c.collectConstructorCall(n)
		return false
	case parsetree.KindCastExpr:
		c.collectCast(n)
		return false
	case parsetree.KindInstanceofExpr:
		c.collectInstanceof(n)
		return false
	case parsetree.KindClassLiteralExpr:
		c.collectClassLiteral(n)
		return false
	case parsetree.KindIdentifier:
		c.collectIdentifierUsage(n, reference.Read)
	case parsetree.KindIntLiteral:
		c.emitLiteral(n, reference.LiteralInteger)
	case parsetree.KindLongLiteral:
		c.emitLiteral(n, reference.LiteralLong)
	case parsetree.KindDecimalLiteral:
		c.emitLiteral(n, reference.LiteralDecimal)
	case parsetree.KindStringLiteral:
		c.emitLiteral(n, reference.LiteralString)
	case parsetree.KindBoolLiteral:
		c.emitLiteral(n, reference.LiteralBoolean)
	case parsetree.KindNullLiteral:
		c.emitLiteral(n, reference.LiteralNull)
	}
	return true
}

// Exit implements parsetree.Visitor. Declaration kinds are fully
// self-contained in Enter (they push and pop their own scope/owner before
// returning), so only the generically-descended statement scopes need
// closing here.
func (c *Collector) Exit(n *parsetree.Node) {
	switch n.Kind {
	case parsetree.KindBlock:
		if n.Role != parsetree.RoleBody {
			c.scopes.ExitScope(symbol.ScopeBlock)
		}
	case parsetree.KindIfStmt:
		c.scopes.ExitScope(symbol.ScopeIf)
	case parsetree.KindWhileStmt:
		c.scopes.ExitScope(symbol.ScopeWhile)
	case parsetree.KindDoWhileStmt:
		c.scopes.ExitScope(symbol.ScopeDoWhile)
	case parsetree.KindCatchClause:
		c.scopes.ExitScope(symbol.ScopeCatch)
	case parsetree.KindFinallyClause:
		c.scopes.ExitScope(symbol.ScopeFinally)
	case parsetree.KindWhenClause:
		c.scopes.ExitScope(symbol.ScopeWhen)
	case parsetree.KindForStmt:
		c.scopes.ExitScope(symbol.ScopeFor)
		c.calls.Pop()
	}
}

// currentOwner returns the innermost open semantic symbol (class, method,
// ...), or nil at file scope.
func (c *Collector) currentOwner() *symbol.Symbol {
	if len(c.current) == 0 {
		return nil
	}
	return c.current[len(c.current)-1]
}

func (c *Collector) pushOwner(s *symbol.Symbol) { c.current = append(c.current, s) }

func (c *Collector) popOwner() {
	if len(c.current) == 0 {
		return
	}
	c.current = c.current[:len(c.current)-1]
}

// addSymbol builds a symbol's id/scopePath from the current block and adds
// it to the table, reporting a duplicate-declaration diagnostic instead of
// the raw AddSymbol error (spec.md §4.2's duplicate-declaration rule).
func (c *Collector) addSymbol(s *symbol.Symbol) *symbol.Symbol {
	parentID := c.scopes.CurrentID()
	var parent *symbol.Symbol
	if parentID != "" {
		parent, _ = c.table.ResolveSymbol(parentID)
	}
	s.ParentID = parentID
	s.ScopePath = buildScopePath(parent)
	s.FileURI = c.table.GetFileURI()
	s.ID = buildID(c.table.GetFileURI(), s.ScopePath, s.Kind, s.Name)

	if existing, ok := c.table.ResolveSymbol(s.ID); ok {
		c.reportDuplicate(s, existing)
		return existing
	}
	_ = c.table.AddSymbol(s)
	c.reportModifierViolations(s)
	return s
}

// addMethodSymbol is addSymbol's Method/Constructor counterpart: it folds
// the parameter signature into the id so overloads (same name, different
// signature) get distinct ids instead of colliding, and only reports a
// duplicate when both name and signature match (spec.md §3.6).
func (c *Collector) addMethodSymbol(s *symbol.Symbol) *symbol.Symbol {
	parentID := c.scopes.CurrentID()
	var parent *symbol.Symbol
	if parentID != "" {
		parent, _ = c.table.ResolveSymbol(parentID)
	}
	s.ParentID = parentID
	s.ScopePath = buildScopePath(parent)
	s.FileURI = c.table.GetFileURI()
	sig := symbol.ParameterSignature(s.Parameters)
	s.ID = buildMethodID(c.table.GetFileURI(), s.ScopePath, s.Kind, s.Name, sig)

	if existing, ok := c.table.ResolveSymbol(s.ID); ok {
		c.reportDuplicate(s, existing)
		return existing
	}
	_ = c.table.AddSymbol(s)
	c.reportModifierViolations(s)
	return s
}

func (c *Collector) reportModifierViolations(s *symbol.Symbol) {
	for _, msg := range s.Modifiers.Violations(s.Kind == symbol.KindMethod) {
		c.table.AddDiagnostic(diagnostics.New(
			diagnostics.SeverityError, c.table.GetFileURI(),
			s.Location.IdentifierRange.Start.Line, s.Location.IdentifierRange.Start.Column,
			"%s", msg,
		))
	}
}

func (c *Collector) reportDuplicate(s, existing *symbol.Symbol) {
	c.table.AddDiagnostic(diagnostics.New(
		diagnostics.SeverityError,
		c.table.GetFileURI(),
		s.Location.IdentifierRange.Start.Line,
		s.Location.IdentifierRange.Start.Column,
		"%s %q is already declared at %s", strings.ToLower(string(s.Kind)), s.Name, existing.Location.IdentifierRange.Start,
	))
}

func (c *Collector) emitReference(ref *reference.SymbolReference) *reference.SymbolReference {
	c.table.AddTypeReference(ref)
	c.calls.RecordParam(ref)
	return ref
}
