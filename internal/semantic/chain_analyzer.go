package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
)

// ChainAnalyzer flattens a dotted expression (a.b.c(), this.x.y, Foo.bar())
// into its base expression plus an ordered list of chain nodes (base
// included), narrowing each node's underlying context (field access vs.
// method call vs. class reference) right-to-left without a second
// traversal. This is the narrowing pass spec.md §4.3 describes, disjoint
// from the resolver's own same-file binding pass: it runs during collection
// and only classifies each node's syntactic shape using evidence already
// visible at that point (a known standard-library class name, a variable
// already declared in the enclosing lexical scope) — it never attempts to
// resolve a name to a declaration.
type ChainAnalyzer struct {
	c *Collector
}

func newChainAnalyzer(c *Collector) *ChainAnalyzer { return &ChainAnalyzer{c: c} }

// collect handles a DotExpr encountered in a read position.
func (ca *ChainAnalyzer) collect(n *parsetree.Node) {
	ca.collectWithAccess(n, reference.Read)
}

// collectWithAccess handles a DotExpr that is the target of an assignment:
// finalAccess is applied to the chain's last node only (SPEC_FULL.md §6's
// LHS-suppression rule — every node before the last is still a read).
func (ca *ChainAnalyzer) collectWithAccess(n *parsetree.Node, finalAccess reference.Access) {
	var segments []*parsetree.Node
	cur := n
	for cur != nil && cur.Kind == parsetree.KindDotExpr {
		segments = append(segments, cur.Child(parsetree.RoleMethodName))
		cur = cur.Child(parsetree.RoleObject)
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	base := cur

	// this/super are never ambiguous, so they skip the narrowing pass
	// entirely: each member access or call gets its own reference with its
	// natural context instead of being wrapped in a CHAINED reference.
	if base != nil && (base.Kind == parsetree.KindThisExpr || base.Kind == parsetree.KindSuperExpr) {
		ca.collectThisChain(segments, finalAccess)
		return
	}

	// Only the chained reference emitted below counts as a parameter of an
	// enclosing call; the chain's own sub-references are taken back out.
	calls := ca.c.calls
	mark := -1
	if d := len(calls.frames); d > 0 {
		mark = len(calls.frames[d-1].params)
	}

	baseText := ca.baseExpressionText(base)
	baseNode := ca.collectBase(base)

	nodes := make([]*reference.SymbolReference, 0, len(segments)+1)
	if baseNode != nil {
		nodes = append(nodes, baseNode)
	}
	for i, seg := range segments {
		access := reference.Read
		if i == len(segments)-1 {
			access = finalAccess
		}
		nodes = append(nodes, ca.collectStep(seg, access))
	}

	ca.narrow(nodes)

	outer := &reference.SymbolReference{
		Location:       n.Location,
		Context:        reference.Chained,
		ChainNodes:     nodes,
		BaseExpression: baseText,
	}
	if len(segments) > 0 {
		outer.Name = stepName(segments[len(segments)-1])
	}
	// If the chain ends in a call, that call's already-finished parameter
	// list (attached to its node by CallStack.Pop when its frame closed)
	// is this whole chained expression's parameter list too, so a caller
	// one level up sees "a.b(...)" as a single parameterized unit rather
	// than having to dig into ChainNodes for it (spec.md §4.2 scenario 4).
	if len(nodes) > 0 {
		if last := nodes[len(nodes)-1]; last.ParameterRefs != nil {
			outer.ParameterRefs = last.ParameterRefs
		}
	}
	if mark >= 0 {
		top := &calls.frames[len(calls.frames)-1]
		top.params = top.params[:mark]
	}
	ca.c.emitReference(outer)
}

// collectThisChain handles this.x.y(...) / super.x.y(...): every member
// access or call in the chain gets its own natural-context reference
// directly, with no CHAINED wrapper and no CHAIN_STEP ambiguity, since the
// base is never in question.
func (ca *ChainAnalyzer) collectThisChain(segments []*parsetree.Node, finalAccess reference.Access) {
	for i, seg := range segments {
		access := reference.Read
		if i == len(segments)-1 {
			access = finalAccess
		}
		if seg.Kind == parsetree.KindMethodCallExpr {
			ca.c.collectBareCall(seg)
			continue
		}
		ca.c.emitReference(&reference.SymbolReference{
			Name:     seg.Text,
			Location: seg.Location,
			Context:  reference.FieldAccess,
			Access:   access,
		})
	}
}

// collectBase handles the leftmost, non-dotted part of the chain and
// returns the chain node it contributes, or nil when the base is too
// complex to narrow (e.g. a parenthesized sub-expression). this/super never
// reach here — collectWithAccess routes them to collectThisChain first.
func (ca *ChainAnalyzer) collectBase(base *parsetree.Node) *reference.SymbolReference {
	if base == nil {
		return nil
	}
	switch base.Kind {
	case parsetree.KindIdentifier:
		// A separate VARIABLE_USAGE reference at the base position keeps
		// same-file hover/lookup working for e.g. "System.debug" even
		// once the chain node itself narrows to CLASS_REFERENCE.
		ca.c.collectIdentifierUsage(base, reference.Read)
		return ca.c.emitReference(&reference.SymbolReference{
			Name:     base.Text,
			Location: base.Location,
			Context:  reference.ChainStep,
		})
	case parsetree.KindMethodCallExpr:
		return ca.c.collectBareCall(base)
	default:
		parsetree.Walk(base, ca.c)
		return nil
	}
}

// collectStep classifies and emits the reference for one chain segment,
// tagging it Context ChainStep with the underlying access category
// (FieldAccess or MethodCall) carried in ParentContext so both narrow and
// the resolver's CHAINED_TYPE handling can dispatch on it without
// re-deriving the node's shape (spec.md §4.5).
func (ca *ChainAnalyzer) collectStep(seg *parsetree.Node, access reference.Access) *reference.SymbolReference {
	if seg.Kind == parsetree.KindMethodCallExpr {
		nameNode := seg.Child(parsetree.RoleMethodName)
		ref := ca.c.emitReference(&reference.SymbolReference{
			Name:             nameNode.Text,
			Location:         nameNode.Location,
			Context:          reference.ChainStep,
			ParentContext:    reference.MethodCall,
			HasParentContext: true,
		})
		ca.c.calls.Push(nameNode.Text, ref)
		if args := seg.Child(parsetree.RoleArgument); args != nil {
			for _, a := range args.Children {
				parsetree.Walk(a, ca.c)
			}
		}
		ca.c.calls.Pop()
		return ref
	}

	return ca.c.emitReference(&reference.SymbolReference{
		Name:             seg.Text,
		Location:         seg.Location,
		Context:          reference.ChainStep,
		ParentContext:    reference.FieldAccess,
		HasParentContext: true,
		Access:           access,
	})
}

// narrow applies spec.md §4.3's right-to-left pass over a chain's full node
// list (base included): the rightmost node keeps whatever context it
// already has, and each node to its left is upgraded from CHAIN_STEP to
// CLASS_REFERENCE only when its right neighbor is a known role (method call
// or field access) and the node itself names either a configured
// standard-library class or a symbol already visible in the current
// lexical scope — otherwise it is left ambiguous (Open Question (b),
// SPEC_FULL.md §12). A node whose own role already narrowed to METHOD_CALL
// is never downgraded back to an ambiguous one.
func (ca *ChainAnalyzer) narrow(nodes []*reference.SymbolReference) {
	for i := len(nodes) - 2; i >= 0; i-- {
		rightRole := effectiveRole(nodes[i+1])
		if rightRole != reference.MethodCall && rightRole != reference.FieldAccess {
			continue
		}
		node := nodes[i]
		if effectiveRole(node) == reference.MethodCall {
			continue
		}
		if ca.isNarrowable(node.Name) {
			node.Context = reference.ClassReference
		}
	}
}

// effectiveRole returns a chain node's narrowed role: its ParentContext if
// it is still an ambiguous CHAIN_STEP, otherwise its own Context.
func effectiveRole(n *reference.SymbolReference) reference.Context {
	if n.Context == reference.ChainStep && n.HasParentContext {
		return n.ParentContext
	}
	return n.Context
}

// isNarrowable reports whether name is evidence enough to narrow an
// ambiguous chain node: a configured standard-library class name, or a
// symbol already declared somewhere visible from the current scope.
func (ca *ChainAnalyzer) isNarrowable(name string) bool {
	if ca.c.opts.isStdlibClass(name) {
		return true
	}
	_, ok := ca.c.table.Lookup(name, ca.c.scopes.CurrentID())
	return ok
}

// baseExpressionText renders the chain's baseExpression: the first true
// identifier found by walking the LHS recursively through primaries, dot
// chains, and array subscripts (spec.md §4.3) — never a method-call text,
// so a call base like "foo()" contributes its bare name "foo", not
// "foo()", and "arr[0]" contributes "arr".
func (ca *ChainAnalyzer) baseExpressionText(base *parsetree.Node) string {
	if base == nil {
		return ""
	}
	switch base.Kind {
	case parsetree.KindThisExpr:
		return "this"
	case parsetree.KindSuperExpr:
		return "super"
	case parsetree.KindMethodCallExpr:
		if nameNode := base.Child(parsetree.RoleMethodName); nameNode != nil {
			return nameNode.Text
		}
		return base.Text
	case parsetree.KindArrayExpr:
		return ca.baseExpressionText(base.Child(parsetree.RoleArrayBase))
	case parsetree.KindDotExpr:
		return ca.baseExpressionText(base.Child(parsetree.RoleObject))
	default:
		return base.Text
	}
}

func stepName(n *parsetree.Node) string {
	if n.Kind == parsetree.KindMethodCallExpr {
		if nameNode := n.Child(parsetree.RoleMethodName); nameNode != nil {
			return nameNode.Text
		}
	}
	return n.Text
}
