package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

func (c *Collector) enterBareBlock(n *parsetree.Node) {
	c.scopes.EnterScope(symbol.ScopeBlock, n.Location, nil)
}

// collectIdentifierUsage emits a VARIABLE_USAGE reference for a bare name
// used as an expression (spec.md §3.5). The resolver may later upgrade its
// Context to CLASS_REFERENCE once it finds the name binds to a type instead
// of a variable (SPEC_FULL.md §6).
func (c *Collector) collectIdentifierUsage(n *parsetree.Node, access reference.Access) {
	c.emitReference(&reference.SymbolReference{
		Name:     n.Text,
		Location: n.Location,
		Context:  reference.VariableUsage,
		Access:   access,
	})
}

func (c *Collector) emitLiteral(n *parsetree.Node, lt reference.LiteralType) {
	c.emitReference(&reference.SymbolReference{
		Location:        n.Location,
		Context:         reference.Literal,
		LiteralValue:    n.Text,
		HasLiteralValue: true,
		LiteralType:     lt,
	})
}

// collectAssign handles target = value (or op= value for a compound
// assignment, which reads-then-writes the target instead of only writing
// it). The value is always walked as an ordinary read; only the target's
// final name/chain-step is tagged Write/ReadWrite — everything nested
// inside the target that isn't the assigned name itself (e.g. an array
// index expression) is still a plain read (SPEC_FULL.md §6).
func (c *Collector) collectAssign(n *parsetree.Node) {
	target := n.Child(parsetree.RoleTarget)
	value := n.Child(parsetree.RoleValue)
	if value != nil {
		parsetree.Walk(value, c)
	}

	access := reference.Write
	if n.HasModifier("compound") {
		access = reference.ReadWrite
	}

	switch target.Kind {
	case parsetree.KindIdentifier:
		c.collectIdentifierUsage(target, access)
	case parsetree.KindDotExpr:
		c.chain.collectWithAccess(target, access)
	default:
		parsetree.Walk(target, c)
	}
}

// collectBareCall handles a non-dotted method call: name(args...). It
// returns the emitted reference so a chain base that starts with a call
// (foo().bar()) can reuse the same object as its chain node instead of
// emitting a second one.
func (c *Collector) collectBareCall(n *parsetree.Node) *reference.SymbolReference {
	nameNode := n.Child(parsetree.RoleMethodName)
	ref := c.emitReference(&reference.SymbolReference{
		Name:     nameNode.Text,
		Location: nameNode.Location,
		Context:  reference.MethodCall,
	})
	c.calls.Push(nameNode.Text, ref)
	if args := n.Child(parsetree.RoleArgument); args != nil {
		for _, a := range args.Children {
			parsetree.Walk(a, c)
		}
	}
	c.calls.Pop()
	return ref
}

// collectConstructorCall handles new TypeName(args...).
func (c *Collector) collectConstructorCall(n *parsetree.Node) {
	typeNode := n.Children[0]
	info, ref := c.types.extractWithRef(typeNode, reference.ConstructorCall)
	c.calls.Push(info.Name, ref)
	if args := n.Child(parsetree.RoleArgument); args != nil {
		for _, a := range args.Children {
			parsetree.Walk(a, c)
		}
	}
	c.calls.Pop()
}

// collectCast handles (TypeName) operand.
func (c *Collector) collectCast(n *parsetree.Node) {
	typeNode := n.Children[0]
	c.types.extract(typeNode, reference.CastTypeReference)
	if operand := n.Child(parsetree.RoleOperand); operand != nil {
		parsetree.Walk(operand, c)
	}
}

// collectInstanceof handles operand instanceof TypeName.
func (c *Collector) collectInstanceof(n *parsetree.Node) {
	if operand := n.Child(parsetree.RoleOperand); operand != nil {
		parsetree.Walk(operand, c)
	}
	if typeNode := n.Child(parsetree.RoleType); typeNode != nil {
		c.types.extract(typeNode, reference.InstanceofTypeRef)
	}
}

// collectClassLiteral handles TypeName.class.
func (c *Collector) collectClassLiteral(n *parsetree.Node) {
	if typeNode := n.Child(parsetree.RoleType); typeNode != nil {
		c.types.extract(typeNode, reference.ClassReference)
	}
}

// collectRunAs handles System.runAs(operands) { body }: the operand list
// looks like a call's argument list but must not register on the
// method-call stack as a real call (spec.md §4.2's for-loop/runAs
// exclusion), and its body opens its own ScopeRunAs rather than inheriting
// an owner's scope.
func (c *Collector) collectRunAs(n *parsetree.Node) {
	c.calls.PushExcluded("runAs")
	if operands := n.Child(parsetree.RoleArgument); operands != nil {
		for _, o := range operands.Children {
			parsetree.Walk(o, c)
		}
	}
	c.calls.Pop()

	c.scopes.EnterScope(symbol.ScopeRunAs, n.Location, nil)
	if body := n.Child(parsetree.RoleBody); body != nil {
		parsetree.Walk(body, c)
	}
	c.scopes.ExitScope(symbol.ScopeRunAs)
}
