package parsetree

import "github.com/apex-lang-tools/symbol-core/internal/source"

// Builder constructs fixture parse trees for tests and for cmd/apexsym's
// demo input, standing in for the external parser spec.md §1 keeps out of
// scope. Every method returns *Node so calls chain naturally.
type Builder struct{}

// NewBuilder returns a Builder. It carries no state; it exists so fixture
// code reads as "parsetree.NewBuilder().Class(...)" rather than a pile of bare
// functions.
func NewBuilder() Builder { return Builder{} }

// Pos is a convenience single-line range: startCol is 0-based, length is
// the identifier's character count.
func Pos(line, startCol, length int) source.Location {
	r := source.NewRange(line, startCol, line, startCol+length)
	return source.NewLocation(r)
}

// Node builds a bare node of the given kind at loc, with text and children.
func (Builder) Node(kind Kind, role Role, text string, loc source.Location, children ...*Node) *Node {
	return &Node{Kind: kind, Role: role, Text: text, Location: loc, Children: children}
}

// Ident builds an identifier leaf node.
func (b Builder) Ident(role Role, name string, loc source.Location) *Node {
	return b.Node(KindIdentifier, role, name, loc)
}

// Unit builds a CompilationUnit root wrapping the given top-level
// declarations (classes, interfaces, enums, triggers).
func (b Builder) Unit(loc source.Location, decls ...*Node) *Node {
	return b.Node(KindCompilationUnit, "", "", loc, decls...)
}

// Class builds a ClassDeclaration node. members are field/property/method/
// constructor/enum declarations nested directly in the class body.
func (b Builder) Class(name string, loc source.Location, members ...*Node) *Node {
	n := b.Node(KindClassDecl, "", name, loc)
	n.Children = append([]*Node{b.Ident(RoleName, name, loc)}, members...)
	return n
}

// WithSuper attaches a superclass identifier to a class node.
func (b Builder) WithSuper(n *Node, superName string, loc source.Location) *Node {
	n.Children = append(n.Children, b.Ident(RoleSuperClass, superName, loc))
	return n
}

// WithInterfaces attaches implemented-interface identifiers to a class
// node.
func (b Builder) WithInterfaces(n *Node, loc source.Location, names ...string) *Node {
	for _, name := range names {
		n.Children = append(n.Children, b.Ident(RoleInterface, name, loc))
	}
	return n
}

// Method builds a MethodDeclaration node with the given return type,
// parameters, and body statements.
func (b Builder) Method(name string, loc source.Location, returnType *Node, params []*Node, body ...*Node) *Node {
	n := b.Node(KindMethodDecl, RoleMember, name, loc)
	n.Children = append(n.Children, b.Ident(RoleName, name, loc))
	if returnType != nil {
		returnType.Role = RoleReturnType
		n.Children = append(n.Children, returnType)
	}
	for _, p := range params {
		p.Role = RoleParameter
		n.Children = append(n.Children, p)
	}
	n.Children = append(n.Children, b.Node(KindBlock, RoleBody, "", loc, body...))
	return n
}

// Constructor builds a ConstructorDeclaration node.
func (b Builder) Constructor(name string, loc source.Location, params []*Node, body ...*Node) *Node {
	n := b.Node(KindConstructorDecl, RoleMember, name, loc)
	n.Children = append(n.Children, b.Ident(RoleName, name, loc))
	for _, p := range params {
		p.Role = RoleParameter
		n.Children = append(n.Children, p)
	}
	n.Children = append(n.Children, b.Node(KindBlock, RoleBody, "", loc, body...))
	return n
}

// Param builds a FormalParameter node.
func (b Builder) Param(name string, typeName string, loc source.Location) *Node {
	n := b.Node(KindParameter, RoleParameter, name, loc)
	n.Children = []*Node{
		b.Ident(RoleName, name, loc),
		b.TypeRef(typeName, loc),
	}
	return n
}

// TypeRef builds a TypeRef node for a simple (possibly dotted) type name.
func (b Builder) TypeRef(name string, loc source.Location) *Node {
	return b.Node(KindTypeRef, RoleType, name, loc)
}

// GenericTypeRef builds a TypeRef node carrying ordered generic type
// arguments (List/Set have one, Map has two).
func (b Builder) GenericTypeRef(name string, loc source.Location, args ...*Node) *Node {
	n := b.TypeRef(name, loc)
	for _, a := range args {
		a.Role = RoleGenericArg
		n.Children = append(n.Children, a)
	}
	return n
}

// Field builds a FieldDeclaration node.
func (b Builder) Field(name, typeName string, loc source.Location) *Node {
	n := b.Node(KindFieldDecl, RoleMember, name, loc)
	n.Children = []*Node{b.Ident(RoleName, name, loc), b.TypeRef(typeName, loc)}
	return n
}

// LocalVar builds a LocalVariableDeclaration node sharing one type across
// one or more declarators (spec.md §4.2's "duplicate within the same
// statement" case needs more than one declarator).
func (b Builder) LocalVar(typeName string, loc source.Location, declaratorNames ...string) *Node {
	n := b.Node(KindLocalVarDecl, RoleStatement, "", loc, b.TypeRef(typeName, loc))
	for _, name := range declaratorNames {
		d := b.Node(KindVariableDeclarator, RoleDeclarator, name, loc, b.Ident(RoleName, name, loc))
		n.Children = append(n.Children, d)
	}
	return n
}

// Assign builds an AssignmentExpression node: target = value (or op+=
// value for compound assignment, tagged via isCompound).
func (b Builder) Assign(target, value *Node, loc source.Location, isCompound bool) *Node {
	target.Role = RoleTarget
	value.Role = RoleValue
	n := b.Node(KindAssignExpr, RoleStatement, "", loc, target, value)
	if isCompound {
		n.Modifiers = []string{"compound"}
	}
	return n
}

// Usage builds a VariableUsage-shaped identifier reference node (a bare
// name used as an expression, e.g. the "a" in "a = 1" or "x" in "f(x)").
func (b Builder) Usage(role Role, name string, loc source.Location) *Node {
	return b.Ident(role, name, loc)
}

// IntLit builds an integer literal leaf.
func (b Builder) IntLit(role Role, text string, loc source.Location) *Node {
	return b.Node(KindIntLiteral, role, text, loc)
}

// StringLit builds a string literal leaf (text excludes quotes).
func (b Builder) StringLit(role Role, text string, loc source.Location) *Node {
	return b.Node(KindStringLiteral, role, text, loc)
}

// Dot builds a DotExpression node: object.member (member may itself be a
// MethodCall for a.b() or a plain identifier for a.b).
func (b Builder) Dot(object, member *Node, loc source.Location) *Node {
	object.Role = RoleObject
	member.Role = RoleMethodName
	return b.Node(KindDotExpr, "", "", loc, object, member)
}

// Call builds a MethodCallExpression node: name(args...). When object is
// non-nil this is the tail of a dotted call (a.b(args)); when nil it's a
// bare call (b(args)).
func (b Builder) Call(object *Node, name string, loc source.Location, args ...*Node) *Node {
	n := b.Node(KindMethodCallExpr, "", name, loc)
	if object != nil {
		object.Role = RoleObject
		n.Children = append(n.Children, object)
	}
	n.Children = append(n.Children, b.Ident(RoleMethodName, name, loc))
	argList := b.Node(KindArgumentList, RoleArgument, "", loc, args...)
	n.Children = append(n.Children, argList)
	return n
}

// New builds a NewExpression node: new TypeName(args...).
func (b Builder) New(typeName string, loc source.Location, args ...*Node) *Node {
	n := b.Node(KindNewExpr, "", "", loc, b.TypeRef(typeName, loc))
	argList := b.Node(KindArgumentList, RoleArgument, "", loc, args...)
	n.Children = append(n.Children, argList)
	return n
}

// Cast builds a CastExpression node: (TypeName) operand.
func (b Builder) Cast(typeName string, operand *Node, loc source.Location) *Node {
	operand.Role = RoleOperand
	return b.Node(KindCastExpr, "", "", loc, b.TypeRef(typeName, loc), operand)
}

// Instanceof builds an InstanceofExpression node: operand instanceof
// TypeName.
func (b Builder) Instanceof(operand *Node, typeName string, loc source.Location) *Node {
	operand.Role = RoleOperand
	return b.Node(KindInstanceofExpr, "", "", loc, operand, b.TypeRef(typeName, loc))
}

// ClassLiteral builds a ClassLiteralExpression node: TypeName.class.
func (b Builder) ClassLiteral(typeName string, loc source.Location) *Node {
	return b.Node(KindClassLiteralExpr, "", "", loc, b.TypeRef(typeName, loc))
}

// RunAs builds a RunAsStatement node: System.runAs(operands) { body }.
func (b Builder) RunAs(loc source.Location, operands []*Node, body ...*Node) *Node {
	operandList := b.Node(KindRunAsOperandList, RoleArgument, "", loc, operands...)
	return b.Node(KindRunAsStmt, RoleStatement, "", loc, operandList, b.Node(KindBlock, RoleBody, "", loc, body...))
}

// Array marks a TypeRef node as an array type (e.g. "String[]").
func (b Builder) Array(t *Node) *Node {
	t.Modifiers = append(t.Modifiers, "array")
	return t
}

// Switch builds a SwitchStatement node over switchOn, with the given when
// clauses (each built with When).
func (b Builder) Switch(switchOn *Node, loc source.Location, whens ...*Node) *Node {
	switchOn.Role = RoleSwitchOn
	n := b.Node(KindSwitchStmt, RoleStatement, "", loc, switchOn)
	n.Children = append(n.Children, whens...)
	return n
}

// When builds a WhenClause node with one or more when-values.
func (b Builder) When(loc source.Location, values ...*Node) *Node {
	n := b.Node(KindWhenClause, RoleWhen, "", loc)
	for _, v := range values {
		v.Role = RoleWhenValue
		n.Children = append(n.Children, v)
	}
	return n
}

// Enum builds an EnumDeclaration node with ordered value names.
func (b Builder) Enum(name string, loc source.Location, values ...string) *Node {
	n := b.Node(KindEnumDecl, "", name, loc, b.Ident(RoleName, name, loc))
	for _, v := range values {
		n.Children = append(n.Children, b.Node(KindEnumValueDecl, RoleEnumValue, v, loc, b.Ident(RoleName, v, loc)))
	}
	return n
}
