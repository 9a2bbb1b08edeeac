// Package parsetree is the inbound contract spec.md §6.1 describes: the
// shape of AST the collector expects an external parser to hand it. Because
// the concrete grammar/lexer is explicitly out of scope for this core
// (spec.md §1), this package ships only the contract plus a Builder used by
// tests and by cmd/apexsym to construct fixture trees — never a parser.
//
// It is modeled on the teacher's internal/ast node shape (one Node
// interface exposing TokenLiteral/String/Pos, walked by listener-style
// enter/exit callbacks) but re-keyed: rather than one concrete Go struct per
// DWScript grammar production, a single Node carries a Kind tag and
// Role-tagged children, so the same type serves every Apex production
// spec.md §6.1 names without a few dozen near-identical struct
// definitions — the grammar productions vary far more for Apex's surface
// than the handful of shapes the collector actually switches on.
package parsetree

import "github.com/apex-lang-tools/symbol-core/internal/source"

// Kind names a grammar production (spec.md §6.1's "child accessors named
// after the grammar productions").
type Kind string

const (
	KindCompilationUnit     Kind = "CompilationUnit"
	KindTriggerUnit         Kind = "TriggerUnit"
	KindAnonymousBlock      Kind = "AnonymousBlock"
	KindClassDecl           Kind = "ClassDeclaration"
	KindInterfaceDecl       Kind = "InterfaceDeclaration"
	KindEnumDecl            Kind = "EnumDeclaration"
	KindTriggerDecl         Kind = "TriggerDeclaration"
	KindMethodDecl          Kind = "MethodDeclaration"
	KindConstructorDecl     Kind = "ConstructorDeclaration"
	KindInterfaceMethodDecl Kind = "InterfaceMethodDeclaration"
	KindParameter           Kind = "FormalParameter"
	KindFieldDecl           Kind = "FieldDeclaration"
	KindPropertyDecl        Kind = "PropertyDeclaration"
	KindLocalVarDecl        Kind = "LocalVariableDeclaration"
	KindVariableDeclarator  Kind = "VariableDeclarator"
	KindEnumValueDecl       Kind = "EnumValueDeclaration"
	KindBlock               Kind = "Block"
	KindIfStmt              Kind = "IfStatement"
	KindWhileStmt           Kind = "WhileStatement"
	KindForStmt             Kind = "ForStatement"
	KindDoWhileStmt         Kind = "DoWhileStatement"
	KindTryStmt             Kind = "TryStatement"
	KindCatchClause         Kind = "CatchClause"
	KindFinallyClause       Kind = "FinallyClause"
	KindSwitchStmt          Kind = "SwitchStatement"
	KindWhenClause          Kind = "WhenClause"
	KindRunAsStmt           Kind = "RunAsStatement"
	KindTypeRef             Kind = "TypeRef"
	KindIdentifier          Kind = "Identifier"
	KindThisExpr            Kind = "ThisPrimary"
	KindSuperExpr           Kind = "SuperPrimary"
	KindDotExpr             Kind = "DotExpression"
	KindMethodCallExpr      Kind = "MethodCallExpression"
	KindNewExpr             Kind = "NewExpression"
	KindCastExpr            Kind = "CastExpression"
	KindArrayExpr           Kind = "ArrayExpression"
	KindAssignExpr          Kind = "AssignmentExpression"
	KindInstanceofExpr      Kind = "InstanceofExpression"
	KindClassLiteralExpr    Kind = "ClassLiteralExpression"
	KindIntLiteral          Kind = "IntegerLiteral"
	KindLongLiteral         Kind = "LongLiteral"
	KindDecimalLiteral      Kind = "DecimalLiteral"
	KindStringLiteral       Kind = "StringLiteral"
	KindBoolLiteral         Kind = "BooleanLiteral"
	KindNullLiteral         Kind = "NullLiteral"
	KindArgumentList        Kind = "ArgumentList"
	KindForControlList      Kind = "ForControlList"
	KindRunAsOperandList    Kind = "RunAsOperandList"
)

// Role tags the grammar role a child plays in its parent, standing in for
// the teacher's per-kind named struct fields (e.g. ClassDecl.Parent,
// FunctionDecl.Parameters) now that one Node type serves every kind.
type Role string

const (
	RoleName          Role = "name"
	RoleSuperClass    Role = "superClass"
	RoleInterface     Role = "interface"
	RoleBody          Role = "body"
	RoleMember        Role = "member"
	RoleParameter     Role = "parameter"
	RoleReturnType    Role = "returnType"
	RoleType          Role = "type"
	RoleDeclarator    Role = "declarator"
	RoleValue         Role = "value"
	RoleTarget        Role = "target"
	RoleObject        Role = "object"
	RoleMethodName    Role = "methodName"
	RoleArgument      Role = "argument"
	RoleCondition     Role = "condition"
	RoleThen          Role = "then"
	RoleElse          Role = "else"
	RoleCatch         Role = "catch"
	RoleFinally       Role = "finally"
	RoleWhen          Role = "when"
	RoleWhenValue     Role = "whenValue"
	RoleEnumValue     Role = "enumValue"
	RoleGenericArg    Role = "genericArg"
	RoleArrayBase     Role = "arrayBase"
	RoleIndex         Role = "index"
	RoleAnnotation    Role = "annotation"
	RoleModifier      Role = "modifier"
	RoleStatement     Role = "statement"
	RoleUpdate        Role = "update"
	RoleInit          Role = "init"
	RoleOperand       Role = "operand"
	RoleSwitchOn      Role = "switchOn"
	RoleAccessor      Role = "accessor"
)

// Node is one point in the parse tree. It carries both structural children
// (in Children, document order) and Role-tagged access to the subset of
// those children a particular grammar production singles out (a class's
// superclass, a method's parameter list, an if's condition, ...).
type Node struct {
	Kind        Kind
	Role        Role
	Text        string
	Location    source.Location
	Children    []*Node
	Modifiers   []string
	Annotations []string
}

// Child returns the first direct child carrying role, or nil.
func (n *Node) Child(role Role) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Role == role {
			return c
		}
	}
	return nil
}

// ChildrenWithRole returns every direct child carrying role, in document
// order.
func (n *Node) ChildrenWithRole(role Role) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

// HasModifier reports whether n's raw modifier keyword list contains kw
// (case-sensitive; the parser is expected to hand the collector the literal
// source keyword).
func (n *Node) HasModifier(kw string) bool {
	if n == nil {
		return false
	}
	for _, m := range n.Modifiers {
		if m == kw {
			return true
		}
	}
	return false
}

// HasAnnotation reports whether n carries the named annotation
// (case-insensitively, since Apex annotations are case-insensitive).
func (n *Node) HasAnnotation(name string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Annotations {
		if equalFold(a, name) {
			return true
		}
	}
	return false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
