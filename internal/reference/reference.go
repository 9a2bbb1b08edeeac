// Package reference defines every typed, position-indexed use of a name the
// collector emits, and the access/literal tags that ride along with it.
package reference

import "github.com/apex-lang-tools/symbol-core/internal/source"

// Context tags the syntactic role a name usage plays (spec.md §3.5, §4.2).
type Context string

const (
	MethodCall             Context = "METHOD_CALL"
	FieldAccess            Context = "FIELD_ACCESS"
	VariableUsage          Context = "VARIABLE_USAGE"
	ConstructorCall        Context = "CONSTRUCTOR_CALL"
	TypeDeclaration        Context = "TYPE_DECLARATION"
	ParameterType          Context = "PARAMETER_TYPE"
	ReturnType             Context = "RETURN_TYPE"
	GenericParameterType   Context = "GENERIC_PARAMETER_TYPE"
	CastTypeReference      Context = "CAST_TYPE_REFERENCE"
	InstanceofTypeRef      Context = "INSTANCEOF_TYPE_REFERENCE"
	ClassReference         Context = "CLASS_REFERENCE"
	VariableDeclaration    Context = "VARIABLE_DECLARATION"
	PropertyReference      Context = "PROPERTY_REFERENCE"
	Literal                Context = "LITERAL"
	ChainStep              Context = "CHAIN_STEP"
	Chained                Context = "CHAINED"
)

// Access tags whether a variable/field usage reads, writes, or both
// (compound assignment) the name at that location.
type Access string

const (
	Read      Access = "read"
	Write     Access = "write"
	ReadWrite Access = "readwrite"
)

// LiteralType tags the kind of value a Literal-context reference carries.
type LiteralType string

const (
	LiteralInteger LiteralType = "Integer"
	LiteralLong    LiteralType = "Long"
	LiteralDecimal LiteralType = "Decimal"
	LiteralString  LiteralType = "String"
	LiteralBoolean LiteralType = "Boolean"
	LiteralNull    LiteralType = "Null"
)

// SymbolReference is one typed, position-indexed use of a name. ChainNodes
// is populated only when this reference represents a whole dotted
// expression (spec.md §3.5's ChainedSymbolReference variant); individual
// chain nodes are themselves SymbolReferences with their own narrowed
// Context, never further nested.
type SymbolReference struct {
	ID               int64
	Name             string
	Location         source.Location
	Context          Context
	ParentContext    Context
	HasParentContext bool
	ResolvedSymbolID string
	LiteralValue     string
	HasLiteralValue  bool
	LiteralType      LiteralType
	Access           Access

	ChainNodes      []*SymbolReference
	BaseExpression  string

	// ParameterRefs holds the argument references collected while this
	// reference's call was the innermost entry on the method-call
	// parameter stack (spec.md §4.2). Populated only for references that
	// represent an open method/constructor call (MethodCall,
	// ConstructorCall, a call-shaped ChainStep, or the Chained wrapper
	// around a dotted call); nil otherwise.
	ParameterRefs []*SymbolReference
}

// IsChained reports whether r is the outer reference of a dotted
// expression.
func (r *SymbolReference) IsChained() bool {
	return r != nil && len(r.ChainNodes) > 0
}

// Resolved reports whether the resolver has bound this reference to a
// symbol.
func (r *SymbolReference) Resolved() bool {
	return r != nil && r.ResolvedSymbolID != ""
}
