// Package symbol defines the symbol model produced by the collector: a
// single tagged struct per declaration, discriminated by Kind, following the
// same flat-struct shape the teacher's own semantic.Symbol uses rather than
// an interface-per-kind hierarchy.
package symbol

import "github.com/apex-lang-tools/symbol-core/internal/source"

// Kind tags the declaration a Symbol represents.
type Kind string

const (
	KindClass       Kind = "Class"
	KindInterface   Kind = "Interface"
	KindEnum        Kind = "Enum"
	KindTrigger     Kind = "Trigger"
	KindMethod      Kind = "Method"
	KindConstructor Kind = "Constructor"
	KindField       Kind = "Field"
	KindProperty    Kind = "Property"
	KindParameter   Kind = "Parameter"
	KindVariable    Kind = "Variable"
	KindEnumValue   Kind = "EnumValue"
	KindBlock       Kind = "Block"
)

// IsType reports whether k is one of the type-declaration kinds (Class,
// Interface, Enum, Trigger).
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindInterface, KindEnum, KindTrigger:
		return true
	default:
		return false
	}
}

// IsVariableLike reports whether k carries a TypeInfo payload (Field,
// Property, Parameter, Variable, EnumValue).
func (k Kind) IsVariableLike() bool {
	switch k {
	case KindField, KindProperty, KindParameter, KindVariable, KindEnumValue:
		return true
	default:
		return false
	}
}

// ScopeType classifies a Block symbol's synthetic scope kind.
type ScopeType string

const (
	ScopeFile     ScopeType = "file"
	ScopeClass    ScopeType = "class"
	ScopeMethod   ScopeType = "method"
	ScopeBlock    ScopeType = "block"
	ScopeIf       ScopeType = "if"
	ScopeWhile    ScopeType = "while"
	ScopeFor      ScopeType = "for"
	ScopeDoWhile  ScopeType = "doWhile"
	ScopeTry      ScopeType = "try"
	ScopeCatch    ScopeType = "catch"
	ScopeFinally  ScopeType = "finally"
	ScopeSwitch   ScopeType = "switch"
	ScopeWhen     ScopeType = "when"
	ScopeRunAs    ScopeType = "runAs"
	ScopeGetter   ScopeType = "getter"
	ScopeSetter   ScopeType = "setter"
)

// Symbol is every declaration the collector produces: a type, a member, a
// parameter/variable, or a synthetic block scope. Fields irrelevant to a
// given Kind are left at their zero value; the comments on the field groups
// below name the kinds each group applies to.
type Symbol struct {
	ID          string
	Name        string
	Kind        Kind
	Location    source.Location
	FileURI     string
	ParentID    string // "" only for the file-scope root block
	Modifiers   Modifiers
	Annotations []string
	Namespace   string
	ScopePath   []string

	// Type symbols: Class, Interface, Enum, Trigger.
	SuperClass string
	Interfaces []string
	EnumValues []string // ordered value names; EnumValue symbols also exist as children

	// Method / Constructor.
	Parameters    []*Symbol
	ReturnType    *TypeInfo
	IsConstructor bool

	// Variable-like: Field, Property, Parameter, Variable, EnumValue.
	Type         *TypeInfo
	InitialValue string
	HasInitial   bool

	// Block.
	ScopeType ScopeType
}

// ParameterSignature renders the comma-joined parameter type source strings
// used to detect duplicate Method/Constructor declarations at the same
// scope (SPEC_FULL.md §6, spec.md §3.6).
func ParameterSignature(params []*Symbol) string {
	sig := ""
	for i, p := range params {
		if i > 0 {
			sig += ","
		}
		if p.Type != nil {
			sig += p.Type.OriginalTypeString
		}
	}
	return sig
}
