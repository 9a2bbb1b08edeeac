package symbol

import "strings"

// Well-known collection type names (spec.md §4.4). Arity is the number of
// generic type parameters each carries.
const (
	TypeNameList = "List"
	TypeNameSet  = "Set"
	TypeNameMap  = "Map"
)

// TypeInfo is the structured form of a declared type reference (spec.md
// §3.4). ResolvedSymbolID and TypeReferenceID are populated after
// collection: the former by the resolver once it locates the class/
// interface/enum the type names, the latter by the collector at the moment
// it emits the TYPE_DECLARATION reference that introduced the name.
type TypeInfo struct {
	Name               string
	OriginalTypeString string
	IsBuiltIn          bool
	TypeParameters     []*TypeInfo
	ResolvedSymbolID   string
	TypeReferenceID    int64
	IsArray            bool
}

// Void is the canonical TypeInfo for constructors and procedures with no
// return value.
func Void() *TypeInfo {
	return &TypeInfo{Name: "void", OriginalTypeString: "void", IsBuiltIn: true}
}

// IsCollection reports whether t is one of the List/Set/Map generic
// collection types.
func (t *TypeInfo) IsCollection() bool {
	if t == nil {
		return false
	}
	switch t.Name {
	case TypeNameList, TypeNameSet, TypeNameMap:
		return true
	default:
		return false
	}
}

// String renders the type the way it appeared in source, falling back to
// the canonical name when OriginalTypeString wasn't captured.
func (t *TypeInfo) String() string {
	if t == nil {
		return ""
	}
	if t.OriginalTypeString != "" {
		return t.OriginalTypeString
	}
	suffix := ""
	if t.IsArray {
		suffix = "[]"
	}
	if len(t.TypeParameters) == 0 {
		return t.Name + suffix
	}
	parts := make([]string, len(t.TypeParameters))
	for i, p := range t.TypeParameters {
		parts[i] = p.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">" + suffix
}
