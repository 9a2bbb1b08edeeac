package semantic

import (
	"fmt"

	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/parsetree"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

var primitiveTypeNames = map[string]bool{
	"void": true, "boolean": true, "integer": true, "long": true,
	"double": true, "decimal": true, "string": true, "id": true,
	"date": true, "datetime": true, "time": true, "blob": true, "object": true,
}

// collectionArity maps a collection token's normalized name to its
// required generic-argument count and canonical rendering (spec.md §4.4:
// "Collection tokens list/set/map produce canonical names List/Set/Map...
// two for map").
var collectionArity = map[string]struct {
	canonical string
	arity     int
}{
	"list": {symbol.TypeNameList, 1},
	"set":  {symbol.TypeNameSet, 1},
	"map":  {symbol.TypeNameMap, 2},
}

// maxGenericNestingDepth bounds how many levels of parameterized-type
// arguments (spec.md §4.6's "parameterized-type arity and nesting depth")
// the collector will descend into before reporting instead of recursing
// further; chosen generously since Apex code rarely nests collections more
// than two or three deep (see DESIGN.md's type_extraction.go entry).
const maxGenericNestingDepth = 6

// typeExtractor builds symbol.TypeInfo values from parsetree.TypeRef nodes
// and emits the TYPE_DECLARATION-family reference each one introduces,
// linking TypeInfo.TypeReferenceID back to it so the type linker
// (spec.md §4.4) can dereference it after resolution without a second
// lookup.
type typeExtractor struct {
	c    *Collector
	seen map[string]bool // (name, location, parentContext) keys already emitted for a GENERIC_PARAMETER_TYPE reference
}

func newTypeExtractor(c *Collector) *typeExtractor {
	return &typeExtractor{c: c, seen: make(map[string]bool)}
}

// extract builds the TypeInfo for n and, when ctx is non-empty, emits the
// accompanying reference with that context (and GENERIC_PARAMETER_TYPE for
// any nested type arguments).
func (t *typeExtractor) extract(n *parsetree.Node, ctx reference.Context) *symbol.TypeInfo {
	info, _ := t.extractWithRef(n, ctx)
	return info
}

// extractWithRef is extract plus the emitted reference itself, for callers
// that need to hand it to the method-call parameter stack (spec.md §4.2) —
// a ConstructorCall reference is a call just as much as a MethodCall one.
func (t *typeExtractor) extractWithRef(n *parsetree.Node, ctx reference.Context) (*symbol.TypeInfo, *reference.SymbolReference) {
	return t.extractDepth(n, ctx, ctx, 0)
}

// extractDepth is extractWithRef's recursive core. rootCtx is the context
// of the outermost call (held constant through nested generic-argument
// extraction) and is the "parentContext" spec.md §4.4 dedups generic-arg
// references by; ctx is the context this particular node's own reference
// is emitted with (rootCtx for the top-level type, GENERIC_PARAMETER_TYPE
// for every nested argument). depth counts levels of generic nesting.
func (t *typeExtractor) extractDepth(n *parsetree.Node, ctx, rootCtx reference.Context, depth int) (*symbol.TypeInfo, *reference.SymbolReference) {
	if n == nil {
		return symbol.Void(), nil
	}
	name := n.Text
	canonical := name
	args := n.ChildrenWithRole(parsetree.RoleGenericArg)
	if coll, ok := collectionArity[normalizeClassName(name)]; ok {
		canonical = coll.canonical
		if len(args) != coll.arity {
			t.reportArity(n, canonical, coll.arity, len(args))
		}
	}

	info := &symbol.TypeInfo{
		Name:               canonical,
		OriginalTypeString: n.Text,
		IsArray:            n.HasModifier("array"),
	}
	if primitiveTypeNames[normalizeClassName(canonical)] || t.c.opts.isStdlibClass(canonical) {
		info.IsBuiltIn = true
	}

	if len(args) > 0 {
		if depth >= maxGenericNestingDepth {
			t.reportNestingDepth(n)
		} else {
			for _, arg := range args {
				if t.isDuplicateGenericRef(arg, rootCtx) {
					continue
				}
				param, _ := t.extractDepth(arg, reference.GenericParameterType, rootCtx, depth+1)
				info.TypeParameters = append(info.TypeParameters, param)
			}
		}
	}

	if ctx != "" {
		ref := &reference.SymbolReference{
			Name:     name,
			Location: n.Location,
			Context:  ctx,
		}
		t.c.emitReference(ref)
		info.TypeReferenceID = ref.ID
		return info, ref
	}

	return info, nil
}

// isDuplicateGenericRef reports whether a GENERIC_PARAMETER_TYPE reference
// for arg under rootCtx was already emitted, recording it if not (spec.md
// §4.4: "deduplicated by (name, location, parentContext)").
func (t *typeExtractor) isDuplicateGenericRef(arg *parsetree.Node, rootCtx reference.Context) bool {
	key := fmt.Sprintf("%s|%s|%s", arg.Text, arg.Location.IdentifierRange.Start, rootCtx)
	if t.seen[key] {
		return true
	}
	t.seen[key] = true
	return false
}

func (t *typeExtractor) reportArity(n *parsetree.Node, canonical string, want, got int) {
	pos := n.Location.IdentifierRange.Start
	t.c.table.AddDiagnostic(diagnostics.New(
		diagnostics.SeverityError, t.c.table.GetFileURI(), pos.Line, pos.Column,
		"%s requires %d type argument(s), got %d", canonical, want, got,
	))
}

func (t *typeExtractor) reportNestingDepth(n *parsetree.Node) {
	pos := n.Location.IdentifierRange.Start
	t.c.table.AddDiagnostic(diagnostics.New(
		diagnostics.SeverityError, t.c.table.GetFileURI(), pos.Line, pos.Column,
		"parameterized type %q nests deeper than the maximum depth of %d", n.Text, maxGenericNestingDepth,
	))
}
