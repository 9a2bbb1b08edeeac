package semantic

import (
	"strings"

	"github.com/apex-lang-tools/symbol-core/internal/symbol"
)

// kindPrefix is the lowercase tag spec.md §6.3's id format embeds for each
// symbol kind.
func kindPrefix(k symbol.Kind) string {
	switch k {
	case symbol.KindClass:
		return "class"
	case symbol.KindInterface:
		return "interface"
	case symbol.KindEnum:
		return "enum"
	case symbol.KindTrigger:
		return "trigger"
	case symbol.KindMethod:
		return "method"
	case symbol.KindConstructor:
		return "constructor"
	case symbol.KindField:
		return "field"
	case symbol.KindProperty:
		return "property"
	case symbol.KindParameter:
		return "parameter"
	case symbol.KindVariable:
		return "variable"
	case symbol.KindEnumValue:
		return "enumvalue"
	case symbol.KindBlock:
		return "block"
	default:
		return strings.ToLower(string(k))
	}
}

// segment renders the single path component a symbol contributes to its
// descendants' scopePath: "<kind-prefix>:<name>".
func segment(k symbol.Kind, name string) string {
	return kindPrefix(k) + ":" + name
}

// buildScopePath returns the ancestor path a child of parent should record
// as its own ScopePath: parent's ScopePath with parent's own final segment
// appended. A nil parent (file-scope root) yields an empty path.
//
// For a Method/Constructor parent this must be the same signature-folded
// segment buildMethodID gave the method itself ("method:name(sig)"), not
// plain "method:name" — otherwise a method-block's id comes out
// "...:method:getValue:block:method_1" instead of
// "...:method:getValue():block:method_1", breaking spec.md §6.3's
// "<methodId>:block:<blockName>" composition and the §8 reconstruction
// invariant (GetCurrentScopePath must reproduce the parent's own id).
func buildScopePath(parent *symbol.Symbol) []string {
	if parent == nil {
		return nil
	}
	path := make([]string, 0, len(parent.ScopePath)+1)
	path = append(path, parent.ScopePath...)
	path = append(path, finalSegment(parent))
	return path
}

// finalSegment renders the path component s itself contributes, matching
// whichever of buildID/buildMethodID was used to build s.ID.
func finalSegment(s *symbol.Symbol) string {
	if s.Kind == symbol.KindMethod || s.Kind == symbol.KindConstructor {
		return methodSegment(s.Kind, s.Name, symbol.ParameterSignature(s.Parameters))
	}
	return segment(s.Kind, s.Name)
}

// methodSegment is the Method/Constructor variant of segment: it folds the
// parameter signature into the path component so two overloads of the same
// name get distinct ids (spec.md §3.6's duplicate-overload rule only fires
// when both name AND signature match; a same-name different-signature pair
// is a legal overload, not a collision).
func methodSegment(k symbol.Kind, name, paramSignature string) string {
	return kindPrefix(k) + ":" + name + "(" + paramSignature + ")"
}

// buildID composes the stable symbol id spec.md §6.3 defines:
// "<fileUri>:<scopePath segments joined by ':'>:<kind-prefix>:<name>".
// Joining the full segment list (ancestor path plus this symbol's own
// segment) in one pass avoids an empty-scopePath double colon at file
// scope. scopePath must already be signature-folded for any Method/
// Constructor ancestor (buildScopePath/finalSegment handle this), which is
// what makes the documented method-block composition
// (<methodId>:block:<blockName>) come out exact: the method's own id ends
// in "method:<name>(<sig>)", and a child block's scopePath carries that
// same folded segment before appending "block:<name>".
func buildID(fileURI string, scopePath []string, k symbol.Kind, name string) string {
	all := make([]string, 0, len(scopePath)+1)
	all = append(all, scopePath...)
	all = append(all, segment(k, name))
	return fileURI + ":" + strings.Join(all, ":")
}

// buildMethodID is buildID's Method/Constructor counterpart, folding the
// parameter signature into the final segment via methodSegment.
func buildMethodID(fileURI string, scopePath []string, k symbol.Kind, name, paramSignature string) string {
	all := make([]string, 0, len(scopePath)+1)
	all = append(all, scopePath...)
	all = append(all, methodSegment(k, name, paramSignature))
	return fileURI + ":" + strings.Join(all, ":")
}
