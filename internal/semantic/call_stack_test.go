package semantic

import (
	"testing"

	"github.com/apex-lang-tools/symbol-core/internal/reference"
)

// A call's own reference accumulates the parameter references recorded
// while its frame was the innermost open one, attached on Pop
// (spec.md §4.2).
func TestCallStackAttachesParameterRefsOnPop(t *testing.T) {
	cs := NewCallStack()
	callRef := &reference.SymbolReference{Name: "foo", Context: reference.MethodCall}

	cs.Push("foo", callRef)
	arg1 := &reference.SymbolReference{Name: "x"}
	arg2 := &reference.SymbolReference{Name: "y"}
	cs.RecordParam(arg1)
	cs.RecordParam(arg2)
	cs.Pop()

	if len(callRef.ParameterRefs) != 2 || callRef.ParameterRefs[0] != arg1 || callRef.ParameterRefs[1] != arg2 {
		t.Fatalf("callRef.ParameterRefs = %+v, want [x, y] in order", callRef.ParameterRefs)
	}
	if cs.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0 after Pop", cs.Depth())
	}
}

// Nested calls attribute their own reference, created before their frame
// is pushed, to the enclosing frame's parameter list — the mechanism
// scenario 4 (spec.md §8) relies on for "a.b(c.d(e))".
func TestCallStackNestedCallBecomesParentParameter(t *testing.T) {
	cs := NewCallStack()
	outerRef := &reference.SymbolReference{Name: "b", Context: reference.MethodCall}
	cs.Push("b", outerRef)

	innerRef := &reference.SymbolReference{Name: "d", Context: reference.MethodCall}
	cs.RecordParam(innerRef) // emitted before the inner Push, as collectBareCall/collectStep do
	cs.Push("d", innerRef)
	argRef := &reference.SymbolReference{Name: "e"}
	cs.RecordParam(argRef)
	cs.Pop() // closes d

	if len(innerRef.ParameterRefs) != 1 || innerRef.ParameterRefs[0] != argRef {
		t.Fatalf("innerRef.ParameterRefs = %+v, want [e]", innerRef.ParameterRefs)
	}

	cs.Pop() // closes b
	found := false
	for _, p := range outerRef.ParameterRefs {
		if p == innerRef {
			found = true
		}
	}
	if !found {
		t.Errorf("outerRef.ParameterRefs = %+v, want to contain innerRef", outerRef.ParameterRefs)
	}
}

// ForControlList/runAs operand-list frames are excluded from parameter
// collection entirely: references recorded while they are the innermost
// frame are dropped, not attributed to any call (spec.md §4.2's carve-out).
func TestCallStackExcludedFrameDropsRecordedParams(t *testing.T) {
	cs := NewCallStack()
	cs.PushExcluded("for")
	cs.RecordParam(&reference.SymbolReference{Name: "i"})
	if cs.InCall() {
		t.Error("InCall() = true with only an excluded frame open, want false")
	}
	cs.Pop()
	if cs.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", cs.Depth())
	}
}

// Popping more times than pushed is a no-op, matching the defensive
// cleanup spec.md §7 requires for stack-inconsistency recovery.
func TestCallStackPopOnEmptyStackIsNoOp(t *testing.T) {
	cs := NewCallStack()
	cs.Pop()
	if cs.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", cs.Depth())
	}
}
