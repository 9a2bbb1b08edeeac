package semantic

import (
	"github.com/apex-lang-tools/symbol-core/internal/diagnostics"
	"github.com/apex-lang-tools/symbol-core/internal/reference"
)

// callFrame is one open method call's bookkeeping: its own reference (so
// the accumulated parameter list can be attached to it on Pop) and the
// ordered list of argument references accumulated so far (spec.md §4.2's
// method-call parameter stack).
type callFrame struct {
	name     string
	ref      *reference.SymbolReference
	params   []*reference.SymbolReference
	excluded bool // true for ForControlList/RunAsOperandList pseudo-calls
}

// CallStack tracks the method calls currently being collected, independent
// of ScopeStack: a call's argument list never opens a lexical scope, but the
// collector still needs to know it is inside one (nested calls, like
// a.b(c.d())) to get chain analysis and reference ordering right.
//
// Grounded on the teacher's own call-depth tracking in analyze_method_calls.go,
// generalized to a proper stack since Apex permits arbitrarily nested calls.
type CallStack struct {
	frames []callFrame
}

// NewCallStack returns an empty stack.
func NewCallStack() *CallStack {
	return &CallStack{}
}

// Push opens a new call frame for the named method/constructor. ref is the
// reference that represents the call itself (MethodCall, ConstructorCall,
// or a call-shaped ChainStep); Pop attaches the frame's accumulated
// parameter references to it.
func (c *CallStack) Push(name string, ref *reference.SymbolReference) {
	c.frames = append(c.frames, callFrame{name: name, ref: ref})
}

// PushExcluded opens a frame that looks like a call (a ForControlList or
// RunAsOperandList) but must not count toward InCall for contexts that care
// specifically about method-call argument nesting (spec.md §4.2's for-loop
// and runAs carve-outs).
func (c *CallStack) PushExcluded(name string) {
	c.frames = append(c.frames, callFrame{name: name, excluded: true})
}

// Pop closes the innermost frame, attaching its accumulated parameter
// references to the frame's own call reference (if any) so a caller one
// level up — another call, or nothing — can see the finished parameter
// list (spec.md §4.2: "when a nested call exits, it is popped and appended
// as a parameter to its parent"). Safe to call even if the matching Push
// never happened (e.g. the collector recovered from a panic partway through
// an argument list) — popping an empty stack is a no-op rather than a
// panic, so one malformed call can't cascade into unrelated siblings.
func (c *CallStack) Pop() {
	if len(c.frames) == 0 {
		return
	}
	top := c.frames[len(c.frames)-1]
	if top.ref != nil {
		top.ref.ParameterRefs = top.params
	}
	c.frames = c.frames[:len(c.frames)-1]
}

// RecordParam appends ref to the innermost open, non-excluded frame's
// parameter list. Called from the Collector's single emitReference
// chokepoint so every reference created while a call's argument list is
// being walked — not just the ones the call site remembers to pass along
// explicitly — lands in that call's parameterRefs. Frames for a for-loop's
// control list or a runAs operand list are marked excluded precisely so
// their contents never register as call parameters (spec.md §4.2).
func (c *CallStack) RecordParam(ref *reference.SymbolReference) {
	if len(c.frames) == 0 {
		return
	}
	top := &c.frames[len(c.frames)-1]
	if top.excluded {
		return
	}
	top.params = append(top.params, ref)
}

// InCall reports whether a non-excluded call frame is currently open.
func (c *CallStack) InCall() bool {
	for _, f := range c.frames {
		if !f.excluded {
			return true
		}
	}
	return false
}

// Depth returns the total number of open frames, excluded or not.
func (c *CallStack) Depth() int {
	return len(c.frames)
}

// CurrentCallName returns the innermost non-excluded call's name, or "" if
// none is open.
func (c *CallStack) CurrentCallName() string {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if !c.frames[i].excluded {
			return c.frames[i].name
		}
	}
	return ""
}

// CheckEmpty verifies every frame was popped by the end of collection. A
// non-empty stack means some exit path skipped a Pop; rather than losing the
// diagnostic entirely this records a warning and clears the stack so later
// passes see a clean slate.
func (c *CallStack) CheckEmpty(table *SymbolTable) {
	if len(c.frames) == 0 {
		return
	}
	table.AddDiagnostic(diagnostics.New(
		diagnostics.SeverityWarning,
		table.GetFileURI(),
		1, 0,
		"method-call stack not empty at end of unit (%d frame(s) left open, innermost %q)",
		len(c.frames), c.CurrentCallName(),
	))
	c.frames = nil
}
