package diagnostics

import (
	"strings"
	"testing"
)

func TestNewAndError(t *testing.T) {
	d := New(SeverityError, "file:///Foo.cls", 3, 7, "duplicate %s %q", "method", "bar")
	if d.Type != "semantic" {
		t.Errorf("Type = %q, want %q", d.Type, "semantic")
	}
	if want := `duplicate method "bar"`; d.Message != want {
		t.Errorf("Message = %q, want %q", d.Message, want)
	}
	got := d.Error()
	if !strings.Contains(got, "file:///Foo.cls:3:7") {
		t.Errorf("Error() = %q, expected it to contain the file position", got)
	}
}

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	d := New(SeverityWarning, "file:///Foo.cls", 2, 4, "unused variable %q", "x")
	src := "class Foo {\n  String x;\n}\n"

	out := d.Format(src)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("Format() produced %d lines, want at least 3: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "Warning") {
		t.Errorf("first line = %q, want it to announce a Warning", lines[0])
	}
	if !strings.Contains(lines[1], "String x;") {
		t.Errorf("second line = %q, want the source line rendered", lines[1])
	}
	if !strings.HasSuffix(lines[2], "^") {
		t.Errorf("third line = %q, want a trailing caret", lines[2])
	}
}

func TestFormatOutOfRangeLineOmitsSourceContext(t *testing.T) {
	d := New(SeverityError, "", 99, 0, "boom")
	out := d.Format("one line only")
	if strings.Contains(out, "^") {
		t.Errorf("Format() with an out-of-range line should not render a caret: %q", out)
	}
}

func TestFormatAllJoinsWithBlankLine(t *testing.T) {
	diags := []Diagnostic{
		New(SeverityError, "a.cls", 1, 0, "first"),
		New(SeverityError, "a.cls", 2, 0, "second"),
	}
	out := FormatAll(diags, "x\ny\n")
	if !strings.Contains(out, "\n\n") {
		t.Errorf("FormatAll() = %q, want diagnostics separated by a blank line", out)
	}
}

func TestHasErrors(t *testing.T) {
	noErrors := []Diagnostic{New(SeverityWarning, "a.cls", 1, 0, "warn")}
	if HasErrors(noErrors) {
		t.Error("HasErrors() true for warning-only list")
	}

	withError := append(noErrors, New(SeverityError, "a.cls", 2, 0, "bad"))
	if !HasErrors(withError) {
		t.Error("HasErrors() false despite an error-severity diagnostic")
	}
}
