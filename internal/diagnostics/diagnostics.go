// Package diagnostics renders the semantic errors and warnings the collector
// and resolver accumulate. The formatting (source line plus caret) is
// adapted from the teacher's internal/errors.CompilerError, generalized from
// a single error type to the Severity-tagged Diagnostic shape spec.md §6.4
// requires.
package diagnostics

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic. The core never produces anything more
// severe than Error: a genuinely corrupt input (no parser root) is handled
// by returning an empty table, not by a diagnostic (spec.md §7).
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one semantic error or warning, always tagged Type "semantic"
// per spec.md §6.4.
type Diagnostic struct {
	Severity Severity
	Message  string
	Line     int
	Column   int
	FileURI  string
	Type     string
}

// New builds a semantic Diagnostic at the given 1-based line / 0-based
// column.
func New(severity Severity, fileURI string, line, column int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   column,
		FileURI:  fileURI,
		Type:     "semantic",
	}
}

// Error formats d as "severity: message at fileURI:line:column", the form
// used when diagnostics are surfaced as Go errors.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s at %s:%d:%d", d.Severity, d.Message, d.FileURI, d.Line, d.Column)
}

// Format renders d with a source-line-and-caret pointer beneath it, the way
// the teacher's CompilerError.Format does, generalized to this package's
// Severity tag instead of a fixed "Error" header.
func (d Diagnostic) Format(source string) string {
	var sb strings.Builder

	header := "Error"
	if d.Severity == SeverityWarning {
		header = "Warning"
	}
	if d.FileURI != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d: %s\n", header, d.FileURI, d.Line, d.Column, d.Message)
	} else {
		fmt.Fprintf(&sb, "%s at %d:%d: %s\n", header, d.Line, d.Column, d.Message)
	}

	line := sourceLine(source, d.Line)
	if line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Column))
		sb.WriteString("^")
	}

	return sb.String()
}

func sourceLine(source string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll formats every diagnostic in order, separated by blank lines.
func FormatAll(diags []Diagnostic, source string) string {
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = d.Format(source)
	}
	return strings.Join(parts, "\n\n")
}

// HasErrors reports whether diags contains any Error-severity entry.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
