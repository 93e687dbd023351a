// Package diag defines the diagnostics carried through a compilation. A
// compilation problem is data, not a Go error: every stage appends to a
// Diagnostics list and the facade renders the list into the final result,
// so callers can show problems to end users verbatim.
package diag

import "fmt"

// Severity distinguishes fatal problems from advisory ones.
type Severity int

const (
	// Error marks a fatal problem. A compilation with at least one Error
	// diagnostic produces no document.
	Error Severity = iota
	// Warning marks a non-fatal problem. Compilation proceeds and the
	// warning travels with the result.
	Warning
)

// Code identifies the class of a diagnostic. The set is closed; stages
// never invent ad hoc codes.
type Code string

const (
	DuplicateStepID         Code = "DuplicateStepId"
	UnknownStepReference    Code = "UnknownStepReference"
	CycleDetected           Code = "CycleDetected"
	EmptyRecipe             Code = "EmptyRecipe"
	ToolNotFound            Code = "ToolNotFound"
	ToolUnhealthy           Code = "ToolUnhealthy"
	UnsupportedStepType     Code = "UnsupportedStepType"
	FormatIncompatibleGraph Code = "FormatIncompatibleGraph"
	UnsupportedFormat       Code = "UnsupportedFormat"
)

// Diagnostic is a single problem found during compilation.
type Diagnostic struct {
	Severity Severity
	Code     Code
	// Detail is the human-readable description, already formatted with the
	// subject ids involved.
	Detail string
}

// String renders the diagnostic as "<Code>: <detail>". This is the exact
// form exposed in compilation results.
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Detail)
}

// Diagnostics is an ordered collection of problems. Order is meaningful:
// stages append in deterministic (declaration or topological) order so the
// rendered lists are stable across runs.
type Diagnostics []*Diagnostic

// Errorf appends a fatal diagnostic and returns the extended list.
func (d Diagnostics) Errorf(code Code, format string, args ...any) Diagnostics {
	return append(d, &Diagnostic{
		Severity: Error,
		Code:     code,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning diagnostic and returns the extended list.
func (d Diagnostics) Warnf(code Code, format string, args ...any) Diagnostics {
	return append(d, &Diagnostic{
		Severity: Warning,
		Code:     code,
		Detail:   fmt.Sprintf(format, args...),
	})
}

// Extend appends all diagnostics from other, preserving order.
func (d Diagnostics) Extend(other Diagnostics) Diagnostics {
	return append(d, other...)
}

// HasErrors reports whether the list contains at least one fatal diagnostic.
func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity == Error {
			return true
		}
	}
	return false
}

// Errors renders every fatal diagnostic, in order.
func (d Diagnostics) Errors() []string {
	return d.render(Error)
}

// Warnings renders every warning diagnostic, in order.
func (d Diagnostics) Warnings() []string {
	return d.render(Warning)
}

func (d Diagnostics) render(sev Severity) []string {
	var out []string
	for _, diag := range d {
		if diag.Severity == sev {
			out = append(out, diag.String())
		}
	}
	return out
}
