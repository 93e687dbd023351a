// Package hcl is the authoring front-end. It discovers .hcl files, parses
// them against the structs in internal/schema, and translates the result
// into the format-agnostic model consumed by the compiler. Everything
// HCL-specific (expressions, diagnostics, evaluation) stays behind this
// package; the compiler core never imports hashicorp/hcl.
package hcl
