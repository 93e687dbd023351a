package compiler

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/promptdeck/recipec/internal/diag"
)

// Result is the complete outcome of one compilation. It is produced fresh on
// every call; only the Document is guaranteed byte-identical across
// identical inputs, the ArtifactID is unique per call.
type Result struct {
	ArtifactID string          `json:"artifact_id"`
	Format     string          `json:"format"`
	Success    bool            `json:"success"`
	Document   json.RawMessage `json:"workflow_definition"`
	Warnings   []string        `json:"warnings"`
	Errors     []string        `json:"errors"`
}

// newResult assembles a Result from the accumulated diagnostics. Warnings
// and errors render as non-nil slices so the JSON shape is stable, and a
// document is only attached when there are no fatal diagnostics.
func newResult(format string, document json.RawMessage, diags diag.Diagnostics) *Result {
	errs := diags.Errors()
	if errs == nil {
		errs = []string{}
	}
	warnings := diags.Warnings()
	if warnings == nil {
		warnings = []string{}
	}

	success := len(errs) == 0
	if !success {
		document = nil
	}

	return &Result{
		ArtifactID: uuid.NewString(),
		Format:     format,
		Success:    success,
		Document:   document,
		Warnings:   warnings,
		Errors:     errs,
	}
}
