// Package resolve attaches catalog tool descriptors to the steps that
// reference them. It is pure: the snapshot is supplied by the caller, so the
// resolver does no I/O and is testable with fixed fixtures.
package resolve

import (
	"github.com/promptdeck/recipec/internal/catalog"
	"github.com/promptdeck/recipec/internal/diag"
	"github.com/promptdeck/recipec/internal/recipe"
)

// Bindings maps step id to the resolved tool. Steps without a tool
// reference have no entry; they pass through unresolved, which is valid for
// non-tool step kinds.
type Bindings map[string]*catalog.Tool

// Tools resolves every tool-referencing step against the snapshot. A
// missing tool is fatal: a step cannot be emitted without knowing what it
// calls. A tool that resolved but is not healthy is only a warning; the
// consumer of the compiled artifact decides whether to execute anyway.
// Diagnostics are appended in the order steps are given, so passing the
// validated execution order keeps output deterministic.
func Tools(steps []*recipe.Step, snapshot catalog.Snapshot) (Bindings, diag.Diagnostics) {
	var diags diag.Diagnostics

	bindings := make(Bindings)
	for _, step := range steps {
		if step.ToolID == "" {
			continue
		}

		tool, ok := snapshot.Lookup(step.ToolID)
		if !ok {
			diags = diags.Errorf(diag.ToolNotFound,
				"step %q references tool %q, which is not in the catalog snapshot", step.ID, step.ToolID)
			continue
		}

		if tool.Health != catalog.Healthy {
			diags = diags.Warnf(diag.ToolUnhealthy,
				"step %q uses tool %q with health %q", step.ID, step.ToolID, tool.Health)
		}
		bindings[step.ID] = tool
	}

	return bindings, diags
}
