// Package compiler is the single entry point for recipe compilation. It
// orchestrates graph construction, validation, tool resolution, and emission
// and aggregates everything into one Result. Compilation is a deterministic,
// pure computation over immutable inputs: nothing is retried, nothing is
// cached, and concurrent calls need no coordination.
package compiler

import (
	"context"

	"github.com/promptdeck/recipec/internal/catalog"
	"github.com/promptdeck/recipec/internal/ctxlog"
	"github.com/promptdeck/recipec/internal/dag"
	"github.com/promptdeck/recipec/internal/diag"
	"github.com/promptdeck/recipec/internal/emit"
	"github.com/promptdeck/recipec/internal/recipe"
	"github.com/promptdeck/recipec/internal/resolve"
)

// Compile translates a recipe into the requested target format using the
// supplied catalog snapshot. The snapshot is fetched by the caller before
// this call; compilation itself never does I/O.
//
// Failure semantics: structural problems (duplicate ids, unknown references,
// cycles) abort before tool resolution, tool problems abort before emission,
// and no partial document is ever returned alongside fatal errors. All
// problems come back as data inside the Result, never as a Go error.
func Compile(ctx context.Context, r *recipe.Recipe, snapshot catalog.Snapshot, format string) *Result {
	logger := ctxlog.FromContext(ctx)

	target, ok := emit.ParseFormat(format)
	if !ok {
		var diags diag.Diagnostics
		diags = diags.Errorf(diag.UnsupportedFormat,
			"format %q is not supported (supported: %v)", format, emit.Formats())
		return newResult(format, nil, diags)
	}

	logger.Debug("Compilation started.", "recipe", r.ID, "format", target, "steps", len(r.Steps))

	graph, diags := dag.Build(r)
	if diags.HasErrors() {
		logger.Debug("Graph construction failed.", "recipe", r.ID, "errors", len(diags.Errors()))
		return newResult(format, nil, diags)
	}

	order, validateDiags := graph.Validate()
	diags = diags.Extend(validateDiags)
	if diags.HasErrors() {
		logger.Debug("Graph validation failed.", "recipe", r.ID, "errors", len(diags.Errors()))
		return newResult(format, nil, diags)
	}

	// Resolve against the execution order so diagnostics come out in a
	// stable sequence.
	steps := make([]*recipe.Step, 0, len(order))
	for _, id := range order {
		if step, ok := graph.Step(id); ok {
			steps = append(steps, step)
		}
	}
	bindings, resolveDiags := resolve.Tools(steps, snapshot)
	diags = diags.Extend(resolveDiags)
	if diags.HasErrors() {
		logger.Debug("Tool resolution failed.", "recipe", r.ID, "errors", len(diags.Errors()))
		return newResult(format, nil, diags)
	}

	document, emitDiags, err := emit.Emit(target, &emit.Input{
		Recipe:   r,
		Graph:    graph,
		Order:    order,
		Bindings: bindings,
	})
	if err != nil {
		// An encoding failure of our own document structs is a bug, not a
		// property of the recipe. Surface it as a fatal diagnostic so the
		// caller still gets a well-formed Result.
		logger.Error("Emitter failed to encode document.", "recipe", r.ID, "format", target, "error", err)
		diags = diags.Errorf(diag.UnsupportedFormat, "internal: failed to encode %s document: %v", target, err)
		return newResult(format, nil, diags)
	}
	diags = diags.Extend(emitDiags)
	if diags.HasErrors() {
		return newResult(format, nil, diags)
	}

	logger.Debug("Compilation succeeded.", "recipe", r.ID, "format", target, "warnings", len(diags.Warnings()))
	return newResult(format, document, diags)
}
