// Package recipe provides the format-agnostic, in-memory model of a recipe:
// a directed graph of named steps, each optionally bound to a tool from the
// external catalog. The model is read-only input to compilation; nothing in
// the compiler mutates it.
package recipe

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// StepKind is the closed set of step behaviours. Only KindToolCall steps may
// carry a tool reference; the loaders reject a `tool` attribute on any other
// kind so the invariant holds before compilation begins.
type StepKind string

const (
	// KindToolCall invokes a catalog tool.
	KindToolCall StepKind = "tool_call"
	// KindTransform reshapes the data flowing between steps.
	KindTransform StepKind = "transform"
	// KindBranch routes execution conditionally to its dependents.
	KindBranch StepKind = "branch"
)

// ParseStepKind maps a raw kind tag onto the closed StepKind set.
func ParseStepKind(raw string) (StepKind, error) {
	switch StepKind(raw) {
	case KindToolCall, KindTransform, KindBranch:
		return StepKind(raw), nil
	default:
		return "", fmt.Errorf("unknown step kind %q (expected tool_call, transform, or branch)", raw)
	}
}

// UsesTool reports whether steps of this kind may reference a catalog tool.
func (k StepKind) UsesTool() bool {
	return k == KindToolCall
}

// Step is a single node in a recipe's graph.
type Step struct {
	// ID is unique within the recipe.
	ID   string
	Name string
	Kind StepKind
	// ToolID is the catalog reference; empty for steps that call no tool.
	ToolID string
	// DependsOn lists the ids of steps that must execute before this one.
	DependsOn []string
	// Arguments hold the step's configuration values, already evaluated
	// from their source expressions at load time.
	Arguments map[string]cty.Value
}

// Metadata is descriptive only; it never affects compilation output beyond
// being echoed into emitted documents.
type Metadata struct {
	Name       string
	Complexity string
}

// Recipe is the root of the model. Steps keep their declaration order;
// execution order is derived by validation, never by position here.
type Recipe struct {
	ID       string
	Steps    []*Step
	Metadata Metadata
}

// RequiredTools returns the sorted union of tool ids referenced by the
// recipe's steps, for a single upfront catalog fetch.
func (r *Recipe) RequiredTools() []string {
	seen := make(map[string]struct{})
	for _, step := range r.Steps {
		if step.ToolID != "" {
			seen[step.ToolID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Step returns the step with the given id, if present.
func (r *Recipe) Step(id string) (*Step, bool) {
	for _, step := range r.Steps {
		if step.ID == id {
			return step, true
		}
	}
	return nil, false
}
