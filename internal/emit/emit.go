// Package emit translates a validated, ordered, tool-resolved graph into one
// of the supported target workflow documents. Emitters are pure functions:
// same input, byte-identical document. Document structs use only slices and
// json.RawMessage values, so nothing depends on map iteration order.
package emit

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/promptdeck/recipec/internal/dag"
	"github.com/promptdeck/recipec/internal/diag"
	"github.com/promptdeck/recipec/internal/recipe"
	"github.com/promptdeck/recipec/internal/resolve"
)

// Input is everything an emitter consumes: the recipe (for metadata and
// declaration order), its validated graph, the derived execution order, and
// the resolved tool bindings.
type Input struct {
	Recipe   *recipe.Recipe
	Graph    *dag.Graph
	Order    []string
	Bindings resolve.Bindings
}

// Emit dispatches to the emitter for the requested format. Diagnostics carry
// format-level compilation problems; the error return is reserved for
// internal encoding failures and does not occur for well-formed input.
func Emit(format Format, in *Input) (json.RawMessage, diag.Diagnostics, error) {
	switch format {
	case Generic:
		return emitGeneric(in)
	case LangChain:
		return emitLangChain(in)
	case LangGraph:
		return emitLangGraph(in)
	case LangFlow:
		return emitLangFlow(in)
	default:
		return nil, nil, fmt.Errorf("no emitter registered for format %q", format)
	}
}

// toolRef is the tool binding embedded in emitted nodes.
type toolRef struct {
	ID     string   `json:"id"`
	Tags   []string `json:"tags,omitempty"`
	Health string   `json:"health"`
}

// bindingRef converts a resolved binding for a step, or nil when the step
// calls no tool.
func bindingRef(in *Input, stepID string) *toolRef {
	tool, ok := in.Bindings[stepID]
	if !ok {
		return nil
	}
	return &toolRef{
		ID:     tool.ID,
		Tags:   sortedTags(tool.Tags),
		Health: string(tool.Health),
	}
}

// orderedSteps returns the recipe's steps in execution order.
func orderedSteps(in *Input) []*recipe.Step {
	steps := make([]*recipe.Step, 0, len(in.Order))
	for _, id := range in.Order {
		if step, ok := in.Graph.Step(id); ok {
			steps = append(steps, step)
		}
	}
	return steps
}

// marshalArguments encodes a step's evaluated argument values. Keys are
// emitted in sorted order by encoding/json's map handling, so the result is
// deterministic. Arguments are statically evaluated literals; a value that
// still fails to encode degrades to JSON null rather than failing the whole
// artifact.
func marshalArguments(args map[string]cty.Value) map[string]json.RawMessage {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]json.RawMessage, len(args))
	for name, val := range args {
		encoded, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			encoded = json.RawMessage("null")
		}
		out[name] = encoded
	}
	return out
}

// depths computes each node's topological depth: 0 for steps with no
// dependencies, otherwise one past the deepest dependency. Walking the
// validated order guarantees dependencies are computed first.
func depths(in *Input) map[string]int {
	out := make(map[string]int, len(in.Order))
	for _, id := range in.Order {
		depth := 0
		deps, _ := in.Graph.Dependencies(id)
		for _, dep := range deps {
			if d := out[dep] + 1; d > depth {
				depth = d
			}
		}
		out[id] = depth
	}
	return out
}

// sortedTags returns a copy of tags in stable order for emission.
func sortedTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	sort.Strings(out)
	return out
}
