package emit

import (
	"encoding/json"

	"github.com/promptdeck/recipec/internal/diag"
	"github.com/promptdeck/recipec/internal/recipe"
)

// langChainDocument is the linear-chain encoding: an ordered list of chain
// entries executed strictly one after another.
type langChainDocument struct {
	Recipe    string           `json:"recipe"`
	Name      string           `json:"name,omitempty"`
	ChainType string           `json:"chain_type"`
	Steps     []langChainEntry `json:"steps"`
}

type langChainEntry struct {
	ID        string                     `json:"id"`
	Kind      string                     `json:"kind"`
	Tool      *toolRef                   `json:"tool,omitempty"`
	Arguments map[string]json.RawMessage `json:"arguments,omitempty"`
}

// emitLangChain requires the graph to reduce to a sequential chain. A
// genuine fork or join cannot be represented without dropping edges, and a
// silently-linearized workflow that skips a branch is a correctness hazard,
// so that case is fatal rather than degraded. Independent sub-chains are
// fine: they concatenate into an explicit sequential grouping following the
// execution order.
func emitLangChain(in *Input) (json.RawMessage, diag.Diagnostics, error) {
	var diags diag.Diagnostics

	for _, id := range in.Graph.Nodes() {
		deps, _ := in.Graph.Dependencies(id)
		if len(deps) > 1 {
			diags = diags.Errorf(diag.FormatIncompatibleGraph,
				"step %q joins %d dependencies; the %s format cannot represent non-linear graphs", id, len(deps), LangChain)
		}
		dependents, _ := in.Graph.Dependents(id)
		if len(dependents) > 1 {
			diags = diags.Errorf(diag.FormatIncompatibleGraph,
				"step %q forks into %d dependents; the %s format cannot represent non-linear graphs", id, len(dependents), LangChain)
		}
	}
	if diags.HasErrors() {
		return nil, diags, nil
	}

	doc := langChainDocument{
		Recipe:    in.Recipe.ID,
		Name:      in.Recipe.Metadata.Name,
		ChainType: "sequential",
		Steps:     make([]langChainEntry, 0, len(in.Order)),
	}

	for _, step := range orderedSteps(in) {
		kind := string(step.Kind)
		if step.Kind == recipe.KindBranch {
			// A sequential chain has no conditional primitive; the step
			// degrades to a pass-through link.
			kind = "passthrough"
			diags = diags.Warnf(diag.UnsupportedStepType,
				"step %q has kind %q, which the %s format cannot represent natively; emitted as a pass-through entry", step.ID, step.Kind, LangChain)
		}
		doc.Steps = append(doc.Steps, langChainEntry{
			ID:        step.ID,
			Kind:      kind,
			Tool:      bindingRef(in, step.ID),
			Arguments: marshalArguments(step.Arguments),
		})
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, diags, err
	}
	return encoded, diags, nil
}
