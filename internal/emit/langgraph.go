package emit

import (
	"encoding/json"
	"fmt"

	"github.com/promptdeck/recipec/internal/diag"
	"github.com/promptdeck/recipec/internal/recipe"
)

// langGraphDocument is the graph encoding: nodes carry a handler reference
// the target runtime binds at load, edges carry conditional-routing metadata
// when their source is a branch step.
type langGraphDocument struct {
	Recipe     string          `json:"recipe"`
	Name       string          `json:"name,omitempty"`
	EntryPoint string          `json:"entry_point,omitempty"`
	Nodes      []langGraphNode `json:"nodes"`
	Edges      []langGraphEdge `json:"edges"`
}

type langGraphNode struct {
	ID        string                     `json:"id"`
	Handler   string                     `json:"handler"`
	Arguments map[string]json.RawMessage `json:"arguments,omitempty"`
}

// langGraphEdge points in execution-flow direction: source runs before
// target. Conditional is set when the source step routes dynamically.
type langGraphEdge struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Conditional bool   `json:"conditional,omitempty"`
	RouteLabel  string `json:"route_label,omitempty"`
}

// emitLangGraph produces the graph document. Handler references: tool_call
// steps bind their catalog tool and branch steps bind a router. A transform
// step has no external callable the target runtime could bind, so it maps to
// a pass-through node with a warning.
func emitLangGraph(in *Input) (json.RawMessage, diag.Diagnostics, error) {
	var diags diag.Diagnostics

	doc := langGraphDocument{
		Recipe: in.Recipe.ID,
		Name:   in.Recipe.Metadata.Name,
		Nodes:  make([]langGraphNode, 0, len(in.Order)),
		Edges:  make([]langGraphEdge, 0),
	}
	if len(in.Order) > 0 {
		doc.EntryPoint = in.Order[0]
	}

	for _, step := range orderedSteps(in) {
		var handler string
		switch step.Kind {
		case recipe.KindToolCall:
			handler = fmt.Sprintf("tool:%s", step.ToolID)
		case recipe.KindBranch:
			handler = fmt.Sprintf("router:%s", step.ID)
		default:
			handler = "passthrough"
			diags = diags.Warnf(diag.UnsupportedStepType,
				"step %q has kind %q, which the %s format cannot represent natively; emitted as a pass-through node", step.ID, step.Kind, LangGraph)
		}

		doc.Nodes = append(doc.Nodes, langGraphNode{
			ID:        step.ID,
			Handler:   handler,
			Arguments: marshalArguments(step.Arguments),
		})
	}

	for _, edge := range in.Graph.Edges() {
		out := langGraphEdge{
			Source: edge.Dependency,
			Target: edge.Dependent,
		}
		if source, ok := in.Graph.Step(edge.Dependency); ok && source.Kind == recipe.KindBranch {
			out.Conditional = true
			out.RouteLabel = edge.Dependent
		}
		doc.Edges = append(doc.Edges, out)
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, diags, err
	}
	return encoded, diags, nil
}
