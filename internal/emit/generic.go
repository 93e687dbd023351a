package emit

import (
	"encoding/json"

	"github.com/promptdeck/recipec/internal/diag"
)

// genericDocument is the baseline representation: the full node and edge
// sets plus the derived execution order as an explicit array.
type genericDocument struct {
	Recipe         string        `json:"recipe"`
	Name           string        `json:"name,omitempty"`
	Complexity     string        `json:"complexity,omitempty"`
	Nodes          []genericNode `json:"nodes"`
	Edges          []genericEdge `json:"edges"`
	ExecutionOrder []string      `json:"execution_order"`
}

type genericNode struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name,omitempty"`
	Kind      string                     `json:"kind"`
	Tool      *toolRef                   `json:"tool,omitempty"`
	Arguments map[string]json.RawMessage `json:"arguments,omitempty"`
}

type genericEdge struct {
	Dependent  string `json:"dependent"`
	Dependency string `json:"dependency"`
}

// emitGeneric produces the baseline document. Nodes keep the recipe's
// declaration order; the execution order is carried separately so consumers
// never have to re-derive it.
func emitGeneric(in *Input) (json.RawMessage, diag.Diagnostics, error) {
	doc := genericDocument{
		Recipe:         in.Recipe.ID,
		Name:           in.Recipe.Metadata.Name,
		Complexity:     in.Recipe.Metadata.Complexity,
		Nodes:          make([]genericNode, 0, len(in.Recipe.Steps)),
		Edges:          make([]genericEdge, 0),
		ExecutionOrder: make([]string, 0, len(in.Order)),
	}
	doc.ExecutionOrder = append(doc.ExecutionOrder, in.Order...)

	for _, step := range in.Recipe.Steps {
		doc.Nodes = append(doc.Nodes, genericNode{
			ID:        step.ID,
			Name:      step.Name,
			Kind:      string(step.Kind),
			Tool:      bindingRef(in, step.ID),
			Arguments: marshalArguments(step.Arguments),
		})
	}

	for _, edge := range in.Graph.Edges() {
		doc.Edges = append(doc.Edges, genericEdge{
			Dependent:  edge.Dependent,
			Dependency: edge.Dependency,
		})
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, err
	}
	return encoded, nil, nil
}
