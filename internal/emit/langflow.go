package emit

import (
	"encoding/json"

	"github.com/promptdeck/recipec/internal/diag"
)

// Layout spacing between topological ranks and lanes, in canvas units.
const (
	rankSpacing = 320
	laneSpacing = 160
)

// langFlowDocument is the visual-flow encoding: the generic node/edge
// payload plus a 2-D position per node so the document opens as a laid-out
// canvas.
type langFlowDocument struct {
	Recipe string         `json:"recipe"`
	Name   string         `json:"name,omitempty"`
	Nodes  []langFlowNode `json:"nodes"`
	Edges  []langFlowEdge `json:"edges"`
}

type langFlowNode struct {
	ID        string                     `json:"id"`
	Kind      string                     `json:"kind"`
	Tool      *toolRef                   `json:"tool,omitempty"`
	Position  position                   `json:"position"`
	Arguments map[string]json.RawMessage `json:"arguments,omitempty"`
}

type position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type langFlowEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// emitLangFlow produces the visual document. Positions are a pure function
// of the graph: a node's column is its topological depth and its row is its
// lane within that depth, assigned in execution order. Arbitrary placement
// would break the byte-identical-output guarantee.
func emitLangFlow(in *Input) (json.RawMessage, diag.Diagnostics, error) {
	depthOf := depths(in)
	laneOf := make(map[string]int, len(in.Order))
	nextLane := make(map[int]int)
	for _, id := range in.Order {
		d := depthOf[id]
		laneOf[id] = nextLane[d]
		nextLane[d]++
	}

	doc := langFlowDocument{
		Recipe: in.Recipe.ID,
		Name:   in.Recipe.Metadata.Name,
		Nodes:  make([]langFlowNode, 0, len(in.Order)),
		Edges:  make([]langFlowEdge, 0),
	}

	for _, step := range orderedSteps(in) {
		doc.Nodes = append(doc.Nodes, langFlowNode{
			ID:   step.ID,
			Kind: string(step.Kind),
			Tool: bindingRef(in, step.ID),
			Position: position{
				X: depthOf[step.ID] * rankSpacing,
				Y: laneOf[step.ID] * laneSpacing,
			},
			Arguments: marshalArguments(step.Arguments),
		})
	}

	for _, edge := range in.Graph.Edges() {
		doc.Edges = append(doc.Edges, langFlowEdge{
			Source: edge.Dependency,
			Target: edge.Dependent,
		})
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, err
	}
	return encoded, nil, nil
}
