package dag

import "github.com/promptdeck/recipec/internal/recipe"

// Graph is the adjacency structure over a recipe's steps. Steps are held in
// an arena in declaration order and referenced by index; string ids only
// appear at the API boundary.
type Graph struct {
	// steps is the arena, in declaration order.
	steps []*recipe.Step
	// index maps step id to its arena position.
	index map[string]int
	// deps[i] lists the arena positions step i depends on, in declared
	// order with duplicate edges collapsed.
	deps [][]int
	// dependents[i] lists the arena positions that depend on step i, in
	// the dependents' declaration order.
	dependents [][]int
	// missing records depends_on references to ids that are not nodes.
	// They are reported by Validate, not here.
	missing []missingRef
}

// missingRef is a dangling depends_on entry.
type missingRef struct {
	stepID string
	ref    string
}

// Edge is one dependency constraint: Dependent must run after Dependency.
type Edge struct {
	Dependent  string
	Dependency string
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.steps)
}

// Nodes enumerates every step id in declaration order.
func (g *Graph) Nodes() []string {
	ids := make([]string, len(g.steps))
	for i, step := range g.steps {
		ids[i] = step.ID
	}
	return ids
}

// Edges enumerates every dependency edge, ordered by the dependent's
// declaration position and then by the declared order of its dependencies.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for i, step := range g.steps {
		for _, dep := range g.deps[i] {
			edges = append(edges, Edge{
				Dependent:  step.ID,
				Dependency: g.steps[dep].ID,
			})
		}
	}
	return edges
}

// Step returns the step with the given id, if it is a node.
func (g *Graph) Step(id string) (*recipe.Step, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.steps[i], true
}

// Dependencies returns the ids the given step depends on, in declared order.
func (g *Graph) Dependencies(id string) ([]string, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.idsOf(g.deps[i]), true
}

// Dependents returns the ids of steps that depend on the given step, in
// their declaration order.
func (g *Graph) Dependents(id string) ([]string, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.idsOf(g.dependents[i]), true
}

func (g *Graph) idsOf(indexes []int) []string {
	ids := make([]string, len(indexes))
	for i, idx := range indexes {
		ids[i] = g.steps[idx].ID
	}
	return ids
}
