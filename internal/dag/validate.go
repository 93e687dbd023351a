package dag

import (
	"strings"

	"github.com/promptdeck/recipec/internal/diag"
)

// Validate proves the graph is well-formed and derives the execution order.
// It returns either a usable topological order or fatal diagnostics, never
// both. An empty graph is valid: it yields an empty order and an EmptyRecipe
// warning, since an empty recipe is a legitimate authoring placeholder.
func (g *Graph) Validate() ([]string, diag.Diagnostics) {
	var diags diag.Diagnostics

	if len(g.missing) > 0 {
		for _, m := range g.missing {
			diags = diags.Errorf(diag.UnknownStepReference,
				"step %q depends on %q, which is not a step in this recipe", m.stepID, m.ref)
		}
		return nil, diags
	}

	if len(g.steps) == 0 {
		diags = diags.Warnf(diag.EmptyRecipe, "recipe has no steps")
		return []string{}, diags
	}

	// Kahn's algorithm. The ready set is drained lowest declaration index
	// first, which makes the order deterministic and independent of how the
	// ready candidates were discovered.
	indegree := make([]int, len(g.steps))
	for i := range g.steps {
		indegree[i] = len(g.deps[i])
	}

	var ready []int
	for i := range g.steps {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]string, 0, len(g.steps))
	ordered := make([]bool, len(g.steps))
	for len(ready) > 0 {
		next := popMin(&ready)
		ordered[next] = true
		order = append(order, g.steps[next].ID)

		for _, dep := range g.dependents[next] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) < len(g.steps) {
		cycle := g.findCycle(ordered)
		diags = diags.Errorf(diag.CycleDetected,
			"dependency cycle: %s", strings.Join(append(cycle, cycle[0]), " -> "))
		return nil, diags
	}

	return order, diags
}

// popMin removes and returns the smallest index in the ready set. The set
// stays small in practice, so a linear scan beats maintaining a heap.
func popMin(ready *[]int) int {
	s := *ready
	minAt := 0
	for i := 1; i < len(s); i++ {
		if s[i] < s[minAt] {
			minAt = i
		}
	}
	min := s[minAt]
	s[minAt] = s[len(s)-1]
	*ready = s[:len(s)-1]
	return min
}

// findCycle extracts one concrete cycle from the nodes Kahn's algorithm
// could not order. Every such node has at least one unordered dependency, so
// walking unordered dependencies must eventually revisit a node on the path;
// the path slice from that node onward is the cycle, in dependency-chain
// order. The walk starts from the lowest-index unordered node so the
// reported cycle is deterministic too.
func (g *Graph) findCycle(ordered []bool) []string {
	start := -1
	for i := range g.steps {
		if !ordered[i] {
			start = i
			break
		}
	}

	var path []int
	posInPath := make(map[int]int)
	current := start
	for {
		if at, seen := posInPath[current]; seen {
			cycle := make([]string, 0, len(path)-at)
			for _, idx := range path[at:] {
				cycle = append(cycle, g.steps[idx].ID)
			}
			return cycle
		}
		posInPath[current] = len(path)
		path = append(path, current)

		for _, dep := range g.deps[current] {
			if !ordered[dep] {
				current = dep
				break
			}
		}
	}
}
