package dag

import (
	"github.com/promptdeck/recipec/internal/diag"
	"github.com/promptdeck/recipec/internal/recipe"
)

// Build constructs the dependency graph for a recipe. The only fatal problem
// at this stage is a duplicated step id: with ambiguous ids there is no
// well-defined node set, so Build returns nil and the diagnostics. Dangling
// depends_on references are recorded on the graph and reported by Validate.
func Build(r *recipe.Recipe) (*Graph, diag.Diagnostics) {
	var diags diag.Diagnostics

	seen := make(map[string]int, len(r.Steps))
	for _, step := range r.Steps {
		seen[step.ID]++
	}
	for _, step := range r.Steps {
		// Report each duplicated id once, at its first occurrence.
		if n := seen[step.ID]; n > 1 {
			diags = diags.Errorf(diag.DuplicateStepID,
				"step id %q is declared %d times; step ids must be unique within a recipe", step.ID, n)
			seen[step.ID] = -n
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	g := &Graph{
		steps:      r.Steps,
		index:      make(map[string]int, len(r.Steps)),
		deps:       make([][]int, len(r.Steps)),
		dependents: make([][]int, len(r.Steps)),
	}
	for i, step := range r.Steps {
		g.index[step.ID] = i
	}

	for i, step := range r.Steps {
		added := make(map[int]struct{}, len(step.DependsOn))
		for _, ref := range step.DependsOn {
			target, ok := g.index[ref]
			if !ok {
				g.missing = append(g.missing, missingRef{stepID: step.ID, ref: ref})
				continue
			}
			// Duplicate depends_on entries collapse to a single edge. A
			// self-reference still becomes an edge: Validate reports it as
			// the one-step cycle it is.
			if _, dup := added[target]; dup {
				continue
			}
			added[target] = struct{}{}
			g.deps[i] = append(g.deps[i], target)
			g.dependents[target] = append(g.dependents[target], i)
		}
	}

	return g, nil
}
