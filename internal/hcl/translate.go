package hcl

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/promptdeck/recipec/internal/catalog"
	"github.com/promptdeck/recipec/internal/recipe"
	"github.com/promptdeck/recipec/internal/schema"
)

// translateRecipe converts the HCL-specific recipe schema into the agnostic
// model, preserving step declaration order.
func translateRecipe(s *schema.Recipe) (*recipe.Recipe, error) {
	r := &recipe.Recipe{
		ID:    s.ID,
		Steps: make([]*recipe.Step, 0, len(s.Steps)),
		Metadata: recipe.Metadata{
			Name:       s.Name,
			Complexity: s.Complexity,
		},
	}

	for _, rawStep := range s.Steps {
		step, err := translateStep(rawStep)
		if err != nil {
			return nil, err
		}
		r.Steps = append(r.Steps, step)
	}
	return r, nil
}

// translateStep converts a step block into the model, enforcing the
// kind/tool pairing: only tool_call steps may carry a tool attribute.
func translateStep(s *schema.Step) (*recipe.Step, error) {
	kind, err := recipe.ParseStepKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("step %q: %w", s.ID, err)
	}

	if s.Tool != "" && !kind.UsesTool() {
		return nil, fmt.Errorf("step %q: kind %q does not call a tool, but a tool attribute is set", s.ID, kind)
	}

	args, err := evaluateArguments(s)
	if err != nil {
		return nil, err
	}

	return &recipe.Step{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      kind,
		ToolID:    s.Tool,
		DependsOn: s.DependsOn,
		Arguments: args,
	}, nil
}

// evaluateArguments statically evaluates every attribute of the step's
// arguments block. Recipe arguments are literals; there is no evaluation
// context, so any reference to an outside value is a load error.
func evaluateArguments(s *schema.Step) (map[string]cty.Value, error) {
	if s.Arguments == nil {
		return nil, nil
	}

	attrs, diags := s.Arguments.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("step %q: invalid arguments block: %w", s.ID, diags)
	}

	args := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("step %q: failed to evaluate argument %q: %w", s.ID, name, diags)
		}
		args[name] = val
	}
	return args, nil
}

// translateTool converts a manifest tool block into a catalog descriptor.
func translateTool(s *schema.Tool) (*catalog.Tool, error) {
	health := catalog.Unknown
	if s.Health != "" {
		health = catalog.ParseHealth(s.Health)
		if health == catalog.Unknown && s.Health != string(catalog.Unknown) {
			return nil, fmt.Errorf("invalid health %q (expected healthy, degraded, unhealthy, or unknown)", s.Health)
		}
	}

	return &catalog.Tool{
		ID:     s.ID,
		Tags:   s.Tags,
		Health: health,
	}, nil
}
