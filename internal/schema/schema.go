// Package schema holds the HCL-tagged structs that recipe files and tool
// manifests decode into. These structs mirror the file format exactly; the
// hcl loader translates them into the format-agnostic model before anything
// else touches them.
package schema

import "github.com/hashicorp/hcl/v2"

// --- Recipe files ---

// Arguments represents the content of the 'arguments' block within a step.
// The body is kept raw so the loader can evaluate each attribute expression
// itself.
type Arguments struct {
	Body hcl.Body `hcl:",remain"`
}

// Step represents a `step` block from a recipe file. The first label is the
// step kind tag, the second is the step id.
type Step struct {
	Kind      string     `hcl:"kind,label"`
	ID        string     `hcl:"id,label"`
	Name      string     `hcl:"name,optional"`
	Tool      string     `hcl:"tool,optional"`
	DependsOn []string   `hcl:"depends_on,optional"`
	Arguments *Arguments `hcl:"arguments,block"`
}

// Recipe represents a `recipe` block: metadata plus its step blocks, in
// declaration order.
type Recipe struct {
	ID         string  `hcl:"id,label"`
	Name       string  `hcl:"name,optional"`
	Complexity string  `hcl:"complexity,optional"`
	Steps      []*Step `hcl:"step,block"`
}

// RecipeFile represents the top-level structure of a recipe .hcl file. A
// file may declare any number of recipes.
type RecipeFile struct {
	Recipes []*Recipe `hcl:"recipe,block"`
	Body    hcl.Body  `hcl:",remain"`
}

// --- Tool catalog manifests ---

// Tool represents a `tool` block from a catalog manifest file.
type Tool struct {
	ID     string   `hcl:"id,label"`
	Tags   []string `hcl:"tags,optional"`
	Health string   `hcl:"health,optional"`
}

// CatalogFile represents the top-level structure of a catalog manifest.
type CatalogFile struct {
	Tools []*Tool  `hcl:"tool,block"`
	Body  hcl.Body `hcl:",remain"`
}
