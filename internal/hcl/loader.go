package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/promptdeck/recipec/internal/catalog"
	"github.com/promptdeck/recipec/internal/ctxlog"
	"github.com/promptdeck/recipec/internal/fsutil"
	"github.com/promptdeck/recipec/internal/recipe"
	"github.com/promptdeck/recipec/internal/schema"
)

// Loader parses recipe files and catalog manifests. A single parser instance
// is reused across files so HCL diagnostics can reference all sources.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a ready-to-use Loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// LoadRecipes finds every .hcl file under the given paths and decodes the
// recipe blocks within, keyed by recipe id. A recipe id declared twice,
// whether in one file or across files, is a load error.
func (l *Loader) LoadRecipes(ctx context.Context, paths ...string) (map[string]*recipe.Recipe, error) {
	logger := ctxlog.FromContext(ctx)

	recipes := make(map[string]*recipe.Recipe)
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find recipe files in %s: %w", path, err)
		}

		for _, file := range files {
			parsed, err := l.decodeRecipeFile(file)
			if err != nil {
				return nil, err
			}
			for _, raw := range parsed.Recipes {
				if _, exists := recipes[raw.ID]; exists {
					return nil, fmt.Errorf("recipe %q declared more than once (last seen in %s)", raw.ID, file)
				}
				translated, err := translateRecipe(raw)
				if err != nil {
					return nil, fmt.Errorf("invalid recipe %q in %s: %w", raw.ID, file, err)
				}
				recipes[raw.ID] = translated
			}
		}
	}

	logger.Debug("Recipes loaded.", "count", len(recipes))
	return recipes, nil
}

// LoadCatalog decodes tool manifest files into a catalog snapshot. Manifests
// are authored by the catalog owner, so an unrecognized health tag here is a
// mistake worth failing on, unlike catalog responses at fetch time.
func (l *Loader) LoadCatalog(ctx context.Context, paths ...string) (catalog.Snapshot, error) {
	logger := ctxlog.FromContext(ctx)

	snapshot := make(catalog.Snapshot)
	for _, path := range paths {
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find catalog manifests in %s: %w", path, err)
		}

		for _, file := range files {
			parsed, err := l.decodeCatalogFile(file)
			if err != nil {
				return nil, err
			}
			for _, raw := range parsed.Tools {
				if _, exists := snapshot[raw.ID]; exists {
					return nil, fmt.Errorf("tool %q declared more than once (last seen in %s)", raw.ID, file)
				}
				tool, err := translateTool(raw)
				if err != nil {
					return nil, fmt.Errorf("invalid tool %q in %s: %w", raw.ID, file, err)
				}
				snapshot[raw.ID] = tool
			}
		}
	}

	logger.Debug("Catalog manifests loaded.", "tool_count", len(snapshot))
	return snapshot, nil
}

func (l *Loader) decodeRecipeFile(path string) (*schema.RecipeFile, error) {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var parsed schema.RecipeFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}
	return &parsed, nil
}

func (l *Loader) decodeCatalogFile(path string) (*schema.CatalogFile, error) {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var parsed schema.CatalogFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}
	return &parsed, nil
}
