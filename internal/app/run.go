package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/promptdeck/recipec/internal/catalog"
	"github.com/promptdeck/recipec/internal/compiler"
	"github.com/promptdeck/recipec/internal/ctxlog"
	"github.com/promptdeck/recipec/internal/hcl"
	"github.com/promptdeck/recipec/internal/recipe"
)

// Run executes the main application logic: load, fetch, compile, write. The
// returned error covers infrastructure failures and the compilation-failed
// case; compilation problems themselves are already rendered inside the
// written result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	loader := hcl.NewLoader()
	recipes, err := loader.LoadRecipes(ctx, a.config.RecipePath)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}

	target, err := selectRecipe(recipes, a.config.RecipeID)
	if err != nil {
		return err
	}
	a.logger.Debug("Recipe selected.", "recipe", target.ID, "steps", len(target.Steps))

	fetcher, err := a.newFetcher(ctx, loader)
	if err != nil {
		return err
	}

	// The one upfront I/O step: everything after this point is pure.
	snapshot, err := fetcher.FetchTools(ctx, target.RequiredTools())
	if err != nil {
		return fmt.Errorf("failed to fetch tool snapshot: %w", err)
	}
	a.logger.Debug("Tool snapshot fetched.", "requested", len(target.RequiredTools()), "resolved", len(snapshot))

	result := compiler.Compile(ctx, target, snapshot, a.config.Format)

	if err := a.writeResult(result); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// selectRecipe picks the recipe to compile. An explicit id wins; otherwise a
// path declaring exactly one recipe needs no id at all.
func selectRecipe(recipes map[string]*recipe.Recipe, id string) (*recipe.Recipe, error) {
	if id != "" {
		target, ok := recipes[id]
		if !ok {
			return nil, fmt.Errorf("recipe %q not found in the given path (found: %v)", id, recipeIDs(recipes))
		}
		return target, nil
	}

	switch len(recipes) {
	case 0:
		return nil, fmt.Errorf("no recipes found in the given path")
	case 1:
		for _, target := range recipes {
			return target, nil
		}
	}
	return nil, fmt.Errorf("path declares %d recipes (%v); select one with -id", len(recipes), recipeIDs(recipes))
}

func recipeIDs(recipes map[string]*recipe.Recipe) []string {
	ids := make([]string, 0, len(recipes))
	for id := range recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// newFetcher builds the catalog collaborator for this run: an HTTP fetcher
// against the catalog service, a static fetcher over local manifests, or an
// empty snapshot when no catalog is configured (tool-less recipes compile
// fine without one).
func (a *App) newFetcher(ctx context.Context, loader *hcl.Loader) (catalog.Fetcher, error) {
	if a.config.CatalogURL != "" {
		return catalog.NewHTTPFetcher(a.config.CatalogURL, nil), nil
	}
	if a.config.CatalogPath != "" {
		snapshot, err := loader.LoadCatalog(ctx, a.config.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog manifests: %w", err)
		}
		return catalog.NewStaticFetcher(snapshot), nil
	}
	return catalog.NewStaticFetcher(catalog.Snapshot{}), nil
}

// writeResult renders the result as indented JSON to the configured
// destination.
func (a *App) writeResult(result *compiler.Result) error {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode compilation result: %w", err)
	}
	encoded = append(encoded, '\n')

	if a.config.OutPath != "" {
		if err := os.WriteFile(a.config.OutPath, encoded, 0o644); err != nil {
			return fmt.Errorf("failed to write result to %s: %w", a.config.OutPath, err)
		}
		a.logger.Info("Compilation result written.", "path", a.config.OutPath, "success", result.Success)
		return nil
	}

	if _, err := a.outW.Write(encoded); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
