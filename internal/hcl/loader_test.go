package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/promptdeck/recipec/internal/catalog"
	"github.com/promptdeck/recipec/internal/recipe"
)

// writeFiles materializes the given fixture files under a temp dir and
// returns its path.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestLoadRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("parses steps in declaration order with evaluated arguments", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"research.hcl": `
recipe "research" {
  name       = "Research pipeline"
  complexity = "medium"

  step "tool_call" "fetch" {
    tool = "search"

    arguments {
      limit = 5
      query = "latest results"
    }
  }

  step "transform" "clean" {
    depends_on = ["fetch"]
  }

  step "branch" "route" {
    depends_on = ["clean"]
  }
}
`,
		})

		loader := NewLoader()
		recipes, err := loader.LoadRecipes(ctx, root)
		require.NoError(t, err)
		require.Len(t, recipes, 1)

		r := recipes["research"]
		require.NotNil(t, r)
		assert.Equal(t, "Research pipeline", r.Metadata.Name)
		assert.Equal(t, "medium", r.Metadata.Complexity)

		require.Len(t, r.Steps, 3)
		assert.Equal(t, []string{"fetch", "clean", "route"},
			[]string{r.Steps[0].ID, r.Steps[1].ID, r.Steps[2].ID})

		fetch := r.Steps[0]
		assert.Equal(t, recipe.KindToolCall, fetch.Kind)
		assert.Equal(t, "search", fetch.ToolID)
		assert.True(t, cty.NumberIntVal(5).RawEquals(fetch.Arguments["limit"]))
		assert.True(t, cty.StringVal("latest results").RawEquals(fetch.Arguments["query"]))

		assert.Equal(t, []string{"fetch"}, r.Steps[1].DependsOn)
		assert.Equal(t, []string{"search"}, r.RequiredTools())
	})

	t.Run("recipes aggregate across files", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"a.hcl":        `recipe "one" {}`,
			"nested/b.hcl": `recipe "two" {}`,
		})

		recipes, err := NewLoader().LoadRecipes(ctx, root)
		require.NoError(t, err)
		assert.Len(t, recipes, 2)
	})

	t.Run("duplicate recipe id across files is an error", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"a.hcl": `recipe "dup" {}`,
			"b.hcl": `recipe "dup" {}`,
		})

		_, err := NewLoader().LoadRecipes(ctx, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dup")
	})

	t.Run("unknown step kind is rejected", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"a.hcl": `
recipe "r" {
  step "webhook" "x" {}
}
`,
		})

		_, err := NewLoader().LoadRecipes(ctx, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "webhook")
	})

	t.Run("tool attribute on a non-tool_call kind is rejected", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"a.hcl": `
recipe "r" {
  step "transform" "x" {
    tool = "search"
  }
}
`,
		})

		_, err := NewLoader().LoadRecipes(ctx, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not call a tool")
	})

	t.Run("argument referencing an outside value is a load error", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"a.hcl": `
recipe "r" {
  step "transform" "x" {
    arguments {
      value = var.mystery
    }
  }
}
`,
		})

		_, err := NewLoader().LoadRecipes(ctx, root)
		require.Error(t, err)
	})
}

func TestLoadCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("parses tool manifests into a snapshot", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"tools.hcl": `
tool "search" {
  tags   = ["retrieval", "web"]
  health = "healthy"
}

tool "legacy" {
  health = "degraded"
}

tool "mystery" {}
`,
		})

		snapshot, err := NewLoader().LoadCatalog(ctx, root)
		require.NoError(t, err)
		require.Len(t, snapshot, 3)

		search, ok := snapshot.Lookup("search")
		require.True(t, ok)
		assert.Equal(t, catalog.Healthy, search.Health)
		assert.Equal(t, []string{"retrieval", "web"}, search.Tags)

		legacy, _ := snapshot.Lookup("legacy")
		assert.Equal(t, catalog.Degraded, legacy.Health)

		mystery, _ := snapshot.Lookup("mystery")
		assert.Equal(t, catalog.Unknown, mystery.Health)
	})

	t.Run("invalid health tag is a manifest error", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"tools.hcl": `
tool "x" {
  health = "on-fire"
}
`,
		})

		_, err := NewLoader().LoadCatalog(ctx, root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "on-fire")
	})

	t.Run("duplicate tool id is an error", func(t *testing.T) {
		root := writeFiles(t, map[string]string{
			"a.hcl": `tool "dup" {}`,
			"b.hcl": `tool "dup" {}`,
		})

		_, err := NewLoader().LoadCatalog(ctx, root)
		require.Error(t, err)
	})
}
