package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/recipec/internal/compiler"
)

const researchRecipe = `
recipe "research" {
  name = "Research pipeline"

  step "tool_call" "fetch" {
    tool = "search"

    arguments {
      limit = 5
    }
  }

  step "transform" "clean" {
    depends_on = ["fetch"]
  }
}
`

const toolManifest = `
tool "search" {
  tags   = ["retrieval"]
  health = "healthy"
}
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return dir
}

// runApp builds an App from the config, runs it, and returns the decoded
// result plus the run error.
func runApp(t *testing.T, cfg Config) (*compiler.Result, error) {
	t.Helper()
	cfg.LogFormat = "text"
	cfg.LogLevel = "debug"

	config, err := NewConfig(cfg)
	require.NoError(t, err)

	var out, logs bytes.Buffer
	testApp := NewApp(&out, &logs, config)
	runErr := testApp.Run(context.Background())

	raw := out.Bytes()
	if config.OutPath != "" {
		raw, err = os.ReadFile(config.OutPath)
		if err != nil {
			return nil, runErr
		}
	}
	if len(raw) == 0 {
		return nil, runErr
	}

	var result compiler.Result
	require.NoError(t, json.Unmarshal(raw, &result), "output was: %s", raw)
	return &result, runErr
}

func TestRun(t *testing.T) {
	t.Run("compiles a recipe against a manifest catalog", func(t *testing.T) {
		recipes := writeFixture(t, "research.hcl", researchRecipe)
		tools := writeFixture(t, "tools.hcl", toolManifest)

		result, err := runApp(t, Config{
			RecipePath:  recipes,
			Format:      "generic",
			CatalogPath: tools,
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.True(t, result.Success)
		assert.Empty(t, result.Errors)
		assert.NotNil(t, result.Document)
	})

	t.Run("writes the result to a file when -out is set", func(t *testing.T) {
		recipes := writeFixture(t, "research.hcl", researchRecipe)
		tools := writeFixture(t, "tools.hcl", toolManifest)
		outPath := filepath.Join(t.TempDir(), "result.json")

		result, err := runApp(t, Config{
			RecipePath:  recipes,
			Format:      "langflow",
			CatalogPath: tools,
			OutPath:     outPath,
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "langflow", result.Format)
	})

	t.Run("fetches the snapshot from a catalog service", func(t *testing.T) {
		recipes := writeFixture(t, "research.hcl", researchRecipe)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"tools":{"search":{"id":"search","health":"healthy"}}}`))
		}))
		defer server.Close()

		result, err := runApp(t, Config{
			RecipePath: recipes,
			Format:     "generic",
			CatalogURL: server.URL,
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("compilation failure still writes the result and errors out", func(t *testing.T) {
		recipes := writeFixture(t, "research.hcl", researchRecipe)
		// No catalog configured: the search tool cannot resolve.

		result, err := runApp(t, Config{
			RecipePath: recipes,
			Format:     "generic",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "compilation failed")

		require.NotNil(t, result)
		assert.False(t, result.Success)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "ToolNotFound")
	})

	t.Run("selecting a missing recipe id fails", func(t *testing.T) {
		recipes := writeFixture(t, "research.hcl", researchRecipe)

		_, err := runApp(t, Config{
			RecipePath: recipes,
			RecipeID:   "dne",
			Format:     "generic",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dne")
	})

	t.Run("multiple recipes require an explicit id", func(t *testing.T) {
		recipes := writeFixture(t, "many.hcl", `
recipe "one" {}
recipe "two" {}
`)
		_, err := runApp(t, Config{
			RecipePath: recipes,
			Format:     "generic",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "-id")

		result, err := runApp(t, Config{
			RecipePath: recipes,
			RecipeID:   "two",
			Format:     "generic",
		})
		require.NoError(t, err)
		assert.True(t, result.Success)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "EmptyRecipe")
	})
}
