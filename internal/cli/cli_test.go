package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional recipe path with defaults", func(t *testing.T) {
		var out bytes.Buffer
		config, exit, err := Parse([]string{"recipes/"}, &out)
		require.NoError(t, err)
		require.False(t, exit)

		assert.Equal(t, "recipes/", config.RecipePath)
		assert.Equal(t, "generic", config.Format)
		assert.Equal(t, "text", config.LogFormat)
		assert.Equal(t, "warn", config.LogLevel)
	})

	t.Run("explicit flags override defaults", func(t *testing.T) {
		var out bytes.Buffer
		config, exit, err := Parse([]string{
			"-recipe", "recipes/",
			"-id", "research",
			"-format", "langgraph",
			"-catalog", "tools/",
			"-out", "result.json",
			"-log-level", "debug",
			"-log-format", "json",
		}, &out)
		require.NoError(t, err)
		require.False(t, exit)

		assert.Equal(t, "recipes/", config.RecipePath)
		assert.Equal(t, "research", config.RecipeID)
		assert.Equal(t, "langgraph", config.Format)
		assert.Equal(t, "tools/", config.CatalogPath)
		assert.Equal(t, "result.json", config.OutPath)
	})

	t.Run("shorthand recipe flag", func(t *testing.T) {
		var out bytes.Buffer
		config, _, err := Parse([]string{"-r", "one.hcl"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "one.hcl", config.RecipePath)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		config, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, config)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid format is a usage error", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-format", "bpmn", "recipes/"}, &out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("invalid log level is a usage error", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{"-log-level", "loud", "recipes/"}, &out)
		require.Error(t, err)
	})

	t.Run("catalog and catalog-url are mutually exclusive", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse([]string{
			"-catalog", "tools/",
			"-catalog-url", "http://catalog.local/tools",
			"recipes/",
		}, &out)
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})
}
