package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHealth(t *testing.T) {
	assert.Equal(t, Healthy, ParseHealth("healthy"))
	assert.Equal(t, Degraded, ParseHealth("degraded"))
	assert.Equal(t, Unhealthy, ParseHealth("unhealthy"))
	assert.Equal(t, Unknown, ParseHealth("unknown"))
	assert.Equal(t, Unknown, ParseHealth(""))
	assert.Equal(t, Unknown, ParseHealth("on-fire"))
}

func TestStaticFetcher(t *testing.T) {
	fetcher := NewStaticFetcher(Snapshot{
		"search": {ID: "search", Health: Healthy},
		"embed":  {ID: "embed", Health: Degraded},
	})

	t.Run("returns only the requested ids", func(t *testing.T) {
		snap, err := fetcher.FetchTools(context.Background(), []string{"search"})
		require.NoError(t, err)
		assert.Len(t, snap, 1)
		_, ok := snap.Lookup("search")
		assert.True(t, ok)
	})

	t.Run("missing ids produce a partial snapshot, not an error", func(t *testing.T) {
		snap, err := fetcher.FetchTools(context.Background(), []string{"search", "ghost"})
		require.NoError(t, err)
		assert.Len(t, snap, 1)
		_, ok := snap.Lookup("ghost")
		assert.False(t, ok)
	})

	t.Run("empty request yields empty snapshot", func(t *testing.T) {
		snap, err := fetcher.FetchTools(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, snap)
	})
}
