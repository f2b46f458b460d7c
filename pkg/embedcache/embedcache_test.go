package embedcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetThenGet_RoundTrips(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)

	vec := []float32{0.1, 0.2, 0.3}
	require.NoError(t, c.Set("src/a.ts", "hello", 1000, vec))

	got, ok := c.Get("src/a.ts", "hello", 1000)
	require.True(t, ok)
	assert.Equal(t, vec, got)
}

func TestGet_MismatchedMtimeIsMissAndDeletesEntry(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Set("src/a.ts", "hello", 1000, []float32{1}))

	_, ok := c.Get("src/a.ts", "hello", 2000)
	assert.False(t, ok)

	// Entry was deleted on the stale read; a correctly-timed read now misses too.
	_, ok = c.Get("src/a.ts", "hello", 1000)
	assert.False(t, ok)
}

func TestGet_MissingEntryIsMiss(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok := c.Get("nope.ts", "x", 1)
	assert.False(t, ok)
}

func TestStats_TracksHitsAndMisses(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)

	_, _ = c.Get("nope.ts", "x", 1)
	require.NoError(t, c.Set("a.ts", "hello", 1000, []float32{0.1}))
	_, _ = c.Get("a.ts", "hello", 1000)
	_, _ = c.Get("a.ts", "hello", 9999)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
}

func TestCleanup_RemovesOnlyOldEntries(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, c.Set("old.ts", "x", 1, []float32{1}))
	oldKey := Key("old.ts", "x")
	oldPath := filepath.Join(dir, oldKey+".json")
	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, old, old))

	require.NoError(t, c.Set("new.ts", "y", 1, []float32{2}))

	c.Cleanup(time.Now(), 7*24*time.Hour)

	_, ok := c.Get("old.ts", "x", 1)
	assert.False(t, ok)
	_, ok = c.Get("new.ts", "y", 1)
	assert.True(t, ok)
}
