package memory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAddAndSearch(t *testing.T) {
	ctx := context.Background()
	ix := New(3)

	require.NoError(t, ix.Add(ctx, "a", []float32{1, 0, 0}))
	require.NoError(t, ix.Add(ctx, "b", []float32{0, 1, 0}))
	require.NoError(t, ix.Add(ctx, "c", []float32{0.9, 0.1, 0}))
	assert.Equal(t, 3, ix.Len())

	hits, err := ix.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ChunkID)
	assert.Equal(t, "c", hits[1].ChunkID)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestIndexAddDimensionMismatch(t *testing.T) {
	ix := New(3)
	err := ix.Add(context.Background(), "a", []float32{1, 0})
	assert.Error(t, err)
}

func TestIndexAddReplacesExisting(t *testing.T) {
	ctx := context.Background()
	ix := New(2)

	require.NoError(t, ix.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "a", []float32{0, 1}))
	assert.Equal(t, 1, ix.Len())

	hits, err := ix.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
}

func TestIndexSearchTieBreakKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	ix := New(2)

	// Identical vectors score identically; insertion order decides.
	require.NoError(t, ix.Add(ctx, "first", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "second", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "third", []float32{1, 0}))

	hits, err := ix.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "first", hits[0].ChunkID)
	assert.Equal(t, "second", hits[1].ChunkID)
	assert.Equal(t, "third", hits[2].ChunkID)
}

func TestIndexSearchFewerThanK(t *testing.T) {
	ctx := context.Background()
	ix := New(2)
	require.NoError(t, ix.Add(ctx, "only", []float32{1, 0}))

	hits, err := ix.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndexSearchEmpty(t *testing.T) {
	ix := New(2)
	hits, err := ix.Search(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndexDelete(t *testing.T) {
	ctx := context.Background()
	ix := New(2)

	require.NoError(t, ix.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "b", []float32{0, 1}))

	require.NoError(t, ix.Delete(ctx, "a"))
	assert.Equal(t, 1, ix.Len())

	// Unknown IDs are a no-op.
	require.NoError(t, ix.Delete(ctx, "missing"))

	hits, err := ix.Search(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].ChunkID)
}

func TestIndexSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	ix := New(2)
	require.NoError(t, ix.Add(ctx, "a", []float32{1, 0}))
	require.NoError(t, ix.Add(ctx, "b", []float32{1, 0}))

	var buf bytes.Buffer
	require.NoError(t, ix.Snapshot(&buf))

	restored := New(2)
	require.NoError(t, restored.Restore(&buf))
	assert.Equal(t, 2, restored.Len())

	// Insertion order survives the round trip.
	hits, err := restored.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, "a", hits[0].ChunkID)
	assert.Equal(t, "b", hits[1].ChunkID)
}

func TestIndexRestoreDimensionMismatchStartsEmpty(t *testing.T) {
	ctx := context.Background()
	old := New(2)
	require.NoError(t, old.Add(ctx, "a", []float32{1, 0}))

	var buf bytes.Buffer
	require.NoError(t, old.Snapshot(&buf))

	ix := New(3)
	require.NoError(t, ix.Add(ctx, "stale", []float32{1, 0, 0}))
	require.NoError(t, ix.Restore(&buf))
	assert.Zero(t, ix.Len())
}

func TestIndexRestoreBadJSON(t *testing.T) {
	ix := New(2)
	err := ix.Restore(bytes.NewBufferString("{not json"))
	assert.Error(t, err)
}
