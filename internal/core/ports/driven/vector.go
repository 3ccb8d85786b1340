package driven

import (
	"context"
	"io"
)

// VectorIndex provides semantic similarity search operations.
// Backed by an exhaustive in-memory cosine scan; results are exact,
// not approximate.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID. Replaces any
	// existing vector under the same ID. Returns
	// domain.ErrDimensionMismatch when the vector length does not
	// match the index dimension.
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Delete removes a vector from the index. Deleting an unknown
	// ID is a no-op.
	Delete(ctx context.Context, chunkID string) error

	// Search finds the k most similar vectors to the query. Results
	// are ordered by descending similarity; equal scores keep
	// insertion order. Fewer than k hits are returned when the index
	// holds fewer vectors.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len reports the number of vectors currently indexed.
	Len() int

	// Snapshot writes the full index state for later Restore.
	Snapshot(w io.Writer) error

	// Restore replaces the index contents from a Snapshot stream.
	// A snapshot recorded under a different dimension is discarded
	// and the index starts empty.
	Restore(r io.Reader) error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64
}
