// Package memory implements the vector index as an exhaustive
// in-memory cosine scan. Exact results, no approximation; a full scan
// over a few hundred thousand 384-dim vectors stays well under
// interactive latency.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
)

var _ driven.VectorIndex = (*Index)(nil)

type entry struct {
	id  string
	vec []float32
}

// Index is a brute-force cosine similarity index. Entries keep their
// insertion order so equal-score search results rank deterministically.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   []entry
	byID      map[string]int
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) *Index {
	return &Index{
		dimension: dimension,
		byID:      make(map[string]int),
	}
}

// Add inserts a vector under chunkID. An existing entry with the same
// ID is replaced in place, keeping its original insertion position.
func (ix *Index) Add(_ context.Context, chunkID string, embedding []float32) error {
	if len(embedding) != ix.dimension {
		return fmt.Errorf("add %q: got %d values, index dimension is %d: %w",
			chunkID, len(embedding), ix.dimension, domain.ErrDimensionMismatch)
	}

	vec := make([]float32, len(embedding))
	copy(vec, embedding)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if pos, ok := ix.byID[chunkID]; ok {
		ix.entries[pos].vec = vec
		return nil
	}
	ix.byID[chunkID] = len(ix.entries)
	ix.entries = append(ix.entries, entry{id: chunkID, vec: vec})
	return nil
}

// Delete removes the vector under chunkID. Unknown IDs are a no-op.
func (ix *Index) Delete(_ context.Context, chunkID string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	pos, ok := ix.byID[chunkID]
	if !ok {
		return nil
	}
	ix.entries = append(ix.entries[:pos], ix.entries[pos+1:]...)
	delete(ix.byID, chunkID)
	for i := pos; i < len(ix.entries); i++ {
		ix.byID[ix.entries[i].id] = i
	}
	return nil
}

// Search scans every entry and returns the k highest cosine
// similarities, descending. Ties keep insertion order.
func (ix *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("search: got %d values, index dimension is %d: %w",
			len(query), ix.dimension, domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(ix.entries))
	for _, e := range ix.entries {
		score, err := domain.CosineSimilarity(query, e.vec)
		if err != nil {
			return nil, err
		}
		hits = append(hits, driven.VectorHit{ChunkID: e.id, Similarity: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len reports the number of indexed vectors.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// snapshotFile is the on-disk JSON shape.
type snapshotFile struct {
	Dimension int              `json:"dimension"`
	Vectors   []snapshotVector `json:"vectors"`
}

type snapshotVector struct {
	ID     string    `json:"id"`
	Values []float32 `json:"values"`
}

// Snapshot writes the index contents as JSON. Insertion order is
// preserved so a restored index ranks ties identically.
func (ix *Index) Snapshot(w io.Writer) error {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	file := snapshotFile{
		Dimension: ix.dimension,
		Vectors:   make([]snapshotVector, 0, len(ix.entries)),
	}
	for _, e := range ix.entries {
		file.Vectors = append(file.Vectors, snapshotVector{ID: e.id, Values: e.vec})
	}
	if err := json.NewEncoder(w).Encode(file); err != nil {
		return fmt.Errorf("encoding vector snapshot: %w", err)
	}
	return nil
}

// Restore replaces the index contents from a Snapshot stream. A
// snapshot recorded under a different dimension is discarded and the
// index starts empty; the stale data cannot be searched correctly and
// re-ingestion rebuilds it.
func (ix *Index) Restore(r io.Reader) error {
	var file snapshotFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return fmt.Errorf("decoding vector snapshot: %w", err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.entries = nil
	ix.byID = make(map[string]int)

	if file.Dimension != ix.dimension {
		return nil
	}
	for _, v := range file.Vectors {
		if len(v.Values) != ix.dimension {
			continue
		}
		ix.byID[v.ID] = len(ix.entries)
		ix.entries = append(ix.entries, entry{id: v.ID, vec: v.Values})
	}
	return nil
}
