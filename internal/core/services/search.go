package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// DefaultSearchLimit is used when the caller does not set a limit.
const DefaultSearchLimit = 10

// languageOverfetch is the multiplier applied to the vector search
// limit when a language facet is active. The index cannot filter by
// language, so the service over-fetches and drops mismatches. No
// second fetch happens if filtering leaves fewer than limit results.
const languageOverfetch = 3

// SearchService provides semantic retrieval over the indexed corpus.
type SearchService struct {
	recordStore      driven.ResourceStore
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
}

// NewSearchService creates a new search service.
func NewSearchService(
	recordStore driven.ResourceStore,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
) *SearchService {
	return &SearchService{
		recordStore:      recordStore,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
	}
}

// Search embeds the query, scans the vector index, hydrates the hits
// from the record store, and formats them per resource type.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query: %w", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	if s.vectorIndex.Len() == 0 {
		logger.Debug("Empty index, returning no results")
		return []domain.SearchResult{}, nil
	}

	queryVec, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	fetchLimit := limit
	if opts.Language != "" {
		fetchLimit = limit * languageOverfetch
		logger.Debug("Language facet %q, over-fetching %d", opts.Language, fetchLimit)
	}

	hits, err := s.vectorIndex.Search(ctx, queryVec, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Vector index returned %d hits", len(hits))

	results, err := s.hydrate(ctx, hits, opts.Language)
	if err != nil {
		return nil, err
	}

	if len(results) > limit {
		results = results[:limit]
	}
	logger.Info("Search returned %d results", len(results))
	return results, nil
}

// hydrate joins vector hits with their stored chunks, preserving the
// index ranking. Hits whose chunk no longer exists are dropped: the
// store is the source of truth, the index merely ranks.
func (s *SearchService) hydrate(
	ctx context.Context, hits []driven.VectorHit, language domain.Language,
) ([]domain.SearchResult, error) {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.ChunkID
	}

	rows, err := s.recordStore.ChunksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrating results: %w", err)
	}

	byID := make(map[string]domain.ChunkWithResource, len(rows))
	for _, row := range rows {
		byID[row.Chunk.ID] = row
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		row, ok := byID[hit.ChunkID]
		if !ok {
			logger.Warn("chunk %s in index but not in store, dropping", hit.ChunkID)
			continue
		}
		if language != "" && row.Chunk.Language != language {
			continue
		}
		results = append(results, formatResult(row, hit.Similarity))
	}
	return results, nil
}

// formatResult builds the typed result variant for a hydrated chunk.
func formatResult(row domain.ChunkWithResource, score float64) domain.SearchResult {
	base := domain.ResultBase{
		ChunkID:      row.Chunk.ID,
		ResourceID:   row.Resource.ID,
		ResourceName: row.Resource.FileName,
		Language:     row.Chunk.Language,
		Text:         row.Chunk.Text,
		Score:        score,
	}

	switch {
	case row.Resource.Type == domain.ResourceImage:
		return domain.ImageResult{
			ResultBase: base,
			RecordedAt: row.Resource.RecordedAt,
			PreviewURL: "/resources/" + row.Resource.ID + "/file",
		}
	case row.Resource.Subtype == domain.SubtypeTranscript:
		var ts string
		if row.Chunk.Timestamp != nil {
			ts = *row.Chunk.Timestamp
		}
		return domain.TranscriptResult{
			ResultBase: base,
			Timestamp:  ts,
		}
	default:
		var paragraph int
		if row.Chunk.Paragraph != nil {
			paragraph = *row.Chunk.Paragraph
		}
		return domain.BookResult{
			ResultBase: base,
			Page:       row.Chunk.Page,
			Paragraph:  paragraph,
		}
	}
}
