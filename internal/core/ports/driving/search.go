package driving

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// SearchService executes semantic retrieval queries.
type SearchService interface {
	// Search embeds the query and returns the most similar chunks,
	// formatted per resource type. Returns domain.ErrInvalidInput
	// for a blank query. An empty index yields an empty slice.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
