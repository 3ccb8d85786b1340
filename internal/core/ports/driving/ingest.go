package driving

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// IngestService runs the ingestion pipeline over source directories.
type IngestService interface {
	// IngestDirectory scans root, processes every supported file not
	// already indexed, and reports what happened. Per-file failures
	// are collected in the report; only infrastructure failures
	// (store, index persistence) return an error.
	IngestDirectory(ctx context.Context, root string) (domain.IngestReport, error)

	// IngestFile processes a single file. Used by watch mode.
	// Already-indexed paths are skipped without error.
	IngestFile(ctx context.Context, path string) (domain.IngestReport, error)
}
