package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/core/ports/driving"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the scan-segment-embed-commit pipeline.
type IngestService struct {
	scanner          driven.Scanner
	recordStore      driven.ResourceStore
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	imageSegmenter   driven.Segmenter
	pdfSegmenter     driven.Segmenter
	snapshotPath     string
}

// NewIngestService creates a new ingestion service. snapshotPath is
// where the vector index is checkpointed after each run.
func NewIngestService(
	scanner driven.Scanner,
	recordStore driven.ResourceStore,
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
	imageSegmenter driven.Segmenter,
	pdfSegmenter driven.Segmenter,
	snapshotPath string,
) *IngestService {
	return &IngestService{
		scanner:          scanner,
		recordStore:      recordStore,
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		imageSegmenter:   imageSegmenter,
		pdfSegmenter:     pdfSegmenter,
		snapshotPath:     snapshotPath,
	}
}

// IngestDirectory scans root and processes every supported file not
// already indexed. Per-file failures are collected in the report and
// never abort the batch; the index is checkpointed once at the end
// regardless of how many files failed.
func (s *IngestService) IngestDirectory(ctx context.Context, root string) (domain.IngestReport, error) {
	logger.Section("Ingestion Run")

	var report domain.IngestReport

	paths, err := s.scanner.Scan(ctx, root)
	if err != nil {
		return report, fmt.Errorf("%w: %v", domain.ErrIngestFatal, err)
	}

	known, err := s.recordStore.AllFilePaths(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: %v", domain.ErrIngestFatal, err)
	}

	for _, path := range paths {
		if ctx.Err() != nil {
			return report, fmt.Errorf("%w: %v", domain.ErrIngestFatal, ctx.Err())
		}
		if _, ok := known[path]; ok {
			report.FilesSkipped++
			continue
		}
		s.processFile(ctx, path, &report)
	}

	if err := s.checkpoint(); err != nil {
		return report, fmt.Errorf("%w: %v", domain.ErrIngestFatal, err)
	}

	logger.Info("Ingested %d files (%d chunks), skipped %d, %d errors",
		report.FilesProcessed, report.ChunksCreated, report.FilesSkipped, len(report.Errors))
	return report, nil
}

// IngestFile processes a single file, checkpointing afterwards. Used
// by watch mode where files arrive one at a time.
func (s *IngestService) IngestFile(ctx context.Context, path string) (domain.IngestReport, error) {
	var report domain.IngestReport

	_, err := s.recordStore.GetResourceByPath(ctx, path)
	switch {
	case err == nil:
		report.FilesSkipped++
		return report, nil
	case !errors.Is(err, domain.ErrNotFound):
		return report, fmt.Errorf("%w: %v", domain.ErrIngestFatal, err)
	}

	s.processFile(ctx, path, &report)

	if err := s.checkpoint(); err != nil {
		return report, fmt.Errorf("%w: %v", domain.ErrIngestFatal, err)
	}
	return report, nil
}

// processFile runs one file through segment, embed, and commit. Any
// failure lands in the report as a FileError; nothing is committed for
// a file that fails partway.
func (s *IngestService) processFile(ctx context.Context, path string, report *domain.IngestReport) {
	resource, chunks, err := s.segment(ctx, path)
	if err != nil {
		report.Errors = append(report.Errors, domain.FileError{Path: path, Err: err})
		return
	}
	if resource == nil {
		logger.Debug("nothing indexable in %s, skipping", path)
		return
	}

	// Embed every chunk before touching the store so an embedding
	// failure leaves no partial resource behind.
	vectors := make([][]float32, len(chunks))
	for i, chunk := range chunks {
		vec, err := s.embeddingService.Embed(ctx, chunk.Text)
		if err != nil {
			report.Errors = append(report.Errors, domain.FileError{
				Path: path,
				Err:  fmt.Errorf("embedding chunk %d: %w", i+1, err),
			})
			return
		}
		vectors[i] = vec
	}

	if err := s.recordStore.CommitResource(ctx, *resource, chunks); err != nil {
		report.Errors = append(report.Errors, domain.FileError{Path: path, Err: err})
		return
	}

	for i, chunk := range chunks {
		if err := s.vectorIndex.Add(ctx, chunk.ID, vectors[i]); err != nil {
			// The chunk is stored but unranked until re-indexed.
			logger.Warn("indexing chunk %s: %v", chunk.ID, err)
		}
	}

	report.FilesProcessed++
	report.ChunksCreated += len(chunks)
	logger.Debug("ingested %s: %d chunks", path, len(chunks))
}

// segment routes a file to its segmenter by extension.
func (s *IngestService) segment(ctx context.Context, path string) (*domain.Resource, []domain.Chunk, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return s.imageSegmenter.Segment(ctx, path)
	case ".pdf":
		return s.pdfSegmenter.Segment(ctx, path)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %s: %w", filepath.Ext(path), domain.ErrInvalidInput)
	}
}

// checkpoint writes the vector index snapshot atomically: temp file
// then rename, so a crash mid-write never corrupts the previous
// snapshot.
func (s *IngestService) checkpoint() error {
	if s.snapshotPath == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0700); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	tmp := s.snapshotPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}

	if err := s.vectorIndex.Snapshot(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing snapshot file: %w", err)
	}

	if err := os.Rename(tmp, s.snapshotPath); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	logger.Debug("checkpointed %d vectors to %s", s.vectorIndex.Len(), s.snapshotPath)
	return nil
}
