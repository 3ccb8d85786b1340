package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/vectorindex/memory"
)

func imageResource(id, path string) *domain.Resource {
	return &domain.Resource{ID: id, Type: domain.ResourceImage, FileName: filepath.Base(path), FilePath: path}
}

func TestIngestDirectory(t *testing.T) {
	ctx := context.Background()
	store := newFakeRecordStore()
	index := memory.New(2)
	snapshot := filepath.Join(t.TempDir(), "vectors.json")

	segmenter := &fakeSegmenter{
		resources: map[string]*domain.Resource{
			"/in/a.jpg": imageResource("ra", "/in/a.jpg"),
		},
		chunks: map[string][]domain.Chunk{
			"/in/a.jpg": {{ID: "ca", ResourceID: "ra", Text: "text a", Language: domain.LanguageEnglish}},
		},
	}
	pdfSegmenter := &fakeSegmenter{
		resources: map[string]*domain.Resource{
			"/in/b.pdf": {ID: "rb", Type: domain.ResourcePDF, Subtype: domain.SubtypeBook, FileName: "b.pdf", FilePath: "/in/b.pdf"},
		},
		chunks: map[string][]domain.Chunk{
			"/in/b.pdf": {
				{ID: "cb1", ResourceID: "rb", Text: "para one", Language: domain.LanguageEnglish},
				{ID: "cb2", ResourceID: "rb", Text: "para two", Language: domain.LanguageEnglish},
			},
		},
	}

	svc := NewIngestService(
		&fakeScanner{paths: []string{"/in/a.jpg", "/in/b.pdf"}},
		store, index, &fakeEmbedder{dims: 2},
		segmenter, pdfSegmenter, snapshot,
	)

	report, err := svc.IngestDirectory(ctx, "/in")
	require.NoError(t, err)
	assert.Equal(t, 2, report.FilesProcessed)
	assert.Equal(t, 3, report.ChunksCreated)
	assert.Zero(t, report.FilesSkipped)
	assert.Empty(t, report.Errors)

	assert.Equal(t, 3, index.Len())
	n, _ := store.CountChunks(ctx)
	assert.Equal(t, 3, n)

	// Checkpoint landed on disk.
	_, err = os.Stat(snapshot)
	assert.NoError(t, err)
}

func TestIngestDirectorySkipsKnownPaths(t *testing.T) {
	ctx := context.Background()
	store := newFakeRecordStore()
	require.NoError(t, store.CommitResource(ctx, *imageResource("ra", "/in/a.jpg"), nil))

	segmenter := &fakeSegmenter{}
	svc := NewIngestService(
		&fakeScanner{paths: []string{"/in/a.jpg"}},
		store, memory.New(2), &fakeEmbedder{dims: 2},
		segmenter, segmenter, "",
	)

	report, err := svc.IngestDirectory(ctx, "/in")
	require.NoError(t, err)
	assert.Zero(t, report.FilesProcessed)
	assert.Equal(t, 1, report.FilesSkipped)
}

func TestIngestDirectoryCollectsPerFileErrors(t *testing.T) {
	ctx := context.Background()
	store := newFakeRecordStore()
	index := memory.New(2)

	imageSeg := &fakeSegmenter{
		resources: map[string]*domain.Resource{
			"/in/good.jpg": imageResource("rg", "/in/good.jpg"),
		},
		chunks: map[string][]domain.Chunk{
			"/in/good.jpg": {{ID: "cg", ResourceID: "rg", Text: "good", Language: domain.LanguageEnglish}},
		},
		errs: map[string]error{
			"/in/bad.jpg": errors.New("ocr failed"),
		},
	}

	svc := NewIngestService(
		&fakeScanner{paths: []string{"/in/bad.jpg", "/in/good.jpg"}},
		store, index, &fakeEmbedder{dims: 2},
		imageSeg, imageSeg, "",
	)

	report, err := svc.IngestDirectory(ctx, "/in")
	require.NoError(t, err)

	// The failure is reported and the batch continued.
	assert.Equal(t, 1, report.FilesProcessed)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "/in/bad.jpg", report.Errors[0].Path)
}

func TestIngestEmbeddingFailureCommitsNothing(t *testing.T) {
	ctx := context.Background()
	store := newFakeRecordStore()
	index := memory.New(2)

	seg := &fakeSegmenter{
		resources: map[string]*domain.Resource{
			"/in/a.pdf": {ID: "ra", Type: domain.ResourcePDF, Subtype: domain.SubtypeBook, FileName: "a.pdf", FilePath: "/in/a.pdf"},
		},
		chunks: map[string][]domain.Chunk{
			"/in/a.pdf": {
				{ID: "c1", ResourceID: "ra", Text: "fine", Language: domain.LanguageEnglish},
				{ID: "c2", ResourceID: "ra", Text: "poison", Language: domain.LanguageEnglish},
			},
		},
	}

	svc := NewIngestService(
		&fakeScanner{paths: []string{"/in/a.pdf"}},
		store, index, &fakeEmbedder{dims: 2, failFor: "poison"},
		seg, seg, "",
	)

	report, err := svc.IngestDirectory(ctx, "/in")
	require.NoError(t, err)
	require.Len(t, report.Errors, 1)

	// Nothing committed for the failed file.
	n, _ := store.CountChunks(ctx)
	assert.Zero(t, n)
	assert.Zero(t, index.Len())
}

func TestIngestDirectorySilentSkipOnEmptySegment(t *testing.T) {
	ctx := context.Background()
	seg := &fakeSegmenter{} // nil resource for every path

	svc := NewIngestService(
		&fakeScanner{paths: []string{"/in/blank.jpg"}},
		newFakeRecordStore(), memory.New(2), &fakeEmbedder{dims: 2},
		seg, seg, "",
	)

	report, err := svc.IngestDirectory(ctx, "/in")
	require.NoError(t, err)
	assert.Zero(t, report.FilesProcessed)
	assert.Zero(t, report.FilesSkipped)
	assert.Empty(t, report.Errors)
}

func TestIngestDirectoryScanFailureIsFatal(t *testing.T) {
	seg := &fakeSegmenter{}
	svc := NewIngestService(
		&fakeScanner{err: errors.New("disk gone")},
		newFakeRecordStore(), memory.New(2), &fakeEmbedder{dims: 2},
		seg, seg, "",
	)

	_, err := svc.IngestDirectory(context.Background(), "/in")
	assert.ErrorIs(t, err, domain.ErrIngestFatal)
}

func TestIngestFile(t *testing.T) {
	ctx := context.Background()
	store := newFakeRecordStore()
	index := memory.New(2)

	seg := &fakeSegmenter{
		resources: map[string]*domain.Resource{
			"/in/new.jpg": imageResource("rn", "/in/new.jpg"),
		},
		chunks: map[string][]domain.Chunk{
			"/in/new.jpg": {{ID: "cn", ResourceID: "rn", Text: "new", Language: domain.LanguageEnglish}},
		},
	}

	svc := NewIngestService(&fakeScanner{}, store, index, &fakeEmbedder{dims: 2}, seg, seg, "")

	report, err := svc.IngestFile(ctx, "/in/new.jpg")
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesProcessed)

	// A second ingest of the same path is a skip.
	report, err = svc.IngestFile(ctx, "/in/new.jpg")
	require.NoError(t, err)
	assert.Zero(t, report.FilesProcessed)
	assert.Equal(t, 1, report.FilesSkipped)
}

func TestIngestFileStoreFailureIsFatal(t *testing.T) {
	store := newFakeRecordStore()
	store.lookupErr = errors.New("database locked")

	seg := &fakeSegmenter{}
	svc := NewIngestService(&fakeScanner{}, store, memory.New(2), &fakeEmbedder{dims: 2}, seg, seg, "")

	report, err := svc.IngestFile(context.Background(), "/in/new.jpg")
	assert.ErrorIs(t, err, domain.ErrIngestFatal)

	// The file was not treated as new work.
	assert.Zero(t, report.FilesProcessed)
	assert.Empty(t, report.Errors)
}
