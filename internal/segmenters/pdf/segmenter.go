// Package pdf segments PDF documents. Extracted text is classified as
// a transcript when it is dense with time codes, and as a book
// otherwise; the two forms chunk differently.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Segmenter turns a PDF into a book or transcript resource.
type Segmenter struct {
	pdftext driven.PDFTextService
}

// New creates a PDF segmenter backed by the given text extractor.
func New(pdftext driven.PDFTextService) *Segmenter {
	return &Segmenter{pdftext: pdftext}
}

// Segment extracts the PDF's text, classifies it, and chunks it. PDFs
// whose extraction yields no text are silently skipped.
func (s *Segmenter) Segment(ctx context.Context, path string) (*domain.Resource, []domain.Chunk, error) {
	text, err := s.pdftext.ExtractText(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf text %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, nil
	}

	subtype := Classify(text)

	resource := domain.Resource{
		ID:        uuid.New().String(),
		Type:      domain.ResourcePDF,
		Subtype:   subtype,
		FileName:  filepath.Base(path),
		FilePath:  path,
		CreatedAt: time.Now().UTC(),
		Title:     titleFromPath(path),
	}

	var chunks []domain.Chunk
	if subtype == domain.SubtypeTranscript {
		chunks = segmentTranscript(resource.ID, text)
	} else {
		chunks = segmentBook(resource.ID, text)
	}
	if len(chunks) == 0 {
		return nil, nil, nil
	}

	return &resource, chunks, nil
}

func titleFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
