package driven

import (
	"context"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// Segmenter splits a file's extracted text into chunks ready for
// embedding. Each resource type has its own segmenter; the ingestion
// service routes by file extension and content shape.
type Segmenter interface {
	// Segment produces the resource record and its chunks for one
	// source file. A nil resource with no error means the file holds
	// nothing indexable and is silently skipped.
	Segment(ctx context.Context, path string) (*domain.Resource, []domain.Chunk, error)
}

// OCRService extracts text from image files.
type OCRService interface {
	// ExtractText runs OCR over the image at path and returns the
	// recognised text. An unreadable or textless image returns an
	// empty string without error.
	ExtractText(ctx context.Context, path string) (string, error)
}

// PDFTextService extracts the text layer from PDF files.
type PDFTextService interface {
	// ExtractText returns the full text of the PDF at path.
	ExtractText(ctx context.Context, path string) (string, error)
}
