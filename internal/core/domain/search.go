package domain

import "time"

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// Limit is the maximum number of results (k).
	Limit int

	// Language restricts results to chunks detected as the given
	// language. Empty means no facet.
	Language Language
}

// ResultKind discriminates the search result variants. It mirrors the
// three segmenter categories: results are formatted the same way their
// resources were chunked.
type ResultKind string

// Result kinds.
const (
	ResultKindImage      ResultKind = "image"
	ResultKindBook       ResultKind = "book"
	ResultKindTranscript ResultKind = "transcript"
)

// ResultBase carries the fields common to every search hit.
type ResultBase struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// ResourceID is the owning resource.
	ResourceID string

	// ResourceName is the source file's base name.
	ResourceName string

	// Language is the chunk's detected language.
	Language Language

	// Text is the chunk text.
	Text string

	// Score is the cosine similarity of the chunk to the query.
	Score float64
}

// SearchResult is a tagged variant over image, book, and transcript
// hits sharing a common base, discriminated by the owning resource's
// type and subtype.
type SearchResult interface {
	Kind() ResultKind
	Base() ResultBase
}

// ImageResult is a hit from an OCR'd image.
type ImageResult struct {
	ResultBase

	// RecordedAt is when the image was captured, when known.
	RecordedAt *time.Time

	// PreviewURL is a derived link for serving the original image.
	PreviewURL string
}

// Kind returns ResultKindImage.
func (r ImageResult) Kind() ResultKind { return ResultKindImage }

// Base returns the common result fields.
func (r ImageResult) Base() ResultBase { return r.ResultBase }

// BookResult is a hit from a book PDF paragraph.
type BookResult struct {
	ResultBase

	// Page is the page number when known (currently always nil).
	Page *int

	// Paragraph is the 1-based paragraph ordinal.
	Paragraph int
}

// Kind returns ResultKindBook.
func (r BookResult) Kind() ResultKind { return ResultKindBook }

// Base returns the common result fields.
func (r BookResult) Base() ResultBase { return r.ResultBase }

// TranscriptResult is a hit from a time-coded transcript segment.
type TranscriptResult struct {
	ResultBase

	// Timestamp is the literal transcript marker, e.g. "1:02:15".
	Timestamp string
}

// Kind returns ResultKindTranscript.
func (r TranscriptResult) Kind() ResultKind { return ResultKindTranscript }

// Base returns the common result fields.
func (r TranscriptResult) Base() ResultBase { return r.ResultBase }
