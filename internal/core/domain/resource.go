package domain

import "time"

// ResourceType identifies the kind of source file a resource came from.
type ResourceType string

// Resource types.
const (
	ResourceImage ResourceType = "image"
	ResourcePDF   ResourceType = "pdf"
)

// ResourceSubtype refines PDF resources. Images carry no subtype.
type ResourceSubtype string

// Resource subtypes.
const (
	SubtypeNone       ResourceSubtype = ""
	SubtypeBook       ResourceSubtype = "book"
	SubtypeTranscript ResourceSubtype = "transcript"
)

// Resource represents a source document. It is created exactly once when
// the ingestion pipeline discovers a new file and is never mutated.
// FilePath is unique across all resources and is the sole dedup key:
// a file edited in place without moving is never re-ingested.
type Resource struct {
	// ID is the unique identifier for the resource.
	ID string

	// Type is the kind of source file (image or pdf).
	Type ResourceType

	// Subtype refines PDFs into book or transcript. Empty for images.
	Subtype ResourceSubtype

	// FileName is the original base name of the source file.
	FileName string

	// FilePath is the absolute path of the source file (dedup key).
	FilePath string

	// RecordedAt is when an image was captured, derived from the file
	// name or modification time. Nil for PDFs and unstattable files.
	RecordedAt *time.Time

	// CreatedAt is when the resource was ingested.
	CreatedAt time.Time

	// Title is a human-readable title (file name without extension).
	Title string
}

// Chunk is the atomic retrievable unit of text. Every chunk is owned by
// exactly one resource and is paired 1:1 with an embedding vector in the
// vector index. Exactly one of Paragraph or Timestamp is populated,
// depending on the owning resource's type and subtype; image chunks
// carry neither.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// ResourceID links to the owning Resource.
	ResourceID string

	// Text is the raw chunk text. Never empty.
	Text string

	// Language is the detected script language of Text.
	Language Language

	// Page is the 1-based page number. Always nil in practice: text
	// extraction does not track page boundaries at paragraph
	// granularity, and guessing would be worse than omitting.
	Page *int

	// Paragraph is the 1-based paragraph ordinal within a book PDF.
	Paragraph *int

	// Timestamp is the literal transcript marker ("H:MM" or "H:MM:SS"),
	// stored verbatim rather than normalised to absolute time.
	Timestamp *string
}

// ChunkWithResource is a chunk joined with its owning resource's
// metadata, as returned by the record store's hydration queries.
type ChunkWithResource struct {
	Chunk    Chunk
	Resource Resource
}
