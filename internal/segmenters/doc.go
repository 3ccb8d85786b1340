// Package segmenters contains the per-resource-type segmenter
// implementations. Each subpackage turns one kind of source file into a
// Resource and its Chunks.
//
// Segmenters:
//
//   - image: one chunk per image from OCR output
//   - pdf: books split into paragraphs, transcripts into time-coded
//     segments, classified by timestamp density
//
// The ingestion service routes files to segmenters by extension.
package segmenters
