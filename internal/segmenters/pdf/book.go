package pdf

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// paragraphSplitRe splits on blank lines, tolerating whitespace-only
// separator lines.
var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// minParagraphLen drops fragments too short to mean anything, like
// stray page numbers and running headers.
const minParagraphLen = 10

// segmentBook splits book text into one chunk per paragraph. Paragraph
// ordinals are 1-based positions in the blank-line split, so a dropped
// fragment still consumes its ordinal and the numbering of everything
// after it stays stable. Page stays nil: text extraction does not
// track page boundaries at paragraph granularity.
func segmentBook(resourceID, text string) []domain.Chunk {
	parts := paragraphSplitRe.Split(text, -1)

	var chunks []domain.Chunk
	for i, part := range parts {
		para := strings.TrimSpace(part)
		if len(para) < minParagraphLen {
			continue
		}
		ordinal := i + 1
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			ResourceID: resourceID,
			Text:       para,
			Language:   domain.DetectLanguage(para),
			Paragraph:  &ordinal,
		})
	}
	return chunks
}
