package pdf

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// lineTimecodeRe matches a time code at the start of a line. The marker
// is kept verbatim; normalising "0:05" to absolute time would lose the
// form viewers see in the player.
var lineTimecodeRe = regexp.MustCompile(`^(\d{1,2}:\d{2}(?::\d{2})?)\s*(.*)$`)

// minSegmentLen drops segments whose text is too short to retrieve.
const minSegmentLen = 5

// segmentTranscript splits time-coded text into one chunk per segment.
// A line opening with a time code starts a new segment; following
// lines without one are continuations, joined with single spaces.
// Text before the first time code is discarded.
func segmentTranscript(resourceID, text string) []domain.Chunk {
	var chunks []domain.Chunk
	var current []string
	var timestamp string

	flush := func() {
		if timestamp == "" {
			return
		}
		joined := strings.TrimSpace(strings.Join(current, " "))
		if len(joined) >= minSegmentLen {
			ts := timestamp
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				ResourceID: resourceID,
				Text:       joined,
				Language:   domain.DetectLanguage(joined),
				Timestamp:  &ts,
			})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := lineTimecodeRe.FindStringSubmatch(line); m != nil {
			flush()
			timestamp = m[1]
			if m[2] != "" {
				current = append(current, m[2])
			}
			continue
		}
		if timestamp != "" {
			current = append(current, line)
		}
	}
	flush()

	return chunks
}
