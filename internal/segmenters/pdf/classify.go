package pdf

import (
	"regexp"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// timecodeRe matches "M:SS", "MM:SS", "H:MM:SS" style markers.
var timecodeRe = regexp.MustCompile(`\d{1,2}:\d{2}(:\d{2})?`)

// transcriptThreshold is the minimum number of time codes before a PDF
// counts as a transcript. Books quote the odd time; transcripts are
// saturated with them.
const transcriptThreshold = 5

// Classify decides whether extracted PDF text is a transcript or a
// book by counting time-code markers.
func Classify(text string) domain.ResourceSubtype {
	if len(timecodeRe.FindAllString(text, transcriptThreshold)) >= transcriptThreshold {
		return domain.SubtypeTranscript
	}
	return domain.SubtypeBook
}
