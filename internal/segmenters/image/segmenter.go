// Package image segments OCR'd photographs into single-chunk resources.
package image

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/granthika-labs/granthika/internal/core/domain"
	"github.com/granthika-labs/granthika/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Filename timestamp patterns, tried in order. All parsed as UTC.
// The third pattern accepts either "T" or "_" between date and time.
var filenamePatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{8}_\d{6}`), "20060102_150405"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}`), "2006-01-02_15-04-05"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T_]\d{2}:\d{2}:\d{2}`), "2006-01-02T15:04:05"},
}

// Segmenter turns an image file into a one-chunk resource using OCR.
type Segmenter struct {
	ocr driven.OCRService
}

// New creates an image segmenter backed by the given OCR service.
func New(ocr driven.OCRService) *Segmenter {
	return &Segmenter{ocr: ocr}
}

// Segment runs OCR over the image and produces a single chunk holding
// the whole recognised text. Images with no recognisable text are
// silently skipped: the nil resource tells the pipeline there is
// nothing to index, which is not a failure.
func (s *Segmenter) Segment(ctx context.Context, path string) (*domain.Resource, []domain.Chunk, error) {
	text, err := s.ocr.ExtractText(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("ocr %s: %w", path, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, nil
	}

	resource := domain.Resource{
		ID:         uuid.New().String(),
		Type:       domain.ResourceImage,
		Subtype:    domain.SubtypeNone,
		FileName:   filepath.Base(path),
		FilePath:   path,
		RecordedAt: recordedAt(path),
		CreatedAt:  time.Now().UTC(),
		Title:      titleFromPath(path),
	}

	chunk := domain.Chunk{
		ID:         uuid.New().String(),
		ResourceID: resource.ID,
		Text:       text,
		Language:   domain.DetectLanguage(text),
	}

	return &resource, []domain.Chunk{chunk}, nil
}

// recordedAt derives the capture time from the file name when it embeds
// a timestamp, falling back to the file's modification time. Returns
// nil only when the file cannot be stat'd.
func recordedAt(path string) *time.Time {
	name := filepath.Base(path)
	for _, p := range filenamePatterns {
		match := p.re.FindString(name)
		if match == "" {
			continue
		}
		// Canonicalise the date/time separator for the third pattern.
		if strings.Contains(p.layout, "T") {
			match = strings.Replace(match, "_", "T", 1)
		}
		ts, err := time.ParseInLocation(p.layout, match, time.UTC)
		if err != nil {
			continue
		}
		return &ts
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	mtime := info.ModTime().UTC()
	return &mtime
}

func titleFromPath(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
