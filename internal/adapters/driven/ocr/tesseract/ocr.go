// Package tesseract provides an OCR adapter that shells out to the
// tesseract binary.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

// Default configuration values.
const (
	DefaultBinary    = "tesseract"
	DefaultLanguages = "eng+hin"
	DefaultTimeout   = 2 * time.Minute
)

// Config holds configuration for the Tesseract OCR service.
type Config struct {
	// Binary is the tesseract executable (default: tesseract on PATH).
	Binary string

	// Languages is the tesseract language pack spec (default: eng+hin).
	Languages string

	// Timeout bounds a single OCR run (default: 2m).
	Timeout time.Duration
}

// Service extracts text from images via the tesseract CLI.
type Service struct {
	binary    string
	languages string
	timeout   time.Duration
}

// New creates a Tesseract OCR service.
func New(cfg Config) *Service {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Languages == "" {
		cfg.Languages = DefaultLanguages
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		binary:    cfg.Binary,
		languages: cfg.Languages,
		timeout:   cfg.Timeout,
	}
}

// ExtractText runs tesseract over the image at path. The "-" output
// argument sends recognised text to stdout. An image with no
// recognisable text yields an empty string, which is not an error.
func (s *Service) ExtractText(ctx context.Context, path string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.binary, path, "-", "-l", s.languages)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return "", fmt.Errorf("tesseract timed out on %s: %w", path, runCtx.Err())
		}
		return "", fmt.Errorf("tesseract %s: %w: %s", path, err, stderr.String())
	}

	logger.Debug("ocr %s: %d bytes in %s", path, stdout.Len(), time.Since(start).Round(time.Millisecond))
	return stdout.String(), nil
}
