// Package poppler provides a PDF text extraction adapter that shells
// out to pdftotext from the Poppler utilities.
package poppler

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
var _ driven.PDFTextService = (*Service)(nil)

// Default configuration values.
const (
	DefaultBinary  = "pdftotext"
	DefaultTimeout = 2 * time.Minute
)

// Config holds configuration for the Poppler text extraction service.
type Config struct {
	// Binary is the pdftotext executable (default: pdftotext on PATH).
	Binary string

	// Timeout bounds a single extraction run (default: 2m).
	Timeout time.Duration
}

// Service extracts PDF text layers via the pdftotext CLI.
type Service struct {
	binary  string
	timeout time.Duration
}

// New creates a Poppler text extraction service.
func New(cfg Config) *Service {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Service{
		binary:  cfg.Binary,
		timeout: cfg.Timeout,
	}
}

// ExtractText runs pdftotext over the PDF at path. Layout mode keeps
// line breaks close to the source so paragraph and transcript
// segmentation see the document's real structure.
func (s *Service) ExtractText(ctx context.Context, path string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.binary, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return "", fmt.Errorf("pdftotext timed out on %s: %w", path, runCtx.Err())
		}
		return "", fmt.Errorf("pdftotext %s: %w: %s", path, err, stderr.String())
	}

	logger.Debug("pdf text %s: %d bytes in %s", path, stdout.Len(), time.Since(start).Round(time.Millisecond))
	return stdout.String(), nil
}
