package domain

// FileError records one source file whose processing failed during an
// ingestion run. Per-file failures never abort the batch; they are
// collected and reported alongside the success counts.
type FileError struct {
	// Path is the file that failed.
	Path string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap exposes the underlying failure to errors.Is/As.
func (e FileError) Unwrap() error {
	return e.Err
}

// IngestReport summarises an ingestion run. Files that failed or were
// silently skipped (empty OCR output, already indexed) are excluded
// from FilesProcessed and ChunksCreated.
type IngestReport struct {
	// FilesProcessed is the number of files fully committed.
	FilesProcessed int

	// ChunksCreated is the number of chunks committed across all files.
	ChunksCreated int

	// FilesSkipped is the number of files skipped as already indexed.
	FilesSkipped int

	// Errors lists per-file failures. The run still completed.
	Errors []FileError
}
