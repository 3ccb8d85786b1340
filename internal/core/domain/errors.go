package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or missing request input.
	// Maps to a 4xx response at the HTTP boundary.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates an attempt to embed empty or
	// whitespace-only text.
	ErrEmptyInput = errors.New("cannot embed empty text")

	// ErrDimensionMismatch indicates a vector whose length does not
	// match the configured embedding dimension. This is a programming
	// or configuration error and is always surfaced, never coerced.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrChatUnavailable indicates the chat backend is unreachable.
	// Surfaced as a distinct retryable condition (503), never folded
	// into a generic internal error.
	ErrChatUnavailable = errors.New("chat backend unavailable")

	// ErrIngestFatal indicates an infrastructure-level failure that
	// aborts an ingestion run. Per-file failures are collected as
	// FileError records instead and never carry this sentinel.
	ErrIngestFatal = errors.New("ingestion aborted")

	// ErrUnauthorized indicates a request without a valid session.
	ErrUnauthorized = errors.New("unauthorized")
)
