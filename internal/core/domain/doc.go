// Package domain defines the core business entities for Granthika.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Resource: A source document (scanned image or PDF) tracked by file path
//   - Chunk: The atomic retrievable unit of text with one embedding vector
//   - Language: The detected script language of a text span
//   - SearchResult: A ranked, type-tagged retrieval hit
//
// It also holds the two pure algorithms the rest of the system is built
// around: Unicode-script language detection and cosine similarity.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
