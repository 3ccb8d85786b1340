// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordStore: resource/chunk/user persistence (SQLite)
//   - VectorIndex: in-memory similarity search with snapshot persistence
//   - EmbeddingService: generates vector embeddings (Ollama)
//   - Scanner: enumerates candidate source files
//   - Segmenter: splits extracted text into chunks
//   - OCRService: extracts text from images (Tesseract)
//   - PDFTextService: extracts text from PDFs (Poppler)
//
// # Optional Interfaces
//
//   - LLMService: streaming chat completion. Without it, the chat
//     surface reports unavailable; search and ingestion still work.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or segmenter package
package driven
