// Package services implements the core business logic.
//
// Services implement the driving ports and depend only on driven ports
// and domain types. They are constructed in cmd/granthika with their
// infrastructure adapters injected.
//
//   - SearchService: query embedding, vector scan, result hydration
//   - IngestService: scan, segment, embed, commit pipeline
//   - ChatService: retrieval-grounded streaming chat
//   - AuthService: accounts, chat history, purchases
package services
