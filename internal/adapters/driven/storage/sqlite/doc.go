// Package sqlite provides the SQLite-backed record store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements the full RecordStore
// port through a single database connection:
//
//   - ResourceStore: resource and chunk persistence
//   - UserStore: account persistence
//   - HistoryStore: chat transcript persistence (capped at ten per user)
//   - PurchaseStore: resource pricing and purchase records
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.granthika/data/granthika.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
