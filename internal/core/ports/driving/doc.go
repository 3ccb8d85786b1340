// Package driving defines the interfaces through which the outside
// world calls INTO core services.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI, TUI, and HTTP adapters depend
// on them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package or driven port
package driving
