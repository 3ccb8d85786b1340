// Package migrations embeds the SQL schema migrations for the record
// store.
package migrations

import "embed"

// FS holds every .sql migration, embedded at compile time so the
// binary needs no files on disk.
//
//go:embed *.sql
var FS embed.FS
