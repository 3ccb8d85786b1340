// Package connectors provides source scanners. Each connector knows
// how to enumerate and watch candidate files from a specific source
// type; only the local filesystem is implemented today.
package connectors
