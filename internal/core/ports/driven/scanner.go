package driven

import "context"

// Scanner enumerates candidate source files under a root directory.
type Scanner interface {
	// Scan walks root recursively and returns the absolute paths of
	// supported files (.jpg, .jpeg, .pdf), in traversal order.
	// Unreadable subdirectories abort the walk with an error.
	Scan(ctx context.Context, root string) ([]string, error)

	// Watch emits the path of each supported file created or written
	// under root until ctx is cancelled. Used by serve --watch.
	Watch(ctx context.Context, root string) (<-chan string, error)
}
