// Package filesystem enumerates and watches source files on local disk.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/granthika-labs/granthika/internal/core/ports/driven"
	"github.com/granthika-labs/granthika/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.Scanner = (*Connector)(nil)

// supportedExts are the file extensions the pipeline can segment.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// Connector walks and watches directories for ingestable files.
type Connector struct{}

// New creates a filesystem connector.
func New() *Connector {
	return &Connector{}
}

// Scan walks root recursively and returns absolute paths of supported
// files in traversal order. Hidden directories are descended into like
// any other; the extension filter is the only gate.
func (c *Connector) Scan(ctx context.Context, root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving scan root: %w", err)
	}

	var paths []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if supportedExts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", absRoot, err)
	}

	logger.Debug("scanned %s: %d candidate files", absRoot, len(paths))
	return paths, nil
}

// Watch emits supported files created or written under root until ctx
// is cancelled. Subdirectories created while watching are added to the
// watch set.
func (c *Connector) Watch(ctx context.Context, root string) (<-chan string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving watch root: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the whole existing tree; fsnotify is not recursive.
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", absRoot, err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.handleEvent(ctx, watcher, event, out)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watch error: %v", err)
			}
		}
	}()

	logger.Info("watching %s for new files", absRoot)
	return out, nil
}

func (c *Connector) handleEvent(ctx context.Context, watcher *fsnotify.Watcher, event fsnotify.Event, out chan<- string) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	// New directories join the watch set so files landing in them
	// are seen too.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				logger.Error("watching new directory %s: %v", event.Name, err)
			}
			return
		}
	}

	if !supportedExts[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}

	select {
	case out <- event.Name:
	case <-ctx.Done():
	}
}
