package project

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/piwi3910/SibGlass/internal/model"
)

// reloadDelay collapses the burst of events an editor produces on save.
const reloadDelay = 100 * time.Millisecond

// CatalogHandler receives the reloaded catalog, or the error that prevented
// reloading it.
type CatalogHandler func(catalog model.GlassCatalog, err error)

// WatchCatalog watches the catalog file at path and calls onChange with the
// reloaded catalog whenever it is written, created or renamed into place.
// The parent directory is watched so that editors replacing the file are
// noticed. Watching starts before WatchCatalog returns and stops when ctx is
// done; the returned channel is closed once the watcher has shut down.
func WatchCatalog(ctx context.Context, path string, onChange CatalogHandler) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create catalog watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("unable to watch %s: %w", dir, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		runCatalogWatch(ctx, watcher, path, onChange)
	}()
	return done, nil
}

func runCatalogWatch(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange CatalogHandler) {
	name := filepath.Base(path)
	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			onChange(model.GlassCatalog{}, fmt.Errorf("watching catalog: %w", err))
		case <-timer.C:
			catalog, exists, err := LoadCatalog(path)
			if err == nil && !exists {
				// renamed away; wait for the replacement
				continue
			}
			onChange(catalog, err)
		case <-ctx.Done():
			return
		}
	}
}
