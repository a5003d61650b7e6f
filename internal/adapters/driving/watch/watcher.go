// Package watch keeps the catalog and indices in sync with manual
// edits: it watches the archive trees and re-derives the catalog and
// index documents whenever a manifest changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
	"github.com/custodia-labs/librarian-cli/internal/core/services"
	"github.com/custodia-labs/librarian-cli/internal/logger"
)

// debounceDelay batches bursts of filesystem events (editors write
// several times per save) into one rebuild.
const debounceDelay = 500 * time.Millisecond

// Watcher reacts to manifest changes under the archive root.
type Watcher struct {
	lib     services.Library
	catalog driving.CatalogService
	index   driving.IndexService

	// OnSync, when set, is called after each completed rebuild.
	OnSync func()
}

// New creates a watcher over the given archive.
func New(lib services.Library, catalog driving.CatalogService, index driving.IndexService) *Watcher {
	return &Watcher{lib: lib, catalog: catalog, index: index}
}

// Run watches until the context is cancelled. Each batch of manifest
// events triggers a catalog rebuild followed by index regeneration.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	for _, base := range []string{w.lib.BooksDir(), w.lib.VideosDir()} {
		if err := watchTree(fw, base); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// New group or item directories need their own watches.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchTree(fw, event.Name)
				}
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("manifest change: %s %s", event.Op, event.Name)
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.sync(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) sync(ctx context.Context) {
	catalog, err := w.catalog.Rebuild(ctx)
	if err != nil {
		logger.Warn("catalog rebuild failed: %v", err)
		return
	}
	if err := w.index.Regenerate(ctx); err != nil {
		logger.Warn("index regeneration failed: %v", err)
		return
	}
	logger.Info("resynced: %d books, %d videos", len(catalog.Books), len(catalog.Videos))
	if w.OnSync != nil {
		w.OnSync()
	}
}

// relevant reports whether an event concerns a manifest file.
func relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != "manifest.yaml" {
		return false
	}
	return event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename)
}

// watchTree registers base and its directories with the watcher,
// skipping the generated _index trees.
func watchTree(fw *fsnotify.Watcher, base string) error {
	return filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), "_index") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			logger.Warn("cannot watch %s: %v", path, err)
		}
		return nil
	})
}
