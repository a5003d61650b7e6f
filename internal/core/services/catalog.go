package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
	"github.com/custodia-labs/librarian-cli/internal/logger"
)

// Ensure CatalogSvc implements the interface.
var _ driving.CatalogService = (*CatalogSvc)(nil)

// CatalogSvc maintains the derived catalog document. Incremental adds
// are an optimisation; Rebuild over the manifests on disk is the
// ground truth and the two must agree for the same set of manifests.
type CatalogSvc struct {
	lib       Library
	manifests driven.ManifestStore
	store     driven.CatalogStore
	now       func() time.Time
}

// NewCatalogSvc creates a new catalog service.
func NewCatalogSvc(lib Library, manifests driven.ManifestStore, store driven.CatalogStore) *CatalogSvc {
	return &CatalogSvc{lib: lib, manifests: manifests, store: store, now: time.Now}
}

// Load returns the current persisted catalog.
func (s *CatalogSvc) Load(_ context.Context) (domain.Catalog, error) {
	return s.store.Load()
}

// AddBook upserts a book summary keyed by item path and rewrites the
// catalog document.
func (s *CatalogSvc) AddBook(_ context.Context, book domain.Book) error {
	catalog, err := s.store.Load()
	if err != nil {
		return err
	}
	catalog.UpsertBook(book.Summary())
	return s.save(&catalog)
}

// AddVideo upserts a video summary keyed by item path and rewrites
// the catalog document.
func (s *CatalogSvc) AddVideo(_ context.Context, video domain.Video) error {
	catalog, err := s.store.Load()
	if err != nil {
		return err
	}
	catalog.UpsertVideo(video.Summary())
	return s.save(&catalog)
}

// Rebuild discards the current catalog and reconstructs it from every
// manifest found under the archive root, then persists the result.
// Unreadable manifests are logged and skipped so one broken item
// cannot block recovery of the rest.
func (s *CatalogSvc) Rebuild(_ context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog

	for _, dir := range s.itemDirs(s.lib.BooksDir()) {
		manifest, err := s.manifests.LoadBook(dir)
		if err != nil {
			logger.Warn("skipping unreadable book manifest in %s: %v", dir, err)
			continue
		}
		book := domain.Book{Path: s.relPath(dir), Manifest: manifest}
		catalog.UpsertBook(book.Summary())
	}

	for _, dir := range s.itemDirs(s.lib.VideosDir()) {
		manifest, err := s.manifests.LoadVideo(dir)
		if err != nil {
			logger.Warn("skipping unreadable video manifest in %s: %v", dir, err)
			continue
		}
		video := domain.Video{Path: s.relPath(dir), Manifest: manifest}
		catalog.UpsertVideo(video.Summary())
	}

	if err := s.save(&catalog); err != nil {
		return domain.Catalog{}, err
	}
	return catalog, nil
}

// Stats returns aggregate counts over the current catalog.
func (s *CatalogSvc) Stats(_ context.Context) (domain.Stats, error) {
	catalog, err := s.store.Load()
	if err != nil {
		return domain.Stats{}, err
	}
	return catalog.Stats(), nil
}

// Check verifies that every catalog entry's path resolves to a
// directory holding a loadable manifest.
func (s *CatalogSvc) Check(_ context.Context) ([]string, error) {
	catalog, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var bad []string
	for _, b := range catalog.Books {
		if _, err := s.manifests.LoadBook(s.lib.Abs(b.Path)); err != nil {
			bad = append(bad, b.Path)
		}
	}
	for _, v := range catalog.Videos {
		if _, err := s.manifests.LoadVideo(s.lib.Abs(v.Path)); err != nil {
			bad = append(bad, v.Path)
		}
	}

	if len(bad) > 0 {
		return bad, fmt.Errorf("%w: %d catalog entries do not resolve to a valid manifest", domain.ErrCatalogInconsistency, len(bad))
	}
	return nil, nil
}

// save sorts, stamps and persists the catalog. Empty kinds are
// normalised to empty slices so a freshly rebuilt catalog compares
// equal to one decoded from disk, where `books: []` never yields nil.
func (s *CatalogSvc) save(c *domain.Catalog) error {
	if c.Books == nil {
		c.Books = []domain.BookSummary{}
	}
	if c.Videos == nil {
		c.Videos = []domain.VideoSummary{}
	}
	c.Sort()
	c.LastUpdated = s.now().Format(time.RFC3339)
	return s.store.Save(*c)
}

// itemDirs lists the item directories two levels below base
// (grouping-key/item), skipping the _index directory.
func (s *CatalogSvc) itemDirs(base string) []string {
	var dirs []string

	groups, err := os.ReadDir(base)
	if err != nil {
		return nil
	}
	for _, group := range groups {
		if !group.IsDir() || group.Name() == "_index" {
			continue
		}
		items, err := os.ReadDir(filepath.Join(base, group.Name()))
		if err != nil {
			continue
		}
		for _, item := range items {
			dir := filepath.Join(base, group.Name(), item.Name())
			if item.IsDir() && s.manifests.HasManifest(dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// relPath converts an absolute item directory to the slash-separated
// path relative to the archive root recorded in the catalog.
func (s *CatalogSvc) relPath(dir string) string {
	rel, err := filepath.Rel(s.lib.Root(), dir)
	if err != nil {
		return dir
	}
	return path.Clean(filepath.ToSlash(rel))
}
