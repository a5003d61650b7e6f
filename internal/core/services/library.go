package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
)

// Library resolves the well-known locations inside an archive root.
// The root is always passed in explicitly so the core runs unchanged
// against any directory, including test temp dirs.
type Library struct {
	root string
}

// NewLibrary creates a Library rooted at the given directory.
func NewLibrary(root string) Library {
	return Library{root: filepath.Clean(root)}
}

// Root returns the archive root directory.
func (l Library) Root() string { return l.root }

// BooksDir returns the books directory.
func (l Library) BooksDir() string { return filepath.Join(l.root, "books") }

// VideosDir returns the videos directory.
func (l Library) VideosDir() string { return filepath.Join(l.root, "videos") }

// IndexDir returns the archive-wide index directory.
func (l Library) IndexDir() string { return filepath.Join(l.root, "_index") }

// StagingDir returns the staging area used for atomic ingestion.
func (l Library) StagingDir() string { return filepath.Join(l.root, ".staging") }

// Abs resolves a root-relative item path to an absolute path.
func (l Library) Abs(rel string) string { return filepath.Join(l.root, filepath.FromSlash(rel)) }

// Ensure LibrarySvc implements the interface.
var _ driving.LibraryService = (*LibrarySvc)(nil)

// LibrarySvc creates and validates the archive skeleton.
type LibrarySvc struct {
	lib     Library
	catalog driven.CatalogStore
}

// NewLibrarySvc creates a new library service.
func NewLibrarySvc(lib Library, catalog driven.CatalogStore) *LibrarySvc {
	return &LibrarySvc{lib: lib, catalog: catalog}
}

// Init creates a new archive at the root: the books and videos trees,
// the index directories with placeholder documents, and an empty
// catalog. Fails if the root already exists.
func (s *LibrarySvc) Init(_ context.Context) error {
	root := s.lib.Root()
	if _, err := os.Stat(root); err == nil {
		return fmt.Errorf("initialising library at %s: directory already exists", root)
	}

	dirs := []string{
		s.lib.IndexDir(),
		filepath.Join(s.lib.BooksDir(), "_index"),
		filepath.Join(s.lib.VideosDir(), "_index"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("initialising library: %w", err)
		}
	}

	placeholders := map[string]string{
		filepath.Join(s.lib.IndexDir(), "README.md"):              "# Library Index\n",
		filepath.Join(s.lib.IndexDir(), "categories.md"):          "# Categories Index\n",
		filepath.Join(s.lib.BooksDir(), "_index", "authors.md"):   "# Authors Index\n",
		filepath.Join(s.lib.BooksDir(), "_index", "titles.md"):    "# Titles Index\n",
		filepath.Join(s.lib.VideosDir(), "_index", "channels.md"): "# Channels Index\n",
	}
	for path, content := range placeholders {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("initialising library: %w", err)
		}
	}

	return s.catalog.Save(domain.Catalog{})
}

// Exists reports whether the root looks like an initialised archive.
func (s *LibrarySvc) Exists() bool {
	for _, dir := range []string{s.lib.Root(), s.lib.BooksDir(), s.lib.VideosDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
