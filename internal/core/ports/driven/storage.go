package driven

import "github.com/custodia-labs/librarian-cli/internal/core/domain"

// ManifestStore loads and saves per-item manifest records.
// Directories are absolute paths; a load after a save must yield an
// equal record (round-trip property).
type ManifestStore interface {
	LoadBook(dir string) (domain.BookManifest, error)
	SaveBook(dir string, m domain.BookManifest) error
	LoadVideo(dir string) (domain.VideoManifest, error)
	SaveVideo(dir string, m domain.VideoManifest) error

	// HasManifest reports whether dir contains a manifest file.
	HasManifest(dir string) bool
}

// CatalogStore persists the single catalog document at the archive
// root. Save always rewrites the whole document; the catalog is never
// patched in place.
type CatalogStore interface {
	// Load returns the persisted catalog, or an empty catalog when
	// none exists yet.
	Load() (domain.Catalog, error)
	Save(c domain.Catalog) error
}
