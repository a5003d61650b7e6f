package driving

import (
	"context"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

// CatalogService maintains the derived catalog document.
type CatalogService interface {
	// Load returns the current persisted catalog.
	Load(ctx context.Context) (domain.Catalog, error)

	// AddBook upserts the book's summary keyed by item path and
	// rewrites the catalog document.
	AddBook(ctx context.Context, book domain.Book) error

	// AddVideo upserts the video's summary keyed by item path and
	// rewrites the catalog document.
	AddVideo(ctx context.Context, video domain.Video) error

	// Rebuild discards the catalog and reconstructs it by walking
	// every manifest under the archive root. This is the recovery
	// path for any manifest/catalog divergence.
	Rebuild(ctx context.Context) (domain.Catalog, error)

	// Stats returns aggregate counts over the current catalog.
	Stats(ctx context.Context) (domain.Stats, error)

	// Check verifies that every catalog entry resolves to a directory
	// holding a loadable manifest. It returns the offending paths and
	// an error wrapping domain.ErrCatalogInconsistency when any entry
	// fails.
	Check(ctx context.Context) ([]string, error)
}

// IndexService regenerates the navigation index documents.
type IndexService interface {
	// Regenerate rewrites all generated index documents from the
	// current catalog. It never modifies manifests or the catalog.
	Regenerate(ctx context.Context) error
}

// LibraryService manages the archive skeleton itself.
type LibraryService interface {
	// Init creates a new archive at the service's root. Fails if the
	// directory already exists.
	Init(ctx context.Context) error

	// Exists reports whether the root looks like an initialised archive.
	Exists() bool
}
