package file

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// CatalogFileName is the catalog document's file name at the archive
// root.
const CatalogFileName = "catalog.yaml"

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore persists the catalog as a single YAML document at the
// archive root. The whole file is rewritten on every save.
type CatalogStore struct {
	root string
}

// NewCatalogStore creates a catalog store for the given archive root.
func NewCatalogStore(root string) *CatalogStore {
	return &CatalogStore{root: root}
}

// Path returns the catalog file path.
func (s *CatalogStore) Path() string {
	return filepath.Join(s.root, CatalogFileName)
}

// Load returns the persisted catalog. A missing file yields an empty
// catalog, not an error: a freshly created archive has no entries yet.
func (s *CatalogStore) Load() (domain.Catalog, error) {
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Catalog{}, nil
		}
		return domain.Catalog{}, fmt.Errorf("reading catalog: %w", err)
	}

	var doc catalogDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.Catalog{}, domain.NewParseError(s.Path(), err)
	}
	return domain.Catalog{
		Books:       doc.Books,
		Videos:      doc.Videos,
		LastUpdated: doc.LastUpdated,
	}, nil
}

// Save rewrites the catalog document, including its derived stats
// block so the file is useful to read on its own.
func (s *CatalogStore) Save(c domain.Catalog) error {
	doc := catalogDoc{
		Books:       c.Books,
		Videos:      c.Videos,
		LastUpdated: c.LastUpdated,
		Stats:       c.Stats(),
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(s.Path(), raw, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// catalogDoc is the on-disk shape of the catalog. The stats block is
// derived and ignored on load; the summaries are the actual content.
type catalogDoc struct {
	Books       []domain.BookSummary  `yaml:"books"`
	Videos      []domain.VideoSummary `yaml:"videos"`
	LastUpdated string                `yaml:"last_updated,omitempty"`
	Stats       domain.Stats          `yaml:"stats,omitempty"`
}
