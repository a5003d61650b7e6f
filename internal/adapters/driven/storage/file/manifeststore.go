package file

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// ManifestFileName is the manifest's file name inside every item
// directory.
const ManifestFileName = "manifest.yaml"

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore reads and writes manifest.yaml records. Saves always
// rewrite the whole file; manifests are small and never patched.
type ManifestStore struct{}

// NewManifestStore creates a new YAML manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{}
}

// LoadBook reads the book manifest from dir.
func (s *ManifestStore) LoadBook(dir string) (domain.BookManifest, error) {
	var m domain.BookManifest
	if err := s.load(dir, &m); err != nil {
		return domain.BookManifest{}, err
	}
	if m.Title == "" || m.Author == "" {
		return domain.BookManifest{}, fmt.Errorf("%w: manifest in %s lacks title or author", domain.ErrMissingMetadata, dir)
	}
	return m, nil
}

// SaveBook writes the book manifest into dir.
func (s *ManifestStore) SaveBook(dir string, m domain.BookManifest) error {
	return s.save(dir, m)
}

// LoadVideo reads the video manifest from dir.
func (s *ManifestStore) LoadVideo(dir string) (domain.VideoManifest, error) {
	var m domain.VideoManifest
	if err := s.load(dir, &m); err != nil {
		return domain.VideoManifest{}, err
	}
	if m.VideoID == "" || m.Title == "" {
		return domain.VideoManifest{}, fmt.Errorf("%w: manifest in %s lacks video id or title", domain.ErrMissingMetadata, dir)
	}
	return m, nil
}

// SaveVideo writes the video manifest into dir.
func (s *ManifestStore) SaveVideo(dir string, m domain.VideoManifest) error {
	return s.save(dir, m)
}

// HasManifest reports whether dir contains a manifest file.
func (s *ManifestStore) HasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ManifestFileName))
	return err == nil && info.Mode().IsRegular()
}

func (s *ManifestStore) load(dir string, out any) error {
	path := filepath.Join(dir, ManifestFileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: no manifest in %s", domain.ErrNotFound, dir)
		}
		return fmt.Errorf("reading manifest: %w", err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return domain.NewParseError(path, err)
	}
	return nil
}

func (s *ManifestStore) save(dir string, m any) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), raw, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
