// Package file provides file-based implementations of the storage
// driven ports. Manifests and the catalog are persisted as YAML
// documents inside the archive.
//
// Adapters:
//   - ManifestStore: per-item manifest.yaml records
//   - CatalogStore: the single catalog.yaml document at the root
package file
