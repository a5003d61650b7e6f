// Package driven defines the interfaces the core depends on: format
// extractors and the stores that persist manifests, the catalog and
// configuration. Adapters implement these.
package driven
