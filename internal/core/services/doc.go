// Package services implements the core logic of the librarian:
// metadata resolution, section assembly, folder scanning, ingestion
// orchestration, catalog maintenance and index generation.
//
// Services depend only on the ports; every filesystem location is
// derived from an explicitly supplied archive root.
package services
