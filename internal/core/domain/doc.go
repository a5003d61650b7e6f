// Package domain contains the core types for the librarian archive:
// items (books and video transcripts), their manifests, the derived
// catalog, format tags, and the shared error taxonomy.
//
// Types here carry no filesystem state beyond the relative paths
// recorded in manifests, so the whole core can run against an
// arbitrary archive root.
package domain
