// Package extractors provides implementations of the Extractor
// interface for the supported content formats. Each extractor knows
// how to pull text and embedded metadata out of one format.
//
// Extractors are registered with the ExtractorRegistry at startup.
package extractors
