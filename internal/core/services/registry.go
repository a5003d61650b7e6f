package services

import (
	"fmt"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// ExtractorRegistry dispatches to format extractors by format tag.
// Format addition stays localised: register a new extractor and the
// rest of the pipeline picks it up.
type ExtractorRegistry struct {
	extractors map[domain.Format]driven.Extractor
}

// NewExtractorRegistry creates a registry over the given extractors.
func NewExtractorRegistry(extractors ...driven.Extractor) *ExtractorRegistry {
	m := make(map[domain.Format]driven.Extractor, len(extractors))
	for _, e := range extractors {
		m[e.Format()] = e
	}
	return &ExtractorRegistry{extractors: m}
}

// Get returns the extractor for a format tag, or an error wrapping
// domain.ErrUnsupportedFormat when none is registered.
func (r *ExtractorRegistry) Get(format domain.Format) (driven.Extractor, error) {
	e, ok := r.extractors[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	return e, nil
}

// ForPath detects the file's format and returns its extractor.
func (r *ExtractorRegistry) ForPath(path string) (driven.Extractor, error) {
	format := domain.DetectFormat(path)
	if format == domain.FormatUnknown {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
	return r.Get(format)
}

// Decomposer returns the decomposer for a format, if its extractor
// supports structural decomposition.
func (r *ExtractorRegistry) Decomposer(format domain.Format) (driven.Decomposer, bool) {
	e, ok := r.extractors[format]
	if !ok {
		return nil, false
	}
	d, ok := e.(driven.Decomposer)
	return d, ok
}
