package driven

import (
	"context"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

// Extractor produces raw extracted text from a source file of one
// specific format. Implementations fail with *domain.ParseError on
// malformed input and never return partial text silently.
type Extractor interface {
	// Format returns the format tag this extractor handles.
	Format() domain.Format

	// Extract returns the full text content of the file.
	Extract(ctx context.Context, path string) (string, error)

	// Metadata returns format-embedded metadata. Formats without
	// embedded metadata return the zero value and no error.
	Metadata(ctx context.Context, path string) (domain.Metadata, error)
}

// Decomposer is implemented by extractors whose format carries an
// intrinsic ordered section list (the EPUB spine). Sections come back
// in declared reading order, converted to markdown, unfiltered;
// retention filtering and numbering are core logic.
type Decomposer interface {
	Decompose(ctx context.Context, path string) ([]domain.Section, error)
}
