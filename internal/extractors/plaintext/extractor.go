package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format tag this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatText
}

// Extract returns the file content verbatim.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return string(raw), nil
}

// Metadata returns the zero value: plain text carries no embedded
// metadata, the heuristic text scan is the only source.
func (e *Extractor) Metadata(_ context.Context, _ string) (domain.Metadata, error) {
	return domain.Metadata{}, nil
}
