package markdown

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles markdown files. The markdown itself is already the
// derived text representation, so Extract returns the body verbatim
// with any YAML front matter stripped.
type Extractor struct{}

// New creates a new markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format tag this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatMarkdown
}

// Extract returns the markdown body without its front matter block.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading markdown file: %w", err)
	}
	_, body := splitFrontMatter(string(raw))
	return body, nil
}

// Metadata parses the YAML front matter block, if present, for title,
// author and isbn keys. A malformed block is a parse failure, not an
// absence of metadata.
func (e *Extractor) Metadata(_ context.Context, path string) (domain.Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("reading markdown file: %w", err)
	}

	block, _ := splitFrontMatter(string(raw))
	if block == "" {
		return domain.Metadata{}, nil
	}

	var fm struct {
		Title  string `yaml:"title"`
		Author string `yaml:"author"`
		ISBN   string `yaml:"isbn"`
	}
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return domain.Metadata{}, domain.NewParseError(path, fmt.Errorf("invalid front matter: %w", err))
	}

	return domain.Metadata{
		Title:  strings.TrimSpace(fm.Title),
		Author: strings.TrimSpace(fm.Author),
		ISBN:   strings.TrimSpace(fm.ISBN),
	}, nil
}

// splitFrontMatter separates a leading YAML front matter block (fenced
// by "---" lines) from the document body. Returns an empty block when
// the document has no front matter.
func splitFrontMatter(content string) (block, body string) {
	const fence = "---"

	rest, found := strings.CutPrefix(content, fence+"\n")
	if !found {
		return "", content
	}

	end := strings.Index(rest, "\n"+fence)
	if end < 0 {
		return "", content
	}

	body = rest[end+len("\n"+fence):]
	body = strings.TrimPrefix(body, "\n")
	return rest[:end], body
}
