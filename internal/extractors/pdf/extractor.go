package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF files via ledongthuc/pdf (pure Go, no CGO).
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format tag this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPDF
}

// Extract returns the plain text of every page, joined with a blank
// line between pages. An unreadable page fails the whole document;
// partial text must never pass as a successful extraction. A PDF that
// opens but yields no text at all (scanned or image-based) is likewise
// reported as a parse failure rather than an empty success.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", domain.NewParseError(path, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", domain.NewParseError(path, fmt.Errorf("page %d: %w", i, err))
		}
		pages = append(pages, text)
	}

	text := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if text == "" {
		return "", domain.NewParseError(path, fmt.Errorf("no extractable text, document may be scanned or image-based"))
	}
	return text, nil
}

// Metadata reads the document information dictionary, when present.
func (e *Extractor) Metadata(_ context.Context, path string) (domain.Metadata, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return domain.Metadata{}, domain.NewParseError(path, err)
	}
	defer f.Close()

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return domain.Metadata{}, nil
	}
	return domain.Metadata{
		Title:  infoString(info, "Title"),
		Author: infoString(info, "Author"),
	}, nil
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.RawString())
}
