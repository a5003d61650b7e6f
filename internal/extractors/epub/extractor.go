// Package epub reads EPUB containers directly: the OCF zip layout,
// the OPF package document and the spine are small, stable formats and
// parsing them here keeps the reading order exactly as declared.
package epub

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
)

// Ensure Extractor implements both interfaces.
var (
	_ driven.Extractor  = (*Extractor)(nil)
	_ driven.Decomposer = (*Extractor)(nil)
)

// Extractor handles EPUB files.
type Extractor struct{}

// New creates a new EPUB extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns the format tag this extractor handles.
func (e *Extractor) Format() domain.Format {
	return domain.FormatEPUB
}

// Extract returns the whole book as markdown: every spine document in
// declared reading order, converted from XHTML.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	sections, err := e.Decompose(ctx, path)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		if content := strings.TrimSpace(sec.Content); content != "" {
			parts = append(parts, content)
		}
	}
	if len(parts) == 0 {
		return "", domain.NewParseError(path, fmt.Errorf("no readable spine documents"))
	}
	return strings.Join(parts, "\n\n"), nil
}

// Metadata reads the Dublin Core title, creator and ISBN identifier
// from the package document.
func (e *Extractor) Metadata(_ context.Context, path string) (domain.Metadata, error) {
	book, err := open(path)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer book.Close()

	meta := domain.Metadata{
		Title:  strings.TrimSpace(book.pkg.Metadata.Title),
		Author: strings.TrimSpace(book.pkg.Metadata.Creator),
	}
	for _, id := range book.pkg.Metadata.Identifiers {
		if isbn, ok := parseISBN(id); ok {
			meta.ISBN = isbn
			break
		}
	}
	return meta, nil
}

// Decompose returns one section per spine document, in declared
// reading order, converted to markdown. No filtering happens here;
// which sections survive is the caller's decision.
func (e *Extractor) Decompose(_ context.Context, path string) ([]domain.Section, error) {
	book, err := open(path)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	var sections []domain.Section
	for _, idref := range book.pkg.Spine.ItemRefs {
		href, ok := book.hrefs[idref.IDRef]
		if !ok {
			continue
		}
		raw, err := book.readFile(href)
		if err != nil {
			return nil, domain.NewParseError(path, fmt.Errorf("spine document %s: %w", href, err))
		}
		markdown, err := htmltomarkdown.ConvertString(string(raw))
		if err != nil {
			return nil, domain.NewParseError(path, fmt.Errorf("converting %s: %w", href, err))
		}
		sections = append(sections, domain.Section{SourceName: href, Content: markdown})
	}

	if len(sections) == 0 {
		return nil, domain.NewParseError(path, fmt.Errorf("empty spine"))
	}
	return sections, nil
}

// container.xml locates the package document inside the zip.
type ocfContainer struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

// opfPackage is the subset of the OPF package document the archive
// needs: Dublin Core metadata, the manifest id->href table and the
// spine reading order.
type opfPackage struct {
	Metadata struct {
		Title       string       `xml:"title"`
		Creator     string       `xml:"creator"`
		Identifiers []identifier `xml:"identifier"`
	} `xml:"metadata"`
	Manifest struct {
		Items []struct {
			ID   string `xml:"id,attr"`
			Href string `xml:"href,attr"`
		} `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

// book is an open EPUB container with its package document parsed and
// manifest hrefs resolved relative to the package document location.
type book struct {
	zr    *zip.ReadCloser
	files map[string]*zip.File
	pkg   opfPackage
	hrefs map[string]string
}

func open(epubPath string) (*book, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return nil, domain.NewParseError(epubPath, err)
	}

	b := &book{zr: zr, files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		b.files[f.Name] = f
	}

	if err := b.parsePackage(); err != nil {
		zr.Close()
		return nil, domain.NewParseError(epubPath, err)
	}
	return b, nil
}

func (b *book) parsePackage() error {
	raw, err := b.readFile("META-INF/container.xml")
	if err != nil {
		return fmt.Errorf("reading container descriptor: %w", err)
	}
	var container ocfContainer
	if err := xml.Unmarshal(raw, &container); err != nil {
		return fmt.Errorf("parsing container descriptor: %w", err)
	}
	if len(container.Rootfiles) == 0 {
		return fmt.Errorf("container descriptor lists no rootfile")
	}

	opfPath := container.Rootfiles[0].FullPath
	raw, err = b.readFile(opfPath)
	if err != nil {
		return fmt.Errorf("reading package document %s: %w", opfPath, err)
	}
	if err := xml.Unmarshal(raw, &b.pkg); err != nil {
		return fmt.Errorf("parsing package document %s: %w", opfPath, err)
	}

	// Manifest hrefs are relative to the package document, and may be
	// percent-encoded.
	base := path.Dir(opfPath)
	b.hrefs = make(map[string]string, len(b.pkg.Manifest.Items))
	for _, item := range b.pkg.Manifest.Items {
		href := item.Href
		if decoded, err := url.PathUnescape(href); err == nil {
			href = decoded
		}
		if base != "." {
			href = path.Join(base, href)
		}
		b.hrefs[item.ID] = href
	}
	return nil
}

func (b *book) readFile(name string) ([]byte, error) {
	f, ok := b.files[name]
	if !ok {
		return nil, fmt.Errorf("no such entry %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (b *book) Close() error {
	return b.zr.Close()
}

// identifier is a Dublin Core identifier element.
type identifier struct {
	Scheme string `xml:"scheme,attr"`
	Value  string `xml:",chardata"`
}

// parseISBN recognises an ISBN identifier either by its declared
// scheme or by an urn:isbn prefix, and returns the bare number.
func parseISBN(id identifier) (string, bool) {
	value := strings.TrimSpace(id.Value)
	if strings.EqualFold(id.Scheme, "isbn") {
		return value, true
	}
	if rest, found := strings.CutPrefix(strings.ToLower(value), "urn:isbn:"); found {
		return strings.TrimSpace(rest), true
	}
	return "", false
}
