package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

func TestResolveMetadata_OverrideAlwaysWins(t *testing.T) {
	embedded := domain.Metadata{Title: "A"}
	scanned := domain.Metadata{Title: "Scanned", Author: "Scanned Author"}
	override := domain.Metadata{Author: "B"}

	got := ResolveMetadata(embedded, scanned, override)

	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Author)
}

func TestResolveMetadata_EmbeddedBeatsScanned(t *testing.T) {
	embedded := domain.Metadata{Title: "Embedded", ISBN: "111"}
	scanned := domain.Metadata{Title: "Scanned", Author: "Scanned Author", ISBN: "222"}

	got := ResolveMetadata(embedded, scanned, domain.Metadata{})

	assert.Equal(t, "Embedded", got.Title)
	assert.Equal(t, "Scanned Author", got.Author)
	assert.Equal(t, "111", got.ISBN)
}

func TestScanTextMetadata_TitleAndByline(t *testing.T) {
	text := "The Pragmatic Programmer\n\nby Andrew Hunt\n\nChapter one begins here."

	got := ScanTextMetadata(text)

	assert.Equal(t, "The Pragmatic Programmer", got.Title)
	assert.Equal(t, "Andrew Hunt", got.Author)
}

func TestScanTextMetadata_AuthorColonForm(t *testing.T) {
	got := ScanTextMetadata("Some Decent Title\nAuthor: Grace Hopper\n")
	assert.Equal(t, "Grace Hopper", got.Author)
}

func TestScanTextMetadata_SkipsFrontMatterOpeners(t *testing.T) {
	text := "Table of Contents\nCopyright 2019 Someone\nA Real Book Title\n"

	got := ScanTextMetadata(text)

	assert.Equal(t, "A Real Book Title", got.Title)
}

func TestScanTextMetadata_TitleLengthBounds(t *testing.T) {
	short := "Hi\nA Proper Title Here\n"
	assert.Equal(t, "A Proper Title Here", ScanTextMetadata(short).Title)

	long := "Heading That Is Fine\n"
	assert.Equal(t, "Heading That Is Fine", ScanTextMetadata(long).Title)
}

func TestScanTextMetadata_StripsHeadingMarkers(t *testing.T) {
	got := ScanTextMetadata("# Clean Architecture\n")
	assert.Equal(t, "Clean Architecture", got.Title)
}

func TestScanTextMetadata_ShortLineFallbackAfterTitle(t *testing.T) {
	text := "An Unattributed Essay\nMary Shelley\nThe body of the essay continues with many more words than four.\n"

	got := ScanTextMetadata(text)

	assert.Equal(t, "An Unattributed Essay", got.Title)
	assert.Equal(t, "Mary Shelley", got.Author)
}

func TestScanTextMetadata_NothingFound(t *testing.T) {
	got := ScanTextMetadata("")
	assert.Equal(t, domain.Metadata{}, got)
}

func TestScanTextMetadata_StopsAfterScanWindow(t *testing.T) {
	var text string
	for range 25 {
		text += "word\n"
	}
	text += "A Late Arriving Title\n"

	got := ScanTextMetadata(text)
	assert.Empty(t, got.Title)
}
