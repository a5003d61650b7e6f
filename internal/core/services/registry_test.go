package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/extractors/epub"
	"github.com/custodia-labs/librarian-cli/internal/extractors/plaintext"
)

func TestExtractorRegistry_Get(t *testing.T) {
	registry := NewExtractorRegistry(plaintext.New(), epub.New())

	e, err := registry.Get(domain.FormatText)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatText, e.Format())

	_, err = registry.Get(domain.FormatPDF)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtractorRegistry_ForPath(t *testing.T) {
	registry := NewExtractorRegistry(plaintext.New())

	e, err := registry.ForPath("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatText, e.Format())

	_, err = registry.ForPath("archive.zip")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExtractorRegistry_Decomposer(t *testing.T) {
	registry := NewExtractorRegistry(plaintext.New(), epub.New())

	_, ok := registry.Decomposer(domain.FormatEPUB)
	assert.True(t, ok)

	_, ok = registry.Decomposer(domain.FormatText)
	assert.False(t, ok)

	_, ok = registry.Decomposer(domain.FormatPDF)
	assert.False(t, ok)
}
