package markdown

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormat(t *testing.T) {
	assert.Equal(t, domain.FormatMarkdown, New().Format())
}

func TestExtract_PlainDocument(t *testing.T) {
	path := writeFile(t, "# Heading\n\nBody text.")

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Heading\n\nBody text.", text)
}

func TestExtract_StripsFrontMatter(t *testing.T) {
	path := writeFile(t, "---\ntitle: Deep Work\n---\n# Heading\n\nBody.")

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "# Heading\n\nBody.", text)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err)
}

func TestMetadata_FromFrontMatter(t *testing.T) {
	path := writeFile(t, "---\ntitle: Deep Work\nauthor: Cal Newport\nisbn: \"9781455586691\"\n---\nBody.")

	meta, err := New().Metadata(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", meta.Title)
	assert.Equal(t, "Cal Newport", meta.Author)
	assert.Equal(t, "9781455586691", meta.ISBN)
}

func TestMetadata_NoFrontMatter(t *testing.T) {
	path := writeFile(t, "# Just a heading\n")

	meta, err := New().Metadata(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.Metadata{}, meta)
}

func TestMetadata_MalformedFrontMatter(t *testing.T) {
	path := writeFile(t, "---\ntitle: [unclosed\n---\nBody.")

	_, err := New().Metadata(context.Background(), path)

	var parseErr *domain.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSplitFrontMatter_UnterminatedFence(t *testing.T) {
	block, body := splitFrontMatter("---\ntitle: x\nno closing fence")
	assert.Empty(t, block)
	assert.Equal(t, "---\ntitle: x\nno closing fence", body)
}
