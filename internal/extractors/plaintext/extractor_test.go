package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, domain.FormatText, New().Format())
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two\n"), 0o644))

	text, err := New().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", text)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestMetadata_AlwaysEmpty(t *testing.T) {
	meta, err := New().Metadata(context.Background(), "anything.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.Metadata{}, meta)
}
