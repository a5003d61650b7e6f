package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

func writeFixtureFolder(t *testing.T, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("content"), 0o644))
	}
	return dir
}

func TestScanFolder_ClassifiesFiles(t *testing.T) {
	dir := writeFixtureFolder(t, "deep-work",
		"deep-work.epub",
		"deep-work.pdf",
		"deep-work-summary-detailed.md",
		"deep-work_summary_brief.txt",
		"deep-work-chapter-summary.md",
		"notes.txt",
		"cover.jpg",
	)

	scan, err := ScanFolder(dir)
	require.NoError(t, err)

	require.Len(t, scan.PrimaryFormats, 2)
	require.Len(t, scan.Summaries, 3)
	assert.Len(t, scan.Unclassified, 2)

	types := map[string]bool{}
	for _, s := range scan.Summaries {
		types[s.Type] = true
	}
	assert.True(t, types["detailed"])
	assert.True(t, types["brief"])
	assert.True(t, types["chapter"])
}

func TestScanFolder_SummaryMustMatchFolderName(t *testing.T) {
	dir := writeFixtureFolder(t, "deep-work", "other-book-summary-detailed.md")

	scan, err := ScanFolder(dir)
	require.NoError(t, err)

	assert.Empty(t, scan.Summaries)
	assert.Len(t, scan.Unclassified, 1)
}

func TestScanFolder_CaseInsensitiveStem(t *testing.T) {
	dir := writeFixtureFolder(t, "deep-work", "Deep-Work.PDF")

	scan, err := ScanFolder(dir)
	require.NoError(t, err)

	require.Len(t, scan.PrimaryFormats, 1)
	assert.Equal(t, domain.FormatPDF, scan.PrimaryFormats[0].Format)
}

func TestScanFolder_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := ScanFolder(file)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScanFolder_Missing(t *testing.T) {
	_, err := ScanFolder(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPreferredFile_HonoursPreference(t *testing.T) {
	scan := &FolderScan{PrimaryFormats: []FormatFile{
		{Format: domain.FormatEPUB, Path: "a.epub"},
		{Format: domain.FormatText, Path: "a.txt"},
	}}

	f, ok := scan.PreferredFile(domain.FormatText)
	require.True(t, ok)
	assert.Equal(t, "a.txt", f.Path)
}

func TestPreferredFile_FallsBackAlongDefaultOrder(t *testing.T) {
	scan := &FolderScan{PrimaryFormats: []FormatFile{
		{Format: domain.FormatText, Path: "a.txt"},
		{Format: domain.FormatPDF, Path: "a.pdf"},
	}}

	// Preferred epub is absent; pdf outranks txt in the default order.
	f, ok := scan.PreferredFile(domain.FormatEPUB)
	require.True(t, ok)
	assert.Equal(t, "a.pdf", f.Path)
}

func TestPreferredFile_Empty(t *testing.T) {
	scan := &FolderScan{}
	_, ok := scan.PreferredFile(domain.FormatEPUB)
	assert.False(t, ok)
}

func TestSummaryOutputName(t *testing.T) {
	assert.Equal(t, "detailed-summary.md", SummaryOutputName("detailed"))
	assert.Equal(t, "chapter-by-chapter-summary.md", SummaryOutputName("chapter_by_chapter"))
	assert.Equal(t, "brief-summary.md", SummaryOutputName("Brief"))
}
