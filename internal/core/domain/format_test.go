package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"book.epub", FormatEPUB},
		{"book.EPUB", FormatEPUB},
		{"paper.pdf", FormatPDF},
		{"notes.md", FormatMarkdown},
		{"notes.markdown", FormatMarkdown},
		{"transcript.txt", FormatText},
		{"archive.zip", FormatUnknown},
		{"noextension", FormatUnknown},
		{"/some/dir/Book.PdF", FormatPDF},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.path))
		})
	}
}

func TestFormatExt(t *testing.T) {
	assert.Equal(t, "epub", FormatEPUB.Ext())
	assert.Equal(t, "pdf", FormatPDF.Ext())
	assert.Equal(t, "md", FormatMarkdown.Ext())
	assert.Equal(t, "txt", FormatText.Ext())
}

func TestFormatIsSupported(t *testing.T) {
	for _, f := range ExtractionOrder {
		assert.True(t, f.IsSupported(), f)
	}
	assert.False(t, FormatUnknown.IsSupported())
}
