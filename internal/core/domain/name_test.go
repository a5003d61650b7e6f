package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"first last", "John Smith", "John", "Smith"},
		{"last comma first", "Smith, John", "John", "Smith"},
		{"suffix stays with last name", "Jane Doe Jr.", "Jane", "Doe Jr."},
		{"single token", "Plato", "", "Plato"},
		{"empty", "", "", ""},
		{"surrounding spaces", "  Ada Lovelace  ", "Ada", "Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := ParseAuthorName(tt.input)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestAuthorSlug(t *testing.T) {
	assert.Equal(t, "smith-john", AuthorSlug("John Smith"))
	assert.Equal(t, "smith-john", AuthorSlug("Smith, John"))
	assert.Equal(t, "doe-jr-jane", AuthorSlug("Jane Doe Jr."))
	assert.Equal(t, "plato", AuthorSlug("Plato"))
	assert.Equal(t, "unknown", AuthorSlug(""))
}

func TestBookFolderPath(t *testing.T) {
	assert.Equal(t, "smith-john/deep-work", BookFolderPath("Deep Work", "John Smith"))
}

func TestChannelFolderName(t *testing.T) {
	got := ChannelFolderName("UC123", "Tech Talks Weekly")
	assert.Equal(t, "tech-talks-weekly__UC123", got)
}

func TestChannelFolderName_TruncatesLongSlug(t *testing.T) {
	long := "An Extremely Long Channel Name That Goes On And On Forever And Ever"
	got := ChannelFolderName("UC9", long)
	assert.LessOrEqual(t, len(got), 50+len("__UC9"))
	assert.Contains(t, got, "__UC9")
}

func TestVideoFolderName(t *testing.T) {
	got := VideoFolderName("dQw4w9WgXcQ", "Never Gonna Give You Up")
	assert.Equal(t, "dQw4w9WgXcQ__never-gonna-give-you-up", got)
}
