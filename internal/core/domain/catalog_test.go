package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogUpsertBook_KeyedByPath(t *testing.T) {
	var c Catalog
	c.UpsertBook(BookSummary{Title: "Old", Path: "books/a/b"})
	c.UpsertBook(BookSummary{Title: "New", Path: "books/a/b"})
	c.UpsertBook(BookSummary{Title: "Other", Path: "books/c/d"})

	require.Len(t, c.Books, 2)
	assert.Equal(t, "New", c.Books[0].Title)
}

func TestCatalogFindBook_CaseInsensitive(t *testing.T) {
	var c Catalog
	c.UpsertBook(BookSummary{Title: "Deep Work", Author: "Cal Newport", Path: "books/newport-cal/deep-work"})

	found := c.FindBook("cal newport", "DEEP WORK")
	require.NotNil(t, found)
	assert.Equal(t, "books/newport-cal/deep-work", found.Path)

	assert.Nil(t, c.FindBook("Cal Newport", "Other Title"))
}

func TestCatalogFindVideo_ExactID(t *testing.T) {
	var c Catalog
	c.UpsertVideo(VideoSummary{VideoID: "abc123", Path: "videos/x/y"})

	require.NotNil(t, c.FindVideo("abc123"))
	assert.Nil(t, c.FindVideo("ABC123"))
}

func TestCatalogStats(t *testing.T) {
	var c Catalog
	c.UpsertBook(BookSummary{Title: "A", Author: "One", Path: "books/one/a", Categories: []string{"cs"}, Tags: []string{"x"}})
	c.UpsertBook(BookSummary{Title: "B", Author: "One", Path: "books/one/b", Categories: []string{"cs"}})
	c.UpsertVideo(VideoSummary{VideoID: "v1", ChannelTitle: "Chan", Path: "videos/chan/v1", Tags: []string{"x", "y"}})

	stats := c.Stats()
	assert.Equal(t, 2, stats.TotalBooks)
	assert.Equal(t, 1, stats.TotalVideos)
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 1, stats.UniqueAuthors)
	assert.Equal(t, 1, stats.UniqueChannels)
	assert.Equal(t, 1, stats.UniqueCategories)
	assert.Equal(t, 2, stats.UniqueTags)
}

func TestCatalogSort_DeterministicOrder(t *testing.T) {
	var a, b Catalog
	first := BookSummary{Title: "A", Path: "books/x/a"}
	second := BookSummary{Title: "B", Path: "books/x/b"}

	a.UpsertBook(first)
	a.UpsertBook(second)
	b.UpsertBook(second)
	b.UpsertBook(first)

	a.Sort()
	b.Sort()
	assert.Equal(t, a.Books, b.Books)
}
