package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

func longSection(title string, chars int) string {
	return "# " + title + "\n\n" + strings.Repeat("x", chars)
}

func TestAssembleChapters_FiltersShortSections(t *testing.T) {
	sections := []domain.Section{
		{SourceName: "cover.xhtml", Content: "tiny"},
		{SourceName: "ch1.xhtml", Content: longSection("The Beginning", 300)},
		{SourceName: "toc.xhtml", Content: "short stub"},
		{SourceName: "ch2.xhtml", Content: longSection("The Middle", 300)},
	}

	chapters, err := AssembleChapters(sections, DefaultMinSectionChars)
	require.NoError(t, err)
	require.Len(t, chapters, 2)

	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, "The Beginning", chapters[0].Title)
	assert.Equal(t, 2, chapters[1].Number)
	assert.Equal(t, "The Middle", chapters[1].Title)
}

func TestAssembleChapters_NumbersAreContiguous(t *testing.T) {
	sections := []domain.Section{
		{Content: "a"},
		{Content: longSection("One", 250)},
		{Content: "b"},
		{Content: "c"},
		{Content: longSection("Two", 250)},
		{Content: longSection("Three", 250)},
	}

	chapters, err := AssembleChapters(sections, 0)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	for i, ch := range chapters {
		assert.Equal(t, i+1, ch.Number)
	}
}

func TestAssembleChapters_SkipsFrontMatterTitles(t *testing.T) {
	sections := []domain.Section{
		{Content: "# Table of Contents\n\n" + strings.Repeat("y", 300)},
		{Content: longSection("Actual Chapter", 300)},
	}

	chapters, err := AssembleChapters(sections, DefaultMinSectionChars)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Actual Chapter", chapters[0].Title)
	assert.Equal(t, 1, chapters[0].Number)
}

func TestAssembleChapters_NoContent(t *testing.T) {
	_, err := AssembleChapters([]domain.Section{{Content: "too short"}}, DefaultMinSectionChars)
	assert.ErrorIs(t, err, domain.ErrNoContent)
}

func TestAssembleChapters_TitleFromSourceName(t *testing.T) {
	sections := []domain.Section{
		{SourceName: "OEBPS/ch_02-intro.xhtml", Content: strings.Repeat("no heading here ", 20)},
	}

	chapters, err := AssembleChapters(sections, DefaultMinSectionChars)
	require.NoError(t, err)
	assert.Equal(t, "Ch 02 Intro", chapters[0].Title)
}

func TestTitleFromFileName_MultibyteLeadingRune(t *testing.T) {
	assert.Equal(t, "Épilogue", titleFromFileName("épilogue.xhtml"))
	assert.Equal(t, "Über Den Autor", titleFromFileName("über_den_autor.xhtml"))
}

func TestAssembleChapters_SectionFallbackTitle(t *testing.T) {
	sections := []domain.Section{
		{Content: strings.Repeat("plain words without a heading ", 10)},
	}

	chapters, err := AssembleChapters(sections, DefaultMinSectionChars)
	require.NoError(t, err)
	assert.Equal(t, "Section 1", chapters[0].Title)
}

func TestChapterContentFileName(t *testing.T) {
	ch := ChapterContent{Number: 3, Title: "The Middle: Part Two!"}
	assert.Equal(t, "3-the-middle-part-two.md", ch.FileName())
}
