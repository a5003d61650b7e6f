package services

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

// DefaultMinSectionChars is the minimum cleaned content length for a
// decomposed section to be retained. Shorter sections are treated as
// front matter, tables of contents or empty stubs.
const DefaultMinSectionChars = 200

// titleScanLines is how many leading lines are searched for a heading.
const titleScanLines = 10

var frontMatterTitle = regexp.MustCompile(`(?i)^(title|cover|copyright|dedication|table\s+of\s+contents|contents|acknowledgments|preface|foreword|about\s+the\s+author)$`)

// ChapterContent is a retained section with its assigned number,
// derived title and markdown content, ready to be written to disk.
type ChapterContent struct {
	Number  int
	Title   string
	Content string
}

// FileName returns the chapter's output file name: "{number}-{slug}.md".
func (c ChapterContent) FileName() string {
	return fmt.Sprintf("%d-%s.md", c.Number, domain.Slugify(c.Title))
}

// AssembleChapters filters, titles and numbers raw sections.
//
// Sections shorter than minChars (after trimming) are dropped, as are
// sections whose derived title is a known front-matter name. Numbers
// are assigned 1-based to retained sections only, so they always form
// a contiguous sequence regardless of how many sections were skipped.
// Returns domain.ErrNoContent when nothing survives.
func AssembleChapters(sections []domain.Section, minChars int) ([]ChapterContent, error) {
	if minChars <= 0 {
		minChars = DefaultMinSectionChars
	}

	var chapters []ChapterContent
	for _, sec := range sections {
		content := strings.TrimSpace(sec.Content)
		if len(content) < minChars {
			continue
		}

		number := len(chapters) + 1
		title := sectionTitle(content, sec.SourceName, number)
		if frontMatterTitle.MatchString(title) {
			continue
		}

		chapters = append(chapters, ChapterContent{
			Number:  number,
			Title:   title,
			Content: content,
		})
	}

	if len(chapters) == 0 {
		return nil, domain.ErrNoContent
	}
	return chapters, nil
}

// sectionTitle derives a human-readable title for a section: the
// first markdown heading within the leading lines, else the section's
// source file name with separators spaced out and words capitalised,
// else "Section {n}" using the retained ordinal.
func sectionTitle(content, sourceName string, number int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > titleScanLines {
		lines = lines[:titleScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			if title := strings.TrimSpace(strings.TrimLeft(line, "# ")); title != "" {
				return title
			}
		}
	}

	if sourceName != "" {
		if title := titleFromFileName(sourceName); title != "" {
			return title
		}
	}

	return fmt.Sprintf("Section %d", number)
}

// titleFromFileName turns "OEBPS/ch_02-intro.xhtml" into "Ch 02 Intro".
func titleFromFileName(name string) string {
	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")

	words := strings.Fields(stem)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
