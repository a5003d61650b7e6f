package domain

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugCollapse = regexp.MustCompile(`[\s-]+`)
)

// Slugify converts text to a filesystem and URL safe slug: lowercase,
// non-alphanumeric characters stripped (spaces and hyphens excepted),
// whitespace and hyphen runs collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
//
//	Slugify("Chapter 2: Advanced Topics!") == "chapter-2-advanced-topics"
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// truncateSlug caps a slug at max bytes without leaving a trailing hyphen.
func truncateSlug(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}
