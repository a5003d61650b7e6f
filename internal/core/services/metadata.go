package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

// metadataScanLines is how many non-empty lines the heuristic scan reads.
const metadataScanLines = 20

var (
	bylineRe   = regexp.MustCompile(`(?i)(?:\bby|author:?)\s+([A-Z][a-zA-Z\s.]+)`)
	headingRe  = regexp.MustCompile(`^#+\s*`)
	uppercase  = regexp.MustCompile(`[A-Z]`)
	frontLines = regexp.MustCompile(`(?i)^(praise\s+for|dedication|copyright|table\s+of\s+contents|contents|foreword|preface|acknowledgments)`)
)

// ResolveMetadata applies the cascade: format-embedded metadata fills
// first, the heuristic text scan fills what is still unset, and the
// caller-supplied override always wins. Implemented as an explicit
// merge so each stage stays independently testable.
func ResolveMetadata(embedded, scanned, override domain.Metadata) domain.Metadata {
	return override.Merge(embedded.Merge(scanned))
}

// ScanTextMetadata recovers a title and author candidate from the
// first lines of extracted text.
//
// The title is the first line of length 5-100 that contains an
// uppercase letter and is not a known front-matter opener. The author
// comes from a "by X" or "Author: X" line; failing that, the first
// short line (at most four words) after the title is taken. The
// short-line fallback is known to misclassify subtitles; it is kept
// for archive compatibility.
func ScanTextMetadata(text string) domain.Metadata {
	var meta domain.Metadata
	var shortLine string

	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > metadataScanLines {
			break
		}

		if meta.Author == "" {
			if m := bylineRe.FindStringSubmatch(line); m != nil {
				meta.Author = strings.TrimSpace(m[1])
			}
		}

		if meta.Title == "" {
			candidate := headingRe.ReplaceAllString(line, "")
			if len(candidate) >= 5 && len(candidate) <= 100 &&
				uppercase.MatchString(candidate) && !frontLines.MatchString(candidate) {
				meta.Title = candidate
			}
			continue
		}

		// Lines after the title are author candidates of last resort.
		if shortLine == "" && len(strings.Fields(line)) <= 4 && !bylineRe.MatchString(line) {
			shortLine = line
		}
	}

	if meta.Author == "" {
		meta.Author = shortLine
	}
	return meta
}
