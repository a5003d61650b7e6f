package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

// FormatFile is a primary content file found in a book folder.
type FormatFile struct {
	Format domain.Format
	Path   string
}

// SummaryFile is a summary found in a book folder.
type SummaryFile struct {
	// Type is the normalised summary key (lowercase, hyphenated).
	Type   string
	Format domain.Format
	Path   string
}

// FolderScan classifies the files of one book folder.
type FolderScan struct {
	// PrimaryFormats are files whose stem equals the folder name and
	// whose extension is a supported content format.
	PrimaryFormats []FormatFile

	// Summaries are files matching one of the summary patterns.
	Summaries []SummaryFile

	// Unclassified lists everything else. Not an error; these files
	// are simply excluded from ingestion.
	Unclassified []string
}

// ScanFolder classifies the files in dir against the directory's own
// name, per the folder layout contract.
func ScanFolder(dir string) (*FolderScan, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning folder %s: %w: not a directory", dir, domain.ErrInvalidInput)
	}

	folderName := filepath.Base(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}

	scan := &FolderScan{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(dir, name)
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		format := domain.DetectFormat(name)

		if strings.EqualFold(stem, folderName) {
			if format.IsSupported() {
				scan.PrimaryFormats = append(scan.PrimaryFormats, FormatFile{Format: format, Path: full})
			} else {
				scan.Unclassified = append(scan.Unclassified, full)
			}
			continue
		}

		if summaryType, ok := parseSummaryStem(stem, folderName); ok && format.IsSupported() {
			scan.Summaries = append(scan.Summaries, SummaryFile{Type: summaryType, Format: format, Path: full})
			continue
		}

		scan.Unclassified = append(scan.Unclassified, full)
	}

	return scan, nil
}

// PreferredFile picks the extraction source: the preferred format if
// present, else the first available along the default order.
func (s *FolderScan) PreferredFile(prefer domain.Format) (FormatFile, bool) {
	byFormat := make(map[domain.Format]FormatFile, len(s.PrimaryFormats))
	for _, f := range s.PrimaryFormats {
		if _, dup := byFormat[f.Format]; !dup {
			byFormat[f.Format] = f
		}
	}

	if f, ok := byFormat[prefer]; ok {
		return f, true
	}
	for _, fallback := range domain.ExtractionOrder {
		if f, ok := byFormat[fallback]; ok {
			return f, true
		}
	}
	return FormatFile{}, false
}

// SummaryOutputName returns the markdown output name for a summary
// type: "{type}-summary.md" with underscores normalised to hyphens.
func SummaryOutputName(summaryType string) string {
	clean := strings.ToLower(strings.ReplaceAll(summaryType, "_", "-"))
	return clean + "-summary.md"
}

// parseSummaryStem matches stem against the summary naming shapes
// "{folder}-summary-{type}", "{folder}_summary_{type}" and
// "{folder}-{type}-summary" (case-insensitive) and returns the
// normalised summary type. The folder-name prefix is stripped first so
// hyphens inside the folder name or the type never shift the split.
func parseSummaryStem(stem, folderName string) (string, bool) {
	if len(stem) <= len(folderName) || !strings.EqualFold(stem[:len(folderName)], folderName) {
		return "", false
	}
	rest := strings.ToLower(stem[len(folderName):])

	var summaryType string
	switch {
	case strings.HasPrefix(rest, "-summary-"):
		summaryType = rest[len("-summary-"):]
	case strings.HasPrefix(rest, "_summary_"):
		summaryType = rest[len("_summary_"):]
	case strings.HasPrefix(rest, "-") && strings.HasSuffix(rest, "-summary") && len(rest) > len("-summary")+1:
		summaryType = rest[1 : len(rest)-len("-summary")]
	default:
		return "", false
	}
	if summaryType == "" {
		return "", false
	}
	return strings.ReplaceAll(summaryType, "_", "-"), true
}
