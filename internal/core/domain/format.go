package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported source file format.
type Format string

// Supported formats, richest structure first.
const (
	FormatEPUB     Format = "epub"
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatUnknown  Format = ""
)

// ExtractionOrder is the default preference order for choosing which
// format to extract text from when an item ships in several formats.
var ExtractionOrder = []Format{FormatEPUB, FormatPDF, FormatMarkdown, FormatText}

// DetectFormat maps a file name to a format tag by extension.
// The lookup is case-insensitive and never sniffs content.
// Unknown extensions yield FormatUnknown; consumers must reject it
// with ErrUnsupportedFormat rather than skipping the file silently.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".epub":
		return FormatEPUB
	case ".pdf":
		return FormatPDF
	case ".md", ".markdown":
		return FormatMarkdown
	case ".txt":
		return FormatText
	default:
		return FormatUnknown
	}
}

// Ext returns the canonical file extension for the format, without dot.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// IsSupported reports whether f is one of the known content formats.
func (f Format) IsSupported() bool {
	switch f {
	case FormatEPUB, FormatPDF, FormatMarkdown, FormatText:
		return true
	default:
		return false
	}
}
