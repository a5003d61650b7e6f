package driving

import (
	"context"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

// BookRequest carries caller-supplied metadata for a book ingestion.
// Title, Author and ISBN override anything resolved from the source.
type BookRequest struct {
	// Files are the source files to ingest. At least one.
	Files []string

	Title      string
	Author     string
	ISBN       string
	Categories []string
	Tags       []string

	// PreferFormat selects the extraction source when several formats
	// are present. Empty means the default preference order.
	PreferFormat domain.Format
}

// VideoRequest carries metadata and a local transcript for a video
// ingestion. Transcript retrieval happens outside the core; by the
// time it gets here the transcript is a plain file.
type VideoRequest struct {
	VideoID      string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string // RFC 3339, optional

	// TranscriptFile is the path to the transcript text file.
	TranscriptFile string

	Categories []string
	Tags       []string
}

// IngestService turns sources into organised archive items. Every
// successful call commits a manifest, registers the item in the
// catalog and regenerates the navigation indices; a failed call
// leaves no trace.
type IngestService interface {
	// AddBook ingests one or more files for a single logical book.
	AddBook(ctx context.Context, req BookRequest) (*domain.Book, error)

	// AddBookFolder ingests a structured folder whose content files
	// share the folder's name and whose summaries match the summary
	// naming patterns.
	AddBookFolder(ctx context.Context, dir string, req BookRequest) (*domain.Book, error)

	// AddVideo ingests a video transcript plus caller metadata.
	AddVideo(ctx context.Context, req VideoRequest) (*domain.Video, error)
}
