package domain

import "time"

// Section is a raw decomposed sub-unit of a compound document, in
// declared reading order, before filtering, titling and numbering.
type Section struct {
	// SourceName is the section's file name inside the container,
	// used as a title fallback.
	SourceName string

	// Content is the section's normalised markdown content.
	Content string
}

// Chapter is a retained, numbered section as recorded in a manifest.
// Numbers are 1-based, strictly increasing and contiguous.
type Chapter struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
	Path   string `yaml:"path"`
}

// BookManifest is the metadata record stored as manifest.yaml inside a
// book's directory. All paths are relative to that directory.
type BookManifest struct {
	Title        string            `yaml:"title"`
	Author       string            `yaml:"author"`
	Categories   []string          `yaml:"categories"`
	ISBN         string            `yaml:"isbn,omitempty"`
	SourceFolder string            `yaml:"source_folder"`
	Formats      map[string]string `yaml:"formats"`
	Summaries    map[string]string `yaml:"summaries"`
	Chapters     []Chapter         `yaml:"chapters,omitempty"`
	Tags         []string          `yaml:"tags"`
	ContentHash  string            `yaml:"content_hash,omitempty"`
	CreatedAt    time.Time         `yaml:"created_at,omitempty"`
}

// Book pairs a book manifest with the directory it was loaded from.
type Book struct {
	// Path is the book directory, relative to the archive root.
	Path     string
	Manifest BookManifest
}

// Summary returns the book's lightweight catalog record.
func (b Book) Summary() BookSummary {
	formats := make([]string, 0, len(b.Manifest.Formats))
	for f := range b.Manifest.Formats {
		formats = append(formats, f)
	}
	return BookSummary{
		Title:      b.Manifest.Title,
		Author:     b.Manifest.Author,
		Path:       b.Path,
		Formats:    sortedStrings(formats),
		Categories: b.Manifest.Categories,
		Tags:       b.Manifest.Tags,
		CreatedAt:  b.Manifest.CreatedAt,
	}
}

// VideoManifest is the metadata record stored as manifest.yaml inside
// a video's directory. Key names match the upstream video metadata
// payload, so manifests stay diff-friendly against exported metadata.
type VideoManifest struct {
	VideoID      string            `yaml:"videoId"`
	Title        string            `yaml:"title"`
	Description  string            `yaml:"description,omitempty"`
	URL          string            `yaml:"url,omitempty"`
	ChannelID    string            `yaml:"channelId"`
	ChannelTitle string            `yaml:"channelTitle"`
	Tags         []string          `yaml:"tags"`
	Categories   []string          `yaml:"categories"`
	PublishedAt  *time.Time        `yaml:"publishedAt,omitempty"`
	Source       map[string]string `yaml:"source"`
	Summaries    map[string]string `yaml:"summaries"`
	ContentHash  string            `yaml:"content_hash,omitempty"`
	CreatedAt    time.Time         `yaml:"created_at,omitempty"`
}

// Video pairs a video manifest with the directory it was loaded from.
type Video struct {
	// Path is the video directory, relative to the archive root.
	Path     string
	Manifest VideoManifest
}

// Summary returns the video's lightweight catalog record.
func (v Video) Summary() VideoSummary {
	return VideoSummary{
		VideoID:      v.Manifest.VideoID,
		Title:        v.Manifest.Title,
		ChannelID:    v.Manifest.ChannelID,
		ChannelTitle: v.Manifest.ChannelTitle,
		Path:         v.Path,
		Categories:   v.Manifest.Categories,
		Tags:         v.Manifest.Tags,
		PublishedAt:  v.Manifest.PublishedAt,
		CreatedAt:    v.Manifest.CreatedAt,
	}
}
