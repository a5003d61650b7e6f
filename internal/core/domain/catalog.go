package domain

import (
	"sort"
	"strings"
	"time"
)

// BookSummary is the lightweight catalog record for a book.
type BookSummary struct {
	Title      string    `yaml:"title"`
	Author     string    `yaml:"author"`
	Path       string    `yaml:"path"`
	Formats    []string  `yaml:"formats"`
	Categories []string  `yaml:"categories"`
	Tags       []string  `yaml:"tags"`
	CreatedAt  time.Time `yaml:"created_at,omitempty"`
}

// VideoSummary is the lightweight catalog record for a video.
type VideoSummary struct {
	VideoID      string     `yaml:"videoId"`
	Title        string     `yaml:"title"`
	ChannelID    string     `yaml:"channelId"`
	ChannelTitle string     `yaml:"channelTitle"`
	Path         string     `yaml:"path"`
	Categories   []string   `yaml:"categories"`
	Tags         []string   `yaml:"tags"`
	PublishedAt  *time.Time `yaml:"publishedAt,omitempty"`
	CreatedAt    time.Time  `yaml:"created_at,omitempty"`
}

// Catalog is the derived index of all item summaries. It is a cache:
// always fully reconstructible from the manifests on disk, never a
// second source of truth.
type Catalog struct {
	Books       []BookSummary  `yaml:"books"`
	Videos      []VideoSummary `yaml:"videos"`
	LastUpdated string         `yaml:"last_updated,omitempty"`
}

// Stats holds aggregate counts over the catalog.
type Stats struct {
	TotalBooks       int `yaml:"total_books"`
	TotalVideos      int `yaml:"total_videos"`
	TotalItems       int `yaml:"total_items"`
	UniqueAuthors    int `yaml:"unique_authors"`
	UniqueChannels   int `yaml:"unique_channels"`
	UniqueCategories int `yaml:"unique_categories"`
	UniqueTags       int `yaml:"unique_tags"`
}

// UpsertBook adds or replaces a book summary keyed by its path.
func (c *Catalog) UpsertBook(s BookSummary) {
	for i := range c.Books {
		if c.Books[i].Path == s.Path {
			c.Books[i] = s
			return
		}
	}
	c.Books = append(c.Books, s)
}

// UpsertVideo adds or replaces a video summary keyed by its path.
func (c *Catalog) UpsertVideo(s VideoSummary) {
	for i := range c.Videos {
		if c.Videos[i].Path == s.Path {
			c.Videos[i] = s
			return
		}
	}
	c.Videos = append(c.Videos, s)
}

// FindBook returns the book summary whose resolved identity matches
// the given author and title (case-insensitive), or nil.
func (c *Catalog) FindBook(author, title string) *BookSummary {
	for i := range c.Books {
		if strings.EqualFold(c.Books[i].Author, author) && strings.EqualFold(c.Books[i].Title, title) {
			return &c.Books[i]
		}
	}
	return nil
}

// FindVideo returns the video summary with the exact video ID, or nil.
func (c *Catalog) FindVideo(videoID string) *VideoSummary {
	for i := range c.Videos {
		if c.Videos[i].VideoID == videoID {
			return &c.Videos[i]
		}
	}
	return nil
}

// Authors returns the sorted set of distinct book authors.
func (c *Catalog) Authors() []string {
	set := map[string]struct{}{}
	for _, b := range c.Books {
		set[b.Author] = struct{}{}
	}
	return sortedSet(set)
}

// Channels returns the sorted set of distinct channel titles.
func (c *Catalog) Channels() []string {
	set := map[string]struct{}{}
	for _, v := range c.Videos {
		set[v.ChannelTitle] = struct{}{}
	}
	return sortedSet(set)
}

// Categories returns the sorted set of distinct categories across all items.
func (c *Catalog) Categories() []string {
	set := map[string]struct{}{}
	for _, b := range c.Books {
		for _, cat := range b.Categories {
			set[cat] = struct{}{}
		}
	}
	for _, v := range c.Videos {
		for _, cat := range v.Categories {
			set[cat] = struct{}{}
		}
	}
	return sortedSet(set)
}

// Tags returns the sorted set of distinct tags across all items.
func (c *Catalog) Tags() []string {
	set := map[string]struct{}{}
	for _, b := range c.Books {
		for _, t := range b.Tags {
			set[t] = struct{}{}
		}
	}
	for _, v := range c.Videos {
		for _, t := range v.Tags {
			set[t] = struct{}{}
		}
	}
	return sortedSet(set)
}

// Stats computes aggregate counts for the catalog.
func (c *Catalog) Stats() Stats {
	return Stats{
		TotalBooks:       len(c.Books),
		TotalVideos:      len(c.Videos),
		TotalItems:       len(c.Books) + len(c.Videos),
		UniqueAuthors:    len(c.Authors()),
		UniqueChannels:   len(c.Channels()),
		UniqueCategories: len(c.Categories()),
		UniqueTags:       len(c.Tags()),
	}
}

// Sort orders both lists by item path so that incremental adds and a
// full rebuild serialise identically.
func (c *Catalog) Sort() {
	sort.Slice(c.Books, func(i, j int) bool { return c.Books[i].Path < c.Books[j].Path })
	sort.Slice(c.Videos, func(i, j int) bool { return c.Videos[i].Path < c.Videos[j].Path })
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
