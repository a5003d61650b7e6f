package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
	"github.com/custodia-labs/librarian-cli/internal/logger"
)

// recentItemCount is how many recently created items the library
// overview lists.
const recentItemCount = 10

// Ensure IndexSvc implements the interface.
var _ driving.IndexService = (*IndexSvc)(nil)

// IndexSvc regenerates the navigation index documents from the
// catalog and the manifests it references. It only ever rewrites its
// own generated files; manifests and the catalog are never touched.
type IndexSvc struct {
	lib       Library
	manifests driven.ManifestStore
	store     driven.CatalogStore
}

// NewIndexSvc creates a new index service.
func NewIndexSvc(lib Library, manifests driven.ManifestStore, store driven.CatalogStore) *IndexSvc {
	return &IndexSvc{lib: lib, manifests: manifests, store: store}
}

// Regenerate rewrites every generated index document.
func (s *IndexSvc) Regenerate(_ context.Context) error {
	catalog, err := s.store.Load()
	if err != nil {
		return err
	}

	var books []domain.Book
	for _, b := range catalog.Books {
		manifest, err := s.manifests.LoadBook(s.lib.Abs(b.Path))
		if err != nil {
			logger.Warn("index: skipping book with unreadable manifest at %s: %v", b.Path, err)
			continue
		}
		books = append(books, domain.Book{Path: b.Path, Manifest: manifest})
	}

	var videos []domain.Video
	for _, v := range catalog.Videos {
		manifest, err := s.manifests.LoadVideo(s.lib.Abs(v.Path))
		if err != nil {
			logger.Warn("index: skipping video with unreadable manifest at %s: %v", v.Path, err)
			continue
		}
		videos = append(videos, domain.Video{Path: v.Path, Manifest: manifest})
	}

	docs := GenerateIndices(catalog, books, videos)
	for rel, content := range docs {
		target := s.lib.Abs(rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("writing index %s: %w", rel, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing index %s: %w", rel, err)
		}
	}

	logger.Debug("regenerated %d index documents", len(docs))
	return nil
}

// GenerateIndices builds every navigation document from the catalog
// and loaded items. It is a pure function: identical input yields
// byte-identical output, so regeneration is idempotent. Keys are
// slash-separated paths relative to the archive root; all links are
// relative to the document that contains them.
func GenerateIndices(catalog domain.Catalog, books []domain.Book, videos []domain.Video) map[string]string {
	docs := map[string]string{
		"_index/README.md":          libraryOverview(catalog),
		"_index/categories.md":      categoriesIndex(books, videos),
		"books/_index/authors.md":   authorsIndex(books),
		"books/_index/titles.md":    titlesIndex(books),
		"videos/_index/channels.md": channelsIndex(videos),
	}

	for group, items := range groupBooks(books) {
		docs[group+"/index.md"] = bookGroupOverview(group, items)
	}
	for group, items := range groupVideos(videos) {
		docs[group+"/index.md"] = videoGroupOverview(group, items)
	}

	for _, b := range books {
		docs[b.Path+"/index.md"] = bookIndex(b)
	}
	for _, v := range videos {
		docs[v.Path+"/index.md"] = videoIndex(v)
	}

	return docs
}

func libraryOverview(catalog domain.Catalog) string {
	stats := catalog.Stats()

	var sb strings.Builder
	sb.WriteString("# Library Index\n\n")
	sb.WriteString("## Statistics\n\n")
	fmt.Fprintf(&sb, "- **Total Books:** %d\n", stats.TotalBooks)
	fmt.Fprintf(&sb, "- **Total Videos:** %d\n", stats.TotalVideos)
	fmt.Fprintf(&sb, "- **Total Items:** %d\n", stats.TotalItems)
	fmt.Fprintf(&sb, "- **Unique Authors:** %d\n", stats.UniqueAuthors)
	fmt.Fprintf(&sb, "- **Unique Channels:** %d\n", stats.UniqueChannels)
	fmt.Fprintf(&sb, "- **Categories:** %d\n", stats.UniqueCategories)
	fmt.Fprintf(&sb, "- **Tags:** %d\n", stats.UniqueTags)

	sb.WriteString("\n## Quick Links\n\n")
	sb.WriteString("### Books\n")
	sb.WriteString("- [Browse by Author](../books/_index/authors.md)\n")
	sb.WriteString("- [Browse by Title](../books/_index/titles.md)\n\n")
	sb.WriteString("### Videos\n")
	sb.WriteString("- [Browse by Channel](../videos/_index/channels.md)\n\n")
	sb.WriteString("### All Items\n")
	sb.WriteString("- [Browse by Category](categories.md)\n")

	if recent := recentItems(catalog); len(recent) > 0 {
		sb.WriteString("\n## Recently Added\n\n")
		for _, line := range recent {
			sb.WriteString(line)
		}
	}

	writeCountSection(&sb, "Categories", categoryCounts(catalog))
	writeCountSection(&sb, "Tags", tagCounts(catalog))

	return sb.String()
}

// recentItems lists up to recentItemCount items ordered by creation
// time, newest first, ties broken by path for determinism.
func recentItems(catalog domain.Catalog) []string {
	type entry struct {
		line    string
		created int64
		path    string
	}

	var entries []entry
	for _, b := range catalog.Books {
		entries = append(entries, entry{
			line:    fmt.Sprintf("- **[%s](%s)** by %s\n", b.Title, relLink("_index", b.Path), b.Author),
			created: b.CreatedAt.Unix(),
			path:    b.Path,
		})
	}
	for _, v := range catalog.Videos {
		entries = append(entries, entry{
			line:    fmt.Sprintf("- **[%s](%s)** (%s)\n", v.Title, relLink("_index", v.Path), v.ChannelTitle),
			created: v.CreatedAt.Unix(),
			path:    v.Path,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].created != entries[j].created {
			return entries[i].created > entries[j].created
		}
		return entries[i].path < entries[j].path
	})
	if len(entries) > recentItemCount {
		entries = entries[:recentItemCount]
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.line
	}
	return lines
}

func authorsIndex(books []domain.Book) string {
	byAuthor := map[string][]domain.Book{}
	for _, b := range books {
		byAuthor[b.Manifest.Author] = append(byAuthor[b.Manifest.Author], b)
	}

	var sb strings.Builder
	sb.WriteString("# Authors Index\n\n")
	fmt.Fprintf(&sb, "**Total Authors:** %d\n", len(byAuthor))
	fmt.Fprintf(&sb, "**Total Books:** %d\n\n---\n", len(books))

	for _, author := range sortedKeys(byAuthor) {
		group := byAuthor[author]
		sortBooksByTitle(group)

		fmt.Fprintf(&sb, "\n## %s\n\n", author)
		fmt.Fprintf(&sb, "**Books:** %d\n\n", len(group))
		for _, b := range group {
			fmt.Fprintf(&sb, "- **[%s](%s)**%s%s\n",
				b.Manifest.Title,
				relLink("books/_index", b.Path),
				formatList(b.Manifest.Formats),
				suffixJoin(" · ", b.Manifest.Categories))
		}
	}

	return sb.String()
}

func titlesIndex(books []domain.Book) string {
	sorted := make([]domain.Book, len(books))
	copy(sorted, books)
	sortBooksByTitle(sorted)

	byLetter := map[string][]domain.Book{}
	for _, b := range sorted {
		byLetter[titleLetter(b.Manifest.Title)] = append(byLetter[titleLetter(b.Manifest.Title)], b)
	}

	var sb strings.Builder
	sb.WriteString("# Titles Index\n\n")
	fmt.Fprintf(&sb, "**Total Books:** %d\n\n---\n", len(books))

	for _, letter := range sortedKeys(byLetter) {
		fmt.Fprintf(&sb, "\n## %s\n\n", letter)
		for _, b := range byLetter[letter] {
			fmt.Fprintf(&sb, "- **[%s](%s)** by %s%s\n",
				b.Manifest.Title,
				relLink("books/_index", b.Path),
				b.Manifest.Author,
				formatList(b.Manifest.Formats))
		}
	}

	return sb.String()
}

// categoriesIndex groups books and videos under one section per
// distinct category value. Items carrying several categories appear
// once per category; items with none appear nowhere here.
func categoriesIndex(books []domain.Book, videos []domain.Video) string {
	type entry struct {
		title string
		line  string
	}

	byCategory := map[string][]entry{}
	for _, b := range books {
		for _, c := range b.Manifest.Categories {
			byCategory[c] = append(byCategory[c], entry{
				title: b.Manifest.Title,
				line:  fmt.Sprintf("- **[%s](%s)** by %s\n", b.Manifest.Title, relLink("_index", b.Path), b.Manifest.Author),
			})
		}
	}
	for _, v := range videos {
		for _, c := range v.Manifest.Categories {
			byCategory[c] = append(byCategory[c], entry{
				title: v.Manifest.Title,
				line:  fmt.Sprintf("- **[%s](%s)** (%s)\n", v.Manifest.Title, relLink("_index", v.Path), v.Manifest.ChannelTitle),
			})
		}
	}

	var sb strings.Builder
	sb.WriteString("# Categories Index\n\n")
	fmt.Fprintf(&sb, "**Total Categories:** %d\n\n---\n", len(byCategory))

	for _, category := range sortedKeys(byCategory) {
		group := byCategory[category]
		sort.Slice(group, func(i, j int) bool {
			return strings.ToLower(group[i].title) < strings.ToLower(group[j].title)
		})

		fmt.Fprintf(&sb, "\n## %s\n\n", category)
		fmt.Fprintf(&sb, "**Items:** %d\n\n", len(group))
		for _, e := range group {
			sb.WriteString(e.line)
		}
	}

	return sb.String()
}

func channelsIndex(videos []domain.Video) string {
	byChannel := map[string][]domain.Video{}
	for _, v := range videos {
		byChannel[v.Manifest.ChannelTitle] = append(byChannel[v.Manifest.ChannelTitle], v)
	}

	var sb strings.Builder
	sb.WriteString("# Channels Index\n\n")
	fmt.Fprintf(&sb, "**Total Channels:** %d\n", len(byChannel))
	fmt.Fprintf(&sb, "**Total Videos:** %d\n\n---\n", len(videos))

	for _, channel := range sortedKeys(byChannel) {
		group := byChannel[channel]
		sort.Slice(group, func(i, j int) bool { return group[i].Manifest.Title < group[j].Manifest.Title })

		fmt.Fprintf(&sb, "\n## %s\n\n", channel)
		fmt.Fprintf(&sb, "**Videos:** %d\n\n", len(group))
		for _, v := range group {
			fmt.Fprintf(&sb, "- **[%s](%s)**%s\n",
				v.Manifest.Title,
				relLink("videos/_index", v.Path),
				suffixJoin(" · ", v.Manifest.Categories))
		}
	}

	return sb.String()
}

func bookGroupOverview(group string, books []domain.Book) string {
	sortBooksByTitle(books)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", books[0].Manifest.Author)
	fmt.Fprintf(&sb, "**Books:** %d\n\n", len(books))
	for _, b := range books {
		fmt.Fprintf(&sb, "- **[%s](%s)**%s\n",
			b.Manifest.Title, relLink(group, b.Path), formatList(b.Manifest.Formats))
	}
	return sb.String()
}

func videoGroupOverview(group string, videos []domain.Video) string {
	sort.Slice(videos, func(i, j int) bool { return videos[i].Manifest.Title < videos[j].Manifest.Title })

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", videos[0].Manifest.ChannelTitle)
	fmt.Fprintf(&sb, "**Videos:** %d\n\n", len(videos))
	for _, v := range videos {
		fmt.Fprintf(&sb, "- **[%s](%s)**\n", v.Manifest.Title, relLink(group, v.Path))
	}
	return sb.String()
}

func bookIndex(b domain.Book) string {
	m := b.Manifest

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.Title)
	fmt.Fprintf(&sb, "**Author:** %s\n", m.Author)
	if m.ISBN != "" {
		fmt.Fprintf(&sb, "**ISBN:** %s\n", m.ISBN)
	}
	if len(m.Categories) > 0 {
		fmt.Fprintf(&sb, "**Categories:** %s\n", strings.Join(m.Categories, ", "))
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n", strings.Join(m.Tags, ", "))
	}
	sb.WriteString("\n---\n")

	if len(m.Formats) > 0 {
		sb.WriteString("\n## Available Formats\n\n")
		for _, format := range sortedKeys(m.Formats) {
			fmt.Fprintf(&sb, "- [%s](%s)\n", strings.ToUpper(format), m.Formats[format])
		}
	}

	if len(m.Chapters) > 0 {
		sb.WriteString("\n## Chapters\n\n")
		for _, ch := range m.Chapters {
			fmt.Fprintf(&sb, "%d. [%s](%s)\n", ch.Number, ch.Title, ch.Path)
		}
	}

	if len(m.Summaries) > 0 {
		sb.WriteString("\n## Summaries\n\n")
		for _, summary := range sortedKeys(m.Summaries) {
			fmt.Fprintf(&sb, "- [%s](%s)\n", summary, m.Summaries[summary])
		}
	}

	sb.WriteString("\n## Metadata\n\n")
	fmt.Fprintf(&sb, "- **Location:** `%s`\n", b.Path)
	sb.WriteString("- **Manifest:** [manifest.yaml](manifest.yaml)\n")

	return sb.String()
}

func videoIndex(v domain.Video) string {
	m := v.Manifest

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", m.Title)
	fmt.Fprintf(&sb, "**Channel:** %s\n", m.ChannelTitle)
	fmt.Fprintf(&sb, "**Video ID:** %s\n", m.VideoID)
	if m.PublishedAt != nil {
		fmt.Fprintf(&sb, "**Published:** %s\n", m.PublishedAt.Format("2006-01-02"))
	}
	if len(m.Categories) > 0 {
		fmt.Fprintf(&sb, "**Categories:** %s\n", strings.Join(m.Categories, ", "))
	}
	if len(m.Tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n", strings.Join(m.Tags, ", "))
	}
	sb.WriteString("\n---\n")

	if m.URL != "" {
		fmt.Fprintf(&sb, "\n**Watch:** [%s](%s)\n", m.URL, m.URL)
	}

	if transcript, ok := m.Source["transcript_path"]; ok {
		sb.WriteString("\n## Transcript\n\n")
		fmt.Fprintf(&sb, "- [Full Transcript](%s)\n", transcript)
	}

	if len(m.Summaries) > 0 {
		sb.WriteString("\n## Summaries\n\n")
		for _, summary := range sortedKeys(m.Summaries) {
			fmt.Fprintf(&sb, "- [%s](%s)\n", summary, m.Summaries[summary])
		}
	}

	sb.WriteString("\n## Metadata\n\n")
	fmt.Fprintf(&sb, "- **Location:** `%s`\n", v.Path)
	sb.WriteString("- **Manifest:** [manifest.yaml](manifest.yaml)\n")
	fmt.Fprintf(&sb, "- **Channel ID:** %s\n", m.ChannelID)

	return sb.String()
}

func groupBooks(books []domain.Book) map[string][]domain.Book {
	groups := map[string][]domain.Book{}
	for _, b := range books {
		groups[path.Dir(b.Path)] = append(groups[path.Dir(b.Path)], b)
	}
	return groups
}

func groupVideos(videos []domain.Video) map[string][]domain.Video {
	groups := map[string][]domain.Video{}
	for _, v := range videos {
		groups[path.Dir(v.Path)] = append(groups[path.Dir(v.Path)], v)
	}
	return groups
}

func categoryCounts(catalog domain.Catalog) map[string]int {
	counts := map[string]int{}
	for _, b := range catalog.Books {
		for _, c := range b.Categories {
			counts[c]++
		}
	}
	for _, v := range catalog.Videos {
		for _, c := range v.Categories {
			counts[c]++
		}
	}
	return counts
}

func tagCounts(catalog domain.Catalog) map[string]int {
	counts := map[string]int{}
	for _, b := range catalog.Books {
		for _, t := range b.Tags {
			counts[t]++
		}
	}
	for _, v := range catalog.Videos {
		for _, t := range v.Tags {
			counts[t]++
		}
	}
	return counts
}

func writeCountSection(sb *strings.Builder, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n## %s\n\n", heading)
	for _, key := range sortedKeys(counts) {
		fmt.Fprintf(sb, "- **%s** (%d items)\n", key, counts[key])
	}
}

// relLink computes the link from the directory holding a generated
// document to a target path, both relative to the archive root.
// Generated documents must never embed absolute or root-relative
// paths, since the archive is expected to be relocated as a unit.
func relLink(fromDir, target string) string {
	rel, err := filepath.Rel(filepath.FromSlash(fromDir), filepath.FromSlash(target))
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortBooksByTitle(books []domain.Book) {
	sort.Slice(books, func(i, j int) bool {
		return strings.ToLower(books[i].Manifest.Title) < strings.ToLower(books[j].Manifest.Title)
	})
}

func titleLetter(title string) string {
	if title == "" {
		return "#"
	}
	first := strings.ToUpper(title[:1])
	if first < "A" || first > "Z" {
		return "#"
	}
	return first
}

func formatList(formats map[string]string) string {
	if len(formats) == 0 {
		return ""
	}
	return " [" + strings.Join(sortedKeys(formats), ", ") + "]"
}

func suffixJoin(sep string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	return sep + strings.Join(values, ", ")
}
