package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
	"github.com/custodia-labs/librarian-cli/internal/logger"
	"github.com/custodia-labs/librarian-cli/internal/util"
)

// Ensure IngestSvc implements the interface.
var _ driving.IngestService = (*IngestSvc)(nil)

// IngestSvc runs the ingestion pipeline: detect, extract, resolve
// metadata, materialise the item directory, register in the catalog
// and regenerate the indices.
//
// Item directories are built in <root>/.staging/<uuid> and renamed
// into place once the manifest is written, so a failure at any earlier
// step leaves no trace in the archive. A failure between the rename
// and the catalog update is recovered by catalog rebuild.
type IngestSvc struct {
	lib       Library
	registry  *ExtractorRegistry
	manifests driven.ManifestStore
	catalog   driving.CatalogService
	index     driving.IndexService

	minSectionChars int
	now             func() time.Time
	newStageID      func() string
}

// NewIngestSvc creates a new ingestion service. minSectionChars <= 0
// selects the default retention threshold.
func NewIngestSvc(lib Library, registry *ExtractorRegistry, manifests driven.ManifestStore, catalog driving.CatalogService, index driving.IndexService, minSectionChars int) *IngestSvc {
	return &IngestSvc{
		lib:             lib,
		registry:        registry,
		manifests:       manifests,
		catalog:         catalog,
		index:           index,
		minSectionChars: minSectionChars,
		now:             time.Now,
		newStageID:      uuid.NewString,
	}
}

// AddBook ingests one or more files for a single logical book.
func (s *IngestSvc) AddBook(ctx context.Context, req driving.BookRequest) (*domain.Book, error) {
	if len(req.Files) == 0 {
		return nil, fmt.Errorf("%w: no source files given", domain.ErrInvalidInput)
	}

	files, err := classifyFiles(req.Files)
	if err != nil {
		return nil, err
	}

	sourceFolder := filepath.Base(filepath.Dir(files[0].Path))
	return s.addBook(ctx, req, files, nil, sourceFolder, "")
}

// AddBookFolder ingests a structured folder: content files sharing the
// folder's name become formats, summary files become converted
// summaries, and the folder name serves as the title of last resort.
func (s *IngestSvc) AddBookFolder(ctx context.Context, dir string, req driving.BookRequest) (*domain.Book, error) {
	scan, err := ScanFolder(dir)
	if err != nil {
		return nil, err
	}
	if len(scan.PrimaryFormats) == 0 {
		return nil, fmt.Errorf("%w: no primary content files in %s", domain.ErrNoContent, dir)
	}
	for _, skipped := range scan.Unclassified {
		logger.Debug("ignoring unclassified file %s", skipped)
	}

	folderName := filepath.Base(dir)
	return s.addBook(ctx, req, scan.PrimaryFormats, scan.Summaries, folderName, titleFromFileName(folderName))
}

// addBook is the shared book pipeline behind AddBook and AddBookFolder.
func (s *IngestSvc) addBook(ctx context.Context, req driving.BookRequest, files []FormatFile, summaries []SummaryFile, sourceFolder, fallbackTitle string) (*domain.Book, error) {
	scan := FolderScan{PrimaryFormats: files}
	src, ok := scan.PreferredFile(req.PreferFormat)
	if !ok {
		return nil, fmt.Errorf("%w: no extractable source among %d files", domain.ErrUnsupportedFormat, len(files))
	}
	logger.Debug("extracting from %s (%s)", src.Path, src.Format)

	extractor, err := s.registry.Get(src.Format)
	if err != nil {
		return nil, err
	}
	text, err := extractor.Extract(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	embedded, err := extractor.Metadata(ctx, src.Path)
	if err != nil {
		return nil, err
	}

	override := domain.Metadata{Title: req.Title, Author: req.Author, ISBN: req.ISBN}
	meta := ResolveMetadata(embedded, ScanTextMetadata(text), override)
	if meta.Title == "" {
		meta.Title = fallbackTitle
	}
	if !meta.Complete() {
		return nil, fmt.Errorf("%w: title and author are required (resolved title=%q author=%q)", domain.ErrMissingMetadata, meta.Title, meta.Author)
	}

	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	if existing := catalog.FindBook(meta.Author, meta.Title); existing != nil {
		return s.appendFormats(ctx, existing.Path, files)
	}

	relPath := "books/" + domain.BookFolderPath(meta.Title, meta.Author)
	if _, err := os.Stat(s.lib.Abs(relPath)); err == nil {
		return nil, fmt.Errorf("%w: directory %s already exists", domain.ErrDuplicateItem, relPath)
	}

	manifest := domain.BookManifest{
		Title:        meta.Title,
		Author:       meta.Author,
		ISBN:         meta.ISBN,
		Categories:   normalizeList(req.Categories),
		Tags:         normalizeList(req.Tags),
		SourceFolder: sourceFolder,
		Formats:      map[string]string{},
		Summaries:    map[string]string{},
		ContentHash:  util.Fingerprint([]byte(text)),
		CreatedAt:    s.now().UTC(),
	}

	stage, cleanup, err := s.newStage()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	titleSlug := domain.Slugify(meta.Title)
	for _, f := range files {
		name := titleSlug + "." + f.Format.Ext()
		if _, dup := manifest.Formats[string(f.Format)]; dup {
			continue
		}
		if err := copyFile(f.Path, filepath.Join(stage, name)); err != nil {
			return nil, fmt.Errorf("copying source format: %w", err)
		}
		manifest.Formats[string(f.Format)] = name
	}

	// Keep a markdown rendition of the extracted text alongside the
	// sources unless one was ingested as a source itself.
	if _, hasMarkdown := manifest.Formats[string(domain.FormatMarkdown)]; !hasMarkdown {
		name := titleSlug + ".md"
		if err := os.WriteFile(filepath.Join(stage, name), []byte(text), 0o644); err != nil {
			return nil, fmt.Errorf("writing derived text: %w", err)
		}
		manifest.Formats[string(domain.FormatMarkdown)] = name
	}

	if decomposer, ok := s.registry.Decomposer(src.Format); ok {
		chapters, err := s.writeChapters(ctx, decomposer, src.Path, stage)
		if err != nil {
			return nil, err
		}
		manifest.Chapters = chapters
	}

	for _, summary := range summaries {
		name, err := s.writeSummary(ctx, summary, stage)
		if err != nil {
			return nil, err
		}
		manifest.Summaries[summary.Type] = name
	}

	if err := s.manifests.SaveBook(stage, manifest); err != nil {
		return nil, err
	}
	if err := s.commit(stage, relPath); err != nil {
		return nil, err
	}

	book := &domain.Book{Path: relPath, Manifest: manifest}
	if err := s.register(ctx, func() error { return s.catalog.AddBook(ctx, *book) }); err != nil {
		return nil, err
	}
	logger.Info("added book %q by %s at %s", meta.Title, meta.Author, relPath)
	return book, nil
}

// appendFormats merges new source files into an existing item with the
// same resolved identity. A format the item already carries cannot be
// merged and fails the whole call.
func (s *IngestSvc) appendFormats(ctx context.Context, relPath string, files []FormatFile) (*domain.Book, error) {
	dir := s.lib.Abs(relPath)
	manifest, err := s.manifests.LoadBook(dir)
	if err != nil {
		return nil, err
	}

	if allFormatsPresent(manifest.Formats, files) {
		return nil, fmt.Errorf("%w: %s already has every offered format", domain.ErrDuplicateItem, relPath)
	}

	titleSlug := domain.Slugify(manifest.Title)
	appended := 0
	for _, f := range files {
		tag := string(f.Format)
		if _, exists := manifest.Formats[tag]; exists {
			continue
		}
		name := titleSlug + "." + f.Format.Ext()
		if err := copyFile(f.Path, filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("copying source format: %w", err)
		}
		manifest.Formats[tag] = name
		appended++
	}

	if err := s.manifests.SaveBook(dir, manifest); err != nil {
		return nil, err
	}

	book := &domain.Book{Path: relPath, Manifest: manifest}
	if err := s.register(ctx, func() error { return s.catalog.AddBook(ctx, *book) }); err != nil {
		return nil, err
	}
	logger.Info("appended %d format(s) to existing item %s", appended, relPath)
	return book, nil
}

// AddVideo ingests a transcript plus caller metadata as a video item.
func (s *IngestSvc) AddVideo(ctx context.Context, req driving.VideoRequest) (*domain.Video, error) {
	if req.VideoID == "" || req.TranscriptFile == "" {
		return nil, fmt.Errorf("%w: video id and transcript file are required", domain.ErrInvalidInput)
	}
	if req.Title == "" || req.ChannelTitle == "" || req.ChannelID == "" {
		return nil, fmt.Errorf("%w: title, channel id and channel title are required", domain.ErrMissingMetadata)
	}

	transcript, err := os.ReadFile(req.TranscriptFile)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var publishedAt *time.Time
	if req.PublishedAt != "" {
		ts, err := time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid published timestamp %q: %v", domain.ErrInvalidInput, req.PublishedAt, err)
		}
		publishedAt = &ts
	}

	catalog, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}
	if existing := catalog.FindVideo(req.VideoID); existing != nil {
		return nil, fmt.Errorf("%w: video %s already archived at %s", domain.ErrDuplicateItem, req.VideoID, existing.Path)
	}

	relPath := "videos/" + domain.ChannelFolderName(req.ChannelID, req.ChannelTitle) +
		"/" + domain.VideoFolderName(req.VideoID, req.Title)
	if _, err := os.Stat(s.lib.Abs(relPath)); err == nil {
		return nil, fmt.Errorf("%w: directory %s already exists", domain.ErrDuplicateItem, relPath)
	}

	manifest := domain.VideoManifest{
		VideoID:      req.VideoID,
		Title:        req.Title,
		Description:  req.Description,
		URL:          "https://www.youtube.com/watch?v=" + req.VideoID,
		ChannelID:    req.ChannelID,
		ChannelTitle: req.ChannelTitle,
		Categories:   normalizeList(req.Categories),
		Tags:         normalizeList(req.Tags),
		PublishedAt:  publishedAt,
		Source:       map[string]string{"transcript_path": "source/transcript.txt"},
		Summaries:    map[string]string{},
		ContentHash:  util.Fingerprint(transcript),
		CreatedAt:    s.now().UTC(),
	}

	stage, cleanup, err := s.newStage()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if err := os.MkdirAll(filepath.Join(stage, "source"), 0o755); err != nil {
		return nil, fmt.Errorf("staging transcript: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stage, "source", "transcript.txt"), transcript, 0o644); err != nil {
		return nil, fmt.Errorf("staging transcript: %w", err)
	}
	if err := s.manifests.SaveVideo(stage, manifest); err != nil {
		return nil, err
	}
	if err := s.commit(stage, relPath); err != nil {
		return nil, err
	}

	video := &domain.Video{Path: relPath, Manifest: manifest}
	if err := s.register(ctx, func() error { return s.catalog.AddVideo(ctx, *video) }); err != nil {
		return nil, err
	}
	logger.Info("added video %q (%s) at %s", req.Title, req.VideoID, relPath)
	return video, nil
}

// writeChapters decomposes the source and writes the retained sections
// under <stage>/chapters.
func (s *IngestSvc) writeChapters(ctx context.Context, decomposer driven.Decomposer, srcPath, stage string) ([]domain.Chapter, error) {
	sections, err := decomposer.Decompose(ctx, srcPath)
	if err != nil {
		return nil, err
	}
	chapters, err := AssembleChapters(sections, s.minSectionChars)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(stage, "chapters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("writing chapters: %w", err)
	}

	records := make([]domain.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		name := ch.FileName()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(ch.Content+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("writing chapter %d: %w", ch.Number, err)
		}
		records = append(records, domain.Chapter{Number: ch.Number, Title: ch.Title, Path: "chapters/" + name})
	}
	return records, nil
}

// writeSummary converts one summary file to markdown under
// <stage>/summaries and returns its manifest-relative path.
func (s *IngestSvc) writeSummary(ctx context.Context, summary SummaryFile, stage string) (string, error) {
	var content string
	switch summary.Format {
	case domain.FormatMarkdown, domain.FormatText:
		raw, err := os.ReadFile(summary.Path)
		if err != nil {
			return "", fmt.Errorf("reading summary: %w", err)
		}
		content = string(raw)
	default:
		extractor, err := s.registry.Get(summary.Format)
		if err != nil {
			return "", err
		}
		content, err = extractor.Extract(ctx, summary.Path)
		if err != nil {
			return "", err
		}
	}

	dir := filepath.Join(stage, "summaries")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	name := SummaryOutputName(summary.Type)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return "summaries/" + name, nil
}

// newStage creates a fresh staging directory and returns it with its
// cleanup function. Cleanup after a successful rename is a no-op.
func (s *IngestSvc) newStage() (string, func(), error) {
	stage := filepath.Join(s.lib.StagingDir(), s.newStageID())
	if err := os.MkdirAll(stage, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating staging directory: %w", err)
	}
	return stage, func() { _ = os.RemoveAll(stage) }, nil
}

// commit moves a fully staged item directory into its final location.
func (s *IngestSvc) commit(stage, relPath string) error {
	final := s.lib.Abs(relPath)
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return fmt.Errorf("committing %s: %w", relPath, err)
	}
	if err := os.Rename(stage, final); err != nil {
		return fmt.Errorf("committing %s: %w", relPath, err)
	}
	return nil
}

// register runs the catalog update then regenerates the indices. The
// manifest is already committed at this point, so failures here are
// recoverable via catalog rebuild rather than rolled back.
func (s *IngestSvc) register(ctx context.Context, addToCatalog func() error) error {
	if err := addToCatalog(); err != nil {
		return fmt.Errorf("item committed but catalog update failed (run catalog rebuild): %w", err)
	}
	if err := s.index.Regenerate(ctx); err != nil {
		return fmt.Errorf("item committed but index regeneration failed (run index regenerate): %w", err)
	}
	return nil
}

// classifyFiles detects the format of each explicit source file. Any
// unknown or unreadable file fails the whole call.
func classifyFiles(paths []string) ([]FormatFile, error) {
	files := make([]FormatFile, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: source file %s", domain.ErrNotFound, p)
		}
		format := domain.DetectFormat(p)
		if !format.IsSupported() {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, p)
		}
		files = append(files, FormatFile{Format: format, Path: p})
	}
	return files, nil
}

func allFormatsPresent(formats map[string]string, files []FormatFile) bool {
	for _, f := range files {
		if _, ok := formats[string(f.Format)]; !ok {
			return false
		}
	}
	return true
}

func normalizeList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
