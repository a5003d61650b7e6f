package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/custodia-labs/librarian-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
)

func newCatalogFixture(t *testing.T) (Library, *storagefile.ManifestStore, *CatalogSvc) {
	t.Helper()
	lib := newTestLibrary(t)
	require.NoError(t, os.MkdirAll(lib.BooksDir(), 0o755))
	require.NoError(t, os.MkdirAll(lib.VideosDir(), 0o755))

	manifests := storagefile.NewManifestStore()
	svc := NewCatalogSvc(lib, manifests, storagefile.NewCatalogStore(lib.Root()))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return lib, manifests, svc
}

func writeBookItem(t *testing.T, lib Library, manifests *storagefile.ManifestStore, rel string, m domain.BookManifest) domain.Book {
	t.Helper()
	dir := lib.Abs(rel)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, manifests.SaveBook(dir, m))
	return domain.Book{Path: rel, Manifest: m}
}

func testBookManifest(title, author string) domain.BookManifest {
	return domain.BookManifest{
		Title:      title,
		Author:     author,
		Categories: []string{},
		Tags:       []string{},
		Formats:    map[string]string{"txt": domain.Slugify(title) + ".txt"},
		Summaries:  map[string]string{},
	}
}

func TestCatalogSvc_AddEquivalentToRebuild(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)
	ctx := context.Background()

	a := writeBookItem(t, lib, manifests, "books/newport-cal/deep-work", testBookManifest("Deep Work", "Cal Newport"))
	b := writeBookItem(t, lib, manifests, "books/hunt-andrew/pragmatic", testBookManifest("Pragmatic", "Andrew Hunt"))

	// Incremental adds, deliberately out of path order.
	require.NoError(t, svc.AddBook(ctx, b))
	require.NoError(t, svc.AddBook(ctx, a))
	incremental, err := svc.Load(ctx)
	require.NoError(t, err)

	rebuilt, err := svc.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, incremental.Books, rebuilt.Books)
	assert.Equal(t, incremental.Videos, rebuilt.Videos)
}

func TestCatalogSvc_AddVideo(t *testing.T) {
	_, _, impl := newCatalogFixture(t)
	ctx := context.Background()

	// Exercised through the driving port, the way the ingestion
	// service reaches the catalog.
	var svc driving.CatalogService = impl

	video := domain.Video{
		Path: "videos/tech-talks__UC1/vid42__on-focus",
		Manifest: domain.VideoManifest{
			VideoID:      "vid42",
			Title:        "On Focus",
			ChannelID:    "UC1",
			ChannelTitle: "Tech Talks",
			Categories:   []string{},
			Tags:         []string{},
		},
	}
	require.NoError(t, svc.AddVideo(ctx, video))
	require.NoError(t, svc.AddVideo(ctx, video)) // upsert, not duplicate

	catalog, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, catalog.Videos, 1)
	assert.Equal(t, "vid42", catalog.Videos[0].VideoID)
}

func TestCatalogSvc_RebuildMatchesLoadWhenOneKindIsEmpty(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)
	ctx := context.Background()

	writeBookItem(t, lib, manifests, "books/newport-cal/deep-work", testBookManifest("Deep Work", "Cal Newport"))

	rebuilt, err := svc.Rebuild(ctx)
	require.NoError(t, err)

	loaded, err := svc.Load(ctx)
	require.NoError(t, err)

	// The returned catalog and its decoded persisted form must be the
	// same value, including the empty videos list.
	assert.Equal(t, loaded.Books, rebuilt.Books)
	assert.Equal(t, loaded.Videos, rebuilt.Videos)
	assert.NotNil(t, rebuilt.Videos)
}

func TestCatalogSvc_RebuildSkipsUnreadableManifest(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)
	ctx := context.Background()

	writeBookItem(t, lib, manifests, "books/good-author/good", testBookManifest("Good", "Good Author"))

	badDir := lib.Abs("books/bad-author/bad")
	require.NoError(t, os.MkdirAll(badDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(badDir, storagefile.ManifestFileName), []byte("{invalid yaml"), 0o644))

	catalog, err := svc.Rebuild(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog.Books, 1)
	assert.Equal(t, "Good", catalog.Books[0].Title)
}

func TestCatalogSvc_RebuildIgnoresIndexDirs(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)

	writeBookItem(t, lib, manifests, "books/some-author/real", testBookManifest("Real", "Some Author"))
	require.NoError(t, os.MkdirAll(filepath.Join(lib.BooksDir(), "_index"), 0o755))

	catalog, err := svc.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog.Books, 1)
}

func TestCatalogSvc_CheckReportsDanglingEntries(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)
	ctx := context.Background()

	book := writeBookItem(t, lib, manifests, "books/some-author/kept", testBookManifest("Kept", "Some Author"))
	require.NoError(t, svc.AddBook(ctx, book))

	gone := domain.Book{Path: "books/some-author/gone", Manifest: testBookManifest("Gone", "Some Author")}
	require.NoError(t, svc.AddBook(ctx, gone))

	bad, err := svc.Check(ctx)
	require.ErrorIs(t, err, domain.ErrCatalogInconsistency)
	assert.Equal(t, []string{"books/some-author/gone"}, bad)
}

func TestCatalogSvc_CheckCleanCatalog(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)
	ctx := context.Background()

	book := writeBookItem(t, lib, manifests, "books/some-author/fine", testBookManifest("Fine", "Some Author"))
	require.NoError(t, svc.AddBook(ctx, book))

	bad, err := svc.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, bad)
}

func TestCatalogSvc_StatsAndStamp(t *testing.T) {
	lib, manifests, svc := newCatalogFixture(t)
	ctx := context.Background()

	book := writeBookItem(t, lib, manifests, "books/some-author/one", testBookManifest("One", "Some Author"))
	require.NoError(t, svc.AddBook(ctx, book))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalBooks)

	catalog, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T12:00:00Z", catalog.LastUpdated)
}
