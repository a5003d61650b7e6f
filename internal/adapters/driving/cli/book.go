package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
)

var (
	bookTitle      string
	bookAuthor     string
	bookISBN       string
	bookCategories []string
	bookTags       []string
	bookPrefer     string

	bookListAuthor string
	bookGetAuthor  string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage books in the archive",
}

var bookAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Add book files to the archive",
	Long: `Ingests one or more source files as a single logical book. Metadata
is resolved from the richest format's embedded metadata, then a
heuristic scan of the extracted text; --title, --author and --isbn
always win. Re-adding a format-variant of a book already in the
archive appends the new format to the existing item.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBookAdd,
}

var bookAddFolderCmd = &cobra.Command{
	Use:   "add-folder <dir>",
	Short: "Add a structured book folder to the archive",
	Long: `Ingests a folder whose content files share the folder's name.
Files named <folder>-summary-<type>, <folder>_summary_<type> or
<folder>-<type>-summary are converted to markdown summaries; anything
else is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runBookAddFolder,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived books",
	RunE:  runBookList,
}

var bookGetCmd = &cobra.Command{
	Use:   "get <title>",
	Short: "Show one book's manifest details",
	Long: `Looks a book up by title (case-insensitive) and prints its full
manifest: formats, chapters, summaries and metadata. When several
authors share the title, disambiguate with --author.`,
	Args: cobra.ExactArgs(1),
	RunE: runBookGet,
}

func init() {
	bookListCmd.Flags().StringVar(&bookListAuthor, "author", "", "only list books by this author")
	bookGetCmd.Flags().StringVar(&bookGetAuthor, "author", "", "disambiguate by author")
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookGetCmd)

	for _, c := range []*cobra.Command{bookAddCmd, bookAddFolderCmd} {
		c.Flags().StringVar(&bookTitle, "title", "", "override the resolved title")
		c.Flags().StringVar(&bookAuthor, "author", "", "override the resolved author")
		c.Flags().StringVar(&bookISBN, "isbn", "", "override the resolved ISBN")
		c.Flags().StringSliceVar(&bookCategories, "category", nil, "category (repeatable)")
		c.Flags().StringSliceVar(&bookTags, "tag", nil, "tag (repeatable)")
		c.Flags().StringVar(&bookPrefer, "prefer", "", "preferred extraction format (epub, pdf, markdown, txt)")
	}
	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookAddFolderCmd)
	rootCmd.AddCommand(bookCmd)
}

func bookRequest(files []string) driving.BookRequest {
	return driving.BookRequest{
		Files:        files,
		Title:        bookTitle,
		Author:       bookAuthor,
		ISBN:         bookISBN,
		Categories:   bookCategories,
		Tags:         bookTags,
		PreferFormat: preferredFormat(bookPrefer),
	}
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	book, err := ingestService.AddBook(cmd.Context(), bookRequest(args))
	if err != nil {
		return err
	}
	printBook(cmd, book)
	return nil
}

func runBookAddFolder(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	book, err := ingestService.AddBookFolder(cmd.Context(), args[0], bookRequest(nil))
	if err != nil {
		return err
	}
	printBook(cmd, book)
	return nil
}

func runBookList(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	catalog, err := catalogService.Load(cmd.Context())
	if err != nil {
		return err
	}

	var books []domain.BookSummary
	for _, b := range catalog.Books {
		if bookListAuthor != "" && !strings.EqualFold(b.Author, bookListAuthor) {
			continue
		}
		books = append(books, b)
	}

	if len(books) == 0 {
		cmd.Println("No books in the library.")
		return nil
	}

	cmd.Printf("%d book(s):\n", len(books))
	for _, b := range books {
		cmd.Printf("  %q by %s\n", b.Title, b.Author)
		cmd.Printf("    %s [%s]\n", b.Path, strings.Join(b.Formats, ", "))
	}
	return nil
}

func runBookGet(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	catalog, err := catalogService.Load(cmd.Context())
	if err != nil {
		return err
	}

	var matches []domain.BookSummary
	for _, b := range catalog.Books {
		if !strings.EqualFold(b.Title, args[0]) {
			continue
		}
		if bookGetAuthor != "" && !strings.EqualFold(b.Author, bookGetAuthor) {
			continue
		}
		matches = append(matches, b)
	}

	switch len(matches) {
	case 0:
		return fmt.Errorf("%w: no book titled %q", domain.ErrNotFound, args[0])
	case 1:
	default:
		authors := make([]string, len(matches))
		for i, m := range matches {
			authors[i] = m.Author
		}
		return fmt.Errorf("%w: %q matches several authors (%s), pass --author",
			domain.ErrInvalidInput, args[0], strings.Join(authors, ", "))
	}

	manifest, err := manifestStore.LoadBook(library.Abs(matches[0].Path))
	if err != nil {
		return err
	}

	cmd.Printf("%q by %s\n", manifest.Title, manifest.Author)
	cmd.Printf("  Location: %s\n", matches[0].Path)
	if manifest.ISBN != "" {
		cmd.Printf("  ISBN:     %s\n", manifest.ISBN)
	}
	if len(manifest.Categories) > 0 {
		cmd.Printf("  Categories: %s\n", strings.Join(manifest.Categories, ", "))
	}
	if len(manifest.Tags) > 0 {
		cmd.Printf("  Tags:     %s\n", strings.Join(manifest.Tags, ", "))
	}

	formats := make([]string, 0, len(manifest.Formats))
	for f := range manifest.Formats {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	cmd.Printf("  Formats:  %s\n", strings.Join(formats, ", "))

	if len(manifest.Chapters) > 0 {
		cmd.Printf("  Chapters:\n")
		for _, ch := range manifest.Chapters {
			cmd.Printf("    %d. %s (%s)\n", ch.Number, ch.Title, ch.Path)
		}
	}
	if len(manifest.Summaries) > 0 {
		types := make([]string, 0, len(manifest.Summaries))
		for s := range manifest.Summaries {
			types = append(types, s)
		}
		sort.Strings(types)
		cmd.Printf("  Summaries: %s\n", strings.Join(types, ", "))
	}
	return nil
}

func printBook(cmd *cobra.Command, book *domain.Book) {
	formats := make([]string, 0, len(book.Manifest.Formats))
	for f := range book.Manifest.Formats {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	cmd.Printf("Added %q by %s\n", book.Manifest.Title, book.Manifest.Author)
	cmd.Printf("  Location: %s\n", book.Path)
	cmd.Printf("  Formats:  %s\n", strings.Join(formats, ", "))
	if len(book.Manifest.Chapters) > 0 {
		cmd.Printf("  Chapters: %d\n", len(book.Manifest.Chapters))
	}
	if len(book.Manifest.Summaries) > 0 {
		cmd.Printf("  Summaries: %d\n", len(book.Manifest.Summaries))
	}
}
