package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and repair the catalog",
}

var catalogRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the catalog from the manifests on disk",
	Long: `Discards the current catalog, walks the archive, reads every
manifest and writes a fresh catalog. This is the recovery path for
any catalog/manifest divergence.`,
	RunE: runCatalogRebuild,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate catalog statistics",
	RunE:  runCatalogStats,
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every catalog entry resolves to a valid manifest",
	RunE:  runCatalogCheck,
}

func init() {
	catalogCmd.AddCommand(catalogRebuildCmd)
	catalogCmd.AddCommand(catalogStatsCmd)
	catalogCmd.AddCommand(catalogCheckCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogRebuild(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	catalog, err := catalogService.Rebuild(cmd.Context())
	if err != nil {
		return err
	}
	if err := indexService.Regenerate(cmd.Context()); err != nil {
		return err
	}

	cmd.Printf("Rebuilt catalog: %d books, %d videos\n", len(catalog.Books), len(catalog.Videos))
	return nil
}

func runCatalogStats(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	stats, err := catalogService.Stats(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Println("Library statistics:")
	cmd.Printf("  Books:      %d\n", stats.TotalBooks)
	cmd.Printf("  Videos:     %d\n", stats.TotalVideos)
	cmd.Printf("  Items:      %d\n", stats.TotalItems)
	cmd.Printf("  Authors:    %d\n", stats.UniqueAuthors)
	cmd.Printf("  Channels:   %d\n", stats.UniqueChannels)
	cmd.Printf("  Categories: %d\n", stats.UniqueCategories)
	cmd.Printf("  Tags:       %d\n", stats.UniqueTags)
	return nil
}

func runCatalogCheck(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	bad, err := catalogService.Check(cmd.Context())
	if errors.Is(err, domain.ErrCatalogInconsistency) {
		cmd.Println("Catalog is inconsistent; these entries have no valid manifest:")
		for _, path := range bad {
			cmd.Printf("  %s\n", path)
		}
		cmd.Println("Run 'librarian catalog rebuild' to repair.")
		return err
	}
	if err != nil {
		return err
	}

	cmd.Println("Catalog is consistent.")
	return nil
}
