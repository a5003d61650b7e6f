package cli

import (
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the generated navigation indices",
}

var indexRegenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Regenerate every index document from the catalog",
	Long: `Rewrites the library overview, the per-dimension indices and the
per-item index documents. Safe to run at any time; only generated
files are touched.`,
	RunE: runIndexRegenerate,
}

func init() {
	indexCmd.AddCommand(indexRegenerateCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexRegenerate(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	if err := indexService.Regenerate(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Regenerated index documents.")
	return nil
}
