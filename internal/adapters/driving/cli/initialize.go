package cli

import (
	"github.com/spf13/cobra"
)

var initSave bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new library archive",
	Long: `Creates the archive skeleton: books/ and videos/ trees, the index
directories with placeholder documents, and an empty catalog.

With a path argument the archive is created there; otherwise the
configured or flagged library root is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initSave, "save", false, "save the path as the configured library_root")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		libraryRoot = args[0]
		flagRoot = args[0]
		if err := wireServices(); err != nil {
			return err
		}
	}
	if err := requireLibrary(); err != nil {
		return err
	}

	if err := libraryService.Init(cmd.Context()); err != nil {
		return err
	}

	if initSave {
		if err := configStore.Set("library_root", libraryRoot); err != nil {
			return err
		}
	}

	cmd.Printf("Initialised library at %s\n", libraryRoot)
	return nil
}
