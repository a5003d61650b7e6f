// Package cli provides the cobra command tree for the Librarian CLI.
// Commands talk to the core exclusively through the driving ports;
// the service graph is wired once per invocation in the root command's
// PersistentPreRunE.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/librarian-cli/internal/adapters/driven/config/file"
	storagefile "github.com/custodia-labs/librarian-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driven"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
	"github.com/custodia-labs/librarian-cli/internal/core/services"
	"github.com/custodia-labs/librarian-cli/internal/extractors/epub"
	"github.com/custodia-labs/librarian-cli/internal/extractors/markdown"
	"github.com/custodia-labs/librarian-cli/internal/extractors/pdf"
	"github.com/custodia-labs/librarian-cli/internal/extractors/plaintext"
	"github.com/custodia-labs/librarian-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagRoot    string
)

// Service graph, wired by wireServices. Commands that need an archive
// call requireLibrary first.
var (
	configStore    driven.ConfigStore
	library        services.Library
	libraryRoot    string
	manifestStore  driven.ManifestStore
	libraryService driving.LibraryService
	ingestService  driving.IngestService
	catalogService driving.CatalogService
	indexService   driving.IndexService
)

var rootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Personal document archive manager",
	Long: `Librarian organises books and video transcripts into a plain-file
archive: one directory per item with a YAML manifest, a derived
catalog and generated markdown indices for navigation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return wireServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "library root directory (overrides configured library_root)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// wireServices builds the service graph for the resolved library root.
// A missing root is not an error here; commands that need an archive
// check via requireLibrary so that config commands still work.
func wireServices() error {
	store, err := configfile.NewConfigStore("")
	if err != nil {
		return err
	}
	configStore = store

	libraryRoot = flagRoot
	if libraryRoot == "" {
		libraryRoot = configStore.GetString("library_root")
	}
	if libraryRoot == "" {
		return nil
	}

	library = services.NewLibrary(libraryRoot)
	manifests := storagefile.NewManifestStore()
	manifestStore = manifests
	catalogStore := storagefile.NewCatalogStore(library.Root())
	registry := services.NewExtractorRegistry(epub.New(), pdf.New(), markdown.New(), plaintext.New())

	libraryService = services.NewLibrarySvc(library, catalogStore)
	catalogService = services.NewCatalogSvc(library, manifests, catalogStore)
	indexService = services.NewIndexSvc(library, manifests, catalogStore)
	ingestService = services.NewIngestSvc(library, registry, manifests, catalogService, indexService,
		configStore.GetInt("min_section_chars"))
	return nil
}

// requireLibrary fails commands that need a resolved archive root.
func requireLibrary() error {
	if libraryRoot == "" {
		return &noLibraryError{}
	}
	return nil
}

type noLibraryError struct{}

func (*noLibraryError) Error() string {
	return "no library root configured: pass --root or run 'librarian config set library_root <dir>'"
}

// preferredFormat resolves the extraction preference: the --prefer
// flag when given, else the configured prefer_format.
func preferredFormat(flag string) domain.Format {
	if flag != "" {
		return domain.Format(flag)
	}
	return domain.Format(configStore.GetString("prefer_format"))
}
