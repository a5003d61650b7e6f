// Command librarian manages a personal document archive of books and
// video transcripts.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/librarian-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
