package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or rebuild the document index",
	Long: `Loads every supported file from the corpus directory, extracts and
chunks its content, embeds the chunks and builds the vector index.

Run this after adding, changing or removing corpus files. 'ansa serve
--watch' rebuilds automatically instead.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	cmd.Println("Building index...")
	if err := retrievalService.Rebuild(cmd.Context()); err != nil {
		return explainDomainError(err)
	}

	status := retrievalService.Status()
	cmd.Printf("Indexed %d units from %d sources.\n", status.UnitCount, status.SourceCount())
	return nil
}
