package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the indexed source documents",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	status := retrievalService.Status()
	if !status.Ready {
		cmd.Println("Index not built. Run 'ansa index' first.")
		return nil
	}
	if len(status.Sources) == 0 {
		cmd.Println("No sources indexed.")
		return nil
	}

	for _, source := range status.Sources {
		cmd.Printf("  %s\n", source)
	}
	cmd.Printf("\n%d sources.\n", status.SourceCount())
	return nil
}
