package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the document index",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	status := retrievalService.Status()

	if statusJSON {
		out := map[string]any{
			"ready":        status.Ready,
			"unit_count":   status.UnitCount,
			"source_count": status.SourceCount(),
			"sources":      status.Sources,
		}
		if !status.LastBuildTime.IsZero() {
			out["last_build_time"] = status.LastBuildTime.UTC().Format(time.RFC3339)
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if !status.Ready {
		cmd.Println("Index: not built")
		cmd.Println("Run 'ansa index' to build it.")
		return nil
	}

	cmd.Println("Index: ready")
	cmd.Printf("  Units:   %d\n", status.UnitCount)
	cmd.Printf("  Sources: %d\n", status.SourceCount())
	if !status.LastBuildTime.IsZero() {
		cmd.Printf("  Built:   %s\n", status.LastBuildTime.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
