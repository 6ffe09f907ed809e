package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ansa-cli/internal/core/services"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment",
	Long: `Checks the configuration, corpus directory, API credentials, AI
endpoint reachability and local media tooling, and reports what works
and what is degraded.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if doctorService == nil {
		return errors.New("doctor not configured")
	}

	results, healthy := doctorService.Run(cmd.Context())

	for _, result := range results {
		cmd.Printf("%s %-22s %s\n", stateMark(result.State), result.Name, result.Detail)
	}

	cmd.Println()
	if !healthy {
		return errors.New("core checks failed; ansa cannot answer questions until they pass")
	}
	cmd.Println("All core checks passed.")
	return nil
}

func stateMark(state services.CheckState) string {
	switch state {
	case services.CheckPass:
		return "[ok]  "
	case services.CheckWarn:
		return "[warn]"
	case services.CheckFail:
		return "[fail]"
	default:
		return "[????]"
	}
}
