package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/export"
)

var (
	askTopK     int
	askJSON     bool
	askRecord   bool
	askExportTo string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the document corpus",
	Long: `Retrieves the most relevant passages for the question and generates
an answer with the configured model, citing the source documents.

The index is built automatically on first use.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of context passages (0 = configured default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askRecord, "session", false, "record the exchange in a new session")
	askCmd.Flags().StringVar(&askExportTo, "export", "", "write the answer to a .pdf or .docx file")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	ctx := cmd.Context()
	if err := ensureReady(ctx); err != nil {
		return explainDomainError(err)
	}

	if askRecord {
		return runAskRecorded(cmd, question)
	}

	answer, err := retrievalService.Ask(ctx, question, askTopK)
	if err != nil {
		return explainDomainError(err)
	}

	if askExportTo != "" {
		if err := export.ToFile(askExportTo, question, answer); err != nil {
			return fmt.Errorf("exporting answer: %w", err)
		}
		cmd.Printf("Answer written to %s\n", askExportTo)
		return nil
	}

	if askJSON {
		return outputAskJSON(cmd, answer.Text, answer.Sources)
	}

	outputAskText(cmd, answer.Text, answer.Sources)
	return nil
}

// runAskRecorded answers through the session service so the exchange is
// persisted alongside chat conversations.
func runAskRecorded(cmd *cobra.Command, question string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := cmd.Context()
	session, err := sessionService.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	message, err := sessionService.Ask(ctx, session.ID, question)
	if err != nil {
		return explainDomainError(err)
	}

	if askExportTo != "" {
		answer := messageAnswer(message)
		if err := export.ToFile(askExportTo, question, answer); err != nil {
			return fmt.Errorf("exporting answer: %w", err)
		}
		cmd.Printf("Answer written to %s\n", askExportTo)
		cmd.Printf("Session: %s\n", session.ID)
		return nil
	}

	if askJSON {
		return outputAskJSON(cmd, message.Content, message.Sources)
	}

	outputAskText(cmd, message.Content, message.Sources)
	cmd.Printf("\nSession: %s\n", session.ID)
	return nil
}

// messageAnswer adapts a recorded assistant message for the exporters.
func messageAnswer(message *domain.Message) *domain.Answer {
	return &domain.Answer{Text: message.Content, Sources: message.Sources}
}

func outputAskJSON(cmd *cobra.Command, answer string, sources []string) error {
	if sources == nil {
		sources = []string{}
	}
	data, err := json.MarshalIndent(map[string]any{
		"answer":  answer,
		"sources": sources,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAskText(cmd *cobra.Command, answer string, sources []string) {
	cmd.Println(answer)
	if len(sources) > 0 {
		cmd.Println()
		cmd.Printf("Sources: %s\n", strings.Join(sources, ", "))
	}
}
