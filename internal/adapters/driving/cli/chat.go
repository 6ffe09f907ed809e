package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Launch the interactive chat interface for asking questions about
your documents. The conversation is recorded and answers can be rated.

While the chat is open the corpus directory is watched and the index
is rebuilt when documents change.

Controls:
  Enter   - Ask the typed question
  Ctrl+Y  - Mark the last answer helpful
  Ctrl+N  - Mark the last answer unhelpful
  Ctrl+R  - Rebuild the index
  Ctrl+L  - Clear the conversation
  Esc     - Quit`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("chat requires an interactive terminal; use 'ansa ask' instead")
	}

	// Panic recovery to get stack traces out of the alternate screen
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := ensureReady(ctx); err != nil {
		return explainDomainError(err)
	}

	if watcherService != nil {
		go func() {
			if err := watcherService.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				logger.Warn("corpus watcher stopped", zap.Error(err))
			}
		}()
	}

	ports := tui.NewPorts(sessionService, retrievalService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create chat interface: %w", err)
	}
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}

	return nil
}
