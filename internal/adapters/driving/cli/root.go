// Package cli provides the command line interface for ansa.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ansa-cli/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services, set by SetServices before Execute.
var (
	retrievalService driving.RetrievalService
	sessionService   driving.SessionService
	settingsService  driving.SettingsService
	doctorService    *services.Doctor
	watcherService   *services.Watcher
	logger           = zap.NewNop()
)

// Services bundles everything the commands need.
type Services struct {
	// Retrieval answers questions over the corpus.
	Retrieval driving.RetrievalService

	// Session records conversations and feedback.
	Session driving.SessionService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Doctor runs environment diagnostics.
	Doctor *services.Doctor

	// Watcher rebuilds the index on corpus changes. Optional.
	Watcher *services.Watcher

	// Logger records command diagnostics.
	Logger *zap.Logger
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	retrievalService = s.Retrieval
	sessionService = s.Session
	settingsService = s.Settings
	doctorService = s.Doctor
	watcherService = s.Watcher
	if s.Logger != nil {
		logger = s.Logger
	}
}

var rootCmd = &cobra.Command{
	Use:   "ansa",
	Short: "Ask questions about your local documents",
	Long: `ansa indexes a directory of documents, images, audio and video and
answers questions about them using retrieval-augmented generation.

Point it at a corpus directory, build the index once, then ask away:

  ansa index
  ansa ask "how do I request vpn access"
  ansa chat`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given context. Commands see
// it via cmd.Context() and stop when it is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ensureReady builds the index on first use so commands work without an
// explicit 'ansa index' run.
func ensureReady(ctx context.Context) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}
	if retrievalService.Status().Ready {
		return nil
	}
	if err := retrievalService.Initialize(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	return nil
}

// explainDomainError turns sentinel errors into actionable messages.
func explainDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return fmt.Errorf("%w\nRun 'ansa doctor' to diagnose the embedding provider", err)
	case errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Errorf("%w\nConfigure an answer model with 'ansa settings set llm.provider <provider>'", err)
	case errors.Is(err, domain.ErrNoResults):
		return errors.New("no relevant documents found")
	default:
		return err
	}
}
