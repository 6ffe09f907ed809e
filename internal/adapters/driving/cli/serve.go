package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/httpapi"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing the question answering endpoints:

  POST /api/v1/ask       answer a question
  POST /api/v1/retrieve  fetch relevant passages
  POST /api/v1/rebuild   rebuild the index
  POST /api/v1/feedback  rate an answer
  GET  /api/v1/status    index status
  GET  /healthz          liveness probe

With --watch the corpus directory is watched and the index rebuilt
automatically when files change.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index when corpus files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureReady(ctx); err != nil {
		return explainDomainError(err)
	}

	server, err := httpapi.NewServer(httpapi.Config{
		Addr:      serveAddr,
		Retrieval: retrievalService,
		Session:   sessionService,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if serveWatch {
		if watcherService == nil {
			return errors.New("watcher not configured")
		}
		go func() {
			if err := watcherService.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				logger.Warn("corpus watcher stopped", zap.Error(err))
			}
		}()
		cmd.Println("Watching corpus for changes.")
	}

	cmd.Printf("Listening on %s\n", serveAddr)
	return server.Run(ctx)
}
