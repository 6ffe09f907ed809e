package driving

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// RetrievalService is the primary port: question answering over the corpus.
type RetrievalService interface {
	// Initialize loads the corpus and builds the vector index. On failure
	// the service stays not-ready and remains usable for a retry.
	Initialize(ctx context.Context) error

	// Rebuild discards the current index and runs Initialize again.
	// Concurrent rebuild requests are serialized, never interleaved.
	Rebuild(ctx context.Context) error

	// Retrieve returns the topK most relevant content units for the
	// question, most relevant first. topK <= 0 selects the configured
	// default. Returns domain.ErrNotReady before the first successful
	// build and domain.ErrNoResults when nothing matches.
	Retrieve(ctx context.Context, question string, topK int) ([]domain.ContentUnit, error)

	// Ask retrieves context for the question and generates an answer.
	// Shares Retrieve's error contract; additionally returns
	// domain.ErrLLMUnavailable when no answer model is configured.
	Ask(ctx context.Context, question string, topK int) (*domain.Answer, error)

	// Status reports the current engine state. Pure read.
	Status() domain.CorpusStatus
}
