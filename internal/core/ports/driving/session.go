package driving

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// SessionService manages recorded conversations with the assistant.
type SessionService interface {
	// Start creates a new session.
	Start(ctx context.Context) (*domain.Session, error)

	// Ask records the question, answers it over the corpus, records the
	// answer, and returns the assistant message.
	Ask(ctx context.Context, sessionID, question string) (*domain.Message, error)

	// History returns a session's messages in order.
	History(ctx context.Context, sessionID string) ([]domain.Message, error)

	// Clear removes a session's messages and feedback.
	Clear(ctx context.Context, sessionID string) error

	// Rate stores a thumbs up/down rating for an assistant message.
	Rate(ctx context.Context, messageID string, rating domain.FeedbackRating) error
}
