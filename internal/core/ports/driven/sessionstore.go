package driven

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// SessionStore persists chat sessions, messages, feedback, and index
// build history. Optional: without one, conversations are not recorded.
type SessionStore interface {
	// CreateSession stores a new session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// AppendMessage stores a message at the end of its session.
	AppendMessage(ctx context.Context, message *domain.Message) error

	// ListMessages returns a session's messages in insertion order.
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// ClearMessages removes all messages and feedback of a session.
	ClearMessages(ctx context.Context, sessionID string) error

	// SetFeedback stores a rating for a message, replacing any earlier
	// rating of the same message.
	SetFeedback(ctx context.Context, feedback *domain.Feedback) error

	// GetFeedback retrieves the rating for a message.
	// Returns domain.ErrNotFound if the message has no rating.
	GetFeedback(ctx context.Context, messageID string) (*domain.Feedback, error)

	// RecordBuild appends one index build record.
	RecordBuild(ctx context.Context, build *domain.BuildRecord) error

	// ListBuilds returns the most recent build records, newest first,
	// at most limit entries.
	ListBuilds(ctx context.Context, limit int) ([]domain.BuildRecord, error)

	// Close releases resources.
	Close() error
}
