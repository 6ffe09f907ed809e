package domain

import "time"

// Session is a single conversation with the assistant.
type Session struct {
	// ID is the unique identifier for the session.
	ID string

	// CreatedAt is when the session was started.
	CreatedAt time.Time
}

// MessageRole identifies who produced a chat message.
type MessageRole string

// Available message roles.
const (
	// MessageRoleUser is a question typed by the user.
	MessageRoleUser MessageRole = "user"

	// MessageRoleAssistant is a generated answer.
	MessageRoleAssistant MessageRole = "assistant"
)

// IsValid returns true if the role is recognised.
func (r MessageRole) IsValid() bool {
	switch r {
	case MessageRoleUser, MessageRoleAssistant:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r MessageRole) String() string {
	return string(r)
}

// Message is one chat turn within a session.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// SessionID links to the owning Session.
	SessionID string

	// Role is who produced the message.
	Role MessageRole

	// Content is the message text.
	Content string

	// Sources lists the source documents behind an assistant answer.
	// Empty for user messages.
	Sources []string

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time
}

// FeedbackRating is a thumbs up/down rating of an assistant answer.
type FeedbackRating string

// Available feedback ratings.
const (
	// FeedbackUp marks an answer as helpful.
	FeedbackUp FeedbackRating = "up"

	// FeedbackDown marks an answer as unhelpful.
	FeedbackDown FeedbackRating = "down"
)

// IsValid returns true if the rating is recognised.
func (r FeedbackRating) IsValid() bool {
	return r == FeedbackUp || r == FeedbackDown
}

// String returns the string representation.
func (r FeedbackRating) String() string {
	return string(r)
}

// Feedback records a user's rating of one assistant message.
// A later rating for the same message replaces the earlier one.
type Feedback struct {
	// MessageID links to the rated Message.
	MessageID string

	// Rating is the thumbs up/down value.
	Rating FeedbackRating

	// CreatedAt is when the rating was recorded.
	CreatedAt time.Time
}

// BuildRecord captures one index build for history and diagnostics.
type BuildRecord struct {
	// ID is the unique identifier for the build.
	ID string

	// StartedAt is when the build began.
	StartedAt time.Time

	// FinishedAt is when the build completed or failed.
	FinishedAt time.Time

	// UnitCount is the number of content units indexed.
	UnitCount int

	// SourceCount is the number of source documents loaded.
	SourceCount int

	// Success reports whether the build produced a ready index.
	Success bool

	// Error holds the failure message for unsuccessful builds.
	Error string
}
