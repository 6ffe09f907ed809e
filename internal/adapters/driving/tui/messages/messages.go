// Package messages defines Bubbletea message types for the chat TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// SessionStarted carries the freshly created session back to the model.
type SessionStarted struct {
	Session *domain.Session
	Err     error
}

// AnswerReceived carries the assistant message back to the model.
type AnswerReceived struct {
	Message *domain.Message
	Err     error
}

// StatusLoaded carries a corpus status snapshot.
type StatusLoaded struct {
	Status domain.CorpusStatus
}

// RebuildFinished signals that a corpus re-index completed.
type RebuildFinished struct {
	Err error
}

// FeedbackRecorded signals that a rating was stored for a message.
type FeedbackRecorded struct {
	MessageID string
	Rating    domain.FeedbackRating
	Err       error
}

// ConversationCleared signals that the session's messages were removed.
type ConversationCleared struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
