// Package memory provides in-memory implementations of driven port
// interfaces, used for tests and for running without persistence.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Contents are lost when the process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	messages map[string][]domain.Message
	feedback map[string]domain.Feedback
	builds   []domain.BuildRecord
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		messages: make(map[string][]domain.Message),
		feedback: make(map[string]domain.Feedback),
	}
}

// CreateSession stores a new session.
func (s *SessionStore) CreateSession(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	s.sessions[session.ID] = *session
	return nil
}

// GetSession retrieves a session by ID.
func (s *SessionStore) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SessionStore) ListSessions(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// AppendMessage stores a message at the end of its session.
func (s *SessionStore) AppendMessage(_ context.Context, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[message.SessionID]; !ok {
		return domain.ErrNotFound
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	s.messages[message.SessionID] = append(s.messages[message.SessionID], *message)
	return nil
}

// ListMessages returns a session's messages in insertion order.
func (s *SessionStore) ListMessages(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := s.messages[sessionID]
	result := make([]domain.Message, len(messages))
	copy(result, messages)
	return result, nil
}

// ClearMessages removes all messages and feedback of a session.
func (s *SessionStore) ClearMessages(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, message := range s.messages[sessionID] {
		delete(s.feedback, message.ID)
	}
	delete(s.messages, sessionID)
	return nil
}

// SetFeedback stores a rating for a message, replacing any earlier rating.
func (s *SessionStore) SetFeedback(_ context.Context, feedback *domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	s.feedback[feedback.MessageID] = *feedback
	return nil
}

// GetFeedback retrieves the rating for a message.
func (s *SessionStore) GetFeedback(_ context.Context, messageID string) (*domain.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	feedback, ok := s.feedback[messageID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &feedback, nil
}

// RecordBuild appends one index build record.
func (s *SessionStore) RecordBuild(_ context.Context, build *domain.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.builds = append(s.builds, *build)
	return nil
}

// ListBuilds returns the most recent build records, newest first.
func (s *SessionStore) ListBuilds(_ context.Context, limit int) ([]domain.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 20
	}
	result := make([]domain.BuildRecord, 0, limit)
	for i := len(s.builds) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.builds[i])
	}
	return result, nil
}

// Close releases resources.
func (s *SessionStore) Close() error {
	return nil
}
