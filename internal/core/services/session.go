package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService records conversations with the assistant: questions,
// generated answers with their sources, and per-answer feedback.
type SessionService struct {
	store     driven.SessionStore
	retrieval driving.RetrievalService
}

// NewSessionService creates a session service.
func NewSessionService(store driven.SessionStore, retrieval driving.RetrievalService) (*SessionService, error) {
	if store == nil {
		return nil, fmt.Errorf("session store: %w", domain.ErrInvalidInput)
	}
	if retrieval == nil {
		return nil, fmt.Errorf("retrieval service: %w", domain.ErrInvalidInput)
	}
	return &SessionService{store: store, retrieval: retrieval}, nil
}

// Start creates a new session.
func (s *SessionService) Start(ctx context.Context) (*domain.Session, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Ask records the question, answers it over the corpus, records the
// answer, and returns the assistant message. The typed not-ready and
// no-results conditions pass through unrecorded so callers can present
// them; only a successfully answered turn lands in history.
func (s *SessionService) Ask(ctx context.Context, sessionID, question string) (*domain.Message, error) {
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	answer, err := s.retrieval.Ask(ctx, question, 0)
	if err != nil {
		return nil, err
	}

	userMsg := &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.MessageRoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("record question: %w", err)
	}

	assistantMsg := &domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      domain.MessageRoleAssistant,
		Content:   answer.Text,
		Sources:   answer.Sources,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	return assistantMsg, nil
}

// History returns a session's messages in order.
func (s *SessionService) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	messages, err := s.store.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// Clear removes a session's messages and feedback.
func (s *SessionService) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.ClearMessages(ctx, sessionID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

// Rate stores a thumbs up/down rating for an assistant message.
func (s *SessionService) Rate(ctx context.Context, messageID string, rating domain.FeedbackRating) error {
	if !rating.IsValid() {
		return fmt.Errorf("rating %q: %w", rating, domain.ErrInvalidInput)
	}
	feedback := &domain.Feedback{
		MessageID: messageID,
		Rating:    rating,
		CreatedAt: time.Now(),
	}
	if err := s.store.SetFeedback(ctx, feedback); err != nil {
		return fmt.Errorf("set feedback: %w", err)
	}
	return nil
}
