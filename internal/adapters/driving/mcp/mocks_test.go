package mcp

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	answer     *domain.Answer
	units      []domain.ContentUnit
	status     domain.CorpusStatus
	err        error
	rebuildErr error
	rebuilt    bool
}

func (m *mockRetrievalService) Initialize(_ context.Context) error {
	return m.err
}

func (m *mockRetrievalService) Rebuild(_ context.Context) error {
	if m.rebuildErr != nil {
		return m.rebuildErr
	}
	m.rebuilt = true
	return nil
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.ContentUnit, error) {
	return m.units, m.err
}

func (m *mockRetrievalService) Ask(
	_ context.Context,
	_ string,
	_ int,
) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockRetrievalService) Status() domain.CorpusStatus {
	return m.status
}

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	session  *domain.Session
	message  *domain.Message
	messages []domain.Message
	err      error
}

func (m *mockSessionService) Start(_ context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSessionService) Ask(_ context.Context, _, _ string) (*domain.Message, error) {
	return m.message, m.err
}

func (m *mockSessionService) History(_ context.Context, _ string) ([]domain.Message, error) {
	return m.messages, m.err
}

func (m *mockSessionService) Clear(_ context.Context, _ string) error {
	return m.err
}

func (m *mockSessionService) Rate(_ context.Context, _ string, _ domain.FeedbackRating) error {
	return m.err
}
