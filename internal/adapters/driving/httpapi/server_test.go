package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// fakeRetrieval implements driving.RetrievalService for handler tests.
type fakeRetrieval struct {
	ready    bool
	units    []domain.ContentUnit
	answer   *domain.Answer
	err      error
	rebuilds int
}

func (f *fakeRetrieval) Initialize(context.Context) error { return f.err }

func (f *fakeRetrieval) Rebuild(context.Context) error {
	f.rebuilds++
	return f.err
}

func (f *fakeRetrieval) Retrieve(_ context.Context, _ string, _ int) ([]domain.ContentUnit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.units, nil
}

func (f *fakeRetrieval) Ask(_ context.Context, _ string, _ int) (*domain.Answer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeRetrieval) Status() domain.CorpusStatus {
	return domain.CorpusStatus{
		Ready:         f.ready,
		UnitCount:     len(f.units),
		Sources:       []string{"doc.md"},
		LastBuildTime: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

// fakeSession implements the feedback part of driving.SessionService.
type fakeSession struct {
	rated   map[string]domain.FeedbackRating
	rateErr error
}

func (f *fakeSession) Start(context.Context) (*domain.Session, error) { return nil, nil }

func (f *fakeSession) Ask(context.Context, string, string) (*domain.Message, error) {
	return nil, nil
}

func (f *fakeSession) History(context.Context, string) ([]domain.Message, error) { return nil, nil }

func (f *fakeSession) Clear(context.Context, string) error { return nil }

func (f *fakeSession) Rate(_ context.Context, messageID string, rating domain.FeedbackRating) error {
	if f.rateErr != nil {
		return f.rateErr
	}
	if f.rated == nil {
		f.rated = make(map[string]domain.FeedbackRating)
	}
	f.rated[messageID] = rating
	return nil
}

func newTestServer(t *testing.T, retrieval *fakeRetrieval, session *fakeSession) *Server {
	t.Helper()
	cfg := Config{Retrieval: retrieval}
	if session != nil {
		cfg.Session = session
	}
	server, err := NewServer(cfg)
	require.NoError(t, err)
	return server
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNewServer_RequiresRetrieval(t *testing.T) {
	_, err := NewServer(Config{})
	assert.Error(t, err)
}

func TestServer_Healthz(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{}, nil)

	rec := doJSON(t, server, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestServer_Ask(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{
		ready:  true,
		answer: &domain.Answer{Text: "In the docs directory.", Sources: []string{"handbook.pdf"}},
	}, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/ask", askRequest{Question: "where?"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp askResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "In the docs directory.", resp.Answer)
	assert.Equal(t, []string{"handbook.pdf"}, resp.Sources)
}

func TestServer_Ask_EmptyQuestion(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{}, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/ask", askRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Ask_NotReady(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{err: domain.ErrNotReady}, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/ask", askRequest{Question: "q"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Ask_NoResults(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{err: domain.ErrNoResults}, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/ask", askRequest{Question: "q"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Retrieve(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{
		ready: true,
		units: []domain.ContentUnit{
			{Text: "chunk one", Source: "doc.md", Kind: domain.UnitKindText},
			{Text: "scene", Source: "demo.mp4", Kind: domain.UnitKindVideo, TimeRange: "0.0s-30.0s"},
		},
	}, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/retrieve", askRequest{Question: "q", TopK: 2})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []unitResponse `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "doc.md", resp.Results[0].Source)
	assert.Equal(t, "0.0s-30.0s", resp.Results[1].TimeRange)
}

func TestServer_Rebuild(t *testing.T) {
	retrieval := &fakeRetrieval{ready: true}
	server := newTestServer(t, retrieval, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/rebuild", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, retrieval.rebuilds)
}

func TestServer_Status(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{
		ready: true,
		units: []domain.ContentUnit{{Text: "u", Source: "doc.md", Kind: domain.UnitKindText}},
	}, nil)

	rec := doJSON(t, server, http.MethodGet, "/api/v1/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Ready)
	assert.Equal(t, 1, resp.UnitCount)
	assert.Equal(t, 1, resp.SourceCount)
	assert.NotEmpty(t, resp.LastBuildTime)
}

func TestServer_Feedback(t *testing.T) {
	session := &fakeSession{}
	server := newTestServer(t, &fakeRetrieval{}, session)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/feedback", feedbackRequest{
		MessageID: "msg-1",
		Rating:    "up",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FeedbackUp, session.rated["msg-1"])
}

func TestServer_Feedback_InvalidRating(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{}, &fakeSession{})

	rec := doJSON(t, server, http.MethodPost, "/api/v1/feedback", feedbackRequest{
		MessageID: "msg-1",
		Rating:    "meh",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Feedback_WithoutSessions(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{}, nil)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/feedback", feedbackRequest{
		MessageID: "msg-1",
		Rating:    "up",
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Feedback_UnknownMessage(t *testing.T) {
	server := newTestServer(t, &fakeRetrieval{}, &fakeSession{rateErr: domain.ErrNotFound})

	rec := doJSON(t, server, http.MethodPost, "/api/v1/feedback", feedbackRequest{
		MessageID: "missing",
		Rating:    "up",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
