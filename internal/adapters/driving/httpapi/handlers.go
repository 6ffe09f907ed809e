package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// handler implements the API endpoints.
type handler struct {
	retrieval driving.RetrievalService
	session   driving.SessionService
	log       *zap.Logger
}

// askRequest is the body of POST /api/v1/ask and /api/v1/retrieve.
type askRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

// askResponse is the body of a successful ask.
type askResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// unitResponse is one retrieved content unit.
type unitResponse struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Kind      string `json:"kind"`
	TimeRange string `json:"time_range,omitempty"`
}

// statusResponse is the body of GET /api/v1/status.
type statusResponse struct {
	Ready         bool     `json:"ready"`
	UnitCount     int      `json:"unit_count"`
	SourceCount   int      `json:"source_count"`
	Sources       []string `json:"sources"`
	LastBuildTime string   `json:"last_build_time,omitempty"`
}

// feedbackRequest is the body of POST /api/v1/feedback.
type feedbackRequest struct {
	MessageID string `json:"message_id"`
	Rating    string `json:"rating"`
}

// errorResponse is the body of any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		h.respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.retrieval.Ask(r.Context(), req.Question, req.TopK)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, askResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	})
}

func (h *handler) retrieve(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		h.respondError(w, http.StatusBadRequest, "question is required")
		return
	}

	units, err := h.retrieval.Retrieve(r.Context(), req.Question, req.TopK)
	if err != nil {
		h.respondDomainError(w, err)
		return
	}

	results := make([]unitResponse, len(units))
	for i, unit := range units {
		results[i] = unitResponse{
			Text:      unit.Text,
			Source:    unit.Source,
			Kind:      unit.Kind.String(),
			TimeRange: unit.TimeRange,
		}
	}
	h.respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *handler) rebuild(w http.ResponseWriter, r *http.Request) {
	if err := h.retrieval.Rebuild(r.Context()); err != nil {
		h.respondDomainError(w, err)
		return
	}

	status := h.retrieval.Status()
	h.respondJSON(w, http.StatusOK, map[string]any{
		"unit_count":   status.UnitCount,
		"source_count": status.SourceCount(),
	})
}

func (h *handler) status(w http.ResponseWriter, _ *http.Request) {
	status := h.retrieval.Status()

	resp := statusResponse{
		Ready:       status.Ready,
		UnitCount:   status.UnitCount,
		SourceCount: status.SourceCount(),
		Sources:     status.Sources,
	}
	if !status.LastBuildTime.IsZero() {
		resp.LastBuildTime = status.LastBuildTime.Format(time.RFC3339)
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *handler) feedback(w http.ResponseWriter, r *http.Request) {
	if h.session == nil {
		h.respondError(w, http.StatusServiceUnavailable, "session recording is not enabled")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MessageID == "" {
		h.respondError(w, http.StatusBadRequest, "message_id is required")
		return
	}

	rating := domain.FeedbackRating(req.Rating)
	if !rating.IsValid() {
		h.respondError(w, http.StatusBadRequest, `rating must be "up" or "down"`)
		return
	}

	if err := h.session.Rate(r.Context(), req.MessageID, rating); err != nil {
		h.respondDomainError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// respondDomainError maps domain errors to HTTP status codes.
func (h *handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoResults):
		h.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotReady),
		errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrEmbeddingUnavailable):
		h.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Error("request failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("encoding response", zap.Error(err))
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, errorResponse{Error: message})
}
