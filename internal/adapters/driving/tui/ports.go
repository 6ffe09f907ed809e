// Package tui provides the interactive chat interface for ansa.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the chat TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session manages the recorded conversation and feedback.
	Session driving.SessionService

	// Retrieval answers questions over the corpus and reports its status.
	Retrieval driving.RetrievalService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SessionService, retrieval driving.RetrievalService) *Ports {
	return &Ports{
		Session:   session,
		Retrieval: retrieval,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
