package mcp

import (
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers questions over the corpus.
	Retrieval driving.RetrievalService

	// Session records feedback on answers. Optional.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Session is optional; the feedback tool degrades without it
	return nil
}
