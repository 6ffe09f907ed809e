package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for ansa resources.
const uriScheme = "ansa://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the corpus status.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Status of the indexed document corpus",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)

	// Static resource for the source list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Names of all indexed source documents",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	// Template for passages from a single source document.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{source}",
		Name:        "source-passages",
		Description: "Indexed passages extracted from a specific source document",
		MIMEType:    "text/plain",
	}, s.handleSourcePassagesResource)
}

// handleCorpusResource returns the corpus status snapshot.
func (s *Server) handleCorpusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(statusOutput(s.ports.Retrieval.Status()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSourcesResource returns the list of loaded source documents.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	sources := s.ports.Retrieval.Status().Sources
	if sources == nil {
		sources = []string{}
	}

	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sources: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSourcePassagesResource returns indexed passages for one source document.
// The retrieval port has no per-source listing, so passages are gathered by
// retrieving with the source name and filtering the results.
func (s *Server) handleSourcePassagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	source := extractSource(req.Params.URI)
	if source == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status := s.ports.Retrieval.Status()
	known := false
	for _, name := range status.Sources {
		if name == source {
			known = true
			break
		}
	}
	if !known {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	units, err := s.ports.Retrieval.Retrieve(ctx, source, status.UnitCount)
	if err != nil {
		return nil, fmt.Errorf("retrieving passages: %w", err)
	}

	var b strings.Builder
	for _, unit := range units {
		if unit.Source != source {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n---\n\n")
		}
		if unit.TimeRange != "" {
			fmt.Fprintf(&b, "[%s] ", unit.TimeRange)
		}
		b.WriteString(unit.Text)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		}},
	}, nil
}

// extractSource extracts the source name from a URI like ansa://sources/{source}.
func extractSource(uri string) string {
	const prefix = uriScheme + "sources/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
