package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the document corpus"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of context passages to retrieve (default from settings)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Question string `json:"question" jsonschema:"the question to find relevant passages for"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"maximum number of passages to return (default from settings)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Units []UnitOutput `json:"units"`
	Count int          `json:"count"`
}

// UnitOutput represents a single retrieved content unit.
type UnitOutput struct {
	Text      string `json:"text"`
	Source    string `json:"source"`
	Kind      string `json:"kind"`
	TimeRange string `json:"time_range,omitempty"`
}

// StatusInput is the input schema for the status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the status tool.
type StatusOutput struct {
	Ready         bool     `json:"ready"`
	UnitCount     int      `json:"unit_count"`
	SourceCount   int      `json:"source_count"`
	Sources       []string `json:"sources"`
	LastBuildTime string   `json:"last_build_time,omitempty"`
}

// RebuildInput is the input schema for the rebuild tool.
type RebuildInput struct{}

// RebuildOutput is the output schema for the rebuild tool.
type RebuildOutput struct {
	UnitCount   int `json:"unit_count"`
	SourceCount int `json:"source_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed document corpus",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the most relevant passages for a question without generating an answer",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report the state of the document index",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rebuild",
		Description: "Rebuild the document index from the corpus directory",
	}, s.handleRebuild)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Retrieval.Ask(ctx, input.Question, input.TopK)
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			return nil, AskOutput{Answer: "No relevant documents found.", Sources: []string{}}, nil
		}
		return nil, AskOutput{}, err
	}

	sources := answer.Sources
	if sources == nil {
		sources = []string{}
	}
	return nil, AskOutput{Answer: answer.Text, Sources: sources}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	units, err := s.ports.Retrieval.Retrieve(ctx, input.Question, input.TopK)
	if err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			return nil, RetrieveOutput{Units: []UnitOutput{}}, nil
		}
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Units: make([]UnitOutput, len(units)),
		Count: len(units),
	}
	for i := range units {
		output.Units[i] = UnitOutput{
			Text:      units[i].Text,
			Source:    units[i].Source,
			Kind:      units[i].Kind.String(),
			TimeRange: units[i].TimeRange,
		}
	}

	return nil, output, nil
}

// handleStatus handles the status tool invocation.
func (s *Server) handleStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return nil, statusOutput(s.ports.Retrieval.Status()), nil
}

// handleRebuild handles the rebuild tool invocation.
func (s *Server) handleRebuild(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RebuildInput,
) (*mcp.CallToolResult, RebuildOutput, error) {
	if err := s.ports.Retrieval.Rebuild(ctx); err != nil {
		return nil, RebuildOutput{}, err
	}

	status := s.ports.Retrieval.Status()
	return nil, RebuildOutput{
		UnitCount:   status.UnitCount,
		SourceCount: status.SourceCount(),
	}, nil
}

// statusOutput converts a corpus status snapshot to the tool output schema.
func statusOutput(status domain.CorpusStatus) StatusOutput {
	sources := status.Sources
	if sources == nil {
		sources = []string{}
	}

	out := StatusOutput{
		Ready:       status.Ready,
		UnitCount:   status.UnitCount,
		SourceCount: status.SourceCount(),
		Sources:     sources,
	}
	if !status.LastBuildTime.IsZero() {
		out.LastBuildTime = status.LastBuildTime.UTC().Format(time.RFC3339)
	}
	return out
}
