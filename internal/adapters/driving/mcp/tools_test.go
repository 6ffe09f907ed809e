package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			answer: &domain.Answer{
				Text:    "VPN access is requested through the IT portal.",
				Sources: []string{"it_guide.md", "onboarding.pdf"},
			},
		}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "how do I get vpn access"})

		require.NoError(t, err)
		assert.Equal(t, "VPN access is requested through the IT portal.", output.Answer)
		assert.Equal(t, []string{"it_guide.md", "onboarding.pdf"}, output.Sources)
	})

	t.Run("no results yields explanatory answer", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{err: domain.ErrNoResults}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "unrelated"})

		require.NoError(t, err)
		assert.Equal(t, "No relevant documents found.", output.Answer)
		assert.Empty(t, output.Sources)
	})

	t.Run("returns error when not ready", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{err: domain.ErrNotReady}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		assert.ErrorIs(t, err, domain.ErrNotReady)
	})
}

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns content units", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			units: []domain.ContentUnit{
				{Text: "Request access via portal.", Source: "it_guide.md", Kind: domain.UnitKindText},
				{Text: "Frame showing the portal.", Source: "tour.mp4", Kind: domain.UnitKindVideo, TimeRange: "0.0s-30.0s"},
			},
		}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, output, err := server.handleRetrieve(ctx, nil, RetrieveInput{Question: "vpn", TopK: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		require.Len(t, output.Units, 2)
		assert.Equal(t, "it_guide.md", output.Units[0].Source)
		assert.Equal(t, "text", output.Units[0].Kind)
		assert.Empty(t, output.Units[0].TimeRange)
		assert.Equal(t, "0.0s-30.0s", output.Units[1].TimeRange)
	})

	t.Run("no results yields empty list", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{err: domain.ErrNoResults}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, output, err := server.handleRetrieve(ctx, nil, RetrieveInput{Question: "nothing"})

		require.NoError(t, err)
		assert.Empty(t, output.Units)
		assert.Zero(t, output.Count)
	})
}

func TestServer_handleStatus(t *testing.T) {
	built := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	mockRetrieval := &mockRetrievalService{
		status: domain.CorpusStatus{
			Ready:         true,
			UnitCount:     12,
			Sources:       []string{"a.md", "b.pdf"},
			LastBuildTime: built,
		},
	}

	server, err := NewServer(&Ports{Retrieval: mockRetrieval})
	require.NoError(t, err)

	_, output, err := server.handleStatus(context.Background(), nil, StatusInput{})

	require.NoError(t, err)
	assert.True(t, output.Ready)
	assert.Equal(t, 12, output.UnitCount)
	assert.Equal(t, 2, output.SourceCount)
	assert.Equal(t, "2025-03-01T10:30:00Z", output.LastBuildTime)
}

func TestServer_handleStatus_NeverBuilt(t *testing.T) {
	server, err := NewServer(&Ports{Retrieval: &mockRetrievalService{}})
	require.NoError(t, err)

	_, output, err := server.handleStatus(context.Background(), nil, StatusInput{})

	require.NoError(t, err)
	assert.False(t, output.Ready)
	assert.Empty(t, output.LastBuildTime)
	assert.NotNil(t, output.Sources)
}

func TestServer_handleRebuild(t *testing.T) {
	t.Run("rebuilds and reports counts", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{
			status: domain.CorpusStatus{Ready: true, UnitCount: 5, Sources: []string{"a.md"}},
		}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, output, err := server.handleRebuild(context.Background(), nil, RebuildInput{})

		require.NoError(t, err)
		assert.True(t, mockRetrieval.rebuilt)
		assert.Equal(t, 5, output.UnitCount)
		assert.Equal(t, 1, output.SourceCount)
	})

	t.Run("propagates rebuild failure", func(t *testing.T) {
		mockRetrieval := &mockRetrievalService{rebuildErr: domain.ErrEmbeddingUnavailable}

		server, err := NewServer(&Ports{Retrieval: mockRetrieval})
		require.NoError(t, err)

		_, _, err = server.handleRebuild(context.Background(), nil, RebuildInput{})

		assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	})
}
