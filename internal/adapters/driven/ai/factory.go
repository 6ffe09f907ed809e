// Package ai provides factory functions for creating AI service adapters
// from application settings.
package ai

import (
	"context"
	"fmt"
	"time"

	localembed "github.com/custodia-labs/ansa-cli/internal/adapters/driven/embedding/local"
	ollamaembed "github.com/custodia-labs/ansa-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/ansa-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/ansa-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/ansa-cli/internal/adapters/driven/llm/openai"
	openaivision "github.com/custodia-labs/ansa-cli/internal/adapters/driven/vision/openai"
	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the appropriate embedding service based
// on settings. Returns nil if the provider is not configured.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderLocal:
		return localembed.NewEmbeddingService(settings.Dimensions), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured; answer generation is
// optional and retrieval works without it.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateCaptioner creates an image captioner from LLM settings. The same
// multimodal model serves answers and captions. Always returns a
// captioner; when the settings carry no vision support it reports
// unavailable and image units degrade to filename-only text.
func CreateCaptioner(settings domain.LLMSettings, cache driven.MediaCache) driven.Captioner {
	cfg := openaivision.Config{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Cache:   cache,
	}
	if settings.SupportsVision() {
		cfg.APIKey = settings.APIKey
	}
	return openaivision.New(cfg)
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity. Returns the service if successful, or an error
// with guidance.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'ansa doctor' to diagnose",
			domain.ErrEmbeddingUnavailable, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: embedding provider not configured. Run 'ansa settings' to fix",
			domain.ErrEmbeddingUnavailable)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'ansa doctor' to diagnose",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity. Unlike embeddings, a missing LLM is not an error: the
// system degrades to retrieval-only.
func CreateAndValidateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}
