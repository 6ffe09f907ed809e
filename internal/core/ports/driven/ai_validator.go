package driven

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// AIConfigValidator validates AI provider configuration by probing the
// configured endpoints. Used by diagnostics before committing to a build.
type AIConfigValidator interface {
	// ValidateEmbedding checks that the embedding settings point at a
	// reachable service producing vectors of the configured dimension.
	ValidateEmbedding(ctx context.Context, settings domain.EmbeddingSettings) error

	// ValidateLLM checks that the LLM settings point at a reachable
	// service.
	ValidateLLM(ctx context.Context, settings domain.LLMSettings) error
}
