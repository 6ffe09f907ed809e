package ai

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.AIConfigValidator = (*ConfigValidator)(nil)

// ConfigValidator validates AI provider configurations by probing the
// configured endpoints.
type ConfigValidator struct{}

// NewConfigValidator creates a new AI config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateEmbedding checks that the embedding settings point at a
// reachable service producing vectors of the configured dimension.
func (v *ConfigValidator) ValidateEmbedding(ctx context.Context, settings domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return fmt.Errorf("embedding provider not configured")
	}
	defer svc.Close()

	if err := svc.Ping(ctx); err != nil {
		return err
	}
	if svc.Dimensions() != settings.Dimensions {
		return fmt.Errorf("model %s produces %d-dimensional vectors, settings expect %d",
			settings.Model, svc.Dimensions(), settings.Dimensions)
	}
	return nil
}

// ValidateLLM checks that the LLM settings point at a reachable service.
func (v *ConfigValidator) ValidateLLM(ctx context.Context, settings domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return fmt.Errorf("LLM provider not configured")
	}
	defer svc.Close()

	return svc.Ping(ctx)
}
