package driving

import "github.com/custodia-labs/ansa-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model string) error

	// SetLLMProvider configures the answer/vision provider.
	SetLLMProvider(provider domain.AIProvider, model string) error

	// SetCorpusDir updates the corpus root directory.
	SetCorpusDir(dir string) error

	// SetChunking updates chunk size and overlap.
	SetChunking(size, overlap int) error

	// Validate checks if current settings are consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
