package services

import (
	"fmt"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage. API tokens are deliberately absent:
// they come from the environment and are never persisted.
const (
	keyCorpusDir      = "corpus.dir"
	keyChunkSize      = "corpus.chunk_size"
	keyChunkOverlap   = "corpus.chunk_overlap"
	keyTopK           = "corpus.top_k"
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedDims      = "embedding.dimensions"
	keyLLMProvider    = "llm.provider"
	keyLLMModel       = "llm.model"
	keyLLMBaseURL     = "llm.base_url"
	keyLLMMaxTokens   = "llm.max_tokens"
	keyLLMTemperature = "llm.temperature"
	keyVideoEnabled   = "media.enable_video"
	keyFrameInterval  = "media.frame_interval"
	keyMaxFrames      = "media.max_frames"
	keyTranscribeURL  = "media.transcribe_url"
	keyTranscribeModel = "media.transcribe_model"
)

// SettingsService manages application settings backed by a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults
// for unset keys.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Corpus: domain.CorpusSettings{
			Dir:          s.getString(keyCorpusDir, defaults.Corpus.Dir),
			ChunkSize:    s.getInt(keyChunkSize, defaults.Corpus.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Corpus.ChunkOverlap),
			TopK:         s.getInt(keyTopK, defaults.Corpus.TopK),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // No default - empty selects the provider default.
			Dimensions: s.getInt(keyEmbedDims, defaults.Embedding.Dimensions),
		},
		LLM: domain.LLMSettings{
			Provider:    s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.getString(keyLLMBaseURL, defaults.LLM.BaseURL),
			MaxTokens:   s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			Temperature: s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
		},
		Media: domain.MediaSettings{
			EnableVideo:     s.getBool(keyVideoEnabled, defaults.Media.EnableVideo),
			FrameInterval:   s.getFloat(keyFrameInterval, defaults.Media.FrameInterval),
			MaxFrames:       s.getInt(keyMaxFrames, defaults.Media.MaxFrames),
			TranscribeURL:   s.configStore.GetString(keyTranscribeURL),
			TranscribeModel: s.getString(keyTranscribeModel, defaults.Media.TranscribeModel),
		},
	}

	// Keep dimensions consistent with a known model even when the
	// stored value predates a model switch.
	if dims, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
		settings.Embedding.Dimensions = dims
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	entries := []struct {
		key   string
		value any
	}{
		{keyCorpusDir, settings.Corpus.Dir},
		{keyChunkSize, settings.Corpus.ChunkSize},
		{keyChunkOverlap, settings.Corpus.ChunkOverlap},
		{keyTopK, settings.Corpus.TopK},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMMaxTokens, settings.LLM.MaxTokens},
		{keyLLMTemperature, settings.LLM.Temperature},
		{keyVideoEnabled, settings.Media.EnableVideo},
		{keyFrameInterval, settings.Media.FrameInterval},
		{keyMaxFrames, settings.Media.MaxFrames},
		{keyTranscribeURL, settings.Media.TranscribeURL},
		{keyTranscribeModel, settings.Media.TranscribeModel},
	}

	for _, e := range entries {
		if err := s.configStore.Set(e.key, e.value); err != nil {
			return fmt.Errorf("save %s: %w", e.key, err)
		}
	}
	return nil
}

// SetEmbeddingProvider configures the embedding provider. An empty model
// selects the provider default.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model string) error {
	if !provider.IsValid() {
		return fmt.Errorf("provider %q: %w", provider, domain.ErrUnsupportedType)
	}
	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	if dims, ok := domain.EmbeddingDimensions()[model]; ok {
		settings.Embedding.Dimensions = dims
	}
	return s.Save(settings)
}

// SetLLMProvider configures the answer/vision provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model string) error {
	if !provider.IsValid() || provider == domain.AIProviderLocal {
		return fmt.Errorf("provider %q: %w", provider, domain.ErrUnsupportedType)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.LLM.Provider = provider
	if model != "" {
		settings.LLM.Model = model
	}
	return s.Save(settings)
}

// SetCorpusDir updates the corpus root directory.
func (s *SettingsService) SetCorpusDir(dir string) error {
	if dir == "" {
		return domain.ErrInvalidInput
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Corpus.Dir = dir
	return s.Save(settings)
}

// SetChunking updates chunk size and overlap. The overlap must stay
// strictly smaller than the size.
func (s *SettingsService) SetChunking(size, overlap int) error {
	if size <= 0 || overlap < 0 {
		return domain.ErrInvalidInput
	}
	if overlap >= size {
		return domain.ErrInvalidChunking
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Corpus.ChunkSize = size
	settings.Corpus.ChunkOverlap = overlap
	return s.Save(settings)
}

// Validate checks if current settings are consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func (s *SettingsService) getInt(key string, fallback int) int {
	if v := s.configStore.GetInt(key); v != 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getFloat(key string, fallback float64) float64 {
	if v := s.configStore.GetFloat(key); v != 0 {
		return v
	}
	return fallback
}

func (s *SettingsService) getBool(key string, fallback bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return fallback
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getProvider(key string, fallback domain.AIProvider) domain.AIProvider {
	v := s.configStore.GetString(key)
	if v == "" {
		return fallback
	}
	provider := domain.AIProvider(v)
	if !provider.IsValid() {
		return fallback
	}
	return provider
}
