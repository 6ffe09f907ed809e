package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings, answer
// generation, or vision.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is any OpenAI-compatible cloud API, including the
	// Hugging Face router.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderLocal is the built-in deterministic embedder. It needs no
	// network and exists for offline use and tests; embeddings only.
	AIProviderLocal AIProvider = "local"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderLocal:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API token.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs without a cloud account.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderLocal
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI-compatible (cloud)"
	case AIProviderLocal:
		return "Built-in (offline, embeddings only)"
	default:
		return unknownDescription
	}
}

// CorpusSettings holds corpus location and retrieval tuning.
type CorpusSettings struct {
	// Dir is the corpus root directory, scanned recursively.
	// Created on first use if absent.
	Dir string

	// ChunkSize is the target chunk length in bytes.
	ChunkSize int

	// ChunkOverlap is the number of bytes shared between adjacent chunks.
	// Must be strictly smaller than ChunkSize.
	ChunkOverlap int

	// TopK is the default number of units retrieved per question.
	TopK int
}

// Validate checks corpus settings for consistency.
func (c CorpusSettings) Validate() error {
	if c.Dir == "" {
		return ErrInvalidInput
	}
	if c.ChunkSize <= 0 || c.ChunkOverlap < 0 {
		return ErrInvalidInput
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return ErrInvalidChunking
	}
	if c.TopK <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint. Empty selects the provider default.
	BaseURL string

	// APIKey is the API token (cloud providers). Supplied from the
	// environment, never persisted to the settings file.
	APIKey string

	// Dimensions is the embedding vector size produced by Model.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is usable.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Dimensions <= 0 {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds answer and vision model configuration.
// One multimodal model serves both answer generation and image captioning.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the chat model name.
	Model string

	// BaseURL is the API endpoint. Empty selects the provider default.
	BaseURL string

	// APIKey is the API token (cloud providers). Supplied from the
	// environment, never persisted to the settings file.
	APIKey string

	// MaxTokens caps the answer length.
	MaxTokens int

	// Temperature controls answer randomness.
	Temperature float64
}

// IsConfigured returns true if the LLM provider is usable.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() || l.Provider == AIProviderLocal {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// SupportsVision returns true if the configured model can describe images.
// Captioning goes through the OpenAI-compatible chat API with image parts.
func (l LLMSettings) SupportsVision() bool {
	return l.IsConfigured() && l.Provider == AIProviderOpenAI
}

// MediaSettings holds video ingestion configuration.
type MediaSettings struct {
	// EnableVideo toggles video file ingestion.
	EnableVideo bool

	// FrameInterval is the seconds between sampled video frames.
	FrameInterval float64

	// MaxFrames caps the number of frames sampled per video. When the
	// video is longer than FrameInterval*MaxFrames, the interval widens
	// so sampling still spans the whole video.
	MaxFrames int

	// TranscribeURL is the OpenAI-compatible transcription endpoint.
	// Empty disables transcription; video falls back to visual-only.
	TranscribeURL string

	// TranscribeModel is the speech recognition model name.
	TranscribeModel string
}

// Validate checks media settings for consistency.
func (m MediaSettings) Validate() error {
	if m.FrameInterval <= 0 || m.MaxFrames <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Corpus holds corpus location and retrieval tuning.
	Corpus CorpusSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds answer/vision model settings.
	LLM LLMSettings

	// Media holds video ingestion settings.
	Media MediaSettings
}

// Validate checks all settings for consistency.
func (s AppSettings) Validate() error {
	if err := s.Corpus.Validate(); err != nil {
		return err
	}
	if !s.Embedding.Provider.IsValid() {
		return ErrUnsupportedType
	}
	if !s.LLM.Provider.IsValid() {
		return ErrUnsupportedType
	}
	return s.Media.Validate()
}

// Default tuning values. These mirror the corpus scale the product is
// built for; all are overridable via the settings file.
const (
	// DefaultChunkSize is the target chunk length in bytes.
	DefaultChunkSize = 600

	// DefaultChunkOverlap is the overlap between adjacent chunks in bytes.
	DefaultChunkOverlap = 100

	// DefaultTopK is the number of units retrieved per question.
	DefaultTopK = 5

	// DefaultFrameInterval is the seconds between sampled video frames.
	DefaultFrameInterval = 5.0

	// DefaultMaxFrames caps the frames sampled per video.
	DefaultMaxFrames = 50

	// DefaultAnswerMaxTokens caps generated answer length.
	DefaultAnswerMaxTokens = 1000

	// DefaultAnswerTemperature is the answer sampling temperature.
	DefaultAnswerTemperature = 0.7
)

// DefaultRouterBaseURL is the default OpenAI-compatible endpoint for the
// openai provider: the Hugging Face inference router.
const DefaultRouterBaseURL = "https://router.huggingface.co/v1"

// DefaultAppSettings returns settings with sensible defaults.
// Embeddings default to local Ollama; answers default to the Hugging Face
// router, which needs a token in the environment before they work.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Corpus: CorpusSettings{
			Dir:          "docs",
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
			TopK:         DefaultTopK,
		},
		Embedding: EmbeddingSettings{
			Provider:   AIProviderOllama,
			Model:      "all-minilm",
			Dimensions: 384,
		},
		LLM: LLMSettings{
			Provider:    AIProviderOpenAI,
			Model:       "Qwen/Qwen2.5-VL-7B-Instruct:hyperbolic",
			BaseURL:     DefaultRouterBaseURL,
			MaxTokens:   DefaultAnswerMaxTokens,
			Temperature: DefaultAnswerTemperature,
		},
		Media: MediaSettings{
			EnableVideo:     true,
			FrameInterval:   DefaultFrameInterval,
			MaxFrames:       DefaultMaxFrames,
			TranscribeModel: "base",
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderLocal,
	}
}

// AllLLMProviders returns providers that support answer generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "sentence-transformers/all-MiniLM-L6-v2",
		AIProviderLocal:  "feature-hash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// Router/OpenAI models
		"sentence-transformers/all-MiniLM-L6-v2": 384,
		"text-embedding-3-small":                 1536,
		"text-embedding-3-large":                 3072,
		// Built-in
		"feature-hash": 384,
	}
}
