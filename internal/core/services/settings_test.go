package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// fakeConfigStore is an in-memory ConfigStore for tests.
type fakeConfigStore struct {
	data map[string]any
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{data: make(map[string]any)}
}

func (s *fakeConfigStore) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

func (s *fakeConfigStore) GetString(key string) string {
	if v, ok := s.data[key].(string); ok {
		return v
	}
	return ""
}

func (s *fakeConfigStore) GetInt(key string) int {
	switch v := s.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (s *fakeConfigStore) GetFloat(key string) float64 {
	switch v := s.data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (s *fakeConfigStore) GetBool(key string) bool {
	v, _ := s.data[key].(bool)
	return v
}

func (s *fakeConfigStore) Set(key string, value any) error {
	s.data[key] = value
	return nil
}

func (s *fakeConfigStore) Save() error  { return nil }
func (s *fakeConfigStore) Load() error  { return nil }
func (s *fakeConfigStore) Path() string { return "fake.toml" }

// TestSettingsService_GetDefaults tests defaults for an empty store.
func TestSettingsService_GetDefaults(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	settings, err := svc.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Corpus, settings.Corpus)
	assert.Equal(t, defaults.Embedding, settings.Embedding)
	assert.Equal(t, defaults.LLM, settings.LLM)
	assert.Equal(t, defaults.Media, settings.Media)
}

// TestSettingsService_SaveRoundTrip tests persistence of every section.
func TestSettingsService_SaveRoundTrip(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Corpus.Dir = "/srv/corpus"
	settings.Corpus.ChunkSize = 800
	settings.Corpus.ChunkOverlap = 150
	settings.LLM.MaxTokens = 2000
	settings.Media.EnableVideo = false
	require.NoError(t, svc.Save(&settings))

	loaded, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "/srv/corpus", loaded.Corpus.Dir)
	assert.Equal(t, 800, loaded.Corpus.ChunkSize)
	assert.Equal(t, 150, loaded.Corpus.ChunkOverlap)
	assert.Equal(t, 2000, loaded.LLM.MaxTokens)
	assert.False(t, loaded.Media.EnableVideo)
}

// TestSettingsService_SaveRejectsInvalid tests validation on save.
func TestSettingsService_SaveRejectsInvalid(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Corpus.ChunkOverlap = settings.Corpus.ChunkSize
	assert.ErrorIs(t, svc.Save(&settings), domain.ErrInvalidChunking)

	assert.ErrorIs(t, svc.Save(nil), domain.ErrInvalidInput)
}

// TestSettingsService_SetEmbeddingProvider tests provider switching
// with model defaults and dimension tracking.
func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOpenAI, ""))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "sentence-transformers/all-MiniLM-L6-v2", settings.Embedding.Model)
	assert.Equal(t, 384, settings.Embedding.Dimensions)

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOllama, "nomic-embed-text"))
	settings, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 768, settings.Embedding.Dimensions)

	assert.ErrorIs(t, svc.SetEmbeddingProvider(domain.AIProvider("bogus"), ""),
		domain.ErrUnsupportedType)
}

// TestSettingsService_SetLLMProvider tests provider constraints.
func TestSettingsService_SetLLMProvider(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	require.NoError(t, svc.SetLLMProvider(domain.AIProviderOllama, "llama3.2"))
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)

	// The built-in embedder cannot answer questions.
	assert.ErrorIs(t, svc.SetLLMProvider(domain.AIProviderLocal, ""),
		domain.ErrUnsupportedType)
}

// TestSettingsService_SetChunking tests the overlap guard.
func TestSettingsService_SetChunking(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	require.NoError(t, svc.SetChunking(500, 80))
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 500, settings.Corpus.ChunkSize)
	assert.Equal(t, 80, settings.Corpus.ChunkOverlap)

	assert.ErrorIs(t, svc.SetChunking(100, 100), domain.ErrInvalidChunking)
	assert.ErrorIs(t, svc.SetChunking(100, 200), domain.ErrInvalidChunking)
	assert.ErrorIs(t, svc.SetChunking(0, 0), domain.ErrInvalidInput)
}

// TestSettingsService_SetCorpusDir tests corpus relocation.
func TestSettingsService_SetCorpusDir(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	require.NoError(t, svc.SetCorpusDir("elsewhere"))
	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", settings.Corpus.Dir)

	assert.ErrorIs(t, svc.SetCorpusDir(""), domain.ErrInvalidInput)
}
