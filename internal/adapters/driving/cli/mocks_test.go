package cli

import (
	"context"
	"time"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// fakeRetrievalService is a scriptable RetrievalService for command tests.
type fakeRetrievalService struct {
	answer      *domain.Answer
	units       []domain.ContentUnit
	status      domain.CorpusStatus
	askErr      error
	initErr     error
	rebuildErr  error
	initialized bool
	rebuilt     bool
}

func (f *fakeRetrievalService) Initialize(_ context.Context) error {
	if f.initErr != nil {
		return f.initErr
	}
	f.initialized = true
	f.status.Ready = true
	return nil
}

func (f *fakeRetrievalService) Rebuild(_ context.Context) error {
	if f.rebuildErr != nil {
		return f.rebuildErr
	}
	f.rebuilt = true
	f.status.Ready = true
	return nil
}

func (f *fakeRetrievalService) Retrieve(
	_ context.Context,
	_ string,
	_ int,
) ([]domain.ContentUnit, error) {
	return f.units, f.askErr
}

func (f *fakeRetrievalService) Ask(_ context.Context, _ string, _ int) (*domain.Answer, error) {
	return f.answer, f.askErr
}

func (f *fakeRetrievalService) Status() domain.CorpusStatus {
	return f.status
}

// fakeSessionService is a scriptable SessionService for command tests.
type fakeSessionService struct {
	message *domain.Message
	err     error
}

func (f *fakeSessionService) Start(_ context.Context) (*domain.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Session{ID: "sess-1", CreatedAt: time.Now()}, nil
}

func (f *fakeSessionService) Ask(_ context.Context, _, _ string) (*domain.Message, error) {
	return f.message, f.err
}

func (f *fakeSessionService) History(_ context.Context, _ string) ([]domain.Message, error) {
	return nil, f.err
}

func (f *fakeSessionService) Clear(_ context.Context, _ string) error {
	return f.err
}

func (f *fakeSessionService) Rate(_ context.Context, _ string, _ domain.FeedbackRating) error {
	return f.err
}

// fakeSettingsService serves settings from memory.
type fakeSettingsService struct {
	settings domain.AppSettings
	saved    *domain.AppSettings
	err      error
}

func newFakeSettingsService() *fakeSettingsService {
	return &fakeSettingsService{settings: domain.DefaultAppSettings()}
}

func (f *fakeSettingsService) Get() (*domain.AppSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	settings := f.settings
	return &settings, nil
}

func (f *fakeSettingsService) Save(settings *domain.AppSettings) error {
	if f.err != nil {
		return f.err
	}
	f.settings = *settings
	f.saved = settings
	return nil
}

func (f *fakeSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model string) error {
	f.settings.Embedding.Provider = provider
	f.settings.Embedding.Model = model
	return f.err
}

func (f *fakeSettingsService) SetLLMProvider(provider domain.AIProvider, model string) error {
	f.settings.LLM.Provider = provider
	f.settings.LLM.Model = model
	return f.err
}

func (f *fakeSettingsService) SetCorpusDir(dir string) error {
	f.settings.Corpus.Dir = dir
	return f.err
}

func (f *fakeSettingsService) SetChunking(size, overlap int) error {
	f.settings.Corpus.ChunkSize = size
	f.settings.Corpus.ChunkOverlap = overlap
	return f.err
}

func (f *fakeSettingsService) Validate() error {
	return f.err
}

func (f *fakeSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
