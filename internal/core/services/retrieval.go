package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driving"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalConfig holds the dependencies and tuning for the retrieval
// service. Loader, Embedding and Index are required; the rest degrade
// gracefully when absent.
type RetrievalConfig struct {
	// Loader ingests the corpus directory into content units.
	Loader driven.CorpusLoader

	// Embedding turns unit texts and questions into vectors.
	Embedding driven.EmbeddingService

	// Index stores vectors and serves nearest-neighbour search.
	Index driven.VectorIndex

	// LLM generates answers from retrieved context. Optional: without
	// it Retrieve works and Ask returns domain.ErrLLMUnavailable.
	LLM driven.LLMService

	// Prompts supplies the answer prompts. Optional; built-in defaults
	// apply without it.
	Prompts driven.PromptStore

	// Sessions records build history. Optional.
	Sessions driven.SessionStore

	// TopK is the default number of units per question (default: 5).
	TopK int

	// AnswerMaxTokens caps generated answer length.
	AnswerMaxTokens int

	// AnswerTemperature is the answer sampling temperature.
	AnswerTemperature float64

	// Logger records build progress. Optional.
	Logger *zap.Logger
}

// RetrievalService answers questions over the corpus: it owns the
// load -> embed -> index build pipeline and the embed -> search ->
// assemble query pipeline.
//
// Builds are serialised by a mutex and published through the index's
// atomic swap, so searches running concurrently with a rebuild observe
// either the old or the new index in full.
type RetrievalService struct {
	loader    driven.CorpusLoader
	embedding driven.EmbeddingService
	index     driven.VectorIndex
	llm       driven.LLMService
	prompts   driven.PromptStore
	sessions  driven.SessionStore
	log       *zap.Logger

	topK        int
	maxTokens   int
	temperature float64

	// buildMu serialises Initialize/Rebuild. Concurrent rebuild
	// requests queue up rather than interleave.
	buildMu sync.Mutex

	// stateMu guards the status fields below.
	stateMu       sync.RWMutex
	ready         bool
	lastBuildTime time.Time
	sources       []string
}

// Built-in answer prompts, used when no prompt store is configured.
const (
	defaultAnswerSystem = "You are a helpful onboarding assistant. Answer questions based on the provided context from company documents. If the answer is not in the context, say so honestly. Be concise and helpful."

	defaultAnswerUser = "Context from company documents:\n%s\n\nQuestion: %s\n\nAnswer based on the context above."
)

// NewRetrievalService creates a retrieval service from config.
func NewRetrievalService(cfg RetrievalConfig) (*RetrievalService, error) {
	if cfg.Loader == nil {
		return nil, fmt.Errorf("corpus loader: %w", domain.ErrInvalidInput)
	}
	if cfg.Embedding == nil {
		return nil, fmt.Errorf("embedding service: %w", domain.ErrInvalidInput)
	}
	if cfg.Index == nil {
		return nil, fmt.Errorf("vector index: %w", domain.ErrInvalidInput)
	}
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	if cfg.AnswerMaxTokens <= 0 {
		cfg.AnswerMaxTokens = domain.DefaultAnswerMaxTokens
	}
	if cfg.AnswerTemperature <= 0 {
		cfg.AnswerTemperature = domain.DefaultAnswerTemperature
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &RetrievalService{
		loader:      cfg.Loader,
		embedding:   cfg.Embedding,
		index:       cfg.Index,
		llm:         cfg.LLM,
		prompts:     cfg.Prompts,
		sessions:    cfg.Sessions,
		log:         cfg.Logger,
		topK:        cfg.TopK,
		maxTokens:   cfg.AnswerMaxTokens,
		temperature: cfg.AnswerTemperature,
	}, nil
}

// Initialize loads the corpus and builds the vector index. An empty
// corpus is not an error; the service simply stays not-ready. On any
// load or build failure the service is left not-ready and remains
// usable for a retry.
func (s *RetrievalService) Initialize(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	started := time.Now()

	units, sources, err := s.buildIndex(ctx)
	s.recordBuild(started, len(units), len(sources), err)
	if err != nil {
		s.setNotReady()
		return err
	}

	s.stateMu.Lock()
	s.ready = len(units) > 0
	s.sources = sources
	if s.ready {
		s.lastBuildTime = time.Now()
	}
	s.stateMu.Unlock()

	if len(units) == 0 {
		s.log.Warn("corpus is empty, index not built")
		return nil
	}

	s.log.Info("index built",
		zap.Int("units", len(units)),
		zap.Int("sources", len(sources)),
		zap.Duration("took", time.Since(started)))
	return nil
}

// buildIndex runs the load -> embed -> index pipeline. The new index
// contents replace the old ones only after embedding every unit, so a
// failed build never leaves a partially populated index visible.
func (s *RetrievalService) buildIndex(ctx context.Context) ([]domain.ContentUnit, []string, error) {
	units, sources, err := s.loader.LoadAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	if len(units) == 0 {
		if err := s.index.Build(ctx, nil, nil); err != nil {
			return nil, nil, fmt.Errorf("clear index: %w", err)
		}
		return nil, sources, nil
	}

	texts := make([]string, len(units))
	for i := range units {
		texts[i] = units[i].Text
	}

	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed corpus: %w", err)
	}

	if err := s.index.Build(ctx, units, vectors); err != nil {
		return nil, nil, fmt.Errorf("build index: %w", err)
	}

	return units, sources, nil
}

// Rebuild discards the current state and runs Initialize again.
func (s *RetrievalService) Rebuild(ctx context.Context) error {
	s.setNotReady()
	return s.Initialize(ctx)
}

// Retrieve returns the topK most relevant content units for the
// question, most relevant first. Multiple units from the same source
// may all appear; deduplication is a presentation concern.
func (s *RetrievalService) Retrieve(ctx context.Context, question string, topK int) ([]domain.ContentUnit, error) {
	if !s.Ready() {
		return nil, domain.ErrNotReady
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty: %w", domain.ErrInvalidInput)
	}

	if topK <= 0 {
		topK = s.topK
	}

	query, err := s.embedding.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	matches, err := s.index.Search(ctx, query, topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	if len(matches) == 0 {
		return nil, domain.ErrNoResults
	}

	units := make([]domain.ContentUnit, len(matches))
	for i := range matches {
		units[i] = matches[i].Unit
	}
	return units, nil
}

// Ask retrieves context for the question and generates an answer.
func (s *RetrievalService) Ask(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	units, err := s.Retrieve(ctx, question, topK)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(units))
	for i := range units {
		texts[i] = units[i].Text
	}
	contextBlock := strings.Join(texts, "\n\n")

	messages := []driven.ChatMessage{
		{Role: "system", Content: s.prompt(driven.PromptAnswerSystem, defaultAnswerSystem)},
		{Role: "user", Content: fmt.Sprintf(s.prompt(driven.PromptAnswerUser, defaultAnswerUser), contextBlock, strings.TrimSpace(question))},
	}

	text, err := s.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:    strings.TrimSpace(text),
		Sources: dedupeSources(units),
	}, nil
}

// Status reports the current engine state. Pure read.
func (s *RetrievalService) Status() domain.CorpusStatus {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	sources := append([]string(nil), s.sources...)
	sort.Strings(sources)

	return domain.CorpusStatus{
		Ready:         s.ready,
		UnitCount:     s.index.Len(),
		Sources:       sources,
		LastBuildTime: s.lastBuildTime,
	}
}

// Ready reports whether the index has been built.
func (s *RetrievalService) Ready() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.ready
}

func (s *RetrievalService) setNotReady() {
	s.stateMu.Lock()
	s.ready = false
	s.stateMu.Unlock()
}

// prompt loads a named prompt, falling back to the built-in default.
func (s *RetrievalService) prompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	p, err := s.prompts.Load(name)
	if err != nil || p == "" {
		return fallback
	}
	return p
}

// recordBuild appends a build history row when a session store is set.
// History is best-effort; a storage failure never fails the build.
func (s *RetrievalService) recordBuild(started time.Time, unitCount, sourceCount int, buildErr error) {
	if s.sessions == nil {
		return
	}

	record := &domain.BuildRecord{
		ID:          uuid.NewString(),
		StartedAt:   started,
		FinishedAt:  time.Now(),
		UnitCount:   unitCount,
		SourceCount: sourceCount,
		Success:     buildErr == nil,
	}
	if buildErr != nil {
		record.Error = buildErr.Error()
	}

	if err := s.sessions.RecordBuild(context.Background(), record); err != nil {
		s.log.Warn("failed to record build history", zap.Error(err))
	}
}

// dedupeSources returns the distinct sources in first-seen order.
func dedupeSources(units []domain.ContentUnit) []string {
	seen := make(map[string]struct{}, len(units))
	sources := make([]string, 0, len(units))
	for i := range units {
		if _, ok := seen[units[i].Source]; ok {
			continue
		}
		seen[units[i].Source] = struct{}{}
		sources = append(sources, units[i].Source)
	}
	return sources
}
