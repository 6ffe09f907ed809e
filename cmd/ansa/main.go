// Command ansa answers questions about a local document corpus.
//
// All wiring lives here: adapters are constructed from settings and
// injected into the core services, which are handed to the CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/asr/whisper"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/index/flat"
	fsloader "github.com/custodia-labs/ansa-cli/internal/adapters/driven/loader/fs"
	mediacache "github.com/custodia-labs/ansa-cli/internal/adapters/driven/media/cache"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/media/ffmpeg"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ansa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ansa-cli/internal/chunker"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansa-cli/internal/core/services"
	"github.com/custodia-labs/ansa-cli/internal/extractors"
	docxextract "github.com/custodia-labs/ansa-cli/internal/extractors/docx"
	imageextract "github.com/custodia-labs/ansa-cli/internal/extractors/image"
	pdfextract "github.com/custodia-labs/ansa-cli/internal/extractors/pdf"
	textextract "github.com/custodia-labs/ansa-cli/internal/extractors/text"
	videoextract "github.com/custodia-labs/ansa-cli/internal/extractors/video"
	"github.com/custodia-labs/ansa-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envCfg, err := env.Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  envCfg.LogLevel,
		Format: logger.Format(envCfg.LogFormat),
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // Stderr sync failure is harmless

	configStore, err := file.NewConfigStore(envCfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	// API credentials come from the environment only; they are never
	// written to the settings file.
	token := envCfg.Token()
	settings.Embedding.APIKey = token
	settings.LLM.APIKey = token

	promptDir := ""
	dataDir := ""
	if envCfg.ConfigDir != "" {
		promptDir = filepath.Join(envCfg.ConfigDir, "prompts")
		dataDir = filepath.Join(envCfg.ConfigDir, "data")
	}

	promptStore, err := file.NewPromptStore(promptDir)
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	var sessionStore driven.SessionStore
	if sqlStore, err := sqlite.NewStore(dataDir); err != nil {
		log.Warn("session database unavailable; history will not persist", zap.Error(err))
		sessionStore = memory.NewSessionStore()
	} else {
		defer sqlStore.Close() //nolint:errcheck // Process is exiting
		sessionStore = sqlStore
	}

	media := ffmpeg.New()

	doctor, err := services.NewDoctor(services.DoctorConfig{
		SettingsService: settingsService,
		Validator:       ai.NewConfigValidator(),
		Media:           media,
		APIKey:          token,
	})
	if err != nil {
		return fmt.Errorf("creating doctor: %w", err)
	}

	svcs := cli.Services{
		Settings: settingsService,
		Doctor:   doctor,
		Logger:   log,
	}

	// The ask/retrieve path needs an embedding provider. Without one,
	// the settings and doctor commands still work so the user can fix
	// the configuration.
	embeddingSvc, err := ai.CreateEmbeddingService(settings.Embedding)
	if err != nil {
		return fmt.Errorf("creating embedding service: %w", err)
	}

	if embeddingSvc != nil {
		llmSvc, err := ai.CreateLLMService(settings.LLM)
		if err != nil {
			return fmt.Errorf("creating answer model: %w", err)
		}

		captioner := ai.CreateCaptioner(settings.LLM, mediacache.New(0))
		transcriber := whisper.New(whisper.Config{
			BaseURL: settings.Media.TranscribeURL,
			APIKey:  token,
			Model:   settings.Media.TranscribeModel,
		})

		chunk, err := chunker.New(
			chunker.WithSize(settings.Corpus.ChunkSize),
			chunker.WithOverlap(settings.Corpus.ChunkOverlap),
		)
		if err != nil {
			return fmt.Errorf("creating chunker: %w", err)
		}

		registry := extractors.NewRegistry()
		registry.Register(textextract.New(chunk))
		registry.Register(pdfextract.New(chunk))
		registry.Register(docxextract.New(chunk))
		registry.Register(imageextract.New(captioner, promptStore, log))
		if settings.Media.EnableVideo {
			registry.Register(videoextract.New(videoextract.Config{
				Processor:     media,
				Captioner:     captioner,
				Transcriber:   transcriber,
				Prompts:       promptStore,
				FrameInterval: settings.Media.FrameInterval,
				MaxFrames:     settings.Media.MaxFrames,
				Logger:        log,
			}))
		}

		loader, err := fsloader.New(fsloader.Config{
			Dir:      settings.Corpus.Dir,
			Registry: registry,
			Logger:   log,
		})
		if err != nil {
			return fmt.Errorf("creating corpus loader: %w", err)
		}

		index, err := flat.New(settings.Embedding.Dimensions)
		if err != nil {
			return fmt.Errorf("creating vector index: %w", err)
		}

		retrieval, err := services.NewRetrievalService(services.RetrievalConfig{
			Loader:            loader,
			Embedding:         embeddingSvc,
			Index:             index,
			LLM:               llmSvc,
			Prompts:           promptStore,
			Sessions:          sessionStore,
			TopK:              settings.Corpus.TopK,
			AnswerMaxTokens:   settings.LLM.MaxTokens,
			AnswerTemperature: settings.LLM.Temperature,
			Logger:            log,
		})
		if err != nil {
			return fmt.Errorf("creating retrieval service: %w", err)
		}

		session, err := services.NewSessionService(sessionStore, retrieval)
		if err != nil {
			return fmt.Errorf("creating session service: %w", err)
		}

		watcher, err := services.NewWatcher(services.WatcherConfig{
			Dir:       settings.Corpus.Dir,
			Retrieval: retrieval,
			Logger:    log,
		})
		if err != nil {
			return fmt.Errorf("creating corpus watcher: %w", err)
		}

		svcs.Retrieval = retrieval
		svcs.Session = session
		svcs.Watcher = watcher
	} else {
		log.Warn("embedding provider not configured; run 'ansa doctor' to diagnose",
			zap.String("provider", settings.Embedding.Provider.String()))
	}

	cli.SetServices(svcs)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	return cli.Execute(ctx)
}
