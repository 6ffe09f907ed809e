package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// CheckState classifies one diagnostic outcome.
type CheckState string

// Available check states.
const (
	// CheckPass means the capability is configured and reachable.
	CheckPass CheckState = "pass"

	// CheckWarn means the system works but with reduced capability.
	CheckWarn CheckState = "warn"

	// CheckFail means the system cannot serve its core function.
	CheckFail CheckState = "fail"
)

// CheckResult is one line of the doctor report.
type CheckResult struct {
	// Name identifies the checked capability.
	Name string

	// State is the outcome.
	State CheckState

	// Detail explains the outcome, including a hint on failures.
	Detail string
}

// DoctorConfig holds the probes the doctor runs.
type DoctorConfig struct {
	// SettingsService reads the effective settings.
	SettingsService *SettingsService

	// Validator probes the configured AI endpoints.
	Validator driven.AIConfigValidator

	// Media reports local media tooling availability.
	Media driven.MediaProcessor

	// APIKey is the externally supplied credential, empty when unset.
	APIKey string
}

// Doctor runs environment diagnostics: configuration consistency,
// corpus directory access, AI endpoint reachability, media tooling.
type Doctor struct {
	settings  *SettingsService
	validator driven.AIConfigValidator
	media     driven.MediaProcessor
	apiKey    string
}

// NewDoctor creates a doctor.
func NewDoctor(cfg DoctorConfig) (*Doctor, error) {
	if cfg.SettingsService == nil {
		return nil, fmt.Errorf("settings service: %w", domain.ErrInvalidInput)
	}
	return &Doctor{
		settings:  cfg.SettingsService,
		validator: cfg.Validator,
		media:     cfg.Media,
		apiKey:    cfg.APIKey,
	}, nil
}

// Run executes every check and returns the report. Healthy reports
// whether the core ask/retrieve path would work; warnings cover
// degraded optional capabilities only.
func (d *Doctor) Run(ctx context.Context) (results []CheckResult, healthy bool) {
	settings, err := d.settings.Get()
	if err != nil {
		return []CheckResult{{
			Name:   "settings",
			State:  CheckFail,
			Detail: fmt.Sprintf("cannot load settings: %v", err),
		}}, false
	}

	healthy = true
	fail := func(name, detail string) {
		results = append(results, CheckResult{Name: name, State: CheckFail, Detail: detail})
		healthy = false
	}
	warn := func(name, detail string) {
		results = append(results, CheckResult{Name: name, State: CheckWarn, Detail: detail})
	}
	pass := func(name, detail string) {
		results = append(results, CheckResult{Name: name, State: CheckPass, Detail: detail})
	}

	// Settings consistency.
	if err := settings.Validate(); err != nil {
		fail("settings", fmt.Sprintf("invalid: %v", err))
	} else {
		pass("settings", "valid")
	}

	// Corpus directory, created when absent so a fresh install passes.
	if err := os.MkdirAll(settings.Corpus.Dir, 0o755); err != nil {
		fail("corpus", fmt.Sprintf("cannot create %s: %v", settings.Corpus.Dir, err))
	} else {
		pass("corpus", settings.Corpus.Dir)
	}

	// Credential. Absence degrades cloud features; it never blocks
	// retrieval over local providers.
	if d.apiKey == "" {
		if settings.Embedding.Provider.RequiresAPIKey() {
			fail("credential", "HF_TOKEN not set, configured embedding provider needs it")
		} else {
			warn("credential", "HF_TOKEN not set, image captions and cloud answers disabled")
		}
	} else {
		pass("credential", "HF_TOKEN set")
	}

	// AI endpoints.
	d.checkEmbedding(ctx, settings, pass, warn, fail)
	d.checkLLM(ctx, settings, pass, warn)

	// Media tooling.
	switch {
	case !settings.Media.EnableVideo:
		warn("ffmpeg", "video ingestion disabled in settings")
	case d.media == nil || !d.media.Available():
		warn("ffmpeg", "not found on PATH, video files will be skipped")
	default:
		pass("ffmpeg", "available")
	}

	return results, healthy
}

func (d *Doctor) checkEmbedding(
	ctx context.Context,
	settings *domain.AppSettings,
	pass, warn, fail func(name, detail string),
) {
	embedding := settings.Embedding
	embedding.APIKey = d.apiKey

	if !embedding.IsConfigured() {
		fail("embedding", fmt.Sprintf("provider %s is not configured", embedding.Provider))
		return
	}
	if d.validator == nil {
		warn("embedding", "configured, connectivity not probed")
		return
	}
	if err := d.validator.ValidateEmbedding(ctx, embedding); err != nil {
		fail("embedding", fmt.Sprintf("%s unreachable: %v", embedding.Provider, err))
		return
	}
	pass("embedding", fmt.Sprintf("%s / %s", embedding.Provider, embedding.Model))
}

func (d *Doctor) checkLLM(
	ctx context.Context,
	settings *domain.AppSettings,
	pass, warn func(name, detail string),
) {
	llm := settings.LLM
	llm.APIKey = d.apiKey

	// Answers are an optional capability: retrieval still works without
	// them, so LLM problems warn instead of failing.
	if !llm.IsConfigured() {
		warn("answers", fmt.Sprintf("provider %s is not configured, retrieval only", llm.Provider))
		return
	}
	if d.validator == nil {
		warn("answers", "configured, connectivity not probed")
		return
	}
	if err := d.validator.ValidateLLM(ctx, llm); err != nil {
		warn("answers", fmt.Sprintf("%s unreachable: %v", llm.Provider, err))
		return
	}
	pass("answers", fmt.Sprintf("%s / %s", llm.Provider, llm.Model))
	if llm.SupportsVision() {
		pass("vision", "image and video description available")
	} else {
		warn("vision", "configured model cannot describe images")
	}
}
