// Package openai provides an image captioning adapter for OpenAI
// compatible vision APIs, including the Hugging Face router.
//
// Captioning is an optional capability: constructing the adapter
// without an API key yields one that reports unavailable instead of
// failing, so ingestion can degrade per file rather than crash.
package openai

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ansa-cli/internal/retry"
)

// Ensure Captioner implements the interface.
var _ driven.Captioner = (*Captioner)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://router.huggingface.co/v1"
	DefaultModel   = "Qwen/Qwen2.5-VL-7B-Instruct:hyperbolic"
	DefaultTimeout = 120 * time.Second

	// DefaultRequestsPerSecond paces caption calls. Video ingestion
	// fires one call per sampled frame; without pacing a single long
	// video can trip router rate limits.
	DefaultRequestsPerSecond = 2
	// DefaultBurst allows short bursts above the sustained rate.
	DefaultBurst = 4
)

// Config holds configuration for the captioner.
type Config struct {
	// APIKey authenticates against the API. Empty makes the captioner
	// unavailable rather than failing construction.
	APIKey string

	// BaseURL is the API base URL (default: the Hugging Face router).
	BaseURL string

	// Model is the vision-capable chat model to use.
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration

	// RequestsPerSecond paces calls (default: 2). Negative disables
	// pacing.
	RequestsPerSecond float64

	// Cache memoises captions between rebuilds. Optional.
	Cache driven.MediaCache
}

// Captioner describes images through an OpenAI compatible chat API
// with image content parts.
type Captioner struct {
	client    openai.Client
	model     string
	available bool
	limiter   *rate.Limiter
	cache     driven.MediaCache
}

// New creates a captioner. Without an API key the captioner is
// constructed unavailable.
func New(cfg Config) *Captioner {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond >= 0 {
		rps := cfg.RequestsPerSecond
		if rps == 0 {
			rps = DefaultRequestsPerSecond
		}
		limiter = rate.NewLimiter(rate.Limit(rps), DefaultBurst)
	}

	c := &Captioner{
		model:     cfg.Model,
		available: cfg.APIKey != "",
		limiter:   limiter,
		cache:     cfg.Cache,
	}
	if c.available {
		c.client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithRequestTimeout(cfg.Timeout),
		)
	}
	return c
}

// Available reports whether captioning can be attempted.
func (c *Captioner) Available() bool {
	return c.available
}

// Caption describes the given encoded image. The image travels inline
// as a base64 data URL, so no upload endpoint is needed.
func (c *Captioner) Caption(ctx context.Context, image []byte, format, prompt string, maxTokens int) (string, error) {
	if !c.available {
		return "", fmt.Errorf("captioner: no API key configured")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("captioner: empty image")
	}

	key := cacheKey(image, prompt)
	if c.cache != nil {
		if caption, ok := c.cache.Get(key); ok {
			return caption, nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("captioner: rate limit wait: %w", err)
		}
	}

	dataURL := fmt.Sprintf("data:image/%s;base64,%s", format, base64.StdEncoding.EncodeToString(image))

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	var caption string
	err := retry.Do(ctx, func() error {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return fmt.Errorf("caption request: %w", err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("captioner: no completion choices returned")
		}
		caption = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		c.cache.Set(key, caption)
	}
	return caption, nil
}

// Close releases resources.
func (c *Captioner) Close() error {
	return nil
}

// cacheKey fingerprints an image+prompt pair. Content addressed, so a
// renamed or re-sampled identical frame still hits.
func cacheKey(image []byte, prompt string) string {
	h := sha256.New()
	h.Write(image)
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return "caption:" + hex.EncodeToString(h.Sum(nil))
}
