// Package whisper provides a speech transcription adapter for OpenAI
// compatible /audio/transcriptions endpoints (whisper.cpp server,
// faster-whisper-server, cloud routers).
//
// Transcription is an optional capability: without a configured
// endpoint the adapter reports unavailable and video ingestion
// continues with visual-only content.
package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Transcriber implements the interface.
var _ driven.Transcriber = (*Transcriber)(nil)

// Default configuration values.
const (
	DefaultModel   = "base"
	DefaultTimeout = 10 * time.Minute
)

// Config holds configuration for the transcriber.
type Config struct {
	// BaseURL is the OpenAI compatible API base URL. Empty makes the
	// transcriber unavailable rather than failing construction.
	BaseURL string

	// APIKey authenticates against the API. Optional for local servers.
	APIKey string

	// Model is the speech recognition model size or name (default: base).
	Model string

	// Timeout is the per-file timeout (default: 10m). Transcription of
	// a long video is the slowest call the system makes.
	Timeout time.Duration
}

// Transcriber recognises speech through a whisper-compatible HTTP API.
type Transcriber struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// transcriptionResponse is the verbose_json response format.
type transcriptionResponse struct {
	Language string  `json:"language"`
	Text     string  `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// New creates a transcriber. Without a base URL the transcriber is
// constructed unavailable.
func New(cfg Config) *Transcriber {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Transcriber{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Available reports whether transcription can be attempted.
func (t *Transcriber) Available() bool {
	return t.baseURL != ""
}

// Transcribe recognises speech in the media file at path and returns
// the timed segments.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (*driven.Transcript, error) {
	if !t.Available() {
		return nil, fmt.Errorf("transcriber: no endpoint configured")
	}

	media, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read media: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(media); err != nil {
		return nil, fmt.Errorf("write file content: %w", err)
	}
	if err := writer.WriteField("model", t.model); err != nil {
		return nil, fmt.Errorf("write model field: %w", err)
	}
	// verbose_json carries the timed segments the video extractor needs.
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, fmt.Errorf("write format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcriber: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("transcriber: returned %d: %s", resp.StatusCode, string(detail))
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	transcript := &driven.Transcript{
		Language: result.Language,
		Text:     result.Text,
		Segments: make([]driven.TranscriptSegment, len(result.Segments)),
	}
	for i, seg := range result.Segments {
		transcript.Segments[i] = driven.TranscriptSegment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		}
	}
	return transcript, nil
}

// Close releases resources.
func (t *Transcriber) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
