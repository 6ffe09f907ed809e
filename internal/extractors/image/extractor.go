// Package image extracts content units from image files.
//
// When a captioner is available each image becomes a single unit holding
// a generated description. Without one, or when captioning fails, the
// unit still records the image by name so the file shows up in results.
package image

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the port.
var _ driven.Extractor = (*Extractor)(nil)

// CaptionMaxTokens bounds the generated image description.
const CaptionMaxTokens = 500

// defaultPrompt is used when no prompt store is configured.
const defaultPrompt = "Describe this image in detail. Focus on any text, diagrams, charts, or important information visible in the image."

// Extractor handles image files.
type Extractor struct {
	captioner driven.Captioner
	prompts   driven.PromptStore
	log       *zap.Logger
}

// New creates an image extractor. The captioner and prompt store may be
// nil; extraction then falls back to name-only units and the built-in
// prompt respectively.
func New(captioner driven.Captioner, prompts driven.PromptStore, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		captioner: captioner,
		prompts:   prompts,
		log:       log,
	}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

// Extract captions the image and returns a single image unit. Caption
// failures degrade to a unit holding just the image name.
func (e *Extractor) Extract(ctx context.Context, path, name string) ([]domain.ContentUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	fallback := fmt.Sprintf("[Image: %s]", name)

	if e.captioner == nil || !e.captioner.Available() {
		e.log.Debug("captioning unavailable, indexing image by name", zap.String("file", name))
		return e.units(fallback, name), nil
	}

	caption, err := e.captioner.Caption(ctx, data, imageFormat(path), e.prompt(), CaptionMaxTokens)
	if err != nil {
		e.log.Warn("caption generation failed, indexing image by name",
			zap.String("file", name),
			zap.Error(err))
		return e.units(fallback, name), nil
	}

	return e.units(fmt.Sprintf("[Image: %s]\n%s", name, caption), name), nil
}

func (e *Extractor) units(text, name string) []domain.ContentUnit {
	return []domain.ContentUnit{{
		Text:   text,
		Source: name,
		Kind:   domain.UnitKindImage,
	}}
}

func (e *Extractor) prompt() string {
	if e.prompts == nil {
		return defaultPrompt
	}
	prompt, err := e.prompts.Load(driven.PromptImageCaption)
	if err != nil || prompt == "" {
		return defaultPrompt
	}
	return prompt
}

// imageFormat derives the wire format identifier from the file extension.
func imageFormat(path string) string {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "jpg" {
		format = "jpeg"
	}
	return format
}
