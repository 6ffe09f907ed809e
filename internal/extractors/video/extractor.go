// Package video extracts content units from video files.
//
// A video is processed on two tracks: frames are sampled and described by
// the vision model, and the audio track is transcribed when a transcriber
// is configured. Both tracks are then merged into time-bucketed units so
// retrieval can point at a moment in the video rather than the whole file.
//
// Videos degrade gracefully. Without captioning or frame extraction the
// file contributes no units; a failed transcription drops the audio track
// only; a failed frame is skipped.
package video

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the port.
var _ driven.Extractor = (*Extractor)(nil)

const (
	// FrameMaxTokens bounds each generated frame description.
	FrameMaxTokens = 300

	// bucketSeconds is the span of one merged unit.
	bucketSeconds = 30.0
)

// defaultPrompt is used when no prompt store is configured.
const defaultPrompt = "Describe what is shown in this video frame. Focus on key visual elements, actions, text, or important information."

// Config holds the dependencies and tuning for the video extractor.
type Config struct {
	// Processor probes duration and extracts frames. Required for any
	// visual analysis; without it videos contribute no units.
	Processor driven.MediaProcessor

	// Captioner describes extracted frames. Required for any units.
	Captioner driven.Captioner

	// Transcriber turns the audio track into timed segments. Optional.
	Transcriber driven.Transcriber

	// Prompts supplies the frame description prompt. Optional.
	Prompts driven.PromptStore

	// FrameInterval is the sampling gap in seconds (default: 5).
	FrameInterval float64

	// MaxFrames caps sampled frames per video (default: 50). Longer
	// videos are sampled at a wider interval instead of being cut off.
	MaxFrames int

	// Logger records skipped frames and degraded processing.
	Logger *zap.Logger
}

// Extractor handles video files.
type Extractor struct {
	processor   driven.MediaProcessor
	captioner   driven.Captioner
	transcriber driven.Transcriber
	prompts     driven.PromptStore
	interval    float64
	maxFrames   int
	log         *zap.Logger
}

// frameDescription pairs a sampled timestamp with its description.
type frameDescription struct {
	timestamp   float64
	description string
}

// New creates a video extractor.
func New(cfg Config) *Extractor {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = domain.DefaultFrameInterval
	}
	if cfg.MaxFrames <= 0 {
		cfg.MaxFrames = domain.DefaultMaxFrames
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Extractor{
		processor:   cfg.Processor,
		captioner:   cfg.Captioner,
		transcriber: cfg.Transcriber,
		prompts:     cfg.Prompts,
		interval:    cfg.FrameInterval,
		maxFrames:   cfg.MaxFrames,
		log:         cfg.Logger,
	}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".mp4"}
}

// Extract analyses the video and returns time-bucketed units combining
// frame descriptions and transcript segments. The file itself still
// counts as loaded when capabilities are missing and no units result.
func (e *Extractor) Extract(ctx context.Context, path, name string) ([]domain.ContentUnit, error) {
	if e.captioner == nil || !e.captioner.Available() {
		e.log.Warn("skipping video analysis, captioning unavailable", zap.String("file", name))
		return nil, nil
	}
	if e.processor == nil || !e.processor.Available() {
		e.log.Warn("skipping video analysis, media processing unavailable", zap.String("file", name))
		return nil, nil
	}

	duration, err := e.processor.Duration(ctx, path)
	if err != nil {
		e.log.Warn("failed to probe video", zap.String("file", name), zap.Error(err))
		return nil, nil
	}
	e.log.Info("processing video", zap.String("file", name), zap.Float64("duration_seconds", duration))

	segments := e.transcribe(ctx, path, name)
	frames := e.describeFrames(ctx, path, name, duration)

	return e.bucketise(name, duration, frames, segments), nil
}

// transcribe returns the audio transcript segments, or none when
// transcription is unavailable or fails.
func (e *Extractor) transcribe(ctx context.Context, path, name string) []driven.TranscriptSegment {
	if e.transcriber == nil || !e.transcriber.Available() {
		return nil
	}

	transcript, err := e.transcriber.Transcribe(ctx, path)
	if err != nil {
		e.log.Warn("audio transcription failed, continuing with video only",
			zap.String("file", name),
			zap.Error(err))
		return nil
	}

	e.log.Debug("transcription complete",
		zap.String("file", name),
		zap.String("language", transcript.Language),
		zap.Int("segments", len(transcript.Segments)))
	return transcript.Segments
}

// describeFrames samples frames across the video and captions each one.
// Failed frames are skipped.
func (e *Extractor) describeFrames(ctx context.Context, path, name string, duration float64) []frameDescription {
	interval := e.interval

	total := int(duration / interval)
	if total < 1 {
		total = 1
	}
	if total >= e.maxFrames {
		// Spread the frame budget over the whole video.
		total = e.maxFrames
		if widened := duration / float64(e.maxFrames); widened > 0 {
			interval = widened
		}
	}

	prompt := e.prompt()
	frames := make([]frameDescription, 0, total)

	for i := 0; i < total; i++ {
		timestamp := float64(i) * interval

		jpeg, err := e.processor.Frame(ctx, path, timestamp)
		if err != nil {
			e.log.Warn("failed to extract frame",
				zap.String("file", name),
				zap.Float64("timestamp", timestamp),
				zap.Error(err))
			continue
		}

		description, err := e.captioner.Caption(ctx, jpeg, "jpeg", prompt, FrameMaxTokens)
		if err != nil {
			e.log.Warn("failed to describe frame",
				zap.String("file", name),
				zap.Float64("timestamp", timestamp),
				zap.Error(err))
			continue
		}

		frames = append(frames, frameDescription{timestamp: timestamp, description: description})
	}

	e.log.Debug("frame analysis complete", zap.String("file", name), zap.Int("frames", len(frames)))
	return frames
}

// bucketise merges frame descriptions and transcript segments into
// 30-second units. Buckets without any content are dropped.
func (e *Extractor) bucketise(name string, duration float64, frames []frameDescription, segments []driven.TranscriptSegment) []domain.ContentUnit {
	numBuckets := int(duration/bucketSeconds) + 1
	if numBuckets < 1 {
		numBuckets = 1
	}

	var units []domain.ContentUnit
	for i := 0; i < numBuckets; i++ {
		bucketStart := float64(i) * bucketSeconds
		bucketEnd := float64(i+1) * bucketSeconds
		if bucketEnd > duration {
			bucketEnd = duration
		}

		var frameLines []string
		for _, f := range frames {
			if f.timestamp >= bucketStart && f.timestamp < bucketEnd {
				frameLines = append(frameLines, fmt.Sprintf("[%.1fs] %s", f.timestamp, f.description))
			}
		}

		var transcriptLines []string
		for _, seg := range segments {
			if seg.Start >= bucketStart && seg.Start < bucketEnd {
				transcriptLines = append(transcriptLines, fmt.Sprintf("[%.1fs] %s", seg.Start, seg.Text))
			}
		}

		if len(frameLines) == 0 && len(transcriptLines) == 0 {
			continue
		}

		parts := []string{
			fmt.Sprintf("[Video: %s]", name),
			fmt.Sprintf("[Time: %.1fs - %.1fs]", bucketStart, bucketEnd),
		}
		if len(frameLines) > 0 {
			parts = append(parts, "\nVisual Content:")
			parts = append(parts, frameLines...)
		}
		if len(transcriptLines) > 0 {
			parts = append(parts, "\nAudio Transcript:")
			parts = append(parts, transcriptLines...)
		}

		units = append(units, domain.ContentUnit{
			Text:      strings.Join(parts, "\n"),
			Source:    name,
			Kind:      domain.UnitKindVideo,
			TimeRange: fmt.Sprintf("%.1fs-%.1fs", bucketStart, bucketEnd),
		})
	}

	return units
}

func (e *Extractor) prompt() string {
	if e.prompts == nil {
		return defaultPrompt
	}
	prompt, err := e.prompts.Load(driven.PromptVideoFrame)
	if err != nil || prompt == "" {
		return defaultPrompt
	}
	return prompt
}
