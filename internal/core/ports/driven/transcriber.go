package driven

import "context"

// Transcriber converts speech in media files to timed text.
// This is an optional capability - when unavailable or failing, video
// ingestion continues with visual-only content.
type Transcriber interface {
	// Available reports whether transcription can be attempted.
	// Callers must check this before Transcribe.
	Available() bool

	// Transcribe recognises speech in the media file at path.
	Transcribe(ctx context.Context, path string) (*Transcript, error)

	// Close releases resources.
	Close() error
}

// Transcript is the full result of speech recognition for one media file.
type Transcript struct {
	// Language is the detected language code, when reported.
	Language string

	// Text is the full recognised text.
	Text string

	// Segments are the timed spans in playback order.
	Segments []TranscriptSegment
}

// TranscriptSegment is one timed span of recognised speech.
type TranscriptSegment struct {
	// Start is the span start in seconds from the beginning of the media.
	Start float64

	// End is the span end in seconds.
	End float64

	// Text is the recognised speech within the span.
	Text string
}
