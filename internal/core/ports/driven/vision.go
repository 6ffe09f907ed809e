package driven

import "context"

// Captioner describes images with a vision-capable model.
// This is an optional capability - when unavailable, image units degrade
// to filename-only text and video ingestion skips frame analysis.
type Captioner interface {
	// Available reports whether captioning can be attempted. False when
	// no credential is configured or the provider has no vision support.
	// Callers must check this before Caption instead of relying on the
	// call to fail.
	Available() bool

	// Caption describes the given encoded image. format is the image
	// format without a dot ("png", "jpeg"). The prompt steers the
	// description; maxTokens caps its length.
	Caption(ctx context.Context, image []byte, format, prompt string, maxTokens int) (string, error)

	// Close releases resources.
	Close() error
}
