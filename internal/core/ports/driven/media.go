package driven

import "context"

// MediaProcessor exposes the local media tooling needed for video
// ingestion. This is an optional capability - when unavailable, video
// files are skipped during loading.
type MediaProcessor interface {
	// Available reports whether the media tooling is present on this
	// machine. Callers must check this before the other methods.
	Available() bool

	// Duration returns the playable length of the media file in seconds.
	Duration(ctx context.Context, path string) (float64, error)

	// Frame returns a single JPEG-encoded frame at the given timestamp.
	Frame(ctx context.Context, path string, atSeconds float64) ([]byte, error)
}

// MediaCache memoises expensive per-file media analysis (captions, frame
// descriptions, transcripts) between index rebuilds, keyed by a file
// fingerprint. Optional: a nil cache disables memoisation.
type MediaCache interface {
	// Get returns the cached value for key, if present.
	Get(key string) (string, bool)

	// Set stores the value for key.
	Set(key, value string)
}
