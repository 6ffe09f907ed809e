package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotReady indicates the corpus has not been indexed yet.
	// Callers should surface this as "still indexing", never as a crash.
	ErrNotReady = errors.New("index not ready")

	// ErrNoResults indicates a query matched nothing in the index.
	// Distinct from ErrNotReady: the system works, the corpus just has
	// no relevant content.
	ErrNoResults = errors.New("no matching content")

	// ErrInvalidChunking indicates a chunk overlap >= chunk size.
	// Such a configuration would stall the chunker and is rejected
	// at construction time.
	ErrInvalidChunking = errors.New("chunk overlap must be smaller than chunk size")

	// ErrUnsupportedType indicates an unknown provider or file type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrDimensionMismatch indicates an embedding vector whose length
	// does not match the index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. The index cannot be built without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the answer model is not configured.
	// Retrieval still works; answer generation is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrVisionUnavailable indicates image captioning is not configured.
	// Image units degrade to filename-only text.
	ErrVisionUnavailable = errors.New("vision service unavailable")

	// ErrTranscriptionUnavailable indicates speech recognition is not
	// configured. Video units degrade to visual-only content.
	ErrTranscriptionUnavailable = errors.New("transcription service unavailable")
)
