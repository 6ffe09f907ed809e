// Package local provides a deterministic, offline embedding service.
//
// Texts are embedded by feature hashing: each token and adjacent token
// pair is hashed into a fixed-size vector which is then L2-normalised.
// The result is no substitute for a learned model, but it needs no
// network or credentials, which makes it useful for air-gapped setups
// and tests. Identical text always embeds to an identical vector.
package local

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultDimensions = 384
	ModelName         = "feature-hash"

	bigramWeight = 0.5
)

// EmbeddingService embeds text by hashing token features.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a local embedding service. A non-positive
// dimension falls back to the default.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, s.dimensions)

	tokens := tokenise(text)
	for _, tok := range tokens {
		s.addFeature(vec, tok, 1)
	}
	for i := 0; i+1 < len(tokens); i++ {
		s.addFeature(vec, tokens[i]+" "+tokens[i+1], bigramWeight)
	}

	normalise(vec)
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts in input order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; there is no backing service.
func (s *EmbeddingService) Ping(context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}

// addFeature hashes the feature into a bucket with a hash-derived sign,
// which keeps the accumulated vector roughly zero-centred.
func (s *EmbeddingService) addFeature(vec []float32, feature string, weight float32) {
	h := fnv.New32a()
	h.Write([]byte(feature))
	sum := h.Sum32()

	bucket := int(sum % uint32(s.dimensions))
	if sum&0x80000000 != 0 {
		weight = -weight
	}
	vec[bucket] += weight
}

// tokenise lowercases the text and splits it on non-alphanumeric runes.
func tokenise(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// normalise scales the vector to unit length. A zero vector stays zero.
func normalise(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
