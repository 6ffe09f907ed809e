package driven

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// VectorIndex stores embedding vectors alongside their originating content
// units and serves exact nearest-neighbour search by squared Euclidean
// distance. Vector i always resolves to unit i; that positional alignment
// is the index's core invariant.
//
// A build replaces the whole index: the state is either empty/not-ready or
// fully populated. Publication is an atomic swap, so searches running
// concurrently with a build observe either the old or the new index in
// full, never a mix.
type VectorIndex interface {
	// Build atomically replaces the index contents with the given units
	// and their vectors, where vectors[i] embeds units[i]. An empty unit
	// slice leaves the index not ready and is not an error.
	Build(ctx context.Context, units []domain.ContentUnit, vectors [][]float32) error

	// Search returns the k nearest units to the query vector, ascending
	// by distance. k is clamped to the index size. Searching an empty or
	// not-ready index returns an empty slice without error.
	Search(ctx context.Context, query []float32, k int) ([]Match, error)

	// Ready reports whether a build has populated the index.
	Ready() bool

	// Len returns the number of indexed units.
	Len() int

	// Close releases resources.
	Close() error
}

// Match is a similarity search result.
type Match struct {
	// Unit is the matched content unit.
	Unit domain.ContentUnit

	// Distance is the squared Euclidean distance to the query.
	// Lower is more similar.
	Distance float32
}
