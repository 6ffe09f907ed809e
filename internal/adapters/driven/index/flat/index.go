// Package flat provides an exact nearest-neighbour vector index.
//
// Every query is compared against every stored vector by squared
// Euclidean distance. For corpora in the thousands of units this brute
// force scan is fast, exact, and free of tuning parameters.
//
// The index is built as a whole and published with one atomic pointer
// swap, so concurrent searches always observe a complete snapshot.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Index implements the port.
var _ driven.VectorIndex = (*Index)(nil)

// snapshot is one immutable generation of the index.
// vectors[i] embeds units[i].
type snapshot struct {
	units     []domain.ContentUnit
	vectors   [][]float32
	dimension int
}

// Index is a flat, exact squared-L2 vector index.
type Index struct {
	dimension int
	current   atomic.Pointer[snapshot]
}

// New creates an empty index expecting vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive: %w", domain.ErrInvalidInput)
	}
	return &Index{dimension: dimension}, nil
}

// Dimensions returns the expected vector size.
func (ix *Index) Dimensions() int {
	return ix.dimension
}

// Build validates the unit/vector alignment, then publishes the new
// contents in one atomic swap. An empty build clears the index.
func (ix *Index) Build(ctx context.Context, units []domain.ContentUnit, vectors [][]float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(units) != len(vectors) {
		return fmt.Errorf("units (%d) and vectors (%d) misaligned: %w",
			len(units), len(vectors), domain.ErrInvalidInput)
	}

	if len(units) == 0 {
		ix.current.Store(nil)
		return nil
	}

	for i, vec := range vectors {
		if len(vec) != ix.dimension {
			return fmt.Errorf("vector %d has dimension %d, index expects %d: %w",
				i, len(vec), ix.dimension, domain.ErrDimensionMismatch)
		}
	}

	snap := &snapshot{
		units:     append([]domain.ContentUnit(nil), units...),
		vectors:   append([][]float32(nil), vectors...),
		dimension: ix.dimension,
	}
	ix.current.Store(snap)
	return nil
}

// Search scans the current snapshot and returns the k nearest units in
// ascending distance order. Ties keep insertion order. Searching an
// empty index returns no matches and no error.
func (ix *Index) Search(ctx context.Context, query []float32, k int) ([]driven.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := ix.current.Load()
	if snap == nil || len(snap.units) == 0 {
		return []driven.Match{}, nil
	}

	if len(query) != snap.dimension {
		return nil, fmt.Errorf("query has dimension %d, index expects %d: %w",
			len(query), snap.dimension, domain.ErrDimensionMismatch)
	}

	if k <= 0 {
		return []driven.Match{}, nil
	}
	if k > len(snap.units) {
		k = len(snap.units)
	}

	matches := make([]driven.Match, len(snap.units))
	for i, vec := range snap.vectors {
		matches[i] = driven.Match{
			Unit:     snap.units[i],
			Distance: squaredL2(query, vec),
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})

	return matches[:k], nil
}

// Ready reports whether a build has populated the index.
func (ix *Index) Ready() bool {
	snap := ix.current.Load()
	return snap != nil && len(snap.units) > 0
}

// Len returns the number of indexed units.
func (ix *Index) Len() int {
	snap := ix.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.units)
}

// Close releases resources.
func (ix *Index) Close() error {
	ix.current.Store(nil)
	return nil
}

// squaredL2 computes the squared Euclidean distance between two vectors
// of equal length.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
