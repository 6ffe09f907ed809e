// Package chunker splits raw text into bounded, overlapping content units.
//
// Boundaries prefer sentence ends: within each window the chunker searches
// backward for the last sentence terminator and breaks just past it. A
// window without a terminator is cut hard at the size limit.
package chunker

import (
	"strings"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Sentence terminators searched backward within a window.
// The first pattern with any match wins, so order is a preference.
var sentenceBreaks = []string{". ", ".\n", "! ", "?\n", "? "}

// Ensure Chunker implements the port.
var _ driven.Chunker = (*Chunker)(nil)

// Chunker is a sentence-aware sliding-window splitter.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the target chunk size in bytes.
func WithSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
// Returns domain.ErrInvalidChunking when the overlap is not strictly
// smaller than the chunk size; such a configuration cannot make forward
// progress.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    domain.DefaultChunkSize,
		overlap: domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.overlap >= c.size {
		return nil, domain.ErrInvalidChunking
	}

	return c, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the configured chunk overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits text into units attributed to source.
// Blank input yields nil. Boundaries are deterministic for fixed input.
func (c *Chunker) Chunk(text, source string) []domain.ContentUnit {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	n := len(text)
	units := make([]domain.ContentUnit, 0, n/(c.size-c.overlap)+1)

	start := 0
	for start < n {
		end := start + c.size

		if end < n {
			// Prefer the last sentence end inside the window.
			for _, sep := range sentenceBreaks {
				if idx := strings.LastIndex(text[start:end], sep); idx != -1 {
					end = start + idx + 1
					break
				}
			}
		} else {
			end = n
		}

		if piece := strings.TrimSpace(text[start:end]); piece != "" {
			units = append(units, domain.ContentUnit{
				Text:   piece,
				Source: source,
				Kind:   domain.UnitKindText,
			})
		}

		if end == n {
			break
		}

		next := end - c.overlap
		if next <= start {
			// The sentence break landed inside the overlap; step past it.
			next = end
		}
		start = next
	}

	return units
}
