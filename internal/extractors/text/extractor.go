// Package text extracts content units from plain text files.
package text

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the port.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files.
type Extractor struct {
	chunker driven.Chunker
}

// New creates a text extractor that splits content with chunker.
func New(chunker driven.Chunker) *Extractor {
	return &Extractor{chunker: chunker}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract reads the file and splits it into chunked text units.
func (e *Extractor) Extract(_ context.Context, path, name string) ([]domain.ContentUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	return e.chunker.Chunk(string(data), name), nil
}
