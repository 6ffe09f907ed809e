package driven

import (
	"context"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// CorpusLoader ingests every supported file under the corpus root into
// content units. The root directory is fixed at construction.
type CorpusLoader interface {
	// LoadAll scans the corpus recursively and returns the extracted
	// units together with the names of the sources that loaded
	// successfully. A file that fails to load is logged and skipped;
	// only corpus-level failures (unreadable root) return an error.
	LoadAll(ctx context.Context) ([]domain.ContentUnit, []string, error)
}

// Extractor converts one source file into content units.
// Each extractor handles specific file extensions.
type Extractor interface {
	// Extensions returns the lowercase file extensions this extractor
	// handles, including the leading dot (".txt", ".pdf").
	Extensions() []string

	// Extract reads the file at path and returns its content units.
	// name is the source name recorded on the units (the file's base name).
	Extract(ctx context.Context, path, name string) ([]domain.ContentUnit, error)
}

// Chunker splits raw text into bounded, overlapping content units.
// Blank input yields an empty slice. Boundaries prefer sentence ends;
// a window without one is cut hard at the size limit.
type Chunker interface {
	// Chunk splits text into units attributed to source.
	Chunk(text, source string) []domain.ContentUnit
}
