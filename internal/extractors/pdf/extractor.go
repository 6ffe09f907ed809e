// Package pdf extracts content units from PDF files.
//
// Page text is concatenated with a page marker line so retrieved chunks
// can point a reader back to the right page.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the port.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF files.
type Extractor struct {
	chunker driven.Chunker
}

// New creates a PDF extractor that splits content with chunker.
func New(chunker driven.Chunker) *Extractor {
	return &Extractor{chunker: chunker}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract reads every page, prefixes each with its page marker, and
// splits the combined text into chunked units.
func (e *Extractor) Extract(_ context.Context, path, name string) ([]domain.ContentUnit, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	total := reader.NumPage()

	for num := 1; num <= total; num++ {
		page := reader.Page(num)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", num, err)
		}

		fmt.Fprintf(&sb, "\n[Page %d]\n%s", num, pageText)
	}

	return e.chunker.Chunk(sb.String(), name), nil
}
