// Package export renders answers to shareable document formats.
//
// The target format is selected by the output file extension: .pdf and
// .docx are supported.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

// Formatter renders one answered question to a document format.
type Formatter interface {
	// Format renders the question, answer, and sources.
	Format(question string, answer *domain.Answer) ([]byte, error)

	// ContentType returns the MIME type of the rendered document.
	ContentType() string

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// ForPath returns the formatter matching the output path's extension.
func ForPath(path string) (Formatter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFFormatter(), nil
	case ".docx":
		return NewDOCXFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: export format %q (supported: .pdf, .docx)",
			domain.ErrUnsupportedType, filepath.Ext(path))
	}
}

// ToFile renders the answer and writes it to path, choosing the format
// from the extension.
func ToFile(path, question string, answer *domain.Answer) error {
	formatter, err := ForPath(path)
	if err != nil {
		return err
	}

	data, err := formatter.Format(question, answer)
	if err != nil {
		return fmt.Errorf("render %s: %w", formatter.FileExtension(), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
