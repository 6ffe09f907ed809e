// Package docx extracts content units from Word documents.
//
// Only the paragraph text of word/document.xml is read. Legacy binary
// .doc files are not ZIP archives and fail extraction; the loader
// reports them and moves on.
package docx

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
	"github.com/custodia-labs/ansa-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the port.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Word documents.
type Extractor struct {
	chunker driven.Chunker
}

// New creates a Word extractor that splits content with chunker.
func New(chunker driven.Chunker) *Extractor {
	return &Extractor{chunker: chunker}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".docx", ".doc"}
}

// Extract pulls paragraph text out of the document and splits it into
// chunked units. Paragraphs are separated by newlines.
func (e *Extractor) Extract(_ context.Context, path, name string) ([]domain.ContentUnit, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open word document: %w", err)
	}
	defer reader.Close()

	text, err := extractDocumentText(&reader.Reader)
	if err != nil {
		return nil, err
	}

	return e.chunker.Chunk(text, name), nil
}

// extractDocumentText extracts paragraph text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}

		return parseDocumentXML(content)
	}

	return "", fmt.Errorf("word/document.xml: %w", domain.ErrInvalidInput)
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML joins the text of every paragraph with newlines.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("parse document.xml: %w", err)
	}

	var sb strings.Builder
	for _, para := range doc.Body.Paragraphs {
		for _, r := range para.Runs {
			for _, text := range r.Text {
				sb.WriteString(text.Content)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
