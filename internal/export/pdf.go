package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"
)

// PDFFormatter renders answers as PDF documents.
type PDFFormatter struct{}

// NewPDFFormatter creates a PDF formatter.
func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// Format renders the question, answer, and sources as a PDF.
func (f *PDFFormatter) Format(question string, answer *domain.Answer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, tr(question), "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, tr(answer.Text), "", "", false)

	if len(answer.Sources) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, "Sources")
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 11)
		for _, source := range answer.Sources {
			pdf.MultiCell(0, lineHeight*1.4, tr("- "+source), "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the PDF MIME type.
func (f *PDFFormatter) ContentType() string {
	return pdfContentType
}

// FileExtension returns ".pdf".
func (f *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
