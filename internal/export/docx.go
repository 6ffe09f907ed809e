package export

import (
	"bytes"

	"github.com/unidoc/unioffice/document"

	"github.com/custodia-labs/ansa-cli/internal/core/domain"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

// DOCXFormatter renders answers as Word documents.
type DOCXFormatter struct{}

// NewDOCXFormatter creates a DOCX formatter.
func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

// Format renders the question, answer, and sources as a DOCX.
func (f *DOCXFormatter) Format(question string, answer *domain.Answer) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(question)

	doc.AddParagraph()

	bodyPar := doc.AddParagraph()
	bodyPar.AddRun().AddText(answer.Text)

	if len(answer.Sources) > 0 {
		doc.AddParagraph()

		headingPar := doc.AddParagraph()
		headingPar.SetStyle("Heading2")
		headingPar.AddRun().AddText("Sources")

		for _, source := range answer.Sources {
			sourcePar := doc.AddParagraph()
			sourcePar.AddRun().AddText("- " + source)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ContentType returns the DOCX MIME type.
func (f *DOCXFormatter) ContentType() string {
	return docxContentType
}

// FileExtension returns ".docx".
func (f *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
