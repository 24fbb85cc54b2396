// Package pdf converts Markdown into PDF files.
package pdf

import (
	"fmt"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// ConvertMarkdown renders Markdown content into a PDF file at pdfPath.
func ConvertMarkdown(content []byte, pdfPath string) error {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		return fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return fmt.Errorf("renderer.Process() > %w", err)
	}
	return nil
}
