package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// PDFExtractor pulls plain text out of uploaded PDF resumes
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Text extracts the text of every page, pages separated by a blank line
func (e *PDFExtractor) Text(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF data: %w", err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			// skip pages that fail to render
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	return b.String(), nil
}
