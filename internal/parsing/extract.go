package parsing

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF")

// Extractor turns raw document bytes into text.
type Extractor interface {
	Extract(doc []byte) (string, error)
}

// DocumentExtractor extracts text from PDF documents, falling back to plain
// UTF-8 text when the bytes are not a PDF.
type DocumentExtractor struct{}

// Extract implements Extractor.
func (DocumentExtractor) Extract(doc []byte) (string, error) {
	if bytes.HasPrefix(doc, pdfMagic) {
		return extractPDF(doc)
	}
	if !utf8.Valid(doc) {
		return "", fmt.Errorf("document is neither a PDF nor valid UTF-8 text")
	}
	return string(doc), nil
}

// extractPDF concatenates text page by page. Pages that cannot be read
// contribute an empty string rather than failing the whole document.
func extractPDF(doc []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
