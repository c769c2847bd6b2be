package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	Extract(ra io.ReaderAt, size int64) (string, error)
}

// PDFExtractor extracts text from PDFs page by page. Pages are joined
// with single spaces; layout and structure are not preserved.
type PDFExtractor struct{}

// Extract returns the concatenated text of every page.
func (PDFExtractor) Extract(ra io.ReaderAt, size int64) (string, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return "", fmt.Errorf("reports: open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reports: extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, " "), nil
}
