// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor parses PDFs in-process. Pages that fail to decode or hold
// no text are skipped; extraction fails only when no page yields anything.
type NativeExtractor struct{}

// Extract reads the PDF at pdfPath page by page and returns the concatenated
// plain text, pages separated by blank lines.
func (n *NativeExtractor) Extract(pdfPath string) (string, error) {
	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no text extracted from %s", pdfPath)
	}
	return strings.Join(pages, "\n\n"), nil
}
