// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements PDF-to-text extraction with pluggable backends.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paperdrop/pkg/types"
)

const (
	// textDir is the subdirectory under the documents base for extracted text.
	textDir = "text"
)

// Extractor pulls plain text out of a PDF file. Different backends (native
// parsing, the markitdown container) implement this interface.
type Extractor interface {
	// Extract reads a PDF at pdfPath and returns its text content.
	Extract(pdfPath string) (string, error)
}

// ExtractDocument extracts text from a single PDF, writing the result to
// DocumentsDir/text/<stem>.txt. If the text output already exists it skips
// extraction and returns ExtractionNone.
func ExtractDocument(e Extractor, pdfPath string, cfg types.ExtractionConfig, w io.Writer) types.ExtractionStatus {
	outDir := filepath.Join(cfg.DocumentsDir, textDir)
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	txtPath := filepath.Join(outDir, base+".txt")

	if _, err := os.Stat(txtPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return types.ExtractionNone
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ExtractionFailed
	}

	text, err := e.Extract(pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ExtractionFailed
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ExtractionFailed
	}

	fmt.Fprintf(w, "extracted: %s\n", base)
	return types.ExtractionDone
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExtractBatch processes a list of PDF paths through the extractor, printing
// per-file status to w and returning a summary.
func ExtractBatch(e Extractor, pdfPaths []string, cfg types.ExtractionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		switch ExtractDocument(e, p, cfg, w) {
		case types.ExtractionDone:
			result.Extracted++
		case types.ExtractionNone:
			result.Skipped++
		case types.ExtractionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result
}

// NewExtractor builds the extractor named by cfg.Backend.
func NewExtractor(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		return &NativeExtractor{}, nil
	case types.BackendMarkitdown:
		return NewMarkitdownExtractor()
	default:
		return nil, fmt.Errorf("unknown extraction backend: %s", cfg.Backend)
	}
}
