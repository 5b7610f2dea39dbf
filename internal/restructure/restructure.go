// Package restructure reorganizes raw extracted text into sectioned
// Markdown through a large-language-model backend.
package restructure

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// markdownDir is the subdirectory under the documents base for
	// restructured Markdown output.
	markdownDir = "markdown"
)

// Backend abstracts the LLM API so tests can supply a mock. Implementations
// take raw extracted text and return sectioned Markdown.
type Backend interface {
	Restructure(ctx context.Context, rawText string) (string, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// WithRetry calls the backend with exponential backoff between attempts.
func WithRetry(ctx context.Context, backend Backend, rawText string, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		markdown, err := backend.Restructure(ctx, rawText)
		if err == nil {
			return markdown, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// RestructureFile reads raw text from txtPath, restructures it, and writes
// the Markdown to documentsDir/markdown/<stem>.md. Existing output is left
// alone and returned as-is.
func RestructureFile(ctx context.Context, backend Backend, txtPath, documentsDir string, maxRetries int, w io.Writer) (string, error) {
	outDir := filepath.Join(documentsDir, markdownDir)
	base := strings.TrimSuffix(filepath.Base(txtPath), filepath.Ext(txtPath))
	mdPath := filepath.Join(outDir, base+".md")

	if data, err := os.ReadFile(mdPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
		return string(data), nil
	}

	raw, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("reading text %s: %w", txtPath, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", fmt.Errorf("text file %s is empty", txtPath)
	}

	fmt.Fprintf(w, "restructuring: %s\n", base)

	markdown, err := WithRetry(ctx, backend, string(raw), maxRetries)
	if err != nil {
		return "", fmt.Errorf("restructuring %s: %w", base, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return "", fmt.Errorf("writing markdown: %w", err)
	}

	fmt.Fprintf(w, "restructured: %s\n", base)
	return markdown, nil
}
