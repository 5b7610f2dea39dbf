package extract

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/paperdrop/internal/container"
	"github.com/pdiddy/paperdrop/pkg/types"
)

// fakeExtractor implements Extractor for testing. It returns canned text or
// an error, depending on configuration.
type fakeExtractor struct {
	output string
	err    error
}

func (f *fakeExtractor) Extract(pdfPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

// setupPDF creates a placeholder PDF file and returns its path and the temp dir.
func setupPDF(t *testing.T) (pdfPath, tmpDir string) {
	t.Helper()
	tmpDir = t.TempDir()
	rawDir := filepath.Join(tmpDir, "raw")
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		t.Fatal(err)
	}
	pdfPath = filepath.Join(rawDir, "file123.pdf")
	if err := os.WriteFile(pdfPath, []byte("%PDF fake"), 0o644); err != nil {
		t.Fatal(err)
	}
	return pdfPath, tmpDir
}

func TestExtractDocument(t *testing.T) {
	tests := []struct {
		name       string
		extractor  *fakeExtractor
		preCreate  bool // create text output before running
		wantStatus types.ExtractionStatus
		wantLog    string
	}{
		{
			name:       "successful extraction",
			extractor:  &fakeExtractor{output: "Page one text.\n\nPage two text."},
			wantStatus: types.ExtractionDone,
			wantLog:    "extracted:",
		},
		{
			name:       "skip existing output",
			extractor:  &fakeExtractor{output: "unused"},
			preCreate:  true,
			wantStatus: types.ExtractionNone,
			wantLog:    "skipped:",
		},
		{
			name:       "backend failure",
			extractor:  &fakeExtractor{err: errors.New("corrupt xref table")},
			wantStatus: types.ExtractionFailed,
			wantLog:    "failed:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath, tmpDir := setupPDF(t)
			cfg := types.ExtractionConfig{DocumentsDir: tmpDir}
			txtPath := filepath.Join(tmpDir, textDir, "file123.txt")

			if tt.preCreate {
				if err := os.MkdirAll(filepath.Dir(txtPath), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(txtPath, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var out bytes.Buffer
			status := ExtractDocument(tt.extractor, pdfPath, cfg, &out)

			if status != tt.wantStatus {
				t.Errorf("status = %v, want %v", status, tt.wantStatus)
			}
			if !strings.Contains(out.String(), tt.wantLog) {
				t.Errorf("log %q does not contain %q", out.String(), tt.wantLog)
			}

			if tt.wantStatus == types.ExtractionDone {
				data, err := os.ReadFile(txtPath)
				if err != nil {
					t.Fatalf("reading output: %v", err)
				}
				if string(data) != tt.extractor.output {
					t.Errorf("output = %q, want %q", data, tt.extractor.output)
				}
			}
		})
	}
}

func TestExtractBatch(t *testing.T) {
	pdfPath, tmpDir := setupPDF(t)
	secondPDF := filepath.Join(tmpDir, "raw", "other456.pdf")
	if err := os.WriteFile(secondPDF, []byte("%PDF fake"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := types.ExtractionConfig{DocumentsDir: tmpDir}
	var out bytes.Buffer
	result := ExtractBatch(&fakeExtractor{output: "text"}, []string{pdfPath, secondPDF}, cfg, &out)

	if result.Extracted != 2 || result.Failed != 0 {
		t.Errorf("result = %+v, want 2 extracted", result)
	}
	if result.Total() != 2 {
		t.Errorf("Total() = %d, want 2", result.Total())
	}
	if result.HasFailures() {
		t.Error("HasFailures() = true, want false")
	}
	if !strings.Contains(out.String(), "Batch summary: 2 extracted") {
		t.Errorf("missing batch summary in %q", out.String())
	}
}

func TestNewExtractorUnknownBackend(t *testing.T) {
	_, err := NewExtractor(types.ExtractionConfig{Backend: "grobid"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewExtractorDefaultsToNative(t *testing.T) {
	e, err := NewExtractor(types.ExtractionConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.(*NativeExtractor); !ok {
		t.Errorf("default extractor = %T, want *NativeExtractor", e)
	}
}

// stubRuntime satisfies container.Runtime for markitdown tests.
type stubRuntime struct {
	imageErr error
	runErr   error
	output   string
}

func (s *stubRuntime) Name() string                 { return "docker" }
func (s *stubRuntime) Available() bool              { return true }
func (s *stubRuntime) ImageExists(image string) error { return s.imageErr }

func (s *stubRuntime) Run(image string, stdin io.Reader, stdout io.Writer) error {
	if s.runErr != nil {
		return s.runErr
	}
	io.Copy(io.Discard, stdin)
	io.WriteString(stdout, s.output)
	return nil
}

var _ container.Runtime = (*stubRuntime)(nil)

func TestMarkitdownExtractor(t *testing.T) {
	pdfPath, _ := setupPDF(t)

	m, err := NewMarkitdownExtractorWithRuntime(&stubRuntime{output: "# Converted\n\nText."})
	if err != nil {
		t.Fatal(err)
	}

	text, err := m.Extract(pdfPath)
	if err != nil {
		t.Fatal(err)
	}
	if text != "# Converted\n\nText." {
		t.Errorf("text = %q", text)
	}
}

func TestMarkitdownExtractorEmptyOutput(t *testing.T) {
	pdfPath, _ := setupPDF(t)

	m, err := NewMarkitdownExtractorWithRuntime(&stubRuntime{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Extract(pdfPath); err == nil {
		t.Fatal("expected error for empty output")
	}
}

func TestMarkitdownExtractorMissingImage(t *testing.T) {
	_, err := NewMarkitdownExtractorWithRuntime(&stubRuntime{imageErr: errors.New("no such image")})
	if err == nil {
		t.Fatal("expected error when image is missing")
	}
}
