// Package drive resolves Google Drive sharing links and downloads the
// referenced files as PDFs.
package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperdrop/internal/httputil"
	"github.com/pdiddy/paperdrop/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"

	// pdfMagic is the required file header for a valid download.
	pdfMagic = "%PDF"

	// maxConfirmPageSize bounds how much of an HTML interstitial is read
	// while looking for the confirmation form.
	maxConfirmPageSize = 2 << 20
)

// Patterns for the virus-scan confirmation page Drive serves for large
// files: the download form action and its hidden inputs.
var (
	formActionPattern  = regexp.MustCompile(`<form[^>]+id="download-form"[^>]+action="([^"]+)"`)
	hiddenInputPattern = regexp.MustCompile(`<input[^>]+type="hidden"[^>]+name="([^"]+)"[^>]+value="([^"]*)"`)
)

// Client downloads Drive files over HTTP.
type Client struct {
	http *http.Client
	cfg  types.FetchConfig
}

// NewClient builds a Client from fetch configuration.
func NewClient(cfg types.FetchConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// FetchDocument resolves a sharing link, downloads the PDF into
// DocumentsDir/raw/<fileID>.pdf, and writes a metadata record beside it.
// If the PDF already exists on disk, the download is skipped; the skipped
// return value reports that.
func (c *Client) FetchDocument(ctx context.Context, rawURL string, w io.Writer) (doc *types.Document, skipped bool, err error) {
	fileID, err := ExtractFileID(rawURL)
	if err != nil {
		return nil, false, err
	}

	pdfPath := filepath.Join(c.cfg.DocumentsDir, rawDir, fileID+".pdf")
	metaPath := filepath.Join(c.cfg.DocumentsDir, metadataDir, fileID+".yaml")

	if _, err := os.Stat(pdfPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", fileID)
		d, readErr := readMetadata(metaPath)
		if readErr != nil {
			d = &types.Document{ID: fileID, FileID: fileID, PDFPath: pdfPath}
		}
		return d, true, nil
	}

	for _, dir := range []string{
		filepath.Join(c.cfg.DocumentsDir, rawDir),
		filepath.Join(c.cfg.DocumentsDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fmt.Fprintf(w, "downloading: %s\n", fileID)

	size, err := c.download(ctx, DownloadURL(fileID), pdfPath)
	if err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", fileID, err)
	}

	d := &types.Document{
		ID:               fileID,
		SourceURL:        rawURL,
		FileID:           fileID,
		PDFPath:          pdfPath,
		Size:             size,
		FetchedAt:        time.Now().UTC(),
		ExtractionStatus: types.ExtractionNone,
	}

	if err := writeMetadata(d, metaPath); err != nil {
		return nil, false, fmt.Errorf("writing metadata for %s: %w", fileID, err)
	}

	return d, false, nil
}

// download fetches downloadURL to destPath via a temporary file, following
// the virus-scan confirmation interstitial once if Drive serves one.
// The result must be a non-empty PDF.
func (c *Client) download(ctx context.Context, downloadURL, destPath string) (int64, error) {
	body, err := c.get(ctx, downloadURL)
	if err != nil {
		return 0, err
	}

	// Large files come back as an HTML confirmation page instead of
	// the file. Re-issue the request the page's download form describes.
	if bytes.HasPrefix(bytes.TrimLeft(body.head, " \t\r\n"), []byte("<")) {
		body.Close()
		confirmURL, err := c.confirmURL(ctx, downloadURL)
		if err != nil {
			return 0, err
		}
		body, err = c.get(ctx, confirmURL)
		if err != nil {
			return 0, err
		}
	}
	defer body.Close()

	if !bytes.HasPrefix(body.head, []byte(pdfMagic)) {
		return 0, fmt.Errorf("downloaded file is not a valid PDF")
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	size, copyErr := io.Copy(tmpFile, body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("closing temp file: %w", closeErr)
	}
	if size == 0 {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("downloaded file is empty")
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return size, nil
}

// peekedBody is a response body with its first bytes pre-read, so the
// download path can sniff content without losing data.
type peekedBody struct {
	head []byte
	rc   io.ReadCloser
}

func (p *peekedBody) Read(b []byte) (int, error) {
	if len(p.head) > 0 {
		n := copy(b, p.head)
		p.head = p.head[n:]
		return n, nil
	}
	return p.rc.Read(b)
}

func (p *peekedBody) Close() error { return p.rc.Close() }

// get issues a GET with retry on rate limiting and peeks the first bytes.
func (c *Client) get(ctx context.Context, rawURL string) (*peekedBody, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	head := make([]byte, 16)
	n, _ := io.ReadFull(resp.Body, head)
	// The peeked body keeps exactly head[:n]; a full copy avoids aliasing
	// the reused buffer.
	pb := &peekedBody{head: append([]byte(nil), head[:n]...), rc: resp.Body}
	return pb, nil
}

// confirmURL fetches the confirmation page at downloadURL and rebuilds the
// direct download URL from its form action and hidden inputs.
func (c *Client) confirmURL(ctx context.Context, downloadURL string) (string, error) {
	body, err := c.get(ctx, downloadURL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	page, err := io.ReadAll(io.LimitReader(body, maxConfirmPageSize))
	if err != nil {
		return "", fmt.Errorf("reading confirmation page: %w", err)
	}

	action := formActionPattern.FindSubmatch(page)
	if action == nil {
		return "", fmt.Errorf("no download form on confirmation page (file may not be shared publicly)")
	}

	values := url.Values{}
	for _, m := range hiddenInputPattern.FindAllSubmatch(page, -1) {
		values.Set(string(m[1]), string(m[2]))
	}

	u := strings.ReplaceAll(string(action[1]), "&amp;", "&")
	if len(values) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + values.Encode()
	}
	return u, nil
}

// writeMetadata writes a Document record to a YAML file.
func writeMetadata(doc *types.Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// readMetadata reads a Document record from a YAML file.
func readMetadata(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc types.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
