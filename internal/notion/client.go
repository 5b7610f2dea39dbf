// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdiddy/paperdrop/pkg/types"
)

const (
	// DefaultBaseURL is the public Notion API root.
	DefaultBaseURL = "https://api.notion.com/v1"

	// DefaultAPIVersion is the Notion-Version header value sent with requests.
	DefaultAPIVersion = "2022-06-28"

	defaultTimeout = 30 * time.Second

	// maxChunkSize is the API limit on children per append request.
	maxChunkSize = 100
)

// Client talks to the Notion block-children API. Authentication token, API
// version, and base URL are fixed at construction.
type Client struct {
	cfg    types.PublishConfig
	client *http.Client
}

// NewClient builds a Client, filling unset config fields with defaults.
func NewClient(cfg types.PublishConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// AppendChildren delivers blocks to the page as its new trailing children.
// Blocks are partitioned into consecutive chunks of at most 100, sent
// strictly in order: the endpoint always appends, so a later chunk may only
// go out after the previous one has landed. The first transport error or
// non-2xx response aborts the remaining chunks; chunks already appended stay
// appended. No retries — a failure is final for this call.
func (c *Client) AppendChildren(ctx context.Context, pageID string, blocks []Block) error {
	for start := 0; start < len(blocks); start += maxChunkSize {
		end := start + maxChunkSize
		if end > len(blocks) {
			end = len(blocks)
		}
		if err := c.appendChunk(ctx, pageID, blocks[start:end]); err != nil {
			return fmt.Errorf("appending chunk %d: %w", start/maxChunkSize+1, err)
		}
	}
	return nil
}

// appendChunkRequest is the request body for one append call.
type appendChunkRequest struct {
	Children []Block `json:"children"`
}

// appendChunk issues one PATCH to /blocks/{pageID}/children. Any 200-class
// status is success; everything else is failure.
func (c *Client) appendChunk(ctx context.Context, pageID string, chunk []Block) error {
	body, err := json.Marshal(appendChunkRequest{Children: chunk})
	if err != nil {
		return fmt.Errorf("marshaling children: %w", err)
	}

	url := fmt.Sprintf("%s/blocks/%s/children", c.cfg.BaseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", c.cfg.APIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("append request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d from append: %s", resp.StatusCode, string(detail))
	}
	return nil
}
