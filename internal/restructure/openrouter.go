// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package restructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paperdrop/pkg/types"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "google/gemini-2.0-flash-exp:free"

	// openRouterBase is the public OpenRouter API root.
	openRouterBase = "https://openrouter.ai/api"

	// chatTimeout is generous because free-tier models can be slow on
	// long documents.
	chatTimeout = 120 * time.Second
)

// OpenRouterBackend calls the OpenRouter chat-completions API (OpenAI
// compatible) to restructure raw text.
type OpenRouterBackend struct {
	cfg    types.RestructureConfig
	client *http.Client
}

// NewOpenRouterBackend builds a backend, filling unset config fields with
// defaults.
func NewOpenRouterBackend(cfg types.RestructureConfig) *OpenRouterBackend {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterBase
	}
	return &OpenRouterBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: chatTimeout},
	}
}

// chat-completions wire structures.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Restructure sends the raw text with the restructure prompt and returns the
// model's Markdown. It fails on non-200 responses, missing choices, and
// empty content.
func (o *OpenRouterBackend) Restructure(ctx context.Context, rawText string) (string, error) {
	prompt, err := renderPrompt(rawText)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model:    o.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := o.cfg.BaseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling OpenRouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OpenRouter returned %d: %s", resp.StatusCode, string(detail))
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding OpenRouter response: %w", err)
	}

	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("OpenRouter returned no choices")
	}

	content := strings.TrimSpace(cr.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("OpenRouter returned empty content")
	}
	return content, nil
}
