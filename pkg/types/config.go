package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperdrop/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the Drive fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DocumentsDir is the base directory for documents (contains raw/, text/, metadata/).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`

	// MaxRetries is the number of retry attempts on rate-limited downloads (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative     ExtractionBackend = "native"
	BackendMarkitdown ExtractionBackend = "markitdown"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction tool: native or markitdown.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// DocumentsDir is the base directory for documents (contains raw/, text/).
	DocumentsDir string `json:"documents_dir" yaml:"documents_dir"`
}

// RestructureConfig holds settings for the LLM restructuring stage.
type RestructureConfig struct {
	// Model is the model identifier (e.g. "google/gemini-2.0-flash-exp:free").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the OpenRouter API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the OpenRouter endpoint. Empty means the public API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PublishConfig holds settings for the Notion publish stage. Authentication
// and base-URL construction is constructor-time configuration, never ambient
// process state.
type PublishConfig struct {
	// APIKey is the Notion integration token, sent as a Bearer header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// APIVersion is the Notion-Version header value (default "2022-06-28").
	APIVersion string `json:"api_version" yaml:"api_version"`

	// BaseURL is the API root (default "https://api.notion.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout is the per-request timeout for append calls.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// HistoryDir is the directory holding the SQLite database (e.g. "history/").
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP service surface.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8000").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch       FetchConfig       `json:"fetch" yaml:"fetch"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	Restructure RestructureConfig `json:"restructure" yaml:"restructure"`
	Publish     PublishConfig     `json:"publish" yaml:"publish"`
	History     HistoryConfig     `json:"history" yaml:"history"`
	Server      ServerConfig      `json:"server" yaml:"server"`
}
