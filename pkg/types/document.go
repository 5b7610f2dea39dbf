// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractionStatus indicates the state of PDF-to-text extraction for a document.
type ExtractionStatus string

const (
	ExtractionNone   ExtractionStatus = "none"
	ExtractionDone   ExtractionStatus = "extracted"
	ExtractionFailed ExtractionStatus = "failed"
)

// Document holds metadata and file paths for a fetched document.
type Document struct {
	// ID is a slug derived from the Drive file ID.
	ID string `json:"id" yaml:"id"`

	// SourceURL is the sharing link the document was requested with.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// FileID is the Drive file identifier extracted from the sharing link.
	FileID string `json:"file_id" yaml:"file_id"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Size is the downloaded file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// FetchedAt is when the download completed.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`

	// ExtractionStatus tracks whether the PDF has been converted to text.
	ExtractionStatus ExtractionStatus `json:"extraction_status" yaml:"extraction_status"`
}

// RunStatus is the terminal outcome of one pipeline run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one row of pipeline run history.
type RunRecord struct {
	// ID is the autoincrement row ID, zero until recorded.
	ID int64 `json:"id" yaml:"id"`

	// DriveURL is the input sharing link.
	DriveURL string `json:"drive_url" yaml:"drive_url"`

	// FileID is the resolved Drive file identifier, empty if resolution failed.
	FileID string `json:"file_id" yaml:"file_id"`

	// PageID is the Notion page the run published to, empty for text-only runs.
	PageID string `json:"page_id,omitempty" yaml:"page_id,omitempty"`

	// Blocks is the number of blocks built for publishing.
	Blocks int `json:"blocks" yaml:"blocks"`

	// Status is the terminal outcome.
	Status RunStatus `json:"status" yaml:"status"`

	// Error holds the failure description for failed runs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
