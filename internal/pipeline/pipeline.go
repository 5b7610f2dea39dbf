// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline composes the fetch, extract, restructure, and publish
// stages into one run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paperdrop/internal/extract"
	"github.com/pdiddy/paperdrop/internal/notion"
	"github.com/pdiddy/paperdrop/internal/restructure"
	"github.com/pdiddy/paperdrop/pkg/types"
)

// Fetcher downloads the PDF behind a Drive sharing link. *drive.Client
// implements it.
type Fetcher interface {
	FetchDocument(ctx context.Context, rawURL string, w io.Writer) (*types.Document, bool, error)
}

// Publisher appends Markdown to a Notion page, reporting only success.
// *notion.Publisher implements it.
type Publisher interface {
	PublishMarkdown(ctx context.Context, pageID, markdown string) bool
}

// Recorder persists run records. *history.Store implements it.
type Recorder interface {
	Record(types.RunRecord) (int64, error)
}

// Pipeline holds the stage collaborators. History is optional; every other
// field is required.
type Pipeline struct {
	Fetcher    Fetcher
	Extractor  extract.Extractor
	Backend    restructure.Backend
	Publisher  Publisher
	History    Recorder
	MaxRetries int
	Out        io.Writer
}

// Result carries the outputs of one run.
type Result struct {
	Document  *types.Document
	Markdown  string
	Blocks    int
	Published bool
}

// Run executes the pipeline for one sharing link. When pageID is empty the
// publish stage is skipped and the run ends at restructured Markdown. The
// run is recorded in history regardless of outcome.
func (p *Pipeline) Run(ctx context.Context, driveURL, pageID string) (Result, error) {
	started := time.Now().UTC()
	result, err := p.run(ctx, driveURL, pageID)
	p.record(driveURL, pageID, result, started, err)
	return result, err
}

func (p *Pipeline) run(ctx context.Context, driveURL, pageID string) (Result, error) {
	var result Result

	doc, _, err := p.Fetcher.FetchDocument(ctx, driveURL, p.Out)
	if err != nil {
		return result, fmt.Errorf("fetching document: %w", err)
	}
	result.Document = doc

	fmt.Fprintf(p.Out, "extracting text: %s\n", doc.FileID)
	raw, err := p.Extractor.Extract(doc.PDFPath)
	if err != nil {
		return result, fmt.Errorf("extracting text: %w", err)
	}

	fmt.Fprintf(p.Out, "restructuring: %s\n", doc.FileID)
	markdown, err := restructure.WithRetry(ctx, p.Backend, raw, p.MaxRetries)
	if err != nil {
		return result, fmt.Errorf("restructuring text: %w", err)
	}
	result.Markdown = markdown

	if pageID == "" {
		return result, nil
	}

	result.Blocks = len(notion.BuildBlocks(markdown))
	if !p.Publisher.PublishMarkdown(ctx, pageID, markdown) {
		return result, fmt.Errorf("publishing %d block(s) to page %s failed", result.Blocks, pageID)
	}
	result.Published = true
	return result, nil
}

// record writes the run to history. Recording failures are logged, never
// surfaced: history is an observability aid, not part of the run contract.
func (p *Pipeline) record(driveURL, pageID string, result Result, started time.Time, runErr error) {
	if p.History == nil {
		return
	}

	rec := types.RunRecord{
		DriveURL:   driveURL,
		PageID:     pageID,
		Blocks:     result.Blocks,
		Status:     types.RunSucceeded,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}
	if result.Document != nil {
		rec.FileID = result.Document.FileID
	}
	if runErr != nil {
		rec.Status = types.RunFailed
		rec.Error = runErr.Error()
	}

	if _, err := p.History.Record(rec); err != nil {
		fmt.Fprintf(p.Out, "warning: could not record run history: %v\n", err)
	}
}
