// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"context"
	"fmt"
	"io"
)

// Publish stages, used by PublishError to say where a conversion failed.
const (
	StageBuild  = "build"
	StageAppend = "append"
)

// PublishError carries the stage and cause of a failed conversion. It never
// crosses the public boundary — PublishMarkdown collapses it to false — but
// the internal path keeps it typed so tests can assert on why a run failed
// instead of scraping log output.
type PublishError struct {
	Stage string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.Stage, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Appender delivers an ordered block sequence to a page. *Client implements
// it; tests substitute fakes.
type Appender interface {
	AppendChildren(ctx context.Context, pageID string, blocks []Block) error
}

// Publisher is the conversion orchestrator: it turns a Markdown document
// into blocks and appends them to a Notion page, reporting only a boolean
// outcome to callers.
type Publisher struct {
	appender Appender
	out      io.Writer
}

// NewPublisher builds a Publisher that logs failures to out.
func NewPublisher(appender Appender, out io.Writer) *Publisher {
	return &Publisher{appender: appender, out: out}
}

// PublishMarkdown converts markdown into blocks and appends them to pageID.
// Best-effort contract: every failure, including a panic below the
// orchestrator, is logged and surfaced as false; it never propagates to the
// caller.
func (p *Publisher) PublishMarkdown(ctx context.Context, pageID, markdown string) bool {
	if err := p.publishMarkdown(ctx, pageID, markdown); err != nil {
		fmt.Fprintf(p.out, "publish failed for page %s: %v\n", pageID, err)
		return false
	}
	return true
}

// publishMarkdown is the typed-error core behind PublishMarkdown.
func (p *Publisher) publishMarkdown(ctx context.Context, pageID, markdown string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PublishError{Stage: StageBuild, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	blocks := BuildBlocks(markdown)
	fmt.Fprintf(p.out, "publishing %d block(s) to page %s\n", len(blocks), pageID)

	if err := p.appender.AppendChildren(ctx, pageID, blocks); err != nil {
		return &PublishError{Stage: StageAppend, Err: err}
	}
	return nil
}
