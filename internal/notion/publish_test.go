// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAppender records AppendChildren calls and returns a canned error.
type fakeAppender struct {
	calls  [][]Block
	pageID string
	err    error
}

func (f *fakeAppender) AppendChildren(_ context.Context, pageID string, blocks []Block) error {
	f.pageID = pageID
	f.calls = append(f.calls, blocks)
	return f.err
}

// panicAppender simulates an unexpected fault below the orchestrator.
type panicAppender struct{}

func (panicAppender) AppendChildren(context.Context, string, []Block) error {
	panic("connection state corrupted")
}

func TestPublishMarkdownSuccess(t *testing.T) {
	appender := &fakeAppender{}
	var log bytes.Buffer
	p := NewPublisher(appender, &log)

	ok := p.PublishMarkdown(context.Background(), "page-1", "# Title\nSome text\n## Sub\n- a\n- b")
	require.True(t, ok)

	// All five blocks arrive in one appender call, in document order.
	require.Len(t, appender.calls, 1)
	assert.Equal(t, "page-1", appender.pageID)
	assert.Equal(t, []Block{
		{Kind: Heading1, Text: "Title"},
		{Kind: Paragraph, Text: "Some text"},
		{Kind: Heading2, Text: "Sub"},
		{Kind: BulletItem, Text: "a"},
		{Kind: BulletItem, Text: "b"},
	}, appender.calls[0])
}

func TestPublishMarkdownAppendFailure(t *testing.T) {
	appender := &fakeAppender{err: errors.New("HTTP 503 from append")}
	var log bytes.Buffer
	p := NewPublisher(appender, &log)

	ok := p.PublishMarkdown(context.Background(), "page-1", "# Title")
	assert.False(t, ok)
	assert.Contains(t, log.String(), "publish failed")
	assert.Contains(t, log.String(), "HTTP 503")
}

func TestPublishMarkdownRecoversPanic(t *testing.T) {
	var log bytes.Buffer
	p := NewPublisher(panicAppender{}, &log)

	ok := p.PublishMarkdown(context.Background(), "page-1", "# Title")
	assert.False(t, ok)
	assert.Contains(t, log.String(), "panic")
}

func TestPublishMarkdownTypedError(t *testing.T) {
	appendErr := errors.New("HTTP 400 from append")
	p := NewPublisher(&fakeAppender{err: appendErr}, &bytes.Buffer{})

	err := p.publishMarkdown(context.Background(), "page-1", "text")
	require.Error(t, err)

	var perr *PublishError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StageAppend, perr.Stage)
	assert.ErrorIs(t, err, appendErr)
}

// End-to-end through the real client: the orchestrator builds blocks from
// Markdown and the client delivers them in one chunk.
func TestPublishMarkdownThroughClient(t *testing.T) {
	var children int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Children []json.RawMessage `json:"children"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		children = len(body.Children)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	p := NewPublisher(testClient(ts.URL), &bytes.Buffer{})
	ok := p.PublishMarkdown(context.Background(), "page-1", "# Title\nSome text\n## Sub\n- a\n- b")
	require.True(t, ok)
	assert.Equal(t, 5, children)
}
