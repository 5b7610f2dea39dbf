// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperdrop/internal/pipeline"
)

type fakeRunner struct {
	result  pipeline.Result
	err     error
	gotURL  string
	gotPage string
}

func (f *fakeRunner) Run(_ context.Context, driveURL, pageID string) (pipeline.Result, error) {
	f.gotURL = driveURL
	f.gotPage = pageID
	return f.result, f.err
}

func postConvert(t *testing.T, runner Runner, body string) *httptest.ResponseRecorder {
	t.Helper()
	srv := New(runner, nil)
	req := httptest.NewRequest(http.MethodPost, "/convert-from-url", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	return rr
}

func TestHandleConvert(t *testing.T) {
	runner := &fakeRunner{result: pipeline.Result{Markdown: "# Abstract\ntext", Blocks: 2, Published: true}}

	rr := postConvert(t, runner, `{"url":"https://drive.google.com/file/d/file123/view","page_id":"page-1"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		TextContent string `json:"text_content"`
		Status      string `json:"status"`
		Blocks      int    `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "# Abstract\ntext", resp.TextContent)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 2, resp.Blocks)

	assert.Equal(t, "https://drive.google.com/file/d/file123/view", runner.gotURL)
	assert.Equal(t, "page-1", runner.gotPage)
}

func TestHandleConvertBadURL(t *testing.T) {
	runner := &fakeRunner{}

	rr := postConvert(t, runner, `{"url":"https://example.com/nothing-here"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "detail")
	assert.Empty(t, runner.gotURL)
}

func TestHandleConvertInvalidJSON(t *testing.T) {
	rr := postConvert(t, &fakeRunner{}, `{"url":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleConvertPipelineFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("fetching document: HTTP 404")}

	rr := postConvert(t, runner, `{"url":"file123"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "HTTP 404")
}

func TestHandleRoot(t *testing.T) {
	srv := New(&fakeRunner{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "convert-from-url")
}
