// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/paperdrop/internal/drive"
	"github.com/pdiddy/paperdrop/internal/pipeline"
)

// Runner executes one pipeline run. *pipeline.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, driveURL, pageID string) (pipeline.Result, error)
}

// Server handles the HTTP surface of the conversion pipeline.
type Server struct {
	runner Runner
	logger *slog.Logger
}

// New builds a Server around a pipeline runner.
func New(runner Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router returns the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Post("/convert-from-url", s.handleConvert)
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Google Drive to Markdown Converter API",
		"usage":   "POST a Google Drive URL to /convert-from-url endpoint",
	})
}

// convertRequest is the body of POST /convert-from-url. PageID is optional;
// when present the restructured Markdown is also published to that Notion
// page.
type convertRequest struct {
	URL    string `json:"url"`
	PageID string `json:"page_id,omitempty"`
}

// convertResponse mirrors the upstream service's response shape.
type convertResponse struct {
	TextContent string `json:"text_content"`
	Status      string `json:"status"`
	Blocks      int    `json:"blocks,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Reject unusable links before starting any downloads.
	if _, err := drive.ExtractFileID(req.URL); err != nil {
		s.logger.Warn("rejected conversion request", "url", req.URL, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("conversion requested", "url", req.URL, "page_id", req.PageID)

	result, err := s.runner.Run(r.Context(), req.URL, req.PageID)
	if err != nil {
		s.logger.Error("conversion failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		TextContent: result.Markdown,
		Status:      "success",
		Blocks:      result.Blocks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
