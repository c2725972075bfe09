package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"findmyfile/internal/contextutil"
	"findmyfile/internal/index"
	"findmyfile/internal/scanner"
	"findmyfile/internal/service"
	"findmyfile/internal/storage"
)

// scanResponseCap bounds the file list returned by the dry-run scan endpoint.
const scanResponseCap = 100

// IndexHandler handles HTTP requests for indexing job control.
type IndexHandler struct {
	pipeline *index.Pipeline
	scanner  *scanner.Scanner
	settings storage.SettingsStore
	runs     storage.RunStore
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(pipeline *index.Pipeline, sc *scanner.Scanner, settings storage.SettingsStore, runs storage.RunStore) *IndexHandler {
	return &IndexHandler{pipeline: pipeline, scanner: sc, settings: settings, runs: runs}
}

// StartRequest represents the payload for starting an indexing job.
// Paths defaults to the configured indexed folders when omitted.
type StartRequest struct {
	Paths []string `json:"paths,omitempty"`
}

// StartResponse acknowledges an accepted indexing job.
type StartResponse struct {
	Status string   `json:"status"`
	Mode   string   `json:"mode"`
	Paths  []string `json:"paths"`
}

// Start handles POST requests for full indexing jobs.
func (h *IndexHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, false)
}

// Incremental handles POST requests for incremental indexing jobs.
func (h *IndexHandler) Incremental(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, true)
}

func (h *IndexHandler) start(w http.ResponseWriter, r *http.Request, incremental bool) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req StartRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WarnContext(ctx, "invalid request body", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	paths := req.Paths
	if len(paths) == 0 {
		settings, err := h.settings.Get(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load settings", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load settings")
			return
		}
		paths = settings.IndexedFolders
	}
	if len(paths) == 0 {
		writeError(w, http.StatusBadRequest, "No paths given and no indexed folders configured")
		return
	}

	// Path validation happens synchronously, before the job slot is claimed
	for _, path := range paths {
		if err := validateDirectory(path); err != nil {
			logger.WarnContext(ctx, "invalid indexing path", "path", path, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.pipeline.Jobs().Start(); err != nil {
		if errors.Is(err, service.ErrJobRunning) {
			writeError(w, http.StatusConflict, "An indexing job is already running")
			return
		}
		logger.ErrorContext(ctx, "failed to start indexing job", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to start indexing job")
		return
	}

	mode := "full"
	if incremental {
		mode = "incremental"
	}
	logger.InfoContext(ctx, "indexing job started", "mode", mode, "paths", paths)

	// The job outlives the request; detach from the request context but keep
	// the request-scoped logger.
	jobCtx := contextutil.WithLogger(context.Background(), logger)
	go h.pipeline.Run(jobCtx, paths, incremental)

	writeJSON(w, http.StatusAccepted, StartResponse{Status: "started", Mode: mode, Paths: paths})
}

// ProgressResponse is the poll target for a running or finished job.
type ProgressResponse struct {
	index.Progress
	Errors []string `json:"errors,omitempty"`
}

// Progress handles GET requests for job progress.
func (h *IndexHandler) Progress(w http.ResponseWriter, r *http.Request) {
	snap := h.pipeline.Jobs().Snapshot()
	writeJSON(w, http.StatusOK, ProgressResponse{Progress: snap, Errors: snap.Errors})
}

// Cancel handles POST requests to cancel the running job.
func (h *IndexHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	jobs := h.pipeline.Jobs()
	if !jobs.Snapshot().IsRunning {
		writeError(w, http.StatusConflict, "No indexing job is running")
		return
	}

	jobs.Cancel()
	contextutil.LoggerFromContext(r.Context()).InfoContext(r.Context(), "indexing job cancellation requested")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelling"})
}

// ScanRequest represents the payload for a dry-run scan.
type ScanRequest struct {
	Paths []string `json:"paths"`
}

// ScanResult lists what a scan of one path would index.
type ScanResult struct {
	Path       string   `json:"path"`
	TotalFiles int      `json:"total_files"`
	Files      []string `json:"files"`
	Truncated  bool     `json:"truncated,omitempty"`
}

// ScanResponse aggregates dry-run results per requested path.
type ScanResponse struct {
	TotalFiles int          `json:"total_files"`
	Results    []ScanResult `json:"results"`
}

// Scan handles POST requests for a dry-run scan of directories.
func (h *IndexHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Paths) == 0 {
		writeError(w, http.StatusBadRequest, "No paths given")
		return
	}
	for _, path := range req.Paths {
		if err := validateDirectory(path); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	resp := ScanResponse{Results: make([]ScanResult, 0, len(req.Paths))}
	for _, path := range req.Paths {
		files, err := h.scanner.Scan(ctx, path)
		if err != nil {
			logger.ErrorContext(ctx, "scan failed", "path", path, "error", err)
			writeError(w, http.StatusInternalServerError, "Scan failed")
			return
		}
		result := ScanResult{Path: path, TotalFiles: len(files), Files: files}
		if len(files) > scanResponseCap {
			result.Files = files[:scanResponseCap]
			result.Truncated = true
		}
		resp.TotalFiles += result.TotalFiles
		resp.Results = append(resp.Results, result)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Runs handles GET requests for indexing run history.
func (h *IndexHandler) Runs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.List(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list index runs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list indexing runs")
		return
	}
	if runs == nil {
		runs = []storage.IndexRun{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// validateDirectory rejects paths that do not exist or are not directories.
func validateDirectory(path string) error {
	if path == "" {
		return &service.PathError{Path: path, Message: "path must not be empty"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &service.PathError{Path: path, Message: fmt.Sprintf("path does not exist: %s", path)}
	}
	if !info.IsDir() {
		return &service.PathError{Path: path, Message: fmt.Sprintf("path is not a directory: %s", path)}
	}
	return nil
}
