package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"findmyfile/internal/contextutil"
	"findmyfile/internal/index"
	"findmyfile/internal/storage"
	"findmyfile/internal/vectorstore"
)

// SettingsHandler handles HTTP requests for application settings and index
// maintenance.
type SettingsHandler struct {
	settings storage.SettingsStore
	files    vectorstore.FileIndex
	faces    vectorstore.FaceIndex
	jobs     *index.JobManager
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings storage.SettingsStore, files vectorstore.FileIndex, faces vectorstore.FaceIndex, jobs *index.JobManager) *SettingsHandler {
	return &SettingsHandler{settings: settings, files: files, faces: faces, jobs: jobs}
}

// Get handles GET requests for the current settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings, err := h.settings.Get(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Put handles PUT requests replacing the settings.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var settings storage.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if settings.BatchSize <= 0 {
		writeError(w, http.StatusBadRequest, "batch_size must be positive")
		return
	}
	if settings.MaxFileSizeMB <= 0 {
		writeError(w, http.StatusBadRequest, "max_file_size_mb must be positive")
		return
	}
	for _, folder := range settings.IndexedFolders {
		if err := validateDirectory(folder); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.settings.Put(ctx, settings); err != nil {
		logger.ErrorContext(ctx, "failed to store settings", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// FolderRequest names one indexed folder.
type FolderRequest struct {
	Path string `json:"path"`
}

// AddFolder handles POST requests adding a folder to the indexed set.
func (h *SettingsHandler) AddFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateDirectory(req.Path); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := h.settings.AddFolder(ctx, req.Path)
	if err != nil {
		logger.ErrorContext(ctx, "failed to add folder", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to add folder")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// RemoveFolder handles DELETE requests removing a folder from the indexed set.
func (h *SettingsHandler) RemoveFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.settings.RemoveFolder(ctx, req.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Folder is not in the indexed set")
			return
		}
		logger.ErrorContext(ctx, "failed to remove folder", "path", req.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to remove folder")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ClearIndex handles POST requests wiping both vector collections.
// Rejected while an indexing job is running.
func (h *SettingsHandler) ClearIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.jobs.Snapshot().IsRunning {
		writeError(w, http.StatusConflict, "Cannot clear the index while an indexing job is running")
		return
	}

	if err := h.files.Reset(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to reset file index", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear the index")
		return
	}
	if err := h.faces.ResetFaces(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to reset face index", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear the face index")
		return
	}

	logger.InfoContext(ctx, "index cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
