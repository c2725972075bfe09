package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"findmyfile/internal/contextutil"
	"findmyfile/internal/search"
	"findmyfile/internal/service"
)

// maxReferenceImageBytes bounds the multipart reference image upload.
const maxReferenceImageBytes = 20 << 20

// SearchHandler handles HTTP requests for text and face search.
type SearchHandler struct {
	engine       *search.Engine
	faceSearcher *search.FaceSearcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(engine *search.Engine, faceSearcher *search.FaceSearcher) *SearchHandler {
	return &SearchHandler{engine: engine, faceSearcher: faceSearcher}
}

// SearchResponse wraps ranked search results.
type SearchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
}

// Search handles POST requests for ranked text search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req search.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	results, err := h.engine.Search(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.ErrorContext(ctx, "search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	if results == nil {
		results = []search.Result{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Query: req.Query, Count: len(results), Results: results})
}

// FaceSearchResponse wraps one-per-file face matches.
type FaceSearchResponse struct {
	Count   int                 `json:"count"`
	Results []search.FaceResult `json:"results"`
}

// FaceSearch handles POST requests for reference-image face search. The
// reference image is uploaded as the multipart field "image"; folder_path,
// limit and min_similarity are optional form fields.
func (h *SearchHandler) FaceSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(maxReferenceImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing image field")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(io.LimitReader(file, maxReferenceImageBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read image")
		return
	}

	req := search.FaceRequest{FolderPath: r.FormValue("folder_path")}
	if raw := r.FormValue("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit field")
			return
		}
	}
	if raw := r.FormValue("min_similarity"); raw != "" {
		minSim, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid min_similarity field")
			return
		}
		req.MinSimilarity = &minSim
	}

	results, err := h.faceSearcher.Search(ctx, imageData, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFaceFound):
			writeError(w, http.StatusBadRequest, "No face detected in the reference image")
		case errors.Is(err, service.ErrExternalService):
			logger.ErrorContext(ctx, "face service error", "error", err)
			writeError(w, http.StatusBadGateway, "Face detection service unavailable")
		default:
			logger.ErrorContext(ctx, "face search failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Face search failed")
		}
		return
	}
	if results == nil {
		results = []search.FaceResult{}
	}

	writeJSON(w, http.StatusOK, FaceSearchResponse{Count: len(results), Results: results})
}

// Folders handles GET requests for the distinct indexed folder list.
func (h *SearchHandler) Folders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	folders, err := h.engine.Folders(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list folders", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list folders")
		return
	}
	if folders == nil {
		folders = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": folders})
}

// Stats handles GET requests for index statistics.
func (h *SearchHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.engine.Stats(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to compute stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute index statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
