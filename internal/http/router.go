// Package http wires the API handlers into a chi router.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"findmyfile/internal/handlers"
	"findmyfile/internal/index"
	"findmyfile/internal/scanner"
	"findmyfile/internal/search"
	"findmyfile/internal/storage"
	"findmyfile/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Pipeline     *index.Pipeline
	Scanner      *scanner.Scanner
	Engine       *search.Engine
	FaceSearcher *search.FaceSearcher
	Settings     storage.SettingsStore
	Runs         storage.RunStore
	Files        vectorstore.FileIndex
	Faces        vectorstore.FaceIndex
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Add CORS middleware
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	indexHandler := handlers.NewIndexHandler(deps.Pipeline, deps.Scanner, deps.Settings, deps.Runs)
	searchHandler := handlers.NewSearchHandler(deps.Engine, deps.FaceSearcher)
	settingsHandler := handlers.NewSettingsHandler(deps.Settings, deps.Files, deps.Faces, deps.Pipeline.Jobs())
	healthHandler := handlers.NewHealthHandler(deps.Files)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/index", func(r chi.Router) {
			r.Post("/start", indexHandler.Start)
			r.Post("/incremental", indexHandler.Incremental)
			r.Get("/progress", indexHandler.Progress)
			r.Post("/cancel", indexHandler.Cancel)
			r.Post("/scan", indexHandler.Scan)
			r.Get("/runs", indexHandler.Runs)
		})

		r.Route("/search", func(r chi.Router) {
			r.Post("/", searchHandler.Search)
			r.Post("/face", searchHandler.FaceSearch)
			r.Get("/folders", searchHandler.Folders)
			r.Get("/stats", searchHandler.Stats)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Put)
			r.Post("/folders", settingsHandler.AddFolder)
			r.Delete("/folders", settingsHandler.RemoveFolder)
			r.Post("/clear-index", settingsHandler.ClearIndex)
		})

		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
