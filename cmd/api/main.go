package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"findmyfile/internal/ai"
	"findmyfile/internal/config"
	"findmyfile/internal/extract"
	"findmyfile/internal/http"
	"findmyfile/internal/index"
	"findmyfile/internal/scanner"
	"findmyfile/internal/search"
	"findmyfile/internal/storage"
	"findmyfile/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(cfg.ThumbnailsDir, 0o755); err != nil {
		log.Fatalf("Failed to create thumbnails directory: %v", err)
	}

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	settingsRepo := storage.NewSettingsRepo(db, storage.Settings{
		BatchSize:     cfg.BatchSize,
		MaxFileSizeMB: cfg.MaxFileSizeMB,
	})
	runRepo := storage.NewRunRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.FilesCollection, cfg.FacesCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collections exist with the current provider dimensionalities.
	// A dimensionality mismatch resets the affected collection.
	if err := store.EnsureCollections(ctx, cfg.ClipVectorSize, cfg.FaceVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collections: %v", err)
	}
	slog.Info("Qdrant collections ready",
		"files", cfg.FilesCollection, "faces", cfg.FacesCollection,
		"clip_vector_size", cfg.ClipVectorSize, "face_vector_size", cfg.FaceVectorSize)

	// External model services
	clipClient := ai.NewClipClient(cfg.ClipBaseURL, cfg.APIKey, cfg.ClipVectorSize)
	faceClient := ai.NewFaceClient(cfg.FaceBaseURL, cfg.APIKey, cfg.FaceVectorSize)
	extractor := extract.NewSidecarExtractor(cfg.ExtractBaseURL, cfg.APIKey)

	// Scanner and settings-aware tuning
	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	fileScanner := scanner.New(
		cfg.ImageExtensions,
		cfg.DocumentExtensions,
		cfg.VideoExtensions,
		cfg.ExcludedFolders,
		int64(settings.MaxFileSizeMB)<<20,
	)

	// Indexing pipeline
	jobs := index.NewJobManager()
	thumbs := index.NewThumbnailer(cfg.ThumbnailsDir, cfg.ThumbnailMaxDim)
	pipeline := index.NewPipeline(
		fileScanner,
		store,
		store,
		clipClient,
		faceClient,
		extractor,
		jobs,
		runRepo,
		thumbs,
		settings.BatchSize,
	)

	// Search engines
	engine := search.NewEngine(store, store, clipClient)
	faceSearcher := search.NewFaceSearcher(store, faceClient)
	slog.Info("Search engine initialized")

	// Create router with dependencies
	deps := &http.Deps{
		Pipeline:     pipeline,
		Scanner:      fileScanner,
		Engine:       engine,
		FaceSearcher: faceSearcher,
		Settings:     settingsRepo,
		Runs:         runRepo,
		Files:        store,
		Faces:        store,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
