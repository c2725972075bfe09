package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort string

	DataDir       string
	DBPath        string
	ThumbnailsDir string

	QdrantURL       string
	FilesCollection string
	FacesCollection string

	ClipBaseURL    string
	FaceBaseURL    string
	ExtractBaseURL string
	APIKey         string

	ClipVectorSize int
	FaceVectorSize int

	BatchSize     int
	MaxFileSizeMB int

	ImageExtensions    map[string]bool
	DocumentExtensions map[string]bool
	VideoExtensions    map[string]bool
	ExcludedFolders    map[string]bool

	ThumbnailMaxDim int

	LogLevel  slog.Level
	LogFormat string
}

// Default extension sets. Videos are listed so the scanner can reject them
// explicitly even if a misconfigured include set would otherwise admit them.
var (
	defaultImageExtensions = []string{
		".jpg", ".jpeg", ".png", ".webp", ".bmp", ".gif",
		".tiff", ".tif", ".ico",
		".heic", ".heif", ".avif",
		".cr2", ".cr3", ".nef", ".arw", ".dng", ".orf",
		".rw2", ".raf", ".raw",
		".psd", ".tga", ".ppm", ".pgm",
		".jfif", ".jp2",
	}
	defaultDocumentExtensions = []string{
		".pdf", ".docx", ".doc", ".xlsx", ".xls",
		".pptx", ".ppt", ".txt", ".csv", ".md",
		".rtf", ".odt", ".ods", ".odp",
	}
	defaultVideoExtensions = []string{
		".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv",
		".webm", ".m4v", ".mpg", ".mpeg", ".3gp", ".3g2",
		".ts", ".mts", ".m2ts", ".vob", ".ogv", ".divx",
	}
	defaultExcludedFolders = []string{
		"$Recycle.Bin", "System Volume Information", "Windows",
		"Program Files", "Program Files (x86)", "ProgramData",
		"node_modules", ".git", "__pycache__", ".venv", "venv",
		"AppData", ".thumbnails", ".cache",
	}
)

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically; environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up to find a .env at the project root
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:         getEnv("API_PORT", "8000"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		QdrantURL:       getEnv("QDRANT_URL", "http://localhost:6333"),
		FilesCollection: getEnv("FILES_COLLECTION", "findmyfile_files"),
		FacesCollection: getEnv("FACES_COLLECTION", "findmyfile_faces"),
		ClipBaseURL:     getEnv("CLIP_BASE_URL", "http://localhost:8081"),
		FaceBaseURL:     getEnv("FACE_BASE_URL", "http://localhost:8082"),
		ExtractBaseURL:  getEnv("EXTRACT_BASE_URL", "http://localhost:8083"),
		APIKey:          getEnv("PROVIDER_API_KEY", "dummy-key"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	cfg.DBPath = getEnv("DB_PATH", filepath.Join(cfg.DataDir, "findmyfile.db"))
	cfg.ThumbnailsDir = getEnv("THUMBNAILS_DIR", filepath.Join(cfg.DataDir, "thumbnails"))

	// Vector sizes must match the embedding providers' declared dimensionality.
	// A change here (e.g. a model swap) triggers a collection reset at startup.
	cfg.ClipVectorSize, err = getEnvInt("CLIP_VECTOR_SIZE", 768)
	if err != nil {
		return nil, err
	}
	cfg.FaceVectorSize, err = getEnvInt("FACE_VECTOR_SIZE", 512)
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = getEnvInt("BATCH_SIZE", 32)
	if err != nil {
		return nil, err
	}
	cfg.MaxFileSizeMB, err = getEnvInt("MAX_FILE_SIZE_MB", 100)
	if err != nil {
		return nil, err
	}
	cfg.ThumbnailMaxDim, err = getEnvInt("THUMBNAIL_MAX_DIM", 256)
	if err != nil {
		return nil, err
	}

	if cfg.ClipVectorSize <= 0 {
		return nil, fmt.Errorf("CLIP_VECTOR_SIZE must be greater than 0")
	}
	if cfg.FaceVectorSize <= 0 {
		return nil, fmt.Errorf("FACE_VECTOR_SIZE must be greater than 0")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("BATCH_SIZE must be greater than 0")
	}

	cfg.ImageExtensions = toSet(getEnvList("IMAGE_EXTENSIONS", defaultImageExtensions))
	cfg.DocumentExtensions = toSet(getEnvList("DOCUMENT_EXTENSIONS", defaultDocumentExtensions))
	cfg.VideoExtensions = toSet(defaultVideoExtensions)
	cfg.ExcludedFolders = toSet(getEnvList("EXCLUDED_FOLDERS", defaultExcludedFolders))

	cfg.LogLevel = parseLogLevel(getEnv("LOG_LEVEL", "info"))

	// Create the data directories up front so first run doesn't fail later
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.ThumbnailsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create thumbnails directory: %w", err)
	}

	return cfg, nil
}

// MaxFileSizeBytes returns the maximum indexable file size in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

// getEnvList parses a comma-separated environment variable or returns the defaults.
func getEnvList(key string, defaults []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaults
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return defaults
	}
	return result
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
