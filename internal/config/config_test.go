package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func loadForTest(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)

	cfg := loadForTest(t)

	if cfg.APIPort != "8000" {
		t.Errorf("APIPort = %q, want 8000", cfg.APIPort)
	}
	if cfg.BatchSize != 32 || cfg.MaxFileSizeMB != 100 {
		t.Errorf("BatchSize/MaxFileSizeMB = %d/%d, want 32/100", cfg.BatchSize, cfg.MaxFileSizeMB)
	}
	if cfg.ClipVectorSize != 768 || cfg.FaceVectorSize != 512 {
		t.Errorf("vector sizes = %d/%d, want 768/512", cfg.ClipVectorSize, cfg.FaceVectorSize)
	}
	if cfg.DBPath != filepath.Join(dataDir, "findmyfile.db") {
		t.Errorf("DBPath = %q, want under the data dir", cfg.DBPath)
	}
	if !cfg.ImageExtensions[".jpg"] || !cfg.DocumentExtensions[".pdf"] || !cfg.VideoExtensions[".mp4"] {
		t.Error("default extension sets incomplete")
	}
	if !cfg.ExcludedFolders["node_modules"] {
		t.Error("default excluded folders incomplete")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}

	// Data directories are created up front
	if _, err := os.Stat(cfg.ThumbnailsDir); err != nil {
		t.Errorf("thumbnails dir not created: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("API_PORT", "9090")
	t.Setenv("BATCH_SIZE", "8")
	t.Setenv("IMAGE_EXTENSIONS", ".JPG, .png")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := loadForTest(t)

	if cfg.APIPort != "9090" {
		t.Errorf("APIPort = %q, want 9090", cfg.APIPort)
	}
	if cfg.BatchSize != 8 {
		t.Errorf("BatchSize = %d, want 8", cfg.BatchSize)
	}
	// Extension sets are lowercased
	if !cfg.ImageExtensions[".jpg"] || !cfg.ImageExtensions[".png"] || len(cfg.ImageExtensions) != 2 {
		t.Errorf("ImageExtensions = %v, want {.jpg .png}", cfg.ImageExtensions)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("BATCH_SIZE", "lots")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for a non-integer BATCH_SIZE")
	}
}

func TestLoad_RejectsNonPositiveBatchSize(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("BATCH_SIZE", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for BATCH_SIZE=0")
	}
}
