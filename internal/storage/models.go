package storage

import "time"

// Settings holds the user-tunable application settings persisted in SQLite.
type Settings struct {
	IndexedFolders []string `json:"indexed_folders"`
	BatchSize      int      `json:"batch_size"`
	MaxFileSizeMB  int      `json:"max_file_size_mb"`
}

// IndexRun is one row of indexing run history, written when a job reaches a
// terminal state.
type IndexRun struct {
	ID           int       `json:"id"`
	Mode         string    `json:"mode"` // "full" or "incremental"
	Paths        string    `json:"paths"`
	State        string    `json:"state"`
	TotalFiles   int       `json:"total_files"`
	Processed    int       `json:"processed"`
	Skipped      int       `json:"skipped"`
	Failed       int       `json:"failed"`
	FacesFound   int       `json:"faces_found"`
	OCRExtracted int       `json:"ocr_extracted"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}
