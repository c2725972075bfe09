package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks findmyfile/internal/storage RunStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunStore defines the interface for indexing run history.
type RunStore interface {
	// Insert records one finished indexing run.
	Insert(ctx context.Context, run IndexRun) error
	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]IndexRun, error)
}

// RunRepo provides methods for indexing run history.
// It implements the RunStore interface.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Insert records one finished indexing run.
func (r *RunRepo) Insert(ctx context.Context, run IndexRun) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO index_runs
			(mode, paths, state, total_files, processed, skipped, failed, faces_found, ocr_extracted, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Mode, run.Paths, run.State,
		run.TotalFiles, run.Processed, run.Skipped, run.Failed,
		run.FacesFound, run.OCRExtracted,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert index run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *RunRepo) List(ctx context.Context, limit int) ([]IndexRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, mode, paths, state, total_files, processed, skipped, failed, faces_found, ocr_extracted, started_at, finished_at
		 FROM index_runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query index runs: %w", err)
	}
	defer rows.Close()

	var runs []IndexRun
	for rows.Next() {
		var run IndexRun
		var startedStr, finishedStr string
		if err := rows.Scan(
			&run.ID, &run.Mode, &run.Paths, &run.State,
			&run.TotalFiles, &run.Processed, &run.Skipped, &run.Failed,
			&run.FacesFound, &run.OCRExtracted,
			&startedStr, &finishedStr,
		); err != nil {
			return nil, err
		}

		run.StartedAt, err = parseStoredTime(startedStr)
		if err != nil {
			return nil, err
		}
		run.FinishedAt, err = parseStoredTime(finishedStr)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func parseStoredTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	// SQLite might use its default DATETIME format
	return time.Parse("2006-01-02 15:04:05", value)
}
