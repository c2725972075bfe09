package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_settings_store.go -package=mocks findmyfile/internal/storage SettingsStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

const (
	keyIndexedFolders = "indexed_folders"
	keyBatchSize      = "batch_size"
	keyMaxFileSizeMB  = "max_file_size_mb"
)

// SettingsStore defines the interface for settings persistence.
type SettingsStore interface {
	// Get returns the stored settings, filling missing keys with the defaults
	// the store was constructed with.
	Get(ctx context.Context) (Settings, error)
	// Put replaces the stored settings.
	Put(ctx context.Context, settings Settings) error
	// AddFolder adds a folder to the indexed set and returns the updated settings.
	AddFolder(ctx context.Context, path string) (Settings, error)
	// RemoveFolder removes a folder from the indexed set and returns the updated settings.
	RemoveFolder(ctx context.Context, path string) (Settings, error)
}

// SettingsRepo stores settings as key/value rows.
// It implements the SettingsStore interface.
type SettingsRepo struct {
	db       *sql.DB
	defaults Settings
}

// NewSettingsRepo creates a new SettingsRepo. The defaults fill in any key
// never written by the user.
func NewSettingsRepo(db *sql.DB, defaults Settings) *SettingsRepo {
	return &SettingsRepo{db: db, defaults: defaults}
}

// Get returns the stored settings merged over the defaults.
func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	settings := r.defaults
	if settings.IndexedFolders == nil {
		settings.IndexedFolders = []string{}
	}

	rows, err := r.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}

		switch key {
		case keyIndexedFolders:
			var folders []string
			if err := json.Unmarshal([]byte(value), &folders); err != nil {
				return Settings{}, fmt.Errorf("corrupt %s value: %w", key, err)
			}
			settings.IndexedFolders = folders
		case keyBatchSize:
			if _, err := fmt.Sscanf(value, "%d", &settings.BatchSize); err != nil {
				return Settings{}, fmt.Errorf("corrupt %s value: %w", key, err)
			}
		case keyMaxFileSizeMB:
			if _, err := fmt.Sscanf(value, "%d", &settings.MaxFileSizeMB); err != nil {
				return Settings{}, fmt.Errorf("corrupt %s value: %w", key, err)
			}
		}
	}

	if err := rows.Err(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Put replaces the stored settings.
func (r *SettingsRepo) Put(ctx context.Context, settings Settings) error {
	folders, err := json.Marshal(settings.IndexedFolders)
	if err != nil {
		return err
	}

	values := map[string]string{
		keyIndexedFolders: string(folders),
		keyBatchSize:      fmt.Sprintf("%d", settings.BatchSize),
		keyMaxFileSizeMB:  fmt.Sprintf("%d", settings.MaxFileSizeMB),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("failed to store setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// AddFolder adds a folder to the indexed set. Adding an already-present folder
// is a no-op.
func (r *SettingsRepo) AddFolder(ctx context.Context, path string) (Settings, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	for _, folder := range settings.IndexedFolders {
		if folder == path {
			return settings, nil
		}
	}

	settings.IndexedFolders = append(settings.IndexedFolders, path)
	sort.Strings(settings.IndexedFolders)

	if err := r.Put(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// RemoveFolder removes a folder from the indexed set.
// Returns ErrNotFound if the folder is not in the set.
func (r *SettingsRepo) RemoveFolder(ctx context.Context, path string) (Settings, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	kept := settings.IndexedFolders[:0]
	found := false
	for _, folder := range settings.IndexedFolders {
		if folder == path {
			found = true
			continue
		}
		kept = append(kept, folder)
	}
	if !found {
		return Settings{}, ErrNotFound
	}

	settings.IndexedFolders = kept
	if err := r.Put(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
