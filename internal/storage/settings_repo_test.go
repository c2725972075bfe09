package storage

import (
	"context"
	"errors"
	"testing"
)

func testDB(t *testing.T) *SettingsRepo {
	t.Helper()
	tmpDir := t.TempDir()

	db, err := New(tmpDir + "/test.db")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewSettingsRepo(db, Settings{BatchSize: 32, MaxFileSizeMB: 100})
}

func TestSettingsRepo_GetDefaults(t *testing.T) {
	repo := testDB(t)

	settings, err := repo.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.BatchSize != 32 || settings.MaxFileSizeMB != 100 {
		t.Errorf("Get() = %+v, want defaults 32/100", settings)
	}
	if settings.IndexedFolders == nil || len(settings.IndexedFolders) != 0 {
		t.Errorf("IndexedFolders = %v, want empty non-nil slice", settings.IndexedFolders)
	}
}

func TestSettingsRepo_PutRoundtrip(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	want := Settings{
		IndexedFolders: []string{"/photos", "/docs"},
		BatchSize:      16,
		MaxFileSizeMB:  50,
	}
	if err := repo.Put(ctx, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.BatchSize != 16 || got.MaxFileSizeMB != 50 {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if len(got.IndexedFolders) != 2 || got.IndexedFolders[0] != "/photos" {
		t.Errorf("IndexedFolders = %v, want %v", got.IndexedFolders, want.IndexedFolders)
	}

	// Put is a replace, not a merge
	want.BatchSize = 64
	if err := repo.Put(ctx, want); err != nil {
		t.Fatalf("second Put() error = %v", err)
	}
	got, err = repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.BatchSize != 64 {
		t.Errorf("BatchSize = %d, want 64 after update", got.BatchSize)
	}
}

func TestSettingsRepo_AddFolder(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	settings, err := repo.AddFolder(ctx, "/photos")
	if err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}
	if len(settings.IndexedFolders) != 1 {
		t.Errorf("IndexedFolders = %v, want [/photos]", settings.IndexedFolders)
	}

	// Adding the same folder again is a no-op
	settings, err = repo.AddFolder(ctx, "/photos")
	if err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}
	if len(settings.IndexedFolders) != 1 {
		t.Errorf("IndexedFolders = %v, want no duplicate", settings.IndexedFolders)
	}

	settings, err = repo.AddFolder(ctx, "/docs")
	if err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}
	if len(settings.IndexedFolders) != 2 || settings.IndexedFolders[0] != "/docs" {
		t.Errorf("IndexedFolders = %v, want sorted [/docs /photos]", settings.IndexedFolders)
	}
}

func TestSettingsRepo_RemoveFolder(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	if _, err := repo.AddFolder(ctx, "/photos"); err != nil {
		t.Fatalf("AddFolder() error = %v", err)
	}

	settings, err := repo.RemoveFolder(ctx, "/photos")
	if err != nil {
		t.Fatalf("RemoveFolder() error = %v", err)
	}
	if len(settings.IndexedFolders) != 0 {
		t.Errorf("IndexedFolders = %v, want empty", settings.IndexedFolders)
	}

	if _, err := repo.RemoveFolder(ctx, "/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveFolder(missing) error = %v, want ErrNotFound", err)
	}
}
