package vectorstore

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestFileID(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "photos", "sunset.jpg")

	id := FileID(abs)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("FileID() = %q, not a valid UUID: %v", id, err)
	}

	// Stable across calls
	if again := FileID(abs); again != id {
		t.Errorf("FileID() not deterministic: %q vs %q", id, again)
	}

	// Relative paths resolve to the same identity as their absolute form
	wd, err := filepath.Abs(".")
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}
	rel := "notes.txt"
	if FileID(rel) != FileID(filepath.Join(wd, rel)) {
		t.Error("relative and absolute forms of the same path yield different IDs")
	}

	if FileID(abs) == FileID(abs+".bak") {
		t.Error("distinct paths yield the same ID")
	}
}

func TestFaceKey(t *testing.T) {
	key := FaceKey("abc-123", 0)
	if key != "abc-123_face0" {
		t.Errorf("FaceKey() = %q, want abc-123_face0", key)
	}

	// The point ID derived from the key is a stable UUID
	pid := facePointID(key)
	if _, err := uuid.Parse(pid); err != nil {
		t.Fatalf("facePointID() = %q, not a valid UUID: %v", pid, err)
	}
	if facePointID(key) != pid {
		t.Error("facePointID() not deterministic")
	}
	if facePointID(FaceKey("abc-123", 1)) == pid {
		t.Error("different face indexes yield the same point ID")
	}
}
