package vectorstore

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
)

// FileID derives the stable identity for a file from its absolute path.
// The same path always yields the same ID, and the ID is a valid UUID so it can
// double as the Qdrant point ID.
func FileID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(abs)).String()
}

// FaceKey builds the composite face identity for the nth detected face of a file.
func FaceKey(fileID string, n int) string {
	return fmt.Sprintf("%s_face%d", fileID, n)
}

// facePointID maps a composite face key onto a UUID point ID.
func facePointID(faceKey string) string {
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(faceKey)).String()
}
