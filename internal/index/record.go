package index

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/exif"

	"findmyfile/internal/vectorstore"
)

// Stored text is length-capped so payloads stay small; documents keep more
// because their text is the primary search signal.
const (
	documentTextCap = 2000
	imageTextCap    = 1000
)

// FileHash fingerprints a file for change detection from path, size and mtime.
// Content is deliberately not read: cheap, and good enough to catch edits.
// A content change that preserves mtime (bit rot) is not detected.
func FileHash(path string, size int64, mtime int64) string {
	raw := fmt.Sprintf("%s|%d|%d", path, size, mtime)
	return fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}

// buildRecord assembles the per-file metadata persisted alongside the
// embedding. The embedding and extracted text are filled in by the caller.
func buildRecord(path string, fileType vectorstore.FileType, now time.Time) (vectorstore.FileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return vectorstore.FileRecord{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	mtime := info.ModTime()
	return vectorstore.FileRecord{
		FileID:       vectorstore.FileID(abs),
		Filepath:     abs,
		Filename:     filepath.Base(abs),
		Folder:       filepath.Dir(abs),
		Extension:    strings.ToLower(filepath.Ext(abs)),
		FileType:     fileType,
		SizeBytes:    info.Size(),
		SizeMB:       float64(info.Size()) / (1024 * 1024),
		Created:      mtime.Format(time.RFC3339),
		Modified:     mtime.Format(time.RFC3339),
		LastModified: mtime.Unix(),
		LastIndexed:  now.Unix(),
		FileHash:     FileHash(abs, info.Size(), mtime.Unix()),
	}, nil
}

// capText truncates extracted text to the per-type storage cap. The cut backs
// up to a rune boundary: a partial UTF-8 sequence would be rejected by the
// vector store's proto string fields and fail the whole batch upsert.
func capText(text string, fileType vectorstore.FileType) string {
	limit := imageTextCap
	if fileType == vectorstore.FileTypeDocument {
		limit = documentTextCap
	}
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

// addEXIF fills the optional EXIF fields from raw image bytes. Images without
// recoverable metadata simply keep the fields empty.
func addEXIF(rec *vectorstore.FileRecord, data []byte) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}

	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if v, err := tag.StringVal(); err == nil {
			rec.DateTaken = v
		}
	}
	if rec.DateTaken == "" {
		if tag, err := x.Get(exif.DateTime); err == nil {
			if v, err := tag.StringVal(); err == nil {
				rec.DateTaken = v
			}
		}
	}

	if tag, err := x.Get(exif.Make); err == nil {
		if v, err := tag.StringVal(); err == nil {
			rec.CameraMake = strings.TrimSpace(v)
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if v, err := tag.StringVal(); err == nil {
			rec.CameraModel = strings.TrimSpace(v)
		}
	}

	if tag, err := x.Get(exif.PixelXDimension); err == nil {
		if v, err := tag.Int(0); err == nil {
			rec.ImageWidth = v
		}
	}
	if tag, err := x.Get(exif.PixelYDimension); err == nil {
		if v, err := tag.Int(0); err == nil {
			rec.ImageHeight = v
		}
	}

	// GPS stored as strings: payload schema keeps optional fields text-typed
	if lat, long, err := x.LatLong(); err == nil {
		rec.GPSLatitude = strconv.FormatFloat(lat, 'f', 6, 64)
		rec.GPSLongitude = strconv.FormatFloat(long, 'f', 6, 64)
	}
}

// buildFaceRecords converts detected faces into FaceRecords for one file.
// Detection-index ordering is preserved in the face keys.
func buildFaceRecords(rec vectorstore.FileRecord, faces []faceDetection) []vectorstore.FaceRecord {
	records := make([]vectorstore.FaceRecord, 0, len(faces))
	for i, face := range faces {
		records = append(records, vectorstore.FaceRecord{
			FaceKey:      vectorstore.FaceKey(rec.FileID, i),
			SourceFileID: rec.FileID,
			Filepath:     rec.Filepath,
			Filename:     rec.Filename,
			Box: vectorstore.Box{
				X1: face.Box[0],
				Y1: face.Box[1],
				X2: face.Box[2],
				Y2: face.Box[3],
			},
			Confidence: roundConfidence(face.Confidence),
			Embedding:  face.Embedding,
		})
	}
	return records
}

type faceDetection struct {
	Embedding  []float32
	Box        [4]int
	Confidence float64
}

func roundConfidence(c float64) float64 {
	return float64(int(c*1000+0.5)) / 1000
}
