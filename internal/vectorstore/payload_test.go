package vectorstore

import (
	"reflect"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestFileRecordPayloadRoundTrip(t *testing.T) {
	rec := FileRecord{
		FileID:       "ignored-by-payload",
		Filepath:     "/photos/sunset.jpg",
		Filename:     "sunset.jpg",
		Folder:       "/photos",
		Extension:    ".jpg",
		FileType:     FileTypeImage,
		SizeBytes:    2048,
		SizeMB:       0.002,
		Created:      "2026-08-01T10:00:00Z",
		Modified:     "2026-08-02T10:00:00Z",
		LastModified: 1754128800,
		LastIndexed:  1754215200,
		FileHash:     "deadbeef",
		OCRText:      "a beach at dusk",
		DateTaken:    "2026:08:01 19:32:00",
		CameraMake:   "Canon",
		CameraModel:  "EOS R5",
		ImageWidth:   6000,
		ImageHeight:  4000,
		GPSLatitude:  "43.7696",
		GPSLongitude: "11.2558",
	}

	got := payloadToFileRecord(qdrant.NewValueMap(fileRecordToPayload(rec)))

	// FileID travels as the point ID, not payload
	rec.FileID = ""
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, rec)
	}
}

func TestFileRecordPayloadOmitsUnsetOptionals(t *testing.T) {
	rec := FileRecord{
		Filepath: "/docs/notes.txt",
		Filename: "notes.txt",
		FileType: FileTypeDocument,
	}

	payload := fileRecordToPayload(rec)
	for _, key := range []string{"date_taken", "camera_make", "camera_model", "image_width", "image_height", "gps_latitude", "gps_longitude"} {
		if _, ok := payload[key]; ok {
			t.Errorf("payload contains %q for a record without EXIF data", key)
		}
	}

	got := payloadToFileRecord(qdrant.NewValueMap(payload))
	if got.DateTaken != "" || got.ImageWidth != 0 {
		t.Errorf("optional fields not zero after round-trip: %+v", got)
	}
}

func TestFaceRecordPayloadRoundTrip(t *testing.T) {
	rec := FaceRecord{
		FaceKey:      "abc-123_face0",
		SourceFileID: "abc-123",
		Filepath:     "/photos/group.jpg",
		Filename:     "group.jpg",
		Box:          Box{X1: 10, Y1: 20, X2: 110, Y2: 140},
		Confidence:   0.97,
	}

	got := payloadToFaceRecord(qdrant.NewValueMap(faceRecordToPayload(rec)))
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, rec)
	}
}

func TestPayloadNumericCoercion(t *testing.T) {
	// Some clients store integers back as doubles; both kinds must read
	payload := map[string]*qdrant.Value{
		"size_bytes": qdrant.NewValueDouble(2048),
		"size_mb":    qdrant.NewValueInt(2),
		"missing":    nil,
	}

	if got := payloadInt(payload, "size_bytes"); got != 2048 {
		t.Errorf("payloadInt(double) = %d, want 2048", got)
	}
	if got := payloadFloat(payload, "size_mb"); got != 2.0 {
		t.Errorf("payloadFloat(integer) = %v, want 2.0", got)
	}
	if got := payloadInt(payload, "missing"); got != 0 {
		t.Errorf("payloadInt(nil) = %d, want 0", got)
	}
	if got := payloadString(payload, "absent"); got != "" {
		t.Errorf("payloadString(absent) = %q, want empty", got)
	}
}
