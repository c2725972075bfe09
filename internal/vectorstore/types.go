package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks findmyfile/internal/vectorstore FileIndex,FaceIndex

import "context"

// FileType classifies an indexed file by its extension.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
	FileTypeOther    FileType = "other"
)

// FileRecord is the unit persisted per indexed file. One live record per FileID;
// upsert replaces in place.
type FileRecord struct {
	FileID    string
	Filepath  string
	Filename  string
	Folder    string
	Extension string
	FileType  FileType

	SizeBytes int64
	SizeMB    float64
	Created   string
	Modified  string

	// LastModified is the unix mtime captured at scan time, compared against the
	// filesystem on later runs to flag modification.
	LastModified int64
	// LastIndexed is the unix timestamp of the last successful embedding.
	LastIndexed int64
	// FileHash fingerprints path+size+mtime for cheap change detection.
	FileHash string

	// OCRText is best-effort extracted text, length-capped, empty on failure.
	OCRText string

	// EXIF-derived fields, present only for images with recoverable metadata.
	DateTaken    string
	CameraMake   string
	CameraModel  string
	ImageWidth   int
	ImageHeight  int
	GPSLatitude  string
	GPSLongitude string

	// Embedding is set on upsert and left nil on reads.
	Embedding []float32
}

// Box is a face bounding rectangle in source-image pixel space.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// FaceRecord is the unit persisted per detected face. A file owns zero or more
// faces; re-indexing a file replaces its whole face set.
type FaceRecord struct {
	// FaceKey is "{file_id}_face{n}", n being the detection index.
	FaceKey      string
	SourceFileID string
	Filepath     string
	Filename     string
	Box          Box
	Confidence   float64

	Embedding []float32
}

// Candidate is a file nearest-neighbor hit, ordered by ascending cosine distance.
type Candidate struct {
	FileID   string
	Distance float64
	Record   FileRecord
}

// FaceCandidate is a face nearest-neighbor hit, ordered by ascending cosine distance.
type FaceCandidate struct {
	FaceKey  string
	Distance float64
	Record   FaceRecord
}

// Filter restricts file queries. Zero values mean no restriction.
type Filter struct {
	FileType  string
	Extension string
	// FolderPath matches as a case-insensitive substring of the stored filepath.
	FolderPath string
}

// FileIndex is the vector similarity store for file records.
type FileIndex interface {
	// Upsert inserts or replaces records in one batch call.
	Upsert(ctx context.Context, records []FileRecord) error

	// Query returns up to k nearest neighbors by cosine distance, ascending,
	// honoring the filter. k is capped at the current record count.
	Query(ctx context.Context, vector []float32, k int, filter Filter) ([]Candidate, error)

	// Get returns the records for the given file IDs; missing IDs are omitted.
	Get(ctx context.Context, ids []string) ([]FileRecord, error)

	// GetAll returns every stored record (without embeddings).
	GetAll(ctx context.Context) ([]FileRecord, error)

	// DeleteByPaths removes records whose IDs derive from the given paths.
	// Returns the number of paths submitted for deletion.
	DeleteByPaths(ctx context.Context, paths []string) (int, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (uint64, error)

	// Reset drops and recreates the collection. Destroys all data.
	Reset(ctx context.Context) error
}

// FaceIndex is the vector similarity store for face records.
type FaceIndex interface {
	UpsertFaces(ctx context.Context, records []FaceRecord) error

	// QueryFaces returns up to k nearest face hits by cosine distance, ascending.
	QueryFaces(ctx context.Context, vector []float32, k int) ([]FaceCandidate, error)

	// DeleteBySourceFile removes every face owned by the given file.
	DeleteBySourceFile(ctx context.Context, fileID string) error

	CountFaces(ctx context.Context) (uint64, error)

	ResetFaces(ctx context.Context) error
}
