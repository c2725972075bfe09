package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"findmyfile/internal/contextutil"
)

// scrollPageSize bounds one GetAll page.
const scrollPageSize = 1000

// QdrantStore implements FileIndex and FaceIndex on two Qdrant collections
// (cosine metric). It is the only place that touches loosely-typed payload maps;
// everything above it works with FileRecord/FaceRecord.
type QdrantStore struct {
	client          *qdrant.Client
	filesCollection string
	facesCollection string
}

// NewQdrantStore creates a new Qdrant store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port (typically 6334) will be derived from the HTTP port.
func NewQdrantStore(urlStr, filesCollection, facesCollection string) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client:          client,
		filesCollection: filesCollection,
		facesCollection: facesCollection,
	}, nil
}

// EnsureCollections verifies both collections exist with the expected vector
// sizes. A dimensionality mismatch (stale model) resets the affected collection:
// mixed-dimension vectors are not comparable, so the data loss is accepted and
// logged rather than silently producing corrupt search results.
func (s *QdrantStore) EnsureCollections(ctx context.Context, fileDim, faceDim int) error {
	if err := s.ensureCollection(ctx, s.filesCollection, fileDim); err != nil {
		return err
	}
	return s.ensureCollection(ctx, s.facesCollection, faceDim)
}

func (s *QdrantStore) ensureCollection(ctx context.Context, collection string, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if exists {
		actualSize, err := s.collectionVectorSize(ctx, collection)
		if err != nil {
			return err
		}
		if actualSize == vectorSize {
			logger.InfoContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
			return nil
		}
		logger.WarnContext(ctx, "vector size mismatch, resetting collection",
			"collection", collection, "stored_size", actualSize, "expected_size", vectorSize)
		if err := s.client.DeleteCollection(ctx, collection); err != nil {
			return fmt.Errorf("failed to drop mismatched collection: %w", err)
		}
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	logger.InfoContext(ctx, "collection created", "collection", collection, "vector_size", vectorSize)
	return nil
}

func (s *QdrantStore) collectionVectorSize(ctx context.Context, collection string) (int, error) {
	info, err := s.client.GetCollectionInfo(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection info: %w", err)
	}
	config := info.Config
	if config == nil || config.Params == nil {
		return 0, fmt.Errorf("collection config is invalid")
	}
	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return 0, fmt.Errorf("collection vectors config is invalid")
	}
	params := vectorsConfig.GetParams()
	if params == nil {
		return 0, fmt.Errorf("collection vector params are invalid")
	}
	return int(params.Size), nil
}

// Upsert inserts or replaces file records in one batch call.
func (s *QdrantStore) Upsert(ctx context.Context, records []FileRecord) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, rec := range records {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(rec.FileID),
			Vectors: qdrant.NewVectors(rec.Embedding...),
			Payload: qdrant.NewValueMap(fileRecordToPayload(rec)),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.filesCollection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert file records", "count", len(records), "error", err)
		return fmt.Errorf("failed to upsert file records: %w", err)
	}

	logger.DebugContext(ctx, "upserted file records", "count", len(records))
	return nil
}

// Query returns up to k nearest neighbors by ascending cosine distance.
// Qdrant reports cosine similarity; the adapter converts it to distance
// (d = 1 - s, range [0,2]) so callers see the contract's metric.
func (s *QdrantStore) Query(ctx context.Context, vector []float32, k int, filter Filter) ([]Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	// Cap k at the record count to avoid provider errors on small stores.
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	if uint64(k) > count {
		k = int(count)
	}

	limit := uint64(k)
	req := &qdrant.QueryPoints{
		CollectionName: s.filesCollection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}

	var must []*qdrant.Condition
	if filter.FileType != "" {
		must = append(must, qdrant.NewMatch("file_type", filter.FileType))
	}
	if filter.Extension != "" {
		must = append(must, qdrant.NewMatch("extension", strings.ToLower(filter.Extension)))
	}
	if len(must) > 0 {
		req.Filter = &qdrant.Filter{Must: must}
	}

	scored, err := s.client.Query(ctx, req)
	if err != nil {
		logger.ErrorContext(ctx, "failed to query file records", "k", k, "error", err)
		return nil, fmt.Errorf("failed to query file records: %w", err)
	}

	candidates := make([]Candidate, 0, len(scored))
	for _, point := range scored {
		rec := payloadToFileRecord(point.Payload)
		if point.Id != nil {
			rec.FileID = point.Id.GetUuid()
		}
		// Folder scoping is a substring predicate, which Qdrant's token-based
		// text match cannot express; applied here at the adapter edge instead.
		if filter.FolderPath != "" &&
			!strings.Contains(strings.ToLower(rec.Filepath), strings.ToLower(filter.FolderPath)) {
			continue
		}
		candidates = append(candidates, Candidate{
			FileID:   rec.FileID,
			Distance: 1 - float64(point.Score),
			Record:   rec,
		})
	}

	logger.DebugContext(ctx, "file query completed", "k", k, "results", len(candidates))
	return candidates, nil
}

// Get returns the records for the given file IDs; missing IDs are omitted.
func (s *QdrantStore) Get(ctx context.Context, ids []string) ([]FileRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, qdrant.NewID(id))
	}

	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.filesCollection,
		Ids:            pointIDs,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get file records: %w", err)
	}

	records := make([]FileRecord, 0, len(points))
	for _, point := range points {
		rec := payloadToFileRecord(point.Payload)
		if point.Id != nil {
			rec.FileID = point.Id.GetUuid()
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetAll scrolls the whole files collection and returns every record.
func (s *QdrantStore) GetAll(ctx context.Context) ([]FileRecord, error) {
	return s.scrollAll(ctx, s.filesCollection, func(point *qdrant.RetrievedPoint) FileRecord {
		rec := payloadToFileRecord(point.Payload)
		if point.Id != nil {
			rec.FileID = point.Id.GetUuid()
		}
		return rec
	})
}

func scrollCollection[T any](ctx context.Context, client *qdrant.Client, collection string, convert func(*qdrant.RetrievedPoint) (string, T)) ([]T, error) {
	var out []T
	seen := make(map[string]bool)
	var offset *qdrant.PointId

	for {
		limit := uint32(scrollPageSize)
		points, err := client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: collection,
			Limit:          &limit,
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scroll collection %s: %w", collection, err)
		}
		if len(points) == 0 {
			break
		}

		added := 0
		for _, point := range points {
			id, rec := convert(point)
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, rec)
			added++
		}

		// The high-level client does not expose the next-page offset, so resume
		// from the last point ID and drop the duplicate on the next page.
		offset = points[len(points)-1].Id
		if len(points) < scrollPageSize || added == 0 {
			break
		}
	}
	return out, nil
}

func (s *QdrantStore) scrollAll(ctx context.Context, collection string, convert func(*qdrant.RetrievedPoint) FileRecord) ([]FileRecord, error) {
	return scrollCollection(ctx, s.client, collection, func(point *qdrant.RetrievedPoint) (string, FileRecord) {
		rec := convert(point)
		return rec.FileID, rec
	})
}

// DeleteByPaths removes records whose IDs derive from the given paths.
func (s *QdrantStore) DeleteByPaths(ctx context.Context, paths []string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(paths) == 0 {
		return 0, nil
	}

	ids := make([]*qdrant.PointId, 0, len(paths))
	for _, path := range paths {
		ids = append(ids, qdrant.NewID(FileID(path)))
	}

	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.filesCollection,
		Points:         qdrant.NewPointsSelector(ids...),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to delete file records", "count", len(paths), "error", err)
		return 0, fmt.Errorf("failed to delete file records: %w", err)
	}

	logger.InfoContext(ctx, "deleted file records", "count", len(paths))
	return len(paths), nil
}

// Count returns the number of stored file records.
func (s *QdrantStore) Count(ctx context.Context) (uint64, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.filesCollection,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count file records: %w", err)
	}
	return count, nil
}

// Reset drops and recreates the files collection. Destroys all data.
func (s *QdrantStore) Reset(ctx context.Context) error {
	size, err := s.collectionVectorSize(ctx, s.filesCollection)
	if err != nil {
		return err
	}
	if err := s.client.DeleteCollection(ctx, s.filesCollection); err != nil {
		return fmt.Errorf("failed to drop files collection: %w", err)
	}
	return s.ensureCollection(ctx, s.filesCollection, size)
}

// UpsertFaces inserts or replaces face records in one batch call.
func (s *QdrantStore) UpsertFaces(ctx context.Context, records []FaceRecord) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, rec := range records {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(facePointID(rec.FaceKey)),
			Vectors: qdrant.NewVectors(rec.Embedding...),
			Payload: qdrant.NewValueMap(faceRecordToPayload(rec)),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.facesCollection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert face records", "count", len(records), "error", err)
		return fmt.Errorf("failed to upsert face records: %w", err)
	}

	logger.DebugContext(ctx, "upserted face records", "count", len(records))
	return nil
}

// QueryFaces returns up to k nearest face hits by ascending cosine distance.
func (s *QdrantStore) QueryFaces(ctx context.Context, vector []float32, k int) ([]FaceCandidate, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	count, err := s.CountFaces(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	if uint64(k) > count {
		k = int(count)
	}

	limit := uint64(k)
	scored, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.facesCollection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query face records: %w", err)
	}

	candidates := make([]FaceCandidate, 0, len(scored))
	for _, point := range scored {
		rec := payloadToFaceRecord(point.Payload)
		candidates = append(candidates, FaceCandidate{
			FaceKey:  rec.FaceKey,
			Distance: 1 - float64(point.Score),
			Record:   rec,
		})
	}
	return candidates, nil
}

// DeleteBySourceFile removes every face owned by the given file. Called before
// re-inserting a re-indexed file's face set so stale faces never accumulate.
func (s *QdrantStore) DeleteBySourceFile(ctx context.Context, fileID string) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: s.facesCollection,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("source_file_id", fileID),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to delete faces for file %s: %w", fileID, err)
	}
	return nil
}

// CountFaces returns the number of stored face records.
func (s *QdrantStore) CountFaces(ctx context.Context) (uint64, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.facesCollection,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count face records: %w", err)
	}
	return count, nil
}

// ResetFaces drops and recreates the faces collection. Destroys all data.
func (s *QdrantStore) ResetFaces(ctx context.Context) error {
	size, err := s.collectionVectorSize(ctx, s.facesCollection)
	if err != nil {
		return err
	}
	if err := s.client.DeleteCollection(ctx, s.facesCollection); err != nil {
		return fmt.Errorf("failed to drop faces collection: %w", err)
	}
	return s.ensureCollection(ctx, s.facesCollection, size)
}
