// Package index implements the indexing side of the system: change detection
// against the stored records, the single-slot job state machine, and the batch
// orchestrator that drives files through the embedding and extraction
// collaborators into the vector store.
package index

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	// Image decode support. Formats outside this set (RAW camera files and the
	// like) fail decoding and are counted as failed, never half-indexed.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"findmyfile/internal/ai"
	"findmyfile/internal/contextutil"
	"findmyfile/internal/extract"
	"findmyfile/internal/scanner"
	"findmyfile/internal/storage"
	"findmyfile/internal/vectorstore"
)

// Face records below these thresholds are never created. The provider applies
// its own filtering; this re-check keeps the invariant local.
const (
	minFaceConfidence = 0.85
	minFaceBoxSide    = 20
)

// extractConcurrency bounds the per-batch fan-out of extraction and face
// detection. Both are IO/CPU-bound sidecar calls, independent per file.
const extractConcurrency = 8

// Pipeline orchestrates indexing jobs: scan, detect changes, process fixed-size
// batches through the collaborators, persist records. One job at a time, by
// construction of the JobManager.
type Pipeline struct {
	scanner      *scanner.Scanner
	files        vectorstore.FileIndex
	faces        vectorstore.FaceIndex
	embedder     ai.VisualEmbedder
	faceProvider ai.FaceProvider
	extractor    extract.Extractor
	jobs         *JobManager
	runs         storage.RunStore
	thumbs       *Thumbnailer
	batchSize    int
	logger       *slog.Logger
}

// NewPipeline creates an indexing pipeline.
func NewPipeline(
	sc *scanner.Scanner,
	files vectorstore.FileIndex,
	faces vectorstore.FaceIndex,
	embedder ai.VisualEmbedder,
	faceProvider ai.FaceProvider,
	extractor extract.Extractor,
	jobs *JobManager,
	runs storage.RunStore,
	thumbs *Thumbnailer,
	batchSize int,
) *Pipeline {
	return &Pipeline{
		scanner:      sc,
		files:        files,
		faces:        faces,
		embedder:     embedder,
		faceProvider: faceProvider,
		extractor:    extractor,
		jobs:         jobs,
		runs:         runs,
		thumbs:       thumbs,
		batchSize:    batchSize,
		logger:       slog.Default(),
	}
}

// Jobs exposes the job manager for the poll/cancel surface.
func (p *Pipeline) Jobs() *JobManager {
	return p.jobs
}

// Run executes one indexing job over the given root paths. The caller must
// have claimed the job slot via Jobs().Start(); Run releases it on return.
// In incremental mode the work list comes from the change detector and deleted
// files are purged first; in full mode every scanned file is (re)considered,
// with the per-file hash check still skipping unchanged ones.
func (p *Pipeline) Run(ctx context.Context, roots []string, incremental bool) {
	logger := contextutil.LoggerFromContext(ctx)
	started := time.Now()

	mode := "full"
	if incremental {
		mode = "incremental"
	}

	defer func() {
		p.jobs.Finish()
		p.recordRun(ctx, mode, roots, started)
	}()

	var scanned []string
	for _, root := range roots {
		found, err := p.scanner.Scan(ctx, root)
		if err != nil {
			logger.ErrorContext(ctx, "scan failed", "root", root, "error", err)
			continue
		}
		scanned = append(scanned, found...)
	}

	work := scanned
	if incremental {
		indexed, err := p.indexedUnder(ctx, roots)
		if err != nil {
			// Surface the aborted diff at the poll endpoint instead of
			// finishing indistinguishable from a clean no-change run
			p.jobs.AddFailed(0, fmt.Sprintf("incremental diff aborted: failed to load indexed records: %v", err))
			logger.ErrorContext(ctx, "failed to load indexed records", "error", err)
			return
		}

		changes := DetectChanges(scanned, indexed)
		logger.InfoContext(ctx, "changes detected",
			"new", len(changes.New), "modified", len(changes.Modified), "deleted", len(changes.Deleted))

		p.removeDeleted(ctx, changes.Deleted)
		work = append(append([]string{}, changes.New...), changes.Modified...)
	}

	p.jobs.AddTotal(len(work))
	if len(work) == 0 {
		logger.InfoContext(ctx, "nothing to process", "mode", mode)
		return
	}

	for i := 0; i < len(work); i += p.batchSize {
		// Cooperative cancellation: honored between batches only
		if p.jobs.Cancelled() || ctx.Err() != nil {
			logger.InfoContext(ctx, "indexing cancelled", "processed_so_far", i)
			break
		}
		end := i + p.batchSize
		if end > len(work) {
			end = len(work)
		}
		p.processBatch(ctx, work[i:end])
	}

	snap := p.jobs.Snapshot()
	logger.InfoContext(ctx, "indexing finished",
		"mode", mode,
		"processed", snap.Processed, "skipped", snap.Skipped, "failed", snap.Failed,
		"faces", snap.FacesFound, "ocr", snap.OCRExtracted)
}

// indexedUnder returns the stored records whose paths fall under any of the
// given roots, keyed by path. Scoping prevents an incremental run over one
// folder from treating the rest of the index as deleted.
func (p *Pipeline) indexedUnder(ctx context.Context, roots []string) (map[string]vectorstore.FileRecord, error) {
	all, err := p.files.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	prefixes := make([]string, 0, len(roots))
	for _, root := range roots {
		prefixes = append(prefixes, strings.TrimRight(root, string(os.PathSeparator))+string(os.PathSeparator))
	}

	indexed := make(map[string]vectorstore.FileRecord, len(all))
	for _, rec := range all {
		for _, prefix := range prefixes {
			if strings.HasPrefix(rec.Filepath, prefix) {
				indexed[rec.Filepath] = rec
				break
			}
		}
	}
	return indexed, nil
}

// removeDeleted purges vanished files and their face records.
func (p *Pipeline) removeDeleted(ctx context.Context, deleted []string) {
	if len(deleted) == 0 {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	for _, path := range deleted {
		if err := p.faces.DeleteBySourceFile(ctx, vectorstore.FileID(path)); err != nil {
			logger.WarnContext(ctx, "failed to delete face records", "path", path, "error", err)
		}
	}
	if _, err := p.files.DeleteByPaths(ctx, deleted); err != nil {
		logger.WarnContext(ctx, "failed to delete file records", "error", err)
		return
	}
	logger.InfoContext(ctx, "removed deleted files from index", "count", len(deleted))
}

// batchItem carries one file through a batch.
type batchItem struct {
	path     string
	fileType vectorstore.FileType
	rec      vectorstore.FileRecord
	existing bool // a previous record exists (re-index)
	data     []byte
	img      image.Image
	text     string
	faces    []faceDetection
}

// processBatch runs one fixed-size batch end to end: hash re-check, decode,
// concurrent extraction and face detection, one embedding call per type, one
// upsert call per type.
func (p *Pipeline) processBatch(ctx context.Context, paths []string) {
	logger := contextutil.LoggerFromContext(ctx)
	now := time.Now()

	existing := p.existingRecords(ctx, paths)

	var images, documents []*batchItem
	for _, path := range paths {
		p.jobs.SetCurrentFile(path)

		fileType := vectorstore.FileType(p.scanner.FileType(path))
		rec, err := buildRecord(path, fileType, now)
		if err != nil {
			p.jobs.AddFailed(1, fmt.Sprintf("%s: %v", path, err))
			continue
		}

		// Defensive re-check against the stored hash: the file may have been
		// re-scanned without actually changing since its last successful index.
		prev, ok := existing[rec.FileID]
		if ok && prev.FileHash == rec.FileHash {
			p.jobs.AddSkipped(1)
			continue
		}

		item := &batchItem{path: path, fileType: fileType, rec: rec, existing: ok}

		switch fileType {
		case vectorstore.FileTypeImage:
			if !p.prepareImage(ctx, item) {
				continue
			}
			images = append(images, item)
		case vectorstore.FileTypeDocument:
			documents = append(documents, item)
		default:
			p.jobs.AddSkipped(1)
		}
	}

	p.extractAndDetect(ctx, images, documents)

	processedImages := p.embedAndStoreImages(ctx, images)
	processedDocs := p.embedAndStoreDocuments(ctx, documents)

	p.storeFaces(ctx, processedImages)

	// Release decoded image resources before the batch returns
	for _, item := range images {
		item.img = nil
		item.data = nil
	}

	logger.DebugContext(ctx, "batch completed",
		"size", len(paths), "images", len(processedImages), "documents", len(processedDocs))
}

// existingRecords fetches the stored records for a batch in one call.
func (p *Pipeline) existingRecords(ctx context.Context, paths []string) map[string]vectorstore.FileRecord {
	logger := contextutil.LoggerFromContext(ctx)

	ids := make([]string, len(paths))
	for i, path := range paths {
		ids[i] = vectorstore.FileID(path)
	}

	records, err := p.files.Get(ctx, ids)
	if err != nil {
		// Treat as all-new; the upsert replaces in place anyway
		logger.WarnContext(ctx, "failed to fetch existing records", "error", err)
		return nil
	}

	existing := make(map[string]vectorstore.FileRecord, len(records))
	for _, rec := range records {
		if rec.FileHash != "" {
			existing[rec.FileID] = rec
		}
	}
	return existing
}

// prepareImage reads and decodes an image. A decode failure (unsupported RAW
// variant etc.) marks the file failed; metadata-only partial records are
// deliberately not written.
func (p *Pipeline) prepareImage(ctx context.Context, item *batchItem) bool {
	data, err := os.ReadFile(item.path)
	if err != nil {
		p.jobs.AddFailed(1, fmt.Sprintf("%s: %v", item.path, err))
		return false
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.jobs.AddFailed(1, fmt.Sprintf("%s: decode: %v", item.path, err))
		return false
	}

	item.data = data
	item.img = img
	addEXIF(&item.rec, data)
	if item.rec.ImageWidth == 0 {
		bounds := img.Bounds()
		item.rec.ImageWidth = bounds.Dx()
		item.rec.ImageHeight = bounds.Dy()
	}

	if p.thumbs != nil {
		p.thumbs.Generate(item.rec.FileID, img)
	}
	return true
}

// extractAndDetect fans text extraction (all files) and face detection
// (decoded images) out concurrently within the batch. Both are best-effort:
// failures degrade to empty text or no faces, never fail the file.
func (p *Pipeline) extractAndDetect(ctx context.Context, images, documents []*batchItem) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractConcurrency)

	for _, item := range append(append([]*batchItem{}, images...), documents...) {
		g.Go(func() error {
			item.text = p.extractor.Extract(gctx, item.path)
			return nil
		})
	}

	for _, item := range images {
		g.Go(func() error {
			detected, err := p.faceProvider.DetectFaces(gctx, item.data)
			if err != nil {
				// Face extraction must never fail the parent file
				contextutil.LoggerFromContext(gctx).DebugContext(gctx, "face detection failed",
					"path", item.path, "error", err)
				return nil
			}
			for _, face := range detected {
				if face.Confidence < minFaceConfidence {
					continue
				}
				if abs(face.Box[2]-face.Box[0]) < minFaceBoxSide || abs(face.Box[3]-face.Box[1]) < minFaceBoxSide {
					continue
				}
				item.faces = append(item.faces, faceDetection{
					Embedding:  ai.Float32Vector(face.Embedding),
					Box:        face.Box,
					Confidence: face.Confidence,
				})
			}
			return nil
		})
	}

	_ = g.Wait()
}

// embedAndStoreImages embeds all batch images in one provider call and upserts
// the successful records in one store call. A provider failure fails every
// image in the batch.
func (p *Pipeline) embedAndStoreImages(ctx context.Context, images []*batchItem) []*batchItem {
	if len(images) == 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	payloads := make([][]byte, len(images))
	for i, item := range images {
		payloads[i] = item.data
	}

	vectors, err := p.embedder.EmbedImages(ctx, payloads)
	if err != nil {
		p.jobs.AddFailed(len(images), fmt.Sprintf("batch image embed: %v", err))
		logger.ErrorContext(ctx, "batch image embedding failed", "count", len(images), "error", err)
		return nil
	}

	records := make([]vectorstore.FileRecord, len(images))
	for i, item := range images {
		item.rec.Embedding = vectors[i]
		item.rec.OCRText = capText(item.text, item.fileType)
		records[i] = item.rec
	}

	return p.upsert(ctx, images, records)
}

// embedAndStoreDocuments embeds documents through the provider's text path in
// one call. The embedding input is the filename plus the leading extracted
// text, which places documents in the same similarity space as images.
func (p *Pipeline) embedAndStoreDocuments(ctx context.Context, documents []*batchItem) []*batchItem {
	if len(documents) == 0 {
		return nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	inputs := make([]string, len(documents))
	for i, item := range documents {
		text := capText(item.text, item.fileType)
		inputs[i] = strings.TrimSpace(item.rec.Filename + " " + text)
	}

	vectors, err := p.embedder.EmbedTexts(ctx, inputs)
	if err != nil {
		p.jobs.AddFailed(len(documents), fmt.Sprintf("batch text embed: %v", err))
		logger.ErrorContext(ctx, "batch text embedding failed", "count", len(documents), "error", err)
		return nil
	}

	records := make([]vectorstore.FileRecord, len(documents))
	for i, item := range documents {
		item.rec.Embedding = vectors[i]
		item.rec.OCRText = capText(item.text, item.fileType)
		records[i] = item.rec
	}

	return p.upsert(ctx, documents, records)
}

func (p *Pipeline) upsert(ctx context.Context, items []*batchItem, records []vectorstore.FileRecord) []*batchItem {
	logger := contextutil.LoggerFromContext(ctx)

	if err := p.files.Upsert(ctx, records); err != nil {
		p.jobs.AddFailed(len(records), fmt.Sprintf("batch upsert: %v", err))
		logger.ErrorContext(ctx, "batch upsert failed", "count", len(records), "error", err)
		return nil
	}

	p.jobs.AddProcessed(len(records))
	ocr := 0
	for _, rec := range records {
		if rec.OCRText != "" {
			ocr++
		}
	}
	p.jobs.AddOCR(ocr)
	return items
}

// storeFaces replaces the face set of every re-indexed image and inserts the
// batch's face records in one call. Stale faces from a previous index of the
// same file are removed first.
func (p *Pipeline) storeFaces(ctx context.Context, images []*batchItem) {
	if len(images) == 0 {
		return
	}
	logger := contextutil.LoggerFromContext(ctx)

	var records []vectorstore.FaceRecord
	for _, item := range images {
		if item.existing {
			if err := p.faces.DeleteBySourceFile(ctx, item.rec.FileID); err != nil {
				logger.WarnContext(ctx, "failed to clear old face records", "path", item.path, "error", err)
			}
		}
		records = append(records, buildFaceRecords(item.rec, item.faces)...)
	}
	if len(records) == 0 {
		return
	}

	if err := p.faces.UpsertFaces(ctx, records); err != nil {
		// Best-effort: face persistence never fails the parent files
		logger.WarnContext(ctx, "failed to upsert face records", "count", len(records), "error", err)
		return
	}
	p.jobs.AddFaces(len(records))
}

func (p *Pipeline) recordRun(ctx context.Context, mode string, roots []string, started time.Time) {
	if p.runs == nil {
		return
	}
	snap := p.jobs.Snapshot()
	run := storage.IndexRun{
		Mode:         mode,
		Paths:        strings.Join(roots, string(os.PathListSeparator)),
		State:        snap.State,
		TotalFiles:   snap.TotalFiles,
		Processed:    snap.Processed,
		Skipped:      snap.Skipped,
		Failed:       snap.Failed,
		FacesFound:   snap.FacesFound,
		OCRExtracted: snap.OCRExtracted,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}
	if err := p.runs.Insert(ctx, run); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record indexing run", "error", err)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
