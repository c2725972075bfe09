package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	aimocks "findmyfile/internal/ai/mocks"
	extractmocks "findmyfile/internal/extract/mocks"
	"findmyfile/internal/index"
	"findmyfile/internal/scanner"
	"findmyfile/internal/storage"
	storagemocks "findmyfile/internal/storage/mocks"
	vsmocks "findmyfile/internal/vectorstore/mocks"
)

type indexFixture struct {
	handler  *IndexHandler
	jobs     *index.JobManager
	settings *storagemocks.MockSettingsStore
	runs     *storagemocks.MockRunStore
}

func newIndexFixture(t *testing.T) *indexFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	files := vsmocks.NewMockFileIndex(ctrl)
	faces := vsmocks.NewMockFaceIndex(ctrl)
	embedder := aimocks.NewMockVisualEmbedder(ctrl)
	faceProvider := aimocks.NewMockFaceProvider(ctrl)
	extractor := extractmocks.NewMockExtractor(ctrl)
	settings := storagemocks.NewMockSettingsStore(ctrl)
	runs := storagemocks.NewMockRunStore(ctrl)

	sc := scanner.New(
		map[string]bool{".jpg": true},
		map[string]bool{".txt": true},
		map[string]bool{".mp4": true},
		map[string]bool{},
		100<<20,
	)

	jobs := index.NewJobManager()
	pipeline := index.NewPipeline(sc, files, faces, embedder, faceProvider, extractor, jobs, runs, nil, 32)

	return &indexFixture{
		handler:  NewIndexHandler(pipeline, sc, settings, runs),
		jobs:     jobs,
		settings: settings,
		runs:     runs,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestIndexHandler_Start(t *testing.T) {
	f := newIndexFixture(t)
	tmpDir := t.TempDir() // empty: the job finishes without touching the store

	// The run record insert is the last thing the background job does
	done := make(chan struct{})
	f.runs.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, storage.IndexRun) error {
			close(done)
			return nil
		})

	rr := postJSON(t, f.handler.Start, "/api/index/start", StartRequest{Paths: []string{tmpDir}})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusAccepted, rr.Body.String())
	}

	var resp StartResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.Status != "started" || resp.Mode != "full" {
		t.Errorf("response = %+v, want started/full", resp)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not finish in time")
	}
	if state := f.jobs.Snapshot().State; state != index.StateCompleted {
		t.Errorf("job state = %q, want %q", state, index.StateCompleted)
	}
}

func TestIndexHandler_Start_Conflict(t *testing.T) {
	f := newIndexFixture(t)
	tmpDir := t.TempDir()

	if err := f.jobs.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	rr := postJSON(t, f.handler.Start, "/api/index/start", StartRequest{Paths: []string{tmpDir}})
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestIndexHandler_Start_InvalidPath(t *testing.T) {
	f := newIndexFixture(t)

	rr := postJSON(t, f.handler.Start, "/api/index/start", StartRequest{Paths: []string{"/does/not/exist"}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}

	// A rejected start leaves the job slot untouched
	if f.jobs.Snapshot().IsRunning {
		t.Error("job slot claimed despite path validation failure")
	}
}

func TestIndexHandler_Start_DefaultsToConfiguredFolders(t *testing.T) {
	f := newIndexFixture(t)
	tmpDir := t.TempDir()

	f.settings.EXPECT().Get(gomock.Any()).Return(storage.Settings{IndexedFolders: []string{tmpDir}}, nil)

	done := make(chan struct{})
	f.runs.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, storage.IndexRun) error {
			close(done)
			return nil
		})

	rr := postJSON(t, f.handler.Start, "/api/index/start", struct{}{})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusAccepted, rr.Body.String())
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not finish in time")
	}
}

func TestIndexHandler_Start_NoFoldersConfigured(t *testing.T) {
	f := newIndexFixture(t)

	f.settings.EXPECT().Get(gomock.Any()).Return(storage.Settings{}, nil)

	rr := postJSON(t, f.handler.Start, "/api/index/start", struct{}{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestIndexHandler_Progress(t *testing.T) {
	f := newIndexFixture(t)

	if err := f.jobs.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	f.jobs.AddTotal(10)
	f.jobs.AddProcessed(4)

	req := httptest.NewRequest(http.MethodGet, "/api/index/progress", nil)
	rr := httptest.NewRecorder()
	f.handler.Progress(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp ProgressResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !resp.IsRunning || resp.TotalFiles != 10 || resp.Processed != 4 {
		t.Errorf("progress = %+v, want running with 4/10", resp)
	}
	if resp.PercentComplete != 40.0 {
		t.Errorf("PercentComplete = %v, want 40.0", resp.PercentComplete)
	}
}

func TestIndexHandler_Cancel(t *testing.T) {
	f := newIndexFixture(t)

	// No running job
	req := httptest.NewRequest(http.MethodPost, "/api/index/cancel", nil)
	rr := httptest.NewRecorder()
	f.handler.Cancel(rr, req)
	if rr.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d when idle", rr.Code, http.StatusConflict)
	}

	// Running job
	if err := f.jobs.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	rr = httptest.NewRecorder()
	f.handler.Cancel(rr, httptest.NewRequest(http.MethodPost, "/api/index/cancel", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !f.jobs.Cancelled() {
		t.Error("cancellation flag not set")
	}
}

func TestIndexHandler_Scan(t *testing.T) {
	f := newIndexFixture(t)
	photoDir := t.TempDir()
	docDir := t.TempDir()
	writeTempFile(t, photoDir+"/photo.jpg", 1024)
	writeTempFile(t, photoDir+"/movie.mp4", 1024)
	writeTempFile(t, docDir+"/notes.txt", 1024)

	rr := postJSON(t, f.handler.Scan, "/api/index/scan", ScanRequest{Paths: []string{photoDir, docDir}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp ScanResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if resp.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2 (video excluded)", resp.TotalFiles)
	}
	if len(resp.Results) != 2 || resp.Results[0].TotalFiles != 1 || resp.Results[1].TotalFiles != 1 {
		t.Errorf("Results = %+v, want one admitted file per path", resp.Results)
	}
}

func TestIndexHandler_Scan_InvalidPath(t *testing.T) {
	f := newIndexFixture(t)

	rr := postJSON(t, f.handler.Scan, "/api/index/scan", ScanRequest{Paths: []string{"/does/not/exist"}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func writeTempFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestIndexHandler_Runs(t *testing.T) {
	f := newIndexFixture(t)

	f.runs.EXPECT().List(gomock.Any(), 5).Return([]storage.IndexRun{
		{ID: 2, Mode: "incremental", State: "completed"},
		{ID: 1, Mode: "full", State: "completed"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/index/runs?limit=5", nil)
	rr := httptest.NewRecorder()
	f.handler.Runs(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Runs []storage.IndexRun `json:"runs"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(resp.Runs) != 2 || resp.Runs[0].Mode != "incremental" {
		t.Errorf("runs = %+v, want 2 rows newest first", resp.Runs)
	}
}
