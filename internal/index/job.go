package index

import (
	"math"
	"sync"
	"time"

	"findmyfile/internal/service"
)

// Job states. There is no queueing: a start while Running is rejected.
const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateCompleted = "completed"
	StateCancelled = "cancelled"
)

// maxTrackedErrors bounds the in-memory error log of one job.
const maxTrackedErrors = 100

// Progress is a point-in-time snapshot of the current (or last) indexing job,
// with derived rate metrics precomputed for the poll endpoint.
type Progress struct {
	State        string   `json:"state"`
	TotalFiles   int      `json:"total_files"`
	Processed    int      `json:"processed"`
	Skipped      int      `json:"skipped"`
	Failed       int      `json:"failed"`
	FacesFound   int      `json:"faces_found"`
	OCRExtracted int      `json:"ocr_extracted"`
	IsRunning    bool     `json:"is_running"`
	CurrentFile  string   `json:"current_file"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"-"`

	PercentComplete float64 `json:"percent_complete"`
	FilesPerSecond  float64 `json:"files_per_second"`
	EtaSeconds      float64 `json:"eta_seconds"`
	ElapsedSeconds  float64 `json:"elapsed_seconds"`

	StartedAt  time.Time `json:"-"`
	FinishedAt time.Time `json:"-"`
}

// JobManager owns the single global job slot. All mutation happens through its
// methods under one lock; polling is a cheap lock-scoped copy and is never
// blocked by in-flight embedding work.
type JobManager struct {
	mu        sync.Mutex
	state     string
	total     int
	processed int
	skipped   int
	failed    int
	faces     int
	ocr       int
	current   string
	errors    []string
	cancelled bool
	started   time.Time
	finished  time.Time
}

// NewJobManager creates a job manager in the idle state.
func NewJobManager() *JobManager {
	return &JobManager{state: StateIdle}
}

// Start claims the job slot, resetting all counters and stamping the start
// time. Returns service.ErrJobRunning if a job is already in flight; the
// running job's state is untouched in that case.
func (m *JobManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateRunning {
		return service.ErrJobRunning
	}

	m.state = StateRunning
	m.total = 0
	m.processed = 0
	m.skipped = 0
	m.failed = 0
	m.faces = 0
	m.ocr = 0
	m.current = ""
	m.errors = nil
	m.cancelled = false
	m.started = time.Now()
	m.finished = time.Time{}
	return nil
}

// Finish transitions out of Running exactly once, stamping the finish time.
// The terminal state is Cancelled if the cooperative flag was set.
func (m *JobManager) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRunning {
		return
	}
	if m.cancelled {
		m.state = StateCancelled
	} else {
		m.state = StateCompleted
	}
	m.finished = time.Now()
}

// Cancel sets the cooperative cancellation flag. The orchestrator honors it at
// the next batch boundary; in-flight batch work completes first.
func (m *JobManager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled = true
}

// Cancelled reports whether cancellation has been requested.
func (m *JobManager) Cancelled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelled
}

// AddTotal grows the job's total work count (one scan per root path).
func (m *JobManager) AddTotal(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total += n
}

// SetCurrentFile records the file currently being processed, for the poll UI.
func (m *JobManager) SetCurrentFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = path
}

// AddProcessed counts files successfully embedded and upserted.
func (m *JobManager) AddProcessed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed += n
}

// AddSkipped counts files whose stored hash already matched.
func (m *JobManager) AddSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped += n
}

// AddFailed counts files that could not be indexed, keeping a bounded error log.
func (m *JobManager) AddFailed(n int, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed += n
	if errMsg != "" && len(m.errors) < maxTrackedErrors {
		m.errors = append(m.errors, errMsg)
	}
}

// AddFaces counts detected faces persisted to the face index.
func (m *JobManager) AddFaces(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces += n
}

// AddOCR counts files for which text extraction produced non-empty text.
func (m *JobManager) AddOCR(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ocr += n
}

// Snapshot returns a copy of the current progress with derived metrics.
func (m *JobManager) Snapshot() Progress {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := Progress{
		State:        m.state,
		TotalFiles:   m.total,
		Processed:    m.processed,
		Skipped:      m.skipped,
		Failed:       m.failed,
		FacesFound:   m.faces,
		OCRExtracted: m.ocr,
		IsRunning:    m.state == StateRunning,
		CurrentFile:  m.current,
		ErrorCount:   len(m.errors),
		Errors:       append([]string(nil), m.errors...),
		StartedAt:    m.started,
		FinishedAt:   m.finished,
	}

	if !m.started.IsZero() {
		end := m.finished
		if end.IsZero() {
			end = time.Now()
		}
		p.ElapsedSeconds = end.Sub(m.started).Seconds()
	}

	if p.TotalFiles > 0 {
		p.PercentComplete = round1(float64(p.Processed+p.Skipped) / float64(p.TotalFiles) * 100)
	}
	if p.ElapsedSeconds > 0 {
		p.FilesPerSecond = round1(float64(p.Processed) / p.ElapsedSeconds)
	}
	// Guard the rate: zero ETA when nothing is moving, never divide by zero
	if p.FilesPerSecond > 0 {
		remaining := float64(p.TotalFiles - p.Processed - p.Skipped)
		p.EtaSeconds = math.Round(remaining / p.FilesPerSecond)
	}

	return p
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
