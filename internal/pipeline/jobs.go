package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a build job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusLoading   JobStatus = "loading"
	StatusRendering JobStatus = "rendering"
	StatusWriting   JobStatus = "writing"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusUnchanged JobStatus = "unchanged"
)

// Done reports whether the status is terminal.
func (s JobStatus) Done() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusUnchanged
}

// Triggers record why a build was requested.
const (
	TriggerStartup = "startup"
	TriggerWatch   = "watch"
	TriggerAPI     = "api"
)

// Job tracks the state of a single site build.
type Job struct {
	mu sync.Mutex

	ID      string `json:"job_id"`
	Trigger string `json:"trigger"`
	// Force rebuilds even when the source is unchanged since the last
	// successful build.
	Force bool `json:"force"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Result Result `json:"result"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	errors []string
	done   chan struct{}
}

// Result summarizes what a build produced.
type Result struct {
	Title      string   `json:"title"`
	Headings   int      `json:"headings"`
	Sections   int      `json:"sections"`
	Files      []string `json:"files"`
	DurationMs int64    `json:"duration_ms"`
	Attempts   int      `json:"attempts"`
	Errors     []string `json:"errors"`
}

// NewJob creates a queued job with a time-ordered id.
func NewJob(trigger string, force bool) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Trigger:   trigger,
		Force:     force,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Len returns the number of tracked jobs.
func (s *JobStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically. Entering a terminal status
// closes the Done channel.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
	if status.Done() {
		ch := j.doneLocked()
		select {
		case <-ch:
		default:
			close(ch)
		}
	}
}

// Done returns a channel that is closed once the job reaches a terminal
// status.
func (j *Job) Done() <-chan struct{} {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.doneLocked()
}

func (j *Job) doneLocked() chan struct{} {
	if j.done == nil {
		j.done = make(chan struct{})
	}
	return j.done
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Result.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrAttempts counts one attempt at loading the source.
func (j *Job) IncrAttempts() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result.Attempts++
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash of the source the job built from.
func (j *Job) SetContentHash(h string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = h
}

// SetResult records build output counts.
func (j *Job) SetResult(title string, headings, sections int, files []string, d time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Result.Title = title
	j.Result.Headings = headings
	j.Result.Sections = sections
	j.Result.Files = files
	j.Result.DurationMs = d.Milliseconds()
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Trigger     string    `json:"trigger"`
	Force       bool      `json:"force"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Result      Result    `json:"result"`
	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Result.Errors...)
	files := append([]string{}, j.Result.Files...)
	res := j.Result
	res.Errors = errs
	res.Files = files
	return JobSnapshot{
		ID:          j.ID,
		Trigger:     j.Trigger,
		Force:       j.Force,
		Status:      j.Status,
		Phase:       j.Phase,
		Result:      res,
		ContentHash: j.ContentHash,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
