package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/vennlayout/internal/arrange"
	"github.com/cwbudde/vennlayout/internal/venn"
)

// JobState represents the current state of a job
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
)

// JobConfig holds the layout problem and output viewport for one job.
type JobConfig struct {
	Areas         []venn.AreaSpec `json:"areas"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
	Padding       float64         `json:"padding"`
	MaxIterations int             `json:"maxIterations,omitempty"`
	Seed          int64           `json:"seed,omitempty"`
}

// JobResult is the finished layout: scaled circles keyed by set id, label
// anchors keyed by combination key, and the residual loss.
type JobResult struct {
	Circles     venn.Solution                 `json:"circles"`
	TextCentres map[string]arrange.TextCentre `json:"textCentres"`
	Loss        float64                       `json:"loss"`
}

// Job represents a layout job
type Job struct {
	ID        string     `json:"id"`
	State     JobState   `json:"state"`
	Config    JobConfig  `json:"config"`
	Result    *JobResult `json:"result,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// JobManager manages the lifecycle of jobs. Accessors return snapshot
// copies so callers can encode them while the worker goroutine keeps
// updating the stored job; Result and EndTime are write-once, so sharing
// their targets across snapshots is safe.
type JobManager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewJobManager creates a new JobManager
func NewJobManager() *JobManager {
	return &JobManager{
		jobs: make(map[string]*Job),
	}
}

// CreateJob creates a new job with the given configuration
func (jm *JobManager) CreateJob(config JobConfig) *Job {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job := &Job{
		ID:        uuid.New().String(),
		State:     StatePending,
		Config:    config,
		StartTime: time.Now(),
	}

	jm.jobs[job.ID] = job
	snapshot := *job
	return &snapshot
}

// GetJob retrieves a snapshot of a job by ID
func (jm *JobManager) GetJob(id string) (*Job, bool) {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	job, exists := jm.jobs[id]
	if !exists {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

// ListJobs returns snapshots of all jobs
func (jm *JobManager) ListJobs() []*Job {
	jm.mu.RLock()
	defer jm.mu.RUnlock()

	jobs := make([]*Job, 0, len(jm.jobs))
	for _, job := range jm.jobs {
		snapshot := *job
		jobs = append(jobs, &snapshot)
	}
	return jobs
}

// UpdateJob atomically updates a job using the provided function
func (jm *JobManager) UpdateJob(id string, updateFn func(*Job)) error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	job, exists := jm.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	updateFn(job)
	return nil
}
