package jobs

import (
	"context"
	"sync"
	"time"

	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
)

// Status represents job status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// Job is one queued metadata query with a one-shot completion signal.
type Job struct {
	// immutable fields
	ID    int64
	Paths fspath.List

	// state
	mu          sync.RWMutex
	status      Status
	results     []*fileinfo.FileInfo
	errMsg      string
	enqueuedAt  time.Time
	startedAt   time.Time
	completedAt time.Time

	// completion
	done      chan struct{}
	callbacks []func()

	// cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// Status returns the current lifecycle state.
func (j *Job) Status() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// Results returns the resolved infos; empty until the job completed.
func (j *Job) Results() []*fileinfo.FileInfo {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.results
}

// Err returns the failure message; empty unless the job failed.
func (j *Job) Err() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.errMsg
}

// Done returns a channel closed once the job reaches a terminal status.
func (j *Job) Done() <-chan struct{} { return j.done }

// OnDone registers fn to run exactly once after the job finishes. Callbacks
// run on the goroutine that completes the job; registering on an already
// finished job fires fn on a fresh goroutine.
func (j *Job) OnDone(fn func()) {
	j.mu.Lock()
	finished := j.finishedLocked()
	if !finished {
		j.callbacks = append(j.callbacks, fn)
	}
	j.mu.Unlock()
	if finished {
		go fn()
	}
}

// Cancel aborts the query. A pending job completes canceled when the worker
// or manager next touches it; a running query has its context canceled.
func (j *Job) Cancel() {
	if j.cancel != nil {
		j.cancel()
	}
}

func (j *Job) finishedLocked() bool {
	switch j.status {
	case StatusCompleted, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// finish moves the job to a terminal status and returns the callbacks to
// fire. Only the first caller wins; later calls return nil.
func (j *Job) finish(status Status, errMsg string, results []*fileinfo.FileInfo) []func() {
	j.mu.Lock()
	if j.finishedLocked() {
		j.mu.Unlock()
		return nil
	}
	j.status = status
	j.errMsg = errMsg
	j.results = results
	j.completedAt = time.Now()
	cbs := j.callbacks
	j.callbacks = nil
	j.mu.Unlock()
	close(j.done)
	return cbs
}

// Snapshot returns a copy of the observable state.
func (j *Job) Snapshot() Snapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return Snapshot{
		ID:          j.ID,
		Status:      j.status,
		Paths:       append(fspath.List(nil), j.Paths...),
		Results:     append([]*fileinfo.FileInfo(nil), j.results...),
		Error:       j.errMsg,
		EnqueuedAt:  j.enqueuedAt,
		StartedAt:   j.startedAt,
		CompletedAt: j.completedAt,
	}
}

// Snapshot is a read-only view for observers.
type Snapshot struct {
	ID          int64
	Status      Status
	Paths       fspath.List
	Results     []*fileinfo.FileInfo
	Error       string
	EnqueuedAt  time.Time
	StartedAt   time.Time
	CompletedAt time.Time
}
