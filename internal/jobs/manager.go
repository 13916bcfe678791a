package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"flaunch/internal/fileinfo"
	"flaunch/internal/fspath"
)

const defaultHistoryMax = 100

// Manager coordinates queueing and background resolution (single worker).
// Queries run serially in enqueue order.
type Manager struct {
	query fileinfo.QueryFunc

	mu          sync.Mutex
	cond        *sync.Cond
	queue       []*Job
	closed      bool
	nextID      int64
	subscribers []func()
	current     *Job
	history     []*Job
	historyMax  int
}

// NewManager constructs a Manager that resolves each job with query and
// starts its worker.
func NewManager(query fileinfo.QueryFunc) *Manager {
	m := &Manager{query: query, historyMax: defaultHistoryMax}
	m.cond = sync.NewCond(&m.mu)
	go m.worker()
	log.Debug().Msg("jobs: manager created; worker started")
	return m
}

// Close stops the worker once the current job finishes. Queued jobs stay
// pending and never complete; Close is for teardown, not draining.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
	log.Debug().Msg("jobs: manager closed")
}

// Subscribe registers a callback called on state changes.
func (m *Manager) Subscribe(cb func()) {
	m.mu.Lock()
	m.subscribers = append(m.subscribers, cb)
	n := len(m.subscribers)
	m.mu.Unlock()
	log.Debug().Int("total", n).Msg("jobs: subscriber added")
}

func (m *Manager) notify() {
	// call without holding the lock to avoid re-entrancy
	m.mu.Lock()
	subs := append([]func(){}, m.subscribers...)
	m.mu.Unlock()
	for _, cb := range subs {
		cb()
	}
}

// EnqueueQuery enqueues a metadata query over paths and returns its handle.
func (m *Manager) EnqueueQuery(paths fspath.List) *Job {
	j := &Job{
		ID:         atomic.AddInt64(&m.nextID, 1),
		Paths:      append(fspath.List(nil), paths...),
		status:     StatusPending,
		enqueuedAt: time.Now(),
		done:       make(chan struct{}),
	}
	j.ctx, j.cancel = context.WithCancel(context.Background())

	m.mu.Lock()
	m.queue = append(m.queue, j)
	m.mu.Unlock()
	log.Debug().Int64("id", j.ID).Int("paths", len(j.Paths)).Msg("jobs: enqueue")
	m.notify()
	m.cond.Signal()
	return j
}

// Cancel cancels a job by ID. A pending job completes immediately; a running
// job has its context canceled and completes when the query returns.
func (m *Manager) Cancel(id int64) bool {
	m.mu.Lock()
	for i, j := range m.queue {
		if j.ID == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			m.addHistoryLocked(j)
			m.mu.Unlock()
			j.Cancel()
			log.Debug().Int64("id", id).Msg("jobs: cancel pending")
			m.complete(j, StatusCanceled, "", nil)
			return true
		}
	}
	if m.current != nil && m.current.ID == id {
		m.current.Cancel()
		m.mu.Unlock()
		log.Debug().Int64("id", id).Msg("jobs: cancel running")
		return true
	}
	m.mu.Unlock()
	return false
}

// List returns snapshots: running job first, then pending in queue order,
// then history newest first.
func (m *Manager) List() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Snapshot, 0, len(m.queue)+1+len(m.history))
	if m.current != nil {
		out = append(out, m.current.Snapshot())
	}
	for _, j := range m.queue {
		out = append(out, j.Snapshot())
	}
	for i := len(m.history) - 1; i >= 0; i-- {
		out = append(out, m.history[i].Snapshot())
	}
	return out
}

func (m *Manager) worker() {
	for {
		m.mu.Lock()
		for len(m.queue) == 0 && !m.closed {
			m.cond.Wait()
		}
		if m.closed {
			m.mu.Unlock()
			return
		}
		// pop head
		j := m.queue[0]
		m.queue = m.queue[1:]
		m.current = j
		m.mu.Unlock()

		m.run(j)

		m.mu.Lock()
		m.current = nil
		m.addHistoryLocked(j)
		m.mu.Unlock()
	}
}

// run resolves one job and settles its terminal status.
func (m *Manager) run(j *Job) {
	select {
	case <-j.ctx.Done():
		// canceled while pending
		m.complete(j, StatusCanceled, "", nil)
		return
	default:
	}

	j.mu.Lock()
	j.status = StatusRunning
	j.startedAt = time.Now()
	j.mu.Unlock()
	log.Debug().Int64("id", j.ID).Msg("jobs: start")
	m.notify()

	results, err := m.query(j.ctx, j.Paths)
	switch {
	case j.ctx.Err() != nil:
		log.Debug().Int64("id", j.ID).Msg("jobs: canceled")
		m.complete(j, StatusCanceled, "", nil)
	case err != nil:
		log.Debug().Int64("id", j.ID).Err(err).Msg("jobs: failed")
		m.complete(j, StatusFailed, err.Error(), nil)
	default:
		log.Debug().Int64("id", j.ID).Int("results", len(results)).Msg("jobs: completed")
		m.complete(j, StatusCompleted, "", results)
	}
}

// complete settles the job once and fires its callbacks outside any lock.
func (m *Manager) complete(j *Job, status Status, errMsg string, results []*fileinfo.FileInfo) {
	for _, cb := range j.finish(status, errMsg, results) {
		cb()
	}
	m.notify()
}

// addHistoryLocked appends a finished job to history and trims oldest;
// caller must hold m.mu.
func (m *Manager) addHistoryLocked(j *Job) {
	m.history = append(m.history, j)
	if m.historyMax > 0 && len(m.history) > m.historyMax {
		drop := len(m.history) - m.historyMax
		m.history = append([]*Job{}, m.history[drop:]...)
	}
}
