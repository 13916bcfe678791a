package mounts

import (
	"context"
	"time"
)

const defaultPollInterval = 2 * time.Second

// Watcher polls the mount table until a share arrives.
type Watcher struct {
	interval time.Duration
	load     func() (*Table, error) // test seam
}

// NewWatcher creates a watcher. interval <= 0 selects the default poll rate.
func NewWatcher(interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{interval: interval, load: Load}
}

// Wait blocks until source resolves to a mount point or ctx ends.
func (w *Watcher) Wait(ctx context.Context, source string) (string, error) {
	if mp, ok := w.check(source); ok {
		return mp, nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if mp, ok := w.check(source); ok {
				return mp, nil
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (w *Watcher) check(source string) (string, bool) {
	tbl, err := w.load()
	if err != nil {
		return "", false
	}
	return tbl.TargetFor(source)
}
