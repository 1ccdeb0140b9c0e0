// Package scheduler runs short-lived, cancellable callbacks such as undo
// expiry and notice dismissal.
package scheduler

import (
	"sync"
	"time"
)

// Timers keeps at most one pending callback per key.
// Scheduling a key again replaces the pending callback.
type Timers struct {
	mu      sync.Mutex
	pending map[string]*entry
	gen     uint64
	stopped bool
	wg      sync.WaitGroup
}

type entry struct {
	timer *time.Timer
	gen   uint64
}

// New creates an empty Timers.
func New() *Timers {
	return &Timers{pending: make(map[string]*entry)}
}

// Schedule runs fn after d unless the key is rescheduled or cancelled first.
// It is a no-op after Stop.
func (t *Timers) Schedule(key string, d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.cancelLocked(key)

	t.gen++
	e := &entry{gen: t.gen}
	t.wg.Add(1)
	e.timer = time.AfterFunc(d, func() {
		defer t.wg.Done()

		t.mu.Lock()
		cur, ok := t.pending[key]
		live := ok && cur.gen == e.gen
		if live {
			delete(t.pending, key)
		}
		t.mu.Unlock()

		if live {
			fn()
		}
	})
	t.pending[key] = e
}

// Cancel drops the pending callback for key, if any.
func (t *Timers) Cancel(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked(key)
}

// Pending reports whether a callback is waiting for key.
func (t *Timers) Pending(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.pending[key]
	return ok
}

// Stop cancels every pending callback and waits for running ones to return.
// Callbacks must not call Stop.
func (t *Timers) Stop() {
	t.mu.Lock()
	t.stopped = true
	for key := range t.pending {
		t.cancelLocked(key)
	}
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Timers) cancelLocked(key string) {
	e, ok := t.pending[key]
	if !ok {
		return
	}
	delete(t.pending, key)
	if e.timer.Stop() {
		// The callback never ran, so it never calls Done.
		t.wg.Done()
	}
}
