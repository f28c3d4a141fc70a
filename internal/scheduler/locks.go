package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/clinicflow/scheduler/internal/appointments"
)

// dayLocks serializes queue mutations per (doctor, date). Two
// operations on the same doctor's day must not interleave or queue
// positions and slot assignments can corrupt; operations on different
// days proceed in parallel.
type dayLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newDayLocks() *dayLocks {
	return &dayLocks{slots: make(map[string]chan struct{})}
}

func (l *dayLocks) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// acquire takes the lock for key, waiting at most timeout. On timeout
// it returns ErrConflict, which callers surface as a retryable
// conflict rather than blocking indefinitely.
func (l *dayLocks) acquire(ctx context.Context, key string, timeout time.Duration) (release func(), err error) {
	ch := l.slot(key)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-timer.C:
		return nil, appointments.ErrConflict
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
