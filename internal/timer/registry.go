package timer

import (
	"context"
	"sync"
	"time"

	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

// ExpireFunc is invoked once, on its own goroutine, when an assignment's
// response window elapses. The registry removes the timer before calling it.
type ExpireFunc func(assignmentID string)

type openLister interface {
	ListOpenAssignments(ctx context.Context) ([]domain.Assignment, error)
}

type stopper interface {
	Stop() bool
}

// Registry keeps one expiry timer per open assignment. Timers are an in-memory
// optimization over the persisted expires_at column: after a crash Rebuild
// re-arms them from the store, and the sweep worker catches anything missed.
type Registry struct {
	mu       sync.Mutex
	timers   map[string]stopper
	clock    Clock
	logger   logx.Logger
	onExpire ExpireFunc
	newTimer func(d time.Duration, fn func()) stopper
}

// NewRegistry creates a registry firing onExpire for every elapsed window.
func NewRegistry(clock Clock, logger logx.Logger, onExpire ExpireFunc) *Registry {
	if clock == nil {
		clock = RealClock{}
	}
	return &Registry{
		timers:   make(map[string]stopper),
		clock:    clock,
		logger:   logger,
		onExpire: onExpire,
		newTimer: func(d time.Duration, fn func()) stopper {
			return time.AfterFunc(d, fn)
		},
	}
}

// Arm schedules the expiry callback for expiresAt. Re-arming an already armed
// assignment replaces its timer. A deadline in the past fires immediately.
func (r *Registry) Arm(assignmentID string, expiresAt time.Time) {
	d := expiresAt.Sub(r.clock.Now())
	if d < 0 {
		d = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[assignmentID]; ok {
		t.Stop()
	}
	r.timers[assignmentID] = r.newTimer(d, func() {
		r.remove(assignmentID)
		r.onExpire(assignmentID)
	})
}

// Disarm cancels the timer for an assignment that was resolved early.
// Disarming an unknown assignment is a no-op.
func (r *Registry) Disarm(assignmentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[assignmentID]; ok {
		t.Stop()
		delete(r.timers, assignmentID)
	}
}

// Rebuild re-arms timers for every open assignment in the store. Called once
// on startup so windows survive a process restart.
func (r *Registry) Rebuild(ctx context.Context, store openLister) error {
	open, err := store.ListOpenAssignments(ctx)
	if err != nil {
		return err
	}
	for _, a := range open {
		r.Arm(a.ID, a.ExpiresAt)
	}
	r.logger.Info("expiry timers rebuilt", logx.Int("count", len(open)))
	return nil
}

// Len returns the number of armed timers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Shutdown stops all armed timers.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}

func (r *Registry) remove(assignmentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, assignmentID)
}
