package assignment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

type counter interface {
	Inc()
}

type outcomeCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

// Machine drives the lifecycle of a single assignment attempt: create a
// pending assignment with a bounded response window, then resolve it exactly
// once. The store's conditional update is the sole arbiter between a
// restaurant response and the expiry timer; the in-process waiter channel only
// relays the winning resolution to whoever runs the order's assignment chain.
type Machine struct {
	store            store
	timers           Timers
	logger           logx.Logger
	window           time.Duration
	operationTimeout time.Duration
	created          counter
	resolutions      outcomeCounter
	now              func() time.Time

	mu      sync.Mutex
	waiters map[string]chan domain.Resolution
}

// NewMachine - creates a new assignment Machine.
func NewMachine(st store, timers Timers, window, timeout time.Duration, logger logx.Logger, created counter, resolutions outcomeCounter) *Machine {
	if window <= 0 {
		window = 5 * time.Minute
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Machine{
		store:            st,
		timers:           timers,
		logger:           logger,
		window:           window,
		operationTimeout: timeout,
		created:          created,
		resolutions:      resolutions,
		now:              func() time.Time { return time.Now().UTC() },
		waiters:          make(map[string]chan domain.Resolution),
	}
}

func (m *Machine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.operationTimeout)
}

// Window returns the response window applied to new assignments.
func (m *Machine) Window() time.Duration { return m.window }

// Create dispatches a pending assignment to a restaurant and arms its expiry
// timer. The returned channel delivers the single winning resolution and is
// closed afterwards. At most one open assignment may exist per order; a second
// create surfaces apperr.ErrConflict from the store.
func (m *Machine) Create(ctx context.Context, orderID, restaurantID string, attempt int) (domain.Assignment, <-chan domain.Resolution, error) {
	orderID = strings.TrimSpace(orderID)
	restaurantID = strings.TrimSpace(restaurantID)
	if orderID == "" || restaurantID == "" || attempt <= 0 {
		return domain.Assignment{}, nil, apperr.ErrInvalid
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	a, err := m.store.CreateAssignment(ctx, orderID, restaurantID, attempt, m.now().Add(m.window))
	if err != nil {
		return domain.Assignment{}, nil, err
	}

	ch := make(chan domain.Resolution, 1)
	m.mu.Lock()
	m.waiters[a.ID] = ch
	m.mu.Unlock()

	m.timers.Arm(a.ID, a.ExpiresAt)
	if m.created != nil {
		m.created.Inc()
	}

	m.logger.Info("assignment created",
		logx.String("event", "assignment_created"),
		logx.String("assignment_id", a.ID),
		logx.String("order_id", a.OrderID),
		logx.String("restaurant_id", a.RestaurantID),
		logx.Int("attempt", a.Attempt),
		logx.Time("expires_at", a.ExpiresAt),
	)

	return a, ch, nil
}

// Resolve attempts the pending-to-terminal transition. A non-empty
// restaurantID restricts the transition to that restaurant's own assignment.
// Applied=false means the competing path already resolved the assignment;
// callers treat that as success and read the winning status from the result.
func (m *Machine) Resolve(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Resolution, error) {
	assignmentID = strings.TrimSpace(assignmentID)
	if assignmentID == "" || !next.Terminal() {
		return domain.Resolution{}, apperr.ErrInvalid
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	a, applied, err := m.store.CompareAndSetStatus(ctx, assignmentID, restaurantID, next, note)
	if err != nil {
		return domain.Resolution{}, err
	}
	if !applied {
		m.logger.Debug("assignment already resolved",
			logx.String("assignment_id", assignmentID),
			logx.String("status", string(a.Status)),
		)
		res := domain.Resolution{Applied: false, Status: a.Status}
		// The winning write may have landed in another process (a replica
		// or the sweep worker); the local waiter still has to observe it.
		if a.Status.Terminal() {
			m.notify(assignmentID, res)
		}
		return res, nil
	}

	m.timers.Disarm(a.ID)

	// The audit trail never drives control flow, so a failed append is
	// logged instead of undoing the transition.
	entry := domain.HistoryEntry{
		OrderID:      a.OrderID,
		RestaurantID: a.RestaurantID,
		Attempt:      a.Attempt,
		Status:       domain.HistoryStatusFor(next),
		Notes:        note,
	}
	if err := m.store.AppendHistory(ctx, entry); err != nil {
		m.logger.Error("history append failed",
			logx.String("assignment_id", a.ID),
			logx.Err(err),
		)
	}

	if next == domain.AssignmentRejected {
		if err := m.store.IncrementRejectionCount(ctx, a.OrderID); err != nil {
			m.logger.Error("rejection count bump failed",
				logx.String("order_id", a.OrderID),
				logx.Err(err),
			)
		}
	}

	if m.resolutions != nil {
		m.resolutions.WithLabelValues(string(next)).Inc()
	}

	res := domain.Resolution{Applied: true, Status: next}
	m.notify(a.ID, res)

	m.logger.Info("assignment resolved",
		logx.String("event", "assignment_resolved"),
		logx.String("assignment_id", a.ID),
		logx.String("order_id", a.OrderID),
		logx.String("restaurant_id", a.RestaurantID),
		logx.Int("attempt", a.Attempt),
		logx.String("status", string(next)),
	)

	return res, nil
}

// Expire resolves an assignment whose response window elapsed. Invoked by the
// timer registry and by the sweep worker; losing to a concurrent restaurant
// response is not an error.
func (m *Machine) Expire(ctx context.Context, assignmentID string) (domain.Resolution, error) {
	return m.Resolve(ctx, assignmentID, "", domain.AssignmentExpired, "")
}

// Open returns the order's pending assignment, or nil when none is open.
func (m *Machine) Open(ctx context.Context, orderID string) (*domain.Assignment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := m.withTimeout(ctx)
	defer cancel()
	return m.store.GetOpenAssignment(ctx, orderID)
}

func (m *Machine) notify(assignmentID string, res domain.Resolution) {
	m.mu.Lock()
	ch, ok := m.waiters[assignmentID]
	delete(m.waiters, assignmentID)
	m.mu.Unlock()

	if !ok {
		if !res.Applied {
			// the in-process winner already woke and removed the waiter
			return
		}
		// An assignment armed before a restart has no in-process waiter;
		// the order status catches up through the sweep worker.
		m.logger.Warn("resolution without waiter",
			logx.String("assignment_id", assignmentID),
			logx.String("status", string(res.Status)),
		)
		return
	}

	ch <- res
	close(ch)
}
