package coordinator

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

type outcomeCounter interface {
	WithLabelValues(lvs ...string) prometheus.Counter
}

type chain struct {
	cancelled chan struct{}
	once      sync.Once
}

func (c *chain) requestCancel() { c.once.Do(func() { close(c.cancelled) }) }

// Coordinator runs one assignment chain per order. A chain walks the ordered
// candidate queue, dispatches a single assignment at a time and reacts to its
// terminal outcome until a restaurant accepts, the retry budget is spent, or
// the customer cancels. Rejection and expiry are interchangeable to the retry
// policy; only the recorded reason differs.
type Coordinator struct {
	machine     machine
	projector   statusProjector
	history     historyStore
	notifier    notifier
	logger      logx.Logger
	finalized   outcomeCounter
	maxAttempts int

	mu     sync.Mutex
	chains map[string]*chain
	wg     sync.WaitGroup
}

// New - creates a new Coordinator.
func New(m machine, p statusProjector, h historyStore, n notifier, maxAttempts int, logger logx.Logger, finalized outcomeCounter) *Coordinator {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Coordinator{
		machine:     m,
		projector:   p,
		history:     h,
		notifier:    n,
		logger:      logger,
		finalized:   finalized,
		maxAttempts: maxAttempts,
		chains:      make(map[string]*chain),
	}
}

// Start launches the assignment chain for an order. The chain runs on its own
// goroutine under ctx, which should be the process lifecycle context rather
// than a request context. At most one chain may run per order.
func (c *Coordinator) Start(ctx context.Context, orderID string, candidates []string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return apperr.ErrInvalid
	}

	ch := &chain{cancelled: make(chan struct{})}
	c.mu.Lock()
	if _, ok := c.chains[orderID]; ok {
		c.mu.Unlock()
		return apperr.ErrConflict
	}
	c.chains[orderID] = ch
	c.mu.Unlock()

	c.wg.Add(1)
	go c.run(ctx, ch, orderID, sanitizeCandidates(candidates))
	return nil
}

// Cancel halts the order's assignment chain on behalf of the customer. The
// open assignment, if any, is resolved as cancelled; the chain observes the
// resolution and finalizes the order.
func (c *Coordinator) Cancel(ctx context.Context, orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return apperr.ErrInvalid
	}

	c.mu.Lock()
	ch, running := c.chains[orderID]
	c.mu.Unlock()

	open, err := c.machine.Open(ctx, orderID)
	if err != nil {
		return err
	}
	if open != nil {
		_, err := c.machine.Resolve(ctx, open.ID, "", domain.AssignmentCancelled, "cancelled by customer")
		return err
	}
	if running {
		// chain is between attempts; it checks the flag before dispatching
		ch.requestCancel()
		return nil
	}
	return apperr.ErrNotFound
}

// Active returns the number of running chains.
func (c *Coordinator) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.chains)
}

// Shutdown blocks until every chain goroutine has returned. Chains parked on
// a response window return as soon as their context is cancelled.
func (c *Coordinator) Shutdown() {
	c.wg.Wait()
}

func (c *Coordinator) run(ctx context.Context, ch *chain, orderID string, candidates []string) {
	defer c.wg.Done()
	defer c.release(orderID)

	if len(candidates) == 0 {
		c.finalize(ctx, orderID, domain.OrderAssignmentFailed, 0, domain.HistoryNoCandidates, "no restaurants available")
		return
	}

	attempt := 0
	for _, restaurantID := range candidates {
		if attempt >= c.maxAttempts {
			break
		}

		select {
		case <-ch.cancelled:
			c.finalize(ctx, orderID, domain.OrderCancelled, attempt, domain.HistoryCancelled, "cancelled by customer")
			return
		default:
		}

		attempt++
		a, waiter, err := c.machine.Create(ctx, orderID, restaurantID, attempt)
		if errors.Is(err, apperr.ErrConflict) {
			c.logger.Warn("open assignment already exists, aborting chain",
				logx.String("order_id", orderID),
			)
			return
		}
		if err != nil {
			c.logger.Error("assignment dispatch failed",
				logx.String("order_id", orderID),
				logx.String("restaurant_id", restaurantID),
				logx.Err(err),
			)
			c.finalize(ctx, orderID, domain.OrderAssignmentFailed, attempt, domain.HistoryDispatchFailed, "assignment dispatch failed")
			return
		}

		if err := c.projector.Apply(ctx, orderID, domain.OrderAwaitingRestaurant, attempt); err != nil {
			c.logger.Error("status projection failed",
				logx.String("order_id", orderID),
				logx.Err(err),
			)
		}
		c.notifier.OrderStatusChanged(ctx, orderID, domain.OrderAwaitingRestaurant)
		c.notifier.AssignmentCreated(ctx, a)

		select {
		case res := <-waiter:
			switch res.Status {
			case domain.AssignmentAccepted:
				c.accept(ctx, orderID, a.RestaurantID, attempt)
				return
			case domain.AssignmentCancelled:
				c.finalize(ctx, orderID, domain.OrderCancelled, attempt, domain.HistoryCancelled, "cancelled by customer")
				return
			case domain.AssignmentRejected, domain.AssignmentExpired:
				// consume one attempt and move to the next candidate
			}
		case <-ctx.Done():
			// shutdown: the pending assignment stays in the store, its
			// timer is rebuilt on restart and the sweeper backstops it
			return
		}
	}

	c.finalize(ctx, orderID, domain.OrderCancelledNoRestaurant, attempt, domain.HistoryExhausted, "no restaurant accepted")
}

func (c *Coordinator) accept(ctx context.Context, orderID, restaurantID string, attempt int) {
	if err := c.projector.Apply(ctx, orderID, domain.OrderRestaurantAccepted, attempt); err != nil {
		c.logger.Error("status projection failed",
			logx.String("order_id", orderID),
			logx.Err(err),
		)
	}
	c.notifier.OrderStatusChanged(ctx, orderID, domain.OrderRestaurantAccepted)
	c.notifier.OrderFinalized(ctx, orderID, domain.OrderRestaurantAccepted)
	if c.finalized != nil {
		c.finalized.WithLabelValues(string(domain.OrderRestaurantAccepted)).Inc()
	}
	c.logger.Info("order assigned",
		logx.String("event", "order_assigned"),
		logx.String("order_id", orderID),
		logx.String("restaurant_id", restaurantID),
		logx.Int("attempts", attempt),
	)
}

func (c *Coordinator) finalize(ctx context.Context, orderID string, status domain.OrderStatus, attempt int, historyStatus, note string) {
	if err := c.projector.Apply(ctx, orderID, status, attempt); err != nil {
		c.logger.Error("status projection failed",
			logx.String("order_id", orderID),
			logx.Err(err),
		)
	}
	entry := domain.HistoryEntry{
		OrderID: orderID,
		Attempt: attempt,
		Status:  historyStatus,
		Notes:   note,
	}
	if err := c.history.AppendHistory(ctx, entry); err != nil {
		c.logger.Error("history append failed",
			logx.String("order_id", orderID),
			logx.Err(err),
		)
	}
	c.notifier.OrderStatusChanged(ctx, orderID, status)
	c.notifier.OrderFinalized(ctx, orderID, status)
	if c.finalized != nil {
		c.finalized.WithLabelValues(string(status)).Inc()
	}
	c.logger.Info("order finalized",
		logx.String("event", "order_finalized"),
		logx.String("order_id", orderID),
		logx.String("status", string(status)),
		logx.Int("attempts", attempt),
	)
}

func (c *Coordinator) release(orderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.chains, orderID)
}

func sanitizeCandidates(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
