package repository

import (
	"context"
	"time"

	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

type assignmentStore interface {
	CreateAssignment(ctx context.Context, orderID, restaurantID string, attempt int, expiresAt time.Time) (domain.Assignment, error)
	CompareAndSetStatus(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Assignment, bool, error)
	GetOpenAssignment(ctx context.Context, orderID string) (*domain.Assignment, error)
	ListOpenAssignments(ctx context.Context) ([]domain.Assignment, error)
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Assignment, error)
	AppendHistory(ctx context.Context, e domain.HistoryEntry) error
	ListHistory(ctx context.Context, orderID string) ([]domain.HistoryEntry, error)
}

type orderStore interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, attempt int) (bool, error)
	IncrementRejectionCount(ctx context.Context, orderID string) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the bounded retry policy for transient store errors.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingStore decorates the assignment and order repositories with bounded
// exponential-backoff retries on transient errors. A stuck store write risks
// leaving an order with no armed timer, so failures are retried before they
// escalate to the caller.
type RetryingStore struct {
	assignments assignmentStore
	orders      orderStore
	logger      logx.Logger
	retries     counter
	cfg         RetryConfig
	sleep       func(time.Duration)
}

// NewRetryingStore wraps the given repositories; returns nil if either is nil.
func NewRetryingStore(a assignmentStore, o orderStore, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingStore {
	if a == nil || o == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &RetryingStore{assignments: a, orders: o, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

func (s *RetryingStore) do(ctx context.Context, method string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == s.cfg.MaxAttempts || !IsTransient(err) {
			break
		}
		delay := backoff(s.cfg.BaseDelay, s.cfg.MaxDelay, attempt)
		if s.retries != nil {
			s.retries.Inc()
		}
		s.logger.Warn("store retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, s.sleep, delay) {
			break
		}
	}
	return lastErr
}

// CreateAssignment retries transient failures of the underlying insert.
func (s *RetryingStore) CreateAssignment(ctx context.Context, orderID, restaurantID string, attempt int, expiresAt time.Time) (domain.Assignment, error) {
	var out domain.Assignment
	err := s.do(ctx, "CreateAssignment", func() error {
		var err error
		out, err = s.assignments.CreateAssignment(ctx, orderID, restaurantID, attempt, expiresAt)
		return err
	})
	return out, err
}

// CompareAndSetStatus retries transient failures of the atomic transition.
func (s *RetryingStore) CompareAndSetStatus(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Assignment, bool, error) {
	var (
		out     domain.Assignment
		applied bool
	)
	err := s.do(ctx, "CompareAndSetStatus", func() error {
		var err error
		out, applied, err = s.assignments.CompareAndSetStatus(ctx, assignmentID, restaurantID, next, note)
		return err
	})
	return out, applied, err
}

// GetOpenAssignment retries transient failures of the lookup.
func (s *RetryingStore) GetOpenAssignment(ctx context.Context, orderID string) (*domain.Assignment, error) {
	var out *domain.Assignment
	err := s.do(ctx, "GetOpenAssignment", func() error {
		var err error
		out, err = s.assignments.GetOpenAssignment(ctx, orderID)
		return err
	})
	return out, err
}

// ListOpenAssignments retries transient failures of the startup scan.
func (s *RetryingStore) ListOpenAssignments(ctx context.Context) ([]domain.Assignment, error) {
	var out []domain.Assignment
	err := s.do(ctx, "ListOpenAssignments", func() error {
		var err error
		out, err = s.assignments.ListOpenAssignments(ctx)
		return err
	})
	return out, err
}

// ListExpired retries transient failures of the sweep scan.
func (s *RetryingStore) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Assignment, error) {
	var out []domain.Assignment
	err := s.do(ctx, "ListExpired", func() error {
		var err error
		out, err = s.assignments.ListExpired(ctx, now, limit)
		return err
	})
	return out, err
}

// AppendHistory retries transient failures of the audit append.
func (s *RetryingStore) AppendHistory(ctx context.Context, e domain.HistoryEntry) error {
	return s.do(ctx, "AppendHistory", func() error {
		return s.assignments.AppendHistory(ctx, e)
	})
}

// ListHistory retries transient failures of the audit read.
func (s *RetryingStore) ListHistory(ctx context.Context, orderID string) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	err := s.do(ctx, "ListHistory", func() error {
		var err error
		out, err = s.assignments.ListHistory(ctx, orderID)
		return err
	})
	return out, err
}

// GetOrder retries transient failures of the lookup.
func (s *RetryingStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out *domain.Order
	err := s.do(ctx, "GetOrder", func() error {
		var err error
		out, err = s.orders.GetOrder(ctx, id)
		return err
	})
	return out, err
}

// SetOrderStatus retries transient failures of the guarded status write.
func (s *RetryingStore) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, attempt int) (bool, error) {
	var applied bool
	err := s.do(ctx, "SetOrderStatus", func() error {
		var err error
		applied, err = s.orders.SetOrderStatus(ctx, orderID, status, attempt)
		return err
	})
	return applied, err
}

// IncrementRejectionCount retries transient failures of the counter bump.
func (s *RetryingStore) IncrementRejectionCount(ctx context.Context, orderID string) error {
	return s.do(ctx, "IncrementRejectionCount", func() error {
		return s.orders.IncrementRejectionCount(ctx, orderID)
	})
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base << (attempt - 1)
	if max > 0 && d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
