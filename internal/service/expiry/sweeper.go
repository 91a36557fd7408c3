package expiry

import (
	"context"
	"time"

	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

type store interface {
	ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Assignment, error)
}

type resolver interface {
	Expire(ctx context.Context, assignmentID string) (domain.Resolution, error)
}

// Sweeper periodically resolves pending assignments whose response window
// elapsed while no in-process timer was armed for them: assignments orphaned
// by a crash, or timers that never fired. It is the durable backstop behind
// the in-memory timer registry.
type Sweeper struct {
	store    store
	resolver resolver
	logger   logx.Logger
	interval time.Duration
	batch    int
	now      func() time.Time
}

// NewSweeper - creates a new expiry Sweeper.
func NewSweeper(st store, r resolver, interval time.Duration, batch int, logger logx.Logger) *Sweeper {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batch <= 0 {
		batch = 100
	}
	return &Sweeper{
		store:    st,
		resolver: r,
		logger:   logger,
		interval: interval,
		batch:    batch,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("expiry sweep failed", logx.Err(err))
			}
		}
	}
}

// Sweep expires one batch of overdue assignments and returns how many
// transitions it applied. Losing a race to a concurrent restaurant response
// is expected and not counted.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	overdue, err := s.store.ListExpired(ctx, s.now(), s.batch)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, a := range overdue {
		res, err := s.resolver.Expire(ctx, a.ID)
		if err != nil {
			s.logger.Error("expire failed",
				logx.String("assignment_id", a.ID),
				logx.String("order_id", a.OrderID),
				logx.Err(err),
			)
			continue
		}
		if res.Applied {
			expired++
		}
	}

	if len(overdue) > 0 {
		s.logger.Info("expiry sweep finished",
			logx.Int("overdue", len(overdue)),
			logx.Int("expired", expired),
		)
	}
	return expired, nil
}
