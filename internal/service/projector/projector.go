package projector

import (
	"context"
	"strings"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

type orderWriter interface {
	SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, attempt int) (bool, error)
}

type counter interface {
	Inc()
}

// Projector maintains the customer-facing order status as a projection of
// assignment-chain events. The store's monotonic guard (attempt number, then
// status rank) drops late or replayed updates so the projection never moves
// backwards.
type Projector struct {
	store  orderWriter
	logger logx.Logger
	stale  counter
}

// NewProjector - creates a new Projector.
func NewProjector(store orderWriter, logger logx.Logger, stale counter) *Projector {
	return &Projector{store: store, logger: logger, stale: stale}
}

// Apply writes the projected status for the given attempt. A guarded-out
// write is not an error: the projection already reflects a newer event.
func (p *Projector) Apply(ctx context.Context, orderID string, status domain.OrderStatus, attempt int) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || !status.Valid() || attempt < 0 {
		return apperr.ErrInvalid
	}

	applied, err := p.store.SetOrderStatus(ctx, orderID, status, attempt)
	if err != nil {
		return err
	}
	if !applied {
		if p.stale != nil {
			p.stale.Inc()
		}
		p.logger.Debug("stale status update dropped",
			logx.String("order_id", orderID),
			logx.String("status", string(status)),
			logx.Int("attempt", attempt),
		)
	}
	return nil
}
