package notify

import (
	"context"

	"service-assignment/internal/domain"
)

// Nop is a notifier that publishes nothing. Used when no broker is
// configured, for example in the sweep worker.
type Nop struct{}

// AssignmentCreated does nothing.
func (Nop) AssignmentCreated(context.Context, domain.Assignment) {}

// OrderStatusChanged does nothing.
func (Nop) OrderStatusChanged(context.Context, string, domain.OrderStatus) {}

// OrderFinalized does nothing.
func (Nop) OrderFinalized(context.Context, string, domain.OrderStatus) {}
