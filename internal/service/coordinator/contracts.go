package coordinator

import (
	"context"

	"service-assignment/internal/domain"
)

type machine interface {
	Create(ctx context.Context, orderID, restaurantID string, attempt int) (domain.Assignment, <-chan domain.Resolution, error)
	Resolve(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Resolution, error)
	Open(ctx context.Context, orderID string) (*domain.Assignment, error)
}

type statusProjector interface {
	Apply(ctx context.Context, orderID string, status domain.OrderStatus, attempt int) error
}

type historyStore interface {
	AppendHistory(ctx context.Context, e domain.HistoryEntry) error
}

type notifier interface {
	AssignmentCreated(ctx context.Context, a domain.Assignment)
	OrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus)
	OrderFinalized(ctx context.Context, orderID string, status domain.OrderStatus)
}
