//go:generate mockgen -source=contracts.go -destination=assignment_mocks_test.go -package=assignment

package assignment

import (
	"context"
	"time"

	"service-assignment/internal/domain"
)

type store interface {
	CreateAssignment(ctx context.Context, orderID, restaurantID string, attempt int, expiresAt time.Time) (domain.Assignment, error)
	CompareAndSetStatus(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Assignment, bool, error)
	GetOpenAssignment(ctx context.Context, orderID string) (*domain.Assignment, error)
	AppendHistory(ctx context.Context, e domain.HistoryEntry) error
	IncrementRejectionCount(ctx context.Context, orderID string) error
}

// Timers arms and disarms per-assignment expiry callbacks.
type Timers interface {
	Arm(assignmentID string, expiresAt time.Time)
	Disarm(assignmentID string)
}
