package handlers

import (
	"context"

	"service-assignment/internal/domain"
	"service-assignment/internal/repository"
	"service-assignment/internal/service/assignment"
	"service-assignment/internal/service/coordinator"
)

type assignmentUsecase interface {
	Resolve(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Resolution, error)
	Open(ctx context.Context, orderID string) (*domain.Assignment, error)
}

// NewAssignmentUsecase wires the assignment Machine into an assignmentUsecase.
func NewAssignmentUsecase(m *assignment.Machine) assignmentUsecase {
	return m
}

type orderUsecase interface {
	Cancel(ctx context.Context, orderID string) error
}

// NewOrderUsecase wires the Coordinator into an orderUsecase.
func NewOrderUsecase(c *coordinator.Coordinator) orderUsecase {
	return c
}

type orderReader interface {
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListHistory(ctx context.Context, orderID string) ([]domain.HistoryEntry, error)
}

// NewOrderReader wires the store into an orderReader.
func NewOrderReader(s *repository.RetryingStore) orderReader {
	return s
}
