package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
)

// OrderRepo persists the projected order status.
type OrderRepo struct {
	db *pgxpool.Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

// GetOrder - get order by ID.
func (r *OrderRepo) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, customer_id, total_cents, status, rejection_count, status_attempt, created_at, updated_at
        FROM orders
        WHERE id = $1
    `, id)

	var o domain.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalCents, &o.Status, &o.RejectionCount, &o.StatusAttempt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("order %q: %w", id, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return &o, nil
}

// SetOrderStatus updates the projected status, guarded by the attempt number
// and the status rank so that a stale event never regresses the order. Returns
// false when the guard rejected the write.
func (r *OrderRepo) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, attempt int) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET status = $2, status_attempt = $3, status_rank = $4, updated_at = now()
        WHERE id = $1
          AND (status_attempt < $3 OR (status_attempt = $3 AND status_rank < $4))
    `, orderID, string(status), attempt, status.Rank())
	if err != nil {
		return false, fmt.Errorf("set order %q status: %w", orderID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// IncrementRejectionCount bumps the order's rejection counter.
func (r *OrderRepo) IncrementRejectionCount(ctx context.Context, orderID string) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE orders
        SET rejection_count = rejection_count + 1, updated_at = now()
        WHERE id = $1
    `, orderID)
	if err != nil {
		return fmt.Errorf("increment rejection count for order %q: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %q: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}
