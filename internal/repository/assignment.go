package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
)

// AssignmentRepo persists assignments and their audit trail.
type AssignmentRepo struct {
	db *pgxpool.Pool
}

// NewAssignmentRepo creates a new AssignmentRepo.
func NewAssignmentRepo(db *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

// CreateAssignment inserts a new pending assignment. A partial unique index on
// open assignments guarantees at most one pending assignment per order; a
// violation surfaces as apperr.ErrConflict.
func (r *AssignmentRepo) CreateAssignment(ctx context.Context, orderID, restaurantID string, attempt int, expiresAt time.Time) (domain.Assignment, error) {
	a := domain.Assignment{
		OrderID:      orderID,
		RestaurantID: restaurantID,
		Status:       domain.AssignmentPending,
		Attempt:      attempt,
		ExpiresAt:    expiresAt,
	}
	err := r.db.QueryRow(ctx, `
        INSERT INTO restaurant_assignments (order_id, restaurant_id, status, attempt, expires_at)
        VALUES ($1, $2, 'pending', $3, $4)
        RETURNING id, created_at
    `, orderID, restaurantID, attempt, expiresAt).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return domain.Assignment{}, fmt.Errorf("open assignment exists for order %q: %w", orderID, apperr.ErrConflict)
		}
		return domain.Assignment{}, fmt.Errorf("insert assignment: %w", err)
	}
	return a, nil
}

// CompareAndSetStatus atomically transitions a pending assignment to the given
// terminal status. A non-empty restaurantID additionally requires the
// assignment to belong to that restaurant. Returns applied=false when the
// assignment was already resolved by the competing path.
func (r *AssignmentRepo) CompareAndSetStatus(ctx context.Context, assignmentID, restaurantID string, next domain.AssignmentStatus, note string) (domain.Assignment, bool, error) {
	query := `
        UPDATE restaurant_assignments
        SET status = $2, responded_at = now(), response_notes = $3
        WHERE id = $1 AND status = 'pending'
    `
	args := []any{assignmentID, string(next), note}
	if restaurantID != "" {
		query += ` AND restaurant_id = $4`
		args = append(args, restaurantID)
	}
	query += ` RETURNING id, order_id, restaurant_id, status, attempt, expires_at, created_at, responded_at`

	var a domain.Assignment
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.OrderID, &a.RestaurantID, &a.Status, &a.Attempt, &a.ExpiresAt, &a.CreatedAt, &a.RespondedAt,
	)
	if err == nil {
		return a, true, nil
	}
	if !IsNotFound(err) {
		return domain.Assignment{}, false, fmt.Errorf("cas assignment %q: %w", assignmentID, err)
	}

	// Lost the race or wrong id/restaurant: report the current state.
	current, getErr := r.getAssignment(ctx, assignmentID, restaurantID)
	if getErr != nil {
		return domain.Assignment{}, false, getErr
	}
	return current, false, nil
}

func (r *AssignmentRepo) getAssignment(ctx context.Context, assignmentID, restaurantID string) (domain.Assignment, error) {
	query := `
        SELECT id, order_id, restaurant_id, status, attempt, expires_at, created_at, responded_at
        FROM restaurant_assignments
        WHERE id = $1
    `
	args := []any{assignmentID}
	if restaurantID != "" {
		query += ` AND restaurant_id = $2`
		args = append(args, restaurantID)
	}

	var a domain.Assignment
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.OrderID, &a.RestaurantID, &a.Status, &a.Attempt, &a.ExpiresAt, &a.CreatedAt, &a.RespondedAt,
	)
	if err != nil {
		if IsNotFound(err) {
			return domain.Assignment{}, fmt.Errorf("assignment %q: %w", assignmentID, apperr.ErrNotFound)
		}
		return domain.Assignment{}, fmt.Errorf("get assignment %q: %w", assignmentID, err)
	}
	return a, nil
}

// GetOpenAssignment returns the single pending assignment for an order, or nil.
func (r *AssignmentRepo) GetOpenAssignment(ctx context.Context, orderID string) (*domain.Assignment, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, order_id, restaurant_id, status, attempt, expires_at, created_at, responded_at
        FROM restaurant_assignments
        WHERE order_id = $1 AND status = 'pending'
    `, orderID)

	var a domain.Assignment
	if err := row.Scan(&a.ID, &a.OrderID, &a.RestaurantID, &a.Status, &a.Attempt, &a.ExpiresAt, &a.CreatedAt, &a.RespondedAt); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open assignment for order %q: %w", orderID, err)
	}
	return &a, nil
}

// ListOpenAssignments returns all pending assignments; used on process restart
// to rebuild expiry timers from persisted expires_at values.
func (r *AssignmentRepo) ListOpenAssignments(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, restaurant_id, status, attempt, expires_at, created_at, responded_at
        FROM restaurant_assignments
        WHERE status = 'pending'
        ORDER BY expires_at ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("list open assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// ListExpired returns pending assignments whose window elapsed before now.
func (r *AssignmentRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, restaurant_id, status, attempt, expires_at, created_at, responded_at
        FROM restaurant_assignments
        WHERE status = 'pending' AND expires_at < $1
        ORDER BY expires_at ASC
        LIMIT $2
    `, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

type assignmentRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAssignments(rows assignmentRows) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.RestaurantID, &a.Status, &a.Attempt, &a.ExpiresAt, &a.CreatedAt, &a.RespondedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return out, nil
}

// AppendHistory appends one audit trail entry.
func (r *AssignmentRepo) AppendHistory(ctx context.Context, e domain.HistoryEntry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO assignment_history (order_id, restaurant_id, attempt, status, notes)
        VALUES ($1, $2, $3, $4, $5)
    `, e.OrderID, e.RestaurantID, e.Attempt, e.Status, e.Notes)
	if err != nil {
		return fmt.Errorf("append history for order %q: %w", e.OrderID, err)
	}
	return nil
}

// ListHistory returns the audit trail for an order, oldest first.
func (r *AssignmentRepo) ListHistory(ctx context.Context, orderID string) ([]domain.HistoryEntry, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, restaurant_id, attempt, status, notes, recorded_at
        FROM assignment_history
        WHERE order_id = $1
        ORDER BY id ASC
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list history for order %q: %w", orderID, err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.RestaurantID, &e.Attempt, &e.Status, &e.Notes, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}
