//go:generate mockgen -source=contracts.go -destination=orders_mocks_test.go -package=orders_test

package orders

import (
	"context"
)

// CoordinatorPort abstracts the subset of coordinator operations
// needed by the orders Processor when handling order events.
type CoordinatorPort interface {
	Start(ctx context.Context, orderID string, candidates []string) error
	Cancel(ctx context.Context, orderID string) error
}
