package orders

import (
	"context"
	"errors"

	"service-assignment/internal/apperr"
)

// Processor turns order events into assignment-chain actions: a placed order
// starts a chain over its candidate queue, a customer cancellation halts it.
// Unknown statuses are ignored so the upstream topic can evolve freely.
type Processor struct {
	coordinator CoordinatorPort
	chainCtx    context.Context
	factory     *actionFactory
}

// NewProcessor creates a new orders.Processor. chainCtx is the process
// lifecycle context chains run under; consumer-session contexts are too
// short-lived for a chain that waits out response windows.
func NewProcessor(coord CoordinatorPort, chainCtx context.Context) *Processor {
	if chainCtx == nil {
		chainCtx = context.Background()
	}
	p := &Processor{
		coordinator: coord,
		chainCtx:    chainCtx,
	}
	p.factory = newActionFactory(p.onPlaced, p.onCanceled)
	return p
}

// Handle processes a single orders.Event
func (p *Processor) Handle(ctx context.Context, e Event) error {
	if p.factory == nil {
		return nil
	}
	fn, ok := p.factory.get(e.Status)
	if !ok {
		return nil
	}
	return fn(ctx, e)
}

func (p *Processor) onPlaced(_ context.Context, e Event) error {
	err := p.coordinator.Start(p.chainCtx, e.OrderID, e.Restaurants)
	if errors.Is(err, apperr.ErrConflict) {
		// redelivered event; the chain is already running
		return nil
	}
	return err
}

func (p *Processor) onCanceled(ctx context.Context, e Event) error {
	err := p.coordinator.Cancel(ctx, e.OrderID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	return err
}
