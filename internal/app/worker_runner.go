package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-assignment/internal/logx"
	"service-assignment/internal/service/expiry"
)

// WorkerRunner runs the expiry sweep worker
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the sweep worker using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	sweeper *expiry.Sweeper,
) error {
	if sweeper == nil {
		return fmt.Errorf("sweeper is nil: worker container misconfigured")
	}
	defer closeWorker(pool)

	logger.Info("service-assignment-worker started")
	return sweeper.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
