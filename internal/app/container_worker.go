package app

import (
	"go.uber.org/dig"

	"service-assignment/internal/config"
	"service-assignment/internal/logx"
	"service-assignment/internal/repository"
	"service-assignment/internal/service/assignment"
	"service-assignment/internal/service/expiry"
	"service-assignment/internal/timer"
)

// The sweep worker shares the store but resolves expiries without in-memory
// timers or a coordinator: it is the backstop for windows the engine missed.
func newWorkerMachine(in machineIn) *assignment.Machine {
	return assignment.NewMachine(in.Store, timer.Nop{}, in.Cfg.Assignment.Window, 0, in.Logger, in.Created, in.Resolutions)
}

const sweepBatchSize = 100

func newSweeper(st *repository.RetryingStore, m *assignment.Machine, cfg *config.Config, logger logx.Logger) *expiry.Sweeper {
	return expiry.NewSweeper(st, m, cfg.Assignment.SweepInterval, sweepBatchSize, logger)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newStore,
		newWorkerMachine,
		newSweeper,
	)
}
