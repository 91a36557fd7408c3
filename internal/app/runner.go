package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-assignment/internal/gateway/notify"
	"service-assignment/internal/logx"
	"service-assignment/internal/service/coordinator"
	"service-assignment/internal/timer"
	"service-assignment/internal/transport/kafka"
)

// Runner runs the assignment engine
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the engine using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logErr := container.Invoke(func(logger logx.Logger) {
		switch {
		case errors.Is(err, context.Canceled):
			logger.Info("shutdown requested, exiting")
		case errors.Is(err, context.DeadlineExceeded):
			logger.Error("startup aborted: startup timeout exceeded")
		default:
			logger.Error("run error", logx.Err(err))
		}
	})
	if logErr != nil || (!errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)) {
		panic(err)
	}
}

type runIn struct {
	dig.In

	Ctx          context.Context
	Server       *http.Server
	Pool         *pgxpool.Pool
	Logger       logx.Logger
	Registry     *timer.Registry
	Source       assignmentSource
	Coordinator  *coordinator.Coordinator
	Consumer     *kafka.Consumer
	NotifyClient *notify.Client
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		rebuildCtx, cancel := context.WithTimeout(in.Ctx, 10*time.Second)
		err := in.Registry.Rebuild(rebuildCtx, in.Source)
		cancel()
		if err != nil {
			return err
		}

		startServer(in.Server, in.Logger)
		startConsumer(in.Ctx, in.Consumer, in.Logger)

		waitForShutdown(in.Ctx, in.Logger)

		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		in.Coordinator.Shutdown()
		closeResources(in, in.Logger)
		return in.Ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("service-assignment listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen error", logx.Err(err))
		}
	}()
}

func startConsumer(ctx context.Context, consumer *kafka.Consumer, logger logx.Logger) {
	if consumer == nil {
		logger.Info("kafka not configured, order intake disabled")
		return
	}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("kafka consumer stopped", logx.Err(err))
		}
	}()
}

func waitForShutdown(ctx context.Context, logger logx.Logger) {
	<-ctx.Done()
	logger.Info("shutting down service-assignment")
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runIn, logger logx.Logger) {
	if in.Consumer != nil {
		if err := in.Consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	in.Registry.Shutdown()
	if in.NotifyClient != nil {
		in.NotifyClient.Close()
	}
	if err := in.Server.Close(); err != nil {
		logger.Error("server close error", logx.Err(err))
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
