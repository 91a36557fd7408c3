package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-assignment/internal/config"
	"service-assignment/internal/domain"
	"service-assignment/internal/gateway/notify"
	"service-assignment/internal/logx"
	"service-assignment/internal/repository"
	"service-assignment/internal/service/assignment"
	"service-assignment/internal/service/coordinator"
	"service-assignment/internal/service/orders"
	"service-assignment/internal/service/projector"
	"service-assignment/internal/timer"
	"service-assignment/internal/transport/kafka"
)

// assignmentSource is the slice of the store the timer registry rebuilds from.
type assignmentSource interface {
	ListOpenAssignments(ctx context.Context) ([]domain.Assignment, error)
}

type storeIn struct {
	dig.In

	Pool    *pgxpool.Pool
	Logger  logx.Logger
	Cfg     *config.Config
	Retries prometheus.Counter `name:"store_retries_total"`
}

func newStore(in storeIn) *repository.RetryingStore {
	assignmentRepo := repository.NewAssignmentRepo(in.Pool)
	orderRepo := repository.NewOrderRepo(in.Pool)
	return repository.NewRetryingStore(assignmentRepo, orderRepo, in.Logger, in.Retries, repository.RetryConfig{
		MaxAttempts: in.Cfg.Store.MaxAttempts,
		BaseDelay:   in.Cfg.Store.BaseDelay,
		MaxDelay:    in.Cfg.Store.MaxDelay,
	})
}

type machineIn struct {
	dig.In

	Store       *repository.RetryingStore
	Cfg         *config.Config
	Logger      logx.Logger
	Created     prometheus.Counter     `name:"assignments_created_total"`
	Resolutions *prometheus.CounterVec `name:"assignment_resolutions_total"`
}

// newMachineWithTimers breaks the machine <-> registry cycle: the registry's
// expiry callback closes over the machine pointer assigned right after.
func newMachineWithTimers(in machineIn) (*assignment.Machine, *timer.Registry) {
	var m *assignment.Machine

	registry := timer.NewRegistry(timer.RealClock{}, in.Logger, func(assignmentID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := m.Expire(ctx, assignmentID); err != nil {
			in.Logger.Error("expire on timer failed",
				logx.String("assignment_id", assignmentID),
				logx.Err(err),
			)
		}
	})

	m = assignment.NewMachine(in.Store, registry, in.Cfg.Assignment.Window, 0, in.Logger, in.Created, in.Resolutions)
	return m, registry
}

type projectorIn struct {
	dig.In

	Store  *repository.RetryingStore
	Logger logx.Logger
	Stale  prometheus.Counter `name:"stale_events_total"`
}

func newProjector(in projectorIn) *projector.Projector {
	return projector.NewProjector(in.Store, in.Logger, in.Stale)
}

// newNotifyClient connects to RabbitMQ; notifications are optional and a
// missing AMQP_URL disables them.
func newNotifyClient(cfg *config.Config, logger logx.Logger) (*notify.Client, error) {
	if cfg.AMQP.URL == "" {
		return nil, nil
	}
	client, err := notify.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	logger.Info("amqp connected", logx.String("exchange", cfg.AMQP.Exchange))
	return client, nil
}

func newNotifyGateway(client *notify.Client, cfg *config.Config, logger logx.Logger) *notify.Gateway {
	if client == nil {
		return nil
	}
	return notify.NewGateway(client.Channel(), cfg.AMQP.Exchange, logger)
}

type coordinatorIn struct {
	dig.In

	Machine   *assignment.Machine
	Projector *projector.Projector
	Store     *repository.RetryingStore
	Notifier  *notify.Gateway
	Cfg       *config.Config
	Logger    logx.Logger
	Finalized *prometheus.CounterVec `name:"orders_finalized_total"`
}

func newCoordinator(in coordinatorIn) *coordinator.Coordinator {
	if in.Notifier == nil {
		return coordinator.New(in.Machine, in.Projector, in.Store, notify.Nop{}, in.Cfg.Assignment.MaxAttempts, in.Logger, in.Finalized)
	}
	return coordinator.New(in.Machine, in.Projector, in.Store, in.Notifier, in.Cfg.Assignment.MaxAttempts, in.Logger, in.Finalized)
}

// newProcessor binds order-event handling to the process lifecycle context so
// assignment chains outlive the Kafka session that delivered the event.
func newProcessor(ctx context.Context, coord *coordinator.Coordinator) *orders.Processor {
	return orders.NewProcessor(coord, ctx)
}

func newKafkaConsumer(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, makeOrdersHandler(p))
}

func registerEngine(container *dig.Container) error {
	return provideAll(container,
		newStore,
		func(s *repository.RetryingStore) assignmentSource { return s },
		newMachineWithTimers,
		newProjector,
		newNotifyClient,
		newNotifyGateway,
		newCoordinator,
		newProcessor,
		newKafkaConsumer,
	)
}
