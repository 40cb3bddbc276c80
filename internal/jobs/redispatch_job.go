package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/commands"
)

// RedispatchJob periodically retries dispatch for orders still waiting for
// a driver. Orders stay pending when dispatch finds nobody; this sweep
// picks them up as drivers come online or free up capacity.
type RedispatchJob struct {
	uowFactory commands.OrderUoWFactory
	handler    commands.DispatchOrderCommandHandler
	cron       *cron.Cron
	schedule   string
	logger     *slog.Logger
}

// NewRedispatchJob creates the redispatch sweep. schedule is a six-field
// cron expression with seconds, e.g. "*/10 * * * * *".
func NewRedispatchJob(uowFactory commands.OrderUoWFactory,
	handler commands.DispatchOrderCommandHandler,
	schedule string, logger *slog.Logger) *RedispatchJob {
	return &RedispatchJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		schedule:   schedule,
		logger:     logger.With("component", "redispatch_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *RedispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Redispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *RedispatchJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Redispatch job stopped")
}

func (j *RedispatchJob) run() {
	ctx := context.Background()

	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Redispatch sweep failed to begin", "error", err)
		return
	}

	pending, err := uow.OrderRepository().GetAllPending(ctx)
	rollbackErr := uow.Rollback(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Redispatch sweep failed to list pending orders", "error", err)
		return
	}
	if rollbackErr != nil {
		j.logger.ErrorContext(ctx, "Redispatch sweep failed to release read transaction", "error", rollbackErr)
	}

	for _, pendingOrder := range pending {
		cmd, cmdErr := commands.NewDispatchOrderCommand(pendingOrder.ID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Redispatch sweep built an invalid command",
				"order_id", pendingOrder.ID().String(), "error", cmdErr)
			continue
		}

		if dispatchErr := j.handler.Handle(ctx, cmd); dispatchErr != nil {
			// No driver yet is the expected outcome for most sweeps.
			if !errors.Is(dispatchErr, commands.ErrNoDriverAvailable) {
				j.logger.ErrorContext(ctx, "Redispatch failed",
					"order_id", pendingOrder.ID().String(), "error", dispatchErr)
			}
		} else {
			j.logger.InfoContext(ctx, "Pending order redispatched",
				"order_id", pendingOrder.ID().String())
		}
	}
}
