package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// FailOrderCommandHandler fails an order from any non-terminal status.
// An assigned driver is released back to the dispatch pool.
type FailOrderCommandHandler struct {
	runner transitionRunner
}

// NewFailOrderCommandHandler creates a handler for delivery failures.
func NewFailOrderCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, orderLocks, driverLocks *keyedmutex.KeyedMutex) FailOrderCommandHandler {
	return FailOrderCommandHandler{runner: newTransitionRunner(uowFactory, geoIndex, publisher, orderLocks, driverLocks)}
}

// Handle processes the failure report.
func (h *FailOrderCommandHandler) Handle(ctx context.Context, cmd FailOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(o *order.Order, driverPos *kernel.GeoPoint, now time.Time) (order.TransitionResult, error) {
			return o.Fail(cmd.Reason(), driverPos, now)
		})
}
