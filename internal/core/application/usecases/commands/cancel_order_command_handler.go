package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// CancelOrderCommandHandler cancels an order that has not been picked up.
// An assigned driver is released back to the dispatch pool.
//
// A cancel racing an in-flight dispatch serializes on the order lock: if
// dispatch wins, the cancel still succeeds from Assigned and undoes the
// assignment.
type CancelOrderCommandHandler struct {
	runner transitionRunner
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, orderLocks, driverLocks *keyedmutex.KeyedMutex) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{runner: newTransitionRunner(uowFactory, geoIndex, publisher, orderLocks, driverLocks)}
}

// Handle processes the cancellation.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(o *order.Order, _ *kernel.GeoPoint, now time.Time) (order.TransitionResult, error) {
			return o.Cancel(cmd.Reason(), now)
		})
}
