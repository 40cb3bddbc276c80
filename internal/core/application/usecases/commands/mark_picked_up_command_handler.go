package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// MarkPickedUpCommandHandler records the pickup step of an assigned order.
type MarkPickedUpCommandHandler struct {
	runner transitionRunner
}

// NewMarkPickedUpCommandHandler creates a handler for pickup confirmations.
func NewMarkPickedUpCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, orderLocks, driverLocks *keyedmutex.KeyedMutex) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{runner: newTransitionRunner(uowFactory, geoIndex, publisher, orderLocks, driverLocks)}
}

// Handle processes the pickup confirmation.
func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(o *order.Order, driverPos *kernel.GeoPoint, now time.Time) (order.TransitionResult, error) {
			return o.MarkPickedUp(driverPos, now)
		})
}
