package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// MarkInTransitCommandHandler records the transit step of a picked-up order.
type MarkInTransitCommandHandler struct {
	runner transitionRunner
}

// NewMarkInTransitCommandHandler creates a handler for transit confirmations.
func NewMarkInTransitCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, orderLocks, driverLocks *keyedmutex.KeyedMutex) MarkInTransitCommandHandler {
	return MarkInTransitCommandHandler{runner: newTransitionRunner(uowFactory, geoIndex, publisher, orderLocks, driverLocks)}
}

// Handle processes the transit confirmation.
func (h *MarkInTransitCommandHandler) Handle(ctx context.Context, cmd MarkInTransitCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, cmd.OrderID(),
		func(o *order.Order, driverPos *kernel.GeoPoint, now time.Time) (order.TransitionResult, error) {
			return o.MarkInTransit(driverPos, now)
		})
}
