package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// CompleteDeliveryCommandHandler finishes an in-transit order. The driver
// is credited the order total and returned to the dispatch pool.
type CompleteDeliveryCommandHandler struct {
	runner transitionRunner
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, orderLocks, driverLocks *keyedmutex.KeyedMutex) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{runner: newTransitionRunner(uowFactory, geoIndex, publisher, orderLocks, driverLocks)}
}

// Handle processes the delivery confirmation.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	proof := order.DeliveryProof{
		SignatureURL: cmd.SignatureURL(),
		PhotoURL:     cmd.PhotoURL(),
		Notes:        cmd.Notes(),
	}
	return h.runner.run(ctx, cmd.OrderID(),
		func(o *order.Order, driverPos *kernel.GeoPoint, now time.Time) (order.TransitionResult, error) {
			return o.CompleteDelivery(proof, driverPos, now)
		})
}
