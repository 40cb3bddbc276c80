package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/domain/services"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/observability"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Prices the order through the pricing engine, persists it in Pending status
// and announces it to subscribers. Dispatch happens separately.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    *services.PricingEngine
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, pricing *services.PricingEngine,
	publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		publisher:  publisher,
	}
}

// Handle processes the order placement command and returns the created order.
// The quote is computed once at placement and embedded in the order; it is
// never recomputed afterwards.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	distanceKm, err := cmd.Pickup().Point().DistanceKm(cmd.Dropoff().Point())
	if err != nil {
		return nil, err
	}

	quote, err := h.pricing.Quote(distanceKm, cmd.Package().WeightKg(), cmd.PromoCode(), now)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(cmd.CustomerID(), cmd.Pickup(), cmd.Dropoff(), cmd.Package(),
		quote.Price, quote.DistanceKm, quote.EstimatedMinutes,
		cmd.ScheduledPickupAt(), cmd.ScheduledDeliveryAt(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	observability.OrdersCreatedTotal.Inc()
	h.publishCreated(newOrder, now)
	return newOrder, nil
}

// publishCreated announces the new order without a tracking event: the
// timeline starts with the first driver-facing step.
func (h *CreateOrderCommandHandler) publishCreated(newOrder *order.Order, now time.Time) {
	event, err := order.NewTrackingEvent(newOrder.ID(), order.Pending, nil, "Order created", now)
	if err != nil {
		return
	}
	h.publisher.PublishOrderUpdate(newOrder, event)
}
