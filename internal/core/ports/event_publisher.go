package ports

import (
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

// EventPublisher fans order lifecycle and location events out to subscribed
// clients. Publishing is fire-and-forget: implementations must never block
// the caller or fail the business operation.
type EventPublisher interface {
	// PublishOrderUpdate announces an order transition on the order's topic,
	// the customer's queue, the assigned driver's queue and the admin topic.
	PublishOrderUpdate(aggregate *order.Order, event order.TrackingEvent)

	// PublishLocationUpdate announces a driver position fix on the order's
	// tracking topic.
	PublishLocationUpdate(orderID, driverID kernel.UUID, point kernel.GeoPoint)
}
