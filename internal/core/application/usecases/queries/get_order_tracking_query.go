package queries

import (
	"errors"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// GetOrderTrackingQuery retrieves the tracking timeline of a single order.
// Returns the order summary together with every recorded tracking event,
// newest first, so a client can render the timeline without re-sorting.
//
// Example:
//
//	query, err := NewGetOrderTrackingQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrderTrackingQueryHandler(db)
//
//	tracking, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order tracking: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", tracking.Number, tracking.Status)
//	for _, event := range tracking.Events {
//	    fmt.Printf("%s  %s\n", event.OccurredAt.Format(time.RFC3339), event.Note)
//	}
type GetOrderTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a query for one order's tracking timeline.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return GetOrderTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order being tracked.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderTrackingQueryIsNotConstructed if validation fails.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// GetOrderTrackingQueryResponse is the order summary plus its timeline.
type GetOrderTrackingQueryResponse struct {
	OrderID          kernel.UUID
	Number           string
	Status           string
	DriverID         *kernel.UUID
	PickupAddress    string
	DropoffAddress   string
	DistanceKm       float64
	EstimatedMinutes int
	PriceTotal       float64
	Events           []TrackingEventResponse
}

// TrackingEventResponse is one entry of the tracking timeline. Position is
// optional; events recorded before the driver reported any fix have none.
type TrackingEventResponse struct {
	Status     string
	Lat        *float64
	Lon        *float64
	Note       string
	OccurredAt time.Time
}
