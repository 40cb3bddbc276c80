package queries

import (
	"errors"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var (
	ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
		"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
	)
)

// GetActiveOrdersQuery retrieves the orders a driver is currently carrying.
// Returns orders in assigned, picked-up or in-transit status so the driver
// app can render the work queue.
type GetActiveOrdersQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for one driver's active orders.
func NewGetActiveOrdersQuery(driverID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the identifier of the driver being queried.
func (q GetActiveOrdersQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActiveOrdersQueryIsNotConstructed if validation fails.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse represents one active order on a driver's queue.
type GetActiveOrdersQueryResponse struct {
	OrderID          kernel.UUID
	Number           string
	Status           string
	PickupAddress    string
	PickupLat        float64
	PickupLon        float64
	DropoffAddress   string
	DropoffLat       float64
	DropoffLon       float64
	DistanceKm       float64
	EstimatedMinutes int
	PriceTotal       float64
	CreatedAt        time.Time
}
