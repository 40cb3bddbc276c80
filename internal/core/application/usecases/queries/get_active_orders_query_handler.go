package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

// GetActiveOrdersQueryHandler retrieves a driver's active orders from the database.
//
// Example:
//
//	handler := NewGetActiveOrdersQueryHandler(db)
//	query, err := NewGetActiveOrdersQuery(driverID)
//	if err != nil {
//	    return err
//	}
//
//	activeOrders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active orders: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Driver is carrying %d orders\n", len(activeOrders))
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so the list
// reflects pickup priority.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			pickup_address,
			pickup_lat,
			pickup_lon,
			dropoff_address,
			dropoff_lat,
			dropoff_lon,
			distance_km,
			estimated_minutes,
			price_total,
			created_at
		FROM orders
		WHERE driver_id = ? AND status IN (?, ?, ?)
		ORDER BY created_at
	`, query.DriverID().Bytes(),
		order.Assigned.String(), order.PickedUp.String(), order.InTransit.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetActiveOrdersQueryResponse, 0)
	for rows.Next() {
		var response GetActiveOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.Number,
			&response.Status,
			&response.PickupAddress,
			&response.PickupLat,
			&response.PickupLon,
			&response.DropoffAddress,
			&response.DropoffLat,
			&response.DropoffLon,
			&response.DistanceKm,
			&response.EstimatedMinutes,
			&response.PriceTotal,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.OrderID = orderID
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
