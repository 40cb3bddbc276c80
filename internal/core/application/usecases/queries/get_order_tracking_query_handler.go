package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
)

// GetOrderTrackingQueryHandler reads an order's tracking timeline straight
// from the database, bypassing the aggregate.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for order tracking queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle executes the query. Events come back newest first; the id tie-break
// makes the order of same-timestamp events arbitrary but stable across reads.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	var response GetOrderTrackingQueryResponse
	var id uuid.UUID
	var driverID uuid.NullUUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			driver_id,
			pickup_address,
			dropoff_address,
			distance_km,
			estimated_minutes,
			price_total
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&response.Number,
		&response.Status,
		&driverID,
		&response.PickupAddress,
		&response.DropoffAddress,
		&response.DistanceKm,
		&response.EstimatedMinutes,
		&response.PriceTotal,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	response.OrderID = orderID

	if driverID.Valid {
		dID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return GetOrderTrackingQueryResponse{}, idErr
		}
		response.DriverID = &dID
	}

	events, err := h.loadEvents(ctx, query.OrderID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	response.Events = events

	return response, nil
}

func (h GetOrderTrackingQueryHandler) loadEvents(
	ctx context.Context,
	orderID kernel.UUID,
) ([]TrackingEventResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			lat,
			lon,
			note,
			occurred_at
		FROM tracking_events
		WHERE order_id = ?
		ORDER BY occurred_at DESC, id DESC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEventResponse, 0)
	for rows.Next() {
		var event TrackingEventResponse
		var lat, lon sql.NullFloat64

		err = rows.Scan(
			&event.Status,
			&lat,
			&lon,
			&event.Note,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		if lat.Valid && lon.Valid {
			event.Lat, event.Lon = &lat.Float64, &lon.Float64
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
