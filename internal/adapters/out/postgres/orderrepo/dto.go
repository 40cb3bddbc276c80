// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Tracking events are child rows owned by the order; they are written and
// deleted with it.
type OrderDTO struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Number               string      `gorm:"uniqueIndex;size:16"`
	CustomerID           uuid.UUID   `gorm:"type:uuid;index"`
	DriverID             *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup               WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff              WaypointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	PackageType          string
	PackageWeightKg      float64
	PackageNote          string
	PackageDimensions    string
	SpecialInstructions  string
	PriceBase            float64
	PriceDistance        float64
	PriceWeight          float64
	PricePeak            float64
	PriceDiscount        float64
	PriceTotal           float64
	PromoCode            string
	DistanceKm           float64
	EstimatedMinutes     int
	Status               string `gorm:"index;size:16"`
	ScheduledPickupAt    *time.Time
	ScheduledDeliveryAt  *time.Time
	PickedUpAt           *time.Time
	DeliveredAt          *time.Time
	DeliverySignatureURL *string
	DeliveryPhotoURL     *string
	DeliveryNotes        *string
	DriverRating         *int
	CancelReason         string
	CancelledAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Events []TrackingEventDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// WaypointDTO represents an embedded waypoint within the order table.
type WaypointDTO struct {
	Address      string
	Lat          float64
	Lon          float64
	ContactName  string
	ContactPhone string
}

// TrackingEventDTO represents one row of an order's tracking timeline.
type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"size:16"`
	Lat        *float64
	Lon        *float64
	Note       string
	OccurredAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	events := make([]TrackingEventDTO, 0, len(aggregate.Events()))
	for _, event := range aggregate.Events() {
		events = append(events, eventFromDomain(event))
	}

	var signatureURL, photoURL, deliveryNotes *string
	if proof := aggregate.Proof(); proof != nil {
		sig, photo, notes := proof.SignatureURL, proof.PhotoURL, proof.Notes
		signatureURL, photoURL, deliveryNotes = &sig, &photo, &notes
	}

	price := aggregate.Price()
	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		Number:               aggregate.Number(),
		CustomerID:           aggregate.CustomerID().Bytes(),
		DriverID:             driverID,
		Pickup:               waypointFromDomain(aggregate.Pickup()),
		Dropoff:              waypointFromDomain(aggregate.Dropoff()),
		PackageType:          aggregate.Package().Type().String(),
		PackageWeightKg:      aggregate.Package().WeightKg(),
		PackageNote:          aggregate.Package().Description(),
		PackageDimensions:    aggregate.Package().Dimensions(),
		SpecialInstructions:  aggregate.Package().SpecialInstructions(),
		PriceBase:            price.Base(),
		PriceDistance:        price.DistanceCharge(),
		PriceWeight:          price.WeightSurcharge(),
		PricePeak:            price.PeakSurcharge(),
		PriceDiscount:        price.Discount(),
		PriceTotal:           price.Total(),
		PromoCode:            price.PromoCode(),
		DistanceKm:           aggregate.DistanceKm(),
		EstimatedMinutes:     aggregate.EstimatedMinutes(),
		Status:               aggregate.Status().String(),
		ScheduledPickupAt:    aggregate.ScheduledPickupAt(),
		ScheduledDeliveryAt:  aggregate.ScheduledDeliveryAt(),
		PickedUpAt:           aggregate.PickedUpAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		DeliverySignatureURL: signatureURL,
		DeliveryPhotoURL:     photoURL,
		DeliveryNotes:        deliveryNotes,
		DriverRating:         aggregate.DriverRating(),
		CancelReason:         aggregate.CancelReason(),
		CancelledAt:          aggregate.CancelledAt(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
		Events:               events,
	}
}

func waypointFromDomain(w order.Waypoint) WaypointDTO {
	return WaypointDTO{
		Address:      w.Address(),
		Lat:          w.Point().Lat(),
		Lon:          w.Point().Lon(),
		ContactName:  w.Contact().Name(),
		ContactPhone: w.Contact().Phone(),
	}
}

func eventFromDomain(event order.TrackingEvent) TrackingEventDTO {
	var lat, lon *float64
	if pos := event.Position(); pos != nil {
		la, lo := pos.Lat(), pos.Lon()
		lat, lon = &la, &lo
	}

	return TrackingEventDTO{
		ID:         event.ID().Bytes(),
		OrderID:    event.OrderID().Bytes(),
		Status:     event.Status().String(),
		Lat:        lat,
		Lon:        lon,
		Note:       event.Note(),
		OccurredAt: event.OccurredAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including the timeline using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pickup, err := waypointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := waypointToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	packageType, err := order.PackageTypeFromString(dto.PackageType)
	if err != nil {
		return nil, err
	}
	pkg, err := order.NewPackageInfo(packageType, dto.PackageWeightKg, dto.PackageNote,
		dto.PackageDimensions, dto.SpecialInstructions)
	if err != nil {
		return nil, err
	}

	price, err := order.NewPriceBreakdown(dto.PriceBase, dto.PriceDistance, dto.PriceWeight,
		dto.PricePeak, dto.PriceDiscount, dto.PriceTotal, dto.PromoCode)
	if err != nil {
		return nil, err
	}

	status, err := statusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	events := make([]order.TrackingEvent, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		event, eventErr := eventToDomain(eventDTO)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	var proof *order.DeliveryProof
	if dto.DeliverySignatureURL != nil || dto.DeliveryPhotoURL != nil || dto.DeliveryNotes != nil {
		proof = &order.DeliveryProof{
			SignatureURL: stringOrEmpty(dto.DeliverySignatureURL),
			PhotoURL:     stringOrEmpty(dto.DeliveryPhotoURL),
			Notes:        stringOrEmpty(dto.DeliveryNotes),
		}
	}

	return order.RestoreOrder(id, dto.Number, customerID, driverID, pickup, dropoff, pkg, price,
		dto.DistanceKm, dto.EstimatedMinutes, status,
		dto.ScheduledPickupAt, dto.ScheduledDeliveryAt, dto.PickedUpAt, dto.DeliveredAt,
		proof, dto.DriverRating, dto.CancelReason, dto.CancelledAt,
		events, dto.CreatedAt, dto.UpdatedAt), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func waypointToDomain(dto WaypointDTO) (order.Waypoint, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return order.Waypoint{}, err
	}
	contact, err := order.NewContact(dto.ContactName, dto.ContactPhone)
	if err != nil {
		return order.Waypoint{}, err
	}
	return order.NewWaypoint(dto.Address, point, contact)
}

func eventToDomain(dto TrackingEventDTO) (order.TrackingEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.TrackingEvent{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TrackingEvent{}, err
	}
	status, err := statusFromString(dto.Status)
	if err != nil {
		return order.TrackingEvent{}, err
	}

	var position *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return order.TrackingEvent{}, pointErr
		}
		position = &point
	}

	return order.RestoreTrackingEvent(id, orderID, status, position, dto.Note, dto.OccurredAt), nil
}

func statusFromString(s string) (order.Status, error) {
	for _, status := range []order.Status{order.Pending, order.Assigned, order.PickedUp,
		order.InTransit, order.Delivered, order.Cancelled, order.Failed} {
		if status.String() == s {
			return status, nil
		}
	}
	return order.Unknown, order.Unknown.Validate()
}
