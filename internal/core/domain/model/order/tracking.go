package order

import (
	"errors"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

// TrackingEvent is an immutable value object recording one step of an
// order's journey: the status reached, an optional driver position snapshot,
// a human-readable note and the time the step happened.
type TrackingEvent struct {
	id               kernel.UUID
	orderID          kernel.UUID
	status           Status
	position         *kernel.GeoPoint
	note             string
	occurredAt       time.Time
	constructorGuard guard.ConstructorGuard
}

// NewTrackingEvent creates a tracking event for the given order.
// The position is optional: events raised before a driver is known carry nil.
func NewTrackingEvent(orderID kernel.UUID, status Status, position *kernel.GeoPoint,
	note string, occurredAt time.Time) (TrackingEvent, error) {
	id := kernel.NewUUID()

	err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		validateOccurredAt(occurredAt),
	)
	if position != nil {
		err = errors.Join(err, position.Validate())
	}
	if err != nil {
		return TrackingEvent{}, err
	}

	return TrackingEvent{
		id:               id,
		orderID:          orderID,
		status:           status,
		position:         position,
		note:             note,
		occurredAt:       occurredAt,
		constructorGuard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreTrackingEvent reconstructs a tracking event from persistence
// without re-validating business rules.
func RestoreTrackingEvent(id, orderID kernel.UUID, status Status, position *kernel.GeoPoint,
	note string, occurredAt time.Time) TrackingEvent {
	return TrackingEvent{
		id:               id,
		orderID:          orderID,
		status:           status,
		position:         position,
		note:             note,
		occurredAt:       occurredAt,
		constructorGuard: guard.NewConstructorGuard(),
	}
}

func validateOccurredAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	return nil
}

// Validate checks that the event was created through a constructor.
func (e TrackingEvent) Validate() error {
	return e.constructorGuard.Validate(errs.NewValueIsRequiredError("trackingEvent"))
}

// ID returns the event's unique identifier.
func (e TrackingEvent) ID() kernel.UUID { return e.id }

// OrderID returns the identifier of the order the event belongs to.
func (e TrackingEvent) OrderID() kernel.UUID { return e.orderID }

// Status returns the order status the event recorded.
func (e TrackingEvent) Status() Status { return e.status }

// Position returns the driver position snapshot, or nil when none was known.
func (e TrackingEvent) Position() *kernel.GeoPoint { return e.position }

// Note returns the human-readable description of the event.
func (e TrackingEvent) Note() string { return e.note }

// OccurredAt returns the time the event happened.
func (e TrackingEvent) OccurredAt() time.Time { return e.occurredAt }
