package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

// DriverEffectKind names the side effect a transition has on the assigned
// driver's record. The caller applies the effect; the order never mutates
// the driver.
type DriverEffectKind int

const (
	// DriverEffectNone means the transition leaves the driver untouched.
	DriverEffectNone DriverEffectKind = iota

	// DriverEffectCompleted means the driver finished this delivery and
	// should be credited the earnings and freed for new work.
	DriverEffectCompleted

	// DriverEffectReleased means the order left the driver's hands without
	// completion (cancel, failure) and the driver should be freed.
	DriverEffectReleased
)

// DriverEffect describes what the caller must do to the driver after a
// successful transition.
type DriverEffect struct {
	Kind     DriverEffectKind
	DriverID kernel.UUID
	Earnings float64
}

// TransitionResult carries everything a successful transition produced:
// the tracking event to fan out and the driver effect to apply.
type TransitionResult struct {
	Event  TrackingEvent
	Driver DriverEffect
}

// DeliveryProof is what the driver collected at the door: a signature
// capture, a photo of the handed-over package and free-form notes. All
// fields are optional; recipients refuse signatures more often than not.
type DeliveryProof struct {
	SignatureURL string
	PhotoURL     string
	Notes        string
}

// Order is the aggregate root of the delivery workflow. It owns the status
// state machine, the append-only tracking timeline and the price quote.
//
// Transitions are pure with respect to everything but the order itself:
// they take the clock and the driver position as arguments and return the
// side effects for the caller to apply.
type Order struct {
	id                  kernel.UUID
	number              string
	customerID          kernel.UUID
	driverID            *kernel.UUID
	pickup              Waypoint
	dropoff             Waypoint
	pkg                 PackageInfo
	price               PriceBreakdown
	distanceKm          float64
	estimatedMinutes    int
	status              Status
	scheduledPickupAt   *time.Time
	scheduledDeliveryAt *time.Time
	pickedUpAt          *time.Time
	deliveredAt         *time.Time
	proof               *DeliveryProof
	driverRating        *int
	cancelReason        string
	cancelledAt         *time.Time
	events              []TrackingEvent
	createdAt           time.Time
	updatedAt           time.Time
	constructorGuard    guard.ConstructorGuard
}

// NewOrder creates a new pending order.
// The order number is derived from the identifier: "ORD-" plus its first
// eight characters, uppercased. No tracking event is recorded at creation;
// the timeline starts with the first driver-facing step.
func NewOrder(customerID kernel.UUID, pickup, dropoff Waypoint, pkg PackageInfo,
	price PriceBreakdown, distanceKm float64, estimatedMinutes int,
	scheduledPickupAt, scheduledDeliveryAt *time.Time, now time.Time) (*Order, error) {
	id := kernel.NewUUID()

	err := errors.Join(
		customerID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		pkg.Validate(),
		price.Validate(),
		validateDistanceKm(distanceKm),
		validateSchedule(scheduledPickupAt, scheduledDeliveryAt),
		validateOccurredAt(now),
	)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:                  id,
		number:              "ORD-" + strings.ToUpper(id.String()[:8]),
		customerID:          customerID,
		pickup:              pickup,
		dropoff:             dropoff,
		pkg:                 pkg,
		price:               price,
		distanceKm:          distanceKm,
		estimatedMinutes:    estimatedMinutes,
		status:              Pending,
		scheduledPickupAt:   scheduledPickupAt,
		scheduledDeliveryAt: scheduledDeliveryAt,
		createdAt:           now,
		updatedAt:           now,
		constructorGuard:    guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence without re-validating
// business rules.
func RestoreOrder(id kernel.UUID, number string, customerID kernel.UUID, driverID *kernel.UUID,
	pickup, dropoff Waypoint, pkg PackageInfo, price PriceBreakdown,
	distanceKm float64, estimatedMinutes int, status Status,
	scheduledPickupAt, scheduledDeliveryAt, pickedUpAt, deliveredAt *time.Time,
	proof *DeliveryProof, driverRating *int, cancelReason string, cancelledAt *time.Time,
	events []TrackingEvent, createdAt, updatedAt time.Time) *Order {
	return &Order{
		id:                  id,
		number:              number,
		customerID:          customerID,
		driverID:            driverID,
		pickup:              pickup,
		dropoff:             dropoff,
		pkg:                 pkg,
		price:               price,
		distanceKm:          distanceKm,
		estimatedMinutes:    estimatedMinutes,
		status:              status,
		scheduledPickupAt:   scheduledPickupAt,
		scheduledDeliveryAt: scheduledDeliveryAt,
		pickedUpAt:          pickedUpAt,
		deliveredAt:         deliveredAt,
		proof:               proof,
		driverRating:        driverRating,
		cancelReason:        cancelReason,
		cancelledAt:         cancelledAt,
		events:              events,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		constructorGuard:    guard.NewConstructorGuard(),
	}
}

func validateDistanceKm(v float64) error {
	if v < 0 {
		return errs.NewValueIsInvalidError("distanceKm")
	}
	return nil
}

func validateSchedule(pickupAt, deliveryAt *time.Time) error {
	if pickupAt != nil && deliveryAt != nil && deliveryAt.Before(*pickupAt) {
		return errs.NewValueIsInvalidError("scheduledDeliveryAt")
	}
	return nil
}

// Validate checks that the order was created through a constructor and its
// driver reference is consistent with its status.
func (o *Order) Validate() error {
	if err := o.constructorGuard.Validate(errs.NewValueIsRequiredError("order")); err != nil {
		return err
	}
	return o.status.ValidateCanHaveDriver(o.driverID != nil)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Number returns the human-facing order number ("ORD-XXXXXXXX").
func (o *Order) Number() string { return o.number }

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// DriverID returns the assigned driver's identifier, or nil while pending.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// Pickup returns the pickup waypoint.
func (o *Order) Pickup() Waypoint { return o.pickup }

// Dropoff returns the delivery waypoint.
func (o *Order) Dropoff() Waypoint { return o.dropoff }

// Package returns the package description.
func (o *Order) Package() PackageInfo { return o.pkg }

// Price returns the quoted price breakdown.
func (o *Order) Price() PriceBreakdown { return o.price }

// DistanceKm returns the pickup-to-dropoff distance in kilometers.
func (o *Order) DistanceKm() float64 { return o.distanceKm }

// EstimatedMinutes returns the quoted delivery time in minutes.
func (o *Order) EstimatedMinutes() int { return o.estimatedMinutes }

// Status returns the order's current lifecycle status.
func (o *Order) Status() Status { return o.status }

// ScheduledPickupAt returns the requested pickup time, or nil for asap.
func (o *Order) ScheduledPickupAt() *time.Time { return o.scheduledPickupAt }

// ScheduledDeliveryAt returns the requested delivery time, or nil.
func (o *Order) ScheduledDeliveryAt() *time.Time { return o.scheduledDeliveryAt }

// PickedUpAt returns the actual pickup time, or nil before pickup.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns the actual delivery time, or nil before delivery.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Proof returns the delivery proof, or nil before delivery.
func (o *Order) Proof() *DeliveryProof { return o.proof }

// DriverRating returns the customer's rating of the driver for this order,
// or nil when none was submitted.
func (o *Order) DriverRating() *int { return o.driverRating }

// CancelReason returns the reason recorded on cancellation or failure.
func (o *Order) CancelReason() string { return o.cancelReason }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Events returns the tracking timeline in the order it was recorded.
func (o *Order) Events() []TrackingEvent { return o.events }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsTerminal reports whether the order reached a final status.
func (o *Order) IsTerminal() bool { return o.status.IsTerminal() }

// IsActive reports whether a driver is currently working the order.
func (o *Order) IsActive() bool { return o.status.IsActive() }

// Assign assigns the order to a driver and records the tracking step.
//
// Valid from Pending only.
func (o *Order) Assign(driverID kernel.UUID, driverPos *kernel.GeoPoint, now time.Time) (TransitionResult, error) {
	if err := driverID.Validate(); err != nil {
		return TransitionResult{}, err
	}

	status, err := o.status.Assign()
	if err != nil {
		return TransitionResult{}, err
	}

	event, err := NewTrackingEvent(o.id, status, driverPos, "Driver assigned", now)
	if err != nil {
		return TransitionResult{}, err
	}

	o.status = status
	o.driverID = &driverID
	o.appendEvent(event, now)
	return TransitionResult{Event: event}, nil
}

// MarkPickedUp records that the driver collected the package.
//
// Valid from Assigned only.
func (o *Order) MarkPickedUp(driverPos *kernel.GeoPoint, now time.Time) (TransitionResult, error) {
	status, err := o.status.PickUp()
	if err != nil {
		return TransitionResult{}, err
	}

	event, err := NewTrackingEvent(o.id, status, driverPos, "Package picked up", now)
	if err != nil {
		return TransitionResult{}, err
	}

	o.status = status
	o.pickedUpAt = &now
	o.appendEvent(event, now)
	return TransitionResult{Event: event}, nil
}

// MarkInTransit records that the package is on its way.
//
// Valid from PickedUp only.
func (o *Order) MarkInTransit(driverPos *kernel.GeoPoint, now time.Time) (TransitionResult, error) {
	status, err := o.status.Transit()
	if err != nil {
		return TransitionResult{}, err
	}

	event, err := NewTrackingEvent(o.id, status, driverPos, "Package in transit", now)
	if err != nil {
		return TransitionResult{}, err
	}

	o.status = status
	o.appendEvent(event, now)
	return TransitionResult{Event: event}, nil
}

// CompleteDelivery records successful delivery together with the proof the
// driver collected. The returned effect credits the driver with the order
// total and frees the assignment slot.
//
// Valid from InTransit only.
func (o *Order) CompleteDelivery(proof DeliveryProof, driverPos *kernel.GeoPoint,
	now time.Time) (TransitionResult, error) {
	status, err := o.status.Deliver()
	if err != nil {
		return TransitionResult{}, err
	}

	event, err := NewTrackingEvent(o.id, status, driverPos, "Package delivered successfully", now)
	if err != nil {
		return TransitionResult{}, err
	}

	o.status = status
	o.deliveredAt = &now
	o.proof = &proof
	o.appendEvent(event, now)
	return TransitionResult{
		Event: event,
		Driver: DriverEffect{
			Kind:     DriverEffectCompleted,
			DriverID: *o.driverID,
			Earnings: o.price.Total(),
		},
	}, nil
}

// Cancel cancels the order before pickup. When a driver was already
// assigned, the returned effect releases them. The driver reference is kept
// on the order for the audit trail.
//
// Valid from Pending and Assigned only.
func (o *Order) Cancel(reason string, now time.Time) (TransitionResult, error) {
	status, err := o.status.Cancel()
	if err != nil {
		return TransitionResult{}, err
	}

	event, err := NewTrackingEvent(o.id, status, nil, cancelNote(reason), now)
	if err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{Event: event}
	if o.driverID != nil {
		result.Driver = DriverEffect{Kind: DriverEffectReleased, DriverID: *o.driverID}
	}

	o.status = status
	o.cancelReason = reason
	o.cancelledAt = &now
	o.appendEvent(event, now)
	return result, nil
}

// Fail records that the delivery could not be completed. When a driver was
// assigned, the returned effect releases them.
//
// Valid from any non-terminal status.
func (o *Order) Fail(reason string, driverPos *kernel.GeoPoint, now time.Time) (TransitionResult, error) {
	status, err := o.status.Fail()
	if err != nil {
		return TransitionResult{}, err
	}

	event, err := NewTrackingEvent(o.id, status, driverPos, failNote(reason), now)
	if err != nil {
		return TransitionResult{}, err
	}

	result := TransitionResult{Event: event}
	if o.driverID != nil {
		result.Driver = DriverEffect{Kind: DriverEffectReleased, DriverID: *o.driverID}
	}

	o.status = status
	o.cancelReason = reason
	o.appendEvent(event, now)
	return result, nil
}

// SubmitRating records the customer's rating of the driver for this order.
// Ratings are accepted once, on delivered orders only, in [1, 5].
func (o *Order) SubmitRating(rating int, now time.Time) error {
	if o.status != Delivered {
		return NewInvalidTransitionError(o.status, "rate")
	}
	if o.driverRating != nil {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			errors.New("order is already rated"))
	}
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	o.driverRating = &rating
	o.updatedAt = now
	return nil
}

func (o *Order) appendEvent(event TrackingEvent, now time.Time) {
	o.events = append(o.events, event)
	o.updatedAt = now
}

func cancelNote(reason string) string {
	if reason == "" {
		return "Order cancelled"
	}
	return fmt.Sprintf("Order cancelled: %s", reason)
}

func failNote(reason string) string {
	if reason == "" {
		return "Delivery failed"
	}
	return fmt.Sprintf("Delivery failed: %s", reason)
}
