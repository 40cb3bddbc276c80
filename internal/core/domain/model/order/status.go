package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the unwrap target for every illegal state-machine
// move. Callers classify with errors.Is and surface the failure as a conflict.
var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports an attempted transition that the order
// lifecycle does not allow. The order is left untouched when it is returned.
type InvalidTransitionError struct {
	From  Status
	Event string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// source status and attempted event name.
func NewInvalidTransitionError(from Status, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidTransition, e.Event, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders
// follow the delivery workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │            │
//	   └────────────┴──────> Cancelled
//	any non-terminal ──────> Failed
//
// Delivered, Cancelled and Failed are terminal: no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order awaits driver assignment.
	Pending

	// Assigned indicates a driver has been assigned to the order.
	Assigned

	// PickedUp indicates the driver has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the recipient.
	InTransit

	// Delivered indicates successful delivery. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before pickup. Terminal.
	Cancelled

	// Failed indicates the delivery could not be completed. Terminal.
	Failed
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		Failed:    "FAILED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "PENDING",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
		Failed:    "FAILED",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidTransition, s)
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "ASSIGNED", ...).
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Failed
}

// IsActive reports whether a driver is currently working the order.
// Active orders receive location fan-out from their driver's position pushes.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment: a driver reference is present exactly on Assigned and
// later statuses, except that Cancelled may retain the driver it had before
// cancellation.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Pending {
		return fmt.Errorf("%w: %s must not have a driver", ErrInvalidTransition, s)
	}
	if !hasDriver && (s == Assigned || s == PickedUp || s == InTransit || s == Delivered) {
		return fmt.Errorf("%w: %s must have a driver", ErrInvalidTransition, s)
	}
	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Pending -> Assigned
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, NewInvalidTransitionError(s, "assign")
	}
	return Assigned, nil
}

// PickUp transitions the status to PickedUp.
//
// Valid transitions:
//   - Assigned -> PickedUp
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, NewInvalidTransitionError(s, "pickup")
	}
	return PickedUp, nil
}

// Transit transitions the status to InTransit.
//
// Valid transitions:
//   - PickedUp -> InTransit
func (s Status) Transit() (Status, error) {
	if s != PickedUp {
		return 0, NewInvalidTransitionError(s, "transit")
	}
	return InTransit, nil
}

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - InTransit -> Delivered
func (s Status) Deliver() (Status, error) {
	if s != InTransit {
		return 0, NewInvalidTransitionError(s, "deliver")
	}
	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Assigned -> Cancelled
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Assigned {
		return 0, NewInvalidTransitionError(s, "cancel")
	}
	return Cancelled, nil
}

// Fail transitions the status to Failed.
//
// Valid transitions: any non-terminal status -> Failed.
func (s Status) Fail() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, NewInvalidTransitionError(s, "fail")
	}
	if s.IsTerminal() {
		return 0, NewInvalidTransitionError(s, "fail")
	}
	return Failed, nil
}
