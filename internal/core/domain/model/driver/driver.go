package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

// initialRating is the rating every driver starts with before any customer
// has rated them.
const initialRating = 5.0

// ErrStaleLocationUpdate is returned when a location report is older than
// the driver's last accepted fix. Last write wins; stale reports are dropped.
var ErrStaleLocationUpdate = errors.New("stale location update")

// StaleLocationUpdateError reports a location fix that arrived out of order.
type StaleLocationUpdateError struct {
	DriverID   kernel.UUID
	ReportedAt time.Time
	LastFixAt  time.Time
}

// NewStaleLocationUpdateError creates a StaleLocationUpdateError.
func NewStaleLocationUpdateError(driverID kernel.UUID, reportedAt, lastFixAt time.Time) *StaleLocationUpdateError {
	return &StaleLocationUpdateError{DriverID: driverID, ReportedAt: reportedAt, LastFixAt: lastFixAt}
}

func (e *StaleLocationUpdateError) Error() string {
	return fmt.Sprintf("%s: driver %s reported %s, last fix is %s",
		ErrStaleLocationUpdate, e.DriverID, e.ReportedAt.Format(time.RFC3339Nano),
		e.LastFixAt.Format(time.RFC3339Nano))
}

func (e *StaleLocationUpdateError) Unwrap() error {
	return ErrStaleLocationUpdate
}

// VehicleType classifies the driver's vehicle.
type VehicleType int

const (
	// VehicleTypeUnknown represents an invalid or undefined vehicle type.
	VehicleTypeUnknown VehicleType = iota

	// VehicleTypeBike is a bicycle.
	VehicleTypeBike

	// VehicleTypeMotorcycle is a motorcycle or scooter.
	VehicleTypeMotorcycle

	// VehicleTypeCar is a passenger car.
	VehicleTypeCar

	// VehicleTypeVan is a cargo van.
	VehicleTypeVan
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleTypeBike:       "BIKE",
		VehicleTypeMotorcycle: "MOTORCYCLE",
		VehicleTypeCar:        "CAR",
		VehicleTypeVan:        "VAN",
	}
}

// VehicleTypeFromString parses a wire name into a VehicleType.
func VehicleTypeFromString(s string) (VehicleType, error) {
	for t, str := range getVehicleTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return VehicleTypeUnknown, errs.NewValueIsInvalidErrorWithCause("vehicleType",
		fmt.Errorf("unknown vehicle type %q", s))
}

// Validate checks if the VehicleType is one of the defined classifications.
func (t VehicleType) Validate() error {
	if _, ok := getVehicleTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidError("vehicleType")
	}
	return nil
}

// String returns the wire name of the vehicle type.
func (t VehicleType) String() string {
	if s, ok := getVehicleTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Position is a timestamped location fix.
type Position struct {
	Point      kernel.GeoPoint
	ReportedAt time.Time
}

// Driver is the aggregate root for a courier. It owns availability, the last
// accepted location fix, the running rating and the delivery counters.
type Driver struct {
	id                  kernel.UUID
	name                string
	phone               string
	vehicleType         VehicleType
	vehiclePlate        string
	status              Status
	position            *Position
	rating              float64
	ratedCount          int
	totalDeliveries     int
	completedDeliveries int
	cancelledDeliveries int
	earnings            float64
	createdAt           time.Time
	updatedAt           time.Time
	constructorGuard    guard.ConstructorGuard
}

// NewDriver registers a new driver. New drivers start offline, unrated at
// the initial rating and with no known position.
func NewDriver(name, phone string, vehicleType VehicleType, vehiclePlate string,
	now time.Time) (*Driver, error) {
	err := errors.Join(
		validateRequiredString("name", name),
		validateRequiredString("phone", phone),
		vehicleType.Validate(),
		validateRequiredString("vehiclePlate", vehiclePlate),
		validateNow(now),
	)
	if err != nil {
		return nil, err
	}

	return &Driver{
		id:               kernel.NewUUID(),
		name:             name,
		phone:            phone,
		vehicleType:      vehicleType,
		vehiclePlate:     vehiclePlate,
		status:           StatusOffline,
		rating:           initialRating,
		createdAt:        now,
		updatedAt:        now,
		constructorGuard: guard.NewConstructorGuard(),
	}, nil
}

// RestoreDriver reconstructs a driver from persistence without re-validating
// business rules.
func RestoreDriver(id kernel.UUID, name, phone string, vehicleType VehicleType, vehiclePlate string,
	status Status, position *Position, rating float64, ratedCount, totalDeliveries,
	completedDeliveries, cancelledDeliveries int, earnings float64,
	createdAt, updatedAt time.Time) *Driver {
	return &Driver{
		id:                  id,
		name:                name,
		phone:               phone,
		vehicleType:         vehicleType,
		vehiclePlate:        vehiclePlate,
		status:              status,
		position:            position,
		rating:              rating,
		ratedCount:          ratedCount,
		totalDeliveries:     totalDeliveries,
		completedDeliveries: completedDeliveries,
		cancelledDeliveries: cancelledDeliveries,
		earnings:            earnings,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		constructorGuard:    guard.NewConstructorGuard(),
	}
}

func validateRequiredString(paramName, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

func validateNow(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}
	return nil
}

// Validate checks that the driver was created through a constructor.
func (d *Driver) Validate() error {
	return d.constructorGuard.Validate(errs.NewValueIsRequiredError("driver"))
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID { return d.id }

// Name returns the driver's name.
func (d *Driver) Name() string { return d.name }

// Phone returns the driver's phone number.
func (d *Driver) Phone() string { return d.phone }

// VehicleType returns the driver's vehicle classification.
func (d *Driver) VehicleType() VehicleType { return d.vehicleType }

// VehiclePlate returns the vehicle's plate number.
func (d *Driver) VehiclePlate() string { return d.vehiclePlate }

// Status returns the driver's availability.
func (d *Driver) Status() Status { return d.status }

// Position returns the last accepted location fix, or nil before the first
// report.
func (d *Driver) Position() *Position { return d.position }

// Rating returns the driver's running rating in [1, 5].
func (d *Driver) Rating() float64 { return d.rating }

// RatedCount returns how many ratings have been folded into Rating.
func (d *Driver) RatedCount() int { return d.ratedCount }

// TotalDeliveries returns the count of deliveries the driver completed.
func (d *Driver) TotalDeliveries() int { return d.totalDeliveries }

// CompletedDeliveries returns the count of successful deliveries.
func (d *Driver) CompletedDeliveries() int { return d.completedDeliveries }

// CancelledDeliveries returns the count of assignments lost to cancellation
// or failure.
func (d *Driver) CancelledDeliveries() int { return d.cancelledDeliveries }

// Earnings returns the driver's accumulated earnings.
func (d *Driver) Earnings() float64 { return d.earnings }

// CreatedAt returns the registration time.
func (d *Driver) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last mutation time.
func (d *Driver) UpdatedAt() time.Time { return d.updatedAt }

// UpdateLocation accepts a location fix. Fixes older than the last accepted
// one are rejected with ErrStaleLocationUpdate and change nothing.
func (d *Driver) UpdateLocation(point kernel.GeoPoint, reportedAt time.Time) error {
	err := errors.Join(point.Validate(), validateNow(reportedAt))
	if err != nil {
		return err
	}
	if d.position != nil && reportedAt.Before(d.position.ReportedAt) {
		return NewStaleLocationUpdateError(d.id, reportedAt, d.position.ReportedAt)
	}

	d.position = &Position{Point: point, ReportedAt: reportedAt}
	d.updatedAt = reportedAt
	return nil
}

// GoOnline makes the driver available for dispatch.
func (d *Driver) GoOnline(now time.Time) error {
	if d.status == StatusBusy {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("driver is busy"))
	}
	d.status = StatusOnline
	d.updatedAt = now
	return nil
}

// GoOffline stops new assignments. A busy driver must finish their
// deliveries first.
func (d *Driver) GoOffline(now time.Time) error {
	if d.status == StatusBusy {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("driver has active deliveries"))
	}
	d.status = StatusOffline
	d.updatedAt = now
	return nil
}

// MarkBusy records that the driver reached their concurrent-order capacity.
func (d *Driver) MarkBusy(now time.Time) {
	d.status = StatusBusy
	d.updatedAt = now
}

// MarkAvailable returns a busy driver to the dispatch pool.
func (d *Driver) MarkAvailable(now time.Time) {
	if d.status == StatusBusy {
		d.status = StatusOnline
		d.updatedAt = now
	}
}

// CompleteDelivery credits a finished delivery: counters up, earnings added.
func (d *Driver) CompleteDelivery(earnings float64, now time.Time) error {
	if earnings < 0 {
		return errs.NewValueIsInvalidError("earnings")
	}
	d.totalDeliveries++
	d.completedDeliveries++
	d.earnings += earnings
	d.updatedAt = now
	return nil
}

// RecordCancellation records an assignment lost to cancellation or failure.
func (d *Driver) RecordCancellation(now time.Time) {
	d.cancelledDeliveries++
	d.updatedAt = now
}

// SubmitRating folds a customer rating into the running average:
//
//	rating = (rating*ratedCount + r) / (ratedCount + 1)
//
// The first submitted rating therefore replaces the initial seed exactly.
func (d *Driver) SubmitRating(rating int, now time.Time) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	d.rating = (d.rating*float64(d.ratedCount) + float64(rating)) / float64(d.ratedCount+1)
	d.ratedCount++
	d.updatedAt = now
	return nil
}
