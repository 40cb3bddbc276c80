package ports

import (
	"errors"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
)

// ErrDriverUnavailable is returned by GeoIndex.Reserve when the driver is
// offline, unknown, or already at their concurrent-order capacity.
var ErrDriverUnavailable = errors.New("driver unavailable")

// NearbyDriver is one geo query hit: the driver, their distance from the
// query center and their current load.
type NearbyDriver struct {
	DriverID     kernel.UUID
	DistanceKm   float64
	ActiveOrders int
	Rating       float64
}

// GeoIndex is the in-memory spatial index of driver positions used for
// dispatch. It is the authority on who is nearby and on assignment-slot
// reservations; the database remains the authority on the driver record.
//
// All methods are safe for concurrent use.
type GeoIndex interface {
	// UpdatePosition records a driver's location fix. Last write wins:
	// a fix older than the current one is rejected with
	// driver.ErrStaleLocationUpdate and the index is unchanged.
	UpdatePosition(driverID kernel.UUID, point kernel.GeoPoint, reportedAt time.Time) error

	// SetAvailability sets the driver's dispatch availability.
	SetAvailability(driverID kernel.UUID, status driver.Status)

	// SetRating updates the rating the index reports in query results.
	SetRating(driverID kernel.UUID, rating float64)

	// Query returns the dispatchable drivers within radiusKm of the center,
	// nearest first. Drivers with no known position are excluded.
	Query(center kernel.GeoPoint, radiusKm float64) []NearbyDriver

	// Reserve atomically claims an assignment slot on the driver.
	// Returns ErrDriverUnavailable when the driver is not dispatchable or
	// already at capacity. Exactly one of several concurrent reservations
	// for the last slot succeeds.
	Reserve(driverID kernel.UUID) error

	// Release frees an assignment slot claimed by Reserve.
	Release(driverID kernel.UUID)

	// LastFix returns the driver's last known position, or nil when the
	// index has none.
	LastFix(driverID kernel.UUID) *kernel.GeoPoint

	// Remove forgets the driver entirely.
	Remove(driverID kernel.UUID)
}
