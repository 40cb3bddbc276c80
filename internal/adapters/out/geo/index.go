// Package geo provides the in-memory spatial index that dispatch queries
// for nearby drivers. The index mirrors the availability, position, rating
// and load of every known driver; the database stays the system of record.
package geo

import (
	"sort"
	"sync"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/ports"
)

// InMemoryIndex implements ports.GeoIndex with a flat map guarded by a
// single mutex. A city-scale fleet is small enough that a bounding-box
// pre-filter over all entries beats maintaining a tree.
type InMemoryIndex struct {
	mu        sync.RWMutex
	entries   map[kernel.UUID]*entry
	maxOrders int
}

type entry struct {
	status     driver.Status
	position   *kernel.GeoPoint
	reportedAt time.Time
	rating     float64
	load       int
}

// NewInMemoryIndex creates an empty index. maxOrders is the per-driver
// concurrent assignment capacity enforced by Reserve.
func NewInMemoryIndex(maxOrders int) *InMemoryIndex {
	if maxOrders < 1 {
		maxOrders = 1
	}
	return &InMemoryIndex{
		entries:   make(map[kernel.UUID]*entry),
		maxOrders: maxOrders,
	}
}

// UpdatePosition records a location fix. Fixes older than the current one
// are rejected with driver.ErrStaleLocationUpdate; a fix with an equal
// timestamp replaces the current one.
func (idx *InMemoryIndex) UpdatePosition(driverID kernel.UUID, point kernel.GeoPoint, reportedAt time.Time) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	e := idx.entry(driverID)
	if e.position != nil && reportedAt.Before(e.reportedAt) {
		return driver.NewStaleLocationUpdateError(driverID, reportedAt, e.reportedAt)
	}

	e.position = &point
	e.reportedAt = reportedAt
	return nil
}

// SetAvailability sets the driver's dispatch availability.
func (idx *InMemoryIndex) SetAvailability(driverID kernel.UUID, status driver.Status) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entry(driverID).status = status
}

// SetRating updates the rating reported in query results.
func (idx *InMemoryIndex) SetRating(driverID kernel.UUID, rating float64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.entry(driverID).rating = rating
}

// Query returns dispatchable drivers within radiusKm of center, nearest
// first. A driver is dispatchable when on shift with spare capacity and a
// known position.
func (idx *InMemoryIndex) Query(center kernel.GeoPoint, radiusKm float64) []ports.NearbyDriver {
	box, err := center.BoundingBox(radiusKm)
	if err != nil {
		return nil
	}

	idx.mu.RLock()
	nearby := make([]ports.NearbyDriver, 0)
	for id, e := range idx.entries {
		if !e.dispatchable(idx.maxOrders) || !box.Contains(*e.position) {
			continue
		}

		distance, distErr := center.DistanceKm(*e.position)
		if distErr != nil || distance > radiusKm {
			continue
		}

		nearby = append(nearby, ports.NearbyDriver{
			DriverID:     id,
			DistanceKm:   distance,
			ActiveOrders: e.load,
			Rating:       e.rating,
		})
	}
	idx.mu.RUnlock()

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceKm != nearby[j].DistanceKm {
			return nearby[i].DistanceKm < nearby[j].DistanceKm
		}
		return nearby[i].DriverID.String() < nearby[j].DriverID.String()
	})
	return nearby
}

// Reserve atomically claims an assignment slot. The check and the
// increment happen under the same lock, so exactly one of several
// concurrent reservations for the last slot succeeds.
func (idx *InMemoryIndex) Reserve(driverID kernel.UUID) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	e, ok := idx.entries[driverID]
	if !ok || !e.onShift() || e.load >= idx.maxOrders {
		return ports.ErrDriverUnavailable
	}

	e.load++
	return nil
}

// Release frees an assignment slot claimed by Reserve.
func (idx *InMemoryIndex) Release(driverID kernel.UUID) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if e, ok := idx.entries[driverID]; ok && e.load > 0 {
		e.load--
	}
}

// LastFix returns the driver's last known position, or nil when none.
func (idx *InMemoryIndex) LastFix(driverID kernel.UUID) *kernel.GeoPoint {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.entries[driverID]
	if !ok || e.position == nil {
		return nil
	}

	point := *e.position
	return &point
}

// Remove forgets the driver entirely.
func (idx *InMemoryIndex) Remove(driverID kernel.UUID) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.entries, driverID)
}

// entry returns the driver's entry, creating an offline one if missing.
// Callers must hold the write lock.
func (idx *InMemoryIndex) entry(driverID kernel.UUID) *entry {
	e, ok := idx.entries[driverID]
	if !ok {
		e = &entry{status: driver.StatusOffline}
		idx.entries[driverID] = e
	}
	return e
}

func (e *entry) onShift() bool {
	return e.status == driver.StatusOnline || e.status == driver.StatusBusy
}

func (e *entry) dispatchable(maxOrders int) bool {
	return e.onShift() && e.load < maxOrders && e.position != nil
}
