package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/domain/services"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

func makeWaypoint(t *testing.T, lat, lon float64) order.Waypoint {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	contact, err := order.NewContact("Pat Doe", "+15550199")
	require.NoError(t, err)
	waypoint, err := order.NewWaypoint("22 Elm St", point, contact)
	require.NoError(t, err)
	return waypoint
}

func makePendingOrder(t *testing.T) *order.Order {
	t.Helper()

	pkg, err := order.NewPackageInfo(order.PackageTypeParcel, 2, "books", "", "")
	require.NoError(t, err)
	price, err := order.NewPriceBreakdown(5, 10, 1, 0, 0, 16, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), makeWaypoint(t, 40.7, -74.0),
		makeWaypoint(t, 40.8, -73.9), pkg, price, 10, 15, nil, nil, time.Now())
	require.NoError(t, err)
	return o
}

func makeAssignedOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()

	o := makePendingOrder(t)
	_, err := o.Assign(driverID, nil, time.Now())
	require.NoError(t, err)
	return o
}

func makeInTransitOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()

	o := makeAssignedOrder(t, driverID)
	_, err := o.MarkPickedUp(nil, time.Now())
	require.NoError(t, err)
	_, err = o.MarkInTransit(nil, time.Now())
	require.NoError(t, err)
	return o
}

func makeOnlineDriver(t *testing.T) *driver.Driver {
	t.Helper()

	d, err := driver.NewDriver("Sam Lee", "+15550123", driver.VehicleTypeCar, "AB-123-CD", time.Now())
	require.NoError(t, err)
	require.NoError(t, d.GoOnline(time.Now()))
	return d
}

func makePricingEngine(t *testing.T) *services.PricingEngine {
	t.Helper()

	engine, err := services.NewPricingEngine(services.NewDefaultPricingConfig())
	require.NoError(t, err)
	return engine
}

func makeLocks() *keyedmutex.KeyedMutex {
	return keyedmutex.New()
}
