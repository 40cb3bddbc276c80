package queries_test

import (
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

// makeOrder builds a valid pending order for query fixtures.
func makeOrder(s *suite.Suite) *order.Order {
	pickupPoint, err := kernel.NewGeoPoint(40.7128, -74.0060)
	s.Require().NoError(err)
	dropoffPoint, err := kernel.NewGeoPoint(40.7484, -73.9857)
	s.Require().NoError(err)

	contact, err := order.NewContact("Alex Doe", "+15550001111")
	s.Require().NoError(err)

	pickup, err := order.NewWaypoint("12 River St", pickupPoint, contact)
	s.Require().NoError(err)
	dropoff, err := order.NewWaypoint("80 Hill Ave", dropoffPoint, contact)
	s.Require().NoError(err)

	pkg, err := order.NewPackageInfo(order.PackageTypeParcel, 2.5, "books", "", "")
	s.Require().NoError(err)

	price, err := order.NewPriceBreakdown(5, 5.26, 1.25, 0, 0, 11.51, "")
	s.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), pickup, dropoff, pkg, price, 5.26, 8, nil, nil, time.Now())
	s.Require().NoError(err)
	return testOrder
}
