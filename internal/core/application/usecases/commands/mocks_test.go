package commands_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/commands"
	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPending(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllOnline(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

// fakeGeoIndex is a minimal in-memory stand-in for the dispatch index.
type fakeGeoIndex struct {
	mu         sync.Mutex
	nearby     []ports.NearbyDriver
	reserveErr map[string]error
	reserved   []kernel.UUID
	released   []kernel.UUID
	lastFix    map[string]*kernel.GeoPoint
}

func newFakeGeoIndex() *fakeGeoIndex {
	return &fakeGeoIndex{
		reserveErr: make(map[string]error),
		lastFix:    make(map[string]*kernel.GeoPoint),
	}
}

func (f *fakeGeoIndex) UpdatePosition(kernel.UUID, kernel.GeoPoint, time.Time) error { return nil }

func (f *fakeGeoIndex) SetAvailability(kernel.UUID, driver.Status) {}

func (f *fakeGeoIndex) SetRating(kernel.UUID, float64) {}

func (f *fakeGeoIndex) Query(kernel.GeoPoint, float64) []ports.NearbyDriver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nearby
}

func (f *fakeGeoIndex) Reserve(driverID kernel.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.reserveErr[driverID.String()]; ok {
		return err
	}
	f.reserved = append(f.reserved, driverID)
	return nil
}

func (f *fakeGeoIndex) Release(driverID kernel.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, driverID)
}

func (f *fakeGeoIndex) LastFix(driverID kernel.UUID) *kernel.GeoPoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastFix[driverID.String()]
}

func (f *fakeGeoIndex) Remove(kernel.UUID) {}

// fakePublisher records published events for assertions.
type fakePublisher struct {
	mu        sync.Mutex
	orders    []order.TrackingEvent
	locations []kernel.UUID
}

func (f *fakePublisher) PublishOrderUpdate(_ *order.Order, event order.TrackingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, event)
}

func (f *fakePublisher) PublishLocationUpdate(orderID, _ kernel.UUID, _ kernel.GeoPoint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locations = append(f.locations, orderID)
}

// staleGeoIndex rejects every position update as stale.
type staleGeoIndex struct {
	*fakeGeoIndex
}

func (s *staleGeoIndex) UpdatePosition(driverID kernel.UUID, _ kernel.GeoPoint, reportedAt time.Time) error {
	return driver.NewStaleLocationUpdateError(driverID, reportedAt, time.Now())
}
