package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/p-thanks/RouteX/internal/adapters/out/postgres/orderrepo"
	"github.com/p-thanks/RouteX/internal/core/application/usecases/queries"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.TrackingEventDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlyDriversActiveOrders() {
	ctx := context.Background()

	driverID := kernel.NewUUID()
	now := time.Now()

	assigned := makeOrder(&suite.Suite)
	_, err := assigned.Assign(driverID, nil, now)
	suite.Require().NoError(err)

	inTransit := makeOrder(&suite.Suite)
	_, err = inTransit.Assign(driverID, nil, now)
	suite.Require().NoError(err)
	_, err = inTransit.MarkPickedUp(nil, now)
	suite.Require().NoError(err)
	_, err = inTransit.MarkInTransit(nil, now)
	suite.Require().NoError(err)

	delivered := makeOrder(&suite.Suite)
	_, err = delivered.Assign(driverID, nil, now)
	suite.Require().NoError(err)
	_, err = delivered.MarkPickedUp(nil, now)
	suite.Require().NoError(err)
	_, err = delivered.MarkInTransit(nil, now)
	suite.Require().NoError(err)
	_, err = delivered.CompleteDelivery(order.DeliveryProof{}, nil, now)
	suite.Require().NoError(err)

	otherDriver := makeOrder(&suite.Suite)
	_, err = otherDriver.Assign(kernel.NewUUID(), nil, now)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{assigned, inTransit, delivered, otherDriver} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query, err := queries.NewGetActiveOrdersQuery(driverID)
	suite.Require().NoError(err)

	activeOrders, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(activeOrders, 2)
	statuses := map[string]bool{}
	for _, response := range activeOrders {
		statuses[response.Status] = true
		suite.Equal("12 River St", response.PickupAddress)
		suite.InDelta(11.51, response.PriceTotal, 0.001)
	}
	suite.True(statuses[order.Assigned.String()])
	suite.True(statuses[order.InTransit.String()])
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_DriverWithoutOrders_ReturnsEmptyList() {
	ctx := context.Background()

	query, err := queries.NewGetActiveOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	activeOrders, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(activeOrders)
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
