package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/commands"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

func makeCreateOrderCommand(t *testing.T, promo string) commands.CreateOrderCommand {
	t.Helper()

	pkg, err := order.NewPackageInfo(order.PackageTypeParcel, 2, "books", "", "")
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(),
		makeWaypoint(t, 40.7, -74.0), makeWaypoint(t, 40.8, -73.9), pkg, promo, nil, nil)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := makeCreateOrderCommand(t, "")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &fakePublisher{}
	handler := commands.NewCreateOrderCommandHandler(factory, makePricingEngine(t), publisher)
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.Positive(t, created.Price().Total())
	assert.Positive(t, created.DistanceKm())
	assert.Positive(t, created.EstimatedMinutes())
	require.Len(t, publisher.orders, 1)
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AppliesPromo(t *testing.T) {
	ctx := t.Context()
	cmd := makeCreateOrderCommand(t, "SAVE20")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCreateOrderCommandHandler(factory, makePricingEngine(t), &fakePublisher{})
	created, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "SAVE20", created.Price().PromoCode())
	assert.Positive(t, created.Price().Discount())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, makePricingEngine(t), &fakePublisher{})
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := makeCreateOrderCommand(t, "")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Return(assert.AnError).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &fakePublisher{}
	handler := commands.NewCreateOrderCommandHandler(factory, makePricingEngine(t), publisher)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Empty(t, publisher.orders)
}
