package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// RateDriverCommandHandler records a customer rating against the order and
// folds it into the driver's running average. The order keeps the rating so
// a second submission is rejected. The fold itself runs under the driver
// lock: two ratings folding concurrently must not read the same base value.
type RateDriverCommandHandler struct {
	uowFactory  UoWFactory
	geoIndex    ports.GeoIndex
	orderLocks  *keyedmutex.KeyedMutex
	driverLocks *keyedmutex.KeyedMutex
}

// NewRateDriverCommandHandler creates a handler for driver ratings.
func NewRateDriverCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	orderLocks, driverLocks *keyedmutex.KeyedMutex) RateDriverCommandHandler {
	return RateDriverCommandHandler{
		uowFactory:  uowFactory,
		geoIndex:    geoIndex,
		orderLocks:  orderLocks,
		driverLocks: driverLocks,
	}
}

// Handle processes the rating submission.
func (h *RateDriverCommandHandler) Handle(ctx context.Context, cmd RateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ratedOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = ratedOrder.SubmitRating(cmd.Rating(), now); err != nil {
		return err
	}

	h.driverLocks.Lock(ratedOrder.DriverID().String())
	defer h.driverLocks.Unlock(ratedOrder.DriverID().String())

	ratedDriver, err := uow.DriverRepository().Get(ctx, *ratedOrder.DriverID())
	if err != nil {
		return err
	}
	if err = ratedDriver.SubmitRating(cmd.Rating(), now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, ratedOrder); err != nil {
		return err
	}
	if err = uow.DriverRepository().Update(ctx, ratedDriver); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.geoIndex.SetRating(ratedDriver.ID(), ratedDriver.Rating())
	return nil
}
