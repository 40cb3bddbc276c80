package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/observability"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// transitionRunner carries the shared machinery of the order lifecycle
// commands: per-order and per-driver locking, the transactional
// load-mutate-store cycle, driver effect application and event fan-out.
type transitionRunner struct {
	uowFactory  UoWFactory
	geoIndex    ports.GeoIndex
	publisher   ports.EventPublisher
	orderLocks  *keyedmutex.KeyedMutex
	driverLocks *keyedmutex.KeyedMutex
}

func newTransitionRunner(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, orderLocks, driverLocks *keyedmutex.KeyedMutex) transitionRunner {
	return transitionRunner{
		uowFactory:  uowFactory,
		geoIndex:    geoIndex,
		publisher:   publisher,
		orderLocks:  orderLocks,
		driverLocks: driverLocks,
	}
}

// run executes one order transition under the order's lock. The apply
// callback mutates the aggregate through one of its transition methods; the
// runner persists the outcome, applies the driver effect and publishes the
// tracking event.
//
// Transitions on the same order serialize on the per-order lock, so each
// one sees the previous one's committed state. When a transition touches
// the driver record, the driver lock is taken as well — always after the
// order lock, never before, so the two lock kinds cannot deadlock.
func (r transitionRunner) run(ctx context.Context, orderID kernel.UUID,
	apply func(o *order.Order, driverPos *kernel.GeoPoint, now time.Time) (order.TransitionResult, error)) error {
	r.orderLocks.Lock(orderID.String())
	defer r.orderLocks.Unlock(orderID.String())

	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return err
	}

	now := time.Now()
	var driverPos *kernel.GeoPoint
	if aggregate.DriverID() != nil {
		driverPos = r.geoIndex.LastFix(*aggregate.DriverID())
	}

	result, err := apply(aggregate, driverPos, now)
	if err != nil {
		return err
	}

	// The driver row is rewritten whole on save, so every mutation of it
	// must hold the driver lock or a concurrent fold would be lost.
	if result.Driver.Kind != order.DriverEffectNone {
		r.driverLocks.Lock(result.Driver.DriverID.String())
		defer r.driverLocks.Unlock(result.Driver.DriverID.String())
	}

	if err = r.applyDriverEffect(ctx, uow, result.Driver, now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	r.releaseSlot(result.Driver)
	r.publisher.PublishOrderUpdate(aggregate, result.Event)
	return nil
}

// applyDriverEffect mutates and persists the driver record inside the
// order's transaction.
func (r transitionRunner) applyDriverEffect(ctx context.Context, uow UoW,
	effect order.DriverEffect, now time.Time) error {
	if effect.Kind == order.DriverEffectNone {
		return nil
	}

	affectedDriver, err := uow.DriverRepository().Get(ctx, effect.DriverID)
	if err != nil {
		return err
	}

	switch effect.Kind {
	case order.DriverEffectCompleted:
		if err = affectedDriver.CompleteDelivery(effect.Earnings, now); err != nil {
			return err
		}
		observability.OrdersDeliveredTotal.Inc()
	case order.DriverEffectReleased:
		affectedDriver.RecordCancellation(now)
	}

	affectedDriver.MarkAvailable(now)
	if err = uow.DriverRepository().Update(ctx, affectedDriver); err != nil {
		return err
	}

	return nil
}

// releaseSlot frees the geo index slot after the transaction committed, so
// a re-dispatch can never observe the slot free before the order is saved.
func (r transitionRunner) releaseSlot(effect order.DriverEffect) {
	if effect.Kind == order.DriverEffectNone {
		return
	}
	r.geoIndex.Release(effect.DriverID)
}
