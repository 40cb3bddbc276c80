package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/core/domain/services"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/observability"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// DispatchConfig carries the dispatch tunables.
type DispatchConfig struct {
	// SearchRadiusKm is the initial geo query radius. It doubles each
	// round the search comes up empty.
	SearchRadiusKm float64

	// MaxSearchRounds bounds the radius doubling.
	MaxSearchRounds int

	// MaxConcurrentOrders is the assignment-slot capacity per driver.
	MaxConcurrentOrders int
}

// NewDefaultDispatchConfig returns the production dispatch defaults.
func NewDefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		SearchRadiusKm:      5.0,
		MaxSearchRounds:     3,
		MaxConcurrentOrders: 1,
	}
}

// DispatchOrderCommandHandler finds the best available driver for a pending
// order and assigns it.
//
// The search queries the geo index around the pickup point, widening the
// radius each empty round. Candidates are ranked by the dispatch ranker and
// attempted in order; reserving the driver's assignment slot in the index is
// the atomic step that decides races between concurrent dispatches. Order
// and driver are persisted in one transaction; the reservation is released
// if persistence fails.
type DispatchOrderCommandHandler struct {
	uowFactory  UoWFactory
	geoIndex    ports.GeoIndex
	ranker      services.DispatchRanker
	publisher   ports.EventPublisher
	orderLocks  *keyedmutex.KeyedMutex
	driverLocks *keyedmutex.KeyedMutex
	config      DispatchConfig
}

// NewDispatchOrderCommandHandler creates a handler for order dispatch.
func NewDispatchOrderCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	ranker services.DispatchRanker, publisher ports.EventPublisher,
	orderLocks, driverLocks *keyedmutex.KeyedMutex, config DispatchConfig) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory:  uowFactory,
		geoIndex:    geoIndex,
		ranker:      ranker,
		publisher:   publisher,
		orderLocks:  orderLocks,
		driverLocks: driverLocks,
		config:      config,
	}
}

// Handle processes the dispatch command.
// Returns ErrNoDriverAvailable when every search round comes up empty or
// every candidate is lost to a concurrent dispatch; the order stays pending.
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	observability.DispatchAttemptsTotal.Inc()

	h.orderLocks.Lock(cmd.OrderID().String())
	defer h.orderLocks.Unlock(cmd.OrderID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pendingOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if pendingOrder.Status() != order.Pending {
		return order.NewInvalidTransitionError(pendingOrder.Status(), "dispatch")
	}

	candidates := h.findCandidates(pendingOrder.Pickup().Point())
	if len(candidates) == 0 {
		observability.DispatchNoDriverTotal.Inc()
		return ErrNoDriverAvailable
	}

	now := time.Now()
	for _, candidate := range h.ranker.Rank(candidates) {
		if err = h.geoIndex.Reserve(candidate.DriverID); err != nil {
			// Lost to a concurrent dispatch; try the next candidate.
			continue
		}

		result, err := h.assign(ctx, uow, pendingOrder, candidate, now)
		if err != nil {
			h.geoIndex.Release(candidate.DriverID)
			return err
		}

		observability.DispatchAssignedTotal.Inc()
		h.publisher.PublishOrderUpdate(pendingOrder, result.Event)
		return nil
	}

	observability.DispatchNoDriverTotal.Inc()
	return ErrNoDriverAvailable
}

// findCandidates queries the geo index around the pickup point, doubling
// the radius each empty round up to the configured ceiling.
func (h *DispatchOrderCommandHandler) findCandidates(pickup kernel.GeoPoint) []services.Candidate {
	radiusKm := h.config.SearchRadiusKm
	for round := 0; round < h.config.MaxSearchRounds; round++ {
		nearby := h.geoIndex.Query(pickup, radiusKm)
		if len(nearby) > 0 {
			candidates := make([]services.Candidate, 0, len(nearby))
			for _, n := range nearby {
				candidates = append(candidates, services.Candidate{
					DriverID:     n.DriverID,
					DistanceKm:   n.DistanceKm,
					ActiveOrders: n.ActiveOrders,
					Rating:       n.Rating,
				})
			}
			return candidates
		}
		radiusKm *= 2
	}
	return nil
}

// assign runs the state-machine transition against the reserved candidate
// and persists order and driver in the surrounding transaction. The driver
// lock (taken after the order lock, see transitionRunner) covers the
// read-modify-write of the driver row.
func (h *DispatchOrderCommandHandler) assign(ctx context.Context, uow UoW,
	pendingOrder *order.Order, candidate services.Candidate, now time.Time) (order.TransitionResult, error) {
	h.driverLocks.Lock(candidate.DriverID.String())
	defer h.driverLocks.Unlock(candidate.DriverID.String())

	assignedDriver, err := uow.DriverRepository().Get(ctx, candidate.DriverID)
	if err != nil {
		return order.TransitionResult{}, err
	}

	result, err := pendingOrder.Assign(candidate.DriverID, h.geoIndex.LastFix(candidate.DriverID), now)
	if err != nil {
		return order.TransitionResult{}, err
	}

	if candidate.ActiveOrders+1 >= h.config.MaxConcurrentOrders {
		assignedDriver.MarkBusy(now)
	}

	if err = uow.OrderRepository().Update(ctx, pendingOrder); err != nil {
		return order.TransitionResult{}, err
	}
	if err = uow.DriverRepository().Update(ctx, assignedDriver); err != nil {
		return order.TransitionResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return order.TransitionResult{}, err
	}
	return result, nil
}
