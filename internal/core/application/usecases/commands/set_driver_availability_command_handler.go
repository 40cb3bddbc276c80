package commands

import (
	"context"
	"time"

	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// SetDriverAvailabilityCommandHandler moves a driver in or out of the
// dispatch pool, keeping the geo index in step with the driver record.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory  DriverUoWFactory
	geoIndex    ports.GeoIndex
	driverLocks *keyedmutex.KeyedMutex
}

// NewSetDriverAvailabilityCommandHandler creates a handler for availability changes.
func NewSetDriverAvailabilityCommandHandler(uowFactory DriverUoWFactory,
	geoIndex ports.GeoIndex, driverLocks *keyedmutex.KeyedMutex) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory:  uowFactory,
		geoIndex:    geoIndex,
		driverLocks: driverLocks,
	}
}

// Handle processes the availability change. A busy driver cannot change
// availability until their active deliveries finish.
func (h *SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.driverLocks.Lock(cmd.DriverID().String())
	defer h.driverLocks.Unlock(cmd.DriverID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	now := time.Now()
	if cmd.Online() {
		err = d.GoOnline(now)
	} else {
		err = d.GoOffline(now)
	}
	if err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, d); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.geoIndex.SetAvailability(d.ID(), d.Status())
	if cmd.Online() && d.Position() != nil {
		// Seed the index with the last persisted fix so the driver is
		// findable before the first live report.
		_ = h.geoIndex.UpdatePosition(d.ID(), d.Position().Point, d.Position().ReportedAt)
	}
	return nil
}
