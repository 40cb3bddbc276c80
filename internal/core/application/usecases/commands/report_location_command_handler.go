package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/ports"
	"github.com/p-thanks/RouteX/internal/observability"
	"github.com/p-thanks/RouteX/internal/pkg/keyedmutex"
)

// ReportLocationCommandHandler ingests driver location fixes.
//
// The geo index is updated first; a stale fix is dropped there and the
// command ends without touching storage. Accepted fixes update the driver
// record and fan one location event out per active order of the driver.
type ReportLocationCommandHandler struct {
	uowFactory  UoWFactory
	geoIndex    ports.GeoIndex
	publisher   ports.EventPublisher
	driverLocks *keyedmutex.KeyedMutex
	logger      *slog.Logger
}

// NewReportLocationCommandHandler creates a handler for location ingestion.
func NewReportLocationCommandHandler(uowFactory UoWFactory, geoIndex ports.GeoIndex,
	publisher ports.EventPublisher, driverLocks *keyedmutex.KeyedMutex,
	logger *slog.Logger) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory:  uowFactory,
		geoIndex:    geoIndex,
		publisher:   publisher,
		driverLocks: driverLocks,
		logger:      logger.With(slog.String("component", "report_location")),
	}
}

// Handle processes one location fix. Stale fixes are dropped silently:
// out-of-order reports are expected from mobile networks and are not an
// error the device can act on.
func (h *ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.geoIndex.UpdatePosition(cmd.DriverID(), cmd.Point(), cmd.ReportedAt()); err != nil {
		if errors.Is(err, driver.ErrStaleLocationUpdate) {
			observability.StaleLocationDropsTotal.Inc()
			h.logger.Debug("dropped stale location fix",
				slog.String("driver_id", cmd.DriverID().String()))
			return nil
		}
		return err
	}

	// The save below rewrites the whole driver row; the driver lock keeps a
	// fix from clobbering a concurrent counter or status change.
	h.driverLocks.Lock(cmd.DriverID().String())
	defer h.driverLocks.Unlock(cmd.DriverID().String())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reportingDriver, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = reportingDriver.UpdateLocation(cmd.Point(), cmd.ReportedAt()); err != nil {
		// The index accepted the fix, so a stale rejection here means the
		// database record is ahead of the index; keep the record.
		if errors.Is(err, driver.ErrStaleLocationUpdate) {
			observability.StaleLocationDropsTotal.Inc()
			return nil
		}
		return err
	}

	activeOrders, err := uow.OrderRepository().GetActiveByDriver(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = uow.DriverRepository().Update(ctx, reportingDriver); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, activeOrder := range activeOrders {
		h.publisher.PublishLocationUpdate(activeOrder.ID(), cmd.DriverID(), cmd.Point())
	}
	return nil
}
