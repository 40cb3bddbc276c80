package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/p-thanks/RouteX/internal/core/application/usecases/commands"
	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/ports"
)

// StaleDriverJob takes drivers off shift when their location feed goes
// quiet. A driver whose last fix is older than the threshold is no longer
// safe to dispatch to; busy drivers are left alone until their deliveries
// resolve.
type StaleDriverJob struct {
	uowFactory commands.DriverUoWFactory
	geoIndex   ports.GeoIndex
	threshold  time.Duration
	cron       *cron.Cron
	schedule   string
	logger     *slog.Logger
}

// NewStaleDriverJob creates the stale-driver sweep.
func NewStaleDriverJob(uowFactory commands.DriverUoWFactory, geoIndex ports.GeoIndex,
	threshold time.Duration, schedule string, logger *slog.Logger) *StaleDriverJob {
	return &StaleDriverJob{
		uowFactory: uowFactory,
		geoIndex:   geoIndex,
		threshold:  threshold,
		cron:       cron.New(cron.WithSeconds()),
		schedule:   schedule,
		logger:     logger.With("component", "stale_driver_job"),
	}
}

// Start begins the sweep on its schedule.
func (j *StaleDriverJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stale driver job started", "schedule", j.schedule, "threshold", j.threshold)
	return nil
}

// Stop stops the sweep.
func (j *StaleDriverJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Stale driver job stopped")
}

func (j *StaleDriverJob) run() {
	ctx := context.Background()
	cutoff := time.Now().Add(-j.threshold)

	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Stale driver sweep failed to begin", "error", err)
		return
	}
	defer uow.Rollback(ctx)

	online, err := uow.DriverRepository().GetAllOnline(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale driver sweep failed to list drivers", "error", err)
		return
	}

	now := time.Now()
	swept := 0
	for _, d := range online {
		if !j.isStale(d, cutoff) {
			continue
		}

		if offErr := d.GoOffline(now); offErr != nil {
			// Busy drivers keep their shift until their orders resolve.
			continue
		}
		if updateErr := uow.DriverRepository().Update(ctx, d); updateErr != nil {
			j.logger.ErrorContext(ctx, "Stale driver sweep failed to update driver",
				"driver_id", d.ID().String(), "error", updateErr)
			return
		}
		swept++
	}

	if swept == 0 {
		return
	}

	if err = uow.Commit(ctx); err != nil {
		j.logger.ErrorContext(ctx, "Stale driver sweep failed to commit", "error", err)
		return
	}

	// Index updates follow the commit so a failed sweep never hides a
	// driver who is still on shift in the database.
	for _, d := range online {
		if d.Status() == driver.StatusOffline {
			j.geoIndex.SetAvailability(d.ID(), driver.StatusOffline)
			j.logger.InfoContext(ctx, "Driver taken offline for stale location",
				"driver_id", d.ID().String())
		}
	}
}

func (j *StaleDriverJob) isStale(d *driver.Driver, cutoff time.Time) bool {
	pos := d.Position()
	if pos == nil {
		return d.UpdatedAt().Before(cutoff)
	}
	return pos.ReportedAt.Before(cutoff)
}
