package commands

import (
	"errors"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand represents a driver location fix pushed from the
// driver's device.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	driverID   kernel.UUID
	point      kernel.GeoPoint
	reportedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates a command carrying one location fix.
func NewReportLocationCommand(driverID kernel.UUID, point kernel.GeoPoint,
	reportedAt time.Time) (ReportLocationCommand, error) {
	err := errors.Join(driverID.Validate(), point.Validate())
	if reportedAt.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("reportedAt"))
	}
	if err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		driverID:   driverID,
		point:      point,
		reportedAt: reportedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c ReportLocationCommand) DriverID() kernel.UUID { return c.driverID }

// Point returns the reported coordinates.
func (c ReportLocationCommand) Point() kernel.GeoPoint { return c.point }

// ReportedAt returns the device timestamp of the fix.
func (c ReportLocationCommand) ReportedAt() time.Time { return c.reportedAt }
