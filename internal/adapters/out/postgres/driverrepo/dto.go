// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
package driverrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// The last location fix is stored inline; drivers that have never reported a
// position keep all three columns NULL.
type DriverDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string
	Phone               string `gorm:"uniqueIndex"`
	VehicleType         string `gorm:"size:16"`
	VehiclePlate        string
	Status              string `gorm:"index;size:16"`
	Lat                 *float64
	Lon                 *float64
	LocationReportedAt  *time.Time
	Rating              float64
	RatedCount          int
	TotalDeliveries     int
	CompletedDeliveries int
	CancelledDeliveries int
	Earnings            float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var lat, lon *float64
	var reportedAt *time.Time
	if pos := aggregate.Position(); pos != nil {
		la, lo := pos.Point.Lat(), pos.Point.Lon()
		at := pos.ReportedAt
		lat, lon, reportedAt = &la, &lo, &at
	}

	return DriverDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		Phone:               aggregate.Phone(),
		VehicleType:         aggregate.VehicleType().String(),
		VehiclePlate:        aggregate.VehiclePlate(),
		Status:              aggregate.Status().String(),
		Lat:                 lat,
		Lon:                 lon,
		LocationReportedAt:  reportedAt,
		Rating:              aggregate.Rating(),
		RatedCount:          aggregate.RatedCount(),
		TotalDeliveries:     aggregate.TotalDeliveries(),
		CompletedDeliveries: aggregate.CompletedDeliveries(),
		CancelledDeliveries: aggregate.CancelledDeliveries(),
		Earnings:            aggregate.Earnings(),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicleType, err := driver.VehicleTypeFromString(dto.VehicleType)
	if err != nil {
		return nil, err
	}

	status, err := driver.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var position *driver.Position
	if dto.Lat != nil && dto.Lon != nil && dto.LocationReportedAt != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &driver.Position{Point: point, ReportedAt: *dto.LocationReportedAt}
	}

	return driver.RestoreDriver(id, dto.Name, dto.Phone, vehicleType, dto.VehiclePlate,
		status, position, dto.Rating, dto.RatedCount, dto.TotalDeliveries,
		dto.CompletedDeliveries, dto.CancelledDeliveries, dto.Earnings,
		dto.CreatedAt, dto.UpdatedAt), nil
}
