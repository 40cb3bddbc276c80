package driver_test

import (
	"testing"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriver(t *testing.T) *driver.Driver {
	t.Helper()

	d, err := driver.NewDriver("Sam Lee", "+15550123", driver.VehicleTypeCar, "AB-123-CD", time.Now())
	require.NoError(t, err)
	return d
}

func TestNewDriver(t *testing.T) {
	t.Run("should create offline driver with seeded rating", func(t *testing.T) {
		d := testDriver(t)

		assert.Equal(t, driver.StatusOffline, d.Status())
		assert.InDelta(t, 5.0, d.Rating(), 0.001)
		assert.Zero(t, d.RatedCount())
		assert.Nil(t, d.Position())
		assert.Zero(t, d.TotalDeliveries())
		assert.Zero(t, d.Earnings())
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		_, err := driver.NewDriver("", "", driver.VehicleTypeCar, "", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject invalid vehicle type", func(t *testing.T) {
		_, err := driver.NewDriver("Sam Lee", "+15550123", driver.VehicleTypeUnknown, "AB-123-CD", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDriver_UpdateLocation(t *testing.T) {
	t.Run("should accept first fix", func(t *testing.T) {
		d := testDriver(t)
		point, err := kernel.NewGeoPoint(40.7, -74.0)
		require.NoError(t, err)
		at := time.Now()

		err = d.UpdateLocation(point, at)

		require.NoError(t, err)
		require.NotNil(t, d.Position())
		assert.True(t, d.Position().Point.IsEqual(point))
		assert.Equal(t, at, d.Position().ReportedAt)
	})

	t.Run("should apply newer fix last-write-wins", func(t *testing.T) {
		d := testDriver(t)
		first, err := kernel.NewGeoPoint(40.7, -74.0)
		require.NoError(t, err)
		second, err := kernel.NewGeoPoint(40.8, -73.9)
		require.NoError(t, err)
		at := time.Now()

		require.NoError(t, d.UpdateLocation(first, at))
		require.NoError(t, d.UpdateLocation(second, at.Add(time.Second)))

		assert.True(t, d.Position().Point.IsEqual(second))
	})

	t.Run("should reject stale fix and keep current one", func(t *testing.T) {
		d := testDriver(t)
		current, err := kernel.NewGeoPoint(40.7, -74.0)
		require.NoError(t, err)
		stale, err := kernel.NewGeoPoint(40.0, -75.0)
		require.NoError(t, err)
		at := time.Now()

		require.NoError(t, d.UpdateLocation(current, at))
		err = d.UpdateLocation(stale, at.Add(-time.Minute))

		require.Error(t, err)
		assert.ErrorIs(t, err, driver.ErrStaleLocationUpdate)
		assert.True(t, d.Position().Point.IsEqual(current))
	})

	t.Run("should accept fix with equal timestamp", func(t *testing.T) {
		d := testDriver(t)
		point, err := kernel.NewGeoPoint(40.7, -74.0)
		require.NoError(t, err)
		at := time.Now()

		require.NoError(t, d.UpdateLocation(point, at))
		require.NoError(t, d.UpdateLocation(point, at))
	})
}

func TestDriver_Availability(t *testing.T) {
	t.Run("should go online and offline", func(t *testing.T) {
		d := testDriver(t)

		require.NoError(t, d.GoOnline(time.Now()))
		assert.Equal(t, driver.StatusOnline, d.Status())
		assert.True(t, d.Status().IsDispatchable())

		require.NoError(t, d.GoOffline(time.Now()))
		assert.Equal(t, driver.StatusOffline, d.Status())
	})

	t.Run("should reject availability change while busy", func(t *testing.T) {
		d := testDriver(t)
		require.NoError(t, d.GoOnline(time.Now()))
		d.MarkBusy(time.Now())

		assert.Error(t, d.GoOffline(time.Now()))
		assert.Error(t, d.GoOnline(time.Now()))
		assert.Equal(t, driver.StatusBusy, d.Status())
	})

	t.Run("should return busy driver to the pool", func(t *testing.T) {
		d := testDriver(t)
		require.NoError(t, d.GoOnline(time.Now()))
		d.MarkBusy(time.Now())

		d.MarkAvailable(time.Now())

		assert.Equal(t, driver.StatusOnline, d.Status())
	})

	t.Run("should not touch status of non-busy driver on MarkAvailable", func(t *testing.T) {
		d := testDriver(t)

		d.MarkAvailable(time.Now())

		assert.Equal(t, driver.StatusOffline, d.Status())
	})
}

func TestDriver_CompleteDelivery(t *testing.T) {
	t.Run("should credit counters and earnings", func(t *testing.T) {
		d := testDriver(t)

		require.NoError(t, d.CompleteDelivery(24.0, time.Now()))
		require.NoError(t, d.CompleteDelivery(10.5, time.Now()))

		assert.Equal(t, 2, d.TotalDeliveries())
		assert.Equal(t, 2, d.CompletedDeliveries())
		assert.InDelta(t, 34.5, d.Earnings(), 0.001)
	})

	t.Run("should reject negative earnings", func(t *testing.T) {
		d := testDriver(t)

		require.Error(t, d.CompleteDelivery(-1, time.Now()))
	})
}

func TestDriver_RecordCancellation(t *testing.T) {
	t.Run("should count cancellations separately", func(t *testing.T) {
		d := testDriver(t)

		d.RecordCancellation(time.Now())

		assert.Equal(t, 1, d.CancelledDeliveries())
		assert.Zero(t, d.TotalDeliveries())
	})
}

func TestDriver_SubmitRating(t *testing.T) {
	t.Run("should replace seed with first rating exactly", func(t *testing.T) {
		d := testDriver(t)

		require.NoError(t, d.SubmitRating(3, time.Now()))

		assert.InDelta(t, 3.0, d.Rating(), 0.0001)
		assert.Equal(t, 1, d.RatedCount())
	})

	t.Run("should fold subsequent ratings into the average", func(t *testing.T) {
		d := testDriver(t)

		require.NoError(t, d.SubmitRating(3, time.Now()))
		require.NoError(t, d.SubmitRating(5, time.Now()))

		assert.InDelta(t, 4.0, d.Rating(), 0.0001)
		assert.Equal(t, 2, d.RatedCount())
	})

	t.Run("should reject out of range rating", func(t *testing.T) {
		d := testDriver(t)

		assert.ErrorIs(t, d.SubmitRating(0, time.Now()), errs.ErrValueIsOutOfRange)
		assert.ErrorIs(t, d.SubmitRating(6, time.Now()), errs.ErrValueIsOutOfRange)
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("should restore driver without validation", func(t *testing.T) {
		id := kernel.NewUUID()
		point, err := kernel.NewGeoPoint(40.7, -74.0)
		require.NoError(t, err)
		at := time.Now()

		d := driver.RestoreDriver(id, "Sam Lee", "+15550123", driver.VehicleTypeVan, "AB-123-CD",
			driver.StatusOnline, &driver.Position{Point: point, ReportedAt: at},
			4.2, 5, 12, 11, 1, 250.0, at, at)

		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, driver.StatusOnline, d.Status())
		assert.InDelta(t, 4.2, d.Rating(), 0.001)
	})
}

func TestVehicleType(t *testing.T) {
	t.Run("should round-trip wire names", func(t *testing.T) {
		for _, name := range []string{"BIKE", "MOTORCYCLE", "CAR", "VAN"} {
			parsed, err := driver.VehicleTypeFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, parsed.String())
		}
	})

	t.Run("should reject unknown name", func(t *testing.T) {
		_, err := driver.VehicleTypeFromString("TRUCK")

		require.Error(t, err)
	})
}

func TestStatus(t *testing.T) {
	t.Run("should round-trip wire names", func(t *testing.T) {
		for _, name := range []string{"OFFLINE", "ONLINE", "BUSY"} {
			parsed, err := driver.StatusFromString(name)

			require.NoError(t, err)
			assert.Equal(t, name, parsed.String())
		}
	})

	t.Run("should mark only online drivers dispatchable", func(t *testing.T) {
		assert.True(t, driver.StatusOnline.IsDispatchable())
		assert.False(t, driver.StatusOffline.IsDispatchable())
		assert.False(t, driver.StatusBusy.IsDispatchable())
	})
}
