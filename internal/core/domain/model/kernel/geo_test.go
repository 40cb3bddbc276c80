package kernel_test

import (
	"testing"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create valid point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(40.7128, -74.0060)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 40.7128, p.Lat(), 1e-9)
		assert.InDelta(t, -74.0060, p.Lon(), 1e-9)
	})

	t.Run("should accept boundary coordinates", func(t *testing.T) {
		for _, c := range [][2]float64{{-90, -180}, {90, 180}, {0, 0}} {
			p, err := kernel.NewGeoPoint(c[0], c[1])
			require.NoError(t, err)
			require.NoError(t, p.Validate())
		}
	})

	t.Run("should fail with latitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.01, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should fail with longitude out of range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, -180.5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p kernel.GeoPoint

		require.Error(t, p.Validate())
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	newYork, _ := kernel.NewGeoPoint(40.7128, -74.0060)
	losAngeles, _ := kernel.NewGeoPoint(34.0522, -118.2437)

	t.Run("distance to self is zero", func(t *testing.T) {
		d, err := newYork.DistanceKm(newYork)

		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-9)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		ab, err := newYork.DistanceKm(losAngeles)
		require.NoError(t, err)

		ba, err := losAngeles.DistanceKm(newYork)
		require.NoError(t, err)

		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("known distance New York to Los Angeles", func(t *testing.T) {
		d, err := newYork.DistanceKm(losAngeles)

		require.NoError(t, err)
		// Great-circle distance is roughly 3936 km.
		assert.InDelta(t, 3936, d, 10)
	})

	t.Run("unconstructed operand fails", func(t *testing.T) {
		var zero kernel.GeoPoint

		_, err := newYork.DistanceKm(zero)
		require.Error(t, err)

		_, err = zero.DistanceKm(newYork)
		require.Error(t, err)
	})
}

func TestGeoPoint_BoundingBox(t *testing.T) {
	center, _ := kernel.NewGeoPoint(48.8566, 2.3522)

	t.Run("contains center and nearby points", func(t *testing.T) {
		box, err := center.BoundingBox(5)
		require.NoError(t, err)

		assert.True(t, box.Contains(center))

		near, _ := kernel.NewGeoPoint(48.87, 2.36)
		assert.True(t, box.Contains(near))
	})

	t.Run("excludes far points", func(t *testing.T) {
		box, err := center.BoundingBox(5)
		require.NoError(t, err)

		far, _ := kernel.NewGeoPoint(50.0, 2.3522)
		assert.False(t, box.Contains(far))
	})

	t.Run("box encloses the radius circle", func(t *testing.T) {
		box, err := center.BoundingBox(10)
		require.NoError(t, err)

		// Any point within 10km must be inside the box.
		inside, _ := kernel.NewGeoPoint(48.93, 2.3522) // ~8 km north
		d, _ := center.DistanceKm(inside)
		require.Less(t, d, 10.0)
		assert.True(t, box.Contains(inside))
	})

	t.Run("rejects non-positive radius", func(t *testing.T) {
		_, err := center.BoundingBox(0)

		require.Error(t, err)
	})

	t.Run("clamps at the poles", func(t *testing.T) {
		pole, _ := kernel.NewGeoPoint(89.9, 0)

		box, err := pole.BoundingBox(50)
		require.NoError(t, err)
		assert.LessOrEqual(t, box.MaxLat, kernel.LatitudeMax)
	})
}
