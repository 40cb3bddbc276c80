package kernel

import (
	"fmt"
	"math"

	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Valid coordinate bounds for GeoPoint in decimal degrees.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when using a GeoPoint that was not
// created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object for a GPS coordinate pair.
// The zero value is invalid and fails Validate; use NewGeoPoint.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(p) // GeoPoint(40.712800,-74.006000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint after validating that latitude lies in
// [-90, 90] and longitude in [-180, 180] decimal degrees.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if lat < LatitudeMin || lat > LatitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	if lon < LongitudeMin || lon > LongitudeMax {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", lon, LongitudeMin, LongitudeMax)
	}

	p.lat = lat
	p.lon = lon
	return p, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// IsEqual compares two points by exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lon == other.lon
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lon)
}

// DistanceKm returns the great-circle distance to other in kilometers,
// computed with the Haversine formula. Distance is symmetric and zero for
// identical points.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if err := other.Validate(); err != nil {
		return 0, err
	}

	dLat := toRadians(other.lat - p.lat)
	dLon := toRadians(other.lon - p.lon)
	lat1 := toRadians(p.lat)
	lat2 := toRadians(other.lat)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

// BoundingBox is an axis-aligned coordinate box used as a cheap pre-filter
// before the exact great-circle check.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox returns the box that encloses the circle of radiusKm around p.
// The longitude span widens with latitude and collapses to the full range
// near the poles. Radius must be positive.
func (p GeoPoint) BoundingBox(radiusKm float64) (BoundingBox, error) {
	if err := p.Validate(); err != nil {
		return BoundingBox{}, err
	}
	if radiusKm <= 0 {
		return BoundingBox{}, errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%f is not greater than 0", radiusKm))
	}

	latDelta := toDegrees(radiusKm / EarthRadiusKm)

	lonDelta := 360.0
	if cosLat := math.Cos(toRadians(p.lat)); cosLat > 1e-9 {
		lonDelta = latDelta / cosLat
	}

	return BoundingBox{
		MinLat: math.Max(p.lat-latDelta, LatitudeMin),
		MaxLat: math.Min(p.lat+latDelta, LatitudeMax),
		MinLon: math.Max(p.lon-lonDelta, LongitudeMin),
		MaxLon: math.Min(p.lon+lonDelta, LongitudeMax),
	}, nil
}

// Contains reports whether the point lies inside the box, bounds inclusive.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.lat >= b.MinLat && p.lat <= b.MaxLat &&
		p.lon >= b.MinLon && p.lon <= b.MaxLon
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
