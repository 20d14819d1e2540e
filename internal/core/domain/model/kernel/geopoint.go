package kernel

import (
	"errors"
	"fmt"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

const (
	// GeoMinLat is the minimum valid latitude in decimal degrees.
	GeoMinLat float64 = -90
	// GeoMaxLat is the maximum valid latitude in decimal degrees.
	GeoMaxLat float64 = 90
	// GeoMinLng is the minimum valid longitude in decimal degrees.
	GeoMinLng float64 = -180
	// GeoMaxLng is the maximum valid longitude in decimal degrees.
	GeoMaxLng float64 = 180
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object holding a validated WGS84 coordinate
// pair. It records where a delivery proof was captured. The zero value is
// invalid and fails validation; use NewGeoPoint to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(55.7558, 37.6173)
//	if err != nil {
//	    // Handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the specified coordinates.
// Latitude must be within [GeoMinLat..GeoMaxLat] and longitude within
// [GeoMinLng..GeoMaxLng]; otherwise a validation error is returned.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks if the GeoPoint was properly constructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in decimal degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual compares two geo points by their coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String returns a human-readable representation, e.g. "GeoPoint(55.7558,37.6173)".
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%v,%v)", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoMinLat || lat > GeoMaxLat {
		return errs.NewValueIsInvalidErrorWithCause("lat",
			fmt.Errorf("%v is out of range [%v..%v]", lat, GeoMinLat, GeoMaxLat))
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoMinLng || lng > GeoMaxLng {
		return errs.NewValueIsInvalidErrorWithCause("lng",
			fmt.Errorf("%v is out of range [%v..%v]", lng, GeoMinLng, GeoMaxLng))
	}
	p.lng = lng
	return nil
}
