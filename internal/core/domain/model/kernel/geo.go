package kernel

import (
	"errors"
	"fmt"

	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

const (
	// GeoMinLat is the minimum valid latitude in degrees.
	GeoMinLat = -90.0
	// GeoMaxLat is the maximum valid latitude in degrees.
	GeoMaxLat = 90.0
	// GeoMinLng is the minimum valid longitude in degrees.
	GeoMinLng = -180.0
	// GeoMaxLng is the maximum valid longitude in degrees.
	GeoMaxLng = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// GeoPoints must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS84 coordinate pair reported by an agent device.
// GeoPoint is an immutable value object that ensures latitude and longitude
// are always within valid bounds. The zero value is invalid and will fail
// validation - use the constructor to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(23.8103, 90.4125)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Point: %s", point) // Output: GeoPoint(23.810300,90.412500)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint from latitude and longitude in degrees.
// Latitude must be within [GeoMinLat..GeoMaxLat] and longitude within
// [GeoMinLng..GeoMaxLng]. Returns an error if either value is out of bounds.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual compares two geo points by their coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String returns a human-readable representation of the point.
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoMinLat || lat > GeoMaxLat {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoMinLat, GeoMaxLat)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoMinLng || lng > GeoMaxLng {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoMinLng, GeoMaxLng)
	}
	p.lng = lng
	return nil
}
