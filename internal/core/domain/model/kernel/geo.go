package kernel

import (
	"errors"
	"fmt"
	"math"

	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

var ErrGeoIsNotConstructed = errs.NewValueIsRequiredError("geo point must be created via NewGeo")

// Geo is a WGS84 point reported by a courier's device or stored for a restaurant.
type Geo struct { //nolint:recvcheck //using for validation
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

func NewGeo(lat, lon float64) (Geo, error) {
	g := Geo{guard: guard.NewConstructorGuard()}

	if err := errors.Join(g.setLat(lat), g.setLon(lon)); err != nil {
		return Geo{}, err
	}

	return g, nil
}

func (g Geo) Validate() error {
	return g.guard.Validate(ErrGeoIsNotConstructed)
}

func (g Geo) Lat() float64 {
	return g.lat
}

func (g Geo) Lon() float64 {
	return g.lon
}

func (g Geo) String() string {
	return fmt.Sprintf("Geo(%.6f,%.6f)", g.lat, g.lon)
}

// DistanceKm is the great-circle distance between two points.
func (g Geo) DistanceKm(other Geo) (float64, error) {
	if err := errors.Join(g.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := g.lat * math.Pi / 180
	lat2 := other.lat * math.Pi / 180
	dLat := (other.lat - g.lat) * math.Pi / 180
	dLon := (other.lon - g.lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), nil
}

func (g *Geo) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}
	g.lat = lat
	return nil
}

func (g *Geo) setLon(lon float64) error {
	if math.IsNaN(lon) || lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lon", lon, LongitudeMin, LongitudeMax)
	}
	g.lon = lon
	return nil
}
