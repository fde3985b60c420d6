package distance

import (
	"math"
	"shopping-route-service/internal/domain"
)

const earthRadiusMiles = 3958.8

// Haversine returns great-circle distance in miles.
type Haversine struct{}

func NewHaversine() *Haversine { return &Haversine{} }

func (Haversine) Miles(from, to domain.Coordinates) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (to.Lon - from.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(a)))
}
