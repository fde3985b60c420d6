package distance

import (
	"math"
	"shopping-route-service/internal/domain"
)

// MilesPerDegree is the flat-earth scale used by Planar.
const MilesPerDegree = 69.0

// Planar approximates distance as Euclidean distance on lat/lon scaled by a
// fixed miles-per-degree constant. Longitude convergence is ignored.
type Planar struct {
	MilesPerDegree float64
}

func NewPlanar(milesPerDegree float64) *Planar {
	if milesPerDegree <= 0 {
		milesPerDegree = MilesPerDegree
	}
	return &Planar{MilesPerDegree: milesPerDegree}
}

func (p *Planar) Miles(from, to domain.Coordinates) float64 {
	dLat := to.Lat - from.Lat
	dLon := to.Lon - from.Lon
	return math.Sqrt(dLat*dLat+dLon*dLon) * p.MilesPerDegree
}
