package ports

import "shopping-route-service/internal/domain"

// Contract for estimating travel distance between two coordinates.
// Implementations must be deterministic and side-effect free.
type DistanceProvider interface {
	// Return the distance in miles from one coordinate to another.
	Miles(from, to domain.Coordinates) float64
}
