package distance

import (
	"fmt"
	"shopping-route-service/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Miles    float64
}

// MockDistanceProvider serves fixed distances for known coordinate pairs and
// falls back to Planar for anything else.
type MockDistanceProvider struct {
	m        map[string]float64
	fallback *Planar
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]float64, len(pairs)*2)
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = p.Miles
		m[pairKey(p.To, p.From)] = p.Miles
	}
	return &MockDistanceProvider{m: m, fallback: NewPlanar(MilesPerDegree)}
}

func (p *MockDistanceProvider) Miles(from, to domain.Coordinates) float64 {
	if d, ok := p.m[pairKey(from, to)]; ok {
		return d
	}
	return p.fallback.Miles(from, to)
}

func pairKey(a, b domain.Coordinates) string {
	return fmt.Sprintf("%g,%g|%g,%g", a.Lat, a.Lon, b.Lat, b.Lon)
}
