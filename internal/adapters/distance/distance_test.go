package distance

import (
	"shopping-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanarMiles(t *testing.T) {
	p := NewPlanar(0)
	require.Equal(t, MilesPerDegree, p.MilesPerDegree)

	d := p.Miles(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0.03, Lon: 0.04})
	require.InDelta(t, 0.05*MilesPerDegree, d, 1e-9)
	require.Zero(t, p.Miles(domain.Coordinates{Lat: 1, Lon: 1}, domain.Coordinates{Lat: 1, Lon: 1}))
}

func TestHaversineMiles(t *testing.T) {
	h := NewHaversine()
	// One degree of latitude is ~69.09 miles on a 3958.8 mi sphere.
	d := h.Miles(domain.Coordinates{Lat: 33, Lon: -112}, domain.Coordinates{Lat: 34, Lon: -112})
	require.InDelta(t, 69.09, d, 0.01)

	// Near the equator planar and haversine roughly agree for short hops.
	a := domain.Coordinates{Lat: 0.01, Lon: 0.01}
	b := domain.Coordinates{Lat: 0.02, Lon: 0.03}
	require.InDelta(t, NewPlanar(MilesPerDegree).Miles(a, b), h.Miles(a, b), 0.01)
}

func TestMockDistanceProvider(t *testing.T) {
	home := domain.Coordinates{Lat: 1, Lon: 1}
	store := domain.Coordinates{Lat: 2, Lon: 2}
	m := NewMockDistanceProvider([]MockPair{{From: home, To: store, Miles: 4.5}})

	require.Equal(t, 4.5, m.Miles(home, store))
	require.Equal(t, 4.5, m.Miles(store, home))
	require.InDelta(t, MilesPerDegree, m.Miles(home, domain.Coordinates{Lat: 2, Lon: 1}), 1e-9)
}
