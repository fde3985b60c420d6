package main

import (
	"shopping-route-service/internal/adapters/distance"
	"shopping-route-service/internal/config"
	"shopping-route-service/internal/services"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEngineSettingsDefaults(t *testing.T) {
	cfg := config.Config{ListID: "weekly", StartLat: 33.1, StartLon: -112.2}

	ec, provider := engineSettings(cfg, config.EngineFile{})
	require.Equal(t, "weekly", ec.ListID)
	require.Equal(t, 33.1, ec.Start.Lat)
	require.Equal(t, -112.2, ec.Start.Lon)
	require.Equal(t, services.DefaultRoutePlannerConfig(), ec.Planner)
	require.Zero(t, ec.SimulatedLatency)
	require.IsType(t, &distance.Planar{}, provider)
}

func TestEngineSettingsOverrides(t *testing.T) {
	haversine := config.DistanceHaversine
	mpm := 3.0
	maxTrip := 90.0
	ret := true

	ec, provider := engineSettings(config.Config{}, config.EngineFile{Route: config.RouteConfig{
		Distance:         &haversine,
		MinutesPerMile:   &mpm,
		MaxTripMinutes:   &maxTrip,
		ReturnToStart:    &ret,
		SimulatedLatency: &config.Duration{Duration: 250 * time.Millisecond},
	}})

	require.Equal(t, 3.0, ec.Planner.MinutesPerMile)
	require.Equal(t, 90.0, ec.Planner.MaxTripMinutes)
	require.True(t, ec.Planner.ReturnToStart)
	require.Equal(t, 250*time.Millisecond, ec.SimulatedLatency)
	require.IsType(t, &distance.Haversine{}, provider)
}
