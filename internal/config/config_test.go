package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("START_LAT", "")
	t.Setenv("START_LON", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "default", cfg.ListID)
	require.InDelta(t, 33.4484, cfg.StartLat, 1e-9)

	t.Setenv("PORT", "9090")
	t.Setenv("START_LAT", "40.5")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 40.5, cfg.StartLat)

	t.Setenv("START_LAT", "north")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("START_LAT", "95")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LIST_ID=weekly-groceries\n"), 0o600))
	t.Setenv("LIST_ID", "")
	os.Unsetenv("LIST_ID")

	require.True(t, LoadDotEnv(path))
	require.Equal(t, "weekly-groceries", Get("LIST_ID", "default"))
	require.False(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestLoadEngineFile(t *testing.T) {
	dir := t.TempDir()

	f, err := LoadEngineFile(filepath.Join(dir, "absent.toml"))
	require.NoError(t, err)
	require.Nil(t, f.Route.Distance)

	path := filepath.Join(dir, "engine.toml")
	body := `
[route]
distance = "haversine"
minutes_per_mile = 2.5
return_to_start = true
simulated_latency = "250ms"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	f, err = LoadEngineFile(path)
	require.NoError(t, err)
	require.Equal(t, DistanceHaversine, *f.Route.Distance)
	require.Equal(t, 2.5, *f.Route.MinutesPerMile)
	require.True(t, *f.Route.ReturnToStart)
	require.Equal(t, 250*time.Millisecond, f.Route.SimulatedLatency.Duration)
	require.Nil(t, f.Route.MaxTripMinutes)

	require.NoError(t, os.WriteFile(path, []byte("[route]\ndistance = \"teleport\"\n"), 0o600))
	_, err = LoadEngineFile(path)
	require.Error(t, err)
}
