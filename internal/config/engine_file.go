package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DistancePlanar    = "planar"
	DistanceHaversine = "haversine"
)

// EngineFile represents the optional engine TOML file.
type EngineFile struct {
	Route RouteConfig `toml:"route"`
}

// RouteConfig maps route-planner settings. Pointers distinguish unset keys.
type RouteConfig struct {
	Distance         *string   `toml:"distance"`
	MilesPerDegree   *float64  `toml:"miles_per_degree"`
	MinutesPerMile   *float64  `toml:"minutes_per_mile"`
	MaxTripMinutes   *float64  `toml:"max_trip_minutes"`
	ReturnToStart    *bool     `toml:"return_to_start"`
	SimulatedLatency *Duration `toml:"simulated_latency"`
}

// LoadEngineFile reads the TOML file at path. A missing file yields an empty
// EngineFile so every setting falls back to its default.
func LoadEngineFile(path string) (EngineFile, error) {
	if path == "" {
		return EngineFile{}, fmt.Errorf("engine config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return EngineFile{}, nil
		}
		return EngineFile{}, fmt.Errorf("stat engine config: %w", err)
	}

	var f EngineFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return EngineFile{}, fmt.Errorf("decode engine config: %w", err)
	}
	if f.Route.Distance != nil {
		switch *f.Route.Distance {
		case DistancePlanar, DistanceHaversine:
		default:
			return EngineFile{}, fmt.Errorf("engine config: unknown distance %q", *f.Route.Distance)
		}
	}
	return f, nil
}
