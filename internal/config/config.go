// Package config loads process settings from the environment (optionally via a
// .env file) and planner settings from an optional TOML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q: %w", key, raw, err)
	}
	return v, nil
}

// Config is the server's environment configuration.
type Config struct {
	Port        string
	DBPath      string
	SeedPath    string
	DatabaseURL string
	RedisAddr   string
	ListID      string
	StartLat    float64
	StartLon    float64
	EngineFile  string
	LogLevel    string
	LogFormat   string
}

// LoadDotEnv loads .env into the process environment. A missing file is not an
// error; it reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load reads Config from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/catalog.json"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisAddr:   Get("REDIS_ADDR", ""),
		ListID:      Get("LIST_ID", "default"),
		EngineFile:  Get("ENGINE_CONFIG", "config/engine.toml"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		LogFormat:   Get("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.StartLat, err = getFloat("START_LAT", 33.4484); err != nil {
		return Config{}, err
	}
	if cfg.StartLon, err = getFloat("START_LON", -112.0740); err != nil {
		return Config{}, err
	}
	if cfg.StartLat < -90 || cfg.StartLat > 90 {
		return Config{}, fmt.Errorf("config: START_LAT %v must be between -90 and 90", cfg.StartLat)
	}
	if cfg.StartLon < -180 || cfg.StartLon > 180 {
		return Config{}, fmt.Errorf("config: START_LON %v must be between -180 and 180", cfg.StartLon)
	}

	return cfg, nil
}

// Duration wraps time.Duration so TOML strings like "250ms" decode into it.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}
