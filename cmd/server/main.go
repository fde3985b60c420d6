package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"shopping-route-service/internal/adapters/cache"
	"shopping-route-service/internal/adapters/distance"
	"shopping-route-service/internal/adapters/repositories"
	"shopping-route-service/internal/api"
	"shopping-route-service/internal/config"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/platform/db"
	"shopping-route-service/internal/platform/obs"
	"shopping-route-service/internal/ports"
	"shopping-route-service/internal/services"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	loadedEnv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		boot := obs.NewLogger("info", "json")
		boot.Fatal().Err(err).Msg("load config")
	}

	logger := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if !loadedEnv {
		logger.Info().Msg("no .env file found (using environment variables)")
	}
	ctx := logger.WithContext(context.Background())

	engineFile, err := config.LoadEngineFile(cfg.EngineFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.EngineFile).Msg("load engine config")
	}

	catalogDB, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open catalog database")
	}
	defer catalogDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(catalogDB, cfg.SeedPath); err != nil {
		logger.Fatal().Err(err).Msg("init catalog")
	}

	archive, closeArchive, err := openSessionArchive(ctx, cfg, catalogDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("open session archive")
	}
	defer closeArchive()

	var stateCache ports.PlanStateCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; plan state will not persist")
		} else {
			stateCache = cache.NewRedisPlanStateCache(client)
		}
	}

	engineCfg, provider := engineSettings(cfg, engineFile)
	engine, err := services.LoadEngine(ctx, engineCfg, services.EngineDeps{
		Distance:   provider,
		Sessions:   archive,
		StateCache: stateCache,
		Logger:     &logger,
	}, repositories.NewSqliteCatalogRepository(catalogDB))
	if err != nil {
		logger.Fatal().Err(err).Msg("load engine")
	}

	router := api.NewRouter(engine, logger)

	logger.Info().Str("addr", ":"+cfg.Port).Str("list_id", cfg.ListID).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// openSessionArchive uses Postgres when DATABASE_URL is set and the catalog
// database otherwise.
func openSessionArchive(ctx context.Context, cfg config.Config, catalogDB *sql.DB) (ports.SessionRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		return repositories.NewSqliteSessionRepository(catalogDB), func() {}, nil
	}

	pg, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.InitSessionSchema(ctx, pg); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return repositories.NewSQLSessionRepository(pg), func() { _ = pg.Close() }, nil
}

// engineSettings layers the TOML route settings over the planner defaults.
func engineSettings(cfg config.Config, f config.EngineFile) (services.EngineConfig, ports.DistanceProvider) {
	planner := services.DefaultRoutePlannerConfig()
	rc := f.Route
	if rc.MinutesPerMile != nil {
		planner.MinutesPerMile = *rc.MinutesPerMile
	}
	if rc.MaxTripMinutes != nil {
		planner.MaxTripMinutes = *rc.MaxTripMinutes
	}
	if rc.ReturnToStart != nil {
		planner.ReturnToStart = *rc.ReturnToStart
	}

	var provider ports.DistanceProvider
	if rc.Distance != nil && *rc.Distance == config.DistanceHaversine {
		provider = distance.NewHaversine()
	} else {
		mpd := distance.MilesPerDegree
		if rc.MilesPerDegree != nil {
			mpd = *rc.MilesPerDegree
		}
		provider = distance.NewPlanar(mpd)
	}

	ec := services.EngineConfig{
		ListID:  cfg.ListID,
		Start:   domain.Coordinates{Lat: cfg.StartLat, Lon: cfg.StartLon},
		Planner: planner,
	}
	if rc.SimulatedLatency != nil {
		ec.SimulatedLatency = rc.SimulatedLatency.Duration
	}
	return ec, provider
}

