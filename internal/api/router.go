package api

import (
	"net/http"
	"shopping-route-service/internal/api/handlers"
	"shopping-route-service/internal/services"

	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(engine *services.Engine, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Engine: engine}
	weightsHandler := &handlers.WeightsHandler{Engine: engine}
	itemsHandler := &handlers.ItemsHandler{Engine: engine}
	sessionsHandler := &handlers.SessionsHandler{Engine: engine}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/plan", planHandler.Get)
	mux.HandleFunc("/plan/recalculate", planHandler.Recalculate)

	mux.HandleFunc("/weights", weightsHandler.Vector)
	mux.HandleFunc("/weights/preset", weightsHandler.Preset)
	mux.HandleFunc("/weights/criterion", weightsHandler.Criterion)

	mux.HandleFunc("/items/move", itemsHandler.Move)
	mux.HandleFunc("/items/reset", itemsHandler.Reset)

	mux.HandleFunc("/sessions/start", sessionsHandler.Start)
	mux.HandleFunc("/sessions/toggle", sessionsHandler.Toggle)
	mux.HandleFunc("/sessions/unavailable", sessionsHandler.Unavailable)
	mux.HandleFunc("/sessions/price", sessionsHandler.Price)
	mux.HandleFunc("/sessions/complete", sessionsHandler.Complete)
	mux.HandleFunc("/sessions/active", sessionsHandler.Active)

	return loggingMiddleware(logger, mux)
}
