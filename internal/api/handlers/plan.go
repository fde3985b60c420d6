package handlers

import (
	"context"
	"errors"
	"net/http"
	"shopping-route-service/internal/api/dto"
	"shopping-route-service/internal/services"

	"github.com/rs/zerolog"
)

// PlanHandler exposes the current plan and the asynchronous recalculation trigger.
type PlanHandler struct {
	Engine *services.Engine
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, r, http.StatusOK, planResponse(h.Engine.Plan(), h.Engine.Calculating()))
}

// Recalculate starts a background pass. A pass already in flight suppresses
// the trigger with 409.
func (h *PlanHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	// The pass outlives the request; keep its logger but drop the cancellation.
	ctx := context.WithoutCancel(r.Context())
	done, started := h.Engine.TriggerRecalculation(ctx)
	if !started {
		writeError(w, r, http.StatusConflict, "recalculation already in progress")
		return
	}

	go func() {
		err := <-done
		l := zerolog.Ctx(ctx)
		switch {
		case err == nil:
			l.Debug().Msg("recalculation applied")
		case errors.Is(err, services.ErrSuperseded):
			l.Debug().Msg("recalculation superseded")
		default:
			l.Error().Err(err).Msg("recalculation failed")
		}
	}()

	writeJSON(w, r, http.StatusAccepted, dto.RecalculateResponse{Status: "calculating"})
}
