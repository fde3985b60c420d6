package handlers

import (
	"net/http"
	"shopping-route-service/internal/api/dto"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/services"
	"strings"
)

// WeightsHandler adjusts the preference vector. Every accepted change
// recalculates and returns the new plan.
type WeightsHandler struct {
	Engine *services.Engine
}

func (h *WeightsHandler) Preset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PresetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	name := domain.PresetName(strings.TrimSpace(req.Name))
	plan, applied, err := h.Engine.ApplyPreset(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, "apply preset", err)
		return
	}
	if !applied {
		writeError(w, r, http.StatusBadRequest, "unknown preset "+string(name))
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan, h.Engine.Calculating()))
}

func (h *WeightsHandler) Criterion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req dto.CriterionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Value == nil {
		writeError(w, r, http.StatusBadRequest, "value is required")
		return
	}

	c, err := domain.ParseCriterion(strings.TrimSpace(req.Criterion))
	if err != nil {
		writeServiceError(w, r, "set weight", err)
		return
	}

	plan, err := h.Engine.SetWeight(r.Context(), c, *req.Value)
	if err != nil {
		writeServiceError(w, r, "set weight", err)
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan, h.Engine.Calculating()))
}

func (h *WeightsHandler) Vector(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPut) {
		return
	}

	var req dto.WeightsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	plan, err := h.Engine.SetVector(r.Context(), domain.PreferenceWeights{
		Price:    req.Price,
		Distance: req.Distance,
		Quality:  req.Quality,
		Time:     req.Time,
	})
	if err != nil {
		writeServiceError(w, r, "set weights", err)
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan, h.Engine.Calculating()))
}
