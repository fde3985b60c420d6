package handlers

import (
	"net/http"
	"shopping-route-service/internal/api/dto"
	"shopping-route-service/internal/services"
	"strings"
)

// ItemsHandler exposes manual store overrides.
type ItemsHandler struct {
	Engine *services.Engine
}

func (h *ItemsHandler) Move(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MoveItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	itemID := strings.TrimSpace(req.ItemID)
	from := strings.TrimSpace(req.FromStoreID)
	to := strings.TrimSpace(req.ToStoreID)
	if itemID == "" || from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "item_id, from_store_id and to_store_id are required")
		return
	}

	plan, err := h.Engine.MoveItem(r.Context(), itemID, from, to)
	if err != nil {
		writeServiceError(w, r, "move item", err)
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan, h.Engine.Calculating()))
}

func (h *ItemsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ResetItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	itemID := strings.TrimSpace(req.ItemID)
	if itemID == "" {
		writeError(w, r, http.StatusBadRequest, "item_id is required")
		return
	}

	plan, err := h.Engine.ResetManualAssignment(r.Context(), itemID)
	if err != nil {
		writeServiceError(w, r, "reset item", err)
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(plan, h.Engine.Calculating()))
}
