package handlers

import (
	"net/http"
	"shopping-route-service/internal/api/dto"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/services"
	"strings"
)

// SessionsHandler drives the in-store checklist for each planned stop.
type SessionsHandler struct {
	Engine *services.Engine
}

func (h *SessionsHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.StartSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	storeID := strings.TrimSpace(req.StoreID)
	if storeID == "" {
		writeError(w, r, http.StatusBadRequest, "store_id is required")
		return
	}

	s, err := h.Engine.StartShopping(r.Context(), storeID)
	if err != nil {
		writeServiceError(w, r, "start shopping", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sessionResponse(s))
}

func (h *SessionsHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SessionItemRequest
	if !decodeBody(w, r, &req) || !requireStoreItem(w, r, req.StoreID, req.ItemID) {
		return
	}

	h.respond(w, r, "toggle item", func() (*domain.ShoppingSession, error) {
		return h.Engine.ToggleChecked(strings.TrimSpace(req.StoreID), strings.TrimSpace(req.ItemID))
	})
}

func (h *SessionsHandler) Unavailable(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.UnavailableRequest
	if !decodeBody(w, r, &req) || !requireStoreItem(w, r, req.StoreID, req.ItemID) {
		return
	}

	h.respond(w, r, "mark unavailable", func() (*domain.ShoppingSession, error) {
		return h.Engine.MarkUnavailable(
			strings.TrimSpace(req.StoreID),
			strings.TrimSpace(req.ItemID),
			strings.TrimSpace(req.SubstituteID),
			strings.TrimSpace(req.SubstituteName),
		)
	})
}

func (h *SessionsHandler) Price(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PriceRequest
	if !decodeBody(w, r, &req) || !requireStoreItem(w, r, req.StoreID, req.ItemID) {
		return
	}
	if req.Price == nil {
		writeError(w, r, http.StatusBadRequest, "price is required")
		return
	}

	h.respond(w, r, "update price", func() (*domain.ShoppingSession, error) {
		return h.Engine.UpdateActualPrice(strings.TrimSpace(req.StoreID), strings.TrimSpace(req.ItemID), *req.Price)
	})
}

func (h *SessionsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CompleteSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	storeID := strings.TrimSpace(req.StoreID)
	if storeID == "" {
		writeError(w, r, http.StatusBadRequest, "store_id is required")
		return
	}

	h.respond(w, r, "complete shopping", func() (*domain.ShoppingSession, error) {
		return h.Engine.CompleteShopping(r.Context(), storeID, strings.TrimSpace(req.ReceiptRef))
	})
}

func (h *SessionsHandler) Active(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	s, ok := h.Engine.ActiveSession()
	if !ok {
		writeError(w, r, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse(s))
}

func (h *SessionsHandler) respond(w http.ResponseWriter, r *http.Request, op string, fn func() (*domain.ShoppingSession, error)) {
	s, err := fn()
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sessionResponse(s))
}

func requireStoreItem(w http.ResponseWriter, r *http.Request, storeID, itemID string) bool {
	if strings.TrimSpace(storeID) == "" || strings.TrimSpace(itemID) == "" {
		writeError(w, r, http.StatusBadRequest, "store_id and item_id are required")
		return false
	}
	return true
}
