package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"local-ads/internal/core/port"
)

func (h *Handler) handleRegisterSeller(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.sellers.Register(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) handleCurrentSeller(w http.ResponseWriter, r *http.Request) {
	view, err := h.sellers.GetByID(r.Context(), currentSeller(r).ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteCurrentSeller(w http.ResponseWriter, r *http.Request) {
	if err := h.sellers.Delete(r.Context(), currentSeller(r).ID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddFunds(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: invalid amount %q", port.ErrValidation, raw))
		return
	}
	view, err := h.sellers.AddFunds(r.Context(), currentSeller(r).ID, amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleMovements(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: invalid limit %q", port.ErrValidation, raw))
			return
		}
		limit = n
	}
	views, err := h.sellers.Movements(r.Context(), currentSeller(r).ID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleListSellers(w http.ResponseWriter, r *http.Request) {
	views, err := h.sellers.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetSeller(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.sellers.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteSeller(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.sellers.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
