package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"local-ads/internal/core/port"
)

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.campaigns.Create(r.Context(), currentSeller(r).ID, req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, view)
}

// handleListOwnedCampaigns lists the caller's campaigns, optionally narrowed
// by the name or city query parameter. name wins when both are given.
func (h *Handler) handleListOwnedCampaigns(w http.ResponseWriter, r *http.Request) {
	var (
		q      = r.URL.Query()
		seller = currentSeller(r)
		views  []port.CampaignView
		err    error
	)
	switch {
	case q.Get("name") != "":
		views, err = h.campaigns.ListByOwnerAndName(r.Context(), seller.ID, q.Get("name"))
	case q.Get("city") != "":
		views, err = h.campaigns.ListByOwnerAndCity(r.Context(), seller.ID, q.Get("city"))
	default:
		views, err = h.campaigns.ListByOwner(r.Context(), seller.ID)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.campaigns.GetOwned(r.Context(), currentSeller(r).ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGetCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status, err := h.campaigns.GetStatus(r.Context(), currentSeller(r).ID, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"status": status})
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req campaignRequest
	if err = decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.campaigns.Update(r.Context(), currentSeller(r).ID, id, req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleUpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req statusRequest
	if err = decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	view, err := h.campaigns.UpdateStatus(r.Context(), currentSeller(r).ID, id, *req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.campaigns.Delete(r.Context(), currentSeller(r).ID, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdminDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err = h.campaigns.DeleteByID(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListAllCampaigns(w http.ResponseWriter, r *http.Request) {
	views, err := h.campaigns.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetCampaignByName(w http.ResponseWriter, r *http.Request) {
	view, err := h.campaigns.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleListCampaignsByCity(w http.ResponseWriter, r *http.Request) {
	views, err := h.campaigns.ListByCity(r.Context(), chi.URLParam(r, "city"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}
