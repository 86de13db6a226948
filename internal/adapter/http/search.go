package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"

	"local-ads/internal/core/port"
)

type searchParams struct {
	city   string
	radius float64
}

// parseSearch reads searchCityName and searchRadius from the query.
func parseSearch(r *http.Request) (searchParams, error) {
	q := r.URL.Query()
	p := searchParams{city: q.Get("searchCityName")}
	if p.city == "" {
		return p, fmt.Errorf("%w: searchCityName is required", port.ErrValidation)
	}
	raw := q.Get("searchRadius")
	if raw == "" {
		return p, fmt.Errorf("%w: searchRadius is required", port.ErrValidation)
	}
	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return p, fmt.Errorf("%w: invalid searchRadius %q", port.ErrValidation, raw)
	}
	p.radius = radius
	return p, nil
}

func (h *Handler) handleSearchByLocation(w http.ResponseWriter, r *http.Request) {
	p, err := parseSearch(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views, err := h.matcher.FindNear(r.Context(), p.city, p.radius)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleSearchByLocationAndKeywords(w http.ResponseWriter, r *http.Request) {
	p, err := parseSearch(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views, err := h.matcher.FindNearByKeywords(r.Context(), p.city, p.radius, keywordsParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}
