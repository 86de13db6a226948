package httpadapter

import "net/http"

func (h *Handler) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.catalog.Cities(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cities)
}

func (h *Handler) handleSuggestKeywords(w http.ResponseWriter, r *http.Request) {
	keywords, err := h.catalog.SuggestKeywords(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, keywords)
}
