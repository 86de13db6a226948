package httpadapter

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"local-ads/internal/core/port"
)

// Money leaves the API as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Limiter decides whether a client may issue another request.
type Limiter interface {
	Allow(ctx context.Context, client string) (bool, error)
}

// Deps groups the use cases served over HTTP. Limiter is optional.
type Deps struct {
	Campaigns port.CampaignUseCase
	Matcher   port.LocationMatcher
	Sellers   port.SellerUseCase
	Catalog   port.CatalogUseCase
	Limiter   Limiter
	Logger    *slog.Logger
}

// Handler is the inbound HTTP adapter. Routes are registered on a chi.Router.
type Handler struct {
	campaigns port.CampaignUseCase
	matcher   port.LocationMatcher
	sellers   port.SellerUseCase
	catalog   port.CatalogUseCase
	limiter   Limiter
	logger    *slog.Logger
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		campaigns: d.Campaigns,
		matcher:   d.Matcher,
		sellers:   d.Sellers,
		catalog:   d.Catalog,
		limiter:   d.Limiter,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cities", h.handleCities)
		r.Get("/keywords/suggest", h.handleSuggestKeywords)

		r.Route("/sellers", func(r chi.Router) {
			r.Post("/", h.handleRegisterSeller)

			r.Group(func(r chi.Router) {
				r.Use(h.identify)
				r.Get("/me", h.handleCurrentSeller)
				r.Delete("/me", h.handleDeleteCurrentSeller)
				r.Patch("/me/add-funds/{amount}", h.handleAddFunds)
				r.Get("/me/movements", h.handleMovements)

				r.Group(func(r chi.Router) {
					r.Use(requireAdmin)
					r.Get("/", h.handleListSellers)
					r.Get("/{id}", h.handleGetSeller)
					r.Delete("/{id}", h.handleDeleteSeller)
				})
			})
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/all", h.handleListAllCampaigns)
			r.Get("/all/by-name/{name}", h.handleGetCampaignByName)
			r.Get("/all/by-city/{city}", h.handleListCampaignsByCity)

			r.Group(func(r chi.Router) {
				if h.limiter != nil {
					r.Use(h.rateLimit)
				}
				r.Get("/search-by-location", h.handleSearchByLocation)
				r.Get("/search-by-location-and-keywords", h.handleSearchByLocationAndKeywords)
			})

			r.Group(func(r chi.Router) {
				r.Use(h.identify)
				r.Post("/", h.handleCreateCampaign)
				r.Get("/", h.handleListOwnedCampaigns)
				r.Get("/{id}", h.handleGetCampaign)
				r.Get("/{id}/status", h.handleGetCampaignStatus)
				r.Patch("/{id}", h.handleUpdateCampaign)
				r.Patch("/{id}/status", h.handleUpdateCampaignStatus)
				r.Delete("/{id}", h.handleDeleteCampaign)
				r.With(requireAdmin).Delete("/admin/{id}", h.handleAdminDeleteCampaign)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
