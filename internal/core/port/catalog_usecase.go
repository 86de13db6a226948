package port

import "context"

// CatalogUseCase exposes the reference data: cities and keywords.
type CatalogUseCase interface {
	Cities(ctx context.Context) ([]CityView, error)
	// SuggestKeywords returns catalog keywords containing query,
	// case-insensitively. An empty query returns the first entries.
	SuggestKeywords(ctx context.Context, query string) ([]string, error)
}

// CityView is the public projection of a city.
type CityView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Geohash   string  `json:"geohash"`
}
