package usecase

import (
	"context"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"local-ads/internal/core/port"
)

const suggestionLimit = 10

// CatalogUseCase implements port.CatalogUseCase over the reference data
// repositories.
type CatalogUseCase struct {
	cities   port.CityRepository
	keywords port.KeywordRepository
}

// NewCatalogUseCase creates a catalog use case.
func NewCatalogUseCase(cities port.CityRepository, keywords port.KeywordRepository) *CatalogUseCase {
	return &CatalogUseCase{cities: cities, keywords: keywords}
}

func (u *CatalogUseCase) Cities(ctx context.Context) ([]port.CityView, error) {
	cities, err := u.cities.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]port.CityView, 0, len(cities))
	for _, c := range cities {
		views = append(views, port.CityView{
			ID:        c.ID,
			Name:      c.Name,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
			Geohash:   geohash.Encode(c.Latitude, c.Longitude),
		})
	}
	return views, nil
}

// SuggestKeywords filters the catalog by substring. Results keep catalog
// order; an empty query yields the first entries of the catalog.
func (u *CatalogUseCase) SuggestKeywords(ctx context.Context, query string) ([]string, error) {
	keywords, err := u.keywords.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, suggestionLimit)
	for _, k := range keywords {
		if query == "" {
			if len(out) == suggestionLimit {
				break
			}
			out = append(out, k.Name)
			continue
		}
		if strings.Contains(strings.ToLower(k.Name), query) {
			out = append(out, k.Name)
		}
	}
	return out, nil
}
