package usecase

import (
	"context"
	"fmt"
	"math"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// LocationMatcher implements port.LocationMatcher. Active candidates are
// loaded from the store and filtered by great-circle distance from the
// search city. The campaign's own radius does not take part in the match.
type LocationMatcher struct {
	cities    port.CityRepository
	campaigns port.CampaignRepository
}

// NewLocationMatcher creates a matcher over the given repositories.
func NewLocationMatcher(cities port.CityRepository, campaigns port.CampaignRepository) *LocationMatcher {
	return &LocationMatcher{cities: cities, campaigns: campaigns}
}

// FindNear returns active campaigns whose city lies within radiusKm of the
// search city.
func (m *LocationMatcher) FindNear(ctx context.Context, searchCity string, radiusKm float64) ([]port.CampaignView, error) {
	return m.match(ctx, searchCity, radiusKm, nil)
}

// FindNearByKeywords is FindNear restricted to campaigns sharing at least
// one keyword with keywords.
func (m *LocationMatcher) FindNearByKeywords(ctx context.Context, searchCity string, radiusKm float64, keywords []string) ([]port.CampaignView, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", port.ErrValidation)
	}
	return m.match(ctx, searchCity, radiusKm, keywords)
}

func (m *LocationMatcher) match(ctx context.Context, searchCity string, radiusKm float64, keywords []string) ([]port.CampaignView, error) {
	if math.IsNaN(radiusKm) || radiusKm < 0 {
		return nil, fmt.Errorf("%w: search radius must not be negative", port.ErrValidation)
	}
	city, err := m.cities.GetByName(ctx, searchCity)
	if err != nil {
		return nil, err
	}
	origin := city.Point()

	candidates, err := m.campaigns.FindActive(ctx, keywords)
	if err != nil {
		return nil, err
	}

	views := make([]port.CampaignView, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if !c.Status {
			continue
		}
		if len(keywords) > 0 && !c.HasAnyKeyword(keywords) {
			continue
		}
		d := domain.Distance(origin, c.City.Point())
		if d > radiusKm {
			continue
		}
		view := port.NewCampaignView(c)
		view.DistanceKm = &d
		views = append(views, view)
	}
	return views, nil
}
