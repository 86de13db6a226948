package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"local-ads/internal/adapter/memory"
	"local-ads/internal/core/domain"
	"local-ads/internal/core/port/mocks"
)

func TestCitiesCarryGeohash(t *testing.T) {
	store := memory.NewStore(domain.DefaultCities, domain.DefaultKeywords)
	uc := NewCatalogUseCase(store.Cities(), store.Keywords())

	cities, err := uc.Cities(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, len(domain.DefaultCities))
	for _, c := range cities {
		assert.True(t, strings.HasPrefix(c.Geohash, "u"), "%s: %s", c.Name, c.Geohash)
	}
	assert.Equal(t, "Warszawa", cities[0].Name)
}

func TestSuggestKeywords(t *testing.T) {
	store := memory.NewStore(domain.DefaultCities, domain.DefaultKeywords)
	uc := NewCatalogUseCase(store.Cities(), store.Keywords())
	ctx := context.Background()

	first, err := uc.SuggestKeywords(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultKeywords[:suggestionLimit], first)

	sport, err := uc.SuggestKeywords(ctx, "  SPORT ")
	require.NoError(t, err)
	assert.Equal(t, []string{"sport", "buty sportowe", "odzież sportowa"}, sport)

	none, err := uc.SuggestKeywords(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSuggestKeywordsPropagatesErrors(t *testing.T) {
	keywords := mocks.NewMockKeywordRepository(t)
	keywords.On("List", mock.Anything).Return(nil, errors.New("db down"))
	uc := NewCatalogUseCase(mocks.NewMockCityRepository(t), keywords)

	_, err := uc.SuggestKeywords(context.Background(), "x")
	require.Error(t, err)
}
