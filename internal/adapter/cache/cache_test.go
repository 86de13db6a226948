package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
	"local-ads/internal/core/port/mocks"
)

func TestCityIndexServesRepeatedLookups(t *testing.T) {
	repo := mocks.NewMockCityRepository(t)
	krakow := &domain.City{ID: 2, Name: "Kraków", Latitude: 50.0647, Longitude: 19.9450}
	repo.On("GetByName", mock.Anything, "Kraków").Return(krakow, nil).Once()

	idx, err := NewCityIndex(repo, 4)
	require.NoError(t, err)

	for range 3 {
		got, err := idx.GetByName(context.Background(), "Kraków")
		require.NoError(t, err)
		assert.Equal(t, *krakow, *got)
	}
}

func TestCityIndexDoesNotCacheMisses(t *testing.T) {
	repo := mocks.NewMockCityRepository(t)
	repo.On("GetByName", mock.Anything, "Atlantis").
		Return(nil, fmt.Errorf("%w: city", port.ErrNotFound)).Twice()

	idx, err := NewCityIndex(repo, 4)
	require.NoError(t, err)

	for range 2 {
		_, err = idx.GetByName(context.Background(), "Atlantis")
		require.ErrorIs(t, err, port.ErrNotFound)
	}
}

func TestCityIndexWarmsFromList(t *testing.T) {
	repo := mocks.NewMockCityRepository(t)
	repo.On("List", mock.Anything).Return([]domain.City{{ID: 1, Name: "Warszawa"}}, nil).Once()

	idx, err := NewCityIndex(repo, 4)
	require.NoError(t, err)

	_, err = idx.List(context.Background())
	require.NoError(t, err)
	got, err := idx.GetByName(context.Background(), "Warszawa")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestKeywordCatalogLoadsOnce(t *testing.T) {
	repo := mocks.NewMockKeywordRepository(t)
	repo.On("List", mock.Anything).Return([]domain.Keyword{
		{ID: 1, Name: "moda"},
		{ID: 2, Name: "sport"},
		{ID: 3, Name: "meble"},
	}, nil).Once()

	catalog := NewKeywordCatalog(repo, time.Minute)
	ctx := context.Background()

	found, err := catalog.FindByNames(ctx, []string{"SPORT", "moda", "unknown"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Keyword{{ID: 1, Name: "moda"}, {ID: 2, Name: "sport"}}, found)

	all, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestKeywordCatalogInvalidate(t *testing.T) {
	repo := mocks.NewMockKeywordRepository(t)
	repo.On("List", mock.Anything).Return([]domain.Keyword{{ID: 1, Name: "moda"}}, nil).Twice()

	catalog := NewKeywordCatalog(repo, time.Minute)
	_, err := catalog.List(context.Background())
	require.NoError(t, err)
	catalog.Invalidate()
	_, err = catalog.List(context.Background())
	require.NoError(t, err)
}
