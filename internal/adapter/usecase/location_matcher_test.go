package usecase

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-ads/internal/adapter/memory"
	"local-ads/internal/core/port"
)

func seedSearch(t *testing.T) (*memory.Store, *LocationMatcher) {
	t.Helper()
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "1000")

	for _, in := range []port.CampaignInput{
		input("Warsaw phones", "1", "10", "Warszawa", "telefony", "elektronika"),
		input("Gdansk fashion", "1", "10", "Gdańsk", "moda"),
		input("Krakow sport", "1", "10", "Kraków", "sport"),
	} {
		_, err := uc.Create(ctx, alice, in)
		require.NoError(t, err)
	}
	paused := input("Krakow paused", "1", "10", "Kraków", "moda")
	inactive := false
	paused.Status = &inactive
	_, err := uc.Create(ctx, alice, paused)
	require.NoError(t, err)

	return store, NewLocationMatcher(store.Cities(), store.Campaigns())
}

func TestFindNear(t *testing.T) {
	_, m := seedSearch(t)

	found, err := m.FindNear(context.Background(), "Kraków", 300)
	require.NoError(t, err)
	assert.Equal(t, []string{"Warsaw phones", "Krakow sport"}, names(found))

	require.NotNil(t, found[0].DistanceKm)
	assert.InDelta(t, 252, *found[0].DistanceKm, 2)
	require.NotNil(t, found[1].DistanceKm)
	assert.Zero(t, *found[1].DistanceKm)
}

func TestFindNearZeroRadiusKeepsSameCity(t *testing.T) {
	_, m := seedSearch(t)

	found, err := m.FindNear(context.Background(), "Warszawa", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Warsaw phones"}, names(found))
}

func TestFindNearByKeywords(t *testing.T) {
	_, m := seedSearch(t)
	ctx := context.Background()

	found, err := m.FindNearByKeywords(ctx, "Kraków", 1000, []string{"moda", "telefony"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Warsaw phones", "Gdansk fashion"}, names(found))

	found, err = m.FindNearByKeywords(ctx, "Kraków", 1000, []string{"Moda"})
	require.NoError(t, err)
	assert.Empty(t, found, "keyword match is case-sensitive")

	found, err = m.FindNearByKeywords(ctx, "Kraków", 100, []string{"moda"})
	require.NoError(t, err)
	assert.Empty(t, found, "paused campaigns never match")
}

func TestFindNearRejectsBadInput(t *testing.T) {
	_, m := seedSearch(t)
	ctx := context.Background()

	_, err := m.FindNear(ctx, "Atlantis", 10)
	require.ErrorIs(t, err, port.ErrNotFound)

	_, err = m.FindNear(ctx, "Kraków", -1)
	require.ErrorIs(t, err, port.ErrValidation)

	_, err = m.FindNear(ctx, "Kraków", math.NaN())
	require.ErrorIs(t, err, port.ErrValidation)

	_, err = m.FindNearByKeywords(ctx, "Kraków", 10, nil)
	require.ErrorIs(t, err, port.ErrValidation)
}
