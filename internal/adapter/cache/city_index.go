// Package cache holds read-through decorators for the reference data
// repositories. Cities and keywords never change at runtime, so lookups
// are served from process memory after the first hit.
package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// CityIndex caches city lookups by name in a fixed-size LRU.
type CityIndex struct {
	next   port.CityRepository
	byName *lru.Cache[string, domain.City]
}

// NewCityIndex wraps next with an LRU of size entries.
func NewCityIndex(next port.CityRepository, size int) (*CityIndex, error) {
	c, err := lru.New[string, domain.City](size)
	if err != nil {
		return nil, err
	}
	return &CityIndex{next: next, byName: c}, nil
}

// GetByName returns the cached city or loads it. Misses are not cached.
func (i *CityIndex) GetByName(ctx context.Context, name string) (*domain.City, error) {
	if c, ok := i.byName.Get(name); ok {
		return &c, nil
	}
	c, err := i.next.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	i.byName.Add(name, *c)
	return c, nil
}

// List always reads through and warms the index with the result.
func (i *CityIndex) List(ctx context.Context) ([]domain.City, error) {
	cities, err := i.next.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cities {
		i.byName.Add(c.Name, c)
	}
	return cities, nil
}
