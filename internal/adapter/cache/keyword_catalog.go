package cache

import (
	"context"
	"slices"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

const catalogKey = "keywords"

// KeywordCatalog keeps the whole keyword catalog in a TTL cache and answers
// lookups from it.
type KeywordCatalog struct {
	next  port.KeywordRepository
	store *gocache.Cache
}

// NewKeywordCatalog wraps next; the catalog is reloaded after ttl.
func NewKeywordCatalog(next port.KeywordRepository, ttl time.Duration) *KeywordCatalog {
	return &KeywordCatalog{
		next:  next,
		store: gocache.New(ttl, 2*ttl),
	}
}

// FindByNames matches names case-insensitively against the cached catalog.
func (c *KeywordCatalog) FindByNames(ctx context.Context, names []string) ([]domain.Keyword, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = struct{}{}
	}
	var out []domain.Keyword
	for _, k := range all {
		if _, ok := wanted[strings.ToLower(k.Name)]; ok {
			out = append(out, k)
		}
	}
	return out, nil
}

func (c *KeywordCatalog) List(ctx context.Context) ([]domain.Keyword, error) {
	if v, ok := c.store.Get(catalogKey); ok {
		return slices.Clone(v.([]domain.Keyword)), nil
	}
	all, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(catalogKey, slices.Clone(all))
	return all, nil
}

// Invalidate drops the cached catalog.
func (c *KeywordCatalog) Invalidate() {
	c.store.Delete(catalogKey)
}
