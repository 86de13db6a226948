package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// Cities returns the store as a port.CityRepository.
func (s *Store) Cities() port.CityRepository { return cityRepo{s} }

// Keywords returns the store as a port.KeywordRepository.
func (s *Store) Keywords() port.KeywordRepository { return keywordRepo{s} }

type cityRepo struct{ s *Store }

func (r cityRepo) GetByName(_ context.Context, name string) (*domain.City, error) {
	for _, c := range r.s.cities {
		if c.Name == name {
			city := c
			return &city, nil
		}
	}
	return nil, fmt.Errorf("%w: city %q", port.ErrNotFound, name)
}

func (r cityRepo) List(context.Context) ([]domain.City, error) {
	return slices.Clone(r.s.cities), nil
}

type keywordRepo struct{ s *Store }

func (r keywordRepo) FindByNames(_ context.Context, names []string) ([]domain.Keyword, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = struct{}{}
	}
	var out []domain.Keyword
	for _, k := range r.s.keywords {
		if _, ok := wanted[strings.ToLower(k.Name)]; ok {
			out = append(out, k)
		}
	}
	return out, nil
}

func (r keywordRepo) List(context.Context) ([]domain.Keyword, error) {
	return slices.Clone(r.s.keywords), nil
}

func (s *Store) city(id int64) domain.City {
	for _, c := range s.cities {
		if c.ID == id {
			return c
		}
	}
	return domain.City{ID: id}
}

func (s *Store) keywordsByID(ids []int64) []domain.Keyword {
	out := make([]domain.Keyword, 0, len(ids))
	for _, k := range s.keywords {
		if slices.Contains(ids, k.ID) {
			out = append(out, k)
		}
	}
	return out
}
