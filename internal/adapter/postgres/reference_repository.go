package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"local-ads/internal/core/domain"
)

// CityRepository implements port.CityRepository.
type CityRepository struct {
	tx *Transactor
}

func NewCityRepository(tx *Transactor) *CityRepository {
	return &CityRepository{tx: tx}
}

func (r *CityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	var c domain.City
	err := r.tx.conn(ctx).QueryRow(ctx,
		`SELECT id, name, latitude, longitude FROM cities WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name, &c.Latitude, &c.Longitude)
	if err != nil {
		return nil, mapError(err, "city %q", name)
	}
	return &c, nil
}

func (r *CityRepository) List(ctx context.Context) ([]domain.City, error) {
	rows, err := r.tx.conn(ctx).Query(ctx, `SELECT id, name, latitude, longitude FROM cities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.City])
}

// KeywordRepository implements port.KeywordRepository.
type KeywordRepository struct {
	tx *Transactor
}

func NewKeywordRepository(tx *Transactor) *KeywordRepository {
	return &KeywordRepository{tx: tx}
}

// FindByNames matches names case-insensitively and skips unknown ones.
func (r *KeywordRepository) FindByNames(ctx context.Context, names []string) ([]domain.Keyword, error) {
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}
	rows, err := r.tx.conn(ctx).Query(ctx,
		`SELECT id, name FROM keywords WHERE lower(name) = ANY($1::text[]) ORDER BY id`, lowered)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Keyword])
}

func (r *KeywordRepository) List(ctx context.Context) ([]domain.Keyword, error) {
	rows, err := r.tx.conn(ctx).Query(ctx, `SELECT id, name FROM keywords ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Keyword])
}
