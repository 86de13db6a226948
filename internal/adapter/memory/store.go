// Package memory is an in-process implementation of the persistence ports.
// A transaction holds the store lock for its whole duration and restores a
// snapshot of the state when the unit of work fails.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
)

type txKey struct{}

type campaignRow struct {
	ID         int64
	Name       string
	KeywordIDs []int64
	Price      decimal.Decimal
	Fund       decimal.Decimal
	Status     bool
	CityID     int64
	Radius     float64
	SellerID   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type state struct {
	nextSellerID   int64
	nextCampaignID int64
	sellers        map[int64]domain.Seller
	campaigns      map[int64]campaignRow
	movements      []domain.FundMovement
}

func (st *state) clone() *state {
	c := &state{
		nextSellerID:   st.nextSellerID,
		nextCampaignID: st.nextCampaignID,
		sellers:        maps.Clone(st.sellers),
		campaigns:      make(map[int64]campaignRow, len(st.campaigns)),
		movements:      slices.Clone(st.movements),
	}
	for id, row := range st.campaigns {
		row.KeywordIDs = slices.Clone(row.KeywordIDs)
		c.campaigns[id] = row
	}
	return c
}

// Store implements port.Transactor, port.FundLedger and the repository
// ports on top of in-memory maps. Reference data is fixed at construction.
type Store struct {
	mu       sync.Mutex
	st       *state
	cities   []domain.City
	keywords []domain.Keyword
}

// NewStore creates a store seeded with the given cities and keyword names.
// Ids are assigned in list order starting from 1.
func NewStore(cities []domain.City, keywords []string) *Store {
	s := &Store{
		st: &state{
			sellers:   make(map[int64]domain.Seller),
			campaigns: make(map[int64]campaignRow),
		},
	}
	for i, c := range cities {
		c.ID = int64(i + 1)
		s.cities = append(s.cities, c)
	}
	for i, name := range keywords {
		s.keywords = append(s.keywords, domain.Keyword{ID: int64(i + 1), Name: name})
	}
	return s
}

// WithinTx serialises fn against every other store operation and rolls the
// state back when fn fails. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock takes the store lock unless ctx already belongs to a transaction
// holding it.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
