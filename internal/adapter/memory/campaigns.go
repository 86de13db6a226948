package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// Campaigns returns the store as a port.CampaignRepository.
func (s *Store) Campaigns() port.CampaignRepository { return campaignRepo{s} }

type campaignRepo struct{ s *Store }

func (r campaignRepo) Insert(ctx context.Context, c *domain.Campaign) error {
	unlock := r.s.lock(ctx)
	defer unlock()

	if r.nameTaken(c.Name, 0) {
		return fmt.Errorf("%w: campaign with name %q already exists", port.ErrConflict, c.Name)
	}
	if _, ok := r.s.st.sellers[c.SellerID]; !ok {
		return fmt.Errorf("%w: seller %d", port.ErrNotFound, c.SellerID)
	}
	now := time.Now().UTC()
	r.s.st.nextCampaignID++
	c.ID = r.s.st.nextCampaignID
	c.CreatedAt, c.UpdatedAt = now, now

	row := campaignRow{
		ID:        c.ID,
		Name:      c.Name,
		Price:     c.Price,
		Fund:      c.Fund,
		Status:    c.Status,
		CityID:    c.City.ID,
		Radius:    c.Radius,
		SellerID:  c.SellerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	row.KeywordIDs = keywordIDs(c.Keywords)
	r.s.st.campaigns[c.ID] = row
	return nil
}

// Update persists the campaign fields and reconciles its keyword set.
func (r campaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	unlock := r.s.lock(ctx)
	defer unlock()

	row, ok := r.s.st.campaigns[c.ID]
	if !ok {
		return fmt.Errorf("%w: campaign %d", port.ErrNotFound, c.ID)
	}
	if r.nameTaken(c.Name, c.ID) {
		return fmt.Errorf("%w: campaign with name %q already exists", port.ErrConflict, c.Name)
	}

	add, remove := domain.KeywordDiff(row.KeywordIDs, keywordIDs(c.Keywords))
	ids := slices.DeleteFunc(slices.Clone(row.KeywordIDs), func(id int64) bool {
		return slices.Contains(remove, id)
	})
	row.KeywordIDs = append(ids, add...)

	row.Name = c.Name
	row.Price = c.Price
	row.Fund = c.Fund
	row.Status = c.Status
	row.CityID = c.City.ID
	row.Radius = c.Radius
	row.UpdatedAt = time.Now().UTC()
	r.s.st.campaigns[c.ID] = row
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (r campaignRepo) UpdateStatus(ctx context.Context, id int64, status bool) error {
	unlock := r.s.lock(ctx)
	defer unlock()

	row, ok := r.s.st.campaigns[id]
	if !ok {
		return fmt.Errorf("%w: campaign %d", port.ErrNotFound, id)
	}
	row.Status = status
	row.UpdatedAt = time.Now().UTC()
	r.s.st.campaigns[id] = row
	return nil
}

func (r campaignRepo) Delete(ctx context.Context, id int64) error {
	unlock := r.s.lock(ctx)
	defer unlock()

	if _, ok := r.s.st.campaigns[id]; !ok {
		return fmt.Errorf("%w: campaign %d", port.ErrNotFound, id)
	}
	delete(r.s.st.campaigns, id)
	return nil
}

func (r campaignRepo) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	row, ok := r.s.st.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("%w: campaign %d", port.ErrNotFound, id)
	}
	c := r.toDomain(row)
	return &c, nil
}

// GetForUpdate needs no extra locking: transactions hold the store lock.
func (r campaignRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Campaign, error) {
	return r.Get(ctx, id)
}

func (r campaignRepo) GetByName(ctx context.Context, name string) (*domain.Campaign, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	for _, row := range r.s.st.campaigns {
		if row.Name == name {
			c := r.toDomain(row)
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: campaign %q", port.ErrNotFound, name)
}

func (r campaignRepo) NameTaken(ctx context.Context, name string, exceptID int64) (bool, error) {
	unlock := r.s.lock(ctx)
	defer unlock()
	return r.nameTaken(name, exceptID), nil
}

func (r campaignRepo) Find(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	return r.collect(func(c *domain.Campaign) bool {
		if f.SellerID != 0 && c.SellerID != f.SellerID {
			return false
		}
		if f.CityName != "" && c.City.Name != f.CityName {
			return false
		}
		if f.Name != "" && c.Name != f.Name {
			return false
		}
		return true
	}), nil
}

func (r campaignRepo) FindActive(ctx context.Context, keywords []string) ([]domain.Campaign, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	return r.collect(func(c *domain.Campaign) bool {
		if !c.Status {
			return false
		}
		return len(keywords) == 0 || c.HasAnyKeyword(keywords)
	}), nil
}

// collect returns matching campaigns ordered by id.
func (r campaignRepo) collect(match func(*domain.Campaign) bool) []domain.Campaign {
	out := make([]domain.Campaign, 0)
	for _, row := range r.s.st.campaigns {
		c := r.toDomain(row)
		if match(&c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.Campaign) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (r campaignRepo) nameTaken(name string, exceptID int64) bool {
	for _, row := range r.s.st.campaigns {
		if row.Name == name && row.ID != exceptID {
			return true
		}
	}
	return false
}

func (r campaignRepo) toDomain(row campaignRow) domain.Campaign {
	return domain.Campaign{
		ID:         row.ID,
		Name:       row.Name,
		Keywords:   r.s.keywordsByID(row.KeywordIDs),
		Price:      row.Price,
		Fund:       row.Fund,
		Status:     row.Status,
		City:       r.s.city(row.CityID),
		Radius:     row.Radius,
		SellerID:   row.SellerID,
		SellerName: r.s.st.sellers[row.SellerID].Username,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func keywordIDs(keywords []domain.Keyword) []int64 {
	ids := make([]int64, 0, len(keywords))
	for _, k := range keywords {
		if !slices.Contains(ids, k.ID) {
			ids = append(ids, k.ID)
		}
	}
	return ids
}
