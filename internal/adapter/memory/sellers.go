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

// Sellers returns the store as a port.SellerRepository.
func (s *Store) Sellers() port.SellerRepository { return sellerRepo{s} }

type sellerRepo struct{ s *Store }

func (r sellerRepo) Create(ctx context.Context, seller *domain.Seller) error {
	unlock := r.s.lock(ctx)
	defer unlock()

	for _, other := range r.s.st.sellers {
		if other.Username == seller.Username {
			return fmt.Errorf("%w: username %q already exists", port.ErrConflict, seller.Username)
		}
		if other.Email == seller.Email {
			return fmt.Errorf("%w: email %q already exists", port.ErrConflict, seller.Email)
		}
	}
	r.s.st.nextSellerID++
	seller.ID = r.s.st.nextSellerID
	seller.CreatedAt = time.Now().UTC()
	r.s.st.sellers[seller.ID] = *seller
	return nil
}

func (r sellerRepo) Get(ctx context.Context, id int64) (*domain.Seller, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	seller, ok := r.s.st.sellers[id]
	if !ok {
		return nil, fmt.Errorf("%w: seller %d", port.ErrNotFound, id)
	}
	return &seller, nil
}

func (r sellerRepo) GetByUsername(ctx context.Context, username string) (*domain.Seller, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	for _, seller := range r.s.st.sellers {
		if seller.Username == username {
			return &seller, nil
		}
	}
	return nil, fmt.Errorf("%w: seller %q", port.ErrNotFound, username)
}

func (r sellerRepo) List(ctx context.Context) ([]domain.Seller, error) {
	unlock := r.s.lock(ctx)
	defer unlock()

	out := make([]domain.Seller, 0, len(r.s.st.sellers))
	for _, seller := range r.s.st.sellers {
		out = append(out, seller)
	}
	slices.SortFunc(out, func(a, b domain.Seller) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Delete removes the seller with their campaigns and journal.
func (r sellerRepo) Delete(ctx context.Context, id int64) error {
	unlock := r.s.lock(ctx)
	defer unlock()

	if _, ok := r.s.st.sellers[id]; !ok {
		return fmt.Errorf("%w: seller %d", port.ErrNotFound, id)
	}
	delete(r.s.st.sellers, id)
	for cid, row := range r.s.st.campaigns {
		if row.SellerID == id {
			delete(r.s.st.campaigns, cid)
		}
	}
	r.s.st.movements = slices.DeleteFunc(r.s.st.movements, func(m domain.FundMovement) bool {
		return m.SellerID == id
	})
	return nil
}
