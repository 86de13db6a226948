package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// Reserve deducts amount from the seller's balance.
func (s *Store) Reserve(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	if err := checkAmount("reserve", amount); err != nil {
		return err
	}
	unlock := s.lock(ctx)
	defer unlock()

	seller, ok := s.st.sellers[sellerID]
	if !ok {
		return fmt.Errorf("%w: seller %d", port.ErrNotFound, sellerID)
	}
	if seller.Balance.LessThan(amount) {
		return fmt.Errorf("%w: seller %d has %s, needs %s", port.ErrInsufficientBalance, sellerID, seller.Balance, amount)
	}
	s.move(seller, amount.Neg(), reason)
	return nil
}

// Release adds amount to the seller's balance.
func (s *Store) Release(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error {
	if err := checkAmount("release", amount); err != nil {
		return err
	}
	unlock := s.lock(ctx)
	defer unlock()

	seller, ok := s.st.sellers[sellerID]
	if !ok {
		return fmt.Errorf("%w: seller %d", port.ErrNotFound, sellerID)
	}
	if !domain.FitsMoney(seller.Balance.Add(amount)) {
		return fmt.Errorf("%w: balance of seller %d would overflow", port.ErrValidation, sellerID)
	}
	s.move(seller, amount, reason)
	return nil
}

// Adjust reserves a positive delta and releases a negative one.
func (s *Store) Adjust(ctx context.Context, sellerID int64, delta decimal.Decimal, reason domain.MovementReason) error {
	switch delta.Sign() {
	case 1:
		return s.Reserve(ctx, sellerID, delta, reason)
	case -1:
		return s.Release(ctx, sellerID, delta.Neg(), reason)
	}
	return nil
}

func (s *Store) Movements(ctx context.Context, sellerID int64, limit int) ([]domain.FundMovement, error) {
	unlock := s.lock(ctx)
	defer unlock()

	var out []domain.FundMovement
	for i := len(s.st.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if m := s.st.movements[i]; m.SellerID == sellerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func checkAmount(op string, amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return fmt.Errorf("%w: %s amount must not be negative", port.ErrValidation, op)
	case !domain.FitsMoney(amount):
		return fmt.Errorf("%w: %s amount %s does not fit a money column", port.ErrValidation, op, amount)
	}
	return nil
}

// move must be called with the store lock held.
func (s *Store) move(seller domain.Seller, amount decimal.Decimal, reason domain.MovementReason) {
	seller.Balance = seller.Balance.Add(amount)
	s.st.sellers[seller.ID] = seller
	s.st.movements = append(s.st.movements, domain.FundMovement{
		ID:           uuid.NewString(),
		SellerID:     seller.ID,
		Amount:       amount,
		BalanceAfter: seller.Balance,
		Reason:       reason,
		CreatedAt:    time.Now().UTC(),
	})
}
