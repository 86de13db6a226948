package port

import (
	"context"

	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
)

// FundLedger moves money between a seller's balance and campaign
// commitments. Each call locks the seller row for the rest of the enclosing
// transaction so concurrent reservations never see a stale balance.
type FundLedger interface {
	// Reserve deducts amount from the balance or fails with
	// ErrInsufficientBalance without side effects.
	Reserve(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error
	// Release adds amount back to the balance.
	Release(ctx context.Context, sellerID int64, amount decimal.Decimal, reason domain.MovementReason) error
	// Adjust reserves a positive delta and releases a negative one. A zero
	// delta is a no-op.
	Adjust(ctx context.Context, sellerID int64, delta decimal.Decimal, reason domain.MovementReason) error
	// Movements lists the journal of a seller, newest first.
	Movements(ctx context.Context, sellerID int64, limit int) ([]domain.FundMovement, error)
}
