package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
)

// SellerUseCase manages seller accounts and deposits.
type SellerUseCase interface {
	Register(ctx context.Context, in RegisterSellerInput) (*SellerView, error)
	// EnsureAdmin creates the admin account when it does not exist yet.
	EnsureAdmin(ctx context.Context, in RegisterSellerInput) error
	// Resolve returns the seller behind a username supplied by the gateway.
	Resolve(ctx context.Context, username string) (*domain.Seller, error)
	GetByUsername(ctx context.Context, username string) (*SellerView, error)
	GetByID(ctx context.Context, id int64) (*SellerView, error)
	List(ctx context.Context) ([]SellerView, error)
	AddFunds(ctx context.Context, sellerID int64, amount decimal.Decimal) (*SellerView, error)
	Movements(ctx context.Context, sellerID int64, limit int) ([]MovementView, error)
	Delete(ctx context.Context, id int64) error
}

// RegisterSellerInput carries the fields of a registration request.
type RegisterSellerInput struct {
	Username string
	Email    string
	Password string
	Balance  decimal.Decimal
}

// SellerView is the public projection of a seller.
type SellerView struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	Campaigns []string        `json:"campaigns"`
}

// MovementView is the public projection of a ledger movement.
type MovementView struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Reason       string          `json:"reason"`
	CreatedAt    time.Time       `json:"createdAt"`
}
