package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Seller owns campaigns and a spendable balance. Balance is changed only
// through the fund ledger.
type Seller struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Balance      decimal.Decimal
	CreatedAt    time.Time
}

// IsAdmin reports whether the seller has the admin role.
func (s *Seller) IsAdmin() bool {
	return s.Role == RoleAdmin
}
