package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

// SellerUseCase implements port.SellerUseCase.
type SellerUseCase struct {
	tx        port.Transactor
	sellers   port.SellerRepository
	campaigns port.CampaignRepository
	ledger    port.FundLedger
	logger    *slog.Logger
}

// NewSellerUseCase creates a seller use case.
func NewSellerUseCase(tx port.Transactor, sellers port.SellerRepository, campaigns port.CampaignRepository, ledger port.FundLedger, logger *slog.Logger) *SellerUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &SellerUseCase{tx: tx, sellers: sellers, campaigns: campaigns, ledger: ledger, logger: logger}
}

// Register creates a seller account. The opening balance is booked through
// the ledger as a deposit so the journal accounts for every unit.
func (u *SellerUseCase) Register(ctx context.Context, in port.RegisterSellerInput) (*port.SellerView, error) {
	s, err := u.register(ctx, in, domain.RoleSeller)
	if err != nil {
		return nil, err
	}
	u.logger.Info("seller registered", slog.Int64("seller_id", s.ID), slog.String("username", s.Username))
	return u.view(ctx, s)
}

// EnsureAdmin creates the admin account unless the username already exists.
func (u *SellerUseCase) EnsureAdmin(ctx context.Context, in port.RegisterSellerInput) error {
	_, err := u.sellers.GetByUsername(ctx, in.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return err
	}
	in.Balance = decimal.Zero
	if _, err = u.register(ctx, in, domain.RoleAdmin); err != nil {
		return err
	}
	u.logger.Info("admin account created", slog.String("username", in.Username))
	return nil
}

func (u *SellerUseCase) register(ctx context.Context, in port.RegisterSellerInput, role string) (*domain.Seller, error) {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return nil, fmt.Errorf("%w: username is required", port.ErrValidation)
	case strings.TrimSpace(in.Email) == "":
		return nil, fmt.Errorf("%w: email is required", port.ErrValidation)
	case in.Password == "":
		return nil, fmt.Errorf("%w: password is required", port.ErrValidation)
	case in.Balance.IsNegative():
		return nil, fmt.Errorf("%w: balance cannot be negative", port.ErrValidation)
	}
	if err := checkMoney("balance", in.Balance); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	s := &domain.Seller{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Balance:      decimal.Zero,
	}
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.sellers.Create(ctx, s); err != nil {
			return err
		}
		if in.Balance.IsPositive() {
			return u.ledger.Release(ctx, s.ID, in.Balance, domain.ReasonDeposit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Balance = in.Balance
	return s, nil
}

func (u *SellerUseCase) Resolve(ctx context.Context, username string) (*domain.Seller, error) {
	return u.sellers.GetByUsername(ctx, username)
}

func (u *SellerUseCase) GetByUsername(ctx context.Context, username string) (*port.SellerView, error) {
	s, err := u.sellers.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, s)
}

func (u *SellerUseCase) GetByID(ctx context.Context, id int64) (*port.SellerView, error) {
	s, err := u.sellers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.view(ctx, s)
}

// List returns every seller with the names of their campaigns.
func (u *SellerUseCase) List(ctx context.Context) ([]port.SellerView, error) {
	sellers, err := u.sellers.List(ctx)
	if err != nil {
		return nil, err
	}
	campaigns, err := u.campaigns.Find(ctx, port.CampaignFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[int64][]string)
	for _, c := range campaigns {
		names[c.SellerID] = append(names[c.SellerID], c.Name)
	}

	views := make([]port.SellerView, 0, len(sellers))
	for i := range sellers {
		views = append(views, newSellerView(&sellers[i], names[sellers[i].ID]))
	}
	return views, nil
}

// AddFunds deposits a positive amount to the seller's balance.
func (u *SellerUseCase) AddFunds(ctx context.Context, sellerID int64, amount decimal.Decimal) (*port.SellerView, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", port.ErrValidation)
	}
	if err := checkMoney("amount", amount); err != nil {
		return nil, err
	}
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.ledger.Release(ctx, sellerID, amount, domain.ReasonDeposit)
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("funds added", slog.Int64("seller_id", sellerID), slog.String("amount", amount.String()))
	return u.GetByID(ctx, sellerID)
}

// Movements lists the ledger journal of the seller, newest first.
func (u *SellerUseCase) Movements(ctx context.Context, sellerID int64, limit int) ([]port.MovementView, error) {
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	limit = min(limit, maxMovementLimit)

	movements, err := u.ledger.Movements(ctx, sellerID, limit)
	if err != nil {
		return nil, err
	}
	views := make([]port.MovementView, 0, len(movements))
	for _, m := range movements {
		views = append(views, port.MovementView{
			ID:           m.ID,
			Amount:       m.Amount,
			BalanceAfter: m.BalanceAfter,
			Reason:       string(m.Reason),
			CreatedAt:    m.CreatedAt,
		})
	}
	return views, nil
}

// Delete removes the seller together with their campaigns.
func (u *SellerUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.sellers.Delete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("seller deleted", slog.Int64("seller_id", id))
	return nil
}

func (u *SellerUseCase) view(ctx context.Context, s *domain.Seller) (*port.SellerView, error) {
	campaigns, err := u.campaigns.Find(ctx, port.CampaignFilter{SellerID: s.ID})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		names = append(names, c.Name)
	}
	v := newSellerView(s, names)
	return &v, nil
}

func newSellerView(s *domain.Seller, campaigns []string) port.SellerView {
	if campaigns == nil {
		campaigns = []string{}
	}
	return port.SellerView{
		ID:        s.ID,
		Username:  s.Username,
		Email:     s.Email,
		Balance:   s.Balance,
		Campaigns: campaigns,
	}
}
