package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"local-ads/internal/adapter/memory"
	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

func newMemorySellers(t *testing.T) (*memory.Store, *SellerUseCase, *CampaignUseCase) {
	t.Helper()
	store, campaigns := newMemoryCampaigns(t)
	sellers := NewSellerUseCase(store, store.Sellers(), store.Campaigns(), store, nil)
	return store, sellers, campaigns
}

func register(username, balance string) port.RegisterSellerInput {
	return port.RegisterSellerInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
		Balance:  decimal.RequireFromString(balance),
	}
}

func TestRegisterBooksOpeningDeposit(t *testing.T) {
	store, uc, _ := newMemorySellers(t)
	ctx := context.Background()

	view, err := uc.Register(ctx, register("alice", "100"))
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, []string{}, view.Campaigns)

	seller, err := uc.Resolve(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, seller.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(seller.PasswordHash), []byte("secret")))
	requireBalance(t, store, seller.ID, "100")

	movements, err := uc.Movements(ctx, seller.ID, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, string(domain.ReasonDeposit), movements[0].Reason)
	assert.True(t, movements[0].BalanceAfter.Equal(decimal.NewFromInt(100)))
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	_, uc, _ := newMemorySellers(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, register("alice", "0"))
	require.NoError(t, err)

	_, err = uc.Register(ctx, register("alice", "0"))
	require.ErrorIs(t, err, port.ErrConflict)

	_, err = uc.Register(ctx, register("bob", "-1"))
	require.ErrorIs(t, err, port.ErrValidation)

	in := register("carol", "0")
	in.Password = ""
	_, err = uc.Register(ctx, in)
	require.ErrorIs(t, err, port.ErrValidation)
}

func TestAddFunds(t *testing.T) {
	_, uc, _ := newMemorySellers(t)
	ctx := context.Background()
	view, err := uc.Register(ctx, register("alice", "100"))
	require.NoError(t, err)

	_, err = uc.AddFunds(ctx, view.ID, decimal.Zero)
	require.ErrorIs(t, err, port.ErrValidation)

	_, err = uc.AddFunds(ctx, 999, decimal.NewFromInt(5))
	require.ErrorIs(t, err, port.ErrNotFound)

	view, err = uc.AddFunds(ctx, view.ID, decimal.RequireFromString("25.50"))
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.RequireFromString("125.50")))
}

func TestSellerAmountsMustFitMoneyColumns(t *testing.T) {
	tests := []struct {
		name   string
		amount string
	}{
		{"sub-cent", "0.001"},
		{"three decimals", "10.125"},
		{"beyond column", "1000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc, _ := newMemorySellers(t)
			ctx := context.Background()

			_, err := uc.Register(ctx, register("bob", tt.amount))
			require.ErrorIs(t, err, port.ErrValidation)
			_, err = uc.Resolve(ctx, "bob")
			require.ErrorIs(t, err, port.ErrNotFound)

			view, err := uc.Register(ctx, register("alice", "100"))
			require.NoError(t, err)
			_, err = uc.AddFunds(ctx, view.ID, decimal.RequireFromString(tt.amount))
			require.ErrorIs(t, err, port.ErrValidation)
			requireBalance(t, store, view.ID, "100")
		})
	}
}

func TestAddFundsCannotOverflowBalance(t *testing.T) {
	store, uc, _ := newMemorySellers(t)
	ctx := context.Background()
	view, err := uc.Register(ctx, register("alice", "999999999999"))
	require.NoError(t, err)

	_, err = uc.AddFunds(ctx, view.ID, decimal.NewFromInt(1))
	require.ErrorIs(t, err, port.ErrValidation)
	requireBalance(t, store, view.ID, "999999999999")

	view, err = uc.AddFunds(ctx, view.ID, decimal.RequireFromString("0.99"))
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.RequireFromString("999999999999.99")))
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	_, uc, _ := newMemorySellers(t)
	ctx := context.Background()
	in := register("admin", "500")

	require.NoError(t, uc.EnsureAdmin(ctx, in))
	require.NoError(t, uc.EnsureAdmin(ctx, in))

	all, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Balance.IsZero())

	admin, err := uc.Resolve(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
}

func TestSellerViewsListCampaigns(t *testing.T) {
	_, uc, campaigns := newMemorySellers(t)
	ctx := context.Background()
	alice, err := uc.Register(ctx, register("alice", "100"))
	require.NoError(t, err)
	_, err = uc.Register(ctx, register("bob", "0"))
	require.NoError(t, err)

	_, err = campaigns.Create(ctx, alice.ID, input("Spring", "1", "1", "Kraków", "moda"))
	require.NoError(t, err)

	view, err := uc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Spring"}, view.Campaigns)

	all, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []string{"Spring"}, all[0].Campaigns)
	assert.Equal(t, []string{}, all[1].Campaigns)
}

func TestDeleteSellerRemovesCampaigns(t *testing.T) {
	_, uc, campaigns := newMemorySellers(t)
	ctx := context.Background()
	alice, err := uc.Register(ctx, register("alice", "100"))
	require.NoError(t, err)
	_, err = campaigns.Create(ctx, alice.ID, input("Spring", "1", "1", "Kraków", "moda"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, alice.ID))

	_, err = uc.GetByID(ctx, alice.ID)
	require.ErrorIs(t, err, port.ErrNotFound)
	all, err := campaigns.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
