package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"local-ads/internal/adapter/memory"
	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
	"local-ads/internal/core/port/mocks"
)

func newMemoryCampaigns(t *testing.T) (*memory.Store, *CampaignUseCase) {
	t.Helper()
	store := memory.NewStore(domain.DefaultCities, domain.DefaultKeywords)
	uc := NewCampaignUseCase(CampaignDeps{
		Tx:        store,
		Campaigns: store.Campaigns(),
		Sellers:   store.Sellers(),
		Ledger:    store,
		Cities:    store.Cities(),
		Keywords:  store.Keywords(),
	})
	return store, uc
}

// addSeller creates a seller with an opening deposit of balance.
func addSeller(t *testing.T, store *memory.Store, username, balance string) int64 {
	t.Helper()
	ctx := context.Background()
	s := &domain.Seller{Username: username, Email: username + "@example.com", Role: domain.RoleSeller}
	require.NoError(t, store.Sellers().Create(ctx, s))
	amount := decimal.RequireFromString(balance)
	if amount.IsPositive() {
		require.NoError(t, store.Release(ctx, s.ID, amount, domain.ReasonDeposit))
	}
	return s.ID
}

func requireBalance(t *testing.T, store *memory.Store, sellerID int64, want string) {
	t.Helper()
	s, err := store.Sellers().Get(context.Background(), sellerID)
	require.NoError(t, err)
	assert.True(t, s.Balance.Equal(decimal.RequireFromString(want)), "balance %s, want %s", s.Balance, want)
}

func input(name, price, fund, city string, keywords ...string) port.CampaignInput {
	active := true
	return port.CampaignInput{
		Name:     name,
		Keywords: keywords,
		Price:    decimal.RequireFromString(price),
		Fund:     decimal.RequireFromString(fund),
		Status:   &active,
		City:     city,
		Radius:   10,
	}
}

// TestCampaignLifecycleSettlesFunds follows one campaign from creation to
// deletion and checks the owner's balance after every step.
func TestCampaignLifecycleSettlesFunds(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")

	created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)
	assert.Equal(t, "alice", created.SellerName)
	assert.Equal(t, []string{"moda"}, created.Keywords)
	requireBalance(t, store, alice, "70")

	updated, err := uc.Update(ctx, alice, created.ID, input("Spring", "10", "5", "Kraków", "moda"))
	require.NoError(t, err)
	assert.True(t, updated.Fund.Equal(decimal.NewFromInt(5)))
	requireBalance(t, store, alice, "85")

	require.NoError(t, uc.Delete(ctx, alice, created.ID))
	requireBalance(t, store, alice, "90")

	_, err = uc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, port.ErrNotFound)

	movements, err := store.Movements(ctx, alice, 10)
	require.NoError(t, err)
	reasons := make([]domain.MovementReason, 0, len(movements))
	for _, m := range movements {
		reasons = append(reasons, m.Reason)
	}
	assert.Equal(t, []domain.MovementReason{
		domain.ReasonCampaignDelete,
		domain.ReasonCampaignUpdate,
		domain.ReasonCampaignCreate,
		domain.ReasonDeposit,
	}, reasons)
}

func TestCreateIsAtomic(t *testing.T) {
	tests := []struct {
		name    string
		in      port.CampaignInput
		wantErr error
	}{
		{
			name:    "unknown keyword",
			in:      input("Spring", "10", "20", "Kraków", "moda", "unicorns"),
			wantErr: port.ErrNotFound,
		},
		{
			name:    "unknown city",
			in:      input("Spring", "10", "20", "Atlantis", "moda"),
			wantErr: port.ErrNotFound,
		},
		{
			name:    "insufficient balance",
			in:      input("Spring", "50", "50.01", "Kraków", "moda"),
			wantErr: port.ErrInsufficientBalance,
		},
		{
			name:    "duplicate name",
			in:      input("Taken", "1", "1", "Kraków", "moda"),
			wantErr: port.ErrConflict,
		},
		{
			name:    "negative fund",
			in:      input("Spring", "1", "-1", "Kraków", "moda"),
			wantErr: port.ErrValidation,
		},
		{
			name:    "no keywords",
			in:      input("Spring", "1", "1", "Kraków"),
			wantErr: port.ErrValidation,
		},
		{
			name:    "sub-cent fund",
			in:      input("Spring", "0", "0.005", "Kraków", "moda"),
			wantErr: port.ErrValidation,
		},
		{
			name:    "sub-cent price",
			in:      input("Spring", "1.001", "1", "Kraków", "moda"),
			wantErr: port.ErrValidation,
		},
		{
			name:    "fund beyond column",
			in:      input("Spring", "0", "1000000000000", "Kraków", "moda"),
			wantErr: port.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc := newMemoryCampaigns(t)
			ctx := context.Background()
			alice := addSeller(t, store, "alice", "100")
			bob := addSeller(t, store, "bob", "10")
			_, err := uc.Create(ctx, bob, input("Taken", "1", "1", "Gdańsk", "sport"))
			require.NoError(t, err)

			_, err = uc.Create(ctx, alice, tt.in)
			require.ErrorIs(t, err, tt.wantErr)

			requireBalance(t, store, alice, "100")
			owned, err := uc.ListByOwner(ctx, alice)
			require.NoError(t, err)
			assert.Empty(t, owned)
			movements, err := store.Movements(ctx, alice, 10)
			require.NoError(t, err)
			assert.Len(t, movements, 1)
		})
	}
}

func TestUpdateRejectsAmountsOutsideMoneyColumns(t *testing.T) {
	tests := []struct {
		name        string
		price, fund string
	}{
		{"sub-cent fund", "10", "5.001"},
		{"sub-cent price", "0.125", "20"},
		{"fund beyond column", "10", "1000000000000"},
		{"price beyond column", "1000000000000.00", "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc := newMemoryCampaigns(t)
			ctx := context.Background()
			alice := addSeller(t, store, "alice", "100")
			created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
			require.NoError(t, err)

			_, err = uc.Update(ctx, alice, created.ID, input("Spring", tt.price, tt.fund, "Kraków", "moda"))
			require.ErrorIs(t, err, port.ErrValidation)

			requireBalance(t, store, alice, "70")
			got, err := uc.GetOwned(ctx, alice, created.ID)
			require.NoError(t, err)
			assert.True(t, got.Fund.Equal(decimal.NewFromInt(20)))
		})
	}
}

func TestCreateReportsEveryMissingKeyword(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	alice := addSeller(t, store, "alice", "100")

	_, err := uc.Create(context.Background(), alice, input("Spring", "1", "1", "Kraków", "moda", "foo", "bar"))
	require.ErrorIs(t, err, port.ErrNotFound)
	assert.Contains(t, err.Error(), "foo")
	assert.Contains(t, err.Error(), "bar")
}

// TestConcurrentCreatesNeverOverspend races more reservations than the
// balance can cover.
func TestConcurrentCreatesNeverOverspend(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	alice := addSeller(t, store, "alice", "100")

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		short     int
	)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(context.Background(), alice, input(fmt.Sprintf("c-%d", i), "0", "10", "Kraków", "moda"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, port.ErrInsufficientBalance):
				short++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	assert.Equal(t, attempts-10, short)
	requireBalance(t, store, alice, "0")
}

// TestBalanceConservation checks that deposits are always split between
// the balance, live campaign funds and spent prices.
func TestBalanceConservation(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "200")

	a, err := uc.Create(ctx, alice, input("A", "5", "30", "Kraków", "moda"))
	require.NoError(t, err)
	b, err := uc.Create(ctx, alice, input("B", "7.50", "40", "Warszawa", "sport"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, alice, input("C", "2.25", "12.75", "Gdańsk", "meble"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, alice, a.ID, input("A", "5", "55.10", "Kraków", "moda"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, alice, b.ID))

	seller, err := store.Sellers().Get(ctx, alice)
	require.NoError(t, err)
	campaigns, err := uc.ListByOwner(ctx, alice)
	require.NoError(t, err)

	total := seller.Balance
	for _, c := range campaigns {
		total = total.Add(c.Fund)
	}
	spent := decimal.RequireFromString("14.75")
	assert.True(t, total.Add(spent).Equal(decimal.NewFromInt(200)), "total %s", total.Add(spent))

	movements, err := store.Movements(ctx, alice, 100)
	require.NoError(t, err)
	journal := decimal.Zero
	for _, m := range movements {
		journal = journal.Add(m.Amount)
	}
	assert.True(t, journal.Equal(seller.Balance))
}

func TestUpdateRollsBackOnFailure(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, alice, created.ID, input("Spring", "10", "50", "Kraków", "moda", "unicorns"))
	require.ErrorIs(t, err, port.ErrNotFound)
	requireBalance(t, store, alice, "70")

	_, err = uc.Update(ctx, alice, created.ID, input("Spring", "10", "90.01", "Kraków", "moda"))
	require.ErrorIs(t, err, port.ErrInsufficientBalance)
	requireBalance(t, store, alice, "70")

	got, err := uc.GetOwned(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Fund.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, []string{"moda"}, got.Keywords)
}

func TestUpdateReplacesFields(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)

	in := input("Summer", "12", "20", "Gdańsk", "sport", "Meble")
	in.Status = nil
	in.Radius = 42
	updated, err := uc.Update(ctx, alice, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Summer", updated.Name)
	assert.Equal(t, "Gdańsk", updated.City)
	assert.Equal(t, 42.0, updated.Radius)
	assert.True(t, updated.Status, "nil status keeps the current value")
	assert.ElementsMatch(t, []string{"sport", "meble"}, updated.Keywords)
	requireBalance(t, store, alice, "70")

	byName, err := uc.GetByName(ctx, "Summer")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	_, err = uc.GetByName(ctx, "Spring")
	require.ErrorIs(t, err, port.ErrNotFound)
}

func TestUpdateRejectsTakenName(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	_, err := uc.Create(ctx, alice, input("Spring", "1", "1", "Kraków", "moda"))
	require.NoError(t, err)
	other, err := uc.Create(ctx, alice, input("Autumn", "1", "1", "Kraków", "moda"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, alice, other.ID, input("Spring", "1", "1", "Kraków", "moda"))
	require.ErrorIs(t, err, port.ErrConflict)
}

func TestForeignCampaignsLookMissing(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	bob := addSeller(t, store, "bob", "100")
	created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, bob, created.ID, input("Spring", "10", "1", "Kraków", "moda"))
	require.ErrorIs(t, err, port.ErrNotFound)
	_, err = uc.UpdateStatus(ctx, bob, created.ID, false)
	require.ErrorIs(t, err, port.ErrNotFound)
	_, err = uc.GetStatus(ctx, bob, created.ID)
	require.ErrorIs(t, err, port.ErrNotFound)
	require.ErrorIs(t, uc.Delete(ctx, bob, created.ID), port.ErrNotFound)

	requireBalance(t, store, alice, "70")
	requireBalance(t, store, bob, "100")
}

func TestAdminDeleteRefundsOwner(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteByID(ctx, created.ID))
	requireBalance(t, store, alice, "90")
	require.ErrorIs(t, uc.DeleteByID(ctx, created.ID), port.ErrNotFound)
}

func TestStatusToggleKeepsFund(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	created, err := uc.Create(ctx, alice, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)

	view, err := uc.UpdateStatus(ctx, alice, created.ID, false)
	require.NoError(t, err)
	assert.False(t, view.Status)

	status, err := uc.GetStatus(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.False(t, status)
	requireBalance(t, store, alice, "70")
}

func TestListings(t *testing.T) {
	store, uc := newMemoryCampaigns(t)
	ctx := context.Background()
	alice := addSeller(t, store, "alice", "100")
	bob := addSeller(t, store, "bob", "100")
	for _, in := range []struct {
		seller int64
		in     port.CampaignInput
	}{
		{alice, input("A1", "1", "1", "Kraków", "moda")},
		{alice, input("A2", "1", "1", "Warszawa", "moda")},
		{bob, input("B1", "1", "1", "Kraków", "sport")},
	} {
		_, err := uc.Create(ctx, in.seller, in.in)
		require.NoError(t, err)
	}

	all, err := uc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	krakow, err := uc.ListByCity(ctx, "Kraków")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "B1"}, names(krakow))

	owned, err := uc.ListByOwnerAndCity(ctx, alice, "Kraków")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, names(owned))

	byName, err := uc.ListByOwnerAndName(ctx, bob, "A2")
	require.NoError(t, err)
	assert.Empty(t, byName)
}

func names(views []port.CampaignView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Name)
	}
	return out
}

type campaignMocks struct {
	campaigns *mocks.MockCampaignRepository
	sellers   *mocks.MockSellerRepository
	ledger    *mocks.MockFundLedger
	cities    *mocks.MockCityRepository
	keywords  *mocks.MockKeywordRepository
	events    *mocks.MockEventPublisher
}

func newMockedCampaigns(t *testing.T) (*campaignMocks, *CampaignUseCase) {
	m := &campaignMocks{
		campaigns: mocks.NewMockCampaignRepository(t),
		sellers:   mocks.NewMockSellerRepository(t),
		ledger:    mocks.NewMockFundLedger(t),
		cities:    mocks.NewMockCityRepository(t),
		keywords:  mocks.NewMockKeywordRepository(t),
		events:    mocks.NewMockEventPublisher(t),
	}
	uc := NewCampaignUseCase(CampaignDeps{
		Tx:        mocks.PassthroughTransactor{},
		Campaigns: m.campaigns,
		Sellers:   m.sellers,
		Ledger:    m.ledger,
		Cities:    m.cities,
		Keywords:  m.keywords,
		Events:    m.events,
	})
	return m, uc
}

func (m *campaignMocks) expectCreateLookups() {
	m.sellers.On("Get", mock.Anything, int64(1)).
		Return(&domain.Seller{ID: 1, Username: "alice"}, nil)
	m.campaigns.On("NameTaken", mock.Anything, "Spring", int64(0)).Return(false, nil)
	m.keywords.On("FindByNames", mock.Anything, []string{"moda"}).
		Return([]domain.Keyword{{ID: 5, Name: "moda"}}, nil)
	m.cities.On("GetByName", mock.Anything, "Kraków").
		Return(&domain.City{ID: 2, Name: "Kraków", Latitude: 50.0647, Longitude: 19.9450}, nil)
}

func decimalEq(want string) any {
	d := decimal.RequireFromString(want)
	return mock.MatchedBy(func(got decimal.Decimal) bool { return got.Equal(d) })
}

// TestCreateStopsWhenReserveFails ensures nothing is stored when the ledger
// refuses the reservation.
func TestCreateStopsWhenReserveFails(t *testing.T) {
	m, uc := newMockedCampaigns(t)
	m.expectCreateLookups()
	m.ledger.On("Reserve", mock.Anything, int64(1), decimalEq("30"), domain.ReasonCampaignCreate).
		Return(fmt.Errorf("%w: seller 1", port.ErrInsufficientBalance))

	_, err := uc.Create(context.Background(), 1, input("Spring", "10", "20", "Kraków", "moda"))
	require.ErrorIs(t, err, port.ErrInsufficientBalance)
	m.campaigns.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	m.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

// TestPublishFailureDoesNotFailCreate checks that events are best effort.
func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	m, uc := newMockedCampaigns(t)
	m.expectCreateLookups()
	m.ledger.On("Reserve", mock.Anything, int64(1), decimalEq("30"), domain.ReasonCampaignCreate).Return(nil)
	m.campaigns.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Campaign")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Campaign).ID = 7
		}).
		Return(nil)
	m.events.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.CampaignEvent) bool {
		return e.Type == domain.EventCampaignCreated && e.CampaignID == 7 && e.City == "Kraków"
	})).Return(errors.New("broker down"))

	view, err := uc.Create(context.Background(), 1, input("Spring", "10", "20", "Kraków", "moda"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "alice", view.SellerName)
}

// TestUpdateSettlesFundDelta checks that only the fund difference reaches
// the ledger.
func TestUpdateSettlesFundDelta(t *testing.T) {
	m, uc := newMockedCampaigns(t)
	current := &domain.Campaign{
		ID:       3,
		Name:     "Spring",
		Keywords: []domain.Keyword{{ID: 5, Name: "moda"}},
		Price:    decimal.NewFromInt(10),
		Fund:     decimal.NewFromInt(20),
		Status:   true,
		City:     domain.City{ID: 2, Name: "Kraków"},
		SellerID: 1,
	}
	m.campaigns.On("GetForUpdate", mock.Anything, int64(3)).Return(current, nil)
	m.ledger.On("Adjust", mock.Anything, int64(1), decimalEq("-15"), domain.ReasonCampaignUpdate).Return(nil)
	m.keywords.On("FindByNames", mock.Anything, []string{"moda"}).
		Return([]domain.Keyword{{ID: 5, Name: "moda"}}, nil)
	m.campaigns.On("Update", mock.Anything, current).Return(nil)
	m.events.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Update(context.Background(), 1, 3, input("Spring", "10", "5", "Kraków", "moda"))
	require.NoError(t, err)
	m.campaigns.AssertNotCalled(t, "NameTaken", mock.Anything, mock.Anything, mock.Anything)
	m.cities.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}
