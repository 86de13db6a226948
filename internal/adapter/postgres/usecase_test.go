package postgres

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"local-ads/internal/adapter/usecase"
	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
	"local-ads/internal/db"
)

// staleNames reports every name as free, as a concurrent create that has
// not committed yet would.
type staleNames struct {
	port.CampaignRepository
}

func (staleNames) NameTaken(context.Context, string, int64) (bool, error) {
	return false, nil
}

func (s *RepositorySuite) campaignUseCase(campaigns port.CampaignRepository) *usecase.CampaignUseCase {
	return usecase.NewCampaignUseCase(usecase.CampaignDeps{
		Tx:        s.tx,
		Campaigns: campaigns,
		Sellers:   s.sellers,
		Ledger:    s.sellers,
		Cities:    s.cities,
		Keywords:  s.keywords,
	})
}

func campaignInput(name, price, fund string) port.CampaignInput {
	active := true
	return port.CampaignInput{
		Name:     name,
		Keywords: []string{"moda"},
		Price:    decimal.RequireFromString(price),
		Fund:     decimal.RequireFromString(fund),
		Status:   &active,
		City:     "Kraków",
		Radius:   10,
	}
}

func (s *RepositorySuite) requireBalance(id int64, want string) {
	got := s.balance(id)
	s.Require().True(got.Equal(decimal.RequireFromString(want)), "balance %s, want %s", got, want)
}

func (s *RepositorySuite) journalSum(id int64) decimal.Decimal {
	movements, err := s.sellers.Movements(context.Background(), id, 100)
	s.Require().NoError(err)
	sum := decimal.Zero
	for _, m := range movements {
		sum = sum.Add(m.Amount)
	}
	return sum
}

func (s *RepositorySuite) TestCampaignLifecycleSettlesFunds() {
	ctx := context.Background()
	uc := s.campaignUseCase(s.campaigns)
	alice := s.newSeller("alice", 100)

	created, err := uc.Create(ctx, alice.ID, campaignInput("Spring", "10", "20"))
	s.Require().NoError(err)
	s.requireBalance(alice.ID, "70")

	updated, err := uc.Update(ctx, alice.ID, created.ID, campaignInput("Spring", "10", "5"))
	s.Require().NoError(err)
	s.True(updated.Fund.Equal(decimal.NewFromInt(5)))
	s.requireBalance(alice.ID, "85")

	s.Require().NoError(uc.Delete(ctx, alice.ID, created.ID))
	s.requireBalance(alice.ID, "90")
	s.True(s.journalSum(alice.ID).Equal(decimal.NewFromInt(90)))
}

func (s *RepositorySuite) TestCreateRollsBackReserveWhenInsertFails() {
	ctx := context.Background()
	alice := s.newSeller("alice", 100)
	bob := s.newSeller("bob", 100)
	_, err := s.campaignUseCase(s.campaigns).Create(ctx, bob.ID, campaignInput("Taken", "1", "1"))
	s.Require().NoError(err)

	_, err = s.campaignUseCase(staleNames{s.campaigns}).Create(ctx, alice.ID, campaignInput("Taken", "10", "20"))
	s.ErrorIs(err, port.ErrConflict)

	s.requireBalance(alice.ID, "100")
	movements, err := s.sellers.Movements(ctx, alice.ID, 10)
	s.Require().NoError(err)
	s.Len(movements, 1)
}

func (s *RepositorySuite) TestConcurrentCreatesWithSameName() {
	ctx := context.Background()
	uc := s.campaignUseCase(s.campaigns)
	alice := s.newSeller("alice", 100)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, alice.ID, campaignInput("Spring", "1", "10"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, port.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(7, conflicts)
	s.requireBalance(alice.ID, "89")
	s.True(s.journalSum(alice.ID).Equal(decimal.NewFromInt(89)))
}

func (s *RepositorySuite) TestAmountsMustFitMoneyColumns() {
	ctx := context.Background()
	uc := s.campaignUseCase(s.campaigns)
	alice := s.newSeller("alice", 100)

	for _, fund := range []string{"0.005", "1.001", "1000000000000"} {
		_, err := uc.Create(ctx, alice.ID, campaignInput("Spring", "0", fund))
		s.ErrorIs(err, port.ErrValidation, fund)
		s.ErrorIs(s.sellers.Reserve(ctx, alice.ID, decimal.RequireFromString(fund), domain.ReasonCampaignCreate), port.ErrValidation, fund)
		s.ErrorIs(s.sellers.Release(ctx, alice.ID, decimal.RequireFromString(fund), domain.ReasonDeposit), port.ErrValidation, fund)
	}
	err := s.sellers.Release(ctx, alice.ID, decimal.RequireFromString("999999999900"), domain.ReasonDeposit)
	s.ErrorIs(err, port.ErrValidation)
	s.requireBalance(alice.ID, "100")

	for range 3 {
		created, err := uc.Create(ctx, alice.ID, campaignInput("Cent", "0", "0.01"))
		s.Require().NoError(err)
		s.Require().NoError(uc.Delete(ctx, alice.ID, created.ID))
	}
	s.requireBalance(alice.ID, "100")
	s.True(s.journalSum(alice.ID).Equal(decimal.NewFromInt(100)))
}

func (s *RepositorySuite) TestColumnOverflowIsValidation() {
	ctx := context.Background()
	seller := s.newSeller("alice", 0)
	city, err := s.cities.GetByName(ctx, "Kraków")
	s.Require().NoError(err)

	err = s.campaigns.Insert(ctx, &domain.Campaign{
		Name:     "Huge",
		Price:    decimal.NewFromInt(1),
		Fund:     decimal.New(1, 13),
		Status:   true,
		City:     *city,
		SellerID: seller.ID,
	})
	s.ErrorIs(err, port.ErrValidation)
}

func (s *RepositorySuite) TestSeedKeepsExistingReferenceRows() {
	ctx := context.Background()
	_, err := s.pool.Exec(ctx, `UPDATE cities SET latitude = 1 WHERE name = 'Kraków'`)
	s.Require().NoError(err)
	defer func() {
		_, err := s.pool.Exec(ctx, `UPDATE cities SET latitude = $1 WHERE name = 'Kraków'`, krakowLatitude())
		s.Require().NoError(err)
	}()

	s.Require().NoError(db.Seed(ctx, s.pool, domain.DefaultCities, domain.DefaultKeywords))

	city, err := s.cities.GetByName(ctx, "Kraków")
	s.Require().NoError(err)
	s.InDelta(1, city.Latitude, 1e-9)
	cities, err := s.cities.List(ctx)
	s.Require().NoError(err)
	s.Len(cities, len(domain.DefaultCities))
}

func krakowLatitude() float64 {
	for _, c := range domain.DefaultCities {
		if c.Name == "Kraków" {
			return c.Latitude
		}
	}
	return 0
}
