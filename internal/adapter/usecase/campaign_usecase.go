package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
	"local-ads/internal/core/port"
)

// CampaignDeps groups the collaborators of CampaignUseCase. Events may be
// nil, in which case nothing is published.
type CampaignDeps struct {
	Tx        port.Transactor
	Campaigns port.CampaignRepository
	Sellers   port.SellerRepository
	Ledger    port.FundLedger
	Cities    port.CityRepository
	Keywords  port.KeywordRepository
	Events    port.EventPublisher
	Logger    *slog.Logger
}

// CampaignUseCase implements port.CampaignUseCase. Every mutation runs in a
// single transaction spanning the fund ledger and the campaign store.
type CampaignUseCase struct {
	tx        port.Transactor
	campaigns port.CampaignRepository
	sellers   port.SellerRepository
	ledger    port.FundLedger
	cities    port.CityRepository
	keywords  port.KeywordRepository
	events    port.EventPublisher
	logger    *slog.Logger
}

// NewCampaignUseCase creates a use case from its dependencies.
func NewCampaignUseCase(d CampaignDeps) *CampaignUseCase {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CampaignUseCase{
		tx:        d.Tx,
		campaigns: d.Campaigns,
		sellers:   d.Sellers,
		ledger:    d.Ledger,
		cities:    d.Cities,
		keywords:  d.Keywords,
		events:    d.Events,
		logger:    logger,
	}
}

// Create resolves the seller, name, keywords and city, reserves price+fund
// and stores the campaign.
func (u *CampaignUseCase) Create(ctx context.Context, sellerID int64, in port.CampaignInput) (*port.CampaignView, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var created *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		seller, err := u.sellers.Get(ctx, sellerID)
		if err != nil {
			return err
		}
		if err = u.ensureNameFree(ctx, in.Name, 0); err != nil {
			return err
		}
		keywords, err := u.resolveKeywords(ctx, in.Keywords)
		if err != nil {
			return err
		}
		city, err := u.cities.GetByName(ctx, in.City)
		if err != nil {
			return err
		}

		if err = u.ledger.Reserve(ctx, seller.ID, in.Price.Add(in.Fund), domain.ReasonCampaignCreate); err != nil {
			return err
		}

		c := &domain.Campaign{
			Name:       in.Name,
			Keywords:   keywords,
			Price:      in.Price,
			Fund:       in.Fund,
			Status:     in.Status != nil && *in.Status,
			City:       *city,
			Radius:     in.Radius,
			SellerID:   seller.ID,
			SellerName: seller.Username,
		}
		if err = u.campaigns.Insert(ctx, c); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("campaign created",
		slog.Int64("campaign_id", created.ID),
		slog.Int64("seller_id", created.SellerID),
		slog.String("fund", created.Fund.String()))
	u.publish(ctx, domain.EventCampaignCreated, created)

	view := port.NewCampaignView(created)
	return &view, nil
}

// Update replaces the campaign fields. The fund difference is settled
// against the owner's balance before anything else is resolved; a later
// failure rolls the settlement back with the rest of the transaction.
func (u *CampaignUseCase) Update(ctx context.Context, sellerID, campaignID int64, in port.CampaignInput) (*port.CampaignView, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := u.lockOwned(ctx, sellerID, campaignID)
		if err != nil {
			return err
		}
		if in.Name != c.Name {
			if err = u.ensureNameFree(ctx, in.Name, c.ID); err != nil {
				return err
			}
		}

		delta := in.Fund.Sub(c.Fund)
		if err = u.ledger.Adjust(ctx, c.SellerID, delta, domain.ReasonCampaignUpdate); err != nil {
			return err
		}

		if c.City.Name != in.City {
			city, err := u.cities.GetByName(ctx, in.City)
			if err != nil {
				return err
			}
			c.City = *city
		}
		keywords, err := u.resolveKeywords(ctx, in.Keywords)
		if err != nil {
			return err
		}

		c.Name = in.Name
		c.Price = in.Price
		c.Fund = in.Fund
		c.Radius = in.Radius
		c.Keywords = keywords
		if in.Status != nil {
			c.Status = *in.Status
		}
		if err = u.campaigns.Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("campaign updated",
		slog.Int64("campaign_id", updated.ID),
		slog.String("fund", updated.Fund.String()))
	u.publish(ctx, domain.EventCampaignUpdated, updated)

	view := port.NewCampaignView(updated)
	return &view, nil
}

// UpdateStatus switches a campaign on or off without touching its fund.
func (u *CampaignUseCase) UpdateStatus(ctx context.Context, sellerID, campaignID int64, status bool) (*port.CampaignView, error) {
	var updated *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := u.lockOwned(ctx, sellerID, campaignID)
		if err != nil {
			return err
		}
		if err = u.campaigns.UpdateStatus(ctx, c.ID, status); err != nil {
			return err
		}
		c.Status = status
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, domain.EventCampaignStatusChanged, updated)
	view := port.NewCampaignView(updated)
	return &view, nil
}

// Delete refunds the campaign fund to its owner and removes the campaign.
func (u *CampaignUseCase) Delete(ctx context.Context, sellerID, campaignID int64) error {
	return u.delete(ctx, campaignID, func(c *domain.Campaign) bool { return c.OwnedBy(sellerID) })
}

// DeleteByID refunds and removes any campaign.
func (u *CampaignUseCase) DeleteByID(ctx context.Context, campaignID int64) error {
	return u.delete(ctx, campaignID, func(*domain.Campaign) bool { return true })
}

func (u *CampaignUseCase) delete(ctx context.Context, campaignID int64, allowed func(*domain.Campaign) bool) error {
	var deleted *domain.Campaign
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := u.campaigns.GetForUpdate(ctx, campaignID)
		if err != nil {
			return err
		}
		if !allowed(c) {
			return campaignNotFound(campaignID)
		}
		if err = u.ledger.Release(ctx, c.SellerID, c.Fund, domain.ReasonCampaignDelete); err != nil {
			return err
		}
		if err = u.campaigns.Delete(ctx, c.ID); err != nil {
			return err
		}
		deleted = c
		return nil
	})
	if err != nil {
		return err
	}

	u.logger.Info("campaign deleted",
		slog.Int64("campaign_id", deleted.ID),
		slog.Int64("seller_id", deleted.SellerID),
		slog.String("refund", deleted.Fund.String()))
	u.publish(ctx, domain.EventCampaignDeleted, deleted)
	return nil
}

func (u *CampaignUseCase) GetOwned(ctx context.Context, sellerID, campaignID int64) (*port.CampaignView, error) {
	c, err := u.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(sellerID) {
		return nil, campaignNotFound(campaignID)
	}
	view := port.NewCampaignView(c)
	return &view, nil
}

func (u *CampaignUseCase) GetStatus(ctx context.Context, sellerID, campaignID int64) (bool, error) {
	view, err := u.GetOwned(ctx, sellerID, campaignID)
	if err != nil {
		return false, err
	}
	return view.Status, nil
}

func (u *CampaignUseCase) GetByID(ctx context.Context, campaignID int64) (*port.CampaignView, error) {
	c, err := u.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	view := port.NewCampaignView(c)
	return &view, nil
}

func (u *CampaignUseCase) GetByName(ctx context.Context, name string) (*port.CampaignView, error) {
	c, err := u.campaigns.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	view := port.NewCampaignView(c)
	return &view, nil
}

func (u *CampaignUseCase) ListByOwner(ctx context.Context, sellerID int64) ([]port.CampaignView, error) {
	return u.list(ctx, port.CampaignFilter{SellerID: sellerID})
}

func (u *CampaignUseCase) ListByOwnerAndCity(ctx context.Context, sellerID int64, city string) ([]port.CampaignView, error) {
	return u.list(ctx, port.CampaignFilter{SellerID: sellerID, CityName: city})
}

func (u *CampaignUseCase) ListByOwnerAndName(ctx context.Context, sellerID int64, name string) ([]port.CampaignView, error) {
	return u.list(ctx, port.CampaignFilter{SellerID: sellerID, Name: name})
}

func (u *CampaignUseCase) ListAll(ctx context.Context) ([]port.CampaignView, error) {
	return u.list(ctx, port.CampaignFilter{})
}

func (u *CampaignUseCase) ListByCity(ctx context.Context, city string) ([]port.CampaignView, error) {
	return u.list(ctx, port.CampaignFilter{CityName: city})
}

func (u *CampaignUseCase) list(ctx context.Context, f port.CampaignFilter) ([]port.CampaignView, error) {
	campaigns, err := u.campaigns.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]port.CampaignView, 0, len(campaigns))
	for i := range campaigns {
		views = append(views, port.NewCampaignView(&campaigns[i]))
	}
	return views, nil
}

// lockOwned loads and locks a campaign, reporting campaigns of other
// sellers as not found.
func (u *CampaignUseCase) lockOwned(ctx context.Context, sellerID, campaignID int64) (*domain.Campaign, error) {
	c, err := u.campaigns.GetForUpdate(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.OwnedBy(sellerID) {
		return nil, campaignNotFound(campaignID)
	}
	return c, nil
}

func (u *CampaignUseCase) ensureNameFree(ctx context.Context, name string, exceptID int64) error {
	taken, err := u.campaigns.NameTaken(ctx, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: campaign with name %q already exists", port.ErrConflict, name)
	}
	return nil
}

// resolveKeywords returns the catalog keywords for names or fails listing
// every name that does not resolve.
func (u *CampaignUseCase) resolveKeywords(ctx context.Context, names []string) ([]domain.Keyword, error) {
	found, err := u.keywords.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if missing := domain.MissingKeywords(names, found); len(missing) > 0 {
		return nil, fmt.Errorf("%w: keywords not found: %s", port.ErrNotFound, strings.Join(missing, ", "))
	}
	return found, nil
}

func (u *CampaignUseCase) publish(ctx context.Context, typ domain.EventType, c *domain.Campaign) {
	if u.events == nil {
		return
	}
	event := domain.CampaignEvent{
		Type:       typ,
		CampaignID: c.ID,
		SellerID:   c.SellerID,
		Name:       c.Name,
		Fund:       c.Fund,
		Status:     c.Status,
		City:       c.City.Name,
		OccurredAt: time.Now().UTC(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		u.logger.Warn("publish campaign event",
			slog.String("type", string(typ)),
			slog.Int64("campaign_id", c.ID),
			slog.Any("error", err))
	}
}

func campaignNotFound(id int64) error {
	return fmt.Errorf("%w: campaign %d", port.ErrNotFound, id)
}

func validateInput(in port.CampaignInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", port.ErrValidation)
	case len(in.Keywords) == 0:
		return fmt.Errorf("%w: at least one keyword is required", port.ErrValidation)
	case strings.TrimSpace(in.City) == "":
		return fmt.Errorf("%w: city is required", port.ErrValidation)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", port.ErrValidation)
	case in.Fund.IsNegative():
		return fmt.Errorf("%w: fund must not be negative", port.ErrValidation)
	case in.Radius < 0:
		return fmt.Errorf("%w: radius must not be negative", port.ErrValidation)
	}
	if err := checkMoney("price", in.Price); err != nil {
		return err
	}
	return checkMoney("fund", in.Fund)
}

// checkMoney rejects amounts the ledger columns would round or overflow.
func checkMoney(field string, d decimal.Decimal) error {
	if !domain.FitsMoney(d) {
		return fmt.Errorf("%w: %s must have at most %d decimal places and be below %s",
			port.ErrValidation, field, domain.MoneyScale, domain.MaxMoney)
	}
	return nil
}
