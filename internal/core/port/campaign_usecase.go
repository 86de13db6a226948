package port

import (
	"context"

	"github.com/shopspring/decimal"

	"local-ads/internal/core/domain"
)

// CampaignUseCase defines the campaign lifecycle operations. Mutations are
// all-or-nothing: ledger and store changes commit together or not at all.
type CampaignUseCase interface {
	// Create reserves price+fund from the seller's balance and stores the
	// campaign. Fails with ErrNotFound, ErrConflict or ErrInsufficientBalance.
	Create(ctx context.Context, sellerID int64, in CampaignInput) (*CampaignView, error)
	// Update replaces the campaign fields and settles the fund difference
	// against the seller's balance. Campaigns of other sellers are reported
	// as ErrNotFound.
	Update(ctx context.Context, sellerID, campaignID int64, in CampaignInput) (*CampaignView, error)
	UpdateStatus(ctx context.Context, sellerID, campaignID int64, status bool) (*CampaignView, error)
	// Delete refunds the remaining fund to the owner and removes the campaign.
	Delete(ctx context.Context, sellerID, campaignID int64) error
	// DeleteByID is the admin variant of Delete without the ownership check.
	DeleteByID(ctx context.Context, campaignID int64) error

	GetOwned(ctx context.Context, sellerID, campaignID int64) (*CampaignView, error)
	GetStatus(ctx context.Context, sellerID, campaignID int64) (bool, error)
	GetByID(ctx context.Context, campaignID int64) (*CampaignView, error)
	GetByName(ctx context.Context, name string) (*CampaignView, error)
	ListByOwner(ctx context.Context, sellerID int64) ([]CampaignView, error)
	ListByOwnerAndCity(ctx context.Context, sellerID int64, city string) ([]CampaignView, error)
	ListByOwnerAndName(ctx context.Context, sellerID int64, name string) ([]CampaignView, error)
	ListAll(ctx context.Context) ([]CampaignView, error)
	ListByCity(ctx context.Context, city string) ([]CampaignView, error)
}

// LocationMatcher answers which active campaigns are reachable from a city.
type LocationMatcher interface {
	FindNear(ctx context.Context, searchCity string, radiusKm float64) ([]CampaignView, error)
	FindNearByKeywords(ctx context.Context, searchCity string, radiusKm float64, keywords []string) ([]CampaignView, error)
}

// CampaignInput carries the validated fields of a create or update request.
// A nil Status keeps the current value on update and means false on create.
type CampaignInput struct {
	Name     string
	Keywords []string
	Price    decimal.Decimal
	Fund     decimal.Decimal
	Status   *bool
	City     string
	Radius   float64
}

// CampaignView is the read model returned to the boundary.
type CampaignView struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Keywords   []string        `json:"keywordsNames"`
	Price      decimal.Decimal `json:"price"`
	Fund       decimal.Decimal `json:"fund"`
	Status     bool            `json:"status"`
	City       string          `json:"city"`
	Radius     float64         `json:"radius"`
	SellerName string          `json:"sellerName"`
	DistanceKm *float64        `json:"distanceKm,omitempty"`
}

// NewCampaignView projects a campaign into its view.
func NewCampaignView(c *domain.Campaign) CampaignView {
	return CampaignView{
		ID:         c.ID,
		Name:       c.Name,
		Keywords:   c.KeywordNames(),
		Price:      c.Price,
		Fund:       c.Fund,
		Status:     c.Status,
		City:       c.City.Name,
		Radius:     c.Radius,
		SellerName: c.SellerName,
	}
}
