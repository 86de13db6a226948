package port

import (
	"context"

	"local-ads/internal/core/domain"
)

// CampaignFilter narrows campaign listings. Zero fields are ignored.
type CampaignFilter struct {
	SellerID int64
	CityName string
	Name     string
}

// CampaignRepository persists campaigns and their keyword links. Methods
// return ErrNotFound for unknown ids and ErrConflict for duplicate names.
type CampaignRepository interface {
	Insert(ctx context.Context, c *domain.Campaign) error
	// Update persists all mutable fields and replaces the keyword set.
	Update(ctx context.Context, c *domain.Campaign) error
	UpdateStatus(ctx context.Context, id int64, status bool) error
	Delete(ctx context.Context, id int64) error

	Get(ctx context.Context, id int64) (*domain.Campaign, error)
	// GetForUpdate loads the campaign and locks it until the enclosing
	// transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Campaign, error)
	GetByName(ctx context.Context, name string) (*domain.Campaign, error)
	NameTaken(ctx context.Context, name string, exceptID int64) (bool, error)
	Find(ctx context.Context, f CampaignFilter) ([]domain.Campaign, error)
	// FindActive returns campaigns with status true. When keywords is not
	// empty only campaigns having at least one of them are returned.
	FindActive(ctx context.Context, keywords []string) ([]domain.Campaign, error)
}

// SellerRepository persists seller accounts. Balances are changed through
// FundLedger only.
type SellerRepository interface {
	Create(ctx context.Context, s *domain.Seller) error
	Get(ctx context.Context, id int64) (*domain.Seller, error)
	GetByUsername(ctx context.Context, username string) (*domain.Seller, error)
	List(ctx context.Context) ([]domain.Seller, error)
	Delete(ctx context.Context, id int64) error
}

// CityRepository resolves reference cities.
type CityRepository interface {
	GetByName(ctx context.Context, name string) (*domain.City, error)
	List(ctx context.Context) ([]domain.City, error)
}

// KeywordRepository resolves catalog keywords.
type KeywordRepository interface {
	// FindByNames returns the keywords matching names case-insensitively.
	// Unknown names are silently skipped.
	FindByNames(ctx context.Context, names []string) ([]domain.Keyword, error)
	List(ctx context.Context) ([]domain.Keyword, error)
}

// EventPublisher delivers committed campaign changes to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.CampaignEvent) error
}
