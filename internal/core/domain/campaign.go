package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campaign represents a seller's geo-targeted advertising campaign.
// Fund is the part of the seller's balance reserved for the campaign.
type Campaign struct {
	ID         int64
	Name       string
	Keywords   []Keyword
	Price      decimal.Decimal
	Fund       decimal.Decimal
	Status     bool
	City       City
	Radius     float64 // km
	SellerID   int64
	SellerName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// KeywordNames returns the names of the campaign keywords in stored order.
func (c *Campaign) KeywordNames() []string {
	names := make([]string, 0, len(c.Keywords))
	for _, k := range c.Keywords {
		names = append(names, k.Name)
	}
	return names
}

// HasAnyKeyword reports whether at least one campaign keyword is in names.
// Matching is exact and case-sensitive.
func (c *Campaign) HasAnyKeyword(names []string) bool {
	if len(names) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	for _, k := range c.Keywords {
		if _, ok := set[k.Name]; ok {
			return true
		}
	}
	return false
}

// OwnedBy reports whether the campaign belongs to the seller.
func (c *Campaign) OwnedBy(sellerID int64) bool {
	return c.SellerID == sellerID
}
