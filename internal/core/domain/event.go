package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a campaign lifecycle change.
type EventType string

const (
	EventCampaignCreated       EventType = "campaign.created"
	EventCampaignUpdated       EventType = "campaign.updated"
	EventCampaignStatusChanged EventType = "campaign.status_changed"
	EventCampaignDeleted       EventType = "campaign.deleted"
)

// CampaignEvent is emitted after a campaign mutation has been committed.
type CampaignEvent struct {
	Type       EventType       `json:"type"`
	CampaignID int64           `json:"campaign_id"`
	SellerID   int64           `json:"seller_id"`
	Name       string          `json:"name"`
	Fund       decimal.Decimal `json:"fund"`
	Status     bool            `json:"status"`
	City       string          `json:"city"`
	OccurredAt time.Time       `json:"occurred_at"`
}
