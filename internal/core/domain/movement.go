package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementReason tags a ledger movement with the operation that caused it.
type MovementReason string

const (
	ReasonDeposit        MovementReason = "deposit"
	ReasonCampaignCreate MovementReason = "campaign_create"
	ReasonCampaignUpdate MovementReason = "campaign_update"
	ReasonCampaignDelete MovementReason = "campaign_delete"
)

// FundMovement is a journal record of a single balance change. Amount is
// negative for reservations and positive for releases.
type FundMovement struct {
	ID           string
	SellerID     int64
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Reason       MovementReason
	CreatedAt    time.Time
}
