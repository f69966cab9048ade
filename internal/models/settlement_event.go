package models

import "time"

// Event kinds emitted by the settlement core.
const (
	EventPurchaseCompleted = "purchase.completed"
	EventPurchaseDegraded  = "purchase.degraded"
	EventVestingClaimed    = "vesting.claimed"
	EventReferralPaid      = "referral.paid"
	EventReferralFailed    = "referral.failed"
	EventStakeCreated      = "stake.created"
	EventStakeWithdrawn    = "stake.withdrawn"
)

// SettlementEvent is the persisted event log. Rows are append-only; the same
// payload is mirrored to RabbitMQ and the websocket stream after commit.
type SettlementEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Kind      string    `gorm:"size:40;index;not null" json:"kind"`
	Level     string    `gorm:"size:10;not null" json:"level"`
	Address   string    `gorm:"size:64;index" json:"address"`
	Payload   string    `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (SettlementEvent) TableName() string {
	return "settlement_events"
}
