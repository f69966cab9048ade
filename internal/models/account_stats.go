package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStats aggregates per-address purchase and referral activity.
// Referral rewards are recorded against the referrer only; they never touch
// the buyer's invested totals.
type AccountStats struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	Address               string          `gorm:"size:64;uniqueIndex;not null" json:"address"`
	TotalInvested         decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"total_invested"`
	TotalShareTokens      decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"total_share_tokens"`
	PurchaseCount         uint            `gorm:"not null" json:"purchase_count"`
	ReferralRewardsEarned decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"referral_rewards_earned"`
	ReferralCount         uint            `gorm:"not null" json:"referral_count"`
	CreatedAt             time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (AccountStats) TableName() string {
	return "account_stats"
}
