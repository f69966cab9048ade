package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Referral payout statuses. Failed payouts stay on the books and are retried
// by the worker once the treasury can cover them.
const (
	ReferralStatusPaid   = "paid"
	ReferralStatusFailed = "failed"
)

// ReferralPayout records the step-9 referral settlement for one purchase.
type ReferralPayout struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	PurchaseID      uint            `gorm:"index;not null" json:"purchase_id"`
	ReferrerAddress string          `gorm:"size:64;index;not null" json:"referrer_address"`
	Reward          decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"reward"`
	Status          string          `gorm:"size:10;index;not null" json:"status"`
	Attempts        uint            `gorm:"not null;default:1" json:"attempts"`
	LastError       string          `gorm:"size:200" json:"last_error"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (ReferralPayout) TableName() string {
	return "referral_payouts"
}
