package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is an admin-defined purchase tier. Terms are immutable once the
// package has been referenced by a purchase; only the Active flag may change
// after that point.
type Package struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	Name                string          `gorm:"size:100;not null" json:"name"`
	EntryCost           decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"entry_cost"`
	ExchangeRate        decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"exchange_rate"`
	VestingFractionBps  uint            `gorm:"not null" json:"vesting_fraction_bps"`
	CliffSeconds        int64           `gorm:"not null" json:"cliff_seconds"`
	DurationSeconds     int64           `gorm:"not null" json:"duration_seconds"`
	ReferralFractionBps uint            `gorm:"not null" json:"referral_fraction_bps"`
	Active              bool            `gorm:"default:true" json:"active"`
	Referenced          bool            `gorm:"default:false" json:"referenced"`
	CreatedAt           time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Package) TableName() string {
	return "packages"
}
