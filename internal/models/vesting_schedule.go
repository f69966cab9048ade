package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VestingSchedule is a per-account lock with cliff and linear release.
// TotalLocked never changes after creation; Released only grows, and only
// through claims.
type VestingSchedule struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	Reference      string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	OwnerAddress   string          `gorm:"size:64;index;not null" json:"owner_address"`
	TotalLocked    decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"total_locked"`
	Released       decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"released"`
	CliffTimestamp time.Time       `gorm:"not null" json:"cliff_timestamp"`
	EndTimestamp   time.Time       `gorm:"not null" json:"end_timestamp"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (VestingSchedule) TableName() string {
	return "vesting_schedules"
}
