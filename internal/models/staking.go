package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StakingPool terms are fixed at creation; only Active may be toggled.
type StakingPool struct {
	ID                      uint            `gorm:"primarykey" json:"id"`
	Name                    string          `gorm:"size:100;not null" json:"name"`
	LockPeriodSeconds       int64           `gorm:"not null" json:"lock_period_seconds"`
	ApyBps                  uint            `gorm:"not null" json:"apy_bps"`
	MinStake                decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"min_stake"`
	MaxStake                decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"max_stake"`
	RewardMultiplierBps     uint            `gorm:"not null;default:10000" json:"reward_multiplier_bps"`
	EmergencyExitPenaltyBps uint            `gorm:"not null" json:"emergency_exit_penalty_bps"`
	Active                  bool            `gorm:"default:true" json:"active"`
	CreatedAt               time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (StakingPool) TableName() string {
	return "staking_pools"
}

// Stake rows are created on stake, updated by accrual snapshots and deleted
// on full withdrawal.
type Stake struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	Reference      string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	OwnerAddress   string          `gorm:"size:64;index;not null" json:"owner_address"`
	PoolID         uint            `gorm:"index;not null" json:"pool_id"`
	Amount         decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"amount"`
	StartTimestamp time.Time       `gorm:"not null" json:"start_timestamp"`
	AccruedReward  decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"accrued_reward"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Pool *StakingPool `gorm:"foreignKey:PoolID" json:"pool,omitempty"`
}

func (Stake) TableName() string {
	return "stakes"
}
