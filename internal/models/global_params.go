package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GlobalParams is a singleton row (ID = 1) holding the scalar protocol
// parameters and the shared counters. All mutations go through row-locked
// transactions so the counters have a single writer at a time.
type GlobalParams struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	TreasuryAddress       string          `gorm:"size:64;not null" json:"treasury_address"`
	DepositScale          int32           `gorm:"not null" json:"deposit_scale"`
	ShareScale            int32           `gorm:"not null" json:"share_scale"`
	GlobalExchangeRate    decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"global_exchange_rate"`
	SlippageToleranceBps  uint            `gorm:"not null" json:"slippage_tolerance_bps"`
	DeadlineWindowSeconds int64           `gorm:"not null" json:"deadline_window_seconds"`
	CirculatingSupply     decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"circulating_supply"`
	UpdatedAt             time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (GlobalParams) TableName() string {
	return "global_params"
}
