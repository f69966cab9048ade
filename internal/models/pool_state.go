package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PoolState mirrors the external constant-product pool the settlement core
// pairs liquidity into: deposit-asset reserve, share-token reserve and LP
// token supply.
type PoolState struct {
	ID             uint            `gorm:"primarykey" json:"id"`
	DepositReserve decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"deposit_reserve"`
	ShareReserve   decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"share_reserve"`
	LpSupply       decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"lp_supply"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (PoolState) TableName() string {
	return "pool_states"
}
