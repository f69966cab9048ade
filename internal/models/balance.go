package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset identifiers for the two ledgers the core keeps.
const (
	AssetDeposit = "deposit"
	AssetShare   = "share"
)

// Internal ledger accounts. The vesting vault holds locked share tokens until
// they are claimed; the staking vault holds staked principal.
const (
	VestingVaultAddress = "vault:vesting"
	StakingVaultAddress = "vault:staking"
)

// Balance holds one (address, asset) ledger entry in integer base units.
type Balance struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Address   string          `gorm:"size:64;not null;uniqueIndex:idx_balance_addr_asset" json:"address"`
	Asset     string          `gorm:"size:20;not null;uniqueIndex:idx_balance_addr_asset" json:"asset"`
	Amount    decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Balance) TableName() string {
	return "balances"
}
