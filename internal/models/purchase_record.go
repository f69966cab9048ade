package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord is written exactly once per successful purchase and never
// mutated afterwards.
type PurchaseRecord struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	Reference           string          `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	BuyerAddress        string          `gorm:"size:64;index;not null" json:"buyer_address"`
	PackageID           uint            `gorm:"index;not null" json:"package_id"`
	ReferrerAddress     string          `gorm:"size:64;index" json:"referrer_address"`
	TotalShareTokens    decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"total_share_tokens"`
	VestedShareTokens   decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"vested_share_tokens"`
	PoolShareTokens     decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"pool_share_tokens"`
	TreasuryShareTokens decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"treasury_share_tokens"`
	DepositToPool       decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"deposit_to_pool"`
	DepositToVesting    decimal.Decimal `gorm:"type:numeric(78,0);not null" json:"deposit_to_vesting"`
	LiquidityFallback   bool            `gorm:"default:false" json:"liquidity_fallback"`
	ReferralPaid        bool            `gorm:"default:false" json:"referral_paid"`
	CreatedAt           time.Time       `json:"created_at" gorm:"autoCreateTime"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
}

func (PurchaseRecord) TableName() string {
	return "purchase_records"
}
