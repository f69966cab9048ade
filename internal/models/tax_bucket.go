package models

import "time"

// TaxBucket is a named fee rate with a recipient. Only the fee-manager
// capability may mutate buckets; everything else reads them.
type TaxBucket struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	Key              string    `gorm:"size:50;uniqueIndex;not null" json:"key"`
	RateBps          uint      `gorm:"not null" json:"rate_bps"`
	RecipientAddress string    `gorm:"size:64;not null" json:"recipient_address"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TaxBucket) TableName() string {
	return "tax_buckets"
}
