package models

import "time"

// Capability names. Administrative mutation across the system is gated on
// these; read access is public.
const (
	CapAdmin           = "admin"
	CapFeeManager      = "fee_manager"
	CapRelayer         = "relayer"
	CapTreasuryManager = "treasury_manager"
)

// Capability grants one named capability to one address.
type Capability struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Address   string    `gorm:"size:64;not null;uniqueIndex:idx_capability_addr_name" json:"address"`
	Name      string    `gorm:"size:30;not null;uniqueIndex:idx_capability_addr_name" json:"name"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Capability) TableName() string {
	return "capabilities"
}
