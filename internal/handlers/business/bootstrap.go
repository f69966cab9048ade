package business

import (
	"errors"
	"os"
	"strconv"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	log "github.com/sirupsen/logrus"
)

func envInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

// Bootstrap seeds the singleton rows on first start: global parameters, the
// pool state and the admin capability from ADMIN_ADDRESS. Idempotent.
func Bootstrap(db *gorm.DB) error {
	var gp models.GlobalParams
	err := db.First(&gp, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		gp = models.GlobalParams{
			ID:                    1,
			TreasuryAddress:       os.Getenv("TREASURY_ADDRESS"),
			DepositScale:          int32(envInt("DEPOSIT_SCALE", 6)),
			ShareScale:            int32(envInt("SHARE_SCALE", 18)),
			GlobalExchangeRate:    decimal.NewFromInt(envInt("GLOBAL_EXCHANGE_RATE", 1000000)),
			SlippageToleranceBps:  uint(envInt("SLIPPAGE_TOLERANCE_BPS", 300)),
			DeadlineWindowSeconds: envInt("DEADLINE_WINDOW_SECONDS", 300),
			CirculatingSupply:     decimal.Zero,
		}
		if gp.TreasuryAddress == "" {
			gp.TreasuryAddress = "treasury"
		}
		if err := db.Create(&gp).Error; err != nil {
			return err
		}
		log.Infof("seeded global params, treasury=%s", gp.TreasuryAddress)
	} else if err != nil {
		return err
	}

	var ps models.PoolState
	err = db.First(&ps, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ps = models.PoolState{
			ID:             1,
			DepositReserve: decimal.Zero,
			ShareReserve:   decimal.Zero,
			LpSupply:       decimal.Zero,
		}
		if err := db.Create(&ps).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if admin := os.Getenv("ADMIN_ADDRESS"); admin != "" {
		cap := models.Capability{Address: admin, Name: models.CapAdmin}
		if err := db.Where("address = ? AND name = ?", admin, models.CapAdmin).
			FirstOrCreate(&cap).Error; err != nil {
			return err
		}
	}
	return nil
}
