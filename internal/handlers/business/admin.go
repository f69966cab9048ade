package business

import (
	"errors"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func validatePackageTerms(pkg *models.Package) error {
	if pkg.Name == "" {
		return validationf("package name must not be empty")
	}
	if pkg.EntryCost.Sign() <= 0 {
		return validationf("entry cost must be positive")
	}
	if pkg.ExchangeRate.Sign() <= 0 {
		return validationf("exchange rate must be positive")
	}
	if pkg.VestingFractionBps > BpsDenominator {
		return validationf("vesting fraction exceeds %d bps", BpsDenominator)
	}
	if pkg.ReferralFractionBps > BpsDenominator {
		return validationf("referral fraction exceeds %d bps", BpsDenominator)
	}
	if pkg.CliffSeconds < 0 || pkg.DurationSeconds < 0 {
		return validationf("vesting terms must not be negative")
	}
	return nil
}

// CreatePackage defines a new purchase tier. Admin only.
func CreatePackage(db *gorm.DB, caller string, pkg *models.Package) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	if err := validatePackageTerms(pkg); err != nil {
		return err
	}
	pkg.Referenced = false
	return db.Create(pkg).Error
}

// UpdatePackage rewrites a package's terms. Terms freeze once any purchase
// has referenced the package; from then on only the active flag and name may
// change.
func UpdatePackage(db *gorm.DB, caller string, id uint, updated *models.Package) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}

	var pkg models.Package
	err := db.First(&pkg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return validationf("unknown package %d", id)
	}
	if err != nil {
		return err
	}

	if pkg.Referenced {
		termsChanged := !pkg.EntryCost.Equal(updated.EntryCost) ||
			!pkg.ExchangeRate.Equal(updated.ExchangeRate) ||
			pkg.VestingFractionBps != updated.VestingFractionBps ||
			pkg.CliffSeconds != updated.CliffSeconds ||
			pkg.DurationSeconds != updated.DurationSeconds ||
			pkg.ReferralFractionBps != updated.ReferralFractionBps
		if termsChanged {
			return validationf("package %d terms are frozen after first purchase", id)
		}
	}

	pkg.Name = updated.Name
	pkg.EntryCost = updated.EntryCost
	pkg.ExchangeRate = updated.ExchangeRate
	pkg.VestingFractionBps = updated.VestingFractionBps
	pkg.CliffSeconds = updated.CliffSeconds
	pkg.DurationSeconds = updated.DurationSeconds
	pkg.ReferralFractionBps = updated.ReferralFractionBps
	pkg.Active = updated.Active
	if err := validatePackageTerms(&pkg); err != nil {
		return err
	}
	return db.Save(&pkg).Error
}

// CreateStakingPool defines a new pool. Admin only; terms are immutable.
func CreateStakingPool(db *gorm.DB, caller string, pool *models.StakingPool) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	if pool.Name == "" {
		return validationf("pool name must not be empty")
	}
	if pool.LockPeriodSeconds < 0 {
		return validationf("lock period must not be negative")
	}
	if pool.EmergencyExitPenaltyBps > BpsDenominator {
		return validationf("emergency exit penalty exceeds %d bps", BpsDenominator)
	}
	if pool.MaxStake.Sign() > 0 && pool.MaxStake.LessThan(pool.MinStake) {
		return validationf("max stake below min stake")
	}
	if pool.RewardMultiplierBps == 0 {
		pool.RewardMultiplierBps = BpsDenominator
	}
	return db.Create(pool).Error
}

// SetStakingPoolActive toggles a pool without touching its frozen terms.
func SetStakingPoolActive(db *gorm.DB, caller string, id uint, active bool) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	res := db.Model(&models.StakingPool{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return validationf("unknown staking pool %d", id)
	}
	return nil
}

// GlobalParamsUpdate carries the admin-tunable scalar parameters. Nil fields
// are left unchanged.
type GlobalParamsUpdate struct {
	TreasuryAddress       *string
	GlobalExchangeRate    *decimal.Decimal
	SlippageToleranceBps  *uint
	DeadlineWindowSeconds *int64
}

// UpdateGlobalParams applies an admin update to the singleton parameter row.
// Treasury address changes additionally require the treasury-manager
// capability.
func UpdateGlobalParams(db *gorm.DB, caller string, update GlobalParamsUpdate) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		gp, err := LockedGlobalParams(tx)
		if err != nil {
			return err
		}
		if update.TreasuryAddress != nil {
			if err := RequireCapability(tx, caller, models.CapTreasuryManager); err != nil {
				return err
			}
			if *update.TreasuryAddress == "" {
				return validationf("treasury address must not be empty")
			}
			gp.TreasuryAddress = *update.TreasuryAddress
		}
		if update.GlobalExchangeRate != nil {
			if update.GlobalExchangeRate.Sign() <= 0 {
				return validationf("global exchange rate must be positive")
			}
			gp.GlobalExchangeRate = *update.GlobalExchangeRate
		}
		if update.SlippageToleranceBps != nil {
			if *update.SlippageToleranceBps > MaxSlippageToleranceBps {
				return validationf("slippage tolerance %d exceeds cap %d", *update.SlippageToleranceBps, MaxSlippageToleranceBps)
			}
			gp.SlippageToleranceBps = *update.SlippageToleranceBps
		}
		if update.DeadlineWindowSeconds != nil {
			if *update.DeadlineWindowSeconds < 0 {
				return validationf("deadline window must not be negative")
			}
			gp.DeadlineWindowSeconds = *update.DeadlineWindowSeconds
		}
		return tx.Save(gp).Error
	})
}
