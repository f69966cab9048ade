package business

import (
	"errors"
	"math/big"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VestedAmount returns how much of the schedule has vested at t: zero before
// the cliff, a linear ramp between cliff and end, everything at and after
// end. Floor rounding on the ramp.
func VestedAmount(s *models.VestingSchedule, t time.Time) decimal.Decimal {
	if t.Before(s.CliffTimestamp) {
		return decimal.Zero
	}
	if !t.Before(s.EndTimestamp) {
		return s.TotalLocked
	}
	elapsed := big.NewInt(int64(t.Sub(s.CliffTimestamp) / time.Second))
	total := big.NewInt(int64(s.EndTimestamp.Sub(s.CliffTimestamp) / time.Second))
	v := new(big.Int).Mul(s.TotalLocked.BigInt(), elapsed)
	v.Quo(v, total)
	return decimal.NewFromBigInt(v, 0)
}

// LockVesting creates a schedule for owner. The share tokens backing it must
// already sit in the vesting vault account; LockVesting only records the
// terms.
func LockVesting(tx *gorm.DB, owner string, amount decimal.Decimal, cliffSeconds, durationSeconds int64, now time.Time) (*models.VestingSchedule, error) {
	if amount.Sign() <= 0 {
		return nil, validationf("vesting amount must be positive")
	}
	if cliffSeconds < 0 || durationSeconds < 0 {
		return nil, validationf("vesting terms must not be negative")
	}

	cliff := now.Add(time.Duration(cliffSeconds) * time.Second)
	schedule := models.VestingSchedule{
		Reference:      uuid.NewString(),
		OwnerAddress:   owner,
		TotalLocked:    amount,
		Released:       decimal.Zero,
		CliffTimestamp: cliff,
		EndTimestamp:   cliff.Add(time.Duration(durationSeconds) * time.Second),
	}
	if err := tx.Create(&schedule).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ClaimVesting releases whatever has vested since the last claim and credits
// it to the owner from the vesting vault. A claim with nothing releasable
// (including any claim before the cliff) returns zero without error, so
// retries are idempotent. Unknown schedules are rejected.
func ClaimVesting(db *gorm.DB, scheduleID uint, now time.Time) (decimal.Decimal, error) {
	released := decimal.Zero
	err := transact(db, func(tx *gorm.DB) error {
		var s models.VestingSchedule
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&s, scheduleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationf("unknown vesting schedule %d", scheduleID)
		}
		if err != nil {
			return err
		}

		releasable := VestedAmount(&s, now).Sub(s.Released)
		if releasable.Sign() <= 0 {
			return nil
		}

		if err := TransferBalance(tx, models.VestingVaultAddress, s.OwnerAddress, models.AssetShare, releasable); err != nil {
			return err
		}
		s.Released = s.Released.Add(releasable)
		if err := tx.Model(&s).Update("released", s.Released).Error; err != nil {
			return err
		}
		released = releasable

		return recordEvent(tx, models.EventVestingClaimed, "info", s.OwnerAddress, map[string]interface{}{
			"schedule_id": s.ID,
			"released":    releasable.String(),
			"total":       s.Released.String(),
		})
	})
	return released, err
}

// VestingSchedulesFor lists an owner's schedules.
func VestingSchedulesFor(db *gorm.DB, owner string) ([]models.VestingSchedule, error) {
	var schedules []models.VestingSchedule
	err := db.Where("owner_address = ?", owner).Order("id").Find(&schedules).Error
	return schedules, err
}
