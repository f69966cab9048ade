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

const secondsPerYear = 365 * 24 * 3600

// StakeReward computes the simple pro-rated APY reward for a stake at t,
// scaled by the pool's reward multiplier. Floor rounding.
func StakeReward(stake *models.Stake, pool *models.StakingPool, t time.Time) decimal.Decimal {
	elapsed := int64(t.Sub(stake.StartTimestamp) / time.Second)
	if elapsed <= 0 {
		return decimal.Zero
	}
	r := new(big.Int).Mul(stake.Amount.BigInt(), big.NewInt(int64(pool.ApyBps)))
	r.Mul(r, big.NewInt(int64(pool.RewardMultiplierBps)))
	r.Mul(r, big.NewInt(elapsed))
	r.Quo(r, big.NewInt(BpsDenominator*BpsDenominator*secondsPerYear))
	return decimal.NewFromBigInt(r, 0)
}

// CreateStake locks share tokens into a pool and starts accrual at now.
func CreateStake(db *gorm.DB, owner string, poolID uint, amount decimal.Decimal, now time.Time) (*models.Stake, error) {
	if owner == "" {
		return nil, validationf("owner address must not be empty")
	}
	if amount.Sign() <= 0 {
		return nil, validationf("stake amount must be positive")
	}

	var stake *models.Stake
	err := transact(db, func(tx *gorm.DB) error {
		var pool models.StakingPool
		err := tx.First(&pool, poolID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationf("unknown staking pool %d", poolID)
		}
		if err != nil {
			return err
		}
		if !pool.Active {
			return validationf("staking pool %d is not active", pool.ID)
		}
		if amount.LessThan(pool.MinStake) {
			return validationf("stake %s below pool minimum %s", amount, pool.MinStake)
		}
		if pool.MaxStake.Sign() > 0 && amount.GreaterThan(pool.MaxStake) {
			return validationf("stake %s above pool maximum %s", amount, pool.MaxStake)
		}

		if err := TransferBalance(tx, owner, models.StakingVaultAddress, models.AssetShare, amount); err != nil {
			return err
		}

		stake = &models.Stake{
			Reference:      uuid.NewString(),
			OwnerAddress:   owner,
			PoolID:         poolID,
			Amount:         amount,
			StartTimestamp: now,
			AccruedReward:  decimal.Zero,
		}
		if err := tx.Create(stake).Error; err != nil {
			return err
		}

		return recordEvent(tx, models.EventStakeCreated, "info", owner, map[string]interface{}{
			"stake_id": stake.ID,
			"pool_id":  poolID,
			"amount":   amount.String(),
		})
	})
	if err != nil {
		return nil, err
	}
	return stake, nil
}

// WithdrawResult reports a settled withdrawal.
type WithdrawResult struct {
	Principal decimal.Decimal `json:"principal"`
	Reward    decimal.Decimal `json:"reward"`
	Penalty   decimal.Decimal `json:"penalty"`
	Emergency bool            `json:"emergency"`
}

// WithdrawStake settles a stake in full and destroys it. Before lock expiry
// the configured emergency-exit penalty is charged on principal plus the
// prorated reward and routed to the treasury sink; after expiry the full
// reward is paid with no penalty. Rewards come out of the treasury share
// balance, never fresh supply.
func WithdrawStake(db *gorm.DB, caller string, stakeID uint, now time.Time) (*WithdrawResult, error) {
	var result *WithdrawResult
	err := transact(db, func(tx *gorm.DB) error {
		var stake models.Stake
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Pool").First(&stake, stakeID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationf("unknown stake %d", stakeID)
		}
		if err != nil {
			return err
		}
		if stake.OwnerAddress != caller {
			return ErrAccessDenied
		}
		pool := stake.Pool
		if pool == nil {
			return validationf("stake %d references missing pool", stakeID)
		}

		gp, err := LockedGlobalParams(tx)
		if err != nil {
			return err
		}

		reward := StakeReward(&stake, pool, now)
		unlockAt := stake.StartTimestamp.Add(time.Duration(pool.LockPeriodSeconds) * time.Second)
		emergency := now.Before(unlockAt)

		penalty := decimal.Zero
		if emergency {
			penalty = BpsShare(stake.Amount.Add(reward), pool.EmergencyExitPenaltyBps)
		}

		if err := TransferBalance(tx, models.StakingVaultAddress, stake.OwnerAddress, models.AssetShare, stake.Amount); err != nil {
			return err
		}
		if reward.Sign() > 0 {
			if err := TransferBalance(tx, gp.TreasuryAddress, stake.OwnerAddress, models.AssetShare, reward); err != nil {
				return err
			}
		}
		if penalty.Sign() > 0 {
			if err := TransferBalance(tx, stake.OwnerAddress, gp.TreasuryAddress, models.AssetShare, penalty); err != nil {
				return err
			}
		}

		if err := tx.Delete(&stake).Error; err != nil {
			return err
		}

		result = &WithdrawResult{
			Principal: stake.Amount,
			Reward:    reward,
			Penalty:   penalty,
			Emergency: emergency,
		}
		return recordEvent(tx, models.EventStakeWithdrawn, "info", stake.OwnerAddress, map[string]interface{}{
			"stake_id":  stakeID,
			"principal": stake.Amount.String(),
			"reward":    reward.String(),
			"penalty":   penalty.String(),
			"emergency": emergency,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SnapshotStakeRewards refreshes the persisted accrued-reward column for
// every open stake. Display-only; settlement recomputes from scratch.
func SnapshotStakeRewards(db *gorm.DB, now time.Time) (int, error) {
	var stakes []models.Stake
	if err := db.Preload("Pool").Find(&stakes).Error; err != nil {
		return 0, err
	}
	updated := 0
	for i := range stakes {
		if stakes[i].Pool == nil {
			continue
		}
		reward := StakeReward(&stakes[i], stakes[i].Pool, now)
		if reward.Equal(stakes[i].AccruedReward) {
			continue
		}
		if err := db.Model(&stakes[i]).Update("accrued_reward", reward).Error; err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// StakesFor lists an owner's open stakes.
func StakesFor(db *gorm.DB, owner string) ([]models.Stake, error) {
	var stakes []models.Stake
	err := db.Preload("Pool").Where("owner_address = ?", owner).Order("id").Find(&stakes).Error
	return stakes, err
}
