package business

import (
	"errors"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	log "github.com/sirupsen/logrus"
)

// TreasuryFractionBps is the protocol-level treasury subsidy minted on top of
// every purchase. It funds referral payouts and is never carved out of the
// buyer's allocation.
const TreasuryFractionBps = 500

// AssetLP is the ledger asset for pool LP tokens held by the treasury.
const AssetLP = "lp"

// PurchaseInput describes one purchase attempt.
type PurchaseInput struct {
	Buyer     string
	PackageID uint
	Referrer  string
	// Deadline, when set, rejects the purchase if settlement starts after it.
	Deadline time.Time
	// Escrowed is set by the purchase-on-behalf flow: the payment bridge has
	// already collected this deposit amount off-ledger, so the buyer's
	// deposit balance is not debited. It must equal the package entry cost.
	Escrowed *decimal.Decimal
}

// Allocation is the exact split of one purchase. The two exactness
// invariants hold by construction: vested + pool share tokens add up to the
// total, and the two deposit legs add up to the entry cost.
type Allocation struct {
	TotalShareTokens    decimal.Decimal `json:"total_share_tokens"`
	VestedShareTokens   decimal.Decimal `json:"vested_share_tokens"`
	PoolShareTokens     decimal.Decimal `json:"pool_share_tokens"`
	TreasuryShareTokens decimal.Decimal `json:"treasury_share_tokens"`
	DepositToVesting    decimal.Decimal `json:"deposit_to_vesting"`
	DepositToPool       decimal.Decimal `json:"deposit_to_pool"`
}

// ComputeAllocation derives the token and deposit splits for a package
// purchase. The vested legs floor-divide; the pool legs take the remainder so
// nothing is lost. An entry cost too small to convert into a single share
// unit is rejected: with zero share tokens the deposit legs would have no
// pairing to land in.
func ComputeAllocation(entryCost, exchangeRate decimal.Decimal, depositScale, shareScale int32, vestingFractionBps uint) (*Allocation, error) {
	if vestingFractionBps > BpsDenominator {
		return nil, validationf("vesting fraction %d exceeds %d bps", vestingFractionBps, BpsDenominator)
	}
	total, err := ToShareUnits(entryCost, exchangeRate, depositScale, shareScale)
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return nil, validationf("entry cost %s converts to zero share tokens at rate %s", entryCost, exchangeRate)
	}

	a := &Allocation{TotalShareTokens: total}
	a.VestedShareTokens = BpsShare(total, vestingFractionBps)
	a.PoolShareTokens = total.Sub(a.VestedShareTokens)
	a.DepositToVesting = BpsShare(entryCost, vestingFractionBps)
	a.DepositToPool = entryCost.Sub(a.DepositToVesting)
	a.TreasuryShareTokens = BpsShare(total, TreasuryFractionBps)
	return a, nil
}

// ReferralReward is the payout owed a referrer: a fraction of the buyer's own
// allocation, never of the treasury-inflated mint total.
func ReferralReward(a *Allocation, referralFractionBps uint) decimal.Decimal {
	return BpsShare(a.TotalShareTokens, referralFractionBps)
}

// PurchaseOutcome is the typed result of a finalized purchase: full success,
// degraded success (liquidity fallback) or, via error, rejection.
type PurchaseOutcome struct {
	Record           *models.PurchaseRecord `json:"record"`
	Allocation       *Allocation            `json:"allocation"`
	Receipt          *LiquidityReceipt      `json:"liquidity_receipt,omitempty"`
	LiquidityFailure *LiquidityFailure      `json:"liquidity_failure,omitempty"`
	Degraded         bool                   `json:"degraded"`
	ReferralReward   decimal.Decimal        `json:"referral_reward"`
	ReferralPaid     bool                   `json:"referral_paid"`
	ReferralError    string                 `json:"referral_error,omitempty"`
}

// ExecutePurchase runs one purchase as a single unit of work. Validation and
// funds failures roll everything back; the liquidity step may branch into its
// treasury fallback and the referral payout may fail softly, neither of which
// aborts the purchase.
func ExecutePurchase(db *gorm.DB, in PurchaseInput, now time.Time) (*PurchaseOutcome, error) {
	if in.Buyer == "" {
		return nil, validationf("buyer address must not be empty")
	}
	if in.Referrer == in.Buyer {
		in.Referrer = ""
	}

	outcome := &PurchaseOutcome{ReferralReward: decimal.Zero}
	err := transact(db, func(tx *gorm.DB) error {
		// Step 1: package and deadline validation, before any funds move.
		var pkg models.Package
		err := tx.First(&pkg, in.PackageID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationf("unknown package %d", in.PackageID)
		}
		if err != nil {
			return err
		}
		if !pkg.Active {
			return validationf("package %d is not active", pkg.ID)
		}
		if !in.Deadline.IsZero() && now.After(in.Deadline) {
			return validationf("purchase deadline expired")
		}

		gp, err := LockedGlobalParams(tx)
		if err != nil {
			return err
		}

		// Step 2: collect the entry cost.
		if in.Escrowed != nil {
			if !in.Escrowed.Equal(pkg.EntryCost) {
				return validationf("escrowed amount %s does not match entry cost %s", in.Escrowed, pkg.EntryCost)
			}
		} else {
			if err := DebitBalance(tx, in.Buyer, models.AssetDeposit, pkg.EntryCost); err != nil {
				return err
			}
		}

		// Steps 3-6: exact splits.
		alloc, err := ComputeAllocation(pkg.EntryCost, pkg.ExchangeRate, gp.DepositScale, gp.ShareScale, pkg.VestingFractionBps)
		if err != nil {
			return err
		}
		outcome.Allocation = alloc

		if err := mintShares(tx, gp, models.VestingVaultAddress, alloc.VestedShareTokens); err != nil {
			return err
		}
		if err := mintShares(tx, gp, gp.TreasuryAddress, alloc.TreasuryShareTokens); err != nil {
			return err
		}
		// The pool leg is minted directly into the pairing; whatever the pool
		// cannot absorb lands in the treasury below.
		gp.CirculatingSupply = gp.CirculatingSupply.Add(alloc.PoolShareTokens)

		// Step 7: lock the vested leg. The matching deposit leg backs the
		// grant from the treasury.
		if alloc.VestedShareTokens.Sign() > 0 {
			if _, err := LockVesting(tx, in.Buyer, alloc.VestedShareTokens, pkg.CliffSeconds, pkg.DurationSeconds, now); err != nil {
				return err
			}
		}
		if err := CreditBalance(tx, gp.TreasuryAddress, models.AssetDeposit, alloc.DepositToVesting); err != nil {
			return err
		}

		// Step 8: liquidity pairing, with treasury fallback.
		if alloc.DepositToPool.Sign() > 0 && alloc.PoolShareTokens.Sign() > 0 {
			receipt, failure, err := addLiquidity(tx, alloc.DepositToPool, alloc.PoolShareTokens, gp.SlippageToleranceBps, gp.DeadlineWindowSeconds, now)
			if err != nil {
				return err
			}
			if failure != nil {
				outcome.Degraded = true
				outcome.LiquidityFailure = failure
				// The intended pool legs go to the treasury, once.
				if err := CreditBalance(tx, gp.TreasuryAddress, models.AssetDeposit, alloc.DepositToPool); err != nil {
					return err
				}
				if err := CreditBalance(tx, gp.TreasuryAddress, models.AssetShare, alloc.PoolShareTokens); err != nil {
					return err
				}
			} else {
				outcome.Receipt = receipt
				if err := CreditBalance(tx, gp.TreasuryAddress, AssetLP, receipt.LpTokens); err != nil {
					return err
				}
				if err := CreditBalance(tx, gp.TreasuryAddress, models.AssetDeposit, receipt.DepositDust); err != nil {
					return err
				}
				if err := CreditBalance(tx, gp.TreasuryAddress, models.AssetShare, receipt.ShareDust); err != nil {
					return err
				}
			}
		}

		// Step 10 (record) happens before step 9 settles so the payout row
		// can reference the purchase.
		record := &models.PurchaseRecord{
			Reference:           uuid.NewString(),
			BuyerAddress:        in.Buyer,
			PackageID:           pkg.ID,
			ReferrerAddress:     in.Referrer,
			TotalShareTokens:    alloc.TotalShareTokens,
			VestedShareTokens:   alloc.VestedShareTokens,
			PoolShareTokens:     alloc.PoolShareTokens,
			TreasuryShareTokens: alloc.TreasuryShareTokens,
			DepositToPool:       alloc.DepositToPool,
			DepositToVesting:    alloc.DepositToVesting,
			LiquidityFallback:   outcome.Degraded,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		outcome.Record = record

		// Step 9: referral payout from the treasury's pre-funded balance.
		// Best-effort: an under-funded treasury defers the payout, it never
		// aborts the purchase.
		if in.Referrer != "" && pkg.ReferralFractionBps > 0 {
			reward := ReferralReward(alloc, pkg.ReferralFractionBps)
			outcome.ReferralReward = reward
			if reward.Sign() > 0 {
				if err := settleReferral(tx, gp.TreasuryAddress, record, reward, outcome); err != nil {
					return err
				}
			}
		}
		if outcome.ReferralPaid {
			record.ReferralPaid = true
			if err := tx.Model(record).Update("referral_paid", true).Error; err != nil {
				return err
			}
		}

		if err := bumpBuyerStats(tx, in.Buyer, pkg.EntryCost, alloc.TotalShareTokens); err != nil {
			return err
		}
		if err := tx.Save(gp).Error; err != nil {
			return err
		}
		if !pkg.Referenced {
			if err := tx.Model(&pkg).Update("referenced", true).Error; err != nil {
				return err
			}
		}

		kind, level := models.EventPurchaseCompleted, "info"
		payload := map[string]interface{}{
			"reference":          record.Reference,
			"package_id":         pkg.ID,
			"total_share_tokens": alloc.TotalShareTokens.String(),
			"referral_paid":      outcome.ReferralPaid,
		}
		if outcome.Degraded {
			kind, level = models.EventPurchaseDegraded, "warning"
			payload["liquidity_failure"] = outcome.LiquidityFailure.Reason
		}
		return recordEvent(tx, kind, level, in.Buyer, payload)
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// settleReferral pays the reward out of the treasury share balance, or books
// a failed payout for the retry worker when the treasury cannot cover it.
func settleReferral(tx *gorm.DB, treasury string, record *models.PurchaseRecord, reward decimal.Decimal, outcome *PurchaseOutcome) error {
	available, err := GetBalance(tx, treasury, models.AssetShare)
	if err != nil {
		return err
	}

	payout := models.ReferralPayout{
		PurchaseID:      record.ID,
		ReferrerAddress: record.ReferrerAddress,
		Reward:          reward,
	}
	if available.LessThan(reward) {
		payout.Status = models.ReferralStatusFailed
		payout.LastError = "treasury under-funded"
		outcome.ReferralError = payout.LastError
		log.Warnf("referral payout deferred for purchase %s: treasury holds %s, needs %s", record.Reference, available, reward)
		if err := tx.Create(&payout).Error; err != nil {
			return err
		}
		return recordEvent(tx, models.EventReferralFailed, "warning", record.ReferrerAddress, map[string]interface{}{
			"purchase": record.Reference,
			"reward":   reward.String(),
		})
	}

	if err := TransferBalance(tx, treasury, record.ReferrerAddress, models.AssetShare, reward); err != nil {
		return err
	}
	payout.Status = models.ReferralStatusPaid
	if err := tx.Create(&payout).Error; err != nil {
		return err
	}
	if err := bumpReferrerStats(tx, record.ReferrerAddress, reward); err != nil {
		return err
	}
	outcome.ReferralPaid = true
	return recordEvent(tx, models.EventReferralPaid, "info", record.ReferrerAddress, map[string]interface{}{
		"purchase": record.Reference,
		"reward":   reward.String(),
	})
}

func bumpBuyerStats(tx *gorm.DB, buyer string, invested, shareTokens decimal.Decimal) error {
	stats, err := statsRow(tx, buyer)
	if err != nil {
		return err
	}
	stats.TotalInvested = stats.TotalInvested.Add(invested)
	stats.TotalShareTokens = stats.TotalShareTokens.Add(shareTokens)
	stats.PurchaseCount++
	return tx.Save(stats).Error
}

// bumpReferrerStats credits the reward to the referrer's statistics only.
// The buyer's invested totals never include someone else's reward.
func bumpReferrerStats(tx *gorm.DB, referrer string, reward decimal.Decimal) error {
	stats, err := statsRow(tx, referrer)
	if err != nil {
		return err
	}
	stats.ReferralRewardsEarned = stats.ReferralRewardsEarned.Add(reward)
	stats.ReferralCount++
	return tx.Save(stats).Error
}

func statsRow(tx *gorm.DB, address string) (*models.AccountStats, error) {
	var stats models.AccountStats
	err := tx.Where("address = ?", address).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = models.AccountStats{
			Address:               address,
			TotalInvested:         decimal.Zero,
			TotalShareTokens:      decimal.Zero,
			ReferralRewardsEarned: decimal.Zero,
		}
		if err := tx.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// RetryFailedReferrals re-attempts deferred referral payouts that the
// treasury can now cover. Called by the worker on a schedule.
func RetryFailedReferrals(db *gorm.DB) (retried int, err error) {
	var pending []models.ReferralPayout
	if err := db.Where("status = ?", models.ReferralStatusFailed).
		Order("id").Limit(100).Find(&pending).Error; err != nil {
		return 0, err
	}

	for i := range pending {
		payout := &pending[i]
		err := transact(db, func(tx *gorm.DB) error {
			gp, err := LockedGlobalParams(tx)
			if err != nil {
				return err
			}
			available, err := GetBalance(tx, gp.TreasuryAddress, models.AssetShare)
			if err != nil {
				return err
			}
			if available.LessThan(payout.Reward) {
				return ErrInsufficientFunds
			}
			if err := TransferBalance(tx, gp.TreasuryAddress, payout.ReferrerAddress, models.AssetShare, payout.Reward); err != nil {
				return err
			}
			if err := bumpReferrerStats(tx, payout.ReferrerAddress, payout.Reward); err != nil {
				return err
			}
			if err := tx.Model(payout).Updates(map[string]interface{}{
				"status":     models.ReferralStatusPaid,
				"attempts":   payout.Attempts + 1,
				"last_error": "",
			}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.PurchaseRecord{}).Where("id = ?", payout.PurchaseID).
				Update("referral_paid", true).Error; err != nil {
				return err
			}
			return recordEvent(tx, models.EventReferralPaid, "info", payout.ReferrerAddress, map[string]interface{}{
				"purchase_id": payout.PurchaseID,
				"reward":      payout.Reward.String(),
				"retried":     true,
			})
		})
		if errors.Is(err, ErrInsufficientFunds) {
			continue
		}
		if err != nil {
			return retried, err
		}
		retried++
	}
	return retried, nil
}
