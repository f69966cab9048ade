package business

import (
	"errors"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/amm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxSlippageToleranceBps caps the admin-tunable slippage tolerance so it
// cannot be configured away entirely.
const MaxSlippageToleranceBps = 1000

// LiquidityReceipt reports a successful pairing. Dust is whatever the pool
// ratio could not absorb; the purchase engine routes it to the treasury.
type LiquidityReceipt struct {
	UsedDeposit decimal.Decimal `json:"used_deposit"`
	UsedShare   decimal.Decimal `json:"used_share"`
	LpTokens    decimal.Decimal `json:"lp_tokens"`
	DepositDust decimal.Decimal `json:"deposit_dust"`
	ShareDust   decimal.Decimal `json:"share_dust"`
}

// addLiquidity pairs (depositAmount, shareAmount) into the pool with minimum
// amounts derived from maxSlippageBps. A refused pairing comes back as a
// LiquidityFailure value so the caller can fall back instead of aborting;
// only storage errors propagate as errors.
func addLiquidity(tx *gorm.DB, depositAmount, shareAmount decimal.Decimal, maxSlippageBps uint, deadlineWindowSeconds int64, now time.Time) (*LiquidityReceipt, *LiquidityFailure, error) {
	if maxSlippageBps > MaxSlippageToleranceBps {
		maxSlippageBps = MaxSlippageToleranceBps
	}

	var state models.PoolState
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&state, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &LiquidityFailure{
			Reason: LiquidityReasonNoLiquidity,
			Detail: "pool not provisioned",
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	pool := &amm.Pool{
		ReserveA: state.DepositReserve.BigInt(),
		ReserveB: state.ShareReserve.BigInt(),
		LpSupply: state.LpSupply.BigInt(),
	}

	minDeposit := BpsShare(depositAmount, BpsDenominator-maxSlippageBps)
	minShare := BpsShare(shareAmount, BpsDenominator-maxSlippageBps)
	deadline := now.Add(time.Duration(deadlineWindowSeconds) * time.Second)

	usedA, usedB, lp, err := pool.AddLiquidity(
		depositAmount.BigInt(), shareAmount.BigInt(),
		minDeposit.BigInt(), minShare.BigInt(),
		deadline, now,
	)
	if err != nil {
		reason := LiquidityReasonNoLiquidity
		switch {
		case errors.Is(err, amm.ErrSlippage):
			reason = LiquidityReasonSlippage
		case errors.Is(err, amm.ErrDeadlineExpired):
			reason = LiquidityReasonDeadline
		}
		return nil, &LiquidityFailure{Reason: reason, Detail: err.Error()}, nil
	}

	state.DepositReserve = decimal.NewFromBigInt(pool.ReserveA, 0)
	state.ShareReserve = decimal.NewFromBigInt(pool.ReserveB, 0)
	state.LpSupply = decimal.NewFromBigInt(pool.LpSupply, 0)
	if err := tx.Save(&state).Error; err != nil {
		return nil, nil, err
	}

	receipt := &LiquidityReceipt{
		UsedDeposit: decimal.NewFromBigInt(usedA, 0),
		UsedShare:   decimal.NewFromBigInt(usedB, 0),
		LpTokens:    decimal.NewFromBigInt(lp, 0),
	}
	receipt.DepositDust = depositAmount.Sub(receipt.UsedDeposit)
	receipt.ShareDust = shareAmount.Sub(receipt.UsedShare)
	return receipt, nil, nil
}

// SetSlippageTolerance updates the global slippage tolerance. Admin only,
// bounded by MaxSlippageToleranceBps.
func SetSlippageTolerance(db *gorm.DB, caller string, bps uint) error {
	if err := RequireCapability(db, caller, models.CapAdmin); err != nil {
		return err
	}
	if bps > MaxSlippageToleranceBps {
		return validationf("slippage tolerance %d exceeds cap %d", bps, MaxSlippageToleranceBps)
	}
	return db.Model(&models.GlobalParams{}).Where("id = 1").
		Update("slippage_tolerance_bps", bps).Error
}
