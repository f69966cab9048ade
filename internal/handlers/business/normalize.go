package business

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// BpsDenominator is the divisor for all basis-point rate fields.
const BpsDenominator = 10000

const maxScale = 77 // numeric(78,0) column bound

func pow10(scale int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
}

// ToShareUnits converts a deposit-asset amount into share-token base units at
// the given exchange rate. The rate is expressed in deposit base units per
// whole share, so the deposit scale cancels and the share scale must be
// applied explicitly: shares = depositAmount * 10^shareScale / exchangeRate,
// floored. Skipping the 10^shareScale factor over-issues by orders of
// magnitude whenever the two assets disagree on precision.
func ToShareUnits(depositAmount, exchangeRate decimal.Decimal, depositScale, shareScale int32) (decimal.Decimal, error) {
	if depositScale < 0 || depositScale > maxScale || shareScale < 0 || shareScale > maxScale {
		return decimal.Zero, fmt.Errorf("%w: scale out of range", ErrOverflow)
	}
	if exchangeRate.Sign() <= 0 {
		return decimal.Zero, validationf("exchange rate must be positive")
	}
	if depositAmount.Sign() < 0 {
		return decimal.Zero, validationf("deposit amount must not be negative")
	}

	shares := new(big.Int).Mul(depositAmount.BigInt(), pow10(shareScale))
	shares.Quo(shares, exchangeRate.BigInt())
	return decimal.NewFromBigInt(shares, 0), nil
}

// BpsShare returns floor(amount * bps / 10000).
func BpsShare(amount decimal.Decimal, bps uint) decimal.Decimal {
	n := new(big.Int).Mul(amount.BigInt(), big.NewInt(int64(bps)))
	n.Quo(n, big.NewInt(BpsDenominator))
	return decimal.NewFromBigInt(n, 0)
}

// MulDivFloor returns floor(amount * num / den).
func MulDivFloor(amount, num, den decimal.Decimal) (decimal.Decimal, error) {
	if den.Sign() == 0 {
		return decimal.Zero, fmt.Errorf("%w: division by zero", ErrOverflow)
	}
	n := new(big.Int).Mul(amount.BigInt(), num.BigInt())
	n.Quo(n, den.BigInt())
	return decimal.NewFromBigInt(n, 0), nil
}
