// Package amm implements the constant-product pool the settlement core pairs
// liquidity into. All math is big.Int on integer base units; division always
// truncates toward zero.
package amm

import (
	"errors"
	"math/big"
	"time"
)

var (
	ErrZeroAmount            = errors.New("amm: zero amount")
	ErrInsufficientLiquidity = errors.New("amm: insufficient counter-liquidity")
	ErrDeadlineExpired       = errors.New("amm: deadline expired")
	ErrSlippage              = errors.New("amm: slippage bound breached")
)

// Pool holds the reserves of a deposit/share constant-product pair.
// Side A is the deposit asset, side B the share token.
type Pool struct {
	ReserveA *big.Int
	ReserveB *big.Int
	LpSupply *big.Int
}

// Quote returns the amount of B that matches amountA at the current reserve
// ratio: amountA * reserveB / reserveA.
func (p *Pool) Quote(amountA *big.Int) (*big.Int, error) {
	if amountA == nil || amountA.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if p.ReserveA.Sign() == 0 || p.ReserveB.Sign() == 0 {
		return nil, ErrInsufficientLiquidity
	}
	out := new(big.Int).Mul(amountA, p.ReserveB)
	return out.Quo(out, p.ReserveA), nil
}

// AddLiquidity pairs up to (amountA, amountB) into the pool. The side that
// exceeds the current ratio is scaled down to match; if the scaled amount
// falls below its minimum the call fails with ErrSlippage and the pool is
// left untouched. Returns the amounts actually used and the LP tokens issued.
func (p *Pool) AddLiquidity(amountA, amountB, minA, minB *big.Int, deadline, now time.Time) (usedA, usedB, liquidity *big.Int, err error) {
	if amountA == nil || amountB == nil || amountA.Sign() <= 0 || amountB.Sign() <= 0 {
		return nil, nil, nil, ErrZeroAmount
	}
	if !deadline.IsZero() && now.After(deadline) {
		return nil, nil, nil, ErrDeadlineExpired
	}

	if p.ReserveA.Sign() == 0 && p.ReserveB.Sign() == 0 {
		// First provision sets the ratio.
		usedA = new(big.Int).Set(amountA)
		usedB = new(big.Int).Set(amountB)
		liquidity = new(big.Int).Sqrt(new(big.Int).Mul(usedA, usedB))
	} else {
		if p.ReserveA.Sign() == 0 || p.ReserveB.Sign() == 0 {
			return nil, nil, nil, ErrInsufficientLiquidity
		}
		bOptimal := new(big.Int).Mul(amountA, p.ReserveB)
		bOptimal.Quo(bOptimal, p.ReserveA)
		if bOptimal.Cmp(amountB) <= 0 {
			if minB != nil && bOptimal.Cmp(minB) < 0 {
				return nil, nil, nil, ErrSlippage
			}
			usedA = new(big.Int).Set(amountA)
			usedB = bOptimal
		} else {
			aOptimal := new(big.Int).Mul(amountB, p.ReserveA)
			aOptimal.Quo(aOptimal, p.ReserveB)
			if minA != nil && aOptimal.Cmp(minA) < 0 {
				return nil, nil, nil, ErrSlippage
			}
			usedA = aOptimal
			usedB = new(big.Int).Set(amountB)
		}

		la := new(big.Int).Mul(usedA, p.LpSupply)
		la.Quo(la, p.ReserveA)
		lb := new(big.Int).Mul(usedB, p.LpSupply)
		lb.Quo(lb, p.ReserveB)
		liquidity = la
		if lb.Cmp(la) < 0 {
			liquidity = lb
		}
	}

	if usedA.Sign() == 0 || usedB.Sign() == 0 || liquidity.Sign() == 0 {
		return nil, nil, nil, ErrInsufficientLiquidity
	}

	p.ReserveA = new(big.Int).Add(p.ReserveA, usedA)
	p.ReserveB = new(big.Int).Add(p.ReserveB, usedB)
	p.LpSupply = new(big.Int).Add(p.LpSupply, liquidity)
	return usedA, usedB, liquidity, nil
}

// AmountOut simulates a swap of amountIn against (reserveIn, reserveOut)
// with a feeBps fee on the input side.
func AmountOut(amountIn, reserveIn, reserveOut *big.Int, feeBps uint) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if reserveIn.Sign() == 0 || reserveOut.Sign() == 0 {
		return nil, ErrInsufficientLiquidity
	}
	inWithFee := new(big.Int).Mul(amountIn, big.NewInt(int64(10000-feeBps)))
	numerator := new(big.Int).Mul(inWithFee, reserveOut)
	denominator := new(big.Int).Mul(reserveIn, big.NewInt(10000))
	denominator.Add(denominator, inWithFee)
	return numerator.Quo(numerator, denominator), nil
}
