package amm

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(a, b, lp int64) *Pool {
	return &Pool{
		ReserveA: big.NewInt(a),
		ReserveB: big.NewInt(b),
		LpSupply: big.NewInt(lp),
	}
}

func TestQuote(t *testing.T) {
	p := newTestPool(1000, 4000, 2000)

	out, err := p.Quote(big.NewInt(250))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), out.Int64())

	// Truncates toward zero
	out, err = p.Quote(big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Int64())

	_, err = p.Quote(big.NewInt(0))
	assert.ErrorIs(t, err, ErrZeroAmount)

	empty := newTestPool(0, 0, 0)
	_, err = empty.Quote(big.NewInt(100))
	assert.ErrorIs(t, err, ErrInsufficientLiquidity)
}

func TestAddLiquidityBalanced(t *testing.T) {
	p := newTestPool(1000, 4000, 2000)

	usedA, usedB, lp, err := p.AddLiquidity(
		big.NewInt(100), big.NewInt(400),
		big.NewInt(99), big.NewInt(396),
		time.Time{}, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(100), usedA.Int64())
	assert.Equal(t, int64(400), usedB.Int64())
	assert.Equal(t, int64(200), lp.Int64())
	assert.Equal(t, int64(1100), p.ReserveA.Int64())
	assert.Equal(t, int64(4400), p.ReserveB.Int64())
	assert.Equal(t, int64(2200), p.LpSupply.Int64())
}

func TestAddLiquidityScalesExcessSide(t *testing.T) {
	p := newTestPool(1000, 4000, 2000)

	// B side over-supplied, scaled down to the pool ratio.
	usedA, usedB, _, err := p.AddLiquidity(
		big.NewInt(100), big.NewInt(900),
		nil, nil,
		time.Time{}, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(100), usedA.Int64())
	assert.Equal(t, int64(400), usedB.Int64())
}

func TestAddLiquiditySlippage(t *testing.T) {
	p := newTestPool(1000, 4000, 2000)
	before := new(big.Int).Set(p.ReserveA)

	// Pool ratio pairs only 400 B with 100 A, below the 450 minimum.
	_, _, _, err := p.AddLiquidity(
		big.NewInt(100), big.NewInt(900),
		big.NewInt(100), big.NewInt(450),
		time.Time{}, time.Now(),
	)
	assert.ErrorIs(t, err, ErrSlippage)
	assert.Equal(t, before, p.ReserveA, "failed add must not mutate reserves")
}

func TestAddLiquidityDeadline(t *testing.T) {
	p := newTestPool(1000, 4000, 2000)
	now := time.Now()

	_, _, _, err := p.AddLiquidity(
		big.NewInt(100), big.NewInt(400),
		nil, nil,
		now.Add(-time.Second), now,
	)
	assert.ErrorIs(t, err, ErrDeadlineExpired)
}

func TestAddLiquidityFirstProvision(t *testing.T) {
	p := newTestPool(0, 0, 0)

	usedA, usedB, lp, err := p.AddLiquidity(
		big.NewInt(400), big.NewInt(100),
		nil, nil,
		time.Time{}, time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(400), usedA.Int64())
	assert.Equal(t, int64(100), usedB.Int64())
	assert.Equal(t, int64(200), lp.Int64()) // sqrt(400*100)
}

func TestAmountOut(t *testing.T) {
	out, err := AmountOut(big.NewInt(1000), big.NewInt(100000), big.NewInt(100000), 30)
	require.NoError(t, err)
	// 997 effective in: 997*100000/(100000+997)
	assert.Equal(t, int64(987), out.Int64())

	_, err = AmountOut(big.NewInt(0), big.NewInt(1), big.NewInt(1), 0)
	assert.ErrorIs(t, err, ErrZeroAmount)
}
