package business

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestToShareUnitsRoundTrip(t *testing.T) {
	// 100 units of a 6-decimal deposit asset at 0.5 deposit/share buys
	// 200 whole shares of an 18-decimal token.
	shares, err := ToShareUnits(dec("100000000"), dec("500000"), 6, 18)
	require.NoError(t, err)
	assert.Equal(t, dec("200000000000000000000"), shares)
}

func TestToShareUnitsSameScale(t *testing.T) {
	shares, err := ToShareUnits(dec("2000000"), dec("1000000"), 6, 6)
	require.NoError(t, err)
	assert.Equal(t, dec("2000000"), shares)
}

func TestToShareUnitsTruncatesTowardZero(t *testing.T) {
	// 10/3 shares never rounds up in the buyer's favor.
	shares, err := ToShareUnits(dec("10"), dec("3"), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, dec("3"), shares)
}

func TestToShareUnitsMonotonic(t *testing.T) {
	prev := decimal.Zero
	for _, amount := range []string{"1000000", "2000000", "5000000", "100000000"} {
		shares, err := ToShareUnits(dec(amount), dec("500000"), 6, 18)
		require.NoError(t, err)
		assert.True(t, shares.GreaterThanOrEqual(prev), "monotonic in deposit amount")
		prev = shares
	}

	prevRate := decimal.Decimal{}
	for i, rate := range []string{"250000", "500000", "1000000"} {
		shares, err := ToShareUnits(dec("100000000"), dec(rate), 6, 18)
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, shares.LessThanOrEqual(prevRate), "monotonic decreasing in rate")
		}
		prevRate = shares
	}
}

func TestToShareUnitsRejectsBadRate(t *testing.T) {
	_, err := ToShareUnits(dec("100"), decimal.Zero, 6, 18)
	assert.True(t, IsValidation(err))

	_, err = ToShareUnits(dec("100"), dec("-5"), 6, 18)
	assert.True(t, IsValidation(err))
}

func TestToShareUnitsRejectsBadScale(t *testing.T) {
	_, err := ToShareUnits(dec("100"), dec("1"), -1, 18)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = ToShareUnits(dec("100"), dec("1"), 6, 100)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestBpsShare(t *testing.T) {
	assert.Equal(t, dec("50"), BpsShare(dec("1000"), 500))
	assert.Equal(t, dec("0"), BpsShare(dec("1"), 500))
	assert.Equal(t, dec("1000"), BpsShare(dec("1000"), 10000))
	assert.Equal(t, dec("0"), BpsShare(dec("1000"), 0))

	// Floor division, never round-half-up.
	assert.Equal(t, dec("2"), BpsShare(dec("5999"), 5))
}

func TestMulDivFloor(t *testing.T) {
	v, err := MulDivFloor(dec("10"), dec("10"), dec("3"))
	require.NoError(t, err)
	assert.Equal(t, dec("33"), v)

	_, err = MulDivFloor(dec("10"), dec("10"), decimal.Zero)
	assert.ErrorIs(t, err, ErrOverflow)
}
