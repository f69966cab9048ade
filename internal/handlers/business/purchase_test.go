package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAllocationExactSplit(t *testing.T) {
	// 100 USDT (6 decimals) at 0.5 per share, 70% vested.
	alloc, err := ComputeAllocation(dec("100000000"), dec("500000"), 6, 18, 7000)
	require.NoError(t, err)

	assert.Equal(t, dec("200000000000000000000"), alloc.TotalShareTokens)
	assert.Equal(t, dec("140000000000000000000"), alloc.VestedShareTokens)
	assert.Equal(t, dec("60000000000000000000"), alloc.PoolShareTokens)
	assert.Equal(t, dec("70000000"), alloc.DepositToVesting)
	assert.Equal(t, dec("30000000"), alloc.DepositToPool)

	// Treasury subsidy is on top of the buyer allocation, not carved out.
	assert.Equal(t, dec("10000000000000000000"), alloc.TreasuryShareTokens)
}

func TestComputeAllocationNoRemainderLoss(t *testing.T) {
	// Awkward amounts: floor remainders land on the pool side, never vanish.
	cases := []struct {
		entryCost  string
		rate       string
		vestingBps uint
	}{
		{"99999999", "333333", 7000},
		{"1", "1", 1},
		{"1000001", "999999", 9999},
		{"123456789", "777777", 5000},
	}
	for _, tc := range cases {
		alloc, err := ComputeAllocation(dec(tc.entryCost), dec(tc.rate), 6, 18, tc.vestingBps)
		require.NoError(t, err)

		sumTokens := alloc.VestedShareTokens.Add(alloc.PoolShareTokens)
		assert.True(t, sumTokens.Equal(alloc.TotalShareTokens),
			"token split must be exact for entryCost=%s", tc.entryCost)

		sumDeposit := alloc.DepositToVesting.Add(alloc.DepositToPool)
		assert.True(t, sumDeposit.Equal(dec(tc.entryCost)),
			"deposit split must be exact for entryCost=%s", tc.entryCost)
	}
}

func TestComputeAllocationRejectsBadBps(t *testing.T) {
	_, err := ComputeAllocation(dec("1000"), dec("1"), 0, 0, 10001)
	assert.True(t, IsValidation(err))
}

func TestComputeAllocationRejectsZeroShares(t *testing.T) {
	// A rate above entryCost·10^shareScale floors the conversion to zero:
	// the deposit legs would then be split with no share pairing to
	// receive them, so the purchase must be rejected up front.
	_, err := ComputeAllocation(dec("1000"), dec("2000"), 0, 0, 5000)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestReferralRewardUsesBuyerOnlyBase(t *testing.T) {
	// 500 bps on a 1000-token purchase pays exactly 50. The historical defect
	// used the treasury-inflated mint total as the base and paid 52.5.
	alloc, err := ComputeAllocation(dec("1000"), dec("1"), 0, 0, 7000)
	require.NoError(t, err)
	require.Equal(t, dec("1000"), alloc.TotalShareTokens)

	reward := ReferralReward(alloc, 500)
	assert.Equal(t, dec("50"), reward)

	inflated := alloc.TotalShareTokens.Add(alloc.TreasuryShareTokens)
	assert.False(t, BpsShare(inflated, 500).Equal(reward),
		"regression guard: reward base must exclude the treasury subsidy")
}

func TestReferralRewardZeroFraction(t *testing.T) {
	alloc, err := ComputeAllocation(dec("1000"), dec("1"), 0, 0, 0)
	require.NoError(t, err)
	assert.True(t, ReferralReward(alloc, 0).IsZero())
}
