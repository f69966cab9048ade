package business

import (
	"testing"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStakeRewardSimpleAPY(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stake := &models.Stake{Amount: dec("1000000"), StartTimestamp: start}
	pool := &models.StakingPool{ApyBps: 1000, RewardMultiplierBps: 10000}

	// 10% APY for a full year on 1_000_000.
	reward := StakeReward(stake, pool, start.Add(365*24*time.Hour))
	assert.Equal(t, dec("100000"), reward)

	// Half a year, half the reward.
	reward = StakeReward(stake, pool, start.Add(365*12*time.Hour))
	assert.Equal(t, dec("50000"), reward)
}

func TestStakeRewardMultiplier(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stake := &models.Stake{Amount: dec("1000000"), StartTimestamp: start}
	pool := &models.StakingPool{ApyBps: 1000, RewardMultiplierBps: 15000}

	reward := StakeReward(stake, pool, start.Add(365*24*time.Hour))
	assert.Equal(t, dec("150000"), reward)
}

func TestStakeRewardBeforeStart(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stake := &models.Stake{Amount: dec("1000000"), StartTimestamp: start}
	pool := &models.StakingPool{ApyBps: 1000, RewardMultiplierBps: 10000}

	assert.True(t, StakeReward(stake, pool, start).IsZero())
	assert.True(t, StakeReward(stake, pool, start.Add(-time.Hour)).IsZero())
}

func TestStakeRewardFloors(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stake := &models.Stake{Amount: dec("3"), StartTimestamp: start}
	pool := &models.StakingPool{ApyBps: 10000, RewardMultiplierBps: 10000}

	// 3 * 1s / 31536000s floors to zero, no dust minted.
	assert.True(t, StakeReward(stake, pool, start.Add(time.Second)).IsZero())
}

func TestEmergencyExitPenalty(t *testing.T) {
	// Penalty applies to principal plus prorated reward.
	gross := dec("1000").Add(dec("100"))
	assert.Equal(t, dec("110"), BpsShare(gross, 1000))
}
