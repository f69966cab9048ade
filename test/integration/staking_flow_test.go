package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStakingFlow creates a pool, stakes share tokens and exits early,
// checking the emergency penalty path. Shares are sourced from the treasury,
// which holds them after the preceding purchase tests.
func TestStakingFlow(t *testing.T) {
	staker := "0xstaker-integration"
	stakeAmount := "1000000000000000000"
	var poolID, stakeID uint

	t.Run("Create Staking Pool", func(t *testing.T) {
		resp := postJSON(t, "/staking-pool-config", AdminAddress, map[string]interface{}{
			"name":                       "Gold 1h",
			"lock_period_seconds":        3600,
			"apy_bps":                    1200,
			"min_stake":                  "1",
			"max_stake":                  "0",
			"reward_multiplier_bps":      10000,
			"emergency_exit_penalty_bps": 1000,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var pool struct {
			ID uint `json:"id"`
		}
		decode(t, resp, &pool)
		require.NotZero(t, pool.ID)
		poolID = pool.ID
	})

	t.Run("Fund Staker From Treasury", func(t *testing.T) {
		treasury := getTreasuryStats(t)
		require.NotEmpty(t, treasury.TreasuryAddress)

		// Treasury transfers are tax exempt, so the full amount arrives.
		resp := postJSON(t, "/balances/transfer", treasury.TreasuryAddress, map[string]interface{}{
			"to":     staker,
			"amount": stakeAmount,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Fee string `json:"fee"`
		}
		decode(t, resp, &result)
		assert.Equal(t, "0", result.Fee)
	})

	t.Run("Stake", func(t *testing.T) {
		resp := postJSON(t, "/staking/stake", staker, map[string]interface{}{
			"pool_id": poolID,
			"amount":  stakeAmount,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var stake struct {
			ID     uint   `json:"id"`
			Amount string `json:"amount"`
		}
		decode(t, resp, &stake)
		require.NotZero(t, stake.ID)
		assert.Equal(t, stakeAmount, stake.Amount)
		stakeID = stake.ID
	})

	t.Run("Stake Rejected Without Funds", func(t *testing.T) {
		resp := postJSON(t, "/staking/stake", staker, map[string]interface{}{
			"pool_id": poolID,
			"amount":  stakeAmount,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	})

	t.Run("Stake Visible", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/staking/account/%s", BaseURL, staker))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var stakes []struct {
			Stake struct {
				ID uint `json:"id"`
			} `json:"stake"`
		}
		decode(t, resp, &stakes)
		require.NotEmpty(t, stakes)
		assert.Equal(t, stakeID, stakes[0].Stake.ID)
	})

	t.Run("Emergency Withdraw Charges Penalty", func(t *testing.T) {
		resp := postJSON(t, fmt.Sprintf("/staking/withdraw/%d", stakeID), staker, map[string]interface{}{})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Principal string `json:"principal"`
			Penalty   string `json:"penalty"`
			Emergency bool   `json:"emergency"`
		}
		decode(t, resp, &result)
		assert.True(t, result.Emergency)
		assert.Equal(t, stakeAmount, result.Principal)
		assert.NotEqual(t, "0", result.Penalty)
	})

	t.Run("Stake Gone After Withdrawal", func(t *testing.T) {
		resp := postJSON(t, fmt.Sprintf("/staking/withdraw/%d", stakeID), staker, map[string]interface{}{})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
