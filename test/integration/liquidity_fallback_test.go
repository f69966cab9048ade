package integration

import (
	"fmt"
	"math/big"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type treasuryStats struct {
	TreasuryAddress   string `json:"treasury_address"`
	DepositBalance    string `json:"deposit_balance"`
	ShareBalance      string `json:"share_balance"`
	CirculatingSupply string `json:"circulating_supply"`
}

func getTreasuryStats(t *testing.T) treasuryStats {
	t.Helper()
	resp, err := http.Get(BaseURL + "/stats/treasury")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats treasuryStats
	decode(t, resp, &stats)
	return stats
}

func getDegradedCount(t *testing.T) int64 {
	t.Helper()
	resp, err := http.Get(BaseURL + "/stats/overview")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var overview struct {
		DegradedPurchaseCount int64 `json:"degraded_purchase_count"`
	}
	decode(t, resp, &overview)
	return overview.DegradedPurchaseCount
}

// TestLiquidityFallback drives a purchase against a pool whose price has
// moved outside the slippage tolerance and checks that the purchase still
// settles, with the pool leg routed to the treasury exactly once.
func TestLiquidityFallback(t *testing.T) {
	buyer := "0xbuyer-fallback"
	var packageID uint

	t.Run("Create Package", func(t *testing.T) {
		resp := postJSON(t, "/package-config", AdminAddress, map[string]interface{}{
			"name":                 "Growth",
			"entry_cost":           "100000000",
			"exchange_rate":        "500000",
			"vesting_fraction_bps": 7000,
			"cliff_seconds":        3600,
			"duration_seconds":     86400,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var pkg struct {
			ID uint `json:"id"`
		}
		decode(t, resp, &pkg)
		packageID = pkg.ID
	})

	t.Run("Provision Skewed Pool", func(t *testing.T) {
		// Twice the package exchange ratio, far beyond the 300 bps
		// default tolerance.
		resp := postJSON(t, "/amm/provision", AdminAddress, map[string]interface{}{
			"deposit_reserve": "30000000",
			"share_reserve":   "120000000000000000000",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Fund Buyer", func(t *testing.T) {
		resp := postJSON(t, "/balances/deposit", AdminAddress, map[string]interface{}{
			"address": buyer,
			"amount":  "100000000",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	before := getTreasuryStats(t)
	degradedBefore := getDegradedCount(t)

	t.Run("Purchase Degrades But Settles", func(t *testing.T) {
		resp := postJSON(t, "/purchase", buyer, map[string]interface{}{
			"package_id": packageID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Status  string `json:"status"`
			Outcome struct {
				Degraded         bool `json:"degraded"`
				LiquidityFailure *struct {
					Reason string `json:"reason"`
				} `json:"liquidity_failure"`
				Record struct {
					LiquidityFallback bool `json:"liquidity_fallback"`
				} `json:"record"`
			} `json:"outcome"`
		}
		decode(t, resp, &result)

		assert.Equal(t, "degraded", result.Status)
		assert.True(t, result.Outcome.Degraded)
		assert.True(t, result.Outcome.Record.LiquidityFallback)
		require.NotNil(t, result.Outcome.LiquidityFailure)
		assert.Equal(t, "slippage", result.Outcome.LiquidityFailure.Reason)
	})

	t.Run("Treasury Credited Exactly Once", func(t *testing.T) {
		after := getTreasuryStats(t)

		prev, ok := new(big.Int).SetString(before.DepositBalance, 10)
		require.True(t, ok)
		next, ok := new(big.Int).SetString(after.DepositBalance, 10)
		require.True(t, ok)

		// Entry cost in full: the vesting leg plus the diverted pool leg.
		delta := new(big.Int).Sub(next, prev)
		assert.Equal(t, "100000000", delta.String())

		assert.Equal(t, degradedBefore+1, getDegradedCount(t))
	})

	t.Run("Degraded Record Flagged", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/purchase/account/%s", BaseURL, buyer))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Purchases []struct {
				LiquidityFallback bool `json:"liquidity_fallback"`
			} `json:"purchases"`
		}
		decode(t, resp, &result)
		require.NotEmpty(t, result.Purchases)
		assert.True(t, result.Purchases[0].LiquidityFallback)
	})
}
