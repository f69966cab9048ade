package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path, caller string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, BaseURL+path, bytes.NewBuffer(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("X-Caller-Address", caller)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestPurchaseFlow(t *testing.T) {
	buyer := "0xbuyer-integration"
	referrer := "0xreferrer-integration"
	var packageID uint

	t.Run("Create Package", func(t *testing.T) {
		resp := postJSON(t, "/package-config", AdminAddress, map[string]interface{}{
			"name":                  "Starter",
			"entry_cost":            "100000000",
			"exchange_rate":         "500000",
			"vesting_fraction_bps":  7000,
			"cliff_seconds":         3600,
			"duration_seconds":      86400,
			"referral_fraction_bps": 500,
		})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var pkg struct {
			ID uint `json:"id"`
		}
		decode(t, resp, &pkg)
		require.NotZero(t, pkg.ID)
		packageID = pkg.ID
	})

	t.Run("Create Package Denied Without Capability", func(t *testing.T) {
		resp := postJSON(t, "/package-config", "0xnobody", map[string]interface{}{
			"name":          "Rogue",
			"entry_cost":    "1",
			"exchange_rate": "1",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Purchase Rejected Without Funds", func(t *testing.T) {
		resp := postJSON(t, "/purchase", buyer, map[string]interface{}{
			"package_id": packageID,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	})

	t.Run("Fund Buyer", func(t *testing.T) {
		// Relayer capability piggybacks on admin in the test environment.
		resp := postJSON(t, "/balances/deposit", AdminAddress, map[string]interface{}{
			"address": buyer,
			"amount":  "100000000",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Purchase Succeeds", func(t *testing.T) {
		resp := postJSON(t, "/purchase", buyer, map[string]interface{}{
			"package_id": packageID,
			"referrer":   referrer,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Status  string `json:"status"`
			Outcome struct {
				Allocation struct {
					TotalShareTokens  string `json:"total_share_tokens"`
					VestedShareTokens string `json:"vested_share_tokens"`
					PoolShareTokens   string `json:"pool_share_tokens"`
				} `json:"allocation"`
				ReferralReward string `json:"referral_reward"`
			} `json:"outcome"`
		}
		decode(t, resp, &result)

		assert.Contains(t, []string{"success", "degraded"}, result.Status)
		assert.Equal(t, "200000000000000000000", result.Outcome.Allocation.TotalShareTokens)
		// 500 bps of the buyer-only allocation.
		assert.Equal(t, "10000000000000000000", result.Outcome.ReferralReward)
	})

	t.Run("Purchase Record Visible", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/purchase/account/%s", BaseURL, buyer))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Purchases []struct {
				PackageID         uint `json:"package_id"`
				LiquidityFallback bool `json:"liquidity_fallback"`
			} `json:"purchases"`
			Stats struct {
				PurchaseCount uint `json:"purchase_count"`
			} `json:"stats"`
		}
		decode(t, resp, &result)
		require.NotEmpty(t, result.Purchases)
		assert.Equal(t, packageID, result.Purchases[0].PackageID)
		assert.GreaterOrEqual(t, result.Stats.PurchaseCount, uint(1))
	})

	t.Run("Vesting Schedule Created", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/vesting/account/%s", BaseURL, buyer))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var schedules []struct {
			VestedNow string `json:"vested_now"`
			Claimable string `json:"claimable"`
		}
		decode(t, resp, &schedules)
		require.NotEmpty(t, schedules)
		// Cliff is an hour out, nothing vested yet.
		assert.Equal(t, "0", schedules[0].VestedNow)
	})

	t.Run("Claim With Nothing Releasable Is Idempotent", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/vesting/account/%s", BaseURL, buyer))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var schedules []struct {
			Schedule struct {
				ID uint `json:"id"`
			} `json:"schedule"`
		}
		decode(t, resp, &schedules)
		require.NotEmpty(t, schedules)
		scheduleID := schedules[0].Schedule.ID

		for i := 0; i < 2; i++ {
			claim := postJSON(t, fmt.Sprintf("/vesting/claim/%d", scheduleID), buyer, map[string]interface{}{})
			require.Equal(t, http.StatusOK, claim.StatusCode)

			var result struct {
				Released string `json:"released"`
			}
			decode(t, claim, &result)
			assert.Equal(t, "0", result.Released)
		}
	})
}
