package handlers

import (
	"net/http"
	"strconv"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
)

// GetTreasuryStats returns the treasury balances and supply counters
func GetTreasuryStats(c *gin.Context) {
	gp, err := business.GetGlobalParams(dbconfig.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	deposit, err := business.GetBalance(dbconfig.DB, gp.TreasuryAddress, models.AssetDeposit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	share, err := business.GetBalance(dbconfig.DB, gp.TreasuryAddress, models.AssetShare)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	lp, err := business.GetBalance(dbconfig.DB, gp.TreasuryAddress, business.AssetLP)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"treasury_address":   gp.TreasuryAddress,
		"deposit_balance":    deposit.String(),
		"share_balance":      share.String(),
		"lp_balance":         lp.String(),
		"circulating_supply": gp.CirculatingSupply.String(),
	})
}

// GetOverviewStats aggregates system-wide settlement statistics
func GetOverviewStats(c *gin.Context) {
	var purchaseCount int64
	if err := dbconfig.DB.Model(&models.PurchaseRecord{}).Count(&purchaseCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var degradedCount int64
	if err := dbconfig.DB.Model(&models.PurchaseRecord{}).
		Where("liquidity_fallback = true").Count(&degradedCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var pendingReferrals int64
	if err := dbconfig.DB.Model(&models.ReferralPayout{}).
		Where("status = ?", models.ReferralStatusFailed).Count(&pendingReferrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var pool models.PoolState
	if err := dbconfig.DB.First(&pool, 1).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"purchase_count":           purchaseCount,
		"degraded_purchase_count":  degradedCount,
		"pending_referral_payouts": pendingReferrals,
		"pool_deposit_reserve":     pool.DepositReserve.String(),
		"pool_share_reserve":       pool.ShareReserve.String(),
		"pool_lp_supply":           pool.LpSupply.String(),
	})
}

// ListRecentEvents returns the newest settlement events
func ListRecentEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := business.RecentEvents(dbconfig.DB, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
