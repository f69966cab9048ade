package handlers

import (
	"net/http"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GlobalParamsRequest represents the request body for updating global
// parameters; omitted fields are left as they are
type GlobalParamsRequest struct {
	TreasuryAddress       *string          `json:"treasury_address"`
	GlobalExchangeRate    *decimal.Decimal `json:"global_exchange_rate"`
	SlippageToleranceBps  *uint            `json:"slippage_tolerance_bps"`
	DeadlineWindowSeconds *int64           `json:"deadline_window_seconds"`
}

// GetGlobalParams returns the protocol parameters
func GetGlobalParams(c *gin.Context) {
	gp, err := business.GetGlobalParams(dbconfig.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gp)
}

// UpdateGlobalParams applies an admin update to the protocol parameters
func UpdateGlobalParams(c *gin.Context) {
	var request GlobalParamsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := business.GlobalParamsUpdate{
		TreasuryAddress:       request.TreasuryAddress,
		GlobalExchangeRate:    request.GlobalExchangeRate,
		SlippageToleranceBps:  request.SlippageToleranceBps,
		DeadlineWindowSeconds: request.DeadlineWindowSeconds,
	}
	if err := business.UpdateGlobalParams(dbconfig.DB, callerAddress(c), update); err != nil {
		respondError(c, err)
		return
	}

	gp, err := business.GetGlobalParams(dbconfig.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gp)
}
