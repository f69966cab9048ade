package handlers

import (
	"math/big"
	"net/http"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/amm"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SimulateSwapRequest represents the request body for a swap simulation
// against the live pool reserves
type SimulateSwapRequest struct {
	AmountIn  decimal.Decimal `json:"amount_in" binding:"required"`
	InputSide string          `json:"input_side" binding:"required"` // "deposit" or "share"
	FeeBps    uint            `json:"fee_bps"`
}

// SimulateSwap quotes a constant-product swap against the current pool state
func SimulateSwap(c *gin.Context) {
	var request SimulateSwapRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var state models.PoolState
	if err := dbconfig.DB.First(&state, 1).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pool not provisioned"})
		return
	}

	reserveIn, reserveOut := state.DepositReserve, state.ShareReserve
	switch request.InputSide {
	case models.AssetDeposit:
	case models.AssetShare:
		reserveIn, reserveOut = state.ShareReserve, state.DepositReserve
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "input_side must be deposit or share"})
		return
	}

	out, err := amm.AmountOut(request.AmountIn.BigInt(), reserveIn.BigInt(), reserveOut.BigInt(), request.FeeBps)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount_in":  request.AmountIn.String(),
		"amount_out": decimal.NewFromBigInt(out, 0).String(),
	})
}

// ProvisionPoolRequest represents the request body for seeding pool reserves
type ProvisionPoolRequest struct {
	DepositReserve decimal.Decimal `json:"deposit_reserve" binding:"required"`
	ShareReserve   decimal.Decimal `json:"share_reserve" binding:"required"`
}

// ProvisionPool seeds the external pool mirror with reserves (admin only).
// Used on initial deployment and in test environments.
func ProvisionPool(c *gin.Context) {
	var request ProvisionPoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.RequireCapability(dbconfig.DB, callerAddress(c), models.CapAdmin); err != nil {
		respondError(c, err)
		return
	}
	if request.DepositReserve.Sign() <= 0 || request.ShareReserve.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reserves must be positive"})
		return
	}

	var state models.PoolState
	if err := dbconfig.DB.First(&state, 1).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	state.DepositReserve = request.DepositReserve
	state.ShareReserve = request.ShareReserve
	lp := new(big.Int).Sqrt(new(big.Int).Mul(request.DepositReserve.BigInt(), request.ShareReserve.BigInt()))
	state.LpSupply = decimal.NewFromBigInt(lp, 0)
	if err := dbconfig.DB.Save(&state).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// QuotePool returns the share amount the pool currently pairs with a deposit
// amount, the quote the liquidity adapter slippage-checks against
func QuotePool(c *gin.Context) {
	amountIn, err := decimal.NewFromString(c.Query("amount_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount_in"})
		return
	}

	var state models.PoolState
	if err := dbconfig.DB.First(&state, 1).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pool not provisioned"})
		return
	}

	pool := &amm.Pool{
		ReserveA: state.DepositReserve.BigInt(),
		ReserveB: state.ShareReserve.BigInt(),
		LpSupply: state.LpSupply.BigInt(),
	}
	out, err := pool.Quote(amountIn.BigInt())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount_in":            amountIn.String(),
		"amount_out":           decimal.NewFromBigInt(out, 0).String(),
		"max_slippage_bps_cap": business.MaxSlippageToleranceBps,
	})
}
