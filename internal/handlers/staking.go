package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StakeRequest represents the request body for creating a stake
type StakeRequest struct {
	PoolID uint            `json:"pool_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreateStake locks share tokens into a staking pool
func CreateStake(c *gin.Context) {
	var request StakeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := callerAddress(c)
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + CallerHeader + " header"})
		return
	}

	stake, err := business.CreateStake(dbconfig.DB, owner, request.PoolID, request.Amount, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stake)
}

// WithdrawStake settles a stake. Before lock expiry the configured
// emergency-exit penalty applies.
func WithdrawStake(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("stake_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stake ID format"})
		return
	}

	result, err := business.WithdrawStake(dbconfig.DB, callerAddress(c), uint(id), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListStakesByAccount returns an address's open stakes with live rewards
func ListStakesByAccount(c *gin.Context) {
	address := c.Param("address")

	stakes, err := business.StakesFor(dbconfig.DB, address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	out := make([]gin.H, 0, len(stakes))
	for i := range stakes {
		s := &stakes[i]
		entry := gin.H{"stake": s}
		if s.Pool != nil {
			entry["reward_now"] = business.StakeReward(s, s.Pool, now).String()
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}
