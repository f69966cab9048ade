package handlers

import (
	"net/http"
	"strconv"

	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers/business"
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/models"
	dbconfig "github.com/BlockCoop-Sacco/block-coop-sacco-sub005/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// StakingPoolRequest represents the request body for creating a staking pool
type StakingPoolRequest struct {
	Name                    string          `json:"name" binding:"required"`
	LockPeriodSeconds       int64           `json:"lock_period_seconds"`
	ApyBps                  uint            `json:"apy_bps"`
	MinStake                decimal.Decimal `json:"min_stake"`
	MaxStake                decimal.Decimal `json:"max_stake"`
	RewardMultiplierBps     uint            `json:"reward_multiplier_bps"`
	EmergencyExitPenaltyBps uint            `json:"emergency_exit_penalty_bps"`
}

// ListStakingPools returns all staking pools
func ListStakingPools(c *gin.Context) {
	var pools []models.StakingPool
	if err := dbconfig.DB.Order("id").Find(&pools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pools)
}

// GetStakingPool returns a specific staking pool by ID
func GetStakingPool(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var pool models.StakingPool
	if err := dbconfig.DB.First(&pool, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, pool)
}

// CreateStakingPool creates a new staking pool (admin capability required).
// Pool terms are immutable after creation.
func CreateStakingPool(c *gin.Context) {
	var request StakingPoolRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool := models.StakingPool{
		Name:                    request.Name,
		LockPeriodSeconds:       request.LockPeriodSeconds,
		ApyBps:                  request.ApyBps,
		MinStake:                request.MinStake,
		MaxStake:                request.MaxStake,
		RewardMultiplierBps:     request.RewardMultiplierBps,
		EmergencyExitPenaltyBps: request.EmergencyExitPenaltyBps,
		Active:                  true,
	}
	if err := business.CreateStakingPool(dbconfig.DB, callerAddress(c), &pool); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pool)
}

// SetStakingPoolActive toggles a pool's active flag
func SetStakingPoolActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := business.SetStakingPoolActive(dbconfig.DB, callerAddress(c), uint(id), *request.Active); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "active": *request.Active})
}
