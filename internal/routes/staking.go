package routes

import (
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStakingRoutes sets up all routes related to staking
func SetupStakingRoutes(r *gin.Engine) {
	staking := r.Group("/staking")
	{
		staking.POST("/stake", handlers.CreateStake)
		staking.POST("/withdraw/:stake_id", handlers.WithdrawStake)
		staking.GET("/account/:address", handlers.ListStakesByAccount)
	}

	pools := r.Group("/staking-pool-config")
	{
		pools.GET("", handlers.ListStakingPools)
		pools.GET("/:id", handlers.GetStakingPool)
		pools.POST("", handlers.CreateStakingPool)
		pools.PUT("/:id/active", handlers.SetStakingPoolActive)
	}
}
