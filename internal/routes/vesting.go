package routes

import (
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupVestingRoutes sets up all routes related to vesting schedules
func SetupVestingRoutes(r *gin.Engine) {
	vesting := r.Group("/vesting")
	{
		vesting.POST("/claim/:schedule_id", handlers.ClaimVesting)
		vesting.GET("/account/:address", handlers.ListVestingByAccount)
	}
}
