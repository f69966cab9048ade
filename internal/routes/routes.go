package routes

import (
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all route groups registered
func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 50,
		Burst:             100,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	SetupPurchaseRoutes(r)
	SetupVestingRoutes(r)
	SetupStakingRoutes(r)
	SetupAdminRoutes(r)
	SetupStatsRoutes(r)

	return r
}
