package routes

import (
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStatsRoutes sets up the read-only statistics and event surface
func SetupStatsRoutes(r *gin.Engine) {
	stats := r.Group("/stats")
	{
		stats.GET("/overview", handlers.GetOverviewStats)
		stats.GET("/treasury", handlers.GetTreasuryStats)
	}

	events := r.Group("/events")
	{
		events.GET("", handlers.ListRecentEvents)
		events.GET("/ws", handlers.StreamEvents)
	}

	amm := r.Group("/amm")
	{
		amm.GET("/quote", handlers.QuotePool)
		amm.POST("/simulate-swap", handlers.SimulateSwap)
		amm.POST("/provision", handlers.ProvisionPool)
	}
}
