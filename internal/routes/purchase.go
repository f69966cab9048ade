package routes

import (
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPurchaseRoutes sets up all routes related to purchases and balances
func SetupPurchaseRoutes(r *gin.Engine) {
	purchase := r.Group("/purchase")
	{
		purchase.POST("", handlers.Purchase)
		purchase.POST("/on-behalf", handlers.PurchaseOnBehalf)
		purchase.GET("/account/:address", handlers.ListPurchasesByAccount)
	}

	balances := r.Group("/balances")
	{
		balances.GET("/:address", handlers.GetBalances)
		balances.POST("/deposit", handlers.CreditDeposit)
		balances.POST("/transfer", handlers.Transfer)
	}
}
