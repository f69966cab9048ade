package routes

import (
	"github.com/BlockCoop-Sacco/block-coop-sacco-sub005/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the capability-gated configuration surface
func SetupAdminRoutes(r *gin.Engine) {
	packages := r.Group("/package-config")
	{
		packages.GET("", handlers.ListPackages)
		packages.GET("/:id", handlers.GetPackage)
		packages.POST("", handlers.CreatePackage)
		packages.PUT("/:id", handlers.UpdatePackage)
	}

	tax := r.Group("/tax-config")
	{
		tax.GET("", handlers.ListTaxBuckets)
		tax.POST("", handlers.SetTaxBucket)
		tax.GET("/quote/:key", handlers.QuoteTax)
	}

	params := r.Group("/global-params")
	{
		params.GET("", handlers.GetGlobalParams)
		params.PUT("", handlers.UpdateGlobalParams)
	}

	caps := r.Group("/capability-config")
	{
		caps.GET("", handlers.ListCapabilities)
		caps.POST("/grant", handlers.GrantCapability)
		caps.POST("/revoke", handlers.RevokeCapability)
	}
}
