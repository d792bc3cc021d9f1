package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Catalog
		v1.GET("/items", handler.ListItems)
		v1.GET("/items/:token_id", handler.GetItem)
		v1.GET("/listing-fee", handler.GetListingFee)

		// Per-address views
		v1.GET("/addresses/:address/owned", handler.GetOwnedItems)
		v1.GET("/addresses/:address/listed", handler.GetListedItems)
		v1.GET("/addresses/:address/history", handler.GetHistory)
	}
}
