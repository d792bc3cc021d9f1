package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupCORS configures CORS for browser wallets. An empty origin list allows any origin.
func SetupCORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowAllOrigins:  len(allowedOrigins) == 0,
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match", HeaderWalletAddress, HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "ETag", HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}
	return cors.New(config)
}
