package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feral-file/claim-ledger/internal/api/middleware"
	"github.com/feral-file/claim-ledger/internal/ratelimit"
)

// SetupRoutes configures all REST API routes. A nil limiter disables rate limiting.
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator, limiter ratelimit.Limiter) {
	// Operational endpoints (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(middleware.RateLimit(limiter))
	}
	{
		// Leaderboard and user reads (public read access)
		v1.GET("/leaderboard", handler.GetLeaderboard)
		v1.GET("/users/:address", handler.GetUser)
		v1.GET("/users/:address/transfers", handler.GetUserTransfers)
		v1.GET("/users/:address/claims", handler.GetUserClaims)

		// Score submission from the game server (requires authentication)
		v1.POST("/scores", auth.Auth(), handler.SubmitScore)
	}
}
