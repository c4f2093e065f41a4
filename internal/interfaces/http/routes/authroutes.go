package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/interfaces/http/handlers"
	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAuthRoutes configures authentication routes.
func SetupAuthRoutes(api gin.IRouter, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.RateLimiter.Limit("login"), cfg.AuthHandler.Login)
		auth.POST("/signup", cfg.RateLimiter.Limit("signup"), cfg.AuthHandler.Signup)
		auth.POST("/verification", cfg.RateLimiter.Limit("verification"), cfg.AuthHandler.CheckVerification)
		auth.POST("/resend-verification", cfg.RateLimiter.Limit("resend"), cfg.AuthHandler.ResendVerification)
		auth.POST("/password-reset", cfg.RateLimiter.Limit("password-reset"), cfg.AuthHandler.RequestPasswordReset)

		auth.POST("/logout", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Logout)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}
