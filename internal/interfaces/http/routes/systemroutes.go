package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/interfaces/http/handlers"
	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
)

type SystemRouteConfig struct {
	DiagnosticsHandler *handlers.DiagnosticsHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupSystemRoutes registers the unauthenticated liveness probe and the
// authenticated diagnostics report.
func SetupSystemRoutes(engine *gin.Engine, api gin.IRouter, cfg *SystemRouteConfig) {
	engine.GET("/health", cfg.DiagnosticsHandler.Health)
	api.GET("/health", cfg.DiagnosticsHandler.Health)
	api.GET("/diagnostics", cfg.AuthMiddleware.RequireAuth(), cfg.DiagnosticsHandler.Diagnostics)
}
